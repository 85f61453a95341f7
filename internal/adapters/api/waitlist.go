package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var _ domain.WaitlistAPI = (*Client)(nil)

func (c *Client) JoinWaitlist(ctx context.Context, app domain.WaitlistApplication) (*domain.WaitlistJoinResult, error) {
	var res domain.WaitlistJoinResult
	if err := c.do(ctx, "join_waitlist", http.MethodPost, "/waitlist/join", app, &res, "Failed to join waitlist"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) WaitlistStats(ctx context.Context) (*domain.WaitlistStats, error) {
	var stats domain.WaitlistStats
	if err := c.do(ctx, "waitlist_stats", http.MethodGet, "/waitlist/stats", nil, &stats, "Failed to get waitlist stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) WaitlistEntries(ctx context.Context, q domain.WaitlistQuery) (*domain.WaitlistPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Status != "" {
		params.Set("status", q.Status)
	}

	var page domain.WaitlistPage
	if err := c.do(ctx, "waitlist_entries", http.MethodGet, "/waitlist/entries?"+params.Encode(), nil, &page, "Failed to get waitlist entries"); err != nil {
		return nil, err
	}
	if page.Entries == nil {
		page.Entries = []domain.WaitlistEntry{}
	}
	return &page, nil
}

func (c *Client) UpdateWaitlistStatus(ctx context.Context, id, status string) error {
	path := "/waitlist/entries/" + url.PathEscape(id) + "/status"
	body := map[string]string{"status": status}
	return c.do(ctx, "update_waitlist_status", http.MethodPut, path, body, nil, "Failed to update waitlist status")
}
