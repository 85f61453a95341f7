package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var _ domain.StreakAPI = (*Client)(nil)

func (c *Client) GetStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	var rec domain.StreakRecord
	path := userPath(userID, "streak", url.PathEscape(streakType))
	if err := c.do(ctx, "get_streak", http.MethodGet, path, nil, &rec, "Failed to get streak"); err != nil {
		return nil, err
	}
	if rec.StreakType == "" {
		rec.StreakType = streakType
	}
	return &rec, nil
}

func (c *Client) UpdateStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	var rec domain.StreakRecord
	path := userPath(userID, "streak", url.PathEscape(streakType), "update")
	if err := c.do(ctx, "update_streak", http.MethodPost, path, struct{}{}, &rec, "Failed to update streak"); err != nil {
		return nil, err
	}
	if rec.StreakType == "" {
		rec.StreakType = streakType
	}
	return &rec, nil
}

func (c *Client) ResetStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	var rec domain.StreakRecord
	path := userPath(userID, "streak", url.PathEscape(streakType), "reset")
	if err := c.do(ctx, "reset_streak", http.MethodPost, path, struct{}{}, &rec, "Failed to reset streak"); err != nil {
		return nil, err
	}
	if rec.StreakType == "" {
		rec.StreakType = streakType
	}
	return &rec, nil
}

func (c *Client) GetAllStreaks(ctx context.Context, userID string) (map[string]domain.StreakRecord, error) {
	var resp struct {
		Streaks map[string]domain.StreakRecord `json:"streaks"`
	}
	if err := c.do(ctx, "get_all_streaks", http.MethodGet, userPath(userID, "streaks"), nil, &resp, "Failed to get streaks"); err != nil {
		return nil, err
	}
	if resp.Streaks == nil {
		resp.Streaks = map[string]domain.StreakRecord{}
	}
	for k, rec := range resp.Streaks {
		if rec.StreakType == "" {
			rec.StreakType = k
			resp.Streaks[k] = rec
		}
	}
	return resp.Streaks, nil
}
