package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var _ domain.WaterAPI = (*Client)(nil)

type glassesBody struct {
	Glasses int `json:"glasses"`
}

func (c *Client) SetWaterIntake(ctx context.Context, userID string, glasses int) error {
	return c.do(ctx, "set_water", http.MethodPost, userPath(userID, "water", "set"),
		glassesBody{Glasses: glasses}, nil, "Failed to set water intake")
}

func (c *Client) LogWaterIntake(ctx context.Context, userID string, glasses int) error {
	return c.do(ctx, "log_water", http.MethodPost, userPath(userID, "water", "log"),
		glassesBody{Glasses: glasses}, nil, "Failed to log water intake")
}

func (c *Client) GetTodayWaterIntake(ctx context.Context, userID string) (int, error) {
	var resp glassesBody
	if err := c.do(ctx, "today_water", http.MethodGet, userPath(userID, "water", "today"), nil, &resp, "Failed to get water intake"); err != nil {
		return 0, err
	}
	return resp.Glasses, nil
}

func (c *Client) GetWaterHistory(ctx context.Context, userID string, days int) ([]domain.MetricHistoryEntry, error) {
	var resp struct {
		History []domain.MetricHistoryEntry `json:"history"`
	}
	path := fmt.Sprintf("%s?days=%d", userPath(userID, "water", "history"), days)
	if err := c.do(ctx, "water_history", http.MethodGet, path, nil, &resp, "Failed to get water history"); err != nil {
		return nil, err
	}
	if resp.History == nil {
		return []domain.MetricHistoryEntry{}, nil
	}
	return resp.History, nil
}
