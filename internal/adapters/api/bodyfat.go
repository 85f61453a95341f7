package api

import (
	"context"
	"net/http"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var _ domain.BodyFatAPI = (*Client)(nil)

func (c *Client) LogBodyFat(ctx context.Context, userID string, m domain.BodyFatMeasurements) (*domain.BodyFatLog, error) {
	var log domain.BodyFatLog
	if err := c.do(ctx, "log_body_fat", http.MethodPost, userPath(userID, "body-fat", "log"), m, &log, "Failed to log body fat"); err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) GetLatestBodyFat(ctx context.Context, userID string) (*domain.BodyFatLog, error) {
	var log domain.BodyFatLog
	err := c.do(ctx, "latest_body_fat", http.MethodGet, userPath(userID, "body-fat", "latest"), nil, &log, "Failed to get latest body fat")
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (c *Client) GetBodyFatHistory(ctx context.Context, userID string) ([]domain.BodyFatLog, error) {
	var logs []domain.BodyFatLog
	err := c.do(ctx, "body_fat_history", http.MethodGet, userPath(userID, "body-fat", "history"), nil, &logs, "Failed to get body fat history")
	if IsNotFound(err) {
		return []domain.BodyFatLog{}, nil
	}
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.BodyFatLog{}
	}
	return logs, nil
}
