package services

import (
	"context"
	"strings"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

type WaitlistService struct {
	api domain.WaitlistAPI
}

func NewWaitlistService(api domain.WaitlistAPI) *WaitlistService {
	return &WaitlistService{api: api}
}

func (s *WaitlistService) Join(ctx context.Context, app domain.WaitlistApplication) (*domain.WaitlistJoinResult, error) {
	if err := app.Normalize(); err != nil {
		return nil, err
	}
	return s.api.JoinWaitlist(ctx, app)
}

func (s *WaitlistService) Stats(ctx context.Context) (*domain.WaitlistStats, error) {
	return s.api.WaitlistStats(ctx)
}

func (s *WaitlistService) Entries(ctx context.Context, q domain.WaitlistQuery) (*domain.WaitlistPage, error) {
	if err := q.Normalize(); err != nil {
		return nil, err
	}
	return s.api.WaitlistEntries(ctx, q)
}

func (s *WaitlistService) UpdateStatus(ctx context.Context, id, status string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrWaitlistIDRequired
	}
	if !domain.ValidWaitlistStatus(status) {
		return domain.ErrInvalidStatus
	}
	return s.api.UpdateWaitlistStatus(ctx, id, status)
}
