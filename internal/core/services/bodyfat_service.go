package services

import (
	"context"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
)

type BodyFatService struct {
	api domain.BodyFatAPI
	bus *events.Bus
}

func NewBodyFatService(api domain.BodyFatAPI, bus *events.Bus) *BodyFatService {
	return &BodyFatService{api: api, bus: bus}
}

func (s *BodyFatService) Log(ctx context.Context, userID string, m domain.BodyFatMeasurements) (*domain.BodyFatLog, error) {
	if userID == "" {
		return nil, domain.ErrNoUser
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.api.LogBodyFat(ctx, userID, m)
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(domain.TopicActivityUpdated, domain.ActivityUpdated{UserID: userID, Kind: "body_fat"})
	}
	return entry, nil
}

// Latest returns nil when nothing was logged yet.
func (s *BodyFatService) Latest(ctx context.Context, userID string) (*domain.BodyFatLog, error) {
	if userID == "" {
		return nil, domain.ErrNoUser
	}
	return s.api.GetLatestBodyFat(ctx, userID)
}

func (s *BodyFatService) History(ctx context.Context, userID string) ([]domain.BodyFatLog, error) {
	if userID == "" {
		return nil, domain.ErrNoUser
	}
	return s.api.GetBodyFatHistory(ctx, userID)
}
