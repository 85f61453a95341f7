package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
	"github.com/comitanigiacomo/kyool-companion/internal/core/state"
)

type WaterConfig struct {
	DailyCap  int
	DailyGoal int
}

func (c WaterConfig) withDefaults() WaterConfig {
	if c.DailyCap <= 0 {
		c.DailyCap = domain.DefaultDailyCap
	}
	if c.DailyGoal <= 0 {
		c.DailyGoal = domain.DefaultDailyGoal
	}
	return c
}

// WaterService is the daily metric store for water intake. Writes send the new
// absolute total and then re-read today and the week from the backend.
// Overlapping writes for the same user are not serialised: the last response
// wins.
type WaterService struct {
	api   domain.WaterAPI
	bus   *events.Bus
	zones *ZoneResolver
	cfg   WaterConfig
	now   func() time.Time

	mu     sync.Mutex
	states map[string]*state.Resource[domain.WaterSummary]
}

func NewWaterService(api domain.WaterAPI, bus *events.Bus, zones *ZoneResolver, cfg WaterConfig) *WaterService {
	return &WaterService{
		api:    api,
		bus:    bus,
		zones:  zones,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
		states: make(map[string]*state.Resource[domain.WaterSummary]),
	}
}

func (s *WaterService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *WaterService) Config() WaterConfig {
	return s.cfg
}

func (s *WaterService) resource(userID string) *state.Resource[domain.WaterSummary] {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.states[userID]
	if !ok {
		res = state.NewResource(domain.WaterSummary{UserID: userID, Goal: s.cfg.DailyGoal, Cap: s.cfg.DailyCap})
		s.states[userID] = res
	}
	return res
}

// Empty is the summary shown when nobody is signed in.
func (s *WaterService) Empty(ctx context.Context) domain.WaterSummary {
	zone, loc := s.zones.Resolve(ctx, "")
	today := domain.LocalCalendarDate(s.now(), loc)
	week := domain.BuildWeeklyView(today, nil, s.cfg.DailyGoal)
	return domain.WaterSummary{
		Timezone: zone,
		Today:    today,
		Goal:     s.cfg.DailyGoal,
		Cap:      s.cfg.DailyCap,
		Week:     week,
	}
}

func (s *WaterService) Snapshot(userID string) state.Snapshot[domain.WaterSummary] {
	return s.resource(userID).Snapshot()
}

// RefreshWeek reads today's total and the last seven days, and rebuilds the
// weekly view in the user's zone.
func (s *WaterService) RefreshWeek(ctx context.Context, userID string) (domain.WaterSummary, error) {
	if userID == "" {
		return s.Empty(ctx), nil
	}

	zone, loc := s.zones.Resolve(ctx, userID)
	today := domain.LocalCalendarDate(s.now(), loc)

	res := s.resource(userID)
	ticket := res.Begin()

	total, err := s.api.GetTodayWaterIntake(ctx, userID)
	if err != nil {
		res.Fail(ticket, err)
		log.Warn().Err(err).Str("user_id", userID).Msg("water refresh failed")
		return res.Snapshot().Value, err
	}

	history, err := s.api.GetWaterHistory(ctx, userID, domain.WeekLength)
	if err != nil {
		res.Fail(ticket, err)
		log.Warn().Err(err).Str("user_id", userID).Msg("water history refresh failed")
		return res.Snapshot().Value, err
	}

	summary := domain.WaterSummary{
		UserID:   userID,
		Timezone: zone,
		Today:    today,
		Goal:     s.cfg.DailyGoal,
		Cap:      s.cfg.DailyCap,
		Week:     domain.BuildWeeklyView(today, history, s.cfg.DailyGoal),
	}
	summary = summary.WithTotal(total)

	if !res.Resolve(ticket, summary) {
		log.Debug().Str("user_id", userID).Msg("discarding stale water refresh")
	}
	return summary, nil
}

// AddSample rejects non-positive deltas before any network call.
func (s *WaterService) AddSample(ctx context.Context, userID string, delta int) (domain.WaterSummary, error) {
	if delta <= 0 {
		return domain.WaterSummary{}, domain.ErrInvalidAmount
	}
	return s.change(ctx, userID, delta)
}

func (s *WaterService) RemoveSample(ctx context.Context, userID string, delta int) (domain.WaterSummary, error) {
	if delta <= 0 {
		return domain.WaterSummary{}, domain.ErrInvalidAmount
	}
	return s.change(ctx, userID, -delta)
}

func (s *WaterService) change(ctx context.Context, userID string, signed int) (domain.WaterSummary, error) {
	if userID == "" {
		return domain.WaterSummary{}, domain.ErrNoUser
	}

	_, loc := s.zones.Resolve(ctx, userID)
	today := domain.LocalCalendarDate(s.now(), loc)

	// The new total is computed from the loaded one, so load first and reload
	// once the local day has rolled over.
	res := s.resource(userID)
	snap := res.Snapshot()
	if snap.Status == state.StatusIdle || snap.Value.Today != today {
		if _, err := s.RefreshWeek(ctx, userID); err != nil {
			return domain.WaterSummary{}, err
		}
		snap = res.Snapshot()
	}

	before := snap.Value.Total
	after := domain.ApplyDelta(before, signed, s.cfg.DailyCap)

	res.Mutate(func(v domain.WaterSummary) domain.WaterSummary { return v.WithTotal(after) })

	if err := s.api.SetWaterIntake(ctx, userID, after); err != nil {
		res.Mutate(func(v domain.WaterSummary) domain.WaterSummary { return v.WithTotal(before) })
		log.Error().Err(err).Str("user_id", userID).Int("total", after).Msg("failed to save water intake")
		return res.Snapshot().Value, err
	}

	summary, err := s.RefreshWeek(ctx, userID)
	if err != nil {
		summary = res.Snapshot().Value
	}

	if s.bus != nil {
		s.bus.Publish(domain.TopicWaterUpdated, domain.WaterUpdated{
			UserID:   userID,
			NewValue: summary.Total,
			Delta:    after - before,
			Date:     summary.Today,
			Bearer:   domain.BearerFromContext(ctx),
		})
		if domain.CrossedGoal(before, summary.Total, summary.Goal) {
			s.bus.Publish(domain.TopicGoalReached, domain.GoalReached{
				UserID: userID,
				Metric: domain.StreakTypeWater,
				Value:  summary.Total,
				Goal:   summary.Goal,
			})
		}
	}

	return summary, nil
}

// Forget tears down the user's widget state.
func (s *WaterService) Forget(userID string) {
	s.mu.Lock()
	res, ok := s.states[userID]
	delete(s.states, userID)
	s.mu.Unlock()

	if ok {
		res.Close()
	}
}
