package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
	"github.com/comitanigiacomo/kyool-companion/internal/core/state"
)

// StreakView is everything a streak widget renders, derived from the last
// fetched record and the current instant in the user's zone.
type StreakView struct {
	UserID          string              `json:"user_id,omitempty"`
	StreakType      string              `json:"streak_type"`
	Status          state.Status        `json:"status"`
	Error           string              `json:"error,omitempty"`
	Record          domain.StreakRecord `json:"record"`
	Timezone        string              `json:"timezone"`
	Today           domain.DateKey      `json:"today"`
	Effective       int                 `json:"effective_streak"`
	LoggedToday     bool                `json:"logged_today"`
	HoursUntilReset int                 `json:"hours_until_reset"`
	Display         string              `json:"display"`
}

type streakKey struct {
	userID     string
	streakType string
}

type StreakService struct {
	api   domain.StreakAPI
	bus   *events.Bus
	zones *ZoneResolver
	now   func() time.Time

	mu      sync.Mutex
	widgets map[streakKey]*state.Resource[domain.StreakRecord]
}

func NewStreakService(api domain.StreakAPI, bus *events.Bus, zones *ZoneResolver) *StreakService {
	return &StreakService{
		api:     api,
		bus:     bus,
		zones:   zones,
		now:     time.Now,
		widgets: make(map[streakKey]*state.Resource[domain.StreakRecord]),
	}
}

func (s *StreakService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *StreakService) widget(userID, streakType string) *state.Resource[domain.StreakRecord] {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := streakKey{userID: userID, streakType: streakType}
	res, ok := s.widgets[key]
	if !ok {
		res = state.NewResource(domain.ZeroStreak(streakType))
		s.widgets[key] = res
	}
	return res
}

// Refresh fetches the record for one widget. Without a user it answers with
// the zero record and never touches the network. On failure the previously
// displayed record is kept and the error is returned.
func (s *StreakService) Refresh(ctx context.Context, userID, streakType string) (StreakView, error) {
	if err := domain.ValidateStreakType(streakType); err != nil {
		return StreakView{}, err
	}
	if userID == "" {
		return s.build(ctx, "", streakType, state.Snapshot[domain.StreakRecord]{
			Status: state.StatusIdle,
			Value:  domain.ZeroStreak(streakType),
		}), nil
	}

	res := s.widget(userID, streakType)
	ticket := res.Begin()

	rec, err := s.api.GetStreak(ctx, userID, streakType)
	if err != nil {
		res.Fail(ticket, err)
		log.Warn().Err(err).Str("user_id", userID).Str("streak_type", streakType).Msg("streak refresh failed")
		return s.build(ctx, userID, streakType, res.Snapshot()), err
	}

	res.Resolve(ticket, *rec)
	return s.build(ctx, userID, streakType, res.Snapshot()), nil
}

// View renders the widget from what is already loaded, without a fetch.
func (s *StreakService) View(ctx context.Context, userID, streakType string) StreakView {
	if userID == "" {
		return s.build(ctx, "", streakType, state.Snapshot[domain.StreakRecord]{
			Status: state.StatusIdle,
			Value:  domain.ZeroStreak(streakType),
		})
	}
	return s.build(ctx, userID, streakType, s.widget(userID, streakType).Snapshot())
}

// Update registers a qualifying action. Callers invoke it once per action.
func (s *StreakService) Update(ctx context.Context, userID, streakType string) (domain.StreakRecord, error) {
	return s.mutate(ctx, userID, streakType, s.api.UpdateStreak)
}

func (s *StreakService) Reset(ctx context.Context, userID, streakType string) (domain.StreakRecord, error) {
	return s.mutate(ctx, userID, streakType, s.api.ResetStreak)
}

func (s *StreakService) mutate(
	ctx context.Context,
	userID, streakType string,
	call func(context.Context, string, string) (*domain.StreakRecord, error),
) (domain.StreakRecord, error) {
	if err := domain.ValidateStreakType(streakType); err != nil {
		return domain.StreakRecord{}, err
	}
	if userID == "" {
		log.Warn().Str("streak_type", streakType).Msg("streak change without a signed-in user")
		return domain.StreakRecord{}, domain.ErrNoUser
	}

	rec, err := call(ctx, userID, streakType)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Str("streak_type", streakType).Msg("streak change failed")
		return domain.StreakRecord{}, err
	}

	res := s.widget(userID, streakType)
	res.Resolve(res.Begin(), *rec)

	if s.bus != nil {
		s.bus.Publish(domain.TopicStreakUpdated, domain.StreakUpdated{UserID: userID, Record: *rec})
	}
	return *rec, nil
}

// All returns every streak the backend knows plus the given types, which read
// as zero when absent.
func (s *StreakService) All(ctx context.Context, userID string, types ...string) ([]StreakView, error) {
	if userID == "" {
		return nil, domain.ErrNoUser
	}

	all, err := s.api.GetAllStreaks(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, t := range types {
		if _, ok := all[t]; !ok {
			all[t] = domain.ZeroStreak(t)
		}
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	views := make([]StreakView, 0, len(keys))
	for _, k := range keys {
		views = append(views, s.build(ctx, userID, k, state.Snapshot[domain.StreakRecord]{
			Status: state.StatusLoaded,
			Value:  domain.StreakFor(all, k),
		}))
	}
	return views, nil
}

// Forget tears the widget down; a load still in flight is discarded.
func (s *StreakService) Forget(userID, streakType string) {
	s.mu.Lock()
	key := streakKey{userID: userID, streakType: streakType}
	res, ok := s.widgets[key]
	delete(s.widgets, key)
	s.mu.Unlock()

	if ok {
		res.Close()
	}
}

func (s *StreakService) build(ctx context.Context, userID, streakType string, snap state.Snapshot[domain.StreakRecord]) StreakView {
	zone, loc := s.zones.Resolve(ctx, userID)
	now := s.now()
	today := domain.LocalCalendarDate(now, loc)
	rec := snap.Value
	if rec.StreakType == "" {
		rec.StreakType = streakType
	}

	effective := rec.Effective(today)
	view := StreakView{
		UserID:          userID,
		StreakType:      streakType,
		Status:          snap.Status,
		Record:          rec,
		Timezone:        zone,
		Today:           today,
		Effective:       effective,
		LoggedToday:     domain.HasLoggedToday(rec, loc, now),
		HoursUntilReset: domain.HoursUntilStreakReset(rec, loc, now),
		Display:         domain.FormatStreak(effective),
	}
	if snap.Err != nil {
		view.Error = snap.Err.Error()
	}
	return view
}
