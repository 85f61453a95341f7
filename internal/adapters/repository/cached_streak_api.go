package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/adapters/cache"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var _ domain.StreakAPI = (*CachedStreakAPI)(nil)

// CachedStreakAPI caches the all-streaks overview. Single-streak reads always
// go to the backend; updates and resets invalidate the overview.
type CachedStreakAPI struct {
	next  domain.StreakAPI
	cache cache.Store
	ttl   time.Duration
}

func NewCachedStreakAPI(next domain.StreakAPI, store cache.Store, ttl time.Duration) *CachedStreakAPI {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedStreakAPI{
		next:  next,
		cache: store,
		ttl:   ttl,
	}
}

func (r *CachedStreakAPI) cacheKey(userID string) string {
	return fmt.Sprintf("streaks:%s", userID)
}

func (r *CachedStreakAPI) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Delete(ctx, r.cacheKey(userID)); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("[CACHE] failed to invalidate streaks")
	}
}

func (r *CachedStreakAPI) GetAllStreaks(ctx context.Context, userID string) (map[string]domain.StreakRecord, error) {
	key := r.cacheKey(userID)

	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("[CACHE] read error")
	} else if ok {
		var streaks map[string]domain.StreakRecord
		if err := json.Unmarshal(raw, &streaks); err == nil {
			return streaks, nil
		}
		log.Warn().Str("user_id", userID).Msg("[CACHE] corrupted streaks, cleaning up key")
		r.invalidate(ctx, userID)
	}

	streaks, err := r.next.GetAllStreaks(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(streaks); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl); setErr != nil {
			log.Warn().Err(setErr).Msg("[CACHE] set error")
		}
	}

	return streaks, nil
}

func (r *CachedStreakAPI) GetStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	return r.next.GetStreak(ctx, userID, streakType)
}

func (r *CachedStreakAPI) UpdateStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	rec, err := r.next.UpdateStreak(ctx, userID, streakType)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, userID)
	return rec, nil
}

func (r *CachedStreakAPI) ResetStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	rec, err := r.next.ResetStreak(ctx, userID, streakType)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, userID)
	return rec, nil
}
