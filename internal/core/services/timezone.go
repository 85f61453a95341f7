package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

type zoneEntry struct {
	name string
	loc  *time.Location
}

// ZoneResolver decides which timezone a user's calendar days are computed in.
// The profile lookup happens once per user; failures fall back to the detected
// host zone and are retried on the next call.
type ZoneResolver struct {
	profiles domain.ProfileAPI
	detected string

	mu    sync.RWMutex
	cache map[string]zoneEntry
}

func NewZoneResolver(profiles domain.ProfileAPI, detected string) *ZoneResolver {
	return &ZoneResolver{
		profiles: profiles,
		detected: detected,
		cache:    make(map[string]zoneEntry),
	}
}

func (z *ZoneResolver) Resolve(ctx context.Context, userID string) (string, *time.Location) {
	if userID == "" || z.profiles == nil {
		return domain.ResolveTimezone("", z.detected)
	}

	z.mu.RLock()
	entry, ok := z.cache[userID]
	z.mu.RUnlock()
	if ok {
		return entry.name, entry.loc
	}

	profile, err := z.profiles.GetUserProfile(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("profile lookup failed, using detected timezone")
		return domain.ResolveTimezone("", z.detected)
	}

	name, loc := domain.ResolveTimezone(profile.Timezone, z.detected)

	z.mu.Lock()
	z.cache[userID] = zoneEntry{name: name, loc: loc}
	z.mu.Unlock()

	return name, loc
}

// Forget drops the cached zone, e.g. after the user changed it in settings.
func (z *ZoneResolver) Forget(userID string) {
	z.mu.Lock()
	delete(z.cache, userID)
	z.mu.Unlock()
}
