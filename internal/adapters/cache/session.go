package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

type SessionConfig struct {
	MaxSizeMB   int
	CounterSize int
}

var _ Store = (*SessionStore)(nil)

// SessionStore keeps cached values in process memory for the lifetime of the
// companion process.
type SessionStore struct {
	client *ristretto.Cache
}

func NewSessionStore(cfg SessionConfig) (*SessionStore, error) {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 8
	}
	if cfg.CounterSize <= 0 {
		cfg.CounterSize = 10000
	}

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CounterSize),
		MaxCost:     int64(cfg.MaxSizeMB) * 1024 * 1024,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("max_size_mb", cfg.MaxSizeMB).Msg("session cache initialized")
	return &SessionStore{client: client}, nil
}

func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

// Set waits for the write buffer so a Get right after sees the value.
func (s *SessionStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.client.SetWithTTL(key, value, int64(len(value)), ttl)
	s.client.Wait()
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, key string) error {
	s.client.Del(key)
	return nil
}

func (s *SessionStore) Close() {
	s.client.Close()
}
