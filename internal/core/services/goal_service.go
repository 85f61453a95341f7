package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

// GoalService keeps the goal list in device storage under a single key. The
// list is loaded once and written back after every mutation.
type GoalService struct {
	store domain.DeviceStorage

	mu     sync.Mutex
	goals  []domain.UserGoal
	loaded bool
}

func NewGoalService(store domain.DeviceStorage) *GoalService {
	return &GoalService{store: store}
}

// Load reads the stored goals. Missing or unreadable data yields the default
// goals; a storage failure is returned as is.
func (s *GoalService) Load(ctx context.Context) ([]domain.UserGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return cloneGoals(s.goals), nil
}

func (s *GoalService) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, ok, err := s.store.GetItem(ctx, domain.GoalsStorageKey)
	if err != nil {
		return fmt.Errorf("read goals: %w", err)
	}

	goals := domain.DefaultGoals()
	if ok {
		var stored []domain.UserGoal
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			log.Warn().Err(err).Msg("stored goals are corrupt, using defaults")
		} else if stored != nil {
			goals = stored
		}
	}

	s.goals = goals
	s.loaded = true
	return nil
}

func (s *GoalService) saveLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.goals)
	if err != nil {
		return err
	}
	if err := s.store.SetItem(ctx, domain.GoalsStorageKey, string(raw)); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}

func (s *GoalService) Add(ctx context.Context, goal domain.UserGoal) (domain.UserGoal, error) {
	if err := goal.Normalize(); err != nil {
		return domain.UserGoal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return domain.UserGoal{}, err
	}

	maxID := 0
	for _, g := range s.goals {
		if g.ID > maxID {
			maxID = g.ID
		}
	}
	goal.ID = maxID + 1

	s.goals = append(s.goals, goal)
	if err := s.saveLocked(ctx); err != nil {
		s.goals = s.goals[:len(s.goals)-1]
		return domain.UserGoal{}, err
	}
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, id int, patch domain.GoalPatch) (domain.UserGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return domain.UserGoal{}, err
	}

	for i, g := range s.goals {
		if g.ID != id {
			continue
		}

		updated := g
		updated.Apply(patch)
		if err := updated.Normalize(); err != nil {
			return domain.UserGoal{}, err
		}

		s.goals[i] = updated
		if err := s.saveLocked(ctx); err != nil {
			s.goals[i] = g
			return domain.UserGoal{}, err
		}
		return updated, nil
	}
	return domain.UserGoal{}, domain.ErrGoalNotFound
}

func (s *GoalService) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return err
	}

	for i, g := range s.goals {
		if g.ID != id {
			continue
		}

		previous := s.goals
		s.goals = append(cloneGoals(s.goals[:i]), s.goals[i+1:]...)
		if err := s.saveLocked(ctx); err != nil {
			s.goals = previous
			return err
		}
		return nil
	}
	return domain.ErrGoalNotFound
}

// Reload forgets the in-memory copy so the next call reads storage again.
func (s *GoalService) Reload() {
	s.mu.Lock()
	s.loaded = false
	s.goals = nil
	s.mu.Unlock()
}

func cloneGoals(in []domain.UserGoal) []domain.UserGoal {
	out := make([]domain.UserGoal, len(in))
	copy(out, in)
	return out
}
