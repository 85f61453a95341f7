package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
)

// NotificationService is the in-memory notification registry for the current
// application session. Newest entries come first and the list never grows past
// domain.MaxNotifications.
type NotificationService struct {
	mu      sync.RWMutex
	entries []domain.NotificationEntry
	limit   int
	now     func() time.Time
	newID   func() string
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		limit: domain.MaxNotifications,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

func (s *NotificationService) Add(in domain.NotificationInput) (domain.NotificationEntry, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.NotificationEntry{}, domain.ErrNotificationEmpty
	}
	if in.Type == "" {
		in.Type = domain.NotificationGeneral
	}

	entry := domain.NotificationEntry{
		ID:        s.newID(),
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Timestamp: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.NotificationEntry, 0, min(len(s.entries)+1, s.limit))
	next = append(next, entry)
	for _, e := range s.entries {
		if len(next) >= s.limit {
			break
		}
		next = append(next, e)
	}
	s.entries = next

	return entry, nil
}

func (s *NotificationService) MarkAsRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (s *NotificationService) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		s.entries[i].Read = true
	}
}

func (s *NotificationService) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (s *NotificationService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

func (s *NotificationService) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, e := range s.entries {
		if !e.Read {
			n++
		}
	}
	return n
}

func (s *NotificationService) List() []domain.NotificationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.NotificationEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// FeedFrom turns bus events into notifications. The returned func detaches the
// feed.
func (s *NotificationService) FeedFrom(bus *events.Bus) func() {
	subs := []*events.Subscription{
		bus.Subscribe(domain.TopicGoalReached, func(e events.Event) {
			p, ok := e.Payload.(domain.GoalReached)
			if !ok {
				return
			}
			if p.Metric == domain.StreakTypeWater {
				s.Add(domain.NotificationInput{
					Type:    domain.NotificationWater,
					Title:   "Daily water goal reached!",
					Message: fmt.Sprintf("You drank %d of %d glasses today.", p.Value, p.Goal),
				})
				return
			}
			s.Add(domain.NotificationInput{
				Type:    domain.NotificationGoal,
				Title:   "Goal reached!",
				Message: fmt.Sprintf("You hit your %s goal.", p.Metric),
			})
		}),
		bus.Subscribe(domain.TopicFriendAdded, func(e events.Event) {
			s.Add(domain.NotificationInput{
				Type:    domain.NotificationFriend,
				Title:   "New friend",
				Message: "You have a new friend.",
			})
		}),
		bus.Subscribe(domain.TopicFriendRequestReceived, func(e events.Event) {
			s.Add(domain.NotificationInput{
				Type:    domain.NotificationFriend,
				Title:   "Friend request",
				Message: "Someone wants to be your friend.",
			})
		}),
		bus.Subscribe(domain.TopicWorkoutCompleted, func(e events.Event) {
			p, ok := e.Payload.(domain.WorkoutCompleted)
			if !ok {
				return
			}
			s.Add(domain.NotificationInput{
				Type:    domain.NotificationWorkout,
				Title:   "Workout completed",
				Message: fmt.Sprintf("%s done in %d minutes.", p.WorkoutName, p.DurationMinutes),
			})
		}),
	}

	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}
