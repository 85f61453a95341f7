package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
)

type MockStreakAPI struct {
	mock.Mock
}

func (m *MockStreakAPI) GetStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	args := m.Called(ctx, userID, streakType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakRecord), args.Error(1)
}

func (m *MockStreakAPI) UpdateStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	args := m.Called(ctx, userID, streakType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakRecord), args.Error(1)
}

func (m *MockStreakAPI) ResetStreak(ctx context.Context, userID, streakType string) (*domain.StreakRecord, error) {
	args := m.Called(ctx, userID, streakType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreakRecord), args.Error(1)
}

func (m *MockStreakAPI) GetAllStreaks(ctx context.Context, userID string) (map[string]domain.StreakRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.StreakRecord), args.Error(1)
}

type MockWaterAPI struct {
	mock.Mock
}

func (m *MockWaterAPI) SetWaterIntake(ctx context.Context, userID string, glasses int) error {
	args := m.Called(ctx, userID, glasses)
	return args.Error(0)
}

func (m *MockWaterAPI) LogWaterIntake(ctx context.Context, userID string, glasses int) error {
	args := m.Called(ctx, userID, glasses)
	return args.Error(0)
}

func (m *MockWaterAPI) GetTodayWaterIntake(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockWaterAPI) GetWaterHistory(ctx context.Context, userID string, days int) ([]domain.MetricHistoryEntry, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MetricHistoryEntry), args.Error(1)
}

type MockProfileAPI struct {
	mock.Mock
}

func (m *MockProfileAPI) GetUserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

type MockBodyFatAPI struct {
	mock.Mock
}

func (m *MockBodyFatAPI) LogBodyFat(ctx context.Context, userID string, bf domain.BodyFatMeasurements) (*domain.BodyFatLog, error) {
	args := m.Called(ctx, userID, bf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BodyFatLog), args.Error(1)
}

func (m *MockBodyFatAPI) GetLatestBodyFat(ctx context.Context, userID string) (*domain.BodyFatLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BodyFatLog), args.Error(1)
}

func (m *MockBodyFatAPI) GetBodyFatHistory(ctx context.Context, userID string) ([]domain.BodyFatLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BodyFatLog), args.Error(1)
}

type MockFriendsAPI struct {
	mock.Mock
}

func (m *MockFriendsAPI) SendFriendRequest(ctx context.Context, userID, receiverID string) error {
	return m.Called(ctx, userID, receiverID).Error(0)
}

func (m *MockFriendsAPI) AcceptFriendRequest(ctx context.Context, userID, senderID string) error {
	return m.Called(ctx, userID, senderID).Error(0)
}

func (m *MockFriendsAPI) RejectFriendRequest(ctx context.Context, userID, senderID string) error {
	return m.Called(ctx, userID, senderID).Error(0)
}

func (m *MockFriendsAPI) RevokeFriendRequest(ctx context.Context, userID, receiverID string) error {
	return m.Called(ctx, userID, receiverID).Error(0)
}

func (m *MockFriendsAPI) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return m.Called(ctx, userID, friendID).Error(0)
}

func (m *MockFriendsAPI) ListFriends(ctx context.Context, userID string) ([]domain.Friend, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Friend), args.Error(1)
}

func (m *MockFriendsAPI) IncomingFriendRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

func (m *MockFriendsAPI) OutgoingFriendRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

type MockWorkoutAPI struct {
	mock.Mock
}

func (m *MockWorkoutAPI) LogWorkout(ctx context.Context, userID string, w domain.WorkoutLog) error {
	return m.Called(ctx, userID, w).Error(0)
}

type MockWaitlistAPI struct {
	mock.Mock
}

func (m *MockWaitlistAPI) JoinWaitlist(ctx context.Context, app domain.WaitlistApplication) (*domain.WaitlistJoinResult, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistJoinResult), args.Error(1)
}

func (m *MockWaitlistAPI) WaitlistStats(ctx context.Context) (*domain.WaitlistStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistStats), args.Error(1)
}

func (m *MockWaitlistAPI) WaitlistEntries(ctx context.Context, q domain.WaitlistQuery) (*domain.WaitlistPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistPage), args.Error(1)
}

func (m *MockWaitlistAPI) UpdateWaitlistStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type memoryStorage struct {
	mu    sync.Mutex
	items map[string]string
	err   error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{items: make(map[string]string)}
}

func (s *memoryStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryStorage) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.items[key] = value
	return nil
}

func (s *memoryStorage) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// recorder captures every event published on a bus, in order.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func record(bus *events.Bus) *recorder {
	r := &recorder{}
	bus.Subscribe(events.Wildcard, func(e events.Event) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	return r
}

func (r *recorder) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Topic)
	}
	return out
}

func (r *recorder) last(topic string) (events.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Topic == topic {
			return r.events[i], true
		}
	}
	return events.Event{}, false
}
