package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
)

// SocialService wraps friend and workout calls and announces successful ones
// on the bus so that feeds and counters refresh.
type SocialService struct {
	friends  domain.FriendsAPI
	workouts domain.WorkoutAPI
	bus      *events.Bus
	now      func() time.Time
}

func NewSocialService(friends domain.FriendsAPI, workouts domain.WorkoutAPI, bus *events.Bus) *SocialService {
	return &SocialService{
		friends:  friends,
		workouts: workouts,
		bus:      bus,
		now:      time.Now,
	}
}

func checkPair(userID, otherID string) (string, error) {
	if userID == "" {
		return "", domain.ErrNoUser
	}
	otherID = strings.TrimSpace(otherID)
	if otherID == "" {
		return "", domain.ErrFriendIDRequired
	}
	if otherID == userID {
		return "", domain.ErrSelfFriendship
	}
	return otherID, nil
}

func (s *SocialService) publish(topic string, payload any) {
	if s.bus != nil {
		s.bus.Publish(topic, payload)
	}
}

func (s *SocialService) SendRequest(ctx context.Context, userID, receiverID string) error {
	receiverID, err := checkPair(userID, receiverID)
	if err != nil {
		return err
	}
	if err := s.friends.SendFriendRequest(ctx, userID, receiverID); err != nil {
		return err
	}
	s.publish(domain.TopicFriendRequestReceived, domain.FriendEvent{UserID: receiverID, FriendID: userID})
	return nil
}

func (s *SocialService) AcceptRequest(ctx context.Context, userID, senderID string) error {
	senderID, err := checkPair(userID, senderID)
	if err != nil {
		return err
	}
	if err := s.friends.AcceptFriendRequest(ctx, userID, senderID); err != nil {
		return err
	}
	evt := domain.FriendEvent{UserID: userID, FriendID: senderID}
	s.publish(domain.TopicFriendRequestAccepted, evt)
	s.publish(domain.TopicFriendAdded, evt)
	return nil
}

func (s *SocialService) RejectRequest(ctx context.Context, userID, senderID string) error {
	senderID, err := checkPair(userID, senderID)
	if err != nil {
		return err
	}
	return s.friends.RejectFriendRequest(ctx, userID, senderID)
}

func (s *SocialService) RevokeRequest(ctx context.Context, userID, receiverID string) error {
	receiverID, err := checkPair(userID, receiverID)
	if err != nil {
		return err
	}
	return s.friends.RevokeFriendRequest(ctx, userID, receiverID)
}

func (s *SocialService) RemoveFriend(ctx context.Context, userID, friendID string) error {
	friendID, err := checkPair(userID, friendID)
	if err != nil {
		return err
	}
	if err := s.friends.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	s.publish(domain.TopicFriendRemoved, domain.FriendEvent{UserID: userID, FriendID: friendID})
	return nil
}

func (s *SocialService) Friends(ctx context.Context, userID string) ([]domain.Friend, error) {
	if userID == "" {
		return nil, domain.ErrNoUser
	}
	return s.friends.ListFriends(ctx, userID)
}

func (s *SocialService) IncomingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	if userID == "" {
		return nil, domain.ErrNoUser
	}
	return s.friends.IncomingFriendRequests(ctx, userID)
}

func (s *SocialService) OutgoingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	if userID == "" {
		return nil, domain.ErrNoUser
	}
	return s.friends.OutgoingFriendRequests(ctx, userID)
}

// LogWorkout posts the workout and announces it. The streak worker listens for
// workout-completed and bumps the workout streak.
func (s *SocialService) LogWorkout(ctx context.Context, userID string, w domain.WorkoutLog) error {
	if userID == "" {
		return domain.ErrNoUser
	}
	if err := w.Normalize(); err != nil {
		return err
	}

	if err := s.workouts.LogWorkout(ctx, userID, w); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to log workout")
		return err
	}

	s.publish(domain.TopicWorkoutCompleted, domain.WorkoutCompleted{
		UserID:          userID,
		WorkoutName:     w.RoutineName,
		DurationMinutes: w.DurationMinutes,
		Timestamp:       s.now().UTC(),
		Bearer:          domain.BearerFromContext(ctx),
	})
	s.publish(domain.TopicActivityUpdated, domain.ActivityUpdated{UserID: userID, Kind: "workout"})
	return nil
}
