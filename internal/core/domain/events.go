package domain

import (
	"errors"
	"time"
)

var ErrUnknownTopic = errors.New("unknown event topic")

// Bus topics. Payloads are hints; subscribers re-fetch authoritative state.
const (
	TopicWaterUpdated          = "water-updated"
	TopicActivityUpdated       = "activity-updated"
	TopicFriendAdded           = "friend-added"
	TopicFriendRemoved         = "friend-removed"
	TopicFriendRequestAccepted = "friend-request-accepted"
	TopicFriendRequestReceived = "friend-request-received"
	TopicWorkoutCompleted      = "workout-completed"
	TopicStreakUpdated         = "streak-updated"
	TopicGoalReached           = "goal-reached"
)

func Topics() []string {
	return []string{
		TopicWaterUpdated,
		TopicActivityUpdated,
		TopicFriendAdded,
		TopicFriendRemoved,
		TopicFriendRequestAccepted,
		TopicFriendRequestReceived,
		TopicWorkoutCompleted,
		TopicStreakUpdated,
		TopicGoalReached,
	}
}

func ValidTopic(topic string) bool {
	for _, t := range Topics() {
		if t == topic {
			return true
		}
	}
	return false
}

// Bearer fields carry the publisher's ID token to in-process subscribers
// that call the backend on the user's behalf. They never reach UI clients.

type WaterUpdated struct {
	UserID   string  `json:"user_id"`
	NewValue int     `json:"new_value"`
	Delta    int     `json:"delta"`
	Date     DateKey `json:"date"`
	Bearer   string  `json:"-"`
}

type ActivityUpdated struct {
	UserID string `json:"user_id"`
	Kind   string `json:"kind"`
}

type FriendEvent struct {
	UserID   string `json:"user_id"`
	FriendID string `json:"friend_id"`
}

type WorkoutCompleted struct {
	UserID          string    `json:"user_id"`
	WorkoutName     string    `json:"workout_name"`
	DurationMinutes int       `json:"duration_minutes"`
	Timestamp       time.Time `json:"timestamp"`
	Bearer          string    `json:"-"`
}

type StreakUpdated struct {
	UserID string       `json:"user_id"`
	Record StreakRecord `json:"record"`
}

type GoalReached struct {
	UserID string `json:"user_id"`
	Metric string `json:"metric"`
	Value  int    `json:"value"`
	Goal   int    `json:"goal"`
}
