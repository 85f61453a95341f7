package domain

import (
	"context"
	"errors"
)

var ErrNoUser = errors.New("no signed-in user")

type StreakAPI interface {
	// GetStreak fetches the server record for one streak type.
	GetStreak(ctx context.Context, userID, streakType string) (*StreakRecord, error)

	// UpdateStreak registers a qualifying action for today and returns the new record.
	UpdateStreak(ctx context.Context, userID, streakType string) (*StreakRecord, error)

	// ResetStreak zeroes the streak on the server.
	ResetStreak(ctx context.Context, userID, streakType string) (*StreakRecord, error)

	// GetAllStreaks returns every known streak keyed by type.
	GetAllStreaks(ctx context.Context, userID string) (map[string]StreakRecord, error)
}

type WaterAPI interface {
	// SetWaterIntake overwrites today's total with an absolute number of servings.
	SetWaterIntake(ctx context.Context, userID string, glasses int) error

	// LogWaterIntake adds servings on the server side.
	LogWaterIntake(ctx context.Context, userID string, glasses int) error

	GetTodayWaterIntake(ctx context.Context, userID string) (int, error)

	// GetWaterHistory returns at most one entry per date for the last days.
	GetWaterHistory(ctx context.Context, userID string, days int) ([]MetricHistoryEntry, error)
}

type ProfileAPI interface {
	GetUserProfile(ctx context.Context, userID string) (*UserProfile, error)
}

type BodyFatAPI interface {
	LogBodyFat(ctx context.Context, userID string, m BodyFatMeasurements) (*BodyFatLog, error)

	// GetLatestBodyFat returns nil without error when nothing was logged.
	GetLatestBodyFat(ctx context.Context, userID string) (*BodyFatLog, error)

	// GetBodyFatHistory returns an empty slice without error when nothing was logged.
	GetBodyFatHistory(ctx context.Context, userID string) ([]BodyFatLog, error)
}

type FriendsAPI interface {
	SendFriendRequest(ctx context.Context, userID, receiverID string) error
	AcceptFriendRequest(ctx context.Context, userID, senderID string) error
	RejectFriendRequest(ctx context.Context, userID, senderID string) error
	RevokeFriendRequest(ctx context.Context, userID, receiverID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
	ListFriends(ctx context.Context, userID string) ([]Friend, error)
	IncomingFriendRequests(ctx context.Context, userID string) ([]FriendRequest, error)
	OutgoingFriendRequests(ctx context.Context, userID string) ([]FriendRequest, error)
}

type WorkoutAPI interface {
	LogWorkout(ctx context.Context, userID string, w WorkoutLog) error
}

type WaitlistAPI interface {
	JoinWaitlist(ctx context.Context, app WaitlistApplication) (*WaitlistJoinResult, error)
	WaitlistStats(ctx context.Context) (*WaitlistStats, error)
	WaitlistEntries(ctx context.Context, q WaitlistQuery) (*WaitlistPage, error)
	UpdateWaitlistStatus(ctx context.Context, id, status string) error
}

// DeviceStorage mirrors the browser key/value store: string keys, string values.
type DeviceStorage interface {
	// GetItem reports ok=false when the key was never written.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	SetItem(ctx context.Context, key, value string) error

	// RemoveItem is a no-op for unknown keys.
	RemoveItem(ctx context.Context, key string) error
}
