package domain

import (
	"errors"
	"strings"
	"time"
)

const DefaultRoutineName = "Standalone Workout"

var (
	ErrFriendIDRequired = errors.New("friend id is required")
	ErrSelfFriendship   = errors.New("cannot send a friend request to yourself")
	ErrInvalidWorkout   = errors.New("workout duration cannot be negative")
)

type Friend struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Online   bool   `json:"online"`
}

type FriendRequest struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Status     string `json:"status"`
	Username   string `json:"username,omitempty"`
	Name       string `json:"name,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type WorkoutSet struct {
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
	RestTime int     `json:"rest_time,omitempty"`
}

type CompletedExercise struct {
	Name       string       `json:"name"`
	Sets       []WorkoutSet `json:"sets"`
	RestTimer  int          `json:"rest_timer,omitempty"`
	UnitSystem UnitSystem   `json:"unit_system,omitempty"`
}

type WorkoutLog struct {
	RoutineName        string              `json:"routine_name"`
	ExercisesCompleted []CompletedExercise `json:"exercises_completed"`
	DurationMinutes    int                 `json:"duration_minutes"`
	SharedWith         []string            `json:"shared_with"`
}

func (w *WorkoutLog) Normalize() error {
	w.RoutineName = strings.TrimSpace(w.RoutineName)
	if w.RoutineName == "" {
		w.RoutineName = DefaultRoutineName
	}
	if w.DurationMinutes < 0 {
		return ErrInvalidWorkout
	}
	if w.ExercisesCompleted == nil {
		w.ExercisesCompleted = []CompletedExercise{}
	}
	if w.SharedWith == nil {
		w.SharedWith = []string{}
	}
	return nil
}

type UserProfile struct {
	ID              string           `json:"id"`
	Username        string           `json:"username,omitempty"`
	Name            string           `json:"name,omitempty"`
	Timezone        string           `json:"timezone,omitempty"`
	UnitPreferences *UnitPreferences `json:"unit_preferences,omitempty"`
	CreatedAt       *time.Time       `json:"-"`
}
