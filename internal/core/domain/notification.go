package domain

import (
	"errors"
	"time"
)

const MaxNotifications = 50

type NotificationType string

const (
	NotificationWater   NotificationType = "water"
	NotificationGoal    NotificationType = "goal"
	NotificationFriend  NotificationType = "friend"
	NotificationWorkout NotificationType = "workout"
	NotificationGeneral NotificationType = "general"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotificationEmpty    = errors.New("notification title cannot be empty")
)

type NotificationEntry struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}

// NotificationInput is a notification before the registry assigns id and time.
type NotificationInput struct {
	Type    NotificationType `json:"type"`
	Title   string           `json:"title" binding:"required"`
	Message string           `json:"message"`
}
