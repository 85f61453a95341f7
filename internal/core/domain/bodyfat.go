package domain

import (
	"errors"
	"time"
)

var ErrInvalidMeasurement = errors.New("measurements must be positive and body fat between 0 and 100")

type BodyFatMeasurements struct {
	Height            float64  `json:"height"`
	Neck              float64  `json:"neck"`
	Waist             float64  `json:"waist"`
	Hip               *float64 `json:"hip,omitempty"`
	BodyFatPercentage float64  `json:"body_fat_percentage"`
}

func (m BodyFatMeasurements) Validate() error {
	if m.Height <= 0 || m.Neck <= 0 || m.Waist <= 0 {
		return ErrInvalidMeasurement
	}
	if m.Hip != nil && *m.Hip <= 0 {
		return ErrInvalidMeasurement
	}
	if m.BodyFatPercentage < 0 || m.BodyFatPercentage > 100 {
		return ErrInvalidMeasurement
	}
	return nil
}

type BodyFatLog struct {
	ID        string    `json:"id"`
	Height    float64   `json:"height"`
	Neck      float64   `json:"neck"`
	Waist     float64   `json:"waist"`
	Hip       *float64  `json:"hip,omitempty"`
	BodyFat   float64   `json:"body_fat"`
	Timestamp time.Time `json:"timestamp"`
}
