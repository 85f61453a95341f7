package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	StreakTypeWater   = "water"
	StreakTypeWorkout = "workout"
	StreakTypeFood    = "food"
)

var (
	ErrInvalidStreakType = errors.New("invalid streak type")
	ErrStreakDates       = errors.New("streak start date is after last logged date")
	ErrNegativeStreak    = errors.New("streak count cannot be negative")
)

type StreakRecord struct {
	StreakType     string   `json:"streak_type"`
	CurrentStreak  int      `json:"current_streak"`
	LongestStreak  int      `json:"longest_streak,omitempty"`
	LastLoggedDate *DateKey `json:"last_logged_date"`
	StartDate      *DateKey `json:"start_date"`
}

func ZeroStreak(streakType string) StreakRecord {
	return StreakRecord{StreakType: streakType}
}

func ValidateStreakType(streakType string) error {
	if streakType == "" || len(streakType) > 32 {
		return ErrInvalidStreakType
	}
	for _, r := range streakType {
		if !(r >= 'a' && r <= 'z') && r != '_' && r != '-' {
			return ErrInvalidStreakType
		}
	}
	return nil
}

func (r StreakRecord) Validate() error {
	if r.CurrentStreak < 0 {
		return ErrNegativeStreak
	}
	if r.StartDate != nil && r.LastLoggedDate != nil && r.StartDate.After(*r.LastLoggedDate) {
		return ErrStreakDates
	}
	return nil
}

// IsStale reports whether the streak can no longer be alive on today: nothing
// was ever logged, or the last log is older than yesterday.
func (r StreakRecord) IsStale(today DateKey) bool {
	if r.LastLoggedDate == nil {
		return true
	}
	return r.LastLoggedDate.Before(today.AddDays(-1))
}

// Effective is the count a consumer must display. A stale record reads as 0
// even when the stored value is still positive.
func (r StreakRecord) Effective(today DateKey) int {
	if r.IsStale(today) || r.CurrentStreak < 0 {
		return 0
	}
	return r.CurrentStreak
}

func (r StreakRecord) LoggedOn(day DateKey) bool {
	return r.LastLoggedDate != nil && *r.LastLoggedDate == day
}

// HasLoggedToday compares the last logged date with today in loc.
func HasLoggedToday(r StreakRecord, loc *time.Location, now time.Time) bool {
	return r.LoggedOn(LocalCalendarDate(now, loc))
}

// HoursUntilStreakReset counts the minutes left until local midnight and rounds
// up to whole hours. The result is always in [1, 24]; a record that was never
// logged reports the full day.
func HoursUntilStreakReset(r StreakRecord, loc *time.Location, now time.Time) int {
	if r.LastLoggedDate == nil {
		return 24
	}
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	minutesIntoDay := local.Hour()*60 + local.Minute()
	minutesLeft := 24*60 - minutesIntoDay
	return (minutesLeft + 59) / 60
}

func FormatStreak(count int) string {
	switch {
	case count <= 0:
		return "No streak"
	case count == 1:
		return "1 day streak"
	default:
		return fmt.Sprintf("%d day streak", count)
	}
}

// StreakFor picks one type out of an all-streaks response; absent types read
// as the zero record.
func StreakFor(all map[string]StreakRecord, streakType string) StreakRecord {
	if r, ok := all[streakType]; ok {
		if r.StreakType == "" {
			r.StreakType = streakType
		}
		return r
	}
	return ZeroStreak(streakType)
}

// ConsecutiveDays computes the current and longest run of consecutive days in
// dates. Duplicates count once and order does not matter. The current run only
// survives if its latest day is today or yesterday.
func ConsecutiveDays(dates []DateKey, today DateKey) (int, int) {
	if len(dates) == 0 {
		return 0, 0
	}

	unique := make(map[DateKey]bool)
	var sorted []DateKey
	for _, d := range dates {
		if !d.Valid() || unique[d] {
			continue
		}
		unique[d] = true
		sorted = append(sorted, d)
	}

	if len(sorted) == 0 {
		return 0, 0
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].After(sorted[j])
	})

	current := 0
	latest := sorted[0]
	if !latest.After(today) && latest.DaysUntil(today) <= 1 {
		current = 1
		for i := 0; i < len(sorted)-1; i++ {
			if sorted[i+1].AddDays(1) == sorted[i] {
				current++
			} else {
				break
			}
		}
	}

	longest := 0
	run := 1
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i+1].AddDays(1) == sorted[i] {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	return current, longest
}
