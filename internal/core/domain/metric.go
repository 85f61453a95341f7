package domain

import (
	"errors"
	"math"
)

const (
	DefaultDailyGoal = 8
	DefaultDailyCap  = 8
	WeekLength       = 7
	GlassSizeML      = 250
)

var ErrInvalidAmount = errors.New("amount must be a positive number of servings")

// DailyMetricSample is one day of the weekly view. Value is in servings.
type DailyMetricSample struct {
	Date  DateKey `json:"date"`
	Day   string  `json:"day"`
	Value int     `json:"value"`
	Goal  int     `json:"goal"`
}

type MetricHistoryEntry struct {
	Date    DateKey `json:"date"`
	Glasses int     `json:"glasses"`
}

// WaterSummary is what a water widget renders for one user.
type WaterSummary struct {
	UserID     string              `json:"user_id"`
	Timezone   string              `json:"timezone"`
	Today      DateKey             `json:"today"`
	Total      int                 `json:"total"`
	Goal       int                 `json:"goal"`
	Cap        int                 `json:"cap"`
	Week       []DailyMetricSample `json:"week"`
	Average    float64             `json:"weekly_average"`
	GoalStreak int                 `json:"goal_streak"`
}

func (s WaterSummary) GoalReached() bool {
	return s.Goal > 0 && s.Total >= s.Goal
}

// WithTotal returns a copy with today's total replaced. The week slice is
// cloned so snapshots handed out earlier are never mutated.
func (s WaterSummary) WithTotal(total int) WaterSummary {
	week := make([]DailyMetricSample, len(s.Week))
	copy(week, s.Week)
	for i := range week {
		if week[i].Date == s.Today {
			week[i].Value = total
		}
	}
	s.Week = week
	s.Total = total
	s.Average = WeeklyAverage(week)
	s.GoalStreak = GoalStreak(week, s.Today)
	return s
}

// ApplyDelta moves a daily total by delta. Adding stops at cap and never
// lowers a total that is already above it; removing only floors at zero.
func ApplyDelta(total, delta, cap int) int {
	if delta <= 0 {
		return ClampTotal(total+delta, 0)
	}
	if cap > 0 && total >= cap {
		return total
	}
	return ClampTotal(total+delta, cap)
}

func ClampTotal(total, cap int) int {
	if total < 0 {
		return 0
	}
	if cap > 0 && total > cap {
		return cap
	}
	return total
}

// WeekEnding returns the seven consecutive dates ending on today, oldest first.
func WeekEnding(today DateKey) []DateKey {
	days := make([]DateKey, WeekLength)
	for i := 0; i < WeekLength; i++ {
		days[i] = today.AddDays(i - (WeekLength - 1))
	}
	return days
}

// BuildWeeklyView left-joins history onto the date skeleton ending today.
// Dates outside the window are ignored and missing dates read as 0.
func BuildWeeklyView(today DateKey, history []MetricHistoryEntry, goal int) []DailyMetricSample {
	byDate := make(map[DateKey]int, len(history))
	for _, h := range history {
		if _, seen := byDate[h.Date]; seen {
			continue
		}
		byDate[h.Date] = h.Glasses
	}

	days := WeekEnding(today)
	view := make([]DailyMetricSample, 0, len(days))
	for _, d := range days {
		view = append(view, DailyMetricSample{
			Date:  d,
			Day:   d.Weekday().String()[:3],
			Value: byDate[d],
			Goal:  goal,
		})
	}
	return view
}

// WeeklyAverage is rounded to one decimal place.
func WeeklyAverage(view []DailyMetricSample) float64 {
	if len(view) == 0 {
		return 0
	}
	sum := 0
	for _, s := range view {
		sum += s.Value
	}
	avg := float64(sum) / float64(len(view))
	return math.Round(avg*10) / 10
}

// GoalStreak counts consecutive days at or above goal, walking back from today.
func GoalStreak(view []DailyMetricSample, today DateKey) int {
	var met []DateKey
	for _, s := range view {
		if s.Goal > 0 && s.Value >= s.Goal {
			met = append(met, s.Date)
		}
	}
	if len(met) == 0 || met[len(met)-1] != today {
		return 0
	}
	current, _ := ConsecutiveDays(met, today)
	return current
}

// CrossedGoal is true only on the transition from below goal to at/above it.
func CrossedGoal(before, after, goal int) bool {
	return goal > 0 && before < goal && after >= goal
}
