package domain

import (
	"errors"
	"strings"
)

// GoalsStorageKey is the device storage key holding the JSON-encoded goal list.
const GoalsStorageKey = "userGoals"

const (
	GoalCategoryWeight    = "weight"
	GoalCategoryFitness   = "fitness"
	GoalCategoryHydration = "hydration"
	GoalCategoryStrength  = "strength"
)

var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrGoalTitleEmpty = errors.New("goal title cannot be empty")
	ErrGoalCategory   = errors.New("unknown goal category")
)

type UserGoal struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Target   string `json:"target"`
	Current  string `json:"current"`
	Progress int    `json:"progress"`
	Category string `json:"category"`
	Deadline string `json:"deadline,omitempty"`
	Streak   int    `json:"streak"`
}

type GoalPatch struct {
	Title    *string `json:"title"`
	Target   *string `json:"target"`
	Current  *string `json:"current"`
	Progress *int    `json:"progress"`
	Category *string `json:"category"`
	Deadline *string `json:"deadline"`
	Streak   *int    `json:"streak"`
}

func DefaultGoals() []UserGoal {
	return []UserGoal{
		{ID: 1, Title: "Lose 15 pounds", Target: "150 lbs", Current: "165 lbs", Progress: 0, Category: GoalCategoryWeight, Deadline: "Dec 31, 2024"},
		{ID: 2, Title: "Walk 10K steps daily", Target: "10,000 steps", Current: "0 steps", Progress: 0, Category: GoalCategoryFitness, Deadline: "Dec 31, 2024"},
		{ID: 3, Title: "Drink 8 glasses of water", Target: "8 glasses", Current: "0 glasses", Progress: 0, Category: GoalCategoryHydration, Deadline: "Dec 31, 2024"},
		{ID: 4, Title: "Workout 5 times per week", Target: "5 workouts", Current: "0 workouts", Progress: 0, Category: GoalCategoryFitness, Deadline: "Dec 31, 2024"},
	}
}

func ValidGoalCategory(c string) bool {
	switch c {
	case GoalCategoryWeight, GoalCategoryFitness, GoalCategoryHydration, GoalCategoryStrength:
		return true
	}
	return false
}

// Normalize trims the title, defaults the category and clamps progress to 0..100.
func (g *UserGoal) Normalize() error {
	g.Title = strings.TrimSpace(g.Title)
	if g.Title == "" {
		return ErrGoalTitleEmpty
	}
	if g.Category == "" {
		g.Category = GoalCategoryFitness
	}
	if !ValidGoalCategory(g.Category) {
		return ErrGoalCategory
	}
	g.Progress = ClampProgress(g.Progress)
	if g.Streak < 0 {
		g.Streak = 0
	}
	return nil
}

func (g *UserGoal) Apply(p GoalPatch) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Target != nil {
		g.Target = *p.Target
	}
	if p.Current != nil {
		g.Current = *p.Current
	}
	if p.Progress != nil {
		g.Progress = *p.Progress
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	if p.Streak != nil {
		g.Streak = *p.Streak
	}
}

func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
