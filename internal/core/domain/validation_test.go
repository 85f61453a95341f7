package domain_test

import (
	"testing"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestUserGoal_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		goal         domain.UserGoal
		wantErr      error
		wantProgress int
		wantCategory string
	}{
		{
			name:         "Success: Defaults category",
			goal:         domain.UserGoal{Title: "  Run a 5k  ", Progress: 40},
			wantProgress: 40,
			wantCategory: domain.GoalCategoryFitness,
		},
		{
			name:         "Success: Progress clamped high",
			goal:         domain.UserGoal{Title: "Hydrate", Category: domain.GoalCategoryHydration, Progress: 140},
			wantProgress: 100,
			wantCategory: domain.GoalCategoryHydration,
		},
		{
			name:         "Success: Progress clamped low",
			goal:         domain.UserGoal{Title: "Lift", Category: domain.GoalCategoryStrength, Progress: -5},
			wantProgress: 0,
			wantCategory: domain.GoalCategoryStrength,
		},
		{
			name:    "Error: Empty title",
			goal:    domain.UserGoal{Title: "   "},
			wantErr: domain.ErrGoalTitleEmpty,
		},
		{
			name:    "Error: Unknown category",
			goal:    domain.UserGoal{Title: "x", Category: "sleep"},
			wantErr: domain.ErrGoalCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.goal
			err := g.Normalize()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantProgress, g.Progress)
			assert.Equal(t, tt.wantCategory, g.Category)
		})
	}
}

func TestDefaultGoals(t *testing.T) {
	goals := domain.DefaultGoals()

	assert.Len(t, goals, 4)
	assert.Equal(t, "Lose 15 pounds", goals[0].Title)
	assert.Equal(t, domain.GoalCategoryHydration, goals[2].Category)
	for i, g := range goals {
		assert.Equal(t, i+1, g.ID)
		assert.Equal(t, 0, g.Progress)
	}
}

func TestWaitlistApplication_Normalize(t *testing.T) {
	valid := func() domain.WaitlistApplication {
		return domain.WaitlistApplication{
			PersonType:       "professional",
			ActivityLevel:    "moderate",
			CurrentSituation: "desk job",
			DesiredResults:   "lose weight",
			BiggestChallenge: "time",
			PreviousAttempts: "gym",
			Budget:           "100-200",
			Email:            "  Ana@Example.com ",
		}
	}

	t.Run("Success: Trims and lowercases", func(t *testing.T) {
		app := valid()
		blank := "  "
		app.Phone = &blank

		assert.NoError(t, app.Normalize())
		assert.Equal(t, "ana@example.com", app.Email)
		assert.Nil(t, app.Phone)
	})

	t.Run("Error: Missing field", func(t *testing.T) {
		app := valid()
		app.Budget = ""
		assert.ErrorIs(t, app.Normalize(), domain.ErrMissingField)
	})

	t.Run("Error: Bad email", func(t *testing.T) {
		app := valid()
		app.Email = "not-an-email"
		assert.ErrorIs(t, app.Normalize(), domain.ErrInvalidEmail)
	})
}

func TestWaitlistQuery_Normalize(t *testing.T) {
	q := domain.WaitlistQuery{}
	assert.NoError(t, q.Normalize())
	assert.Equal(t, domain.DefaultWaitlistLimit, q.Limit)

	q = domain.WaitlistQuery{Limit: 1000, Status: "contacted"}
	assert.NoError(t, q.Normalize())
	assert.Equal(t, domain.MaxWaitlistLimit, q.Limit)

	q = domain.WaitlistQuery{Status: "vip"}
	assert.ErrorIs(t, q.Normalize(), domain.ErrInvalidStatus)
}

func TestBodyFatMeasurements_Validate(t *testing.T) {
	hip := 95.0
	ok := domain.BodyFatMeasurements{Height: 170, Neck: 36, Waist: 80, Hip: &hip, BodyFatPercentage: 21.4}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Waist = 0
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidMeasurement)

	bad = ok
	bad.BodyFatPercentage = 120
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidMeasurement)
}

func TestWorkoutLog_Normalize(t *testing.T) {
	w := domain.WorkoutLog{DurationMinutes: 30}
	assert.NoError(t, w.Normalize())
	assert.Equal(t, domain.DefaultRoutineName, w.RoutineName)
	assert.NotNil(t, w.SharedWith)

	w = domain.WorkoutLog{DurationMinutes: -1}
	assert.ErrorIs(t, w.Normalize(), domain.ErrInvalidWorkout)
}

func TestValidTopic(t *testing.T) {
	for _, topic := range domain.Topics() {
		assert.True(t, domain.ValidTopic(topic), topic)
	}
	assert.False(t, domain.ValidTopic("weather"))
	assert.False(t, domain.ValidTopic(""))
}
