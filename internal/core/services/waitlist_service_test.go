package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

func TestWaitlistService(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Entries normalises the query", func(t *testing.T) {
		waitlist := new(MockWaitlistAPI)
		svc := services.NewWaitlistService(waitlist)
		waitlist.On("WaitlistEntries", ctx, domain.WaitlistQuery{Limit: 50}).Return(&domain.WaitlistPage{Count: 0}, nil)

		page, err := svc.Entries(ctx, domain.WaitlistQuery{})

		require.NoError(t, err)
		assert.Equal(t, 0, page.Count)
		waitlist.AssertExpectations(t)
	})

	t.Run("Fail: Unknown status rejected locally", func(t *testing.T) {
		waitlist := new(MockWaitlistAPI)
		svc := services.NewWaitlistService(waitlist)

		assert.ErrorIs(t, svc.UpdateStatus(ctx, "w1", "vip"), domain.ErrInvalidStatus)
		assert.ErrorIs(t, svc.UpdateStatus(ctx, " ", "active"), domain.ErrWaitlistIDRequired)
		_, err := svc.Entries(ctx, domain.WaitlistQuery{Status: "archived"})
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)

		waitlist.AssertNotCalled(t, "UpdateWaitlistStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success: Join sends the normalised application", func(t *testing.T) {
		waitlist := new(MockWaitlistAPI)
		svc := services.NewWaitlistService(waitlist)
		waitlist.On("JoinWaitlist", ctx, mock.MatchedBy(func(a domain.WaitlistApplication) bool {
			return a.Email == "ana@example.com"
		})).Return(&domain.WaitlistJoinResult{Success: true, Position: 12}, nil)

		res, err := svc.Join(ctx, domain.WaitlistApplication{
			PersonType: "student", ActivityLevel: "low", CurrentSituation: "x", DesiredResults: "y",
			BiggestChallenge: "z", PreviousAttempts: "none", Budget: "0-50", Email: "ANA@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, 12, res.Position)
	})
}

func TestBodyFatService(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Latest nil passes through", func(t *testing.T) {
		bodyFat := new(MockBodyFatAPI)
		svc := services.NewBodyFatService(bodyFat, nil)
		bodyFat.On("GetLatestBodyFat", ctx, "u1").Return(nil, nil)

		latest, err := svc.Latest(ctx, "u1")

		assert.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("Fail: Invalid measurements never reach the backend", func(t *testing.T) {
		bodyFat := new(MockBodyFatAPI)
		svc := services.NewBodyFatService(bodyFat, nil)

		_, err := svc.Log(ctx, "u1", domain.BodyFatMeasurements{Height: 0, Neck: 30, Waist: 80, BodyFatPercentage: 20})

		assert.ErrorIs(t, err, domain.ErrInvalidMeasurement)
		bodyFat.AssertNotCalled(t, "LogBodyFat", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fail: No user", func(t *testing.T) {
		svc := services.NewBodyFatService(new(MockBodyFatAPI), nil)
		_, err := svc.History(ctx, "")
		assert.ErrorIs(t, err, domain.ErrNoUser)
	})
}
