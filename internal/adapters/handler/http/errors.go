package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/adapters/api"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

var badRequestErrors = []error{
	domain.ErrInvalidAmount,
	domain.ErrInvalidStreakType,
	domain.ErrInvalidMeasurement,
	domain.ErrInvalidEmail,
	domain.ErrInvalidStatus,
	domain.ErrMissingField,
	domain.ErrWaitlistIDRequired,
	domain.ErrGoalTitleEmpty,
	domain.ErrGoalCategory,
	domain.ErrNotificationEmpty,
	domain.ErrFriendIDRequired,
	domain.ErrSelfFriendship,
	domain.ErrInvalidWorkout,
	domain.ErrInvalidUnitSystem,
	domain.ErrInvalidWaterUnit,
	domain.ErrInvalidDate,
	domain.ErrUnknownTopic,
}

var notFoundErrors = []error{
	domain.ErrGoalNotFound,
	domain.ErrNotificationNotFound,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// handleError maps service and backend errors onto a response. Backend 4xx
// answers keep their status and detail; backend 5xx and transport failures
// become 502.
func handleError(c *gin.Context, err error) {
	var apiErr *api.Error
	var urlErr *url.Error

	switch {
	case errors.Is(err, domain.ErrNoUser):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case isAny(err, badRequestErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
			return
		}
		log.Error().Err(err).Int("status", apiErr.Status).Str("path", c.FullPath()).Msg("backend error")
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
	case errors.Is(err, context.Canceled):
		c.Status(499)
	case errors.As(err, &urlErr):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("backend unreachable")
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func userID(c *gin.Context) string {
	id, _ := middleware.GetUserID(c)
	return id
}
