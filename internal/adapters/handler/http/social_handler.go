package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

type SocialHandler struct {
	svc *services.SocialService
}

func NewSocialHandler(svc *services.SocialService) *SocialHandler {
	return &SocialHandler{svc: svc}
}

type friendRequestBody struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *SocialHandler) RegisterRoutes(router *gin.RouterGroup) {
	friends := router.Group("/friends")
	{
		friends.GET("", h.Friends)
		friends.DELETE("/:id", h.RemoveFriend)
		friends.GET("/requests/incoming", h.Incoming)
		friends.GET("/requests/outgoing", h.Outgoing)
		friends.POST("/requests", h.SendRequest)
		friends.POST("/requests/:id/accept", h.pairAction((*services.SocialService).AcceptRequest))
		friends.POST("/requests/:id/reject", h.pairAction((*services.SocialService).RejectRequest))
		friends.DELETE("/requests/:id", h.pairAction((*services.SocialService).RevokeRequest))
	}

	router.POST("/workouts", h.LogWorkout)
}

func (h *SocialHandler) Friends(c *gin.Context) {
	list, err := h.svc.Friends(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SocialHandler) Incoming(c *gin.Context) {
	list, err := h.svc.IncomingRequests(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SocialHandler) Outgoing(c *gin.Context) {
	list, err := h.svc.OutgoingRequests(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary  Send a friend request
// @Tags     friends
// @Accept   json
// @Success  204
// @Router   /friends/requests [post]
func (h *SocialHandler) SendRequest(c *gin.Context) {
	var req friendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SendRequest(c.Request.Context(), userID(c), req.UserID); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pairAction runs a call on the pair (current user, :id).
func (h *SocialHandler) pairAction(call func(*services.SocialService, context.Context, string, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := call(h.svc, c.Request.Context(), userID(c), c.Param("id")); err != nil {
			handleError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *SocialHandler) RemoveFriend(c *gin.Context) {
	if err := h.svc.RemoveFriend(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary  Log a completed workout
// @Tags     workouts
// @Accept   json
// @Success  204
// @Router   /workouts [post]
func (h *SocialHandler) LogWorkout(c *gin.Context) {
	var w domain.WorkoutLog
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.LogWorkout(c.Request.Context(), userID(c), w); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
