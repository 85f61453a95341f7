package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

type NotificationHandler struct {
	svc *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	n := router.Group("/notifications")
	{
		n.GET("", h.List)
		n.POST("", h.Create)
		n.GET("/unread-count", h.UnreadCount)
		n.POST("/read-all", h.MarkAllAsRead)
		n.POST("/:id/read", h.MarkAsRead)
		n.DELETE("/:id", h.Delete)
		n.DELETE("", h.Clear)
	}
}

// @Summary  Notifications, newest first
// @Tags     notifications
// @Produce  json
// @Success  200 {array} domain.NotificationEntry
// @Router   /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var in domain.NotificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.Add(in)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"unread": h.svc.UnreadCount()})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	if err := h.svc.MarkAsRead(c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	h.svc.MarkAllAsRead()
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.svc.Remove(c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) Clear(c *gin.Context) {
	h.svc.ClearAll()
	c.Status(http.StatusNoContent)
}
