package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

type WaitlistHandler struct {
	svc *services.WaitlistService
}

func NewWaitlistHandler(svc *services.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{svc: svc}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *WaitlistHandler) RegisterRoutes(router *gin.RouterGroup) {
	w := router.Group("/waitlist")
	{
		w.POST("/join", h.Join)
		w.GET("/stats", h.Stats)
		w.GET("/entries", h.Entries)
		w.PUT("/entries/:id/status", h.UpdateStatus)
	}
}

// @Summary  Join the waitlist
// @Tags     waitlist
// @Accept   json
// @Produce  json
// @Success  201 {object} domain.WaitlistJoinResult
// @Router   /waitlist/join [post]
func (h *WaitlistHandler) Join(c *gin.Context) {
	var app domain.WaitlistApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Join(c.Request.Context(), app)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *WaitlistHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *WaitlistHandler) Entries(c *gin.Context) {
	q := domain.WaitlistQuery{Status: c.Query("status")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
			return
		}
		q.Limit = limit
	}

	page, err := h.svc.Entries(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *WaitlistHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
}
