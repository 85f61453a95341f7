package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

type BodyFatHandler struct {
	svc *services.BodyFatService
}

func NewBodyFatHandler(svc *services.BodyFatService) *BodyFatHandler {
	return &BodyFatHandler{svc: svc}
}

func (h *BodyFatHandler) RegisterRoutes(router *gin.RouterGroup) {
	bf := router.Group("/bodyfat")
	{
		bf.POST("", h.Log)
		bf.GET("/latest", h.Latest)
		bf.GET("/history", h.History)
	}
}

// @Summary  Log a body fat measurement
// @Tags     bodyfat
// @Accept   json
// @Produce  json
// @Success  201 {object} domain.BodyFatLog
// @Router   /bodyfat [post]
func (h *BodyFatHandler) Log(c *gin.Context) {
	var m domain.BodyFatMeasurements
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.svc.Log(c.Request.Context(), userID(c), m)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Latest answers 204 when nothing was logged yet.
func (h *BodyFatHandler) Latest(c *gin.Context) {
	entry, err := h.svc.Latest(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *BodyFatHandler) History(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
