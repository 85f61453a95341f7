package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

var defaultStreakTypes = []string{domain.StreakTypeWater, domain.StreakTypeWorkout, domain.StreakTypeFood}

type StreakHandler struct {
	svc *services.StreakService
}

func NewStreakHandler(svc *services.StreakService) *StreakHandler {
	return &StreakHandler{svc: svc}
}

func (h *StreakHandler) RegisterRoutes(router *gin.RouterGroup) {
	streaks := router.Group("/streaks")
	{
		streaks.GET("", h.List)
		streaks.GET("/:type", h.Get)
		streaks.POST("/:type/update", h.Update)
		streaks.POST("/:type/reset", h.Reset)
	}
}

// List godoc
// @Summary  All streaks of the current user
// @Tags     streaks
// @Produce  json
// @Success  200 {array} services.StreakView
// @Router   /streaks [get]
func (h *StreakHandler) List(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		views := make([]services.StreakView, 0, len(defaultStreakTypes))
		for _, t := range defaultStreakTypes {
			views = append(views, h.svc.View(c.Request.Context(), "", t))
		}
		c.JSON(http.StatusOK, views)
		return
	}

	views, err := h.svc.All(c.Request.Context(), uid, defaultStreakTypes...)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Get refreshes one streak widget. A failed refresh still answers 200 with the
// previously loaded record and the error recorded on the view.
//
// @Summary  One streak with its derived fields
// @Tags     streaks
// @Produce  json
// @Param    type path string true "streak type"
// @Success  200 {object} services.StreakView
// @Router   /streaks/{type} [get]
func (h *StreakHandler) Get(c *gin.Context) {
	view, err := h.svc.Refresh(c.Request.Context(), userID(c), c.Param("type"))
	if err != nil && view.StreakType == "" {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary  Register a qualifying action for today
// @Tags     streaks
// @Produce  json
// @Param    type path string true "streak type"
// @Success  200 {object} domain.StreakRecord
// @Router   /streaks/{type}/update [post]
func (h *StreakHandler) Update(c *gin.Context) {
	rec, err := h.svc.Update(c.Request.Context(), userID(c), c.Param("type"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary  Reset a streak to zero
// @Tags     streaks
// @Produce  json
// @Param    type path string true "streak type"
// @Success  200 {object} domain.StreakRecord
// @Router   /streaks/{type}/reset [post]
func (h *StreakHandler) Reset(c *gin.Context) {
	rec, err := h.svc.Reset(c.Request.Context(), userID(c), c.Param("type"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
