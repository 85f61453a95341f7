package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

type WaterHandler struct {
	svc *services.WaterService
}

func NewWaterHandler(svc *services.WaterService) *WaterHandler {
	return &WaterHandler{svc: svc}
}

type waterChangeRequest struct {
	Amount int `json:"amount" binding:"required"`
}

type waterDisplay struct {
	Unit        domain.WaterUnit `json:"unit"`
	Label       string           `json:"label"`
	TodayAmount float64          `json:"today_amount"`
	GoalAmount  float64          `json:"goal_amount"`
}

type waterResponse struct {
	domain.WaterSummary
	Display waterDisplay `json:"display"`
}

func (h *WaterHandler) RegisterRoutes(router *gin.RouterGroup) {
	water := router.Group("/water")
	{
		water.GET("", h.Get)
		water.POST("/add", h.Add)
		water.POST("/remove", h.Remove)
	}
}

// displayUnit reads ?unit=ml|cup|fl_oz, falling back to ?units=metric|imperial.
func displayUnit(c *gin.Context) (domain.WaterUnit, error) {
	if u := c.Query("unit"); u != "" {
		return domain.ParseWaterUnit(u)
	}
	system, err := domain.ParseUnitSystem(c.Query("units"))
	if err != nil {
		return "", err
	}
	return domain.WaterUnitFor(system), nil
}

func respondWater(c *gin.Context, s domain.WaterSummary, unit domain.WaterUnit) {
	c.JSON(http.StatusOK, waterResponse{
		WaterSummary: s,
		Display: waterDisplay{
			Unit:        unit,
			Label:       unit.Label(),
			TodayAmount: domain.RoundTo(domain.ServingsToWater(float64(s.Total), unit), 1),
			GoalAmount:  domain.RoundTo(domain.ServingsToWater(float64(s.Goal), unit), 1),
		},
	})
}

// @Summary  Today's water intake and the last seven days
// @Tags     water
// @Produce  json
// @Param    unit  query string false "ml, cup or fl_oz"
// @Param    units query string false "metric or imperial"
// @Success  200 {object} domain.WaterSummary
// @Router   /water [get]
func (h *WaterHandler) Get(c *gin.Context) {
	unit, err := displayUnit(c)
	if err != nil {
		handleError(c, err)
		return
	}

	summary, err := h.svc.RefreshWeek(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	respondWater(c, summary, unit)
}

// @Summary  Add servings to today's total
// @Tags     water
// @Accept   json
// @Produce  json
// @Success  200 {object} domain.WaterSummary
// @Router   /water/add [post]
func (h *WaterHandler) Add(c *gin.Context) {
	h.change(c, h.svc.AddSample)
}

// @Summary  Remove servings from today's total
// @Tags     water
// @Accept   json
// @Produce  json
// @Success  200 {object} domain.WaterSummary
// @Router   /water/remove [post]
func (h *WaterHandler) Remove(c *gin.Context) {
	h.change(c, h.svc.RemoveSample)
}

func (h *WaterHandler) change(c *gin.Context, apply func(ctx context.Context, userID string, delta int) (domain.WaterSummary, error)) {
	unit, err := displayUnit(c)
	if err != nil {
		handleError(c, err)
		return
	}

	var req waterChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := apply(c.Request.Context(), userID(c), req.Amount)
	if err != nil {
		handleError(c, err)
		return
	}
	respondWater(c, summary, unit)
}
