package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type createGoalRequest struct {
	Title    string `json:"title" binding:"required"`
	Target   string `json:"target"`
	Current  string `json:"current"`
	Progress int    `json:"progress"`
	Category string `json:"category"`
	Deadline string `json:"deadline"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.List)
		goals.POST("", h.Create)
		goals.PATCH("/:id", h.Update)
		goals.DELETE("/:id", h.Delete)
	}
}

func goalID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal id must be a number"})
		return 0, false
	}
	return id, true
}

// @Summary  Goals kept on this device
// @Tags     goals
// @Produce  json
// @Success  200 {array} domain.UserGoal
// @Router   /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.svc.Load(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.Add(c.Request.Context(), domain.UserGoal{
		Title:    req.Title,
		Target:   req.Target,
		Current:  req.Current,
		Progress: req.Progress,
		Category: req.Category,
		Deadline: req.Deadline,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := goalID(c)
	if !ok {
		return
	}

	var patch domain.GoalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := goalID(c)
	if !ok {
		return
	}

	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
