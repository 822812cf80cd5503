package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sufrah/backend/internal/middleware"
	"github.com/sufrah/backend/internal/service"
	"github.com/sufrah/backend/internal/types"
)

type SetActivityFactorRequest struct {
	Level      int     `json:"level" binding:"required,min=1,max=6"`
	Multiplier float64 `json:"multiplier" binding:"required,gt=0"`
}

type SetCalorieFractionRequest struct {
	DietGoal string  `json:"diet_goal" binding:"required"`
	BodyType string  `json:"body_type"`
	Fraction float64 `json:"fraction" binding:"required,gt=0"`
}

type CalculatorHandler struct {
	calculatorService *service.CalculatorService
}

func NewCalculatorHandler(calculatorService *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculatorService: calculatorService}
}

func (h *CalculatorHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	calc := router.Group("/calculator")
	calc.Use(middleware.AuthMiddleware(validator))
	{
		calc.POST("/keto", h.KetoMacros)
		calc.POST("/macros", h.Macros)
	}

	admin := router.Group("/admin/calculator")
	admin.Use(middleware.AuthMiddleware(validator), middleware.AdminMiddleware())
	{
		admin.PUT("/activity-levels", h.SetActivityFactor)
		admin.PUT("/fractions", h.SetCalorieFraction)
	}
}

// SetActivityFactor overrides the TDEE multiplier for one activity
// level.
func (h *CalculatorHandler) SetActivityFactor(c *gin.Context) {
	var req SetActivityFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	factor, appErr := h.calculatorService.SetActivityLevelFactor(c.Request.Context(), req.Level, req.Multiplier)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(factor))
}

// SetCalorieFraction sets the TDEE coefficient for a goal or a
// (goal, body type) pair.
func (h *CalculatorHandler) SetCalorieFraction(c *gin.Context) {
	var req SetCalorieFractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	fraction, appErr := h.calculatorService.SetCalorieFraction(c.Request.Context(), req.DietGoal, req.BodyType, req.Fraction)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(fraction))
}

// KetoMacros computes keto-diet gram targets from body metrics.
func (h *CalculatorHandler) KetoMacros(c *gin.Context) {
	var metrics types.UserMetrics
	if err := c.ShouldBindJSON(&metrics); err != nil {
		respondBadRequest(c)
		return
	}

	result, appErr := h.calculatorService.ComputeKetoMacros(c.Request.Context(), metrics)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(result))
}

// Macros computes clean-diet gram targets from body metrics.
func (h *CalculatorHandler) Macros(c *gin.Context) {
	var metrics types.UserMetrics
	if err := c.ShouldBindJSON(&metrics); err != nil {
		respondBadRequest(c)
		return
	}

	result, appErr := h.calculatorService.ComputeMacros(c.Request.Context(), metrics)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(result))
}
