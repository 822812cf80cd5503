package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sufrah/backend/internal/middleware"
	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/service"
	"github.com/sufrah/backend/internal/types"
)

type UpsertIntakeConfigRequest struct {
	DietCategory types.DietCategory `json:"diet_category" binding:"required"`

	MinProtein  float64 `json:"min_protein" binding:"required,gt=0"`
	MaxProtein  float64 `json:"max_protein" binding:"required,gt=0"`
	MinFat      float64 `json:"min_fat" binding:"required,gt=0"`
	MaxFat      float64 `json:"max_fat" binding:"required,gt=0"`
	MinCarbs    float64 `json:"min_carbs" binding:"required,gt=0"`
	MaxCarbs    float64 `json:"max_carbs" binding:"required,gt=0"`
	MinCalories float64 `json:"min_calories" binding:"required,gt=0"`
	MaxCalories float64 `json:"max_calories" binding:"required,gt=0"`

	CaloriesPerMealDivisor float64 `json:"calories_per_meal_divisor" binding:"required,gt=0"`
}

type IntakeHandler struct {
	intakeService *service.IntakeService
}

func NewIntakeHandler(intakeService *service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

func (h *IntakeHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	intake := router.Group("/intake")
	intake.Use(middleware.AuthMiddleware(validator))
	{
		intake.POST("", h.CreateProfile)
		intake.GET("", h.GetProfile)
	}

	admin := router.Group("/admin/intake")
	admin.Use(middleware.AuthMiddleware(validator), middleware.AdminMiddleware())
	{
		admin.GET("/configs", h.ListConfigs)
		admin.PUT("/configs", h.UpsertConfig)
		admin.DELETE("/:user_id", h.DeleteProfile)
	}
}

func (h *IntakeHandler) CreateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CustomizedMealIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	profile, appErr := h.intakeService.CreateProfile(c.Request.Context(), userID, req)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(profile))
}

func (h *IntakeHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, appErr := h.intakeService.GetProfile(c.Request.Context(), userID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(profile))
}

// UpsertConfig sets the intake bounds and the meals-per-day divisor for
// one diet category.
func (h *IntakeHandler) UpsertConfig(c *gin.Context) {
	var req UpsertIntakeConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	cfg := models.AdminCustomizedMealConfig{
		Diet:                   req.DietCategory,
		MinProtein:             req.MinProtein,
		MaxProtein:             req.MaxProtein,
		MinFat:                 req.MinFat,
		MaxFat:                 req.MaxFat,
		MinCarbs:               req.MinCarbs,
		MaxCarbs:               req.MaxCarbs,
		MinCalories:            req.MinCalories,
		MaxCalories:            req.MaxCalories,
		CaloriesPerMealDivisor: req.CaloriesPerMealDivisor,
	}
	if appErr := h.intakeService.UpsertConfig(c.Request.Context(), &cfg); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(cfg))
}

func (h *IntakeHandler) ListConfigs(c *gin.Context) {
	configs, appErr := h.intakeService.ListConfigs(c.Request.Context())
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(configs))
}

// DeleteProfile removes the target user's profile so they go through
// intake again.
func (h *IntakeHandler) DeleteProfile(c *gin.Context) {
	targetID, ok := pathUUID(c, "user_id")
	if !ok {
		return
	}

	if appErr := h.intakeService.DeleteProfile(c.Request.Context(), targetID); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OKMessage("profile deleted", "تم حذف الملف الغذائي"))
}
