package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sufrah/backend/internal/middleware"
	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/service"
	"github.com/sufrah/backend/internal/types"
)

// maxImageSize caps menu image uploads at 5 MiB.
const maxImageSize = 5 << 20

type CreatePricedItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	NameAr      string  `json:"name_ar"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Visible     *bool   `json:"visible"`
}

type CreateCustomizedMealRequest struct {
	Name    string  `json:"name" binding:"required"`
	NameAr  string  `json:"name_ar"`
	Protein float64 `json:"protein" binding:"min=0"`
	Fadd    float64 `json:"fadd" binding:"min=0"`
	Carbs   float64 `json:"carbs" binding:"min=0"`
	Prp     float64 `json:"prp" binding:"min=0"`
	Prc     float64 `json:"prc" binding:"min=0"`
	Prf     float64 `json:"prf" binding:"min=0"`
	Mf      float64 `json:"mf" binding:"min=0"`
	Sf      float64 `json:"sf" binding:"min=0"`
	Of      float64 `json:"of" binding:"min=0"`
	Fmf     float64 `json:"fmf" binding:"min=0"`
	Visible *bool   `json:"visible"`
}

type CreatePlanOptionRequest struct {
	Kind  types.PlanOptionKind `json:"kind" binding:"required"`
	Value int                  `json:"value" binding:"required,gt=0"`
}

type SetVisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

type MenuHandler struct {
	menuService *service.MenuService
}

func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	menu := router.Group("/menu")
	{
		menu.GET("/main", h.ListMainMenu)
		menu.GET("/offers", h.ListOfferedMeals)
		menu.GET("/customized", h.ListCustomizedMeals)
		menu.GET("/plan-options/:kind", h.ListPlanOptions)
	}

	admin := router.Group("/admin/menu")
	admin.Use(middleware.AuthMiddleware(validator), middleware.AdminMiddleware())
	{
		admin.POST("/main", h.CreateMainMenuItem)
		admin.POST("/offers", h.CreateOfferedMeal)
		admin.POST("/customized", h.CreateCustomizedMeal)
		admin.POST("/plan-options", h.CreatePlanOption)
		admin.PUT("/plan-options/:id/visibility", h.SetPlanOptionVisibility)
		admin.PUT("/:category/:id/visibility", h.SetVisibility)
		admin.POST("/:category/:id/image", h.UploadImage)
	}
}

func (h *MenuHandler) ListMainMenu(c *gin.Context) {
	items, appErr := h.menuService.ListMainMenu(c.Request.Context())
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(items))
}

func (h *MenuHandler) ListOfferedMeals(c *gin.Context) {
	items, appErr := h.menuService.ListOfferedMeals(c.Request.Context())
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(items))
}

func (h *MenuHandler) ListCustomizedMeals(c *gin.Context) {
	items, appErr := h.menuService.ListCustomizedMeals(c.Request.Context())
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(items))
}

func (h *MenuHandler) ListPlanOptions(c *gin.Context) {
	options, appErr := h.menuService.ListPlanOptions(c.Request.Context(), types.PlanOptionKind(c.Param("kind")))
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(options))
}

func (h *MenuHandler) CreateMainMenuItem(c *gin.Context) {
	var req CreatePricedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		NameAr:      req.NameAr,
		Description: req.Description,
		Price:       req.Price,
		Visible:     req.Visible == nil || *req.Visible,
	}
	if appErr := h.menuService.CreateMainMenuItem(c.Request.Context(), &item); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(item))
}

func (h *MenuHandler) CreateOfferedMeal(c *gin.Context) {
	var req CreatePricedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	item := models.OfferedMeal{
		Name:        req.Name,
		NameAr:      req.NameAr,
		Description: req.Description,
		Price:       req.Price,
		Visible:     req.Visible == nil || *req.Visible,
	}
	if appErr := h.menuService.CreateOfferedMeal(c.Request.Context(), &item); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(item))
}

func (h *MenuHandler) CreateCustomizedMeal(c *gin.Context) {
	var req CreateCustomizedMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	item := models.CustomizedMealMenu{
		Name:    req.Name,
		NameAr:  req.NameAr,
		Protein: req.Protein,
		Fadd:    req.Fadd,
		Carbs:   req.Carbs,
		Prp:     req.Prp,
		Prc:     req.Prc,
		Prf:     req.Prf,
		Mf:      req.Mf,
		Sf:      req.Sf,
		Of:      req.Of,
		Fmf:     req.Fmf,
		Visible: req.Visible == nil || *req.Visible,
	}
	if appErr := h.menuService.CreateCustomizedMeal(c.Request.Context(), &item); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(item))
}

func (h *MenuHandler) CreatePlanOption(c *gin.Context) {
	var req CreatePlanOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	option := models.PlanOption{Kind: req.Kind, Value: req.Value, Visible: true}
	if appErr := h.menuService.CreatePlanOption(c.Request.Context(), &option); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(option))
}

func (h *MenuHandler) SetPlanOptionVisibility(c *gin.Context) {
	optionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	if appErr := h.menuService.SetPlanOptionVisibility(c.Request.Context(), optionID, *req.Visible); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OKMessage("visibility updated", "تم تحديث الظهور"))
}

func (h *MenuHandler) SetVisibility(c *gin.Context) {
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req SetVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	category := types.Category(c.Param("category"))
	if appErr := h.menuService.SetVisibility(c.Request.Context(), category, itemID, *req.Visible); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OKMessage("visibility updated", "تم تحديث الظهور"))
}

func (h *MenuHandler) UploadImage(c *gin.Context) {
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImageSize+1))
	if err != nil || len(data) == 0 {
		respondBadRequest(c)
		return
	}
	if len(data) > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, types.Fail(types.NewValidationError(
			"image too large",
			"حجم الصورة كبير جداً",
		)))
		return
	}

	category := types.Category(c.Param("category"))
	key, appErr := h.menuService.UploadImage(c.Request.Context(), category, itemID, data, c.ContentType())
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(gin.H{"image_key": key}))
}
