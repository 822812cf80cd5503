package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sufrah/backend/internal/middleware"
	"github.com/sufrah/backend/internal/service"
	"github.com/sufrah/backend/internal/types"
)

type DiscountHandler struct {
	discountService service.IDiscountService
}

func NewDiscountHandler(discountService service.IDiscountService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService}
}

func (h *DiscountHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	admin := router.Group("/admin/discounts")
	admin.Use(middleware.AuthMiddleware(validator), middleware.AdminMiddleware())
	{
		admin.GET("/:category", h.GetRule)
		admin.POST("/ranges", h.CreateRange)
		admin.PUT("/ranges/:id", h.UpdateRange)
		admin.DELETE("/ranges/:id", h.DeleteRange)
	}
}

func (h *DiscountHandler) GetRule(c *gin.Context) {
	category := types.Category(c.Param("category"))
	rule, appErr := h.discountService.GetRule(c.Request.Context(), category)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(rule))
}

func (h *DiscountHandler) CreateRange(c *gin.Context) {
	var req types.CreateDiscountRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	rng, appErr := h.discountService.CreateRange(c.Request.Context(), req)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(rng))
}

func (h *DiscountHandler) UpdateRange(c *gin.Context) {
	rangeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateDiscountRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	rng, appErr := h.discountService.UpdateRange(c.Request.Context(), rangeID, req)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(rng))
}

func (h *DiscountHandler) DeleteRange(c *gin.Context) {
	rangeID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if appErr := h.discountService.DeleteRange(c.Request.Context(), rangeID); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OKMessage("range deleted", "تم حذف النطاق"))
}
