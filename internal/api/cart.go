package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sufrah/backend/internal/middleware"
	"github.com/sufrah/backend/internal/service"
	"github.com/sufrah/backend/internal/types"
)

type CartHandler struct {
	cartService      service.ICartService
	apportionService *service.ApportionService
}

func NewCartHandler(cartService service.ICartService, apportionService *service.ApportionService) *CartHandler {
	return &CartHandler{cartService: cartService, apportionService: apportionService}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	cart := router.Group("/cart")
	cart.Use(middleware.AuthMiddleware(validator))
	{
		cart.GET("", h.Aggregate)
		cart.POST("/main/lines", h.AddMainLine)
		cart.POST("/offers/lines", h.AddOffersLine)
		cart.POST("/customized/lines", h.AddCustomizedLine)
		cart.POST("/customized/populate", h.PopulateRemainingDays)
		cart.DELETE("/:category/lines/:id", h.RemoveLine)
	}
}

// Aggregate prices all three carts and the grand total in one response.
func (h *CartHandler) Aggregate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	aggregate, appErr := h.cartService.AggregateCarts(c.Request.Context(), userID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(aggregate))
}

func (h *CartHandler) AddMainLine(c *gin.Context) {
	h.addPricedLine(c, types.CategoryMainMenu)
}

func (h *CartHandler) AddOffersLine(c *gin.Context) {
	h.addPricedLine(c, types.CategoryOffers)
}

func (h *CartHandler) addPricedLine(c *gin.Context, category types.Category) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AddMainCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	line, appErr := h.cartService.AddLine(c.Request.Context(), userID, category, req)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(line))
}

func (h *CartHandler) AddCustomizedLine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AddCustomizedCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	line, appErr := h.cartService.AddCustomizedLine(c.Request.Context(), userID, req)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(line))
}

// PopulateRemainingDays copies the filled repeat window across the rest
// of the week and reprices every day.
func (h *CartHandler) PopulateRemainingDays(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days, appErr := h.apportionService.PopulateRemainingDays(c.Request.Context(), userID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(days))
}

// cartCategoryFromPath maps the URL segments used by the add routes to
// their cart categories.
func cartCategoryFromPath(segment string) (types.Category, bool) {
	switch segment {
	case "main":
		return types.CategoryMainMenu, true
	case "offers":
		return types.CategoryOffers, true
	case "customized":
		return types.CategoryCustomizeOrder, true
	}
	return "", false
}

func (h *CartHandler) RemoveLine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	lineID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	category, ok := cartCategoryFromPath(c.Param("category"))
	if !ok {
		respondError(c, types.NewValidationError("unknown cart category", "فئة سلة غير معروفة"))
		return
	}
	if appErr := h.cartService.RemoveLine(c.Request.Context(), userID, category, lineID); appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OKMessage("line removed", "تمت إزالة العنصر"))
}
