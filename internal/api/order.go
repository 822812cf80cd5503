package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/middleware"
	"github.com/sufrah/backend/internal/service"
	"github.com/sufrah/backend/internal/types"
)

type OrderHandler struct {
	orderService service.IOrderService
	db           *gorm.DB
	rateLimiter  *middleware.RateLimiter
}

func NewOrderHandler(orderService service.IOrderService, db *gorm.DB, rateLimiter *middleware.RateLimiter) *OrderHandler {
	return &OrderHandler{orderService: orderService, db: db, rateLimiter: rateLimiter}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	orders := router.Group("/orders")
	orders.Use(middleware.AuthMiddleware(validator))
	{
		place := orders.Group("")
		place.Use(middleware.RequireVerifiedProfile(h.db))
		if h.rateLimiter != nil {
			place.Use(h.rateLimiter.RateLimitMiddleware())
		}
		place.POST("", h.PlaceOrder)

		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
	}

	admin := router.Group("/admin/orders")
	admin.Use(middleware.AuthMiddleware(validator), middleware.AdminMiddleware())
	{
		admin.PUT("/:id/status", h.TransitionStatus)
	}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	order, appErr := h.orderService.PlaceOrder(c.Request.Context(), userID, req)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusCreated, types.OK(order))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, appErr := h.orderService.ListOrders(c.Request.Context(), userID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, appErr := h.orderService.GetOrder(c.Request.Context(), orderID)
	if appErr != nil {
		respondError(c, appErr)
		return
	}

	// Customers may only read their own orders.
	isAdmin, _ := c.Get("is_admin")
	if order.UserID != userID && isAdmin != true {
		respondError(c, types.NewNotFoundError("order not found", "الطلب غير موجود"))
		return
	}
	c.JSON(http.StatusOK, types.OK(order))
}

func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.TransitionOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c)
		return
	}

	order, appErr := h.orderService.TransitionStatus(c.Request.Context(), orderID, req.Field, req.Value)
	if appErr != nil {
		respondError(c, appErr)
		return
	}
	c.JSON(http.StatusOK, types.OK(order))
}
