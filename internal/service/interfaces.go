package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, phone, password, username string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	GenerateToken(user *models.User) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IDiscountService defines the interface for discount resolution and
// rule management
type IDiscountService interface {
	Resolve(ctx context.Context, category types.Category, subtotal float64) (float64, float64, *types.AppError)
	CreateRange(ctx context.Context, req types.CreateDiscountRangeRequest) (*models.DiscountRange, *types.AppError)
	UpdateRange(ctx context.Context, rangeID uuid.UUID, req types.UpdateDiscountRangeRequest) (*models.DiscountRange, *types.AppError)
	DeleteRange(ctx context.Context, rangeID uuid.UUID) *types.AppError
	GetRule(ctx context.Context, category types.Category) (*models.DiscountRule, *types.AppError)
}

// ICartService defines the interface for cart mutation and aggregation
type ICartService interface {
	AddLine(ctx context.Context, userID uuid.UUID, category types.Category, req types.AddMainCartLineRequest) (*models.CartLine, *types.AppError)
	AddCustomizedLine(ctx context.Context, userID uuid.UUID, req types.AddCustomizedCartLineRequest) (*models.CartLine, *types.AppError)
	RemoveLine(ctx context.Context, userID uuid.UUID, category types.Category, lineID uuid.UUID) *types.AppError
	AggregateCarts(ctx context.Context, userID uuid.UUID) (*types.CartAggregate, *types.AppError)
	ClearCarts(ctx context.Context, userID uuid.UUID) error
}

// IOrderService defines the interface for order placement and status
// transitions
type IOrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req types.PlaceOrderRequest) (*models.Order, *types.AppError)
	TransitionStatus(ctx context.Context, orderID uuid.UUID, field types.OrderStatusField, value string) (*models.Order, *types.AppError)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *types.AppError)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, *types.AppError)
}

// Interface assertions
var (
	_ IAuthService     = (*AuthService)(nil)
	_ IDiscountService = (*DiscountService)(nil)
	_ ICartService     = (*CartService)(nil)
	_ IOrderService    = (*OrderService)(nil)
)
