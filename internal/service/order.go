package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/types"
)

// OrderService snapshots aggregated carts into immutable orders and
// drives the admin status transitions.
type OrderService struct {
	db            *gorm.DB
	carts         *CartService
	notifications *NotificationService
}

// NewOrderService creates a new OrderService instance
func NewOrderService(db *gorm.DB, carts *CartService, notifications *NotificationService) *OrderService {
	return &OrderService{db: db, carts: carts, notifications: notifications}
}

// PlaceOrder validates the preconditions, snapshots the current cart
// aggregate into an order, notifies the user and all admins, and clears
// the carts. Precondition failures mutate nothing; a failed snapshot
// leaves the carts intact for retry.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req types.PlaceOrderRequest) (*models.Order, *types.AppError) {
	if req.NumberOfMealsPerDay != nil {
		if appErr := s.checkPlanOption(ctx, types.PlanOptionMealsPerDay, *req.NumberOfMealsPerDay,
			"invalid number of meals per day", "عدد الوجبات اليومية غير صالح"); appErr != nil {
			return nil, appErr
		}
	}
	if req.PlanDuration != nil {
		if appErr := s.checkPlanOption(ctx, types.PlanOptionPlanDuration, *req.PlanDuration,
			"invalid plan duration", "مدة الخطة غير صالحة"); appErr != nil {
			return nil, appErr
		}
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("user not found", "المستخدم غير موجود")
		}
		log.Printf("order user lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	if user.Disabled {
		return nil, types.NewBusinessError("account is disabled", "الحساب معطل")
	}
	if user.Phone == "" {
		return nil, types.NewBusinessError(
			"a phone number is required to place an order",
			"رقم الهاتف مطلوب لإتمام الطلب",
		)
	}

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewBusinessError("profile not found", "الملف الشخصي غير موجود")
		}
		log.Printf("order profile lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	if !profile.Verified {
		return nil, types.NewBusinessError(
			"profile must be verified before ordering",
			"يجب توثيق الملف الشخصي قبل الطلب",
		)
	}

	aggregate, appErr := s.carts.AggregateCarts(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}
	if aggregate.Empty() {
		return nil, types.NewBusinessError("no items in cart", "لا توجد عناصر في السلة")
	}

	address := req.DeliveryAddress
	if address == "" {
		address = profile.DeliveryAddress
	}

	order := models.Order{
		ID:                             uuid.New(),
		UserID:                         userID,
		MainMeal:                       snapshotSummary(aggregate.MainMealCart),
		OfferedMeal:                    snapshotSummary(aggregate.OfferedMealCart),
		CustomizedMeal:                 snapshotSummary(aggregate.CustomizedMealCart),
		GrandTotal:                     aggregate.GrandTotal,
		DiscountOnGrandTotal:           aggregate.Discount,
		DiscountPercentageOnGrandTotal: aggregate.DiscountPercentageOnGrandTotal,
		GrandTotalAfterDiscount:        aggregate.GrandTotalAfterDiscount,
		NumberOfMealsPerDay:            req.NumberOfMealsPerDay,
		PlanDuration:                   req.PlanDuration,
		DeliveryAddress:                address,
		Phone:                          user.Phone,
		Notes:                          req.Notes,
		OrderStatus:                    types.OrderStatusPending,
		DeliveryStatus:                 types.DeliveryStatusPending,
		PaidStatus:                     false,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		log.Printf("order snapshot failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	// Notifications are fire-and-forget; the order stands even if they
	// fail.
	s.notifications.Notify(ctx, userID, "order.placed",
		types.Message{EN: "Order placed", AR: "تم تقديم الطلب"},
		types.Message{EN: "Your order was placed successfully", AR: "تم تقديم طلبك بنجاح"},
	)
	s.notifications.NotifyAdmins(ctx, "order.placed",
		types.Message{EN: "New order", AR: "طلب جديد"},
		types.Message{EN: "A new order is awaiting confirmation", AR: "طلب جديد بانتظار التأكيد"},
	)

	if err := s.carts.ClearCarts(ctx, userID); err != nil {
		// The order already exists; only log. The carts will be cleared
		// on the next successful placement.
		log.Printf("cart clear after order %s failed: %v", order.ID, err)
	}

	return &order, nil
}

func snapshotSummary(summary types.CartSummary) models.OrderCartSummary {
	return models.OrderCartSummary{
		Subtotal:              summary.Subtotal,
		Discount:              summary.Discount,
		DiscountPercentage:    summary.DiscountPercentage,
		SubtotalAfterDiscount: summary.SubtotalAfterDiscount,
	}
}

func (s *OrderService) checkPlanOption(ctx context.Context, kind types.PlanOptionKind, value int, en, ar string) *types.AppError {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.PlanOption{}).
		Where("kind = ? AND value = ? AND visible = ?", kind, value, true).
		Count(&count).Error; err != nil {
		log.Printf("plan option lookup failed: %v", err)
		return types.ErrSomethingWentWrong()
	}
	if count == 0 {
		return types.NewValidationError(en, ar)
	}
	return nil
}

// TransitionStatus mutates exactly one of the order's status fields,
// enforcing the state machine, and notifies the order's owner.
func (s *OrderService) TransitionStatus(ctx context.Context, orderID uuid.UUID, field types.OrderStatusField, value string) (*models.Order, *types.AppError) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("order not found", "الطلب غير موجود")
		}
		log.Printf("order lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	var appErr *types.AppError
	switch field {
	case types.FieldOrderStatus:
		appErr = s.transitionOrderStatus(&order, types.OrderStatus(value))
	case types.FieldDeliveryStatus:
		appErr = s.transitionDeliveryStatus(&order, types.DeliveryStatus(value))
	case types.FieldPaidStatus:
		appErr = s.transitionPaidStatus(&order, value)
	default:
		appErr = types.NewValidationError("unknown status field", "حقل حالة غير معروف")
	}
	if appErr != nil {
		return nil, appErr
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"order_status":    order.OrderStatus,
			"delivery_status": order.DeliveryStatus,
			"paid_status":     order.PaidStatus,
		}).Error; err != nil {
		log.Printf("order status update failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	s.notifications.Notify(ctx, order.UserID, "order.status",
		types.Message{EN: "Order updated", AR: "تم تحديث الطلب"},
		types.Message{
			EN: "Your order " + string(field) + " is now " + value,
			AR: "حالة طلبك الآن " + value,
		},
	)
	return &order, nil
}

// transitionOrderStatus: pending -> confirm|rejected. Frozen once the
// order has shipped or been delivered; confirm cannot revert to pending.
func (s *OrderService) transitionOrderStatus(order *models.Order, next types.OrderStatus) *types.AppError {
	if !next.IsValid() {
		return types.NewValidationError("invalid order status", "حالة طلب غير صالحة")
	}
	if order.DeliveryStatus != types.DeliveryStatusPending {
		return types.NewBusinessError(
			"order status is frozen after shipping",
			"لا يمكن تغيير حالة الطلب بعد الشحن",
		)
	}
	switch order.OrderStatus {
	case types.OrderStatusPending:
		// pending may move anywhere.
	case types.OrderStatusConfirm:
		if next == types.OrderStatusPending {
			return types.NewBusinessError(
				"a confirmed order cannot return to pending",
				"لا يمكن إعادة الطلب المؤكد إلى قيد الانتظار",
			)
		}
	case types.OrderStatusRejected:
		if next == types.OrderStatusPending {
			return types.NewBusinessError(
				"a rejected order cannot return to pending",
				"لا يمكن إعادة الطلب المرفوض إلى قيد الانتظار",
			)
		}
	}
	order.OrderStatus = next
	return nil
}

// transitionDeliveryStatus: strictly forward, and only once the order is
// confirmed.
func (s *OrderService) transitionDeliveryStatus(order *models.Order, next types.DeliveryStatus) *types.AppError {
	if !next.IsValid() {
		return types.NewValidationError("invalid delivery status", "حالة توصيل غير صالحة")
	}
	if order.OrderStatus != types.OrderStatusConfirm {
		return types.NewBusinessError(
			"order must be confirmed before delivery can progress",
			"يجب تأكيد الطلب قبل تقدم التوصيل",
		)
	}
	if next.Rank() <= order.DeliveryStatus.Rank() {
		return types.NewBusinessError(
			"delivery status can only move forward",
			"حالة التوصيل تتقدم للأمام فقط",
		)
	}
	order.DeliveryStatus = next
	return nil
}

// transitionPaidStatus: false -> true only; immutable once paid.
func (s *OrderService) transitionPaidStatus(order *models.Order, value string) *types.AppError {
	if value != "true" {
		return types.NewValidationError("paid status can only be set to true", "حالة الدفع تقبل القيمة true فقط")
	}
	if order.PaidStatus {
		return types.NewBusinessError("order is already paid", "تم دفع الطلب بالفعل")
	}
	order.PaidStatus = true
	return nil
}

// GetOrder returns a single order.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *types.AppError) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("order not found", "الطلب غير موجود")
		}
		log.Printf("order lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return &order, nil
}

// ListOrders returns a user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, *types.AppError) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		log.Printf("order list failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return orders, nil
}
