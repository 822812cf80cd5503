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

// CartService mutates per-category carts and aggregates them into the
// priced view order placement consumes.
type CartService struct {
	db        *gorm.DB
	discounts *DiscountService
	apportion *ApportionService
}

// NewCartService creates a new CartService instance
func NewCartService(db *gorm.DB, discounts *DiscountService, apportion *ApportionService) *CartService {
	return &CartService{db: db, discounts: discounts, apportion: apportion}
}

// getOrCreateCart returns the user's cart for the category, creating it
// lazily on first add.
func (s *CartService) getOrCreateCart(ctx context.Context, userID uuid.UUID, category types.Category) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{ID: uuid.New(), UserID: userID, Category: category}
		if err := s.db.WithContext(ctx).Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddLine adds a menu item to the main or offers cart. An existing line
// for the same item has its quantity overwritten, never duplicated.
func (s *CartService) AddLine(ctx context.Context, userID uuid.UUID, category types.Category, req types.AddMainCartLineRequest) (*models.CartLine, *types.AppError) {
	if category != types.CategoryMainMenu && category != types.CategoryOffers {
		return nil, types.NewValidationError("invalid cart category", "فئة سلة غير صالحة")
	}
	if appErr := s.checkItemVisible(ctx, category, req.MenuItemID); appErr != nil {
		return nil, appErr
	}

	cart, err := s.getOrCreateCart(ctx, userID, category)
	if err != nil {
		log.Printf("cart lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	var line models.CartLine
	err = s.db.WithContext(ctx).
		Where("cart_id = ? AND menu_item_id = ?", cart.ID, req.MenuItemID).
		First(&line).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartLine{
			ID:         uuid.New(),
			CartID:     cart.ID,
			MenuItemID: req.MenuItemID,
			Quantity:   req.Quantity,
		}
		if err := s.db.WithContext(ctx).Create(&line).Error; err != nil {
			log.Printf("cart line create failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
	case err != nil:
		log.Printf("cart line lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	default:
		line.Quantity = req.Quantity
		if err := s.db.WithContext(ctx).Model(&line).Update("quantity", req.Quantity).Error; err != nil {
			log.Printf("cart line update failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
	}
	return &line, nil
}

// AddCustomizedLine adds a meal to one day of the customized cart and
// reprices the plan. The day's meal count is bounded by the profile's
// meals-per-day.
func (s *CartService) AddCustomizedLine(ctx context.Context, userID uuid.UUID, req types.AddCustomizedCartLineRequest) (*models.CartLine, *types.AppError) {
	var profile models.UserCustomizedMealProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewBusinessError(
				"complete the customized meal intake first",
				"أكمل نموذج الوجبات المخصصة أولاً",
			)
		}
		log.Printf("intake profile lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	var meal models.CustomizedMealMenu
	err := s.db.WithContext(ctx).
		Where("id = ? AND visible = ?", req.MenuItemID, true).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("meal not found", "الوجبة غير موجودة")
		}
		log.Printf("meal lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	cart, err := s.getOrCreateCart(ctx, userID, types.CategoryCustomizeOrder)
	if err != nil {
		log.Printf("cart lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	var dayCount int64
	if err := s.db.WithContext(ctx).Model(&models.CartLine{}).
		Where("cart_id = ? AND day = ?", cart.ID, req.Day).
		Count(&dayCount).Error; err != nil {
		log.Printf("day count failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	if int(dayCount) >= profile.MealPerDay {
		return nil, types.NewBusinessError(
			"maximum meals for this day reached",
			"تم بلوغ الحد الأقصى للوجبات في هذا اليوم",
		)
	}

	line := models.CartLine{
		ID:         uuid.New(),
		CartID:     cart.ID,
		MenuItemID: req.MenuItemID,
		Day:        req.Day,
	}
	if err := s.db.WithContext(ctx).Create(&line).Error; err != nil {
		log.Printf("customized line create failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	// The day-price cache is derived state; it must follow every change
	// to cart contents.
	if _, appErr := s.apportion.Reprice(ctx, userID); appErr != nil {
		return nil, appErr
	}
	return &line, nil
}

// RemoveLine deletes one line from the user's cart in the category. A
// customized cart is repriced afterwards unless the removed line was the
// day's last one.
func (s *CartService) RemoveLine(ctx context.Context, userID uuid.UUID, category types.Category, lineID uuid.UUID) *types.AppError {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("cart not found", "السلة غير موجودة")
		}
		log.Printf("cart lookup failed: %v", err)
		return types.ErrSomethingWentWrong()
	}

	var line models.CartLine
	if err := s.db.WithContext(ctx).Where("id = ? AND cart_id = ?", lineID, cart.ID).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("cart line not found", "عنصر السلة غير موجود")
		}
		log.Printf("cart line lookup failed: %v", err)
		return types.ErrSomethingWentWrong()
	}

	if err := s.db.WithContext(ctx).Delete(&line).Error; err != nil {
		log.Printf("cart line delete failed: %v", err)
		return types.ErrSomethingWentWrong()
	}

	if category == types.CategoryCustomizeOrder {
		var remaining int64
		if err := s.db.WithContext(ctx).Model(&models.CartLine{}).
			Where("cart_id = ? AND day = ?", cart.ID, line.Day).
			Count(&remaining).Error; err != nil {
			log.Printf("day count failed: %v", err)
			return types.ErrSomethingWentWrong()
		}
		if remaining == 0 {
			if err := s.db.WithContext(ctx).
				Where("cart_id = ? AND day = ?", cart.ID, line.Day).
				Delete(&models.CartDayPrice{}).Error; err != nil {
				log.Printf("day price delete failed: %v", err)
				return types.ErrSomethingWentWrong()
			}
		} else if _, appErr := s.apportion.Reprice(ctx, userID); appErr != nil {
			return appErr
		}
	}
	return nil
}

// AggregateCarts computes the three per-category summaries, the grand
// total of their discounted subtotals, and the second totalOrder
// discount pass. It reads carts without mutating them, so repeated calls
// yield identical totals.
func (s *CartService) AggregateCarts(ctx context.Context, userID uuid.UUID) (*types.CartAggregate, *types.AppError) {
	main, appErr := s.summarizePriced(ctx, userID, types.CategoryMainMenu)
	if appErr != nil {
		return nil, appErr
	}
	offered, appErr := s.summarizePriced(ctx, userID, types.CategoryOffers)
	if appErr != nil {
		return nil, appErr
	}
	customized, appErr := s.summarizeCustomized(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	// The grand total is built from already-discounted per-category
	// subtotals; the totalOrder pass stacks on top of those, never on
	// the raw sums.
	grandTotal := main.SubtotalAfterDiscount + offered.SubtotalAfterDiscount + customized.SubtotalAfterDiscount
	discount, percentage, appErr := s.discounts.Resolve(ctx, types.CategoryTotalOrder, grandTotal)
	if appErr != nil {
		return nil, appErr
	}

	return &types.CartAggregate{
		MainMealCart:                   *main,
		OfferedMealCart:                *offered,
		CustomizedMealCart:             *customized,
		GrandTotal:                     grandTotal,
		Discount:                       discount,
		DiscountPercentageOnGrandTotal: percentage,
		GrandTotalAfterDiscount:        grandTotal - discount,
	}, nil
}

// summarizePriced aggregates a unit-priced cart (main or offers) against
// the live menu. Invisible or deleted items are silently excluded, which
// can shrink a previously valid total.
func (s *CartService) summarizePriced(ctx context.Context, userID uuid.UUID, category types.Category) (*types.CartSummary, *types.AppError) {
	summary := &types.CartSummary{Category: category, Lines: []types.CartLineView{}}

	var cart models.Cart
	err := s.db.WithContext(ctx).Preload("Lines").
		Where("user_id = ? AND category = ?", userID, category).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return summary, nil
	}
	if err != nil {
		log.Printf("cart aggregate lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	for _, line := range cart.Lines {
		name, price, visible, err := s.lookupItem(ctx, category, line.MenuItemID)
		if err != nil {
			log.Printf("cart item lookup failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
		if !visible {
			continue
		}
		lineTotal := price * line.Quantity
		summary.Lines = append(summary.Lines, types.CartLineView{
			LineID:     line.ID,
			MenuItemID: line.MenuItemID,
			Name:       name,
			UnitPrice:  price,
			Quantity:   line.Quantity,
			LineTotal:  lineTotal,
		})
		summary.Subtotal += lineTotal
	}

	discount, percentage, appErr := s.discounts.Resolve(ctx, category, summary.Subtotal)
	if appErr != nil {
		return nil, appErr
	}
	summary.Discount = discount
	summary.DiscountPercentage = percentage
	summary.SubtotalAfterDiscount = summary.Subtotal - discount
	return summary, nil
}

// summarizeCustomized aggregates the customized cart from the cached
// per-day prices. The cache may be stale if the cart changed without a
// reprice; the aggregator deliberately does not recompute here.
func (s *CartService) summarizeCustomized(ctx context.Context, userID uuid.UUID) (*types.CartSummary, *types.AppError) {
	summary := &types.CartSummary{Category: types.CategoryCustomizeOrder, Lines: []types.CartLineView{}}

	var cart models.Cart
	err := s.db.WithContext(ctx).Preload("Lines").Preload("DayPrices").
		Where("user_id = ? AND category = ?", userID, types.CategoryCustomizeOrder).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return summary, nil
	}
	if err != nil {
		log.Printf("customized cart lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	for _, line := range cart.Lines {
		var meal models.CustomizedMealMenu
		if err := s.db.WithContext(ctx).First(&meal, "id = ?", line.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			log.Printf("customized meal lookup failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
		summary.Lines = append(summary.Lines, types.CartLineView{
			LineID:     line.ID,
			MenuItemID: line.MenuItemID,
			Name:       meal.Name,
			Day:        line.Day,
		})
	}
	for _, dp := range cart.DayPrices {
		summary.Subtotal += dp.Price
	}

	discount, percentage, appErr := s.discounts.Resolve(ctx, types.CategoryCustomizeOrder, summary.Subtotal)
	if appErr != nil {
		return nil, appErr
	}
	summary.Discount = discount
	summary.DiscountPercentage = percentage
	summary.SubtotalAfterDiscount = summary.Subtotal - discount
	return summary, nil
}

// ClearCarts removes every cart, line, and cached day price the user
// owns. Called only after a successful order snapshot.
func (s *CartService) ClearCarts(ctx context.Context, userID uuid.UUID) error {
	var carts []models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&carts).Error; err != nil {
		return err
	}
	for _, cart := range carts {
		if err := s.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Where("cart_id = ?", cart.ID).Delete(&models.CartDayPrice{}).Error; err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Delete(&cart).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *CartService) lookupItem(ctx context.Context, category types.Category, itemID uuid.UUID) (string, float64, bool, error) {
	switch category {
	case types.CategoryMainMenu:
		var item models.MenuItem
		err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, false, nil
		}
		if err != nil {
			return "", 0, false, err
		}
		return item.Name, item.Price, item.Visible, nil
	case types.CategoryOffers:
		var item models.OfferedMeal
		err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, false, nil
		}
		if err != nil {
			return "", 0, false, err
		}
		return item.Name, item.Price, item.Visible, nil
	}
	return "", 0, false, nil
}

func (s *CartService) checkItemVisible(ctx context.Context, category types.Category, itemID uuid.UUID) *types.AppError {
	_, _, visible, err := s.lookupItem(ctx, category, itemID)
	if err != nil {
		log.Printf("menu item lookup failed: %v", err)
		return types.ErrSomethingWentWrong()
	}
	if !visible {
		return types.NewNotFoundError("menu item not found", "عنصر القائمة غير موجود")
	}
	return nil
}
