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

// ApportionService distributes a user's daily macro targets across the
// meals selected for each day of the customized cart, deriving per-meal
// prep quantities and the cached per-day price.
type ApportionService struct {
	db *gorm.DB
}

// NewApportionService creates a new ApportionService instance
func NewApportionService(db *gorm.DB) *ApportionService {
	return &ApportionService{db: db}
}

// DayResult is the priced outcome for one day of the plan.
type DayResult struct {
	Day   int     `json:"day"`
	Price float64 `json:"price"`
}

// Reprice recomputes every customized day for the user: per-meal
// quantities written back onto the cart lines and per-day prices into
// the cart's price cache. It is the only writer of that cache.
func (s *ApportionService) Reprice(ctx context.Context, userID uuid.UUID) ([]DayResult, *types.AppError) {
	var profile models.UserCustomizedMealProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(
				"customized meal profile not found",
				"ملف الوجبات المخصصة غير موجود",
			)
		}
		log.Printf("apportion profile lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	var cart models.Cart
	err := s.db.WithContext(ctx).Preload("Lines").
		Where("user_id = ? AND category = ?", userID, types.CategoryCustomizeOrder).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("customized cart not found", "سلة الوجبات المخصصة غير موجودة")
		}
		log.Printf("apportion cart lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	byDay := make(map[int][]models.CartLine)
	for _, line := range cart.Lines {
		byDay[line.Day] = append(byDay[line.Day], line)
	}

	var results []DayResult
	for day := 1; day <= 7; day++ {
		lines, ok := byDay[day]
		if !ok {
			continue
		}
		price, appErr := s.repriceDay(ctx, cart.ID, day, lines, profile)
		if appErr != nil {
			return nil, appErr
		}
		results = append(results, DayResult{Day: day, Price: price})
	}
	return results, nil
}

// PopulateRemainingDays fills days meal_duration_repeat+1..7 by cycling
// through the already-customized days, then reprices the whole plan.
func (s *ApportionService) PopulateRemainingDays(ctx context.Context, userID uuid.UUID) ([]DayResult, *types.AppError) {
	var profile models.UserCustomizedMealProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(
				"customized meal profile not found",
				"ملف الوجبات المخصصة غير موجود",
			)
		}
		log.Printf("populate profile lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	repeat := profile.MealDurationRepeat
	if repeat < 1 || repeat > 7 {
		return nil, types.NewValidationError("invalid meal duration repeat", "عدد أيام التخصيص غير صالح")
	}

	var cart models.Cart
	err := s.db.WithContext(ctx).Preload("Lines").
		Where("user_id = ? AND category = ?", userID, types.CategoryCustomizeOrder).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("customized cart not found", "سلة الوجبات المخصصة غير موجودة")
		}
		log.Printf("populate cart lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	byDay := make(map[int][]models.CartLine)
	for _, line := range cart.Lines {
		byDay[line.Day] = append(byDay[line.Day], line)
	}
	for day := 1; day <= repeat; day++ {
		if len(byDay[day]) == 0 {
			return nil, types.NewBusinessError(
				"customize all plan days before populating the rest of the week",
				"خصص جميع أيام الخطة قبل تعبئة بقية الأسبوع",
			)
		}
	}

	for day := repeat + 1; day <= 7; day++ {
		sourceDay := (day-1)%repeat + 1
		if err := s.db.WithContext(ctx).
			Where("cart_id = ? AND day = ?", cart.ID, day).
			Delete(&models.CartLine{}).Error; err != nil {
			log.Printf("populate day clear failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
		for _, src := range byDay[sourceDay] {
			copied := models.CartLine{
				ID:         uuid.New(),
				CartID:     cart.ID,
				MenuItemID: src.MenuItemID,
				Day:        day,
			}
			if err := s.db.WithContext(ctx).Create(&copied).Error; err != nil {
				log.Printf("populate day copy failed: %v", err)
				return nil, types.ErrSomethingWentWrong()
			}
		}
	}

	return s.Reprice(ctx, userID)
}

// repriceDay runs the two-pass apportionment for one day and persists
// the derived line quantities and the day price.
func (s *ApportionService) repriceDay(ctx context.Context, cartID uuid.UUID, day int, lines []models.CartLine, profile models.UserCustomizedMealProfile) (float64, *types.AppError) {
	if len(lines) == 0 {
		return 0, types.NewBusinessError("no meals selected for this day", "لا توجد وجبات محددة لهذا اليوم")
	}

	meals := make(map[uuid.UUID]models.CustomizedMealMenu, len(lines))
	var totalProtein, totalFadd, totalCarbs float64
	for _, line := range lines {
		var meal models.CustomizedMealMenu
		err := s.db.WithContext(ctx).
			Where("id = ? AND visible = ?", line.MenuItemID, true).
			First(&meal).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, types.NewNotFoundError(
					"a selected meal is no longer available",
					"إحدى الوجبات المحددة لم تعد متوفرة",
				)
			}
			log.Printf("apportion meal lookup failed: %v", err)
			return 0, types.ErrSomethingWentWrong()
		}
		meals[line.MenuItemID] = meal
		totalProtein += meal.Protein
		totalFadd += meal.Fadd
		totalCarbs += meal.Carbs
	}
	if totalProtein == 0 || totalFadd == 0 || totalCarbs == 0 {
		return 0, types.NewBusinessError(
			"selected meals have no nutritional content to apportion",
			"الوجبات المحددة لا تحتوي على قيم غذائية للتوزيع",
		)
	}

	// First pass: meat-derived fat per meal. Stored in QuantityOfOil;
	// the field name predates the meat-fat/added-fat split.
	fatSumForDay := 0.0
	for i := range lines {
		meal := meals[lines[i].MenuItemID]
		fatForCurrentMeal := meal.Fmf * (meal.Protein / totalProtein) * profile.Protein
		lines[i].QuantityOfOil = fatForCurrentMeal
		fatSumForDay += fatForCurrentMeal
	}

	// Second pass: price each macro and derive prep quantities. Any
	// added-fat shortfall is spread by fadd share and covered as extra
	// oil; no shortfall means no extra oil at all.
	shortfall := profile.Fat - fatSumForDay
	var prFat, prCarb, prPro float64
	for i := range lines {
		meal := meals[lines[i].MenuItemID]

		if shortfall > 0 {
			faddShare := meal.Fadd / totalFadd
			prFat += meal.Prf * faddShare * shortfall
			lines[i].ExtraOil = meal.Of * faddShare * shortfall
		} else {
			lines[i].ExtraOil = 0
		}

		carbShare := meal.Carbs / totalCarbs
		prCarb += meal.Prc * carbShare * profile.Carbs
		lines[i].QuantityOfStarch = meal.Sf * carbShare * profile.Carbs

		proteinShare := meal.Protein / totalProtein
		prPro += meal.Prp * proteinShare * profile.Protein
		lines[i].QuantityOfMeat = meal.Mf * proteinShare * profile.Protein
	}

	dayPrice := prFat + prCarb + prPro

	for i := range lines {
		if err := s.db.WithContext(ctx).Model(&models.CartLine{}).
			Where("id = ?", lines[i].ID).
			Updates(map[string]interface{}{
				"quantity_of_oil":    lines[i].QuantityOfOil,
				"extra_oil":          lines[i].ExtraOil,
				"quantity_of_starch": lines[i].QuantityOfStarch,
				"quantity_of_meat":   lines[i].QuantityOfMeat,
			}).Error; err != nil {
			log.Printf("apportion line update failed: %v", err)
			return 0, types.ErrSomethingWentWrong()
		}
	}

	var cached models.CartDayPrice
	err := s.db.WithContext(ctx).
		Where("cart_id = ? AND day = ?", cartID, day).
		First(&cached).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		cached = models.CartDayPrice{ID: uuid.New(), CartID: cartID, Day: day, Price: dayPrice}
		if err := s.db.WithContext(ctx).Create(&cached).Error; err != nil {
			log.Printf("day price create failed: %v", err)
			return 0, types.ErrSomethingWentWrong()
		}
	case err != nil:
		log.Printf("day price lookup failed: %v", err)
		return 0, types.ErrSomethingWentWrong()
	default:
		if err := s.db.WithContext(ctx).Model(&cached).Update("price", dayPrice).Error; err != nil {
			log.Printf("day price update failed: %v", err)
			return 0, types.ErrSomethingWentWrong()
		}
	}

	return dayPrice, nil
}
