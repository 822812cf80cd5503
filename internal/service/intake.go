package service

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/types"
)

// IntakeService creates the per-user customized-meal profile, validating
// the macro targets against the per-diet admin bounds and deriving the
// meals-per-day from the configured calories divisor.
type IntakeService struct {
	db *gorm.DB
}

// NewIntakeService creates a new IntakeService instance
func NewIntakeService(db *gorm.DB) *IntakeService {
	return &IntakeService{db: db}
}

// CreateProfile performs the one-time intake. A second intake for the
// same user is rejected; admin deletes the profile to force a redo.
func (s *IntakeService) CreateProfile(ctx context.Context, userID uuid.UUID, req types.CustomizedMealIntakeRequest) (*models.UserCustomizedMealProfile, *types.AppError) {
	if !req.DietCategory.IsValid() {
		return nil, types.NewValidationError("invalid diet category", "فئة نظام غذائي غير صالحة")
	}
	if req.MealDurationRepeat < 1 || req.MealDurationRepeat > 7 {
		return nil, types.NewValidationError(
			"meal duration repeat must be between 1 and 7",
			"يجب أن يكون تكرار الأيام بين 1 و 7",
		)
	}

	var existing models.UserCustomizedMealProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return nil, types.NewBusinessError(
			"customized meal profile already exists",
			"ملف الوجبات المخصصة موجود بالفعل",
		)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("intake profile lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	var cfg models.AdminCustomizedMealConfig
	if err := s.db.WithContext(ctx).Where("diet = ?", req.DietCategory).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(
				"no configuration for this diet category",
				"لا يوجد إعداد لهذه الفئة الغذائية",
			)
		}
		log.Printf("intake config lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}

	calories := Calories(req.Protein, req.Carbs, req.Fat)
	switch {
	case req.Protein < cfg.MinProtein || req.Protein > cfg.MaxProtein:
		return nil, types.NewValidationError("protein target is out of bounds", "هدف البروتين خارج الحدود")
	case req.Fat < cfg.MinFat || req.Fat > cfg.MaxFat:
		return nil, types.NewValidationError("fat target is out of bounds", "هدف الدهون خارج الحدود")
	case req.Carbs < cfg.MinCarbs || req.Carbs > cfg.MaxCarbs:
		return nil, types.NewValidationError("carb target is out of bounds", "هدف الكربوهيدرات خارج الحدود")
	case calories < cfg.MinCalories || calories > cfg.MaxCalories:
		return nil, types.NewValidationError("calorie total is out of bounds", "إجمالي السعرات خارج الحدود")
	}

	mealPerDay := int(math.Round(calories / cfg.CaloriesPerMealDivisor))
	if mealPerDay < 1 {
		mealPerDay = 1
	}

	profile := models.UserCustomizedMealProfile{
		ID:                 uuid.New(),
		UserID:             userID,
		Diet:               req.DietCategory,
		Protein:            req.Protein,
		Fat:                req.Fat,
		Carbs:              req.Carbs,
		MealPerDay:         mealPerDay,
		MealDurationRepeat: req.MealDurationRepeat,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		log.Printf("intake profile create failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return &profile, nil
}

// UpsertConfig creates or replaces the intake bounds for one diet
// category. One config row exists per diet.
func (s *IntakeService) UpsertConfig(ctx context.Context, cfg *models.AdminCustomizedMealConfig) *types.AppError {
	if !cfg.Diet.IsValid() {
		return types.NewValidationError("invalid diet category", "فئة نظام غذائي غير صالحة")
	}
	switch {
	case cfg.MinProtein <= 0 || cfg.MinProtein >= cfg.MaxProtein:
		return types.NewValidationError("protein bounds are invalid", "حدود البروتين غير صالحة")
	case cfg.MinFat <= 0 || cfg.MinFat >= cfg.MaxFat:
		return types.NewValidationError("fat bounds are invalid", "حدود الدهون غير صالحة")
	case cfg.MinCarbs <= 0 || cfg.MinCarbs >= cfg.MaxCarbs:
		return types.NewValidationError("carb bounds are invalid", "حدود الكربوهيدرات غير صالحة")
	case cfg.MinCalories <= 0 || cfg.MinCalories >= cfg.MaxCalories:
		return types.NewValidationError("calorie bounds are invalid", "حدود السعرات غير صالحة")
	case cfg.CaloriesPerMealDivisor <= 0:
		return types.NewValidationError("calories per meal divisor must be positive", "يجب أن يكون مقسوم السعرات موجباً")
	}

	var existing models.AdminCustomizedMealConfig
	err := s.db.WithContext(ctx).Where("diet = ?", cfg.Diet).First(&existing).Error
	switch {
	case err == nil:
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		if err := s.db.WithContext(ctx).Save(cfg).Error; err != nil {
			log.Printf("intake config update failed: %v", err)
			return types.ErrSomethingWentWrong()
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if cfg.ID == uuid.Nil {
			cfg.ID = uuid.New()
		}
		if err := s.db.WithContext(ctx).Create(cfg).Error; err != nil {
			log.Printf("intake config create failed: %v", err)
			return types.ErrSomethingWentWrong()
		}
	default:
		log.Printf("intake config lookup failed: %v", err)
		return types.ErrSomethingWentWrong()
	}
	return nil
}

// ListConfigs returns the per-diet intake bounds.
func (s *IntakeService) ListConfigs(ctx context.Context) ([]models.AdminCustomizedMealConfig, *types.AppError) {
	var configs []models.AdminCustomizedMealConfig
	if err := s.db.WithContext(ctx).Order("diet").Find(&configs).Error; err != nil {
		log.Printf("intake config list failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return configs, nil
}

// GetProfile returns the user's customized-meal profile.
func (s *IntakeService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserCustomizedMealProfile, *types.AppError) {
	var profile models.UserCustomizedMealProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(
				"customized meal profile not found",
				"ملف الوجبات المخصصة غير موجود",
			)
		}
		log.Printf("intake profile lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return &profile, nil
}

// DeleteProfile lets an admin force a user through intake again.
func (s *IntakeService) DeleteProfile(ctx context.Context, userID uuid.UUID) *types.AppError {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserCustomizedMealProfile{})
	if res.Error != nil {
		log.Printf("intake profile delete failed: %v", res.Error)
		return types.ErrSomethingWentWrong()
	}
	if res.RowsAffected == 0 {
		return types.NewNotFoundError(
			"customized meal profile not found",
			"ملف الوجبات المخصصة غير موجود",
		)
	}
	return nil
}
