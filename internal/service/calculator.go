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

// Default TDEE multipliers for activity levels 1..6, used until an admin
// overrides them.
var defaultActivityMultipliers = [6]float64{1.2, 1.375, 1.46, 1.55, 1.725, 1.9}

// Default calorie fractions by diet goal.
var defaultCalorieFractions = map[string]float64{
	"lose":     0.80,
	"maintain": 1.00,
	"gain":     1.15,
}

// Macro splits as calorie shares. The keto split prices fat at 4 kcal/g
// while the macro split uses 9; the asymmetry is intentional and shared
// with the kitchen-side spreadsheets.
const (
	ketoProteinShare = 0.25
	ketoCarbShare    = 0.05
	ketoFatShare     = 0.70

	macroProteinShare = 0.30
	macroCarbShare    = 0.40
	macroFatShare     = 0.30
)

// CalculatorService computes BMR, TDEE, and macro splits. The formulas
// are pure; the database only supplies admin-configured multipliers and
// calorie fractions.
type CalculatorService struct {
	db *gorm.DB
}

// NewCalculatorService creates a new CalculatorService instance
func NewCalculatorService(db *gorm.DB) *CalculatorService {
	return &CalculatorService{db: db}
}

// Calories converts macro grams to kilocalories at 4/4/9.
func Calories(protein, carbs, fat float64) float64 {
	return protein*4 + carbs*4 + fat*9
}

// BodyFatFactor maps body-fat percent to the lean-mass coefficient used
// by the body-fat-adjusted BMR term: eight 5%-wide buckets from 0.07 up
// to 0.42 for 40% and above.
func BodyFatFactor(percent float64) float64 {
	switch {
	case percent < 10:
		return 0.07
	case percent < 15:
		return 0.12
	case percent < 20:
		return 0.17
	case percent < 25:
		return 0.22
	case percent < 30:
		return 0.27
	case percent < 35:
		return 0.32
	case percent < 40:
		return 0.37
	default:
		return 0.42
	}
}

// BMR averages the revised Harris-Benedict estimate with the
// body-fat-adjusted term 370 + 21.6*(1-f)*weight.
func BMR(metrics types.UserMetrics) float64 {
	var classic float64
	if metrics.Male {
		classic = 88.362 + 13.397*metrics.WeightKg + 4.799*metrics.HeightCm - 5.677*float64(metrics.Age)
	} else {
		classic = 447.593 + 9.247*metrics.WeightKg + 3.098*metrics.HeightCm - 4.330*float64(metrics.Age)
	}
	f := BodyFatFactor(metrics.BodyFatPercent)
	adjusted := 370 + 21.6*(1-f)*metrics.WeightKg
	return (classic + adjusted) / 2
}

// activityMultiplier returns the configured multiplier for the level,
// falling back to the defaults.
func (s *CalculatorService) activityMultiplier(ctx context.Context, level int) (float64, *types.AppError) {
	if level < 1 || level > 6 {
		return 0, types.NewValidationError("activity level must be between 1 and 6", "مستوى النشاط يجب أن يكون بين 1 و 6")
	}
	var factor models.ActivityLevelFactor
	err := s.db.WithContext(ctx).Where("level = ?", level).First(&factor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultActivityMultipliers[level-1], nil
	}
	if err != nil {
		log.Printf("activity factor lookup failed: %v", err)
		return 0, types.ErrSomethingWentWrong()
	}
	return factor.Multiplier, nil
}

// calorieFraction resolves the TDEE coefficient: the (goal, body type)
// pair wins over the goal-only entry, which wins over the defaults.
func (s *CalculatorService) calorieFraction(ctx context.Context, dietGoal, bodyType string) (float64, *types.AppError) {
	var fraction models.CalorieFraction
	if bodyType != "" {
		err := s.db.WithContext(ctx).
			Where("diet_goal = ? AND body_type = ?", dietGoal, bodyType).
			First(&fraction).Error
		if err == nil {
			return fraction.Fraction, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("calorie fraction lookup failed: %v", err)
			return 0, types.ErrSomethingWentWrong()
		}
	}
	err := s.db.WithContext(ctx).
		Where("diet_goal = ? AND body_type = ?", dietGoal, "").
		First(&fraction).Error
	if err == nil {
		return fraction.Fraction, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("calorie fraction lookup failed: %v", err)
		return 0, types.ErrSomethingWentWrong()
	}
	if f, ok := defaultCalorieFractions[dietGoal]; ok {
		return f, nil
	}
	return 0, types.NewValidationError("unknown diet goal", "هدف غذائي غير معروف")
}

// SetActivityLevelFactor stores the override multiplier for one
// activity level, replacing any previous override.
func (s *CalculatorService) SetActivityLevelFactor(ctx context.Context, level int, multiplier float64) (*models.ActivityLevelFactor, *types.AppError) {
	if level < 1 || level > 6 {
		return nil, types.NewValidationError("activity level must be between 1 and 6", "مستوى النشاط يجب أن يكون بين 1 و 6")
	}
	if multiplier <= 0 {
		return nil, types.NewValidationError("multiplier must be positive", "يجب أن يكون المعامل موجباً")
	}

	var factor models.ActivityLevelFactor
	err := s.db.WithContext(ctx).Where("level = ?", level).First(&factor).Error
	switch {
	case err == nil:
		factor.Multiplier = multiplier
		if err := s.db.WithContext(ctx).Save(&factor).Error; err != nil {
			log.Printf("activity factor update failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		factor = models.ActivityLevelFactor{ID: uuid.New(), Level: level, Multiplier: multiplier}
		if err := s.db.WithContext(ctx).Create(&factor).Error; err != nil {
			log.Printf("activity factor create failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
	default:
		log.Printf("activity factor lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return &factor, nil
}

// SetCalorieFraction stores the TDEE coefficient for a diet goal, or
// for a (goal, body type) pair when bodyType is non-empty.
func (s *CalculatorService) SetCalorieFraction(ctx context.Context, dietGoal, bodyType string, value float64) (*models.CalorieFraction, *types.AppError) {
	if dietGoal == "" {
		return nil, types.NewValidationError("diet goal is required", "الهدف الغذائي مطلوب")
	}
	if value <= 0 {
		return nil, types.NewValidationError("fraction must be positive", "يجب أن يكون المعامل موجباً")
	}

	var fraction models.CalorieFraction
	err := s.db.WithContext(ctx).
		Where("diet_goal = ? AND body_type = ?", dietGoal, bodyType).
		First(&fraction).Error
	switch {
	case err == nil:
		fraction.Fraction = value
		if err := s.db.WithContext(ctx).Save(&fraction).Error; err != nil {
			log.Printf("calorie fraction update failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		fraction = models.CalorieFraction{ID: uuid.New(), DietGoal: dietGoal, BodyType: bodyType, Fraction: value}
		if err := s.db.WithContext(ctx).Create(&fraction).Error; err != nil {
			log.Printf("calorie fraction create failed: %v", err)
			return nil, types.ErrSomethingWentWrong()
		}
	default:
		log.Printf("calorie fraction lookup failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return &fraction, nil
}

// ComputeKetoMacros runs the keto calculator: TDEE scaled by the calorie
// fraction, split 25/5/70, with fat grams derived at 4 kcal/g.
func (s *CalculatorService) ComputeKetoMacros(ctx context.Context, metrics types.UserMetrics) (*types.MacroResult, *types.AppError) {
	bmr := BMR(metrics)
	multiplier, appErr := s.activityMultiplier(ctx, metrics.ActivityLevelFactor)
	if appErr != nil {
		return nil, appErr
	}
	fraction, appErr := s.calorieFraction(ctx, metrics.DietGoal, metrics.BodyType)
	if appErr != nil {
		return nil, appErr
	}

	tdee := bmr * multiplier
	calories := tdee * fraction
	return &types.MacroResult{
		BMR:      bmr,
		TDEE:     tdee,
		Calories: calories,
		Protein:  calories * ketoProteinShare / 4,
		Carb:     calories * ketoCarbShare / 4,
		Fat:      calories * ketoFatShare / 4,
	}, nil
}

// ComputeMacros runs the general macro calculator: same pipeline but a
// 30/40/30 split with fat grams at 9 kcal/g.
func (s *CalculatorService) ComputeMacros(ctx context.Context, metrics types.UserMetrics) (*types.MacroResult, *types.AppError) {
	bmr := BMR(metrics)
	multiplier, appErr := s.activityMultiplier(ctx, metrics.ActivityLevelFactor)
	if appErr != nil {
		return nil, appErr
	}
	fraction, appErr := s.calorieFraction(ctx, metrics.DietGoal, metrics.BodyType)
	if appErr != nil {
		return nil, appErr
	}

	tdee := bmr * multiplier
	calories := tdee * fraction
	return &types.MacroResult{
		BMR:      bmr,
		TDEE:     tdee,
		Calories: calories,
		Protein:  calories * macroProteinShare / 4,
		Carb:     calories * macroCarbShare / 4,
		Fat:      calories * macroFatShare / 9,
	}, nil
}
