package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sufrah/backend/internal/types"
)

// UserCustomizedMealProfile holds a user's daily macro targets, created
// once on intake. Admin deletes it to force a re-intake.
type UserCustomizedMealProfile struct {
	ID        uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	UserID    uuid.UUID          `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Diet      types.DietCategory `gorm:"size:20;not null" json:"diet_category"`
	Protein   float64            `gorm:"not null" json:"protein"`
	Fat       float64            `gorm:"not null" json:"fat"`
	Carbs     float64            `gorm:"not null" json:"carbs"`
	MealPerDay int               `gorm:"not null" json:"meal_per_day"`
	// MealDurationRepeat is how many distinct days the user customizes
	// before the remaining week repeats them, 1..7.
	MealDurationRepeat int `gorm:"not null" json:"meal_duration_repeat"`
}

// AdminCustomizedMealConfig is the singleton per-diet intake bounds plus
// the calories-to-meals-per-day divisor.
type AdminCustomizedMealConfig struct {
	ID        uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	Diet      types.DietCategory `gorm:"size:20;not null;uniqueIndex" json:"diet_category"`

	MinProtein  float64 `gorm:"not null" json:"min_protein"`
	MaxProtein  float64 `gorm:"not null" json:"max_protein"`
	MinFat      float64 `gorm:"not null" json:"min_fat"`
	MaxFat      float64 `gorm:"not null" json:"max_fat"`
	MinCarbs    float64 `gorm:"not null" json:"min_carbs"`
	MaxCarbs    float64 `gorm:"not null" json:"max_carbs"`
	MinCalories float64 `gorm:"not null" json:"min_calories"`
	MaxCalories float64 `gorm:"not null" json:"max_calories"`

	// CaloriesPerMealDivisor derives meal_per_day from the intake's
	// total calories.
	CaloriesPerMealDivisor float64 `gorm:"not null" json:"calories_per_meal_divisor"`
}

// ActivityLevelFactor is one of the six admin-configurable TDEE
// multipliers, keyed by level 1..6.
type ActivityLevelFactor struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UpdatedAt  time.Time `json:"updated_at"`
	Level      int       `gorm:"not null;uniqueIndex" json:"level"`
	Multiplier float64   `gorm:"not null" json:"multiplier"`
}

// CalorieFraction is the admin-configured coefficient applied to TDEE,
// selected by diet goal or by the (diet goal, body type) pair. BodyType
// is empty for goal-only entries.
type CalorieFraction struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	DietGoal string    `gorm:"size:30;not null;index:idx_fraction_goal_body,unique" json:"diet_goal"`
	BodyType string    `gorm:"size:30;index:idx_fraction_goal_body,unique" json:"body_type"`
	Fraction float64   `gorm:"not null" json:"fraction"`
}
