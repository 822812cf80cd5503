package types

import "github.com/google/uuid"

// AddMainCartLineRequest adds or overwrites a main-menu or offers cart
// line. A repeated menu item replaces the existing quantity.
type AddMainCartLineRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   float64   `json:"quantity" binding:"required,gt=0"`
}

// AddCustomizedCartLineRequest adds a meal to one day of the
// customized-meal cart.
type AddCustomizedCartLineRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Day        int       `json:"day" binding:"required,min=1,max=7"`
}

// CreateDiscountRangeRequest adds a subtotal range to a category's
// discount rule.
type CreateDiscountRangeRequest struct {
	Category   Category `json:"category" binding:"required"`
	Min        float64  `json:"min"`
	Max        float64  `json:"max" binding:"required"`
	Percentage float64  `json:"percentage" binding:"required,gt=0,lte=100"`
	IsActive   bool     `json:"is_active"`
}

// UpdateDiscountRangeRequest edits an existing range in place.
type UpdateDiscountRangeRequest struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max" binding:"required"`
	Percentage float64 `json:"percentage" binding:"required,gt=0,lte=100"`
	IsActive   bool    `json:"is_active"`
}

// PlaceOrderRequest carries the customer/delivery metadata snapshotted
// onto the order. Plan parameters are optional but must match a visible
// configured option when present.
type PlaceOrderRequest struct {
	NumberOfMealsPerDay *int   `json:"number_of_meals_per_day"`
	PlanDuration        *int   `json:"plan_duration"`
	DeliveryAddress     string `json:"delivery_address"`
	Notes               string `json:"notes"`
}

// TransitionOrderStatusRequest mutates exactly one status field.
type TransitionOrderStatusRequest struct {
	Field OrderStatusField `json:"field" binding:"required"`
	Value string           `json:"value" binding:"required"`
}

// CustomizedMealIntakeRequest creates the per-user macro-target profile.
type CustomizedMealIntakeRequest struct {
	DietCategory       DietCategory `json:"diet_category" binding:"required"`
	Protein            float64      `json:"protein" binding:"required,gt=0"`
	Fat                float64      `json:"fat" binding:"required,gt=0"`
	Carbs              float64      `json:"carbs" binding:"required,gt=0"`
	MealDurationRepeat int          `json:"meal_duration_repeat" binding:"required,min=1,max=7"`
}

// UserMetrics are the inputs to the BMR/TDEE/macro calculators.
type UserMetrics struct {
	WeightKg       float64 `json:"weight_kg" binding:"required,gt=0"`
	HeightCm       float64 `json:"height_cm" binding:"required,gt=0"`
	Age            int     `json:"age" binding:"required,gt=0"`
	Male           bool    `json:"male"`
	BodyFatPercent float64 `json:"body_fat_percent"`
	// ActivityLevelFactor selects one of the six configured TDEE
	// multipliers, 1..6.
	ActivityLevelFactor int    `json:"activity_level_factor" binding:"required,min=1,max=6"`
	DietGoal            string `json:"diet_goal" binding:"required"`
	BodyType            string `json:"body_type"`
}
