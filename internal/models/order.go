package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sufrah/backend/internal/types"
)

// OrderCartSummary snapshots one category's aggregate at placement time.
type OrderCartSummary struct {
	Subtotal              float64 `json:"subtotal"`
	Discount              float64 `json:"discount"`
	DiscountPercentage    float64 `json:"discount_percentage"`
	SubtotalAfterDiscount float64 `json:"subtotal_after_discount"`
}

// Order is an immutable snapshot of the aggregated carts. Only the
// status fields are mutated after creation, by admin transitions; orders
// are never deleted.
type Order struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`

	MainMeal       OrderCartSummary `gorm:"embedded;embeddedPrefix:main_" json:"main_meal"`
	OfferedMeal    OrderCartSummary `gorm:"embedded;embeddedPrefix:offered_" json:"offered_meal"`
	CustomizedMeal OrderCartSummary `gorm:"embedded;embeddedPrefix:customized_" json:"customized_meal"`

	GrandTotal                     float64 `gorm:"not null" json:"grand_total"`
	DiscountOnGrandTotal           float64 `json:"discount_on_grand_total"`
	DiscountPercentageOnGrandTotal float64 `json:"discount_percentage_on_grand_total"`
	GrandTotalAfterDiscount        float64 `gorm:"not null" json:"grand_total_after_discount"`

	NumberOfMealsPerDay *int   `json:"number_of_meals_per_day,omitempty"`
	PlanDuration        *int   `json:"plan_duration,omitempty"`
	DeliveryAddress     string `gorm:"size:255" json:"delivery_address"`
	Phone               string `gorm:"size:20" json:"phone"`
	Notes               string `gorm:"type:text" json:"notes"`

	OrderStatus    types.OrderStatus    `gorm:"size:20;not null;default:'pending'" json:"order_status"`
	DeliveryStatus types.DeliveryStatus `gorm:"size:20;not null;default:'pending'" json:"delivery_status"`
	PaidStatus     bool                 `gorm:"not null;default:false" json:"paid_status"`
}
