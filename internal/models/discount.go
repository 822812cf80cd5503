package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sufrah/backend/internal/types"
)

// DiscountRule owns the ranges for one category. At most one rule exists
// per category; the service guards against duplicates on creation.
type DiscountRule struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Category  types.Category  `gorm:"size:30;not null;uniqueIndex" json:"category"`
	Ranges    []DiscountRange `gorm:"foreignKey:RuleID" json:"ranges"`
}

// DiscountRange is a closed [min,max] subtotal interval. Active ranges
// within one rule must not overlap; inactive ranges are unconstrained.
type DiscountRange struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	RuleID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"rule_id"`
	Min        float64   `gorm:"not null" json:"min"`
	Max        float64   `gorm:"not null" json:"max"`
	Percentage float64   `gorm:"not null" json:"percentage"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
}

// Overlaps reports whether two closed intervals intersect.
func (r DiscountRange) Overlaps(other DiscountRange) bool {
	return r.Min <= other.Max && r.Max >= other.Min
}
