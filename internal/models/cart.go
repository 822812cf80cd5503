package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sufrah/backend/internal/types"
)

// Cart is one user's cart for one category. Created lazily on first add
// and cleared atomically after a successful order placement.
type Cart struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index:idx_cart_user_category,unique" json:"user_id"`
	Category  types.Category `gorm:"size:30;not null;index:idx_cart_user_category,unique" json:"category"`
	Lines     []CartLine     `gorm:"foreignKey:CartID" json:"lines"`
	DayPrices []CartDayPrice `gorm:"foreignKey:CartID" json:"day_prices,omitempty"`
}

// CartLine references a menu item. Main/offers lines carry a quantity;
// customized lines carry a day plus the quantities derived by the
// apportionment engine.
type CartLine struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CartID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"cart_id"`
	MenuItemID uuid.UUID `gorm:"type:varchar(36);not null" json:"menu_item_id"`
	Quantity   float64   `json:"quantity"`
	Day        int       `gorm:"index" json:"day,omitempty"`

	// Derived by the apportionment engine. QuantityOfOil holds
	// meat-derived fat grams; the label is a historical artifact kept
	// for kitchen-sheet compatibility. ExtraOil holds the oil-factor
	// quantity covering the added-fat shortfall.
	QuantityOfOil    float64 `json:"quantity_of_oil"`
	ExtraOil         float64 `json:"extra_oil"`
	QuantityOfStarch float64 `json:"quantity_of_starch"`
	QuantityOfMeat   float64 `json:"quantity_of_meat"`
}

// CartDayPrice caches price_for_specific_day for a customized cart. It
// is derived state: the engine recomputes it whenever cart contents
// change, and the aggregator reads it without recomputing.
type CartDayPrice struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	CartID    uuid.UUID `gorm:"type:varchar(36);not null;index:idx_day_price_cart_day,unique" json:"cart_id"`
	Day       int       `gorm:"not null;index:idx_day_price_cart_day,unique" json:"day"`
	Price     float64   `gorm:"not null" json:"price"`
}
