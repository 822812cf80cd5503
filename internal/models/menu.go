package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/types"
)

// MenuItem is a main-menu meal sold by unit price.
type MenuItem struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	NameAr      string         `gorm:"size:255" json:"name_ar"`
	Description string         `gorm:"type:text" json:"description"`
	ImageKey    string         `gorm:"size:255" json:"image_key"`
	Price       float64        `gorm:"not null" json:"price"`
	Visible     bool           `gorm:"not null;default:true" json:"visible"`
}

// OfferedMeal is a package/weekly offer sold by unit price.
type OfferedMeal struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	NameAr      string         `gorm:"size:255" json:"name_ar"`
	Description string         `gorm:"type:text" json:"description"`
	ImageKey    string         `gorm:"size:255" json:"image_key"`
	Price       float64        `gorm:"not null" json:"price"`
	Visible     bool           `gorm:"not null;default:true" json:"visible"`
}

// CustomizedMealMenu is a meal the apportionment engine prices per gram.
// The seven coefficients are admin-configured and change only on catalog
// edits, never per order.
type CustomizedMealMenu struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	NameAr    string         `gorm:"size:255" json:"name_ar"`
	ImageKey  string         `gorm:"size:255" json:"image_key"`
	Visible   bool           `gorm:"not null;default:true" json:"visible"`

	// Nutritional facts per serving. Fadd is "added fat", distinct from
	// the fat derived from the meal's protein content.
	Protein float64 `gorm:"not null" json:"protein"`
	Fadd    float64 `gorm:"not null" json:"fadd"`
	Carbs   float64 `gorm:"not null" json:"carbs"`

	// Price per gram of protein/carb/fat.
	Prp float64 `gorm:"not null" json:"prp"`
	Prc float64 `gorm:"not null" json:"prc"`
	Prf float64 `gorm:"not null" json:"prf"`

	// Meat/starch/oil conversion factors for kitchen prep, plus the
	// fat-in-meat factor used by the first apportionment pass.
	Mf  float64 `gorm:"not null" json:"mf"`
	Sf  float64 `gorm:"not null" json:"sf"`
	Of  float64 `gorm:"not null" json:"of"`
	Fmf float64 `gorm:"not null" json:"fmf"`
}

// PlanOption is a visible choice for a plan parameter (meals per day or
// plan duration). Order placement validates provided parameters against
// the visible options of the matching kind.
type PlanOption struct {
	ID        uuid.UUID            `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	Kind      types.PlanOptionKind `gorm:"size:30;not null;index" json:"kind"`
	Value     int                  `gorm:"not null" json:"value"`
	Visible   bool                 `gorm:"not null;default:true" json:"visible"`
}
