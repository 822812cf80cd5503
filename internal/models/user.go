package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
	Disabled     bool           `gorm:"not null;default:false" json:"disabled"`
}

type UserProfile struct {
	ID              uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username        string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Verified        bool           `gorm:"not null;default:false" json:"verified"`
	DeliveryAddress string         `gorm:"size:255" json:"delivery_address"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
