package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a persisted in-app notification. Delivery over the
// websocket hub is best-effort; the row is the source of truth.
type Notification struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	TitleEN   string    `gorm:"size:255;not null" json:"title_en"`
	TitleAR   string    `gorm:"size:255;not null" json:"title_ar"`
	BodyEN    string    `gorm:"type:text" json:"body_en"`
	BodyAR    string    `gorm:"type:text" json:"body_ar"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
}
