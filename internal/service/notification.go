package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/models"
	"github.com/sufrah/backend/internal/notify"
	"github.com/sufrah/backend/internal/types"
)

// NotificationService persists notifications and broadcasts them over
// the websocket hub. Emission is fire-and-forget: failures are logged
// and never roll back the write that triggered them.
type NotificationService struct {
	db  *gorm.DB
	hub *notify.Hub
}

// NewNotificationService creates a new NotificationService instance.
// hub may be nil in tests.
func NewNotificationService(db *gorm.DB, hub *notify.Hub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

// Notify stores a notification for the user and pushes it to any
// connected clients.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, typ string, title, body types.Message) {
	n := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    typ,
		TitleEN: title.EN,
		TitleAR: title.AR,
		BodyEN:  body.EN,
		BodyAR:  body.AR,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		log.Printf("notification persist failed: %v", err)
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, map[string]any{
			"kind":         "notification.created",
			"notification": n,
		})
	}
}

// NotifyAdmins sends the same notification to every admin user.
func (s *NotificationService) NotifyAdmins(ctx context.Context, typ string, title, body types.Message) {
	var admins []models.User
	if err := s.db.WithContext(ctx).Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		log.Printf("admin lookup failed: %v", err)
		return
	}
	for _, admin := range admins {
		s.Notify(ctx, admin.ID, typ, title, body)
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]models.Notification, *types.AppError) {
	var notifications []models.Notification
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		log.Printf("notification list failed: %v", err)
		return nil, types.ErrSomethingWentWrong()
	}
	return notifications, nil
}

// MarkRead flags a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) *types.AppError {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		log.Printf("notification mark read failed: %v", res.Error)
		return types.ErrSomethingWentWrong()
	}
	if res.RowsAffected == 0 {
		return types.NewNotFoundError("notification not found", "الإشعار غير موجود")
	}
	return nil
}
