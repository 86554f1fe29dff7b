package services

import (
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
	"github.com/yeremiapane/foodtruck-app/ws"
	"gorm.io/gorm"
)

// NotificationService is a pure producer: it writes notification rows
// and pushes them over the websocket hub. Nothing in the core reads
// notifications back; that happens through the notification routes.
type NotificationService struct {
	db  *gorm.DB
	hub *ws.Hub
}

func NewNotificationService(db *gorm.DB, hub *ws.Hub) *NotificationService {
	return &NotificationService{db: db, hub: hub}
}

// Notify inserts a notification using the given handle (pass the
// transaction when notifying inside one) and pushes it to the
// recipient's open websocket connections. The push is fire-and-forget.
func (s *NotificationService) Notify(tx *gorm.DB, userID uint, notifType, title, message string) error {
	if tx == nil {
		tx = s.db
	}

	notif := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if err := tx.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to create notification for user %d: %v", userID, err)
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(userID, ws.EventNotification, notif)
	}
	return nil
}
