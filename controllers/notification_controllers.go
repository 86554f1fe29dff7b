package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications lists the caller's notifications, newest first.
// ?limit= caps the result (default 50), ?unreadOnly=true filters.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	query := nc.DB.Where("userId = ?", user.ID)
	if c.Query("unreadOnly") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifs []models.Notification
	if err := query.Order("notificationId DESC").Limit(limit).Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var unread int64
	nc.DB.Model(&models.Notification{}).
		Where("userId = ? AND is_read = ?", user.ID, false).
		Count(&unread)

	utils.RespondJSON(c, http.StatusOK, "Notifications", gin.H{
		"notifications": notifs,
		"unreadCount":   unread,
	})
}

// GetUnreadCount returns only the unread counter.
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var unread int64
	if err := nc.DB.Model(&models.Notification{}).
		Where("userId = ? AND is_read = ?", user.ID, false).
		Count(&unread).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unread count", gin.H{"unreadCount": unread})
}

// GetNotificationByID returns one of the caller's notifications.
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	notifID, ok := paramUint(c, "notif_id")
	if !ok {
		return
	}

	var notif models.Notification
	if err := nc.DB.Where("notificationId = ? AND userId = ?", notifID, user.ID).First(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

// MarkRead marks one notification read. Marking an already-read
// notification is a no-op success.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	notifID, ok := paramUint(c, "notif_id")
	if !ok {
		return
	}

	var notif models.Notification
	if err := nc.DB.Where("notificationId = ? AND userId = ?", notifID, user.ID).First(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	if !notif.IsRead {
		if err := nc.DB.Model(&notif).Update("is_read", true).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	notif.IsRead = true

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}

// MarkAllRead marks every unread notification of the caller read.
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	result := nc.DB.Model(&models.Notification{}).
		Where("userId = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", gin.H{
		"updated": result.RowsAffected,
	})
}

// DeleteNotification deletes one of the caller's notifications.
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	notifID, ok := paramUint(c, "notif_id")
	if !ok {
		return
	}

	result := nc.DB.Where("notificationId = ? AND userId = ?", notifID, user.ID).
		Delete(&models.Notification{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notifId": notifID})
}

// DeleteRead bulk-deletes read notifications; ?all=true deletes
// everything.
func (nc *NotificationController) DeleteRead(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	query := nc.DB.Where("userId = ?", user.ID)
	if c.Query("all") != "true" {
		query = query.Where("is_read = ?", true)
	}

	result := query.Delete(&models.Notification{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications deleted", gin.H{
		"deleted": result.RowsAffected,
	})
}
