package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodtruck-app/models"
)

func seedNotifications(db *gorm.DB, userID uint, count int) []models.Notification {
	notifs := make([]models.Notification, 0, count)
	for i := 0; i < count; i++ {
		notif := models.Notification{
			UserID:  userID,
			Type:    models.NotifOrderUpdate,
			Title:   "Order Status Update",
			Message: fmt.Sprintf("Order #%d is now: CONFIRMED", i+1),
		}
		if err := db.Create(&notif).Error; err != nil {
			panic(err)
		}
		notifs = append(notifs, notif)
	}
	return notifs
}

func TestListNotificationsWithUnreadCount(t *testing.T) {
	db := newTestDB("notiftest_list")
	r := newTestRouter(db)

	user, token := seedUser(db, "Reader", "reader@notif.test", models.RoleCustomer)
	notifs := seedNotifications(db, user.ID, 3)

	db.Model(&notifs[0]).Update("is_read", true)

	w := doJSON(r, "GET", "/api/v1/notifications", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataOf(t, w)
	assert.Len(t, data["notifications"].([]interface{}), 3)
	assert.Equal(t, float64(2), data["unreadCount"])

	// unreadOnly filter.
	w = doJSON(r, "GET", "/api/v1/notifications?unreadOnly=true", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataOf(t, w)["notifications"].([]interface{}), 2)

	// Count endpoint.
	w = doJSON(r, "GET", "/api/v1/notifications/count", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), dataOf(t, w)["unreadCount"])
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db := newTestDB("notiftest_markread")
	r := newTestRouter(db)

	user, token := seedUser(db, "Reader", "reader@markread.test", models.RoleCustomer)
	notifs := seedNotifications(db, user.ID, 1)

	url := fmt.Sprintf("/api/v1/notifications/%d/read", notifs[0].ID)

	w := doJSON(r, "PATCH", url, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second call succeeds identically.
	w = doJSON(r, "PATCH", url, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Notification
	assert.NoError(t, db.First(&reloaded, notifs[0].ID).Error)
	assert.True(t, reloaded.IsRead)
}

func TestMarkAllReadAndDeleteRead(t *testing.T) {
	db := newTestDB("notiftest_readall")
	r := newTestRouter(db)

	user, token := seedUser(db, "Reader", "reader@readall.test", models.RoleCustomer)
	seedNotifications(db, user.ID, 4)

	w := doJSON(r, "PATCH", "/api/v1/notifications/read-all", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), dataOf(t, w)["updated"])

	var unread int64
	db.Model(&models.Notification{}).Where("userId = ? AND is_read = ?", user.ID, false).Count(&unread)
	assert.Equal(t, int64(0), unread)

	// Deleting read notifications empties the inbox.
	w = doJSON(r, "DELETE", "/api/v1/notifications", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), dataOf(t, w)["deleted"])
}

func TestNotificationsAreScopedToOwner(t *testing.T) {
	db := newTestDB("notiftest_scope")
	r := newTestRouter(db)

	owner, _ := seedUser(db, "Owner", "owner@scope.test", models.RoleCustomer)
	notifs := seedNotifications(db, owner.ID, 1)
	_, intruderToken := seedUser(db, "Intruder", "intruder@scope.test", models.RoleCustomer)

	w := doJSON(r, "GET", fmt.Sprintf("/api/v1/notifications/%d", notifs[0].ID), intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, "DELETE", fmt.Sprintf("/api/v1/notifications/%d", notifs[0].ID), intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
