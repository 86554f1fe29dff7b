package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/foodtruck-app/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB("usertest_register")
	r := newTestRouter(db)

	w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["status"])
	data := resp["data"].(map[string]interface{})
	assert.NotNil(t, data["userId"])

	// Default role is customer.
	var user models.User
	assert.NoError(t, db.Where("email = ?", "test@example.com").First(&user).Error)
	assert.Equal(t, models.RoleCustomer, user.Role)

	w = doJSON(r, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data = dataOf(t, w)
	token, ok := data["token"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	// The token opens authenticated routes.
	w = doJSON(r, "GET", "/api/v1/account", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	db := newTestDB("usertest_adminrole")
	r := newTestRouter(db)

	w := doJSON(r, "POST", "/api/v1/auth/register", "", map[string]string{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "password123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB("usertest_badcreds")
	r := newTestRouter(db)
	seedUser(db, "Known User", "known@example.com", models.RoleCustomer)

	w := doJSON(r, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "known@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	db := newTestDB("usertest_logout")
	r := newTestRouter(db)
	_, token := seedUser(db, "Leaving User", "leaving@example.com", models.RoleCustomer)

	w := doJSON(r, "POST", "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/v1/account", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePassword(t *testing.T) {
	db := newTestDB("usertest_password")
	r := newTestRouter(db)
	_, token := seedUser(db, "Careful User", "careful@example.com", models.RoleCustomer)

	// Wrong current password is rejected.
	w := doJSON(r, "PUT", "/api/v1/account/password", token, map[string]string{
		"currentPassword": "not-the-password",
		"newPassword":     "new-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "PUT", "/api/v1/account/password", token, map[string]string{
		"currentPassword": "password123",
		"newPassword":     "new-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// New password works on login.
	w = doJSON(r, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "careful@example.com",
		"password": "new-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAccountRemovesSessions(t *testing.T) {
	db := newTestDB("usertest_delete")
	r := newTestRouter(db)
	user, token := seedUser(db, "Gone User", "gone@example.com", models.RoleCustomer)

	w := doJSON(r, "DELETE", "/api/v1/account", token, map[string]string{
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Where("userId = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	db.Model(&models.Session{}).Where("userId = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
