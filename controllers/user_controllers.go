package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yeremiapane/foodtruck-app/middlewares"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionDuration is how long a login session stays valid.
const SessionDuration = 5 * time.Hour

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register a new user. Role is customer or truckOwner; admin accounts
// are only created through the admin role endpoint.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name      string     `json:"name" binding:"required"`
		Email     string     `json:"email" binding:"required,email"`
		Password  string     `json:"password" binding:"required,min=6"`
		Role      string     `json:"role"`
		BirthDate *time.Time `json:"birthDate"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Role == "" {
		req.Role = models.RoleCustomer
	}
	if req.Role != models.RoleCustomer && req.Role != models.RoleTruckOwner {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role must be customer or truckOwner"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Role:         req.Role,
		BirthDate:    req.BirthDate,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email already registered"))
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"userId": user.ID,
	})
}

// Login verifies credentials and opens a DB-backed session. The token
// is returned in the body and also set as a cookie for browser clients.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	session := models.Session{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(SessionDuration),
	}
	if err := uc.DB.Create(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.SetCookie("session_token", session.Token, int(SessionDuration.Seconds()), "/", "", false, true)

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
		"user":      user,
	})
}

// Logout deletes the current session.
func (uc *UserController) Logout(c *gin.Context) {
	token := middlewares.ExtractToken(c)
	if token != "" {
		uc.DB.Where("token = ?", token).Delete(&models.Session{})
	}
	c.SetCookie("session_token", "", -1, "/", "", false, true)

	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile returns the authenticated user's account.
func (uc *UserController) GetProfile(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}

// UpdateProfile changes name and/or birth date.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		Name      *string    `json:"name"`
		BirthDate *time.Time `json:"birthDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.BirthDate != nil {
		updates["birth_date"] = *input.BirthDate
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nothing to update"))
		return
	}

	if err := uc.DB.Model(user).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", user)
}

// UpdateEmail changes the account email after re-verifying the password.
func (uc *UserController) UpdateEmail(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := uc.DB.Model(user).Update("email", input.Email).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email already in use"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Email updated", gin.H{"email": input.Email})
}

// UpdatePassword verifies the current password, stores the new hash and
// revokes every other session.
func (uc *UserController) UpdatePassword(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("current password is incorrect"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Update("password_hash", string(hashed)).Error; err != nil {
			return err
		}
		token := middlewares.ExtractToken(c)
		return tx.Where("userId = ? AND token <> ?", user.ID, token).Delete(&models.Session{}).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Password updated", nil)
}

// DeleteAccount removes the user and all their sessions.
func (uc *UserController) DeleteAccount(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("userId = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.SetCookie("session_token", "", -1, "/", "", false, true)
	utils.RespondJSON(c, http.StatusOK, "Account deleted", nil)
}
