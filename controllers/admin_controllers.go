package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetStats returns platform-wide counters.
func (ac *AdminController) GetStats(c *gin.Context) {
	var users, trucks, orders, menuItems int64
	var activeOrders int64

	ac.DB.Model(&models.User{}).Count(&users)
	ac.DB.Model(&models.Truck{}).Count(&trucks)
	ac.DB.Model(&models.Order{}).Count(&orders)
	ac.DB.Model(&models.MenuItem{}).Count(&menuItems)
	ac.DB.Model(&models.Order{}).
		Where("order_status NOT IN ?", []models.OrderStatus{models.OrderCompleted, models.OrderCancelled}).
		Count(&activeOrders)

	utils.RespondJSON(c, http.StatusOK, "Platform stats", gin.H{
		"users":        users,
		"trucks":       trucks,
		"orders":       orders,
		"menuItems":    menuItems,
		"activeOrders": activeOrders,
	})
}

// GetAllUsers lists every account.
func (ac *AdminController) GetAllUsers(c *gin.Context) {
	var users []models.User
	query := ac.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		if !models.ValidRole(role) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid role filter"))
			return
		}
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// UpdateUserRole changes an account's role.
func (ac *AdminController) UpdateUserRole(c *gin.Context) {
	userID, ok := paramUint(c, "user_id")
	if !ok {
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidRole(input.Role) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role must be customer, truckOwner or admin"))
		return
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	if err := ac.DB.Model(&user).Update("role", input.Role).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %d role changed to %s", user.ID, input.Role)
	utils.RespondJSON(c, http.StatusOK, "User role updated", user)
}
