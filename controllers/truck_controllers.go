package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

type TruckController struct {
	DB *gorm.DB
}

func NewTruckController(db *gorm.DB) *TruckController {
	return &TruckController{DB: db}
}

// GetAllTrucks is public. Optional ?status= filters by truck order
// status (available/unavailable/busy).
func (tc *TruckController) GetAllTrucks(c *gin.Context) {
	query := tc.DB.Model(&models.Truck{})
	if status := c.Query("status"); status != "" {
		if !models.ValidTruckOrderStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
		query = query.Where("order_status = ?", status)
	}

	var trucks []models.Truck
	if err := query.Find(&trucks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All trucks", trucks)
}

// GetTruckDetail is public and includes the truck's menu.
func (tc *TruckController) GetTruckDetail(c *gin.Context) {
	truckID, ok := paramUint(c, "truck_id")
	if !ok {
		return
	}

	var truck models.Truck
	if err := tc.DB.First(&truck, truckID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("truck not found"))
		return
	}

	var menu []models.MenuItem
	if err := tc.DB.Where("truckId = ?", truckID).Find(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Truck detail", gin.H{
		"truck": truck,
		"menu":  menu,
	})
}

// GetMyTrucks lists trucks owned by the authenticated owner.
func (tc *TruckController) GetMyTrucks(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var trucks []models.Truck
	if err := tc.DB.Where("ownerId = ?", user.ID).Find(&trucks).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "My trucks", trucks)
}

// UpdateOrderStatus lets the owner flip their truck between
// available/unavailable/busy.
func (tc *TruckController) UpdateOrderStatus(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	truckID, ok := paramUint(c, "truck_id")
	if !ok {
		return
	}

	var input struct {
		OrderStatus string `json:"orderStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidTruckOrderStatus(input.OrderStatus) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("orderStatus must be available, unavailable or busy"))
		return
	}

	truck, ok := tc.ownedTruck(c, truckID, user)
	if !ok {
		return
	}

	if err := tc.DB.Model(truck).Update("order_status", input.OrderStatus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Truck order status updated", truck)
}

// CreateTruck is admin-only: trucks are provisioned for an owner.
func (tc *TruckController) CreateTruck(c *gin.Context) {
	var input struct {
		TruckName string  `json:"truckName" binding:"required"`
		TruckLogo *string `json:"truckLogo"`
		OwnerID   uint    `json:"ownerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var owner models.User
	if err := tc.DB.First(&owner, input.OwnerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("owner not found"))
		return
	}
	if owner.Role != models.RoleTruckOwner {
		utils.RespondError(c, http.StatusBadRequest, errors.New("owner must have the truckOwner role"))
		return
	}

	truck := models.Truck{
		TruckName:   input.TruckName,
		TruckLogo:   input.TruckLogo,
		OwnerID:     input.OwnerID,
		TruckStatus: models.TruckAvailable,
		OrderStatus: models.TruckAvailable,
	}
	if err := tc.DB.Create(&truck).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("truck name already taken"))
		return
	}

	utils.InfoLogger.Printf("Truck created: %s (owner=%d)", truck.TruckName, truck.OwnerID)
	utils.RespondJSON(c, http.StatusCreated, "Truck created", truck)
}

// UpdateTruck updates name/logo. Owner of the truck or admin.
func (tc *TruckController) UpdateTruck(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	truckID, ok := paramUint(c, "truck_id")
	if !ok {
		return
	}

	var input struct {
		TruckName *string `json:"truckName"`
		TruckLogo *string `json:"truckLogo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	truck, ok := tc.ownedTruck(c, truckID, user)
	if !ok {
		return
	}

	updates := map[string]interface{}{}
	if input.TruckName != nil {
		updates["truck_name"] = *input.TruckName
	}
	if input.TruckLogo != nil {
		updates["truck_logo"] = *input.TruckLogo
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nothing to update"))
		return
	}

	if err := tc.DB.Model(truck).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Truck updated", truck)
}

// DeleteTruck is admin-only and cascades to the truck's menu.
func (tc *TruckController) DeleteTruck(c *gin.Context) {
	truckID, ok := paramUint(c, "truck_id")
	if !ok {
		return
	}

	var truck models.Truck
	if err := tc.DB.First(&truck, truckID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("truck not found"))
		return
	}

	if err := tc.DB.Delete(&truck).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Truck deleted", gin.H{"truckId": truckID})
}

// ownedTruck loads a truck and enforces owner-or-admin access.
func (tc *TruckController) ownedTruck(c *gin.Context, truckID uint, user *models.User) (*models.Truck, bool) {
	var truck models.Truck
	if err := tc.DB.First(&truck, truckID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("truck not found"))
		return nil, false
	}
	if truck.OwnerID != user.ID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not own this truck"))
		return nil, false
	}
	return &truck, true
}
