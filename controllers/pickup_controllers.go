package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/services"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

type PickupController struct {
	DB       *gorm.DB
	Notifier *services.NotificationService
}

func NewPickupController(db *gorm.DB, notifier *services.NotificationService) *PickupController {
	return &PickupController{DB: db, Notifier: notifier}
}

// SchedulePickup creates the single pickup for an order. The customer
// schedules it; a second attempt conflicts. Defaults to the order's
// estimated earliest pickup when no time is given.
func (pc *PickupController) SchedulePickup(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		OrderID       uint       `json:"orderId" binding:"required"`
		ScheduledTime *time.Time `json:"scheduledTime"`
		Notes         *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, input.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	if order.UserID != user.ID {
		utils.RespondError(c, http.StatusForbidden, errors.New("not your order"))
		return
	}
	if order.OrderStatus.Terminal() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot schedule pickup for a finished order"))
		return
	}

	var existing models.Pickup
	if err := pc.DB.Where("orderId = ?", order.ID).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("pickup already scheduled for this order"))
		return
	}

	scheduledTime := order.EstimatedEarliestPickup
	if input.ScheduledTime != nil {
		scheduledTime = *input.ScheduledTime
	}

	pickup := models.Pickup{
		OrderID:       order.ID,
		PickupStatus:  models.PickupScheduled,
		ScheduledTime: scheduledTime,
		Notes:         input.Notes,
	}
	if err := pc.DB.Create(&pickup).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var truck models.Truck
	if err := pc.DB.First(&truck, order.TruckID).Error; err == nil {
		pc.Notifier.Notify(nil, truck.OwnerID, models.NotifPickupScheduled, "Pickup Scheduled",
			fmt.Sprintf("Pickup for Order #%d scheduled at %s", order.ID, scheduledTime.Format(time.RFC3339)))
	}

	utils.RespondJSON(c, http.StatusCreated, "Pickup scheduled", pickup)
}

// GetPickups lists pickups for the caller: their own orders, or their
// trucks' orders with ?view=truck.
func (pc *PickupController) GetPickups(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	query := pc.DB.Model(&models.Pickup{}).
		Joins("JOIN orders ON orders.orderId = pickups.orderId")

	if c.Query("view") == "truck" {
		if user.Role != models.RoleTruckOwner && user.Role != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("truck view requires truckOwner role"))
			return
		}
		query = query.Joins("JOIN trucks ON trucks.truckId = orders.truckId")
		if user.Role != models.RoleAdmin {
			query = query.Where("trucks.ownerId = ?", user.ID)
		}
	} else {
		query = query.Where("orders.userId = ?", user.ID)
	}

	var pickups []models.Pickup
	if err := query.Order("pickups.scheduled_time ASC").Find(&pickups).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pickups", pickups)
}

// GetPickupByOrder returns the pickup of one order.
func (pc *PickupController) GetPickupByOrder(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	pickup, _, _, ok := pc.accessiblePickupByOrder(c, orderID, user)
	if !ok {
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Pickup detail", pickup)
}

// UpdatePickup reschedules and/or moves the pickup status. ready and
// picked_up are owner actions; the customer may reschedule or cancel.
// picked_up stamps completedAt and is final.
func (pc *PickupController) UpdatePickup(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	pickupID, ok := paramUint(c, "pickup_id")
	if !ok {
		return
	}

	var input struct {
		Status        *string    `json:"status"`
		ScheduledTime *time.Time `json:"scheduledTime"`
		Notes         *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	pickup, order, truck, ok := pc.accessiblePickup(c, pickupID, user)
	if !ok {
		return
	}
	if pickup.PickupStatus == models.PickupPickedUp {
		utils.RespondError(c, http.StatusBadRequest, errors.New("pickup already completed"))
		return
	}

	updates := map[string]interface{}{}
	newStatus := pickup.PickupStatus

	if input.Status != nil {
		status, valid := models.ParsePickupStatus(*input.Status)
		if !valid {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid pickup status"))
			return
		}
		ownerAction := status == models.PickupReady || status == models.PickupPickedUp
		if ownerAction && user.ID != truck.OwnerID && user.Role != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("only the truck owner can set this status"))
			return
		}
		newStatus = status
		updates["pickup_status"] = status
		if status == models.PickupPickedUp {
			updates["completed_at"] = time.Now()
		}
	}
	if input.ScheduledTime != nil {
		updates["scheduled_time"] = *input.ScheduledTime
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nothing to update"))
		return
	}

	if err := pc.DB.Model(pickup).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	pickup.PickupStatus = newStatus

	counterpart := order.UserID
	if user.ID == order.UserID {
		counterpart = truck.OwnerID
	}
	pc.Notifier.Notify(nil, counterpart, models.NotifPickupUpdate, "Pickup Update",
		fmt.Sprintf("Pickup for Order #%d is now: %s", order.ID, pickup.PickupStatus))

	utils.RespondJSON(c, http.StatusOK, "Pickup updated", pickup)
}

// CancelPickup cancels a not-yet-completed pickup.
func (pc *PickupController) CancelPickup(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	pickupID, ok := paramUint(c, "pickup_id")
	if !ok {
		return
	}

	pickup, order, truck, ok := pc.accessiblePickup(c, pickupID, user)
	if !ok {
		return
	}
	if pickup.PickupStatus == models.PickupPickedUp {
		utils.RespondError(c, http.StatusBadRequest, errors.New("pickup already completed"))
		return
	}

	if err := pc.DB.Model(pickup).Update("pickup_status", models.PickupCancelled).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	pickup.PickupStatus = models.PickupCancelled

	counterpart := order.UserID
	if user.ID == order.UserID {
		counterpart = truck.OwnerID
	}
	pc.Notifier.Notify(nil, counterpart, models.NotifPickupUpdate, "Pickup Cancelled",
		fmt.Sprintf("Pickup for Order #%d was cancelled", order.ID))

	utils.RespondJSON(c, http.StatusOK, "Pickup cancelled", pickup)
}

func (pc *PickupController) accessiblePickup(c *gin.Context, pickupID uint, user *models.User) (*models.Pickup, *models.Order, *models.Truck, bool) {
	var pickup models.Pickup
	if err := pc.DB.First(&pickup, pickupID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("pickup not found"))
		return nil, nil, nil, false
	}
	return pc.authorizePickup(c, &pickup, user)
}

func (pc *PickupController) accessiblePickupByOrder(c *gin.Context, orderID uint, user *models.User) (*models.Pickup, *models.Order, *models.Truck, bool) {
	var pickup models.Pickup
	if err := pc.DB.Where("orderId = ?", orderID).First(&pickup).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("pickup not found"))
		return nil, nil, nil, false
	}
	return pc.authorizePickup(c, &pickup, user)
}

func (pc *PickupController) authorizePickup(c *gin.Context, pickup *models.Pickup, user *models.User) (*models.Pickup, *models.Order, *models.Truck, bool) {
	var order models.Order
	if err := pc.DB.First(&order, pickup.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, nil, nil, false
	}
	var truck models.Truck
	if err := pc.DB.First(&truck, order.TruckID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, nil, nil, false
	}
	if user.ID != order.UserID && user.ID != truck.OwnerID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("access denied"))
		return nil, nil, nil, false
	}
	return pickup, &order, &truck, true
}
