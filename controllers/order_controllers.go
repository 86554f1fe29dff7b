package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/services"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService) *OrderController {
	return &OrderController{DB: db, Orders: orders}
}

// CreateOrder checks out the caller's cart lines for one truck.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		TruckID             uint       `json:"truckId" binding:"required"`
		ScheduledPickupTime *time.Time `json:"scheduledPickupTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Checkout(user, input.TruckID, input.ScheduledPickupTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d created by user %d (truck=%d, total=%s)",
		order.ID, user.ID, order.TruckID, utils.FormatCurrencyEGP(order.TotalPrice))
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrders lists the caller's orders. Owners pass ?view=truck (and
// optionally ?truck_id=) to see orders received by their trucks.
// Optional ?status= filters either view.
func (oc *OrderController) GetOrders(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	query := oc.DB.Model(&models.Order{}).Preload("OrderItems").Preload("OrderItems.Item")

	if c.Query("view") == "truck" {
		if user.Role != models.RoleTruckOwner && user.Role != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("truck view requires truckOwner role"))
			return
		}
		query = query.Joins("JOIN trucks ON trucks.truckId = orders.truckId")
		if user.Role != models.RoleAdmin {
			query = query.Where("trucks.ownerId = ?", user.ID)
		}
		if truckID := c.Query("truck_id"); truckID != "" {
			query = query.Where("orders.truckId = ?", truckID)
		}
	} else {
		query = query.Where("orders.userId = ?", user.ID)
	}

	if status := c.Query("status"); status != "" {
		parsed, valid := models.ParseOrderStatus(status)
		if !valid {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
		query = query.Where("orders.order_status = ?", parsed)
	}

	var orders []models.Order
	if err := query.Order("orders.orderId DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Orders", orders)
}

// GetOrderDetail returns one order with its lines, pickup and, for the
// truck owner, the customer's contact info.
func (oc *OrderController) GetOrderDetail(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	order, truck, ok := oc.visibleOrder(c, orderID, user)
	if !ok {
		return
	}

	var pickup *models.Pickup
	var found models.Pickup
	if err := oc.DB.Where("orderId = ?", orderID).First(&found).Error; err == nil {
		pickup = &found
	}

	payload := gin.H{
		"order":  order,
		"truck":  truck,
		"pickup": pickup,
	}

	// Owner sees who placed the order.
	if user.ID != order.UserID {
		var customer models.User
		if err := oc.DB.First(&customer, order.UserID).Error; err == nil {
			payload["customer"] = gin.H{
				"userId": customer.ID,
				"name":   customer.Name,
				"email":  customer.Email,
			}
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", payload)
}

// GetOrderItems returns only the frozen lines of one order.
func (oc *OrderController) GetOrderItems(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	if _, _, ok := oc.visibleOrder(c, orderID, user); !ok {
		return
	}

	var items []models.OrderItem
	if err := oc.DB.Preload("Item").Where("orderId = ?", orderID).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order items", items)
}

// UpdateOrderStatus applies one lifecycle transition.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status, valid := models.ParseOrderStatus(input.Status)
	if !valid {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order status"))
		return
	}

	order, err := oc.Orders.Transition(orderID, status, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// CancelOrder lets the customer cancel their own pending order.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Orders.Transition(orderID, models.OrderCancelled, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// visibleOrder loads an order and enforces that the caller is the
// customer, the truck owner or an admin.
func (oc *OrderController) visibleOrder(c *gin.Context, orderID uint, user *models.User) (*models.Order, *models.Truck, bool) {
	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Item").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return nil, nil, false
	}

	var truck models.Truck
	if err := oc.DB.First(&truck, order.TruckID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, nil, false
	}

	if user.ID != order.UserID && user.ID != truck.OwnerID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("access denied"))
		return nil, nil, false
	}
	return &order, &truck, true
}
