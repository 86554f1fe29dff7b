package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/services"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

// PaymentController is a simulated payment boundary: every structurally
// valid payment succeeds and confirms the order. No gateway is called.
type PaymentController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewPaymentController(db *gorm.DB, orders *services.OrderService) *PaymentController {
	return &PaymentController{DB: db, Orders: orders}
}

// PayOrder processes a payment for the caller's order. Card payments
// require card fields; cash needs nothing extra.
func (pc *PaymentController) PayOrder(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	var input struct {
		Method     string `json:"method" binding:"required"`
		CardNumber string `json:"cardNumber"`
		CardExpiry string `json:"cardExpiry"`
		CardCVV    string `json:"cardCvv"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch input.Method {
	case "cash":
	case "card":
		if input.CardNumber == "" || input.CardExpiry == "" || input.CardCVV == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("card payments require cardNumber, cardExpiry and cardCvv"))
			return
		}
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("method must be cash or card"))
		return
	}

	order, err := pc.Orders.ConfirmPaid(orderID, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Payment processed for order #%d (%s)", order.ID, input.Method)
	utils.RespondJSON(c, http.StatusOK, "Payment successful", gin.H{
		"order":  order,
		"amount": order.TotalPrice,
		"method": input.Method,
	})
}

// GetPaymentStatus derives payment state from the order status: a
// pending order is unpaid, a cancelled one refunded, anything else paid.
func (pc *PaymentController) GetPaymentStatus(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	var order models.Order
	if err := pc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	var truck models.Truck
	if err := pc.DB.First(&truck, order.TruckID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if user.ID != order.UserID && user.ID != truck.OwnerID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("access denied"))
		return
	}

	paymentStatus := "paid"
	switch order.OrderStatus {
	case models.OrderPending:
		paymentStatus = "unpaid"
	case models.OrderCancelled:
		paymentStatus = "refunded"
	}

	utils.RespondJSON(c, http.StatusOK, "Payment status", gin.H{
		"orderId":       order.ID,
		"orderStatus":   order.OrderStatus,
		"paymentStatus": paymentStatus,
		"amount":        order.TotalPrice,
	})
}

// RefundOrder lets the truck owner cancel and refund a non-completed
// order; inventory is restored in the same transaction.
func (pc *PaymentController) RefundOrder(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	// Body is optional for refunds.
	_ = c.ShouldBindJSON(&input)

	order, err := pc.Orders.Refund(orderID, user, input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d refunded by owner %d", order.ID, user.ID)
	utils.RespondJSON(c, http.StatusOK, "Refund processed", order)
}
