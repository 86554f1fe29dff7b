package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/foodtruck-app/models"
)

func TestCheckoutHappyPath(t *testing.T) {
	db := newTestDB("ordertest_happy")
	r := newTestRouter(db)

	owner, _ := seedUser(db, "Owner", "owner@order.test", models.RoleTruckOwner)
	truck, item := seedTruckWithItem(db, owner.ID, "Order Truck", "Koshari", 10.00, 5)
	customer, token := seedUser(db, "Customer", "customer@order.test", models.RoleCustomer)

	w := doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{
		"itemId":   item.ID,
		"quantity": 3,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{
		"truckId": truck.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := dataOf(t, w)
	assert.Equal(t, string(models.OrderPending), data["orderStatus"])
	assert.Equal(t, 30.00, data["totalPrice"])
	assert.NotEmpty(t, data["estimatedEarliestPickup"])

	// Stock decremented.
	var record models.InventoryRecord
	assert.NoError(t, db.Where("itemId = ?", item.ID).First(&record).Error)
	assert.Equal(t, 2, record.Quantity)

	// Cart cleared.
	var cartCount int64
	db.Model(&models.CartItem{}).Where("userId = ?", customer.ID).Count(&cartCount)
	assert.Equal(t, int64(0), cartCount)

	// Owner notified of the new order.
	var notif models.Notification
	assert.NoError(t, db.Where("userId = ? AND type = ?", owner.ID, models.NotifNewOrder).First(&notif).Error)
	assert.Contains(t, notif.Message, "EGP 30.00")
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	db := newTestDB("ordertest_empty")
	r := newTestRouter(db)

	owner, _ := seedUser(db, "Owner", "owner@orderempty.test", models.RoleTruckOwner)
	truck, _ := seedTruckWithItem(db, owner.ID, "Empty Truck", "Falafel", 5.00, 5)
	_, token := seedUser(db, "Customer", "customer@orderempty.test", models.RoleCustomer)

	w := doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{
		"truckId": truck.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutRejectsInsufficientStockAtomically(t *testing.T) {
	db := newTestDB("ordertest_stock")
	r := newTestRouter(db)

	owner, _ := seedUser(db, "Owner", "owner@orderstock.test", models.RoleTruckOwner)
	truck, itemA := seedTruckWithItem(db, owner.ID, "Stock Truck", "Item A", 10.00, 5)
	_, token := seedUser(db, "Customer", "customer@orderstock.test", models.RoleCustomer)

	// Second item on the same truck with plenty of stock at cart time.
	itemB := models.MenuItem{
		TruckID:  truck.ID,
		Name:     "Item B",
		Price:    4.00,
		Category: "mains",
		Status:   models.ItemAvailable,
	}
	assert.NoError(t, db.Create(&itemB).Error)
	assert.NoError(t, db.Create(&models.InventoryRecord{
		ItemID:   itemB.ID,
		Quantity: 2,
	}).Error)

	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": itemA.ID, "quantity": 2})
	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": itemB.ID, "quantity": 2})

	// Stock for B drains before checkout.
	db.Model(&models.InventoryRecord{}).Where("itemId = ?", itemB.ID).Update("quantity", 0)

	w := doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{
		"truckId": truck.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Item B")

	// Nothing committed: no order, item A's stock untouched, cart kept.
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)

	var recordA models.InventoryRecord
	assert.NoError(t, db.Where("itemId = ?", itemA.ID).First(&recordA).Error)
	assert.Equal(t, 5, recordA.Quantity)

	var cartCount int64
	db.Model(&models.CartItem{}).Count(&cartCount)
	assert.Equal(t, int64(2), cartCount)
}

func TestCheckoutConsumesOnlyTargetTruckLines(t *testing.T) {
	db := newTestDB("ordertest_twotrucks")
	r := newTestRouter(db)

	owner, _ := seedUser(db, "Owner", "owner@twotrucks.test", models.RoleTruckOwner)
	truckA, itemA := seedTruckWithItem(db, owner.ID, "Two Truck A", "Dish A", 6.00, 10)
	_, itemB := seedTruckWithItem(db, owner.ID, "Two Truck B", "Dish B", 9.00, 10)
	_, token := seedUser(db, "Customer", "customer@twotrucks.test", models.RoleCustomer)

	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": itemA.ID, "quantity": 1})
	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": itemB.ID, "quantity": 1})

	w := doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{
		"truckId": truckA.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 6.00, dataOf(t, w)["totalPrice"])

	// The other truck's line survives.
	var remaining models.CartItem
	assert.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, itemB.ID, remaining.ItemID)
}

func TestOrderLifecycleAndCancellationRestock(t *testing.T) {
	db := newTestDB("ordertest_lifecycle")
	r := newTestRouter(db)

	owner, ownerToken := seedUser(db, "Owner", "owner@lifecycle.test", models.RoleTruckOwner)
	truck, item := seedTruckWithItem(db, owner.ID, "Lifecycle Truck", "Koshari", 10.00, 5)
	customer, token := seedUser(db, "Customer", "customer@lifecycle.test", models.RoleCustomer)

	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": item.ID, "quantity": 3})
	w := doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{"truckId": truck.ID})
	assert.Equal(t, http.StatusCreated, w.Code)
	orderID := uint(dataOf(t, w)["orderId"].(float64))

	statusURL := fmt.Sprintf("/api/v1/orders/%d/status", orderID)

	// Illegal jump pending -> completed is rejected.
	w = doJSON(r, "PUT", statusURL, ownerToken, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Customer cannot confirm their own order.
	w = doJSON(r, "PUT", statusURL, token, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner walks the forward path.
	w = doJSON(r, "PUT", statusURL, ownerToken, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, "PUT", statusURL, ownerToken, map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Cancellation from preparing restores inventory.
	w = doJSON(r, "PUT", statusURL, ownerToken, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, w.Code)

	var record models.InventoryRecord
	assert.NoError(t, db.Where("itemId = ?", item.ID).First(&record).Error)
	assert.Equal(t, 5, record.Quantity)

	// Customer was notified of the update.
	var count int64
	db.Model(&models.Notification{}).
		Where("userId = ? AND type = ?", customer.ID, models.NotifOrderUpdate).
		Count(&count)
	assert.Greater(t, count, int64(0))

	// Terminal: no further transitions.
	w = doJSON(r, "PUT", statusURL, ownerToken, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerCancelsOwnPendingOrder(t *testing.T) {
	db := newTestDB("ordertest_cancel")
	r := newTestRouter(db)

	owner, ownerToken := seedUser(db, "Owner", "owner@cancel.test", models.RoleTruckOwner)
	truck, item := seedTruckWithItem(db, owner.ID, "Cancel Truck", "Falafel", 5.00, 4)
	_, token := seedUser(db, "Customer", "customer@cancel.test", models.RoleCustomer)

	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": item.ID, "quantity": 2})
	w := doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{"truckId": truck.ID})
	orderID := uint(dataOf(t, w)["orderId"].(float64))

	w = doJSON(r, "DELETE", fmt.Sprintf("/api/v1/orders/%d", orderID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var record models.InventoryRecord
	assert.NoError(t, db.Where("itemId = ?", item.ID).First(&record).Error)
	assert.Equal(t, 4, record.Quantity)

	// Once confirmed, the customer can no longer cancel.
	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": item.ID, "quantity": 1})
	w = doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{"truckId": truck.ID})
	secondID := uint(dataOf(t, w)["orderId"].(float64))

	doJSON(r, "PUT", fmt.Sprintf("/api/v1/orders/%d/status", secondID), ownerToken, map[string]string{"status": "confirmed"})

	w = doJSON(r, "DELETE", fmt.Sprintf("/api/v1/orders/%d", secondID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPaymentConfirmsAndRefundRestocks(t *testing.T) {
	db := newTestDB("ordertest_payment")
	r := newTestRouter(db)

	owner, ownerToken := seedUser(db, "Owner", "owner@payment.test", models.RoleTruckOwner)
	truck, item := seedTruckWithItem(db, owner.ID, "Pay Truck", "Shawarma", 12.00, 6)
	customer, token := seedUser(db, "Customer", "customer@payment.test", models.RoleCustomer)

	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": item.ID, "quantity": 2})
	w := doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{"truckId": truck.ID})
	orderID := uint(dataOf(t, w)["orderId"].(float64))

	payURL := fmt.Sprintf("/api/v1/orders/%d/payment", orderID)

	// Card payments need card fields.
	w = doJSON(r, "POST", payURL, token, map[string]string{"method": "card"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "POST", payURL, token, map[string]string{"method": "cash"})
	assert.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	assert.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderConfirmed, order.OrderStatus)

	// Both sides notified.
	var count int64
	db.Model(&models.Notification{}).
		Where("userId = ? AND type = ?", customer.ID, models.NotifPaymentSuccess).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&models.Notification{}).
		Where("userId = ? AND type = ?", owner.ID, models.NotifPaymentReceived).Count(&count)
	assert.Equal(t, int64(1), count)

	// Payment status is derived from the order.
	w = doJSON(r, "GET", payURL, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", dataOf(t, w)["paymentStatus"])

	// Owner refund cancels and restocks.
	w = doJSON(r, "POST", fmt.Sprintf("/api/v1/orders/%d/refund", orderID), ownerToken, map[string]string{
		"reason": "out of gas",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var record models.InventoryRecord
	assert.NoError(t, db.Where("itemId = ?", item.ID).First(&record).Error)
	assert.Equal(t, 6, record.Quantity)

	db.Model(&models.Notification{}).
		Where("userId = ? AND type = ?", customer.ID, models.NotifRefundProcessed).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRefundRejectedForCompletedOrder(t *testing.T) {
	db := newTestDB("ordertest_refundcompleted")
	r := newTestRouter(db)

	owner, ownerToken := seedUser(db, "Owner", "owner@refundc.test", models.RoleTruckOwner)
	truck, item := seedTruckWithItem(db, owner.ID, "Done Truck", "Hawawshi", 8.00, 3)
	_, token := seedUser(db, "Customer", "customer@refundc.test", models.RoleCustomer)

	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": item.ID, "quantity": 1})
	w := doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{"truckId": truck.ID})
	orderID := uint(dataOf(t, w)["orderId"].(float64))

	statusURL := fmt.Sprintf("/api/v1/orders/%d/status", orderID)
	for _, status := range []string{"confirmed", "preparing", "ready", "completed"} {
		w = doJSON(r, "PUT", statusURL, ownerToken, map[string]string{"status": status})
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(r, "POST", fmt.Sprintf("/api/v1/orders/%d/refund", orderID), ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOwnerTruckOrderView(t *testing.T) {
	db := newTestDB("ordertest_view")
	r := newTestRouter(db)

	owner, ownerToken := seedUser(db, "Owner", "owner@view.test", models.RoleTruckOwner)
	truck, item := seedTruckWithItem(db, owner.ID, "View Truck", "Koshari", 10.00, 10)
	_, token := seedUser(db, "Customer", "customer@view.test", models.RoleCustomer)

	doJSON(r, "POST", "/api/v1/cart", token, map[string]interface{}{"itemId": item.ID, "quantity": 1})
	w := doJSON(r, "POST", "/api/v1/orders", token, map[string]interface{}{"truckId": truck.ID})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Customer sees their orders.
	w = doJSON(r, "GET", "/api/v1/orders", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Len(t, resp["data"].([]interface{}), 1)

	// Owner sees truck orders through the truck view.
	w = doJSON(r, "GET", "/api/v1/orders?view=truck", ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody(t, w)
	assert.Len(t, resp["data"].([]interface{}), 1)

	// A customer cannot use the truck view.
	w = doJSON(r, "GET", "/api/v1/orders?view=truck", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
