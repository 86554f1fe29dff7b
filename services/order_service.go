package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/foodtruck-app/models"
	"gorm.io/gorm"
)

// PickupLeadTime is the fixed lead time used to compute an order's
// estimated earliest pickup at checkout.
const PickupLeadTime = 20 * time.Minute

// OrderService converts carts into orders and drives the order status
// lifecycle. Checkout and cancellation both run as a single
// transaction so the order, its lines, the ledger and the cart can
// never be observed half-applied.
type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
	notifier  *NotificationService
}

func NewOrderService(db *gorm.DB, inventory *InventoryService, notifier *NotificationService) *OrderService {
	return &OrderService{db: db, inventory: inventory, notifier: notifier}
}

// Checkout converts the user's cart lines for one truck into an order.
// All-or-nothing: any unavailable item or stock shortfall aborts the
// whole transaction and leaves cart and inventory untouched. Totals
// use the prices captured at cart-add time, not live menu prices.
func (s *OrderService) Checkout(user *models.User, truckID uint, scheduledPickup *time.Time) (*models.Order, error) {
	var created models.Order
	var truck models.Truck

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&truck, truckID).Error; err != nil {
			return err
		}

		var lines []models.CartItem
		if err := tx.
			Joins("JOIN menu_items ON menu_items.itemId = cart_items.itemId").
			Where("cart_items.userId = ? AND menu_items.truckId = ?", user.ID, truckID).
			Preload("Item").
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total float64
		for _, line := range lines {
			if line.Item.Status != models.ItemAvailable {
				return &ItemUnavailableError{ItemID: line.ItemID, Name: line.Item.Name}
			}
			total += line.Price * float64(line.Quantity)
		}

		now := time.Now()
		created = models.Order{
			UserID:                  user.ID,
			TruckID:                 truckID,
			OrderStatus:             models.OrderPending,
			TotalPrice:              total,
			ScheduledPickupTime:     scheduledPickup,
			EstimatedEarliestPickup: now.Add(PickupLeadTime),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		cartIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			orderItem := models.OrderItem{
				OrderID:  created.ID,
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
				Price:    line.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			if err := s.inventory.Reserve(tx, &line.Item, line.Quantity); err != nil {
				return err
			}
			cartIDs = append(cartIDs, line.ID)
		}

		// Only this truck's cart lines are consumed.
		if err := tx.Where("cartId IN ?", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return s.notifier.Notify(tx, truck.OwnerID, models.NotifNewOrder, "New Order Received",
			fmt.Sprintf("Order #%d from %s - Total: EGP %.2f", created.ID, user.Name, total))
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("OrderItems").Preload("OrderItems.Item").First(&created, created.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// Transition moves an order to newStatus on behalf of actor. All
// transitions are owner-driven except a customer cancelling their own
// pending order. Illegal jumps are rejected against the transition
// table; cancellation releases every order line back to the ledger in
// the same transaction.
func (s *OrderService) Transition(orderID uint, newStatus models.OrderStatus, actor *models.User) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		var truck models.Truck
		if err := tx.First(&truck, order.TruckID).Error; err != nil {
			return err
		}

		if actor.ID != truck.OwnerID {
			customerCancel := newStatus == models.OrderCancelled &&
				actor.ID == order.UserID &&
				order.OrderStatus == models.OrderPending
			if !customerCancel {
				return ErrForbidden
			}
		}

		if err := s.apply(tx, &order, newStatus); err != nil {
			return err
		}

		counterpart := order.UserID
		if actor.ID == order.UserID {
			counterpart = truck.OwnerID
		}
		return s.notifier.Notify(tx, counterpart, models.NotifOrderUpdate, "Order Status Update",
			fmt.Sprintf("Order #%d from %s is now: %s", order.ID, truck.TruckName, strings.ToUpper(string(newStatus))))
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ConfirmPaid is the payment boundary: a successful (simulated)
// payment drives pending -> confirmed and notifies both parties.
func (s *OrderService) ConfirmPaid(orderID uint, customer *models.User) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if order.UserID != customer.ID {
			return ErrForbidden
		}
		var truck models.Truck
		if err := tx.First(&truck, order.TruckID).Error; err != nil {
			return err
		}

		if err := s.apply(tx, &order, models.OrderConfirmed); err != nil {
			return err
		}

		if err := s.notifier.Notify(tx, customer.ID, models.NotifPaymentSuccess, "Payment Successful",
			fmt.Sprintf("Payment of EGP %.2f for Order #%d was successful", order.TotalPrice, order.ID)); err != nil {
			return err
		}
		return s.notifier.Notify(tx, truck.OwnerID, models.NotifPaymentReceived, "Payment Received",
			fmt.Sprintf("Payment received for Order #%d - EGP %.2f", order.ID, order.TotalPrice))
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Refund cancels an order on the owner's initiative, restores
// inventory and notifies the customer. Status mutation and inventory
// release commit together; the notification follows.
func (s *OrderService) Refund(orderID uint, owner *models.User, reason string) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		var truck models.Truck
		if err := tx.First(&truck, order.TruckID).Error; err != nil {
			return err
		}
		if truck.OwnerID != owner.ID {
			return ErrForbidden
		}

		if err := s.apply(tx, &order, models.OrderCancelled); err != nil {
			return err
		}

		msg := fmt.Sprintf("Refund of EGP %.2f for Order #%d has been processed.", order.TotalPrice, order.ID)
		if reason != "" {
			msg += " Reason: " + reason
		}
		return s.notifier.Notify(tx, order.UserID, models.NotifRefundProcessed, "Refund Processed", msg)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// apply validates the transition and persists it, releasing inventory
// when the order enters the cancelled state.
func (s *OrderService) apply(tx *gorm.DB, order *models.Order, newStatus models.OrderStatus) error {
	if !order.OrderStatus.CanTransitionTo(newStatus) {
		return &InvalidTransitionError{From: order.OrderStatus, To: newStatus}
	}

	if newStatus == models.OrderCancelled {
		if err := s.releaseOrderItems(tx, order.ID); err != nil {
			return err
		}
	}

	order.OrderStatus = newStatus
	return tx.Model(&models.Order{}).
		Where("orderId = ?", order.ID).
		Update("order_status", newStatus).Error
}

func (s *OrderService) releaseOrderItems(tx *gorm.DB, orderID uint) error {
	var items []models.OrderItem
	if err := tx.Where("orderId = ?", orderID).Find(&items).Error; err != nil {
		return err
	}
	for _, item := range items {
		if err := s.inventory.Release(tx, item.ItemID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}
