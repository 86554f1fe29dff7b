package models

import "time"

// OrderStatus is a closed set. Transitions are enforced through
// CanTransitionTo; arbitrary strings are rejected at the boundary.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions is the legal forward path plus cancellation from any
// non-terminal state. completed and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCompleted, OrderCancelled},
	OrderCompleted: {},
	OrderCancelled: {},
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order is created atomically with its OrderItems from a cart snapshot
// and is immutable afterwards except for status and pickup scheduling.
type Order struct {
	ID                      uint        `gorm:"primaryKey;column:orderId" json:"orderId"`
	UserID                  uint        `gorm:"column:userId;not null;index" json:"userId"`
	User                    User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TruckID                 uint        `gorm:"column:truckId;not null;index" json:"truckId"`
	Truck                   Truck       `gorm:"foreignKey:TruckID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	OrderStatus             OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"orderStatus"`
	TotalPrice              float64     `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	ScheduledPickupTime     *time.Time  `json:"scheduledPickupTime,omitempty"`
	EstimatedEarliestPickup time.Time   `json:"estimatedEarliestPickup"`
	CreatedAt               time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt               time.Time   `gorm:"not null" json:"updatedAt"`
	OrderItems              []OrderItem `gorm:"foreignKey:OrderID" json:"orderItems,omitempty"`
}
