package models

import "time"

type PickupStatus string

const (
	PickupScheduled PickupStatus = "scheduled"
	PickupReady     PickupStatus = "ready"
	PickupPickedUp  PickupStatus = "picked_up"
	PickupCancelled PickupStatus = "cancelled"
)

func ParsePickupStatus(s string) (PickupStatus, bool) {
	switch PickupStatus(s) {
	case PickupScheduled, PickupReady, PickupPickedUp, PickupCancelled:
		return PickupStatus(s), true
	}
	return "", false
}

// Pickup is one-to-one-or-zero with Order, created on customer request
// after the order exists, independent of order status transitions.
type Pickup struct {
	ID            uint         `gorm:"primaryKey;column:pickupId" json:"pickupId"`
	OrderID       uint         `gorm:"column:orderId;uniqueIndex;not null" json:"orderId"`
	Order         Order        `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	PickupStatus  PickupStatus `gorm:"type:varchar(20);not null;default:'scheduled'" json:"pickupStatus"`
	ScheduledTime time.Time    `gorm:"not null" json:"scheduledTime"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	Notes         *string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updatedAt"`
}
