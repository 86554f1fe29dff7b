package models

import "time"

// Truck order-status values (whether the truck is taking orders).
const (
	TruckAvailable   = "available"
	TruckUnavailable = "unavailable"
	TruckBusy        = "busy"
)

type Truck struct {
	ID          uint      `gorm:"primaryKey;column:truckId" json:"truckId"`
	TruckName   string    `gorm:"type:varchar(100);unique;not null" json:"truckName"`
	TruckLogo   *string   `gorm:"type:varchar(255)" json:"truckLogo,omitempty"`
	OwnerID     uint      `gorm:"column:ownerId;not null;index" json:"ownerId"`
	Owner       User      `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TruckStatus string    `gorm:"type:varchar(20);not null;default:'available'" json:"truckStatus"`
	OrderStatus string    `gorm:"type:varchar(20);not null;default:'available'" json:"orderStatus"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func ValidTruckOrderStatus(status string) bool {
	switch status {
	case TruckAvailable, TruckUnavailable, TruckBusy:
		return true
	}
	return false
}
