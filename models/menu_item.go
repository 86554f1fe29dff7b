package models

import "time"

// Menu item availability. Availability is derived from inventory: the
// ledger flips an item to unavailable when stock hits zero and back to
// available when it is restocked.
const (
	ItemAvailable   = "available"
	ItemUnavailable = "unavailable"
)

type MenuItem struct {
	ID          uint      `gorm:"primaryKey;column:itemId" json:"itemId"`
	TruckID     uint      `gorm:"column:truckId;not null;index" json:"truckId"`
	Truck       Truck     `gorm:"foreignKey:TruckID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	Status      string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}
