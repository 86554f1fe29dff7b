package models

import "time"

const DefaultLowStockThreshold = 10

// InventoryRecord is one-to-one with MenuItem. Quantity never goes
// negative; owner-facing adjustments clamp at zero.
type InventoryRecord struct {
	ID                uint      `gorm:"primaryKey;column:inventoryId" json:"inventoryId"`
	ItemID            uint      `gorm:"column:itemId;uniqueIndex;not null" json:"itemId"`
	Item              MenuItem  `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Quantity          int       `gorm:"not null;default:0" json:"quantity"`
	LowStockThreshold int       `gorm:"not null;default:10" json:"lowStockThreshold"`
	LastRestocked     time.Time `json:"lastRestocked"`
	CreatedAt         time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"not null" json:"updatedAt"`
}

func (r *InventoryRecord) LowStock() bool {
	return r.Quantity <= r.LowStockThreshold
}

func (r *InventoryRecord) OutOfStock() bool {
	return r.Quantity == 0
}
