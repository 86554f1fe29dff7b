package models

import "time"

// OrderItem is a frozen copy of a cart line taken at checkout. It is
// never mutated and is deleted only by cascading order deletion.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey;column:orderItemId" json:"orderItemId"`
	OrderID   uint      `gorm:"column:orderId;not null;index" json:"orderId"`
	Order     Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemID    uint      `gorm:"column:itemId;not null" json:"itemId"`
	Item      MenuItem  `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"item"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
