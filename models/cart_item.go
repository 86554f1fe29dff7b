package models

import "time"

// CartItem is a pending selection, unique per (user, item). Price is
// captured from the menu item at add time and is NOT re-read at checkout.
type CartItem struct {
	ID        uint      `gorm:"primaryKey;column:cartId" json:"cartId"`
	UserID    uint      `gorm:"column:userId;not null;uniqueIndex:idx_cart_user_item" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ItemID    uint      `gorm:"column:itemId;not null;uniqueIndex:idx_cart_user_item" json:"itemId"`
	Item      MenuItem  `gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"item"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
