package models

import "time"

// Notification types produced by the core. The core only writes
// notifications; clients read them through the notification routes.
const (
	NotifNewOrder        = "new_order"
	NotifOrderUpdate     = "order_update"
	NotifPaymentSuccess  = "payment_success"
	NotifPaymentReceived = "payment_received"
	NotifPickupScheduled = "pickup_scheduled"
	NotifPickupUpdate    = "pickup_update"
	NotifRefundProcessed = "refund_processed"
	NotifLowStock        = "low_stock"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey;column:notificationId" json:"notificationId"`
	UserID    uint      `gorm:"column:userId;not null;index" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"type:varchar(30);not null" json:"type"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"isRead"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
