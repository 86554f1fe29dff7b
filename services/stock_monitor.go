package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

// StockMonitor periodically sweeps the inventory ledger and alerts
// truck owners about items at or below their low-stock threshold. An
// owner is alerted once per episode: no new alert is produced while an
// unread low-stock notification for the same item exists.
type StockMonitor struct {
	DB       *gorm.DB
	Notifier *NotificationService
	StopChan chan struct{}
	Interval time.Duration
}

func NewStockMonitor(db *gorm.DB, notifier *NotificationService) *StockMonitor {
	return &StockMonitor{
		DB:       db,
		Notifier: notifier,
		StopChan: make(chan struct{}),
		Interval: 5 * time.Minute,
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.sweep()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

type lowStockRow struct {
	ItemID   uint   `gorm:"column:itemId"`
	ItemName string `gorm:"column:itemName"`
	Quantity int    `gorm:"column:quantity"`
	OwnerID  uint   `gorm:"column:ownerId"`
}

func (sm *StockMonitor) sweep() {
	var rows []lowStockRow

	err := sm.DB.Model(&models.InventoryRecord{}).
		Select("inventory_records.itemId, menu_items.name AS itemName, inventory_records.quantity, trucks.ownerId").
		Joins("JOIN menu_items ON menu_items.itemId = inventory_records.itemId").
		Joins("JOIN trucks ON trucks.truckId = menu_items.truckId").
		Where("inventory_records.quantity <= inventory_records.low_stock_threshold").
		Find(&rows).Error
	if err != nil {
		utils.ErrorLogger.Printf("Stock sweep failed: %v", err)
		return
	}

	for _, row := range rows {
		message := fmt.Sprintf("Low stock alert: %s has %d left", row.ItemName, row.Quantity)
		if row.Quantity == 0 {
			message = fmt.Sprintf("Out of stock: %s", row.ItemName)
		}

		// One unread alert per item at a time.
		var pending int64
		if err := sm.DB.Model(&models.Notification{}).
			Where("userId = ? AND type = ? AND is_read = ? AND message LIKE ?",
				row.OwnerID, models.NotifLowStock, false, "%"+row.ItemName+"%").
			Count(&pending).Error; err != nil {
			utils.ErrorLogger.Printf("Stock sweep dedupe check failed: %v", err)
			continue
		}
		if pending > 0 {
			continue
		}

		if err := sm.Notifier.Notify(nil, row.OwnerID, models.NotifLowStock, "Low Stock", message); err != nil {
			utils.ErrorLogger.Printf("Stock sweep notify failed for item %d: %v", row.ItemID, err)
		}
	}
}
