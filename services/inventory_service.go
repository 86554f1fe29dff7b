package services

import (
	"errors"
	"time"

	"github.com/yeremiapane/foodtruck-app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryService owns per-item stock counts. Every mutation
// re-evaluates the owning menu item's availability flag synchronously,
// so `quantity == 0 => status == unavailable` holds after each call.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// lockForUpdate takes a row lock on supporting dialects. SQLite
// rejects FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// EnsureRecord creates the one-to-one inventory row for a new menu
// item (quantity 0, default threshold).
func (s *InventoryService) EnsureRecord(tx *gorm.DB, itemID uint) error {
	var existing models.InventoryRecord
	err := tx.Where("itemId = ?", itemID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	rec := models.InventoryRecord{
		ItemID:            itemID,
		Quantity:          0,
		LowStockThreshold: models.DefaultLowStockThreshold,
		LastRestocked:     time.Now(),
	}
	return tx.Create(&rec).Error
}

// Reserve decrements stock for one order line. It must run inside the
// checkout transaction with the row locked; a request above the
// available quantity is rejected, never clamped, so a failed checkout
// leaves the ledger untouched.
func (s *InventoryService) Reserve(tx *gorm.DB, item *models.MenuItem, qty int) error {
	var inv models.InventoryRecord
	err := lockForUpdate(tx).Where("itemId = ?", item.ID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &InsufficientStockError{ItemID: item.ID, Name: item.Name, Requested: qty, Available: 0}
	}
	if err != nil {
		return err
	}

	if inv.Quantity < qty {
		return &InsufficientStockError{ItemID: item.ID, Name: item.Name, Requested: qty, Available: inv.Quantity}
	}

	newQty := inv.Quantity - qty
	if err := tx.Model(&models.InventoryRecord{}).
		Where("itemId = ?", item.ID).
		Update("quantity", newQty).Error; err != nil {
		return err
	}

	return s.syncItemStatus(tx, item.ID, newQty)
}

// Release returns stock to the ledger. This is the compensating action
// for cancellation/refund and the only rollback the system performs.
func (s *InventoryService) Release(tx *gorm.DB, itemID uint, qty int) error {
	var inv models.InventoryRecord
	err := lockForUpdate(tx).Where("itemId = ?", itemID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec := models.InventoryRecord{
			ItemID:            itemID,
			Quantity:          qty,
			LowStockThreshold: models.DefaultLowStockThreshold,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return s.syncItemStatus(tx, itemID, qty)
	}
	if err != nil {
		return err
	}

	newQty := inv.Quantity + qty
	if err := tx.Model(&models.InventoryRecord{}).
		Where("itemId = ?", itemID).
		Update("quantity", newQty).Error; err != nil {
		return err
	}

	return s.syncItemStatus(tx, itemID, newQty)
}

// Update applies an owner-initiated inventory change: an absolute
// quantity, a relative adjustment, or a new threshold. Quantities are
// clamped at zero; the row is created on first use.
func (s *InventoryService) Update(itemID uint, quantity, adjustment, threshold *int) (*models.InventoryRecord, error) {
	var result models.InventoryRecord

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.InventoryRecord
		err := lockForUpdate(tx).Where("itemId = ?", itemID).First(&inv).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			inv = models.InventoryRecord{
				ItemID:            itemID,
				Quantity:          0,
				LowStockThreshold: models.DefaultLowStockThreshold,
			}
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if adjustment != nil {
			inv.Quantity = clampAtZero(inv.Quantity + *adjustment)
		} else if quantity != nil {
			inv.Quantity = clampAtZero(*quantity)
		}
		if threshold != nil {
			inv.LowStockThreshold = clampAtZero(*threshold)
		}
		inv.LastRestocked = time.Now()

		if err := tx.Save(&inv).Error; err != nil {
			return err
		}
		if err := s.syncItemStatus(tx, itemID, inv.Quantity); err != nil {
			return err
		}

		result = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// syncItemStatus keeps the menu item's availability in step with
// stock: zero flips it unavailable, a restock above zero flips a
// stock-unavailable item back.
func (s *InventoryService) syncItemStatus(tx *gorm.DB, itemID uint, qty int) error {
	if qty == 0 {
		return tx.Model(&models.MenuItem{}).
			Where("itemId = ?", itemID).
			Update("status", models.ItemUnavailable).Error
	}
	return tx.Model(&models.MenuItem{}).
		Where("itemId = ? AND status = ?", itemID, models.ItemUnavailable).
		Update("status", models.ItemAvailable).Error
}

func clampAtZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
