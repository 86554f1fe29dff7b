package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/services"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewInventoryController(db *gorm.DB, inventory *services.InventoryService) *InventoryController {
	return &InventoryController{DB: db, Inventory: inventory}
}

// InventoryEntry is the owner-facing view of one ledger row.
type InventoryEntry struct {
	InventoryID       uint      `json:"inventoryId"`
	ItemID            uint      `json:"itemId"`
	ItemName          string    `json:"itemName"`
	TruckID           uint      `json:"truckId"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	LastRestocked     time.Time `json:"lastRestocked"`
	LowStock          bool      `json:"lowStock"`
	OutOfStock        bool      `json:"outOfStock"`
}

// InventoryStats summarizes the listed entries.
type InventoryStats struct {
	TotalItems int `json:"totalItems"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
	TotalUnits int `json:"totalUnits"`
}

// ListInventory returns the ledger for every item across the owner's
// trucks, with per-row flags and aggregate stats.
func (ic *InventoryController) ListInventory(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	records, err := ic.ownerRecords(user, 0)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	entries, stats := buildInventoryView(records)
	utils.RespondJSON(c, http.StatusOK, "Inventory", gin.H{
		"items": entries,
		"stats": stats,
	})
}

// GetTruckInventory returns the ledger for one truck.
func (ic *InventoryController) GetTruckInventory(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	truckID, ok := paramUint(c, "truck_id")
	if !ok {
		return
	}

	var truck models.Truck
	if err := ic.DB.First(&truck, truckID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("truck not found"))
		return
	}
	if truck.OwnerID != user.ID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not own this truck"))
		return
	}

	records, err := ic.ownerRecords(user, truckID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	entries, stats := buildInventoryView(records)
	utils.RespondJSON(c, http.StatusOK, "Truck inventory", gin.H{
		"items": entries,
		"stats": stats,
	})
}

// GetItemInventory returns the ledger row for one item.
func (ic *InventoryController) GetItemInventory(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	itemID, ok := paramUint(c, "item_id")
	if !ok {
		return
	}

	if !ic.checkItemOwnership(c, itemID, user) {
		return
	}

	var record models.InventoryRecord
	if err := ic.DB.Preload("Item").Where("itemId = ?", itemID).First(&record).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("inventory record not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item inventory", toInventoryEntry(record))
}

// UpdateInventory applies an absolute quantity, a relative adjustment
// and/or a new low-stock threshold to one item.
func (ic *InventoryController) UpdateInventory(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	itemID, ok := paramUint(c, "item_id")
	if !ok {
		return
	}

	var input struct {
		Quantity          *int `json:"quantity"`
		Adjustment        *int `json:"adjustment"`
		LowStockThreshold *int `json:"lowStockThreshold"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.Quantity == nil && input.Adjustment == nil && input.LowStockThreshold == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("provide quantity, adjustment or lowStockThreshold"))
		return
	}

	if !ic.checkItemOwnership(c, itemID, user) {
		return
	}

	record, err := ic.Inventory.Update(itemID, input.Quantity, input.Adjustment, input.LowStockThreshold)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory updated", record)
}

// BulkRestock applies absolute quantities to many items in one call.
// Items the caller does not own are skipped and reported.
func (ic *InventoryController) BulkRestock(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		Items []struct {
			ItemID   uint `json:"itemId" binding:"required"`
			Quantity int  `json:"quantity"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updated := make([]*models.InventoryRecord, 0, len(input.Items))
	skipped := make([]uint, 0)

	for _, entry := range input.Items {
		if !ic.ownsItem(entry.ItemID, user) {
			skipped = append(skipped, entry.ItemID)
			continue
		}
		qty := entry.Quantity
		record, err := ic.Inventory.Update(entry.ItemID, &qty, nil, nil)
		if err != nil {
			utils.ErrorLogger.Printf("Bulk restock failed for item %d: %v", entry.ItemID, err)
			skipped = append(skipped, entry.ItemID)
			continue
		}
		updated = append(updated, record)
	}

	utils.RespondJSON(c, http.StatusOK, "Bulk restock applied", gin.H{
		"updated": updated,
		"skipped": skipped,
	})
}

// LowStockAlerts lists every owned item at or under its threshold.
func (ic *InventoryController) LowStockAlerts(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	records, err := ic.ownerRecords(user, 0)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	alerts := make([]InventoryEntry, 0)
	for _, record := range records {
		if record.LowStock() {
			alerts = append(alerts, toInventoryEntry(record))
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Low stock alerts", alerts)
}

// ownerRecords loads ledger rows for the owner's items, optionally
// limited to one truck. Admins see everything.
func (ic *InventoryController) ownerRecords(user *models.User, truckID uint) ([]models.InventoryRecord, error) {
	query := ic.DB.Model(&models.InventoryRecord{}).
		Joins("JOIN menu_items ON menu_items.itemId = inventory_records.itemId").
		Joins("JOIN trucks ON trucks.truckId = menu_items.truckId").
		Preload("Item")

	if user.Role != models.RoleAdmin {
		query = query.Where("trucks.ownerId = ?", user.ID)
	}
	if truckID != 0 {
		query = query.Where("trucks.truckId = ?", truckID)
	}

	var records []models.InventoryRecord
	err := query.Find(&records).Error
	return records, err
}

func (ic *InventoryController) checkItemOwnership(c *gin.Context, itemID uint, user *models.User) bool {
	var item models.MenuItem
	if err := ic.DB.Preload("Truck").First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return false
	}
	if item.Truck.OwnerID != user.ID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not own this menu item"))
		return false
	}
	return true
}

func (ic *InventoryController) ownsItem(itemID uint, user *models.User) bool {
	if user.Role == models.RoleAdmin {
		return true
	}
	var count int64
	ic.DB.Model(&models.MenuItem{}).
		Joins("JOIN trucks ON trucks.truckId = menu_items.truckId").
		Where("menu_items.itemId = ? AND trucks.ownerId = ?", itemID, user.ID).
		Count(&count)
	return count > 0
}

func toInventoryEntry(record models.InventoryRecord) InventoryEntry {
	return InventoryEntry{
		InventoryID:       record.ID,
		ItemID:            record.ItemID,
		ItemName:          record.Item.Name,
		TruckID:           record.Item.TruckID,
		Quantity:          record.Quantity,
		LowStockThreshold: record.LowStockThreshold,
		LastRestocked:     record.LastRestocked,
		LowStock:          record.LowStock(),
		OutOfStock:        record.OutOfStock(),
	}
}

func buildInventoryView(records []models.InventoryRecord) ([]InventoryEntry, InventoryStats) {
	entries := make([]InventoryEntry, 0, len(records))
	stats := InventoryStats{TotalItems: len(records)}

	for _, record := range records {
		entry := toInventoryEntry(record)
		entries = append(entries, entry)

		stats.TotalUnits += record.Quantity
		if entry.OutOfStock {
			stats.OutOfStock++
		} else if entry.LowStock {
			stats.LowStock++
		}
	}
	return entries, stats
}
