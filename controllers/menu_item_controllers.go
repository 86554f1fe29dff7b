package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/services"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

type MenuItemController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewMenuItemController(db *gorm.DB, inventory *services.InventoryService) *MenuItemController {
	return &MenuItemController{DB: db, Inventory: inventory}
}

// GetMenuItems is public. Filters: ?truck_id=, ?category=, ?status=.
func (mc *MenuItemController) GetMenuItems(c *gin.Context) {
	query := mc.DB.Model(&models.MenuItem{})

	if truckID := c.Query("truck_id"); truckID != "" {
		query = query.Where("truckId = ?", truckID)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		if status != models.ItemAvailable && status != models.ItemUnavailable {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu items", items)
}

// GetMenuItemByID is public.
func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	itemID, ok := paramUint(c, "item_id")
	if !ok {
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenuItem adds an item to one of the owner's trucks. The item
// starts with an empty inventory record so it shows up in the ledger
// immediately.
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		TruckID     uint    `json:"truckId" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Category    string  `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !mc.checkTruckOwnership(c, input.TruckID, user) {
		return
	}

	item := models.MenuItem{
		TruckID:     input.TruckID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Status:      models.ItemUnavailable, // no stock yet
	}

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return mc.Inventory.EnsureRecord(tx, item.ID)
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (truck=%d)", item.Name, item.TruckID)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem updates name/description/price/category.
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	itemID, ok := paramUint(c, "item_id")
	if !ok {
		return
	}

	var input struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, ok := mc.ownedItem(c, itemID, user)
	if !ok {
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must be positive"))
			return
		}
		updates["price"] = *input.Price
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nothing to update"))
		return
	}

	if err := mc.DB.Model(item).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem removes an item; the inventory record and cart lines
// cascade with it.
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	itemID, ok := paramUint(c, "item_id")
	if !ok {
		return
	}

	item, ok := mc.ownedItem(c, itemID, user)
	if !ok {
		return
	}

	if err := mc.DB.Delete(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"itemId": itemID})
}

// ownedItem loads a menu item and enforces owner-or-admin access
// through its truck.
func (mc *MenuItemController) ownedItem(c *gin.Context, itemID uint, user *models.User) (*models.MenuItem, bool) {
	var item models.MenuItem
	if err := mc.DB.Preload("Truck").First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return nil, false
	}
	if item.Truck.OwnerID != user.ID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not own this menu item"))
		return nil, false
	}
	return &item, true
}

func (mc *MenuItemController) checkTruckOwnership(c *gin.Context, truckID uint, user *models.User) bool {
	var truck models.Truck
	if err := mc.DB.First(&truck, truckID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("truck not found"))
		return false
	}
	if truck.OwnerID != user.ID && user.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not own this truck"))
		return false
	}
	return true
}
