package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// CartTruckGroup is one truck's slice of the cart with its subtotal.
type CartTruckGroup struct {
	TruckID   uint              `json:"truckId"`
	TruckName string            `json:"truckName"`
	Items     []models.CartItem `json:"items"`
	Subtotal  float64           `json:"subtotal"`
}

// GetCart lists the cart grouped by truck. Subtotals use the captured
// line prices, not current menu prices.
func (cc *CartController) GetCart(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var lines []models.CartItem
	if err := cc.DB.Preload("Item").Preload("Item.Truck").
		Where("userId = ?", user.ID).
		Order("cartId ASC").
		Find(&lines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	groups := make([]*CartTruckGroup, 0)
	index := make(map[uint]*CartTruckGroup)
	var total float64

	for _, line := range lines {
		group, exists := index[line.Item.TruckID]
		if !exists {
			group = &CartTruckGroup{
				TruckID:   line.Item.TruckID,
				TruckName: line.Item.Truck.TruckName,
			}
			index[line.Item.TruckID] = group
			groups = append(groups, group)
		}
		group.Items = append(group.Items, line)
		lineTotal := line.Price * float64(line.Quantity)
		group.Subtotal += lineTotal
		total += lineTotal
	}

	utils.RespondJSON(c, http.StatusOK, "Cart", gin.H{
		"trucks": groups,
		"total":  total,
	})
}

// AddToCart adds an item or increments an existing line. The menu
// price is captured on first add; stock is checked against the
// resulting line quantity but not reserved.
func (cc *CartController) AddToCart(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	var input struct {
		ItemID   uint `json:"itemId" binding:"required"`
		Quantity int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	var item models.MenuItem
	if err := cc.DB.First(&item, input.ItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}
	if item.Status != models.ItemAvailable {
		utils.RespondError(c, http.StatusBadRequest, errors.New("item is not available"))
		return
	}

	var line models.CartItem
	err := cc.DB.Where("userId = ? AND itemId = ?", user.ID, input.ItemID).First(&line).Error
	newQty := input.Quantity
	if err == nil {
		newQty = line.Quantity + input.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if !cc.stockCovers(c, item.ID, newQty) {
		return
	}

	if line.ID == 0 {
		line = models.CartItem{
			UserID:   user.ID,
			ItemID:   item.ID,
			Quantity: newQty,
			Price:    item.Price,
		}
		if err := cc.DB.Create(&line).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	} else {
		if err := cc.DB.Model(&line).Update("quantity", newQty).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Added to cart", line)
}

// UpdateCartItem sets an absolute quantity (>= 1) on an existing line.
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	cartID, ok := paramUint(c, "cart_id")
	if !ok {
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var line models.CartItem
	if err := cc.DB.Where("cartId = ? AND userId = ?", cartID, user.ID).First(&line).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	if !cc.stockCovers(c, line.ItemID, input.Quantity) {
		return
	}

	if err := cc.DB.Model(&line).Update("quantity", input.Quantity).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart item updated", line)
}

// RemoveCartItem deletes one line.
func (cc *CartController) RemoveCartItem(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}
	cartID, ok := paramUint(c, "cart_id")
	if !ok {
		return
	}

	result := cc.DB.Where("cartId = ? AND userId = ?", cartID, user.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart item removed", gin.H{"cartId": cartID})
}

// ClearCart removes every line for the user.
func (cc *CartController) ClearCart(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	if err := cc.DB.Where("userId = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}

// stockCovers checks the requested quantity against current stock.
// Cart holds are not reservations; the authoritative check happens at
// checkout under a row lock.
func (cc *CartController) stockCovers(c *gin.Context, itemID uint, qty int) bool {
	var record models.InventoryRecord
	if err := cc.DB.Where("itemId = ?", itemID).First(&record).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("item has no stock"))
		return false
	}
	if record.Quantity < qty {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("requested quantity exceeds available stock"))
		return false
	}
	return true
}
