package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
)

func newInventoryDB(t *testing.T, name string) (*gorm.DB, *models.MenuItem) {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Truck{}, &models.MenuItem{}, &models.InventoryRecord{}))

	owner := models.User{Name: "Owner", Email: name + "@test", PasswordHash: "x", Role: models.RoleTruckOwner}
	assert.NoError(t, db.Create(&owner).Error)
	truck := models.Truck{TruckName: name, OwnerID: owner.ID, TruckStatus: models.TruckAvailable, OrderStatus: models.TruckAvailable}
	assert.NoError(t, db.Create(&truck).Error)

	item := models.MenuItem{TruckID: truck.ID, Name: "Dish", Price: 5.00, Category: "mains", Status: models.ItemAvailable}
	assert.NoError(t, db.Create(&item).Error)
	return db, &item
}

func TestReserveWithoutRecordFails(t *testing.T) {
	db, item := newInventoryDB(t, "inv_norecord")
	svc := NewInventoryService(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.Reserve(tx, item, 1)
	})

	var stockErr *InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 0, stockErr.Available)
}

func TestReleaseCreatesMissingRecord(t *testing.T) {
	db, item := newInventoryDB(t, "inv_release")
	svc := NewInventoryService(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return svc.Release(tx, item.ID, 4)
	})
	assert.NoError(t, err)

	var record models.InventoryRecord
	assert.NoError(t, db.Where("itemId = ?", item.ID).First(&record).Error)
	assert.Equal(t, 4, record.Quantity)
}

func TestUpdateClampsAndTogglesAvailability(t *testing.T) {
	db, item := newInventoryDB(t, "inv_clamp")
	svc := NewInventoryService(db)

	negative := -5
	record, err := svc.Update(item.ID, &negative, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, record.Quantity)

	var reloaded models.MenuItem
	assert.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, models.ItemUnavailable, reloaded.Status)

	adjustment := 3
	record, err = svc.Update(item.ID, nil, &adjustment, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, record.Quantity)

	assert.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, models.ItemAvailable, reloaded.Status)
}
