package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/router"
	"github.com/yeremiapane/foodtruck-app/utils"
	"github.com/yeremiapane/foodtruck-app/ws"
)

// newTestDB opens a named in-memory SQLite database so each test file
// gets an isolated schema.
func newTestDB(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Truck{},
		&models.MenuItem{},
		&models.InventoryRecord{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Pickup{},
		&models.Notification{},
	)
	if err != nil {
		panic(err)
	}
	return db
}

// newTestRouter builds the full application router in test mode.
func newTestRouter(db *gorm.DB) *gin.Engine {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	return router.SetupRouter(db, ws.NewHub())
}

// seedUser creates a user with a bcrypt-hashed password and an open
// session, returning the user and a bearer token.
func seedUser(db *gorm.DB, name, email, role string) (*models.User, string) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		panic(err)
	}

	session := models.Session{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(5 * time.Hour),
	}
	if err := db.Create(&session).Error; err != nil {
		panic(err)
	}
	return &user, session.Token
}

// seedTruckWithItem creates an owner-owned truck with one available
// menu item and a stocked inventory record.
func seedTruckWithItem(db *gorm.DB, ownerID uint, truckName, itemName string, price float64, stock int) (*models.Truck, *models.MenuItem) {
	truck := models.Truck{
		TruckName:   truckName,
		OwnerID:     ownerID,
		TruckStatus: models.TruckAvailable,
		OrderStatus: models.TruckAvailable,
	}
	if err := db.Create(&truck).Error; err != nil {
		panic(err)
	}

	item := models.MenuItem{
		TruckID:  truck.ID,
		Name:     itemName,
		Price:    price,
		Category: "mains",
		Status:   models.ItemAvailable,
	}
	if err := db.Create(&item).Error; err != nil {
		panic(err)
	}

	record := models.InventoryRecord{
		ItemID:            item.ID,
		Quantity:          stock,
		LowStockThreshold: models.DefaultLowStockThreshold,
		LastRestocked:     time.Now(),
	}
	if err := db.Create(&record).Error; err != nil {
		panic(err)
	}
	return &truck, &item
}

// doJSON performs a JSON request with an optional bearer token and
// returns the recorder.
func doJSON(r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		panic(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody parses the standard response envelope.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var parsed map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &parsed)
	assert.NoError(t, err)
	return parsed
}

// dataOf returns the data object of the response envelope.
func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	parsed := decodeBody(t, w)
	data, ok := parsed["data"].(map[string]interface{})
	assert.True(t, ok, "expected data object in response")
	return data
}
