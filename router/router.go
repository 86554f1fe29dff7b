package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/controllers"
	"github.com/yeremiapane/foodtruck-app/middlewares"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/services"
	"github.com/yeremiapane/foodtruck-app/ws"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, hub *ws.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	notifier := services.NewNotificationService(db, hub)
	inventorySvc := services.NewInventoryService(db)
	orderSvc := services.NewOrderService(db, inventorySvc, notifier)

	userCtrl := controllers.NewUserController(db)
	truckCtrl := controllers.NewTruckController(db)
	menuCtrl := controllers.NewMenuItemController(db, inventorySvc)
	inventoryCtrl := controllers.NewInventoryController(db, inventorySvc)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db, orderSvc)
	pickupCtrl := controllers.NewPickupController(db, notifier)
	paymentCtrl := controllers.NewPaymentController(db, orderSvc)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db)
	wsCtrl := controllers.NewWSController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api/v1")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	authPublic := api.Group("/auth")
	authPublic.Use(middlewares.NewStrictRateLimiter())
	{
		authPublic.POST("/register", userCtrl.Register)
		authPublic.POST("/login", userCtrl.Login)
	}

	api.GET("/trucks", truckCtrl.GetAllTrucks)
	api.GET("/trucks/:truck_id", truckCtrl.GetTruckDetail)
	api.GET("/menu-items", menuCtrl.GetMenuItems)
	api.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware(db))

	auth.POST("/auth/logout", userCtrl.Logout)

	// ACCOUNT
	auth.GET("/account", userCtrl.GetProfile)
	auth.PATCH("/account", userCtrl.UpdateProfile)
	auth.PUT("/account/email", userCtrl.UpdateEmail)
	auth.PUT("/account/password", userCtrl.UpdatePassword)
	auth.DELETE("/account", userCtrl.DeleteAccount)

	// TRUCKS (owner)
	owner := auth.Group("/")
	owner.Use(middlewares.RequireRole(models.RoleTruckOwner))
	{
		owner.GET("/trucks/my", truckCtrl.GetMyTrucks)
		owner.PATCH("/trucks/:truck_id/status", truckCtrl.UpdateOrderStatus)
		owner.PATCH("/trucks/:truck_id", truckCtrl.UpdateTruck)

		// MENU ITEMS (owner CRUD)
		owner.POST("/menu-items", menuCtrl.CreateMenuItem)
		owner.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		owner.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

		// INVENTORY
		owner.GET("/inventory", inventoryCtrl.ListInventory)
		owner.GET("/inventory/alerts", inventoryCtrl.LowStockAlerts)
		owner.GET("/inventory/trucks/:truck_id", inventoryCtrl.GetTruckInventory)
		owner.GET("/inventory/items/:item_id", inventoryCtrl.GetItemInventory)
		owner.PUT("/inventory/items/:item_id", inventoryCtrl.UpdateInventory)
		owner.POST("/inventory/restock", inventoryCtrl.BulkRestock)

		// REFUNDS
		owner.POST("/orders/:order_id/refund", paymentCtrl.RefundOrder)
	}

	// CART (customer)
	auth.GET("/cart", cartCtrl.GetCart)
	auth.POST("/cart", cartCtrl.AddToCart)
	auth.PATCH("/cart/:cart_id", cartCtrl.UpdateCartItem)
	auth.DELETE("/cart/:cart_id", cartCtrl.RemoveCartItem)
	auth.DELETE("/cart", cartCtrl.ClearCart)

	// ORDERS
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders", orderCtrl.GetOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderDetail)
	auth.GET("/orders/:order_id/items", orderCtrl.GetOrderItems)
	auth.PUT("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.DELETE("/orders/:order_id", orderCtrl.CancelOrder)

	// PAYMENTS (simulated)
	auth.POST("/orders/:order_id/payment", paymentCtrl.PayOrder)
	auth.GET("/orders/:order_id/payment", paymentCtrl.GetPaymentStatus)

	// PICKUPS
	auth.POST("/pickups", pickupCtrl.SchedulePickup)
	auth.GET("/pickups", pickupCtrl.GetPickups)
	auth.GET("/orders/:order_id/pickup", pickupCtrl.GetPickupByOrder)
	auth.PATCH("/pickups/:pickup_id", pickupCtrl.UpdatePickup)
	auth.DELETE("/pickups/:pickup_id", pickupCtrl.CancelPickup)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.GET("/notifications/count", notificationCtrl.GetUnreadCount)
	auth.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
	auth.PATCH("/notifications/read-all", notificationCtrl.MarkAllRead)
	auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkRead)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
	auth.DELETE("/notifications", notificationCtrl.DeleteRead)

	// ADMIN
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/stats", adminCtrl.GetStats)
		admin.GET("/users", adminCtrl.GetAllUsers)
		admin.PATCH("/users/:user_id/role", adminCtrl.UpdateUserRole)
		admin.POST("/trucks", truckCtrl.CreateTruck)
		admin.DELETE("/trucks/:truck_id", truckCtrl.DeleteTruck)
	}

	// WEBSOCKET
	auth.GET("/ws", wsCtrl.Connect)

	return r
}
