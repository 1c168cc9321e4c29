package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/controllers"
	"github.com/hoteleats/order-backend/middlewares"
	"github.com/hoteleats/order-backend/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", controllers.Ping)
	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// Orders are visible to every role; the controller scopes the
	// result to the caller.
	auth.GET("/orders", orderCtrl.ListOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrder)

	// CUSTOMER
	customer := auth.Group("/")
	customer.Use(middlewares.RequireRoles(models.RoleCustomer))
	{
		customer.GET("/menu", menuCtrl.GetAllDishes)
		customer.GET("/cart", cartCtrl.GetCart)
		customer.POST("/cart/:dish_id", cartCtrl.AddToCart)
		customer.DELETE("/cart/:dish_id", cartCtrl.RemoveFromCart)
		customer.PUT("/details", cartCtrl.SaveDetails)
		customer.GET("/details", cartCtrl.GetDetails)
		customer.GET("/checkout", cartCtrl.CheckoutPreview)
		customer.POST("/orders", orderCtrl.PlaceOrder)
	}

	// ADMIN
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/orders", orderCtrl.ListOrders)
		admin.GET("/partners", adminCtrl.ListPartners)
		admin.POST("/menu", menuCtrl.AddDish)
		admin.DELETE("/menu/:dish_id", menuCtrl.DeleteDish)
		admin.POST("/orders/:order_id/assign", adminCtrl.AssignDelivery)
		admin.POST("/orders/:order_id/status", orderCtrl.UpdateStatus)
	}

	// DELIVERY
	delivery := auth.Group("/delivery")
	delivery.Use(middlewares.RequireRoles(models.RoleDelivery))
	{
		delivery.GET("/orders", orderCtrl.ListOrders)
		delivery.POST("/orders/:order_id/status", orderCtrl.UpdateStatus)
	}

	return r
}
