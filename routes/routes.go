package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/configs"
	"github.com/GEDDY90/wadoo-backend/controllers"
	"github.com/GEDDY90/wadoo-backend/entity"
	"github.com/GEDDY90/wadoo-backend/events"
	"github.com/GEDDY90/wadoo-backend/middlewares"
	"github.com/GEDDY90/wadoo-backend/repository"
	"github.com/GEDDY90/wadoo-backend/services"
	"github.com/GEDDY90/wadoo-backend/ws"
)

// RegisterRoutes wires repositories, services and controllers and mounts
// every endpoint. pub is what the order service publishes through; hub is
// what the websocket layer reads from (the same object unless Redis sits in
// between).
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *events.Hub, pub events.Publisher) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	dishRepo := repository.NewDishRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	payRepo := repository.NewPaymentRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(restRepo, catRepo)
	dishSvc := services.NewDishService(dishRepo, restRepo)
	orderSvc := services.NewOrderService(db, orderRepo, dishRepo, restRepo, pub)
	paySvc := services.NewPaymentService(db, payRepo, restRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc, dishSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	payCtrl := controllers.NewPaymentController(paySvc)
	stream := ws.NewOrderStream(hub, orderSvc)

	auth := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth(), authCtrl.Me)
	}

	// Public storefront
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/search", restCtrl.Search)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/categories", restCtrl.Categories)
	r.GET("/categories/:slug", restCtrl.CategoryBySlug)

	// Owner restaurant management
	owner := r.Group("/owner", auth(entity.RoleOwner))
	{
		owner.GET("/restaurants", restCtrl.Mine)
		owner.POST("/restaurants", restCtrl.Create)
		owner.PATCH("/restaurants/:id", restCtrl.Edit)
		owner.DELETE("/restaurants/:id", restCtrl.Delete)
		owner.POST("/restaurants/:id/dishes", restCtrl.CreateDish)
		owner.PATCH("/dishes/:id", restCtrl.EditDish)
		owner.DELETE("/dishes/:id", restCtrl.DeleteDish)
	}

	// Orders
	orders := r.Group("/orders")
	{
		orders.POST("", auth(entity.RoleClient), orderCtrl.Create)
		orders.GET("", auth(), orderCtrl.List)
		orders.GET("/:id", auth(), orderCtrl.Detail)
		orders.PATCH("/:id/status", auth(), orderCtrl.EditStatus)
		orders.POST("/:id/take", auth(entity.RoleDelivery), orderCtrl.Take)
	}

	// Promotion payments
	pay := r.Group("/payments", auth(entity.RoleOwner))
	{
		pay.POST("", payCtrl.Create)
		pay.GET("", payCtrl.List)
	}

	// Realtime feeds
	wsGroup := r.Group("/ws", middlewares.WSAuthMiddleware(cfg.JWTSecret))
	{
		wsGroup.GET("/orders/pending", requireRole(entity.RoleOwner), stream.PendingOrders)
		wsGroup.GET("/orders/cooked", requireRole(entity.RoleDelivery), stream.CookedOrders)
		wsGroup.GET("/orders/:id/updates", stream.OrderUpdates)
	}
}

func requireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, _ := c.Get("role"); v != role {
			c.AbortWithStatusJSON(403, gin.H{"ok": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}
