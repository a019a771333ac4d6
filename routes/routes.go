package routes

import (
	"os"
	"strings"

	"salonhub-backend/config"
	"salonhub-backend/controllers"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/otp/request", controllers.RequestOTP)
		auth.POST("/otp/verify", controllers.VerifyOTP)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// The gateway redirects here without a bearer token.
	r.GET("/payments/callback", controllers.PaymentCallback)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Salon catalog
		salons := api.Group("/salons")
		{
			salons.GET("", controllers.GetSalons)
			salons.GET("/:id", controllers.GetSalon)
			salons.POST("", utils.RequireRole(models.RoleSalonOwner), controllers.CreateSalon)
			salons.PUT("/mine", utils.RequireRole(models.RoleSalonOwner), controllers.UpdateSalon)
			salons.PUT("/mine/working-hours", utils.RequireRole(models.RoleSalonOwner), controllers.UpsertWorkingHours)
			salons.PUT("/mine/special-days", utils.RequireRole(models.RoleSalonOwner), controllers.UpsertSpecialDay)
			salons.PUT("/mine/policy", utils.RequireRole(models.RoleSalonOwner), controllers.UpsertReservationPolicy)
		}

		// Salon services
		services := api.Group("/services")
		{
			services.GET("/salon/:salonId", controllers.GetServices)
			services.POST("", utils.RequireRole(models.RoleSalonOwner), controllers.CreateService)
			services.PUT("/:id", utils.RequireRole(models.RoleSalonOwner), controllers.UpdateService)
			services.DELETE("/:id", utils.RequireRole(models.RoleSalonOwner), controllers.DeleteService)
		}

		// Stylist schedules and availability
		schedules := api.Group("/schedules")
		{
			schedules.PUT("/mine", utils.RequireRole(models.RoleStylist), controllers.UpsertStylistSchedule)
			schedules.GET("/stylist/:stylistId", controllers.GetStylistSchedule)
			schedules.GET("/availability", controllers.CheckAvailability)
			schedules.GET("/slots/:stylistId", controllers.GetTimeSlots)
		}

		// Reservations
		reservations := api.Group("/reservations")
		{
			reservations.POST("", controllers.CreateReservation)
			reservations.GET("", controllers.GetMyReservations)
			reservations.GET("/:id", controllers.GetReservation)
			reservations.POST("/:id/cancel", controllers.CancelReservation)
			reservations.POST("/:id/reject", utils.RequireRole(models.RoleSalonOwner), controllers.RejectReservation)
			reservations.GET("/salon", utils.RequireRole(models.RoleSalonOwner), controllers.GetSalonReservations)
		}

		// Shop catalog
		products := api.Group("/products")
		{
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.POST("", utils.RequireRole(models.RoleAdmin), controllers.CreateProduct)
			products.PUT("/:id", utils.RequireRole(models.RoleAdmin), controllers.UpdateProduct)
			products.DELETE("/:id", utils.RequireRole(models.RoleAdmin), controllers.DeleteProduct)
		}

		// Cart
		cart := api.Group("/cart")
		{
			cart.GET("", controllers.GetCart)
			cart.POST("/items", controllers.AddCartItem)
			cart.PUT("/items/:itemId", controllers.UpdateCartItem)
			cart.DELETE("/items/:itemId", controllers.RemoveCartItem)
			cart.DELETE("", controllers.ClearCart)
		}

		// Orders and addresses
		orders := api.Group("/orders")
		{
			orders.POST("/checkout", controllers.Checkout)
			orders.GET("", controllers.GetMyOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.POST("/:id/cancel", controllers.CancelOrder)
		}
		addresses := api.Group("/addresses")
		{
			addresses.POST("", controllers.CreateAddress)
			addresses.GET("", controllers.GetAddresses)
			addresses.DELETE("/:id", controllers.DeleteAddress)
		}

		// Payments, refunds, wallet
		payments := api.Group("/payments")
		{
			payments.POST("/initiate", controllers.InitiatePayment)
			payments.GET("", controllers.GetMyPayments)
			payments.GET("/:id", controllers.GetPayment)
		}
		refunds := api.Group("/refunds")
		{
			refunds.POST("", controllers.RequestRefund)
			refunds.GET("", utils.RequireRole(models.RoleAdmin), controllers.GetRefunds)
			refunds.POST("/:id/approve", utils.RequireRole(models.RoleAdmin), controllers.ApproveRefund)
			refunds.POST("/:id/complete", utils.RequireRole(models.RoleAdmin), controllers.CompleteRefund)
		}
		wallet := api.Group("/wallet")
		{
			wallet.GET("", controllers.GetWallet)
			wallet.GET("/transactions", controllers.GetWalletTransactions)
			wallet.POST("/withdraw", controllers.Withdraw)
		}

		// Profiles
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("/customer", controllers.UpdateCustomerProfile)
			profile.PUT("/stylist", utils.RequireRole(models.RoleStylist), controllers.UpdateStylistProfile)
			profile.PUT("/owner", utils.RequireRole(models.RoleSalonOwner), controllers.UpdateOwnerProfile)
		}

		// Owner dashboard
		api.GET("/dashboard", utils.RequireRole(models.RoleSalonOwner), controllers.GetDashboardOverview)
	}

	return r
}
