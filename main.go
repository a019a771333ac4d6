package main

import (
	"fmt"
	"log"
	"os"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/routes"
	"salonhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.StylistProfile{},
		&models.SalonOwnerProfile{},
		&models.OTPCode{},
		&models.Salon{},
		&models.SalonImage{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.WorkingHours{},
		&models.SalonSpecialDay{},
		&models.StylistSchedule{},
		&models.TimeSlot{},
		&models.Reservation{},
		&models.ReservationPolicy{},
		&models.ReservationReminder{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariation{},
		&models.Discount{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Address{},
		&models.PaymentGateway{},
		&models.Payment{},
		&models.Refund{},
		&models.Wallet{},
		&models.Transaction{},
		&models.NotificationLog{},
		&models.SiteSettings{},
	)

	if err := config.LoadSettings(config.DB); err != nil {
		log.Fatalf("Failed to load site settings: %v", err)
	}
}

func main() {
	scheduler := services.NewScheduler(config.DB, services.NewNotifier(config.DB))
	scheduler.Start()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
