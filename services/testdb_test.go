package services

import (
	"testing"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.CustomerProfile{},
		&models.SalonOwnerProfile{},
		&models.Salon{},
		&models.Service{},
		&models.WorkingHours{},
		&models.SalonSpecialDay{},
		&models.StylistSchedule{},
		&models.TimeSlot{},
		&models.Reservation{},
		&models.ReservationPolicy{},
		&models.Product{},
		&models.Discount{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Address{},
		&models.Payment{},
		&models.Refund{},
		&models.Wallet{},
		&models.Transaction{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// salonFixture is a salon open every day 09:00-18:00 with one stylist
// working 09:00-17:00 and one 50.00 service.
type salonFixture struct {
	OwnerUserID uuid.UUID
	OwnerID     uuid.UUID
	SalonID     uuid.UUID
	StylistID   uuid.UUID
	ServiceID   uuid.UUID
	CustomerID  uuid.UUID
}

func seedSalon(t *testing.T, db *gorm.DB) salonFixture {
	t.Helper()

	ownerUserID := uuid.New()
	owner := models.SalonOwnerProfile{UserID: ownerUserID}
	if err := db.Create(&owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}

	salon := models.Salon{
		OwnerID:  owner.ID,
		Name:     "Test Salon",
		Slug:     "test-salon-" + uuid.NewString()[:8],
		City:     "Tehran",
		IsActive: true,
	}
	if err := db.Create(&salon).Error; err != nil {
		t.Fatalf("seed salon: %v", err)
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		hours := models.WorkingHours{
			SalonID:     salon.ID,
			Weekday:     wd,
			OpeningTime: "09:00",
			ClosingTime: "18:00",
		}
		if err := db.Create(&hours).Error; err != nil {
			t.Fatalf("seed working hours: %v", err)
		}
	}

	stylistID := uuid.New()
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		sched := models.StylistSchedule{
			StylistID: stylistID,
			Weekday:   wd,
			StartTime: "09:00",
			EndTime:   "17:00",
		}
		if err := db.Create(&sched).Error; err != nil {
			t.Fatalf("seed stylist schedule: %v", err)
		}
	}

	service := models.Service{
		SalonID:  salon.ID,
		Name:     "Haircut",
		Price:    50,
		Duration: 60,
		IsActive: true,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	customer := models.CustomerProfile{UserID: uuid.New()}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	return salonFixture{
		OwnerUserID: ownerUserID,
		OwnerID:     owner.ID,
		SalonID:     salon.ID,
		StylistID:   stylistID,
		ServiceID:   service.ID,
		CustomerID:  customer.ID,
	}
}

// tomorrow returns the next day's date at midnight, far enough out that
// morning bookings are never in the past.
func tomorrow() time.Time {
	return utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
}
