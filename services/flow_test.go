package services

import (
	"testing"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full lifecycle: book a discounted reservation, pay through the
// sandbox gateway, then cancel inside the penalty window.
func TestReservationLifecycle_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	config.Settings = models.SiteSettings{CommissionPercentage: 10}

	service := models.Service{
		SalonID:  fx.SalonID,
		Name:     "Bridal Package",
		Price:    500,
		Duration: 120,
		IsActive: true,
	}
	require.NoError(t, db.Create(&service).Error)
	require.NoError(t, db.Create(&models.Discount{
		Code:         "WELCOME50",
		DiscountType: models.DiscountFixed,
		Value:        50,
		IsActive:     true,
	}).Error)
	require.NoError(t, db.Create(&models.ReservationPolicy{
		SalonID:           fx.SalonID,
		FreeCancelHours:   24,
		PenaltyPercentage: 20,
		IsActive:          true,
	}).Error)

	reservations := NewReservationService(db)
	payments := NewPaymentService(db, SandboxGateway{})

	res, err := reservations.Create(CreateReservationInput{
		CustomerID: fx.CustomerID,
		SalonID:    fx.SalonID,
		StylistID:  fx.StylistID,
		ServiceIDs: []uuid.UUID{service.ID},
		Date:       tomorrow(),
		StartTime:  "10:00",
		EndTime:    "12:00",
		CouponCode: "WELCOME50",
	})
	require.NoError(t, err)
	assert.Equal(t, 450.0, res.FinalPrice)

	payment, err := payments.CreateForReservation(uuid.New(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, 450.0, payment.Amount)

	authority, err := payments.Initiate(payment, "https://example.com/callback")
	require.NoError(t, err)
	settled, err := payments.HandleCallback(authority)
	require.NoError(t, err)
	require.Equal(t, models.PaymentSuccess, settled.Status)

	var confirmed models.Reservation
	require.NoError(t, db.First(&confirmed, "id = ?", res.ID).Error)
	require.Equal(t, models.ReservationConfirmed, confirmed.Status)

	// Cancel two hours before start: 20% of 450.
	startsAt, err := confirmed.StartsAt()
	require.NoError(t, err)
	result, err := reservations.Cancel(res.ID, startsAt.Add(-2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, result.Reservation.Status)
	assert.InDelta(t, 90.0, result.Fee, 0.001)

	// The slot opens up again for other customers.
	availability := NewAvailabilityService(db)
	check, err := availability.CheckAvailability(fx.SalonID, fx.StylistID, tomorrow(), "10:00", "12:00")
	require.NoError(t, err)
	assert.True(t, check.Available, check.Reason)
}
