package services

import (
	"sync"
	"testing"
	"time"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookTomorrow(t *testing.T, svc *ReservationService, fx salonFixture, start, end string) *models.Reservation {
	t.Helper()
	res, err := svc.Create(CreateReservationInput{
		CustomerID: fx.CustomerID,
		SalonID:    fx.SalonID,
		StylistID:  fx.StylistID,
		ServiceIDs: []uuid.UUID{fx.ServiceID},
		Date:       tomorrow(),
		StartTime:  start,
		EndTime:    end,
	})
	require.NoError(t, err)
	return res
}

func TestCreateReservation_SnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")

	assert.Equal(t, models.ReservationPending, res.Status)
	assert.Equal(t, 50.0, res.TotalPrice)
	assert.Equal(t, 50.0, res.FinalPrice)
	assert.Len(t, res.ReservationNumber, 13)
	assert.Equal(t, "RES", res.ReservationNumber[:3])

	// Later price changes must not affect the stored snapshot.
	require.NoError(t, db.Model(&models.Service{}).
		Where("id = ?", fx.ServiceID).Update("price", 500).Error)
	var stored models.Reservation
	require.NoError(t, db.First(&stored, "id = ?", res.ID).Error)
	assert.Equal(t, 50.0, stored.FinalPrice)
}

func TestCreateReservation_WithCoupon(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	require.NoError(t, db.Create(&models.Discount{
		Code:         "TEN",
		DiscountType: models.DiscountPercentage,
		Value:        10,
		IsActive:     true,
	}).Error)

	res, err := svc.Create(CreateReservationInput{
		CustomerID: fx.CustomerID,
		SalonID:    fx.SalonID,
		StylistID:  fx.StylistID,
		ServiceIDs: []uuid.UUID{fx.ServiceID},
		Date:       tomorrow(),
		StartTime:  "10:00",
		EndTime:    "11:00",
		CouponCode: "TEN",
	})
	require.NoError(t, err)

	assert.Equal(t, 50.0, res.TotalPrice)
	assert.Equal(t, 5.0, res.DiscountAmount)
	assert.Equal(t, 45.0, res.FinalPrice)

	var coupon models.Discount
	require.NoError(t, db.First(&coupon, "code = ?", "TEN").Error)
	assert.Equal(t, 1, coupon.UsedCount)
}

func TestCreateReservation_FinalPriceNeverNegative(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	require.NoError(t, db.Create(&models.Discount{
		Code:         "BIG",
		DiscountType: models.DiscountFixed,
		Value:        1000,
		IsActive:     true,
	}).Error)

	res, err := svc.Create(CreateReservationInput{
		CustomerID: fx.CustomerID,
		SalonID:    fx.SalonID,
		StylistID:  fx.StylistID,
		ServiceIDs: []uuid.UUID{fx.ServiceID},
		Date:       tomorrow(),
		StartTime:  "10:00",
		EndTime:    "11:00",
		CouponCode: "BIG",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.FinalPrice)
}

func TestCreateReservation_UnavailableSlot(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	bookTomorrow(t, svc, fx, "10:00", "11:00")

	_, err := svc.Create(CreateReservationInput{
		CustomerID: fx.CustomerID,
		SalonID:    fx.SalonID,
		StylistID:  fx.StylistID,
		ServiceIDs: []uuid.UUID{fx.ServiceID},
		Date:       tomorrow(),
		StartTime:  "10:30",
		EndTime:    "11:30",
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateReservation_NoServices(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	_, err := svc.Create(CreateReservationInput{
		CustomerID: fx.CustomerID,
		SalonID:    fx.SalonID,
		StylistID:  fx.StylistID,
		Date:       tomorrow(),
		StartTime:  "10:00",
		EndTime:    "11:00",
	})
	assert.ErrorIs(t, err, ErrEmptyServiceSet)
}

func TestCreateReservation_ConcurrentDoubleBooking(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(CreateReservationInput{
				CustomerID: fx.CustomerID,
				SalonID:    fx.SalonID,
				StylistID:  fx.StylistID,
				ServiceIDs: []uuid.UUID{fx.ServiceID},
				Date:       tomorrow(),
				StartTime:  "10:00",
				EndTime:    "11:00",
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSlotUnavailable)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent booking should win")
}

func TestConfirm_RequiresSuccessfulPayment(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")

	_, err := svc.Confirm(res.ID)
	assert.ErrorIs(t, err, ErrPaymentRequired)

	require.NoError(t, db.Create(&models.Payment{
		UserID:        uuid.New(),
		ReservationID: &res.ID,
		Amount:        res.FinalPrice,
		Status:        models.PaymentSuccess,
	}).Error)

	confirmed, err := svc.Confirm(res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)
}

func TestCancel_FeeSchedule(t *testing.T) {
	cases := []struct {
		name        string
		freeHours   int
		penaltyPct  int
		hoursBefore time.Duration
		price       float64
		expectedFee float64
	}{
		{"outside free window", 24, 10, 30 * time.Hour, 1000, 0},
		{"exactly at boundary", 24, 10, 24 * time.Hour, 1000, 0},
		{"inside window", 24, 10, 10 * time.Hour, 1000, 100},
		{"zero penalty", 24, 0, 2 * time.Hour, 1000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			policy := models.ReservationPolicy{
				FreeCancelHours:   tc.freeHours,
				PenaltyPercentage: tc.penaltyPct,
			}
			fee := policy.CalculateFee(tc.price, tc.hoursBefore.Hours())
			assert.Equal(t, tc.expectedFee, fee)
		})
	}
}

func TestCancel_ChargesPolicyFee(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	require.NoError(t, db.Create(&models.ReservationPolicy{
		SalonID:           fx.SalonID,
		FreeCancelHours:   24,
		PenaltyPercentage: 20,
		IsActive:          true,
	}).Error)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")

	// Cancel two hours before start: inside the free window, 20% due.
	startsAt, err := res.StartsAt()
	require.NoError(t, err)

	result, err := svc.Cancel(res.ID, startsAt.Add(-2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, result.Reservation.Status)
	assert.NotNil(t, result.Reservation.CancelledAt)
	assert.Equal(t, 10.0, result.Fee) // 20% of 50
}

func TestCancel_NoPolicyMeansNoFee(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")

	result, err := svc.Cancel(res.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Fee)
}

func TestCancel_TerminalStatesRejected(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")

	_, err := svc.Cancel(res.ID, time.Now())
	require.NoError(t, err)

	_, err = svc.Cancel(res.ID, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReject_PendingOnly(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")

	rejected, err := svc.Reject(res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationRejected, rejected.Status)

	_, err = svc.Reject(res.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestComplete_IdempotentFromCompleted(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")

	require.NoError(t, db.Model(res).Update("status", models.ReservationConfirmed).Error)
	require.NoError(t, svc.Complete(res.ID))
	// Second call is a no-op, not an error.
	require.NoError(t, svc.Complete(res.ID))

	var stored models.Reservation
	require.NoError(t, db.First(&stored, "id = ?", res.ID).Error)
	assert.Equal(t, models.ReservationCompleted, stored.Status)
	assert.NotNil(t, stored.CompletedAt)
}

func TestComplete_FromPendingRejected(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")
	assert.ErrorIs(t, svc.Complete(res.ID), ErrInvalidTransition)
}

func TestCancel_ReleasesClaimedSlots(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewReservationService(db)
	day := tomorrow()

	require.NoError(t, db.Create(&models.TimeSlot{
		StylistID: fx.StylistID,
		Date:      day,
		StartTime: "10:00",
		EndTime:   "11:00",
	}).Error)

	res := bookTomorrow(t, svc, fx, "10:00", "11:00")

	var slot models.TimeSlot
	require.NoError(t, db.First(&slot, "stylist_id = ?", fx.StylistID).Error)
	assert.False(t, slot.IsAvailable)

	_, err := svc.Cancel(res.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, db.First(&slot, "id = ?", slot.ID).Error)
	assert.True(t, slot.IsAvailable)
}
