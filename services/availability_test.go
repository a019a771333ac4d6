package services

import (
	"testing"

	"salonhub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability_OpenSlot(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)

	result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, tomorrow(), "10:00", "11:00")
	require.NoError(t, err)
	assert.True(t, result.Available, result.Reason)
}

func TestCheckAvailability_OutsideSalonHours(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)

	result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, tomorrow(), "08:00", "09:30")
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckAvailability_OutsideStylistSchedule(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)

	// Salon is open until 18:00 but the stylist stops at 17:00.
	result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, tomorrow(), "16:30", "17:30")
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckAvailability_MissingWeekdayRowMeansClosed(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)

	day := tomorrow()
	require.NoError(t, db.Where("salon_id = ? AND weekday = ?", fx.SalonID, day.Weekday()).
		Delete(&models.WorkingHours{}).Error)

	result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, day, "10:00", "11:00")
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckAvailability_SpecialDayOverridesWeekday(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)
	day := tomorrow()

	// Closed holiday despite regular working hours.
	require.NoError(t, db.Create(&models.SalonSpecialDay{
		SalonID:  fx.SalonID,
		Date:     day,
		IsClosed: true,
		Reason:   "holiday",
	}).Error)

	result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, day, "10:00", "11:00")
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckAvailability_SpecialDayShortHours(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)
	day := tomorrow()

	// Shortened hours replace the weekday window entirely.
	require.NoError(t, db.Create(&models.SalonSpecialDay{
		SalonID:     fx.SalonID,
		Date:        day,
		OpeningTime: "12:00",
		ClosingTime: "15:00",
	}).Error)

	result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, day, "10:00", "11:00")
	require.NoError(t, err)
	assert.False(t, result.Available)

	result, err = svc.CheckAvailability(fx.SalonID, fx.StylistID, day, "13:00", "14:00")
	require.NoError(t, err)
	assert.True(t, result.Available, result.Reason)
}

func TestCheckAvailability_OverlapIsHalfOpen(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)
	day := tomorrow()

	require.NoError(t, db.Create(&models.Reservation{
		CustomerID: fx.CustomerID,
		SalonID:    fx.SalonID,
		StylistID:  fx.StylistID,
		Date:       day,
		StartTime:  "10:00",
		EndTime:    "11:00",
		Status:     models.ReservationConfirmed,
	}).Error)

	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"identical interval", "10:00", "11:00", false},
		{"overlaps start", "09:30", "10:30", false},
		{"overlaps end", "10:30", "11:30", false},
		{"contained", "10:15", "10:45", false},
		{"touching before", "09:00", "10:00", true},
		{"touching after", "11:00", "12:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, day, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Available, result.Reason)
		})
	}
}

func TestCheckAvailability_CancelledReservationDoesNotBlock(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)
	day := tomorrow()

	require.NoError(t, db.Create(&models.Reservation{
		CustomerID: fx.CustomerID,
		SalonID:    fx.SalonID,
		StylistID:  fx.StylistID,
		Date:       day,
		StartTime:  "10:00",
		EndTime:    "11:00",
		Status:     models.ReservationCancelled,
	}).Error)

	result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, day, "10:00", "11:00")
	require.NoError(t, err)
	assert.True(t, result.Available, result.Reason)
}

func TestCheckAvailability_InvalidInterval(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	svc := NewAvailabilityService(db)

	result, err := svc.CheckAvailability(fx.SalonID, fx.StylistID, tomorrow(), "11:00", "10:00")
	require.NoError(t, err)
	assert.False(t, result.Available)

	result, err = svc.CheckAvailability(fx.SalonID, fx.StylistID, tomorrow(), "10:00", "10:00")
	require.NoError(t, err)
	assert.False(t, result.Available)
}
