package services

import (
	"errors"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func unavailable(reason string) AvailabilityResult {
	return AvailabilityResult{Available: false, Reason: reason}
}

// CheckAvailability decides whether [startTime, endTime) on date can be
// booked with the given stylist. Times are "HH:MM" and intervals are
// half-open, so touching endpoints do not collide.
func (s *AvailabilityService) CheckAvailability(salonID, stylistID uuid.UUID, date time.Time, startTime, endTime string) (AvailabilityResult, error) {
	start, err := utils.ParseClock(startTime)
	if err != nil {
		return unavailable("invalid start time"), nil
	}
	end, err := utils.ParseClock(endTime)
	if err != nil {
		return unavailable("invalid end time"), nil
	}
	if start >= end {
		return unavailable("start time must be before end time"), nil
	}

	day := utils.BeginningOfDay(date)

	open, close, closed, err := s.resolveSalonHours(salonID, day)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if closed {
		return unavailable("salon is closed on this date"), nil
	}
	if start < open || end > close {
		return unavailable("requested time is outside salon working hours"), nil
	}

	var schedule models.StylistSchedule
	err = s.db.Where("stylist_id = ? AND weekday = ?", stylistID, day.Weekday()).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return unavailable("stylist does not work on this weekday"), nil
	}
	if err != nil {
		return AvailabilityResult{}, err
	}
	schedStart, err := utils.ParseClock(schedule.StartTime)
	if err != nil {
		return AvailabilityResult{}, err
	}
	schedEnd, err := utils.ParseClock(schedule.EndTime)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if start < schedStart || end > schedEnd {
		return unavailable("requested time is outside the stylist's schedule"), nil
	}

	overlaps, err := s.hasOverlappingReservation(stylistID, day, start, end)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if overlaps {
		return unavailable("stylist already has a reservation in this interval"), nil
	}

	return AvailabilityResult{Available: true}, nil
}

// resolveSalonHours returns the effective open window in minutes since
// midnight. A special day for the date overrides the weekday row
// entirely, closed flag included; a missing weekday row means closed.
func (s *AvailabilityService) resolveSalonHours(salonID uuid.UUID, day time.Time) (open, close int, closed bool, err error) {
	var special models.SalonSpecialDay
	err = s.db.Where("salon_id = ? AND date = ?", salonID, day).First(&special).Error
	if err == nil {
		if special.IsClosed {
			return 0, 0, true, nil
		}
		open, err = utils.ParseClock(special.OpeningTime)
		if err != nil {
			return 0, 0, true, nil
		}
		close, err = utils.ParseClock(special.ClosingTime)
		if err != nil {
			return 0, 0, true, nil
		}
		return open, close, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, false, err
	}

	var hours models.WorkingHours
	err = s.db.Where("salon_id = ? AND weekday = ?", salonID, day.Weekday()).First(&hours).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// No row for this weekday: fail closed, not open.
		return 0, 0, true, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	if hours.IsClosed {
		return 0, 0, true, nil
	}
	open, err = utils.ParseClock(hours.OpeningTime)
	if err != nil {
		return 0, 0, true, nil
	}
	close, err = utils.ParseClock(hours.ClosingTime)
	if err != nil {
		return 0, 0, true, nil
	}
	return open, close, false, nil
}

func (s *AvailabilityService) hasOverlappingReservation(stylistID uuid.UUID, day time.Time, start, end int) (bool, error) {
	var existing []models.Reservation
	err := s.db.Where("stylist_id = ? AND date = ? AND status IN ?",
		stylistID, day, []string{models.ReservationPending, models.ReservationConfirmed}).
		Find(&existing).Error
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		rStart, err := utils.ParseClock(r.StartTime)
		if err != nil {
			continue
		}
		rEnd, err := utils.ParseClock(r.EndTime)
		if err != nil {
			continue
		}
		// Half-open overlap: existing.start < new.end AND new.start < existing.end.
		if rStart < end && start < rEnd {
			return true, nil
		}
	}
	return false, nil
}
