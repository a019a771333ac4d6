package services

import (
	"errors"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationService struct {
	db           *gorm.DB
	availability *AvailabilityService
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db, availability: NewAvailabilityService(db)}
}

type CreateReservationInput struct {
	CustomerID uuid.UUID
	SalonID    uuid.UUID
	StylistID  uuid.UUID
	ServiceIDs []uuid.UUID
	Date       time.Time
	StartTime  string
	EndTime    string
	CouponCode string
}

// Create books a reservation in pending state. The availability check
// and the insert run while holding the (stylist, date) lock so two
// concurrent requests cannot both pass the overlap check.
func (s *ReservationService) Create(input CreateReservationInput) (*models.Reservation, error) {
	if len(input.ServiceIDs) == 0 {
		return nil, ErrEmptyServiceSet
	}
	day := utils.BeginningOfDay(input.Date)

	lock := stylistDayLocks.get(input.StylistID.String() + "|" + day.Format("2006-01-02"))
	lock.Lock()
	defer lock.Unlock()

	result, err := s.availability.CheckAvailability(input.SalonID, input.StylistID, day, input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, ErrSlotUnavailable
	}

	var services []models.Service
	if err := s.db.Where("salon_id = ? AND id IN ? AND is_active = ?", input.SalonID, input.ServiceIDs, true).
		Find(&services).Error; err != nil {
		return nil, err
	}
	if len(services) != len(input.ServiceIDs) {
		return nil, errors.New("one or more services not found for this salon")
	}

	var total float64
	for i := range services {
		total += services[i].EffectivePrice()
	}

	var discountAmount float64
	var coupon *models.Discount
	if input.CouponCode != "" {
		var d models.Discount
		if err := s.db.Where("code = ?", input.CouponCode).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCoupon
			}
			return nil, err
		}
		if !d.IsValid(time.Now()) {
			return nil, ErrInvalidCoupon
		}
		discountAmount = d.Apply(total)
		coupon = &d
	}

	finalPrice := total - discountAmount
	if finalPrice < 0 {
		finalPrice = 0
	}

	reservation := models.Reservation{
		CustomerID:     input.CustomerID,
		SalonID:        input.SalonID,
		StylistID:      input.StylistID,
		Services:       services,
		Date:           day,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		TotalPrice:     total,
		DiscountAmount: discountAmount,
		FinalPrice:     finalPrice,
		Status:         models.ReservationPending,
	}

	number, err := allocateNumber(s.db, &models.Reservation{}, "reservation_number", "RES")
	if err != nil {
		return nil, err
	}
	reservation.ReservationNumber = number

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		if coupon != nil {
			if err := tx.Model(coupon).Update("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
				return err
			}
		}
		// Claim any staff-generated slot covering this interval.
		return tx.Model(&models.TimeSlot{}).
			Where("stylist_id = ? AND date = ? AND start_time >= ? AND end_time <= ?",
				input.StylistID, day, input.StartTime, input.EndTime).
			Update("is_available", false).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Confirm moves a pending reservation to confirmed. It refuses unless a
// successful payment references the reservation; the payment callback
// path drives this in the normal flow.
func (s *ReservationService) Confirm(reservationID uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if reservation.Status != models.ReservationPending {
		return nil, ErrInvalidTransition
	}

	var count int64
	if err := s.db.Model(&models.Payment{}).
		Where("reservation_id = ? AND status = ?", reservationID, models.PaymentSuccess).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPaymentRequired
	}

	now := time.Now()
	reservation.Status = models.ReservationConfirmed
	reservation.ConfirmedAt = &now
	if err := s.db.Save(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

type CancelResult struct {
	Reservation *models.Reservation `json:"reservation"`
	Fee         float64             `json:"fee"`
}

// Cancel moves a pending or confirmed reservation to cancelled and
// returns the policy fee owed. Settlement of the fee is external; only
// the value is computed here.
func (s *ReservationService) Cancel(reservationID uuid.UUID, now time.Time) (*CancelResult, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if reservation.Status != models.ReservationPending && reservation.Status != models.ReservationConfirmed {
		return nil, ErrInvalidTransition
	}

	var fee float64
	startsAt, err := reservation.StartsAt()
	if err == nil {
		var policy models.ReservationPolicy
		err := s.db.Where("salon_id = ? AND is_active = ?", reservation.SalonID, true).First(&policy).Error
		if err == nil {
			fee = policy.CalculateFee(reservation.FinalPrice, utils.HoursUntil(startsAt, now))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	reservation.Status = models.ReservationCancelled
	reservation.CancelledAt = &now

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		return s.releaseSlots(tx, &reservation)
	})
	if err != nil {
		return nil, err
	}
	return &CancelResult{Reservation: &reservation, Fee: fee}, nil
}

// Reject is the staff-side cancel, allowed from pending only and never
// charging a fee.
func (s *ReservationService) Reject(reservationID uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if reservation.Status != models.ReservationPending {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	reservation.Status = models.ReservationRejected
	reservation.CancelledAt = &now

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		return s.releaseSlots(tx, &reservation)
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Complete marks a confirmed reservation completed once its end time has
// passed. Completing an already-completed reservation is a no-op.
func (s *ReservationService) Complete(reservationID uuid.UUID) error {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}
	if reservation.Status == models.ReservationCompleted {
		return nil
	}
	if reservation.Status != models.ReservationConfirmed {
		return ErrInvalidTransition
	}

	now := time.Now()
	reservation.Status = models.ReservationCompleted
	reservation.CompletedAt = &now
	return s.db.Save(&reservation).Error
}

func (s *ReservationService) releaseSlots(tx *gorm.DB, r *models.Reservation) error {
	return tx.Model(&models.TimeSlot{}).
		Where("stylist_id = ? AND date = ? AND start_time >= ? AND end_time <= ?",
			r.StylistID, r.Date, r.StartTime, r.EndTime).
		Update("is_available", true).Error
}

// allocateNumber returns a PREFIX + 10 digit identifier not yet present
// in the given column. Collisions are retried transparently; the unique
// index on the column is the backstop for the race between check and
// insert.
func allocateNumber(db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	const maxAttempts = 5
	for attempt := 0; attempt < maxAttempts; attempt++ {
		number := utils.GenerateNumber(prefix)
		var count int64
		if err := db.Model(model).Where(column+" = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", errors.New("could not allocate a unique " + prefix + " number")
}
