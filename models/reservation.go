package models

import (
	"time"

	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationRejected  = "rejected"
	ReservationCompleted = "completed"
)

// TimeSlot is a concrete bookable interval for one stylist on one date.
type TimeSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StylistID uuid.UUID `gorm:"type:uuid;index;not null" json:"stylistId"`

	Date      time.Time `gorm:"type:date;not null" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"endTime"`

	IsAvailable bool `gorm:"default:true" json:"isAvailable"`

	gorm.Model `json:"-"`
}

func (t *TimeSlot) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

func (t *TimeSlot) IsPast() bool {
	start, err := utils.CombineDateClock(t.Date, t.StartTime)
	if err != nil {
		return false
	}
	return time.Now().After(start)
}

type Reservation struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReservationNumber string    `gorm:"type:varchar(13);uniqueIndex;not null" json:"reservationNumber"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	SalonID    uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	StylistID  uuid.UUID `gorm:"type:uuid;index;not null" json:"stylistId"`

	Services []Service `gorm:"many2many:reservation_services" json:"services,omitempty"`

	Date      time.Time `gorm:"type:date;index:idx_stylist_date_res;not null" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"endTime"`

	// Price snapshot taken at creation time. Never recomputed from
	// Service rows, so later price changes keep history intact.
	TotalPrice     float64 `gorm:"type:decimal(10,2);default:0" json:"totalPrice"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);default:0" json:"discountAmount"`
	FinalPrice     float64 `gorm:"type:decimal(10,2);default:0" json:"finalPrice"`

	Status string `gorm:"type:varchar(10);default:'pending';index" json:"status"`

	ConfirmedAt *time.Time `json:"confirmedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	gorm.Model `json:"-"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.ReservationNumber == "" {
		r.ReservationNumber = utils.GenerateNumber("RES")
	}
	return
}

// StartsAt resolves the reservation's date plus start clock time.
func (r *Reservation) StartsAt() (time.Time, error) {
	return utils.CombineDateClock(r.Date, r.StartTime)
}

func (r *Reservation) IsPast() bool {
	end, err := utils.CombineDateClock(r.Date, r.EndTime)
	if err != nil {
		return false
	}
	return time.Now().After(end)
}

// IsTerminal reports whether no further status transition is allowed.
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case ReservationCancelled, ReservationRejected, ReservationCompleted:
		return true
	}
	return false
}

// ReservationPolicy is a salon's cancellation rule.
type ReservationPolicy struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	FreeCancelHours   int    `gorm:"default:24" json:"freeCancelHours"`
	PenaltyPercentage int    `gorm:"default:0" json:"penaltyPercentage"`
	PolicyText        string `gorm:"type:text" json:"policyText"`
	IsActive          bool   `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (p *ReservationPolicy) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// CalculateFee returns the cancellation penalty for a reservation worth
// price, cancelled hoursBefore its start. Cancelling at or outside the
// free window costs nothing.
func (p *ReservationPolicy) CalculateFee(price float64, hoursBefore float64) float64 {
	if hoursBefore >= float64(p.FreeCancelHours) {
		return 0
	}
	return price * float64(p.PenaltyPercentage) / 100
}

type ReservationReminder struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReservationID uuid.UUID `gorm:"type:uuid;index;not null" json:"reservationId"`

	ReminderType string    `gorm:"type:varchar(10);not null" json:"reminderType"` // sms, email, notify
	HourBefore   int       `gorm:"default:24" json:"hourBefore"`
	ScheduleTime time.Time `json:"scheduleTime"`

	IsSent bool       `gorm:"default:false" json:"isSent"`
	SentAt *time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (r *ReservationReminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
