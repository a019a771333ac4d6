package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"` // immutable after creation

	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	GenderType  string `gorm:"type:varchar(20);default:'other'" json:"genderType"`

	Address    string `gorm:"type:text" json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	Logo       string `json:"logo"`

	HasParking  bool `gorm:"default:false" json:"hasParking"`
	HasWifi     bool `gorm:"default:false" json:"hasWifi"`
	HasFood     bool `gorm:"default:false" json:"hasFood"`
	HasKidsArea bool `gorm:"default:false" json:"hasKidsArea"`

	RatingAverage float64 `gorm:"type:decimal(3,2);default:0" json:"ratingAverage"`
	RatingCount   int     `gorm:"default:0" json:"ratingCount"`

	IsActive   bool `gorm:"default:true" json:"isActive"`
	IsVerified bool `gorm:"default:false" json:"isVerified"`

	Services     []Service         `gorm:"foreignKey:SalonID" json:"services,omitempty"`
	WorkingHours []WorkingHours    `gorm:"foreignKey:SalonID" json:"workingHours,omitempty"`
	SpecialDays  []SalonSpecialDay `gorm:"foreignKey:SalonID" json:"specialDays,omitempty"`
	Images       []SalonImage      `gorm:"foreignKey:SalonID" json:"images,omitempty"`

	gorm.Model `json:"-"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

type SalonImage struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	Image   string    `gorm:"not null" json:"image"`
	Title   string    `json:"title"`

	gorm.Model `json:"-"`
}

func (i *SalonImage) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type ServiceCategory struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Slug     string    `gorm:"uniqueIndex" json:"slug"`
	Icon     string    `json:"icon"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (c *ServiceCategory) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type Service struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SalonID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"salonId"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"categoryId"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Price         float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPrice float64 `gorm:"type:decimal(10,2);default:0" json:"discountPrice"`
	Duration      int     `json:"duration"` // in minutes
	Gender        string  `gorm:"type:varchar(20);default:'other'" json:"gender"`
	Image         string  `json:"image"`

	IsActive   bool `gorm:"default:true" json:"isActive"`
	IsVerified bool `gorm:"default:false" json:"isVerified"`
	IsPopular  bool `gorm:"default:false" json:"isPopular"`

	gorm.Model `json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// EffectivePrice honors the discount price only when it is set and does
// not exceed the list price.
func (s *Service) EffectivePrice() float64 {
	if s.DiscountPrice > 0 && s.DiscountPrice <= s.Price {
		return s.DiscountPrice
	}
	return s.Price
}

func (s *Service) DiscountPercentage() int {
	if s.DiscountPrice > 0 && s.DiscountPrice <= s.Price && s.Price > 0 {
		return int(((s.Price - s.DiscountPrice) / s.Price) * 100)
	}
	return 0
}

// WorkingHours is a salon's recurring open window for one weekday.
// At most one row exists per (salon, weekday).
type WorkingHours struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_salon_weekday" json:"salonId"`

	Weekday     time.Weekday `gorm:"not null;uniqueIndex:idx_salon_weekday" json:"weekday"`
	OpeningTime string       `gorm:"type:varchar(5)" json:"openingTime"` // "HH:MM"
	ClosingTime string       `gorm:"type:varchar(5)" json:"closingTime"`
	IsClosed    bool         `gorm:"default:false" json:"isClosed"`

	gorm.Model `json:"-"`
}

func (w *WorkingHours) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

// SalonSpecialDay overrides WorkingHours entirely for one date,
// including the closed flag.
type SalonSpecialDay struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_salon_date" json:"salonId"`

	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_salon_date" json:"date"`
	IsClosed    bool      `gorm:"default:false" json:"isClosed"`
	OpeningTime string    `gorm:"type:varchar(5)" json:"openingTime"`
	ClosingTime string    `gorm:"type:varchar(5)" json:"closingTime"`
	Reason      string    `gorm:"type:text" json:"reason"`

	gorm.Model `json:"-"`
}

func (d *SalonSpecialDay) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// StylistSchedule is a stylist's recurring availability window for one
// weekday, expected to sit inside the salon's WorkingHours.
type StylistSchedule struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StylistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stylist_weekday" json:"stylistId"`

	Weekday   time.Weekday `gorm:"not null;uniqueIndex:idx_stylist_weekday" json:"weekday"`
	StartTime string       `gorm:"type:varchar(5)" json:"startTime"`
	EndTime   string       `gorm:"type:varchar(5)" json:"endTime"`

	gorm.Model `json:"-"`
}

func (s *StylistSchedule) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
