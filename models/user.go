package models

import (
	"time"

	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer   = "customer"
	RoleStylist    = "stylist"
	RoleSalonOwner = "salon_owner"
	RoleAdmin      = "admin"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Mobile   string    `gorm:"uniqueIndex;not null" json:"mobile"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`

	Role            string `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	IsPhoneVerified bool   `gorm:"default:false" json:"isPhoneVerified"`

	CustomerProfile   *CustomerProfile   `gorm:"foreignKey:UserID" json:"customerProfile,omitempty"`
	StylistProfile    *StylistProfile    `gorm:"foreignKey:UserID" json:"stylistProfile,omitempty"`
	SalonOwnerProfile *SalonOwnerProfile `gorm:"foreignKey:UserID" json:"salonOwnerProfile,omitempty"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

type CustomerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	Gender     string     `gorm:"type:varchar(10);default:'other'" json:"gender"`
	BirthDate  *time.Time `json:"birthDate"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	PostalCode string     `json:"postalCode"`

	PhoneNotification bool `gorm:"default:false" json:"phoneNotification"`
	EmailNotification bool `gorm:"default:false" json:"emailNotification"`

	gorm.Model `json:"-"`
}

func (p *CustomerProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

type StylistProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	Gender          string `gorm:"type:varchar(10);default:'other'" json:"gender"`
	ExperienceYears int    `gorm:"default:0" json:"experienceYears"`
	Bio             string `gorm:"type:text" json:"bio"`
	Certificates    string `json:"certificates"` // storage path, upload handled elsewhere
	Resume          string `json:"resume"`

	IsActive   bool `gorm:"default:false" json:"isActive"`
	IsVerified bool `gorm:"default:false" json:"isVerified"`

	RatingAverage float64 `gorm:"type:decimal(3,2);default:0" json:"ratingAverage"`
	RatingCount   int     `gorm:"default:0" json:"ratingCount"`

	gorm.Model `json:"-"`
}

func (p *StylistProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

type SalonOwnerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	Gender        string `gorm:"type:varchar(10);default:'other'" json:"gender"`
	BusinessPhone string `json:"businessPhone"`
	BusinessEmail string `json:"businessEmail"`

	NationalID      string `json:"nationalId"`
	BusinessLicense string `json:"businessLicense"`
	IDCardImage     string `json:"idCardImage"`
	LicenseImage    string `json:"licenseImage"`

	IsVerified bool       `gorm:"default:false" json:"isVerified"`
	VerifiedAt *time.Time `json:"verifiedAt"`

	BankAccount string `json:"bankAccount"`
	ShabaNumber string `json:"shabaNumber"`

	gorm.Model `json:"-"`
}

func (p *SalonOwnerProfile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

type OTPCode struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PhoneNumber string    `gorm:"index;not null" json:"phoneNumber"`
	Code        string    `gorm:"type:varchar(6);not null" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (o *OTPCode) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// Codes expire two minutes after issue.
func (o *OTPCode) IsExpired() bool {
	return time.Now().After(o.CreatedAt.Add(2 * time.Minute))
}
