package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Custom JSONB type for loosely structured settings payloads
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}

// SiteSettings is process-wide singleton configuration. The single row
// is loaded once at startup into config.Settings; handlers never query
// it per request.
type SiteSettings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	SiteName    string `gorm:"not null;default:'SalonHub'" json:"siteName"`
	SiteTagline string `json:"siteTagline"`
	AboutText   string `gorm:"type:text" json:"aboutText"`

	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`

	// Platform percentage cut applied at settlement time.
	CommissionPercentage float64 `gorm:"type:decimal(5,2);default:10" json:"commissionPercentage"`

	SocialLinks JSONB `gorm:"type:jsonb;default:'{}'" json:"socialLinks"`

	gorm.Model `json:"-"`
}

func (s *SiteSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
