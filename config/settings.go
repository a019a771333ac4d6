package config

import (
	"errors"
	"log"

	"salonhub-backend/models"

	"gorm.io/gorm"
)

// Settings holds the single SiteSettings row, loaded once at startup.
var Settings models.SiteSettings

// LoadSettings reads the settings row, creating a default one on first
// boot.
func LoadSettings(db *gorm.DB) error {
	err := db.First(&Settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Settings = models.SiteSettings{
			SiteName:             "SalonHub",
			CommissionPercentage: 10,
		}
		if err := db.Create(&Settings).Error; err != nil {
			return err
		}
		log.Println("Created default site settings")
		return nil
	}
	return err
}
