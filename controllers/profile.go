// controllers/profile.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateCustomerProfileInput struct {
	Gender            *string    `json:"gender"`
	BirthDate         *time.Time `json:"birthDate"`
	Address           *string    `json:"address"`
	City              *string    `json:"city"`
	PostalCode        *string    `json:"postalCode"`
	PhoneNotification *bool      `json:"phoneNotification"`
	EmailNotification *bool      `json:"emailNotification"`
}

type UpdateStylistProfileInput struct {
	Gender          *string `json:"gender"`
	ExperienceYears *int    `json:"experienceYears"`
	Bio             *string `json:"bio"`
	Certificates    *string `json:"certificates"`
	Resume          *string `json:"resume"`
}

type UpdateOwnerProfileInput struct {
	Gender        *string `json:"gender"`
	BusinessPhone *string `json:"businessPhone"`
	BusinessEmail *string `json:"businessEmail"`
	BankAccount   *string `json:"bankAccount"`
	ShabaNumber   *string `json:"shabaNumber"`
}

// GetProfile returns the authenticated user together with their role
// profile.
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.
		Preload("CustomerProfile").
		Preload("StylistProfile").
		Preload("SalonOwnerProfile").
		First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateCustomerProfile updates the caller's customer profile fields.
func UpdateCustomerProfile(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}

	var input UpdateCustomerProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.BirthDate != nil {
		profile.BirthDate = input.BirthDate
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.PostalCode != nil {
		profile.PostalCode = *input.PostalCode
	}
	if input.PhoneNotification != nil {
		profile.PhoneNotification = *input.PhoneNotification
	}
	if input.EmailNotification != nil {
		profile.EmailNotification = *input.EmailNotification
	}

	if err := config.DB.Save(profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateStylistProfile updates the caller's stylist profile fields.
// Verification flags stay admin-controlled.
func UpdateStylistProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var profile models.StylistProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusForbidden, "Stylist profile required")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateStylistProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.ExperienceYears != nil {
		profile.ExperienceYears = *input.ExperienceYears
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Certificates != nil {
		profile.Certificates = *input.Certificates
	}
	if input.Resume != nil {
		profile.Resume = *input.Resume
	}

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateOwnerProfile updates the caller's salon owner profile fields.
func UpdateOwnerProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var profile models.SalonOwnerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusForbidden, "Salon owner profile required")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateOwnerProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.BusinessPhone != nil {
		profile.BusinessPhone = *input.BusinessPhone
	}
	if input.BusinessEmail != nil {
		profile.BusinessEmail = *input.BusinessEmail
	}
	if input.BankAccount != nil {
		profile.BankAccount = *input.BankAccount
	}
	if input.ShabaNumber != nil {
		profile.ShabaNumber = *input.ShabaNumber
	}

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}
