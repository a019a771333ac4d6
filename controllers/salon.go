// controllers/salon.go
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

type CreateSalonInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	GenderType  string `json:"genderType" binding:"omitempty,oneof=male female other"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode"`
	HasParking  bool   `json:"hasParking"`
	HasWifi     bool   `json:"hasWifi"`
	HasFood     bool   `json:"hasFood"`
	HasKidsArea bool   `json:"hasKidsArea"`
}

type UpdateSalonInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	GenderType  *string `json:"genderType" binding:"omitempty,oneof=male female other"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Province    *string `json:"province"`
	Country     *string `json:"country"`
	PostalCode  *string `json:"postalCode"`
	HasParking  *bool   `json:"hasParking"`
	HasWifi     *bool   `json:"hasWifi"`
	HasFood     *bool   `json:"hasFood"`
	HasKidsArea *bool   `json:"hasKidsArea"`
	IsActive    *bool   `json:"isActive"`
}

// CreateSalon registers a salon for the authenticated owner.
func CreateSalon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var owner models.SalonOwnerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusForbidden, "Salon owner profile required")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input CreateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salon := models.Salon{
		OwnerID:     owner.ID,
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Description: input.Description,
		GenderType:  input.GenderType,
		Address:     input.Address,
		City:        input.City,
		Province:    input.Province,
		Country:     input.Country,
		PostalCode:  input.PostalCode,
		HasParking:  input.HasParking,
		HasWifi:     input.HasWifi,
		HasFood:     input.HasFood,
		HasKidsArea: input.HasKidsArea,
		IsActive:    true,
	}

	if err := config.DB.Create(&salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create salon")
		return
	}

	c.JSON(http.StatusCreated, salon)
}

// GetSalons lists active salons, optionally filtered by city.
func GetSalons(c *gin.Context) {
	query := config.DB.Where("is_active = ?", true)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var salons []models.Salon
	if err := query.Order("rating_average DESC").Find(&salons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve salons")
		return
	}

	c.JSON(http.StatusOK, salons)
}

// GetSalon returns one salon with its catalog preloaded.
func GetSalon(c *gin.Context) {
	salonID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var salon models.Salon
	if err := config.DB.Preload("Services", "is_active = ?", true).
		Preload("WorkingHours").Preload("Images").
		First(&salon, "id = ?", salonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, salon)
}

// UpdateSalon updates the authenticated owner's salon. The owner
// reference itself can never change.
func UpdateSalon(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	var input UpdateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		salon.Name = *input.Name
	}
	if input.Description != nil {
		salon.Description = *input.Description
	}
	if input.GenderType != nil {
		salon.GenderType = *input.GenderType
	}
	if input.Address != nil {
		salon.Address = *input.Address
	}
	if input.City != nil {
		salon.City = *input.City
	}
	if input.Province != nil {
		salon.Province = *input.Province
	}
	if input.Country != nil {
		salon.Country = *input.Country
	}
	if input.PostalCode != nil {
		salon.PostalCode = *input.PostalCode
	}
	if input.HasParking != nil {
		salon.HasParking = *input.HasParking
	}
	if input.HasWifi != nil {
		salon.HasWifi = *input.HasWifi
	}
	if input.HasFood != nil {
		salon.HasFood = *input.HasFood
	}
	if input.HasKidsArea != nil {
		salon.HasKidsArea = *input.HasKidsArea
	}
	if input.IsActive != nil {
		salon.IsActive = *input.IsActive
	}

	if err := config.DB.Save(salon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update salon")
		return
	}

	c.JSON(http.StatusOK, salon)
}

type WorkingHoursInput struct {
	Weekday     time.Weekday `json:"weekday" binding:"min=0,max=6"`
	OpeningTime string       `json:"openingTime"`
	ClosingTime string       `json:"closingTime"`
	IsClosed    bool         `json:"isClosed"`
}

// UpsertWorkingHours replaces the open window for one weekday.
func UpsertWorkingHours(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	var input WorkingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.IsClosed {
		if _, err := utils.ParseClock(input.OpeningTime); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid opening time")
			return
		}
		if _, err := utils.ParseClock(input.ClosingTime); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid closing time")
			return
		}
	}

	var hours models.WorkingHours
	err := config.DB.Where("salon_id = ? AND weekday = ?", salon.ID, input.Weekday).First(&hours).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hours = models.WorkingHours{SalonID: salon.ID, Weekday: input.Weekday}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	hours.OpeningTime = input.OpeningTime
	hours.ClosingTime = input.ClosingTime
	hours.IsClosed = input.IsClosed

	if err := config.DB.Save(&hours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save working hours")
		return
	}

	c.JSON(http.StatusOK, hours)
}

type SpecialDayInput struct {
	Date        time.Time `json:"date" binding:"required"`
	IsClosed    bool      `json:"isClosed"`
	OpeningTime string    `json:"openingTime"`
	ClosingTime string    `json:"closingTime"`
	Reason      string    `json:"reason"`
}

// UpsertSpecialDay sets a one-off override of the salon's hours.
func UpsertSpecialDay(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	var input SpecialDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	day := utils.BeginningOfDay(input.Date)

	var special models.SalonSpecialDay
	err := config.DB.Where("salon_id = ? AND date = ?", salon.ID, day).First(&special).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		special = models.SalonSpecialDay{SalonID: salon.ID, Date: day}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	special.IsClosed = input.IsClosed
	special.OpeningTime = input.OpeningTime
	special.ClosingTime = input.ClosingTime
	special.Reason = input.Reason

	if err := config.DB.Save(&special).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save special day")
		return
	}

	c.JSON(http.StatusOK, special)
}

type PolicyInput struct {
	FreeCancelHours   int    `json:"freeCancelHours" binding:"min=0"`
	PenaltyPercentage int    `json:"penaltyPercentage" binding:"min=0,max=100"`
	PolicyText        string `json:"policyText"`
}

// UpsertReservationPolicy sets the salon's cancellation rule.
func UpsertReservationPolicy(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	var input PolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var policy models.ReservationPolicy
	err := config.DB.Where("salon_id = ?", salon.ID).First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		policy = models.ReservationPolicy{SalonID: salon.ID}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	policy.FreeCancelHours = input.FreeCancelHours
	policy.PenaltyPercentage = input.PenaltyPercentage
	policy.PolicyText = input.PolicyText
	policy.IsActive = true

	if err := config.DB.Save(&policy).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save policy")
		return
	}

	c.JSON(http.StatusOK, policy)
}
