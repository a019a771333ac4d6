// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	CategoryID    *uuid.UUID `json:"categoryId"`
	Price         float64    `json:"price" binding:"required,min=0"`
	DiscountPrice float64    `json:"discountPrice" binding:"min=0"`
	Duration      int        `json:"duration" binding:"min=0"` // in minutes
	Gender        string     `json:"gender" binding:"omitempty,oneof=male female other"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	Duration      *int     `json:"duration"`
	Gender        *string  `json:"gender" binding:"omitempty,oneof=male female other"`
	IsActive      *bool    `json:"isActive"`
}

// CreateService creates a new service for the owner's salon
func CreateService(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		SalonID:       salon.ID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Duration:      input.Duration,
		Gender:        input.Gender,
		IsActive:      true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves the active services of a salon
func GetServices(c *gin.Context) {
	salonID, ok := pathUUID(c, "salonId")
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("salon_id = ? AND is_active = ?", salonID, true).
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// UpdateService updates an existing service of the owner's salon
func UpdateService(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	serviceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("salon_id = ? AND id = ?", salon.ID, serviceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.DiscountPrice != nil {
		service.DiscountPrice = *input.DiscountPrice
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Gender != nil {
		service.Gender = *input.Gender
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService soft deletes a service of the owner's salon
func DeleteService(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	serviceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("salon_id = ? AND id = ?", salon.ID, serviceID).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
