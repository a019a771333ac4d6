// controllers/schedule.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StylistScheduleInput struct {
	Weekday   time.Weekday `json:"weekday" binding:"min=0,max=6"`
	StartTime string       `json:"startTime" binding:"required"`
	EndTime   string       `json:"endTime" binding:"required"`
}

// UpsertStylistSchedule sets the authenticated stylist's recurring
// window for one weekday.
func UpsertStylistSchedule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var stylist models.StylistProfile
	if err := config.DB.Where("user_id = ?", userID).First(&stylist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusForbidden, "Stylist profile required")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input StylistScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if _, err := utils.ParseClock(input.StartTime); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start time")
		return
	}
	if _, err := utils.ParseClock(input.EndTime); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end time")
		return
	}

	var schedule models.StylistSchedule
	err := config.DB.Where("stylist_id = ? AND weekday = ?", stylist.ID, input.Weekday).
		First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		schedule = models.StylistSchedule{StylistID: stylist.ID, Weekday: input.Weekday}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	schedule.StartTime = input.StartTime
	schedule.EndTime = input.EndTime

	if err := config.DB.Save(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save schedule")
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// GetStylistSchedule lists a stylist's weekly windows.
func GetStylistSchedule(c *gin.Context) {
	stylistID, ok := pathUUID(c, "stylistId")
	if !ok {
		return
	}

	var schedules []models.StylistSchedule
	if err := config.DB.Where("stylist_id = ?", stylistID).
		Order("weekday").Find(&schedules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedule")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

type CheckAvailabilityInput struct {
	SalonID   string `form:"salonId" binding:"required,uuid"`
	StylistID string `form:"stylistId" binding:"required,uuid"`
	Date      string `form:"date" binding:"required"` // YYYY-MM-DD
	StartTime string `form:"startTime" binding:"required"`
	EndTime   string `form:"endTime" binding:"required"`
}

// CheckAvailability answers whether an interval can be booked. Purely a
// read; creation re-validates under the stylist-day lock.
func CheckAvailability(c *gin.Context) {
	var input CheckAvailabilityInput
	if err := c.ShouldBindQuery(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	// UUID format already validated by the binding tags.
	salonID := uuid.MustParse(input.SalonID)
	stylistID := uuid.MustParse(input.StylistID)

	availability := services.NewAvailabilityService(config.DB)
	result, err := availability.CheckAvailability(salonID, stylistID, date, input.StartTime, input.EndTime)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Availability check failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTimeSlots lists a stylist's open slots for one date.
func GetTimeSlots(c *gin.Context) {
	stylistID, ok := pathUUID(c, "stylistId")
	if !ok {
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var slots []models.TimeSlot
	if err := config.DB.Where("stylist_id = ? AND date = ? AND is_available = ?",
		stylistID, utils.BeginningOfDay(date), true).
		Order("start_time").Find(&slots).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve time slots")
		return
	}

	c.JSON(http.StatusOK, slots)
}
