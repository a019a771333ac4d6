// controllers/reservation.go
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
)

type CreateReservationInput struct {
	SalonID    uuid.UUID   `json:"salonId" binding:"required"`
	StylistID  uuid.UUID   `json:"stylistId" binding:"required"`
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	Date       string      `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime  string      `json:"startTime" binding:"required"`
	EndTime    string      `json:"endTime" binding:"required"`
	CouponCode string      `json:"couponCode"`
}

// CreateReservation books a slot for the authenticated customer.
func CreateReservation(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}

	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	svc := services.NewReservationService(config.DB)
	reservation, err := svc.Create(services.CreateReservationInput{
		CustomerID: profile.ID,
		SalonID:    input.SalonID,
		StylistID:  input.StylistID,
		ServiceIDs: input.ServiceIDs,
		Date:       date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		CouponCode: input.CouponCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlotUnavailable):
			utils.RespondWithError(c, http.StatusConflict, "Requested time slot is not available")
		case errors.Is(err, services.ErrInvalidCoupon):
			utils.RespondWithError(c, http.StatusBadRequest, "Coupon code is not valid")
		case errors.Is(err, services.ErrEmptyServiceSet):
			utils.RespondWithError(c, http.StatusBadRequest, "At least one service is required")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation")
		}
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetMyReservations lists the authenticated customer's reservations.
func GetMyReservations(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Services").Where("customer_id = ?", profile.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("date DESC").Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// GetReservation returns one reservation of the authenticated customer.
func GetReservation(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}
	reservationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.DB.Preload("Services").
		Where("id = ? AND customer_id = ?", reservationID, profile.ID).
		First(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// CancelReservation cancels the customer's reservation and reports the
// policy fee owed.
func CancelReservation(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}
	reservationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ? AND customer_id = ?", reservationID, profile.ID).
		First(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	svc := services.NewReservationService(config.DB)
	result, err := svc.Cancel(reservation.ID, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondWithError(c, http.StatusConflict, "Reservation can no longer be cancelled")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel reservation")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reservation": result.Reservation,
		"fee":         result.Fee,
	})
}

// RejectReservation is the salon-side decline of a pending reservation.
func RejectReservation(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}
	reservationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ? AND salon_id = ?", reservationID, salon.ID).
		First(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	svc := services.NewReservationService(config.DB)
	rejected, err := svc.Reject(reservation.ID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondWithError(c, http.StatusConflict, "Only pending reservations can be rejected")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reject reservation")
		}
		return
	}

	c.JSON(http.StatusOK, rejected)
}

// GetSalonReservations lists reservations of the owner's salon.
func GetSalonReservations(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Services").Where("salon_id = ?", salon.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date = ?", utils.BeginningOfDay(parsed))
	}

	var reservations []models.Reservation
	if err := query.Order("date DESC, start_time").Find(&reservations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	c.JSON(http.StatusOK, reservations)
}
