// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func paymentService() *services.PaymentService {
	return services.NewPaymentService(config.DB, services.SandboxGateway{})
}

type InitiatePaymentInput struct {
	ReservationID *uuid.UUID `json:"reservationId"`
	OrderID       *uuid.UUID `json:"orderId"`
	CallbackURL   string     `json:"callbackUrl" binding:"required,url"`
}

// InitiatePayment opens a payment attempt for a reservation or an order
// and returns the gateway authority token the client redirects with.
func InitiatePayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input InitiatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if (input.ReservationID == nil) == (input.OrderID == nil) {
		utils.RespondWithError(c, http.StatusBadRequest, "Provide exactly one of reservationId or orderId")
		return
	}

	svc := paymentService()

	var payment *models.Payment
	var err error
	if input.ReservationID != nil {
		payment, err = svc.CreateForReservation(userID, *input.ReservationID)
	} else {
		payment, err = svc.CreateForOrder(userID, *input.OrderID)
	}
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Payment target not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondWithError(c, http.StatusConflict, "Target is not awaiting payment")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		}
		return
	}

	authority, err := svc.Initiate(payment, input.CallbackURL)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Payment gateway unavailable")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":   payment,
		"authority": authority,
	})
}

// PaymentCallback is the gateway's return endpoint. It verifies the
// authority token and settles the payment either way. Safe to hit more
// than once for the same authority.
func PaymentCallback(c *gin.Context) {
	authority := c.Query("authority")
	if authority == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Missing authority parameter")
		return
	}

	payment, err := paymentService().HandleCallback(authority)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No payment matches this authority")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to verify payment")
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetMyPayments lists the authenticated user's payment attempts.
func GetMyPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetPayment returns one of the user's payments.
func GetPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	paymentID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, "id = ? AND user_id = ?", paymentID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

type RequestRefundInput struct {
	PaymentID   uuid.UUID `json:"paymentId" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Reason      string    `json:"reason" binding:"required"`
	Description string    `json:"description"`
}

// RequestRefund opens a refund request against one of the user's
// successful payments.
func RequestRefund(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input RequestRefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Refunds only against the requester's own payment.
	var payment models.Payment
	if err := config.DB.First(&payment, "id = ? AND user_id = ?", input.PaymentID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	refund, err := paymentService().RequestRefund(payment.ID, input.Amount, input.Reason, input.Description)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondWithError(c, http.StatusConflict, "Only successful payments can be refunded")
		} else {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, refund)
}

// ApproveRefund moves a pending refund to approved. Admin only.
func ApproveRefund(c *gin.Context) {
	adminID, ok := currentUserID(c)
	if !ok {
		return
	}
	refundID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	refund, err := paymentService().ApproveRefund(refundID, adminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRefundNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Refund not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondWithError(c, http.StatusConflict, "Refund is not pending")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to approve refund")
		}
		return
	}

	c.JSON(http.StatusOK, refund)
}

type CompleteRefundInput struct {
	RefID string `json:"refId"`
}

// CompleteRefund finishes an approved refund. Admin only.
func CompleteRefund(c *gin.Context) {
	refundID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input CompleteRefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	refund, err := paymentService().CompleteRefund(refundID, input.RefID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRefundNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Refund not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondWithError(c, http.StatusConflict, "Refund is not approved")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete refund")
		}
		return
	}

	c.JSON(http.StatusOK, refund)
}

// GetRefunds lists refunds for admin review, optionally by status.
func GetRefunds(c *gin.Context) {
	query := config.DB.Model(&models.Refund{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var refunds []models.Refund
	if err := query.Order("created_at DESC").Find(&refunds).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve refunds")
		return
	}

	c.JSON(http.StatusOK, refunds)
}
