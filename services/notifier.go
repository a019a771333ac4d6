// services/notifier.go
package services

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type Notifier struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotifier(db *gorm.DB) *Notifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &Notifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// Send delivers a message over WhatsApp when the number is in E.164
// format, SMS otherwise, and writes an audit row either way.
func (n *Notifier) Send(userID *uuid.UUID, kind, phone, message string) error {
	channel := "sms"
	to := phone

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, sendErr := n.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if sendErr != nil {
		log.Printf("Failed to send message to %s: %v", phone, sendErr)
		status = "failed"
		errorMsg = sendErr.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", phone)
	}

	entry := models.NotificationLog{
		UserID:       userID,
		Kind:         kind,
		Recipient:    phone,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}
	if err := n.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log notification for %s: %v", phone, err)
	}
	return sendErr
}

// SendOTP issues a fresh one-time code for the phone number and texts
// it out. Codes expire after two minutes.
func (n *Notifier) SendOTP(phone string) error {
	code := utils.GenerateOTP(6)
	otp := models.OTPCode{
		PhoneNumber: phone,
		Code:        code,
	}
	if err := n.db.Create(&otp).Error; err != nil {
		return err
	}
	return n.Send(nil, "otp", phone, "Your SalonHub verification code is "+code)
}

// VerifyOTP checks the latest code issued for the phone number and, on
// a match, marks the owning user's phone verified. Used codes are
// deleted so they cannot be replayed.
func (n *Notifier) VerifyOTP(phone, code string) error {
	var otp models.OTPCode
	err := n.db.Where("phone_number = ?", phone).Order("created_at DESC").First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return err
	}
	if otp.IsExpired() || otp.Code != code {
		return ErrInvalidOTP
	}

	if err := n.db.Delete(&otp).Error; err != nil {
		return err
	}
	return n.db.Model(&models.User{}).
		Where("mobile = ?", phone).
		Update("is_phone_verified", true).Error
}
