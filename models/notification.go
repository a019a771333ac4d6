// models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationLog records every outbound SMS/WhatsApp attempt.
type NotificationLog struct {
	ID     uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"userId"`

	Kind         string `gorm:"type:varchar(20)" json:"kind"` // otp, reminder
	Recipient    string `gorm:"not null" json:"recipient"`
	Message      string `gorm:"type:text" json:"message"`
	Status       string `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string `gorm:"type:text" json:"errorMessage"`
	Channel      string `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms

	SentAt time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
