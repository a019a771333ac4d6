// services/scheduler.go
package services

import (
	"fmt"
	"log"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler runs the periodic jobs: reservation reminders and the
// completion sweep for reservations whose end time has passed.
type Scheduler struct {
	db           *gorm.DB
	notifier     *Notifier
	reservations *ReservationService
	cron         *cron.Cron
}

func NewScheduler(db *gorm.DB, notifier *Notifier) *Scheduler {
	return &Scheduler{
		db:           db,
		notifier:     notifier,
		reservations: NewReservationService(db),
		cron:         cron.New(),
	}
}

func (s *Scheduler) Start() {
	s.cron.AddFunc("@every 5m", s.SendDueReminders)
	s.cron.AddFunc("@every 10m", s.CompleteElapsedReservations)
	s.cron.Start()
	log.Println("Background scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// SendDueReminders delivers every unsent reminder whose schedule time
// has arrived.
func (s *Scheduler) SendDueReminders() {
	var reminders []models.ReservationReminder
	if err := s.db.Where("is_sent = ? AND schedule_time <= ?", false, time.Now()).
		Find(&reminders).Error; err != nil {
		log.Printf("Failed to fetch due reminders: %v", err)
		return
	}

	for _, reminder := range reminders {
		if err := s.sendReminder(&reminder); err != nil {
			log.Printf("Reminder %s: %v", reminder.ID, err)
		}
	}
}

func (s *Scheduler) sendReminder(reminder *models.ReservationReminder) error {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", reminder.ReservationID).Error; err != nil {
		return err
	}
	var profile models.CustomerProfile
	if err := s.db.First(&profile, "id = ?", reservation.CustomerID).Error; err != nil {
		return err
	}
	var user models.User
	if err := s.db.First(&user, "id = ?", profile.UserID).Error; err != nil {
		return err
	}

	message := fmt.Sprintf("Hi %s, a reminder for your reservation %s on %s at %s.",
		user.Name, reservation.ReservationNumber,
		reservation.Date.Format("2006-01-02"), reservation.StartTime)

	if reminder.ReminderType == "sms" || reminder.ReminderType == "notify" {
		if err := s.notifier.Send(&user.ID, "reminder", user.Mobile, message); err != nil {
			return err
		}
	}

	now := time.Now()
	reminder.IsSent = true
	reminder.SentAt = &now
	return s.db.Save(reminder).Error
}

// CompleteElapsedReservations sweeps confirmed reservations whose end
// time has passed into the completed state. The per-reservation
// Complete call is idempotent, so overlapping sweeps are harmless.
func (s *Scheduler) CompleteElapsedReservations() {
	today := utils.BeginningOfDay(time.Now())

	var reservations []models.Reservation
	if err := s.db.Where("status = ? AND date <= ?", models.ReservationConfirmed, today).
		Find(&reservations).Error; err != nil {
		log.Printf("Failed to fetch confirmed reservations: %v", err)
		return
	}

	for _, reservation := range reservations {
		if !reservation.IsPast() {
			continue
		}
		if err := s.reservations.Complete(reservation.ID); err != nil {
			log.Printf("Failed to complete reservation %s: %v", reservation.ReservationNumber, err)
		}
	}
}
