// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview aggregates the owner's salon activity: lifetime
// and monthly reservation counts, this month's confirmed revenue, and
// today's upcoming appointments.
func GetDashboardOverview(c *gin.Context) {
	salon, ok := ownedSalonOf(c)
	if !ok {
		return
	}

	now := time.Now()
	today := utils.BeginningOfDay(now)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var totalReservations int64
	config.DB.Model(&models.Reservation{}).
		Where("salon_id = ?", salon.ID).Count(&totalReservations)

	var monthlyReservations int64
	config.DB.Model(&models.Reservation{}).
		Where("salon_id = ? AND created_at >= ?", salon.ID, firstOfMonth).
		Count(&monthlyReservations)

	// Revenue counts reservations that made it past payment this month.
	var monthlyRevenue float64
	config.DB.Model(&models.Reservation{}).
		Where("salon_id = ? AND status IN ? AND confirmed_at >= ?",
			salon.ID, []string{models.ReservationConfirmed, models.ReservationCompleted}, firstOfMonth).
		Select("COALESCE(SUM(final_price), 0)").Scan(&monthlyRevenue)

	var statusCounts []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	config.DB.Model(&models.Reservation{}).
		Where("salon_id = ?", salon.ID).
		Select("status, COUNT(*) as count").Group("status").Scan(&statusCounts)

	var todaysReservations []models.Reservation
	config.DB.Preload("Services").
		Where("salon_id = ? AND date = ? AND status IN ?",
			salon.ID, today, []string{models.ReservationPending, models.ReservationConfirmed}).
		Order("start_time").Find(&todaysReservations)

	var pendingCount int64
	config.DB.Model(&models.Reservation{}).
		Where("salon_id = ? AND status = ?", salon.ID, models.ReservationPending).
		Count(&pendingCount)

	c.JSON(http.StatusOK, gin.H{
		"salon":               gin.H{"id": salon.ID, "name": salon.Name},
		"totalReservations":   totalReservations,
		"monthlyReservations": monthlyReservations,
		"monthlyRevenue":      monthlyRevenue,
		"pendingReservations": pendingCount,
		"statusBreakdown":     statusCounts,
		"todaysReservations":  todaysReservations,
	})
}
