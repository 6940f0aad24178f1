package controllers

import (
	"fmt"
	"net/http"
	"time"

	"lubripro-backend/config"
	"lubripro-backend/models"
	"lubripro-backend/utils"

	"github.com/gin-gonic/gin"
)

type TodayAppointment struct {
	Time    string `json:"time"`
	Service string `json:"service"`
	Client  string `json:"client"`
	Plate   string `json:"plate"`
	Status  string `json:"status"`
}

type DueVehicle struct {
	Plate  string `json:"plate"`
	Client string `json:"client"`
	Due    string `json:"due"` // e.g. "Today", "3 days"
}

// GetDashboardOverview aggregates the counters and lists the front desk
// works from all day.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()

	// Today's appointments, in order
	var todayRows []struct {
		Date        time.Time
		ServiceName string
		ClientName  string
		Plate       string
		Status      string
	}
	config.DB.Raw(`
        SELECT a.date, s.name AS service_name, c.name AS client_name, v.plate, a.status
        FROM appointments a
        JOIN services s ON s.id = a.service_id
        JOIN clients c ON c.id = a.client_id
        JOIN vehicles v ON v.id = a.vehicle_id
        WHERE a.date >= ? AND a.date < ? AND a.status <> ?
        ORDER BY a.date ASC
    `, utils.BeginningOfDay(now), utils.EndOfDay(now), models.AppointmentCancelled).Scan(&todayRows)

	todayAppointments := make([]TodayAppointment, 0, len(todayRows))
	for _, row := range todayRows {
		todayAppointments = append(todayAppointments, TodayAppointment{
			Time:    row.Date.Format("15:04"),
			Service: row.ServiceName,
			Client:  row.ClientName,
			Plate:   row.Plate,
			Status:  row.Status,
		})
	}

	// Monthly revenue from completed sales
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyRevenue float64
	config.DB.Model(&models.Sale{}).
		Where("status = ? AND sale_date >= ? AND deleted_at IS NULL", models.SaleCompleted, firstOfMonth).
		Select("COALESCE(SUM(total), 0)").Scan(&monthlyRevenue)

	// Open work orders
	var openOrders int64
	config.DB.Model(&models.WorkOrder{}).
		Where("status IN ? AND deleted_at IS NULL", []string{models.WorkOrderOpen, models.WorkOrderInProgress}).
		Count(&openOrders)

	// Vehicles predicted due within 7 days
	var dueRows []struct {
		Plate                string
		ClientName           string
		PredictedNextService time.Time
	}
	config.DB.Raw(`
        SELECT v.plate, c.name AS client_name, v.predicted_next_service
        FROM vehicles v
        JOIN clients c ON c.id = v.client_id
        WHERE v.deleted_at IS NULL
        AND v.predicted_next_service IS NOT NULL
        AND v.predicted_next_service <= ?
        ORDER BY v.predicted_next_service ASC
        LIMIT 10
    `, now.AddDate(0, 0, 7)).Scan(&dueRows)

	dueVehicles := make([]DueVehicle, 0, len(dueRows))
	for _, row := range dueRows {
		days := utils.DaysBetween(now, row.PredictedNextService)
		var label string
		switch {
		case days <= 0:
			label = "Today"
		case days == 1:
			label = "Tomorrow"
		default:
			label = fmt.Sprintf("%d days", days)
		}
		dueVehicles = append(dueVehicles, DueVehicle{
			Plate:  row.Plate,
			Client: row.ClientName,
			Due:    label,
		})
	}

	// Pipeline counts by status
	var pipelineRows []struct {
		Status string
		Count  int64
	}
	config.DB.Model(&models.LeadCase{}).
		Select("status, COUNT(*) as count").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&pipelineRows)

	pipeline := gin.H{}
	for _, row := range pipelineRows {
		pipeline[row.Status] = row.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"todayAppointments": todayAppointments,
		"monthlyRevenue":    monthlyRevenue,
		"openWorkOrders":    openOrders,
		"dueVehicles":       dueVehicles,
		"pipeline":          pipeline,
	})
}
