// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"lubripro-backend/config"
	"lubripro-backend/models"
	"lubripro-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController handles all reporting functions
type ReportController struct{}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Revenue  float64 `json:"revenue"`
}

type RevenueReport struct {
	From         time.Time         `json:"from"`
	To           time.Time         `json:"to"`
	TotalRevenue float64           `json:"totalRevenue"`
	TotalSales   int64             `json:"totalSales"`
	ByCategory   []CategoryRevenue `json:"byCategory"`
}

// GetRevenueReport aggregates completed-sale revenue by service category
// over a date range (defaults to the current month).
func (rc *ReportController) GetRevenueReport(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}

	report := RevenueReport{From: from, To: to}

	config.DB.Model(&models.Sale{}).
		Where("status = ? AND sale_date >= ? AND sale_date < ? AND deleted_at IS NULL",
			models.SaleCompleted, from, to).
		Count(&report.TotalSales)

	config.DB.Model(&models.Sale{}).
		Where("status = ? AND sale_date >= ? AND sale_date < ? AND deleted_at IS NULL",
			models.SaleCompleted, from, to).
		Select("COALESCE(SUM(total), 0)").Scan(&report.TotalRevenue)

	config.DB.Raw(`
        SELECT COALESCE(s.category, p.category, 'General') AS category,
               COUNT(*) AS count,
               COALESCE(SUM(si.total_price), 0) AS revenue
        FROM sale_items si
        JOIN sales sa ON sa.id = si.sale_id
        LEFT JOIN services s ON s.id = si.service_id
        LEFT JOIN products p ON p.id = si.product_id
        WHERE sa.status = ? AND sa.sale_date >= ? AND sa.sale_date < ? AND sa.deleted_at IS NULL
        GROUP BY 1
        ORDER BY revenue DESC
    `, models.SaleCompleted, from, to).Scan(&report.ByCategory)

	c.JSON(http.StatusOK, report)
}
