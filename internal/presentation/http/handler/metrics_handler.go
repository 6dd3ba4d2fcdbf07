package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/serviceops/receipts-api/internal/application/service"
	"github.com/serviceops/receipts-api/internal/presentation/http/dto/response"
)

// MetricsHandler handles dashboard metrics HTTP requests
type MetricsHandler struct {
	metricsService *service.MetricsService
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

func dateWindow(c *gin.Context) (*time.Time, *time.Time) {
	var from, to *time.Time
	if monthStr := c.Query("month"); monthStr != "" {
		if t, err := time.Parse("2006-01", monthStr); err == nil {
			end := t.AddDate(0, 1, 0).Add(-time.Nanosecond)
			return &t, &end
		}
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = &t
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if t, err := time.Parse("2006-01-02", toStr); err == nil {
			// Make the upper bound inclusive of the whole day.
			end := t.Add(24*time.Hour - time.Nanosecond)
			to = &end
		}
	}
	return from, to
}

// Receipts handles the receipt status metrics view
func (h *MetricsHandler) Receipts(c *gin.Context) {
	from, to := dateWindow(c)
	metrics, err := h.metricsService.GetReceiptMetrics(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt metrics computed", metrics)
}

// Payments handles the payment metrics view
func (h *MetricsHandler) Payments(c *gin.Context) {
	from, to := dateWindow(c)
	metrics, err := h.metricsService.GetPaymentMetrics(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment metrics computed", metrics)
}

// Trends handles the monthly trend series
func (h *MetricsHandler) Trends(c *gin.Context) {
	from, to := dateWindow(c)
	trends, err := h.metricsService.GetMonthlyTrends(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Monthly trends computed", trends)
}
