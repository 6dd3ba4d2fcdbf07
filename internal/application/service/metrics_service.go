package service

import (
	"context"
	"sort"
	"time"

	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"github.com/serviceops/receipts-api/internal/domain/repository"
)

// ReceiptMetrics summarizes receipts by approval status.
type ReceiptMetrics struct {
	TotalReceipts  int     `json:"total_receipts"`
	TotalValue     float64 `json:"total_value"`
	PendingCount   int     `json:"pending_count"`
	PendingValue   float64 `json:"pending_value"`
	ApprovedCount  int     `json:"approved_count"`
	ApprovedValue  float64 `json:"approved_value"`
	RejectedCount  int     `json:"rejected_count"`
	RejectedValue  float64 `json:"rejected_value"`
	AvgReceiptCost float64 `json:"avg_receipt_cost"`
}

// PaymentMetrics summarizes receipts by payment status.
type PaymentMetrics struct {
	TotalReceipts int     `json:"total_receipts"`
	TotalValue    float64 `json:"total_value"`
	PaidCount     int     `json:"paid_count"`
	PaidValue     float64 `json:"paid_value"`
	UnpaidCount   int     `json:"unpaid_count"`
	UnpaidValue   float64 `json:"unpaid_value"`
}

// MonthlyTrend aggregates receipts created in one calendar month.
type MonthlyTrend struct {
	Month          string  `json:"month"` // YYYY-MM
	ReceiptCount   int     `json:"receipt_count"`
	TotalValue     float64 `json:"total_value"`
	ApprovedCount  int     `json:"approved_count"`
	PaidCount      int     `json:"paid_count"`
	AvgLeadTimeDay float64 `json:"avg_lead_time_days"`
}

// CalculateReceiptMetrics partitions receipts by status. Every receipt
// falls into exactly one bucket, so bucket counts sum to the total.
func CalculateReceiptMetrics(receipts []entity.ServiceReceipt) ReceiptMetrics {
	var m ReceiptMetrics
	for i := range receipts {
		r := &receipts[i]
		m.TotalReceipts++
		m.TotalValue += r.TotalCost
		switch r.Status {
		case enum.ReceiptStatusApproved:
			m.ApprovedCount++
			m.ApprovedValue += r.TotalCost
		case enum.ReceiptStatusRejected:
			m.RejectedCount++
			m.RejectedValue += r.TotalCost
		default:
			m.PendingCount++
			m.PendingValue += r.TotalCost
		}
	}
	if m.TotalReceipts > 0 {
		m.AvgReceiptCost = m.TotalValue / float64(m.TotalReceipts)
	}
	return m
}

// CalculatePaymentMetrics partitions receipts by payment status.
func CalculatePaymentMetrics(receipts []entity.ServiceReceipt) PaymentMetrics {
	var m PaymentMetrics
	for i := range receipts {
		r := &receipts[i]
		m.TotalReceipts++
		m.TotalValue += r.TotalCost
		if r.PaymentStatus == enum.PaymentStatusPaid {
			m.PaidCount++
			m.PaidValue += r.TotalCost
		} else {
			m.UnpaidCount++
			m.UnpaidValue += r.TotalCost
		}
	}
	return m
}

// DaysDelayed returns how many whole days a receipt has been waiting.
// A receipt pending approval counts from creation; an approved but
// unpaid receipt counts from approval. Anything else is not delayed.
func DaysDelayed(r *entity.ServiceReceipt, now time.Time) int {
	var since time.Time
	switch {
	case r.Status == enum.ReceiptStatusPending:
		since = r.CreatedAt
	case r.Status == enum.ReceiptStatusApproved && r.PaymentStatus == enum.PaymentStatusPending && r.ApprovedAt != nil:
		since = *r.ApprovedAt
	default:
		return 0
	}
	days := int(now.Sub(since).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// CalculateMonthlyTrends groups receipts by creation month, oldest
// month first. Lead time is creation to approval, averaged over the
// receipts approved that month.
func CalculateMonthlyTrends(receipts []entity.ServiceReceipt) []MonthlyTrend {
	byMonth := make(map[string]*MonthlyTrend)
	leadDays := make(map[string][]float64)

	for i := range receipts {
		r := &receipts[i]
		month := r.CreatedAt.Format("2006-01")
		trend, ok := byMonth[month]
		if !ok {
			trend = &MonthlyTrend{Month: month}
			byMonth[month] = trend
		}
		trend.ReceiptCount++
		trend.TotalValue += r.TotalCost
		if r.Status == enum.ReceiptStatusApproved {
			trend.ApprovedCount++
		}
		if r.PaymentStatus == enum.PaymentStatusPaid {
			trend.PaidCount++
		}
		if r.ApprovedAt != nil {
			leadDays[month] = append(leadDays[month], r.ApprovedAt.Sub(r.CreatedAt).Hours()/24)
		}
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	trends := make([]MonthlyTrend, 0, len(months))
	for _, month := range months {
		trend := byMonth[month]
		if days := leadDays[month]; len(days) > 0 {
			var sum float64
			for _, d := range days {
				sum += d
			}
			trend.AvgLeadTimeDay = sum / float64(len(days))
		}
		trends = append(trends, *trend)
	}
	return trends
}

// MetricsService computes dashboard aggregations over receipts
type MetricsService struct {
	receiptRepo repository.ReceiptRepository
}

// NewMetricsService creates a new metrics service
func NewMetricsService(receiptRepo repository.ReceiptRepository) *MetricsService {
	return &MetricsService{receiptRepo: receiptRepo}
}

// GetReceiptMetrics computes status metrics, optionally bounded to
// receipts created inside [from, to].
func (s *MetricsService) GetReceiptMetrics(ctx context.Context, from, to *time.Time) (*ReceiptMetrics, error) {
	receipts, err := s.receiptRepo.ListAll(ctx, from, to)
	if err != nil {
		return nil, err
	}
	m := CalculateReceiptMetrics(receipts)
	return &m, nil
}

// GetPaymentMetrics computes payment metrics over the same window.
func (s *MetricsService) GetPaymentMetrics(ctx context.Context, from, to *time.Time) (*PaymentMetrics, error) {
	receipts, err := s.receiptRepo.ListAll(ctx, from, to)
	if err != nil {
		return nil, err
	}
	m := CalculatePaymentMetrics(receipts)
	return &m, nil
}

// GetMonthlyTrends computes the per-month trend series.
func (s *MetricsService) GetMonthlyTrends(ctx context.Context, from, to *time.Time) ([]MonthlyTrend, error) {
	receipts, err := s.receiptRepo.ListAll(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return CalculateMonthlyTrends(receipts), nil
}
