package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/csvutil"
	"github.com/xuri/excelize/v2"
)

// backupColumns is the fixed export layout: receipt fields first, then
// the item fields of the row's service line.
var backupColumns = []csvutil.Column{
	{Key: "receipt_id", Label: "Receipt ID"},
	{Key: "serial_number", Label: "Serial Number"},
	{Key: "warehouse_number", Label: "Warehouse Number"},
	{Key: "service_provider_name", Label: "Service Provider"},
	{Key: "service_provider_code", Label: "Provider Code"},
	{Key: "wbs", Label: "WBS"},
	{Key: "service_date", Label: "Service Date"},
	{Key: "storekeeper_name", Label: "Storekeeper"},
	{Key: "receipt_total_cost", Label: "Receipt Total Cost"},
	{Key: "status", Label: "Status"},
	{Key: "created_at", Label: "Created At"},
	{Key: "created_by", Label: "Created By"},
	{Key: "approved_by", Label: "Approved By"},
	{Key: "approved_by_name", Label: "Approver Name"},
	{Key: "approved_at", Label: "Approved At"},
	{Key: "item_id", Label: "Item ID"},
	{Key: "service_name", Label: "Service Name"},
	{Key: "service_id", Label: "Service ID"},
	{Key: "service_cost", Label: "Service Cost"},
	{Key: "number_of_operations", Label: "Number of Operations"},
	{Key: "number_of_units", Label: "Number of Units"},
	{Key: "item_total_cost", Label: "Item Total Cost"},
}

// BackupService exports the full receipt dataset for offline archiving
type BackupService struct {
	receiptRepo repository.ReceiptRepository
}

// NewBackupService creates a new backup service
func NewBackupService(receiptRepo repository.ReceiptRepository) *BackupService {
	return &BackupService{receiptRepo: receiptRepo}
}

// flatten produces one row per receipt item, newest receipt first. A
// receipt without items still gets a row so it survives the export.
func (s *BackupService) flatten(ctx context.Context) ([]map[string]any, error) {
	receipts, err := s.receiptRepo.ListAll(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})

	var rows []map[string]any
	for i := range receipts {
		r := &receipts[i]
		if len(r.Items) == 0 {
			row := receiptFields(r)
			row["item_id"] = ""
			row["service_name"] = ""
			row["service_id"] = ""
			row["service_cost"] = float64(0)
			row["number_of_operations"] = 0
			row["number_of_units"] = 0
			row["item_total_cost"] = float64(0)
			rows = append(rows, row)
			continue
		}
		for j := range r.Items {
			item := &r.Items[j]
			row := receiptFields(r)
			row["item_id"] = item.ID.String()
			row["service_name"] = item.ServiceName
			row["service_id"] = item.ServiceID.String()
			row["service_cost"] = item.ServiceCost
			row["number_of_operations"] = item.NumberOfOperations
			row["number_of_units"] = item.NumberOfUnits
			row["item_total_cost"] = item.Total()
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func receiptFields(r *entity.ServiceReceipt) map[string]any {
	row := map[string]any{
		"receipt_id":            r.ID.String(),
		"serial_number":         r.SerialNumber,
		"warehouse_number":      r.WarehouseNumber,
		"service_provider_name": r.ServiceProviderName,
		"service_provider_code": r.ServiceProviderCode,
		"wbs":                   r.WBS,
		"service_date":          r.ServiceDate.Format("2006-01-02"),
		"storekeeper_name":      r.StorekeeperName,
		"receipt_total_cost":    r.TotalCost,
		"status":                string(r.Status),
		"created_at":            r.CreatedAt,
		"created_by":            r.CreatedByID.String(),
	}
	if r.ApprovedByID != nil {
		row["approved_by"] = r.ApprovedByID.String()
	}
	if r.ApprovedByName != nil {
		row["approved_by_name"] = *r.ApprovedByName
	}
	if r.ApprovedAt != nil {
		row["approved_at"] = *r.ApprovedAt
	}
	return row
}

// ExportCSV renders the full dataset as UTF-8 CSV with a byte order
// mark so spreadsheet tools pick up the encoding.
func (s *BackupService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	rows, err := s.flatten(ctx)
	if err != nil {
		return nil, "", err
	}
	csv := csvutil.BOM + csvutil.Convert(backupColumns, rows)
	filename := fmt.Sprintf("service-receipts-backup-%s.csv", time.Now().Format("2006-01-02"))
	return []byte(csv), filename, nil
}

// ExportXLSX renders the same dataset as an Excel workbook.
func (s *BackupService) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	rows, err := s.flatten(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Receipts"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, column := range backupColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, column.Label); err != nil {
			return nil, "", err
		}
	}

	for i, row := range rows {
		for col, column := range backupColumns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, "", err
			}
			value := row[column.Key]
			if t, ok := value.(time.Time); ok {
				value = t.Format(time.RFC3339)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("service-receipts-backup-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
