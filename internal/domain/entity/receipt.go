package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ServiceReceipt is a service-request record moving through the
// approval/payment workflow. Receipts are never physically deleted;
// mutation happens only through the workflow operations.
type ServiceReceipt struct {
	ID                  uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SerialNumber        string             `gorm:"size:100;uniqueIndex;not null" json:"serial_number"`
	WarehouseNumber     string             `gorm:"size:100" json:"warehouse_number"`
	ServiceProviderName string             `gorm:"size:255;not null" json:"service_provider_name"`
	ServiceProviderCode string             `gorm:"size:100;not null;index" json:"service_provider_code"`
	WBS                 string             `gorm:"size:100;column:wbs" json:"wbs"`
	ServiceDate         time.Time          `gorm:"type:date;not null" json:"service_date"`
	StorekeeperName     string             `gorm:"size:255" json:"storekeeper_name"`
	TotalCost           float64            `gorm:"type:decimal(15,2);default:0" json:"total_cost"`
	Status              enum.ReceiptStatus `gorm:"size:20;default:'pending';index" json:"status"`
	PaymentStatus       enum.PaymentStatus `gorm:"size:20;default:'pending';index" json:"payment_status"`
	ApprovedByID        *uuid.UUID         `gorm:"type:uuid;column:approved_by" json:"approved_by,omitempty"`
	ApprovedByName      *string            `gorm:"size:255" json:"approved_by_name,omitempty"`
	ApprovedAt          *time.Time         `json:"approved_at,omitempty"`
	PaidByID            *uuid.UUID         `gorm:"type:uuid;column:paid_by" json:"paid_by,omitempty"`
	PaymentDate         *time.Time         `json:"payment_date,omitempty"`
	CreatedByID         uuid.UUID          `gorm:"type:uuid;not null;column:created_by;index" json:"created_by"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`

	// Relationships
	Items []ServiceReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *ServiceReceipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceReceipt model
func (ServiceReceipt) TableName() string {
	return "service_receipts"
}

// State returns the joint workflow state of the receipt.
func (r *ServiceReceipt) State() enum.ReceiptState {
	return enum.ReceiptState{Status: r.Status, Payment: r.PaymentStatus}
}

// Total sums the totals of the receipt's loaded items.
func (r *ServiceReceipt) Total() float64 {
	var sum float64
	for i := range r.Items {
		sum += r.Items[i].Total()
	}
	return sum
}

// ServiceReceiptItem is one priced service line within a receipt. The
// service name and cost are copied from the catalog at selection time
// and never re-read from the live Service record.
type ServiceReceiptItem struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID          uuid.UUID `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ServiceID          uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	ServiceName        string    `gorm:"size:255;not null" json:"service_name"`
	ServiceCost        float64   `gorm:"type:decimal(15,2);not null" json:"service_cost"`
	NumberOfOperations int       `gorm:"not null" json:"number_of_operations"`
	NumberOfUnits      int       `gorm:"not null" json:"number_of_units"`
	TotalCost          float64   `gorm:"type:decimal(15,2);not null" json:"total_cost"`
	CreatedAt          time.Time `json:"created_at"`

	// Relationships
	Receipt ServiceReceipt `gorm:"foreignKey:ReceiptID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new receipt item
func (i *ServiceReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceReceiptItem model
func (ServiceReceiptItem) TableName() string {
	return "service_receipt_items"
}

// Total is the line total: cost × operations × units. No rounding is
// applied; formatting is a display concern.
func (i *ServiceReceiptItem) Total() float64 {
	return i.ServiceCost * float64(i.NumberOfOperations) * float64(i.NumberOfUnits)
}
