package entity

import (
	"time"

	"github.com/Selvam-T/POS-sub000/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is the sale header. One row per transaction lifecycle: created
// either at hold time (UNPAID) or at immediate-payment time (PAID, with
// created_at == paid_at). PAID and CANCELLED are terminal. Rows are never
// deleted; cancellation only flips the status.
type Receipt struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ReceiptNo    string             `gorm:"size:16;uniqueIndex;not null" json:"receipt_no"`
	CustomerName string             `gorm:"size:100" json:"customer_name,omitempty"`
	CashierName  string             `gorm:"size:100;not null" json:"cashier_name"`
	Status       enum.ReceiptStatus `gorm:"size:12;not null;check:status IN ('PAID','UNPAID','CANCELLED')" json:"status"`
	GrandTotal   decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"grand_total"`
	CreatedAt    time.Time          `json:"created_at"`
	PaidAt       *time.Time         `json:"paid_at,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	Note         string             `gorm:"size:255" json:"note,omitempty"`

	// Relationships
	Items    []ReceiptItem    `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
	Payments []ReceiptPayment `gorm:"foreignKey:ReceiptID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before inserting a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem is a frozen snapshot of one cart line at sale time. Later
// catalog edits must never change historical receipts, so product name,
// unit and price are copied here verbatim. Written exactly once, never
// updated, never deleted.
type ReceiptItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ReceiptID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_items_line" json:"receipt_id"`
	LineNo      int             `gorm:"not null;uniqueIndex:idx_receipt_items_line" json:"line_no"`
	ProductCode string          `gorm:"size:64;not null" json:"product_code"`
	ProductName string          `gorm:"size:200;not null" json:"product_name"`
	Category    string          `gorm:"size:100" json:"category,omitempty"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,3);not null" json:"quantity"`
	Unit        string          `gorm:"size:20" json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`

	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
}

// BeforeCreate generates a UUID before inserting a new item row
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}

// ReceiptPayment is one row per settlement method used on a receipt.
// Rows exist only for paid receipts, written exactly once at the moment
// payment is finalized. For CASH, Tendered is the amount handed over;
// for every other type Tendered equals Amount (application convention,
// normalized before insert).
type ReceiptPayment struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ReceiptID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"receipt_id"`
	PaymentType enum.PaymentType `gorm:"size:12;not null;check:payment_type IN ('CASH','NETS','PAYNOW','OTHER')" json:"payment_type"`
	Amount      decimal.Decimal  `gorm:"type:decimal(12,2);not null;check:amount > 0" json:"amount"`
	Tendered    decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"tendered"`
	CreatedAt   time.Time        `json:"created_at"`

	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
}

// BeforeCreate generates a UUID before inserting a new payment row
func (p *ReceiptPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptPayment model
func (ReceiptPayment) TableName() string {
	return "receipt_payments"
}

// ReceiptCounter is the per-day allocation ledger behind receipt numbers.
// One row per calendar day; Counter holds the last-issued sequence and is
// only ever incremented inside the same transaction as the receipt it
// numbers, so a rollback restores the prior value and never burns a number.
type ReceiptCounter struct {
	Date    string `gorm:"primaryKey;size:8;column:date" json:"date"` // YYYYMMDD
	Counter int    `gorm:"not null" json:"counter"`
}

// TableName returns the table name for the ReceiptCounter model
func (ReceiptCounter) TableName() string {
	return "receipt_counters"
}
