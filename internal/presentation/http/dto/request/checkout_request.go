package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLineRequest is one scanned line as submitted by the register UI
type CartLineRequest struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name" binding:"required"`
	Category    string          `json:"category"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PaymentEntryRequest is one split of the settlement
type PaymentEntryRequest struct {
	Type     string          `json:"type" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Tendered decimal.Decimal `json:"tendered"`
}

// PayRequest submits a payment. ReceiptID settles a held sale; without it
// the cart is created and paid in one step.
type PayRequest struct {
	ReceiptID    *uuid.UUID            `json:"receipt_id"`
	CustomerName string                `json:"customer_name"`
	Cart         []CartLineRequest     `json:"cart"`
	Payments     []PaymentEntryRequest `json:"payments" binding:"required"`
}

// HoldRequest parks a cart under a customer name
type HoldRequest struct {
	CustomerName string            `json:"customer_name" binding:"required"`
	Note         string            `json:"note"`
	Cart         []CartLineRequest `json:"cart" binding:"required"`
}

// CancelRequest voids a held sale
type CancelRequest struct {
	Reason string `json:"reason"`
}
