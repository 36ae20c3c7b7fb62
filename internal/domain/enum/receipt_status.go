package enum

// ReceiptStatus is the lifecycle state of a receipt. Stored as text so the
// persisted rows stay readable with plain SQL tooling.
type ReceiptStatus string

const (
	// ReceiptStatusUnpaid is a held sale: header and item snapshot written,
	// no payment rows yet.
	ReceiptStatusUnpaid ReceiptStatus = "UNPAID"
	// ReceiptStatusPaid is terminal: payment rows exist and sum to the total.
	ReceiptStatusPaid ReceiptStatus = "PAID"
	// ReceiptStatusCancelled is terminal: the held sale was voided. Item
	// rows are kept; only the header status flips.
	ReceiptStatusCancelled ReceiptStatus = "CANCELLED"
)

// String returns the string representation of the status
func (s ReceiptStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed.
func (s ReceiptStatus) IsTerminal() bool {
	return s == ReceiptStatusPaid || s == ReceiptStatusCancelled
}

// IsValid checks if the status is a valid receipt status
func (s ReceiptStatus) IsValid() bool {
	switch s {
	case ReceiptStatusUnpaid, ReceiptStatusPaid, ReceiptStatusCancelled:
		return true
	}
	return false
}
