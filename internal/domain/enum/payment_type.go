package enum

// PaymentType is the settlement method of one payment-split row.
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "CASH"
	PaymentTypeNets   PaymentType = "NETS"
	PaymentTypePayNow PaymentType = "PAYNOW"
	PaymentTypeOther  PaymentType = "OTHER"
)

// String returns the string representation of the payment type
func (p PaymentType) String() string {
	return string(p)
}

// IsValid checks if the payment type is supported
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeNets, PaymentTypePayNow, PaymentTypeOther:
		return true
	}
	return false
}
