package domain

import "time"

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSuccess    PaymentStatus = "success"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// IsTerminal reports whether the status can no longer change.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// PaymentMethod represents how the shopper pays.
type PaymentMethod string

const (
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// CardNetwork is the card scheme derived from the card number prefix.
type CardNetwork string

const (
	CardNetworkVisa       CardNetwork = "visa"
	CardNetworkMastercard CardNetwork = "mastercard"
	CardNetworkAmex       CardNetwork = "amex"
	CardNetworkRupay      CardNetwork = "rupay"
	CardNetworkUnknown    CardNetwork = "unknown"
)

// Payment represents one authorization attempt against an order.
type Payment struct {
	ID          string
	OrderID     string
	MerchantID  string
	Amount      int64 // Minor units, copied from the order
	Currency    string
	Method      PaymentMethod
	VPA         string      // UPI only
	CardNetwork CardNetwork // Card only
	CardLast4   string      // Card only
	Status      PaymentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublicPayment is the projection polled by the checkout page.
type PublicPayment struct {
	ID        string
	OrderID   string
	Amount    int64
	Currency  string
	Method    PaymentMethod
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public returns the payer-facing projection of the payment.
func (p *Payment) Public() *PublicPayment {
	return &PublicPayment{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Method:    p.Method,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
