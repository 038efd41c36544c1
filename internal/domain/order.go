package domain

import "time"

// OrderStatus represents the current status of an order.
type OrderStatus string

// OrderStatusCreated is the only status an order ever has; its lifecycle
// continues through payments.
const OrderStatusCreated OrderStatus = "CREATED"

const (
	// DefaultCurrency is used when an order is created without a currency.
	DefaultCurrency = "INR"

	// MinOrderAmount is the smallest collectable amount in minor units.
	MinOrderAmount int64 = 100
)

// Order represents an amount a merchant wants to collect.
type Order struct {
	ID         string
	MerchantID string
	Amount     int64 // Minor units (e.g. paise)
	Currency   string
	Receipt    string
	Notes      map[string]string
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PublicOrder is the projection shown on the checkout page. It carries no
// merchant data.
type PublicOrder struct {
	ID       string
	Amount   int64
	Currency string
	Status   OrderStatus
}

// Public returns the payer-facing projection of the order.
func (o *Order) Public() *PublicOrder {
	return &PublicOrder{
		ID:       o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Status:   o.Status,
	}
}
