// Package ids generates the opaque identifiers handed out for orders and
// payments.
package ids

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	OrderPrefix   = "order_"
	PaymentPrefix = "pay_"

	// suffixBytes gives 64 bits of entropy; collisions are not checked.
	suffixBytes = 8
)

// NewOrderID returns a new order identifier.
func NewOrderID() string {
	return newID(OrderPrefix)
}

// NewPaymentID returns a new payment identifier.
func NewPaymentID() string {
	return newID(PaymentPrefix)
}

func newID(prefix string) string {
	b := make([]byte, suffixBytes)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("ids: reading random bytes: %v", err))
	}
	return prefix + hex.EncodeToString(b)
}
