package service

// Stable error codes reported to API clients.
const (
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeBadRequest     = "BAD_REQUEST_ERROR"
	CodeNotFound       = "NOT_FOUND_ERROR"
	CodeInvalidVPA     = "INVALID_VPA"
	CodeInvalidCard    = "INVALID_CARD"
	CodeExpiredCard    = "EXPIRED_CARD"
	CodeInvalidMethod  = "INVALID_METHOD"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
)

// Error is a business failure with a stable code. Sentinel values below are
// compared with errors.Is.
type Error struct {
	Code        string
	Description string
}

func (e *Error) Error() string {
	return e.Description
}

var (
	// ErrAuthentication is returned when merchant credentials are missing or wrong.
	ErrAuthentication = &Error{Code: CodeAuthentication, Description: "Invalid API credentials"}

	// ErrInvalidAmount is returned when an order amount is missing, fractional or below the minimum.
	ErrInvalidAmount = &Error{Code: CodeBadRequest, Description: "amount must be an integer of at least 100"}

	// ErrInvalidRequest is returned when a request body cannot be decoded.
	ErrInvalidRequest = &Error{Code: CodeBadRequest, Description: "invalid request body"}

	// ErrOrderNotFound is returned when an order does not exist or belongs to another merchant.
	ErrOrderNotFound = &Error{Code: CodeNotFound, Description: "Order not found"}

	// ErrPaymentNotFound is returned when a payment does not exist or belongs to another merchant.
	ErrPaymentNotFound = &Error{Code: CodeNotFound, Description: "Payment not found"}

	// ErrTestMerchantNotFound is returned when the seeded test merchant is absent.
	ErrTestMerchantNotFound = &Error{Code: CodeNotFound, Description: "Test merchant not found"}

	// ErrInvalidVPA is returned when a UPI address fails the syntax check.
	ErrInvalidVPA = &Error{Code: CodeInvalidVPA, Description: "Invalid VPA"}

	// ErrCardDetailsMissing is returned when a card payment has no card object.
	ErrCardDetailsMissing = &Error{Code: CodeInvalidCard, Description: "Card details missing"}

	// ErrIncompleteCard is returned when number or expiry fields are missing.
	ErrIncompleteCard = &Error{Code: CodeInvalidCard, Description: "Incomplete card details"}

	// ErrInvalidCard is returned when the card number fails length or Luhn checks.
	ErrInvalidCard = &Error{Code: CodeInvalidCard, Description: "Card validation failed"}

	// ErrExpiredCard is returned when the card expiry month has passed.
	ErrExpiredCard = &Error{Code: CodeExpiredCard, Description: "Card expired"}

	// ErrInvalidMethod is returned for payment methods other than upi and card.
	ErrInvalidMethod = &Error{Code: CodeInvalidMethod, Description: "method must be one of: upi, card"}

	// ErrListPayments hides storage failures on the listing path.
	ErrListPayments = &Error{Code: CodeInternal, Description: "Failed to fetch payments"}
)
