package validation

import (
	"strings"
	"unicode"

	"paygate/internal/domain"
)

const (
	minCardDigits = 13
	maxCardDigits = 19
)

// NormalizeCardNumber strips whitespace and hyphens from a card number.
func NormalizeCardNumber(number string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, number)
}

// IsValidCardNumber reports whether number has 13-19 digits once normalized
// and passes the Luhn checksum.
func IsValidCardNumber(number string) bool {
	digits := NormalizeCardNumber(number)
	if len(digits) < minCardDigits || len(digits) > maxCardDigits {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return luhn(digits)
}

// luhn expects an all-digit string.
func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		n := int(digits[i] - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// DetectCardNetwork classifies a card number by its leading digits.
func DetectCardNetwork(number string) domain.CardNetwork {
	digits := NormalizeCardNumber(number)

	switch {
	case strings.HasPrefix(digits, "4"):
		return domain.CardNetworkVisa
	case hasPrefixInRange(digits, '5', '1', '5'):
		return domain.CardNetworkMastercard
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return domain.CardNetworkAmex
	case strings.HasPrefix(digits, "60"), strings.HasPrefix(digits, "65"),
		hasPrefixInRange(digits, '8', '1', '9'):
		return domain.CardNetworkRupay
	default:
		return domain.CardNetworkUnknown
	}
}

// hasPrefixInRange reports whether s starts with first followed by a digit in [lo, hi].
func hasPrefixInRange(s string, first, lo, hi byte) bool {
	return len(s) >= 2 && s[0] == first && s[1] >= lo && s[1] <= hi
}

// Last4 returns the last four digits of a normalized card number.
func Last4(number string) string {
	digits := NormalizeCardNumber(number)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
