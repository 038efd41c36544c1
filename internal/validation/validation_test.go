package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paygate/internal/domain"
)

func TestIsValidVPA(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		vpa  string
		want bool
	}{
		{"user@bank", true},
		{"first.last-01_x@okhdfc", true},
		{"user@@bank", false},
		{"no-at-sign", false},
		{"@bank", false},
		{"user@", false},
		{"user@bank.com", false},
		{"us er@bank", false},
		{"", false},
		{strings.Repeat("a", 300) + "@bank", true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.vpa[:min(len(tc.vpa), 32)], func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsValidVPA(tc.vpa))
		})
	}
}

func TestIsValidCardNumber(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		number string
		want   bool
	}{
		{"visa", "4111111111111111", true},
		{"visa bad checksum", "4111111111111112", false},
		{"mastercard", "5500000000000004", true},
		{"amex 15 digits", "378282246310005", true},
		{"spaces stripped", "4111 1111 1111 1111", true},
		{"hyphens stripped", "4111-1111-1111-1111", true},
		{"twelve digits", "411111111111", false},
		{"twenty digits", "41111111111111111113", false},
		{"thirteen zeros", "0000000000000", true},
		{"letters", "4111a11111111111", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsValidCardNumber(tc.number))
		})
	}
}

func TestDetectCardNetwork(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		number string
		want   domain.CardNetwork
	}{
		{"4111111111111111", domain.CardNetworkVisa},
		{"5100000000000000", domain.CardNetworkMastercard},
		{"5500000000000004", domain.CardNetworkMastercard},
		{"5600000000000000", domain.CardNetworkUnknown},
		{"3400000000000000", domain.CardNetworkAmex},
		{"3700000000000000", domain.CardNetworkAmex},
		{"3500000000000000", domain.CardNetworkUnknown},
		{"6000000000000000", domain.CardNetworkRupay},
		{"6500000000000000", domain.CardNetworkRupay},
		{"8100000000000000", domain.CardNetworkRupay},
		{"8900000000000000", domain.CardNetworkRupay},
		{"8000000000000000", domain.CardNetworkUnknown},
		{"1234567812345678", domain.CardNetworkUnknown},
		{"", domain.CardNetworkUnknown},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.number, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, DetectCardNetwork(tc.number))
		})
	}
}

func TestLast4(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1111", Last4("4111 1111 1111 1111"))
	assert.Equal(t, "0005", Last4("378282246310005"))
}

func TestIsValidExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		month string
		year  string
		want  bool
	}{
		{"current month two digit year", "03", "25", true},
		{"current month four digit year", "3", "2025", true},
		{"previous month", "02", "25", false},
		{"previous year", "12", "24", false},
		{"next month", "04", "25", true},
		{"next year earlier month", "01", "26", true},
		{"month thirteen", "13", "26", false},
		{"month zero", "0", "26", false},
		{"non numeric month", "ab", "26", false},
		{"missing year", "03", "", false},
		{"padded with spaces", " 03 ", " 2025 ", true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsValidExpiry(tc.month, tc.year, now))
		})
	}
}
