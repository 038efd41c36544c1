package validation

import (
	"strconv"
	"strings"
	"time"
)

// IsValidExpiry reports whether a card expiring in month/year is still usable
// at now. Cards stay valid through the whole expiry month. Two-digit years are
// taken as 20xx.
func IsValidExpiry(month, year string, now time.Time) bool {
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return false
	}

	y, err := strconv.Atoi(year)
	if err != nil || y < 0 {
		return false
	}
	if len(year) == 2 {
		y += 2000
	}

	if y != now.Year() {
		return y > now.Year()
	}
	return m >= int(now.Month())
}
