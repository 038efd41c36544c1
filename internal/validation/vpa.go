// Package validation holds the pure checks applied to payment methods before
// any payment is recorded.
package validation

import "regexp"

var vpaPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9]+$`)

// IsValidVPA reports whether vpa looks like a UPI address (name@handle).
func IsValidVPA(vpa string) bool {
	return vpaPattern.MatchString(vpa)
}
