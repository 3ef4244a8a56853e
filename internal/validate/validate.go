package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	reUsername = regexp.MustCompile(`^[A-Za-z0-9._-]{3,32}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

const (
	maxNameLen = 60
	maxQty     = 999
)

var maxPrice = decimal.NewFromInt(100000)

// ProductName trims and bounds a menu item name.
func ProductName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxNameLen {
		return "", false
	}
	return s, true
}

// Price parses a positive amount with at most two decimals. A comma is
// accepted as the decimal separator.
func Price(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() || d.GreaterThan(maxPrice) || !d.Equal(d.Truncate(2)) {
		return decimal.Zero, false
	}
	return d, true
}

// Tendered parses a payment amount; zero is allowed, negatives are not.
func Tendered(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || !d.Equal(d.Truncate(2)) {
		return decimal.Zero, false
	}
	return d, true
}

// Qty parses a cart quantity. Out-of-range values are rejected, not clamped.
func Qty(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || !QtyInRange(n) {
		return 0, false
	}
	return n, true
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	return l >= 1 && l <= 72
}

// StrongPassword is required when creating users.
func StrongPassword(s string) bool {
	l := len(s)
	if l < 8 || l > 72 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

func QtyInRange(n int) bool { return n >= 1 && n <= maxQty }

// ID validates a resource identifier (product ids, session ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
