package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CurrencySymbol prefixes every formatted price
const CurrencySymbol = "₹"

// priceRunRegex matches the first digit run with optional thousands separators
// and at most one decimal part, e.g. "1,299.50" in "₹1,299.50 (was ₹1,499)"
var priceRunRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice extracts the first numeric run from a locale-formatted price string.
// The boolean is false when no digits are present; callers must treat such a
// price as missing, which sorts after every parsed price.
func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	run := priceRunRegex.FindString(text)
	if run == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(run, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// FormatPrice renders a value as "₹123.45"
func FormatPrice(value float64) string {
	return fmt.Sprintf("%s%.2f", CurrencySymbol, value)
}

// FormatPriceText formats a price string for display. Text that already
// carries the currency symbol is returned unchanged, so the operation is
// idempotent; text without any digits is also returned unchanged.
func FormatPriceText(text string) string {
	if strings.Contains(text, CurrencySymbol) {
		return text
	}
	value, ok := ParsePrice(text)
	if !ok {
		return text
	}
	return FormatPrice(value)
}

// comparePrices orders two package prices ascending with missing prices last
func comparePrices(a float64, aOK bool, b float64, bOK bool) bool {
	switch {
	case aOK && bOK:
		return a < b
	case aOK:
		return true
	default:
		return false
	}
}
