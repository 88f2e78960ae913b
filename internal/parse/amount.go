// Package parse is the text-parsing core: it turns noisy OCR output into a
// structured invoice header and line items. All functions are pure over their
// input string; heuristic misses yield absent fields, never errors.
package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var reAmountNoise = regexp.MustCompile(`[^0-9.,-]`)

// ParseAmount converts an OCR'd numeral fragment into an exact decimal.
// Every character except digits, dot, comma and minus is stripped, then
// thousands-separator commas are removed. A malformed remainder is an absent
// value (nil), not an error: numeric noise must not abort extraction.
func ParseAmount(s string) *decimal.Decimal {
	cleaned := strings.TrimSpace(reAmountNoise.ReplaceAllString(s, ""))
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(cleaned, ",", ""))
	if err != nil {
		return nil
	}
	return &d
}
