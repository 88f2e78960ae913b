package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jkimaro/invoice-extractor/internal/entity"
)

// tableScanLines caps how deep the table-header search goes.
const tableScanLines = 30

const maxDescriptionLen = 255

var (
	// A table header line must hit both vocabularies: the broad one admits
	// serial-number style columns, the narrow one keeps lone "Item"/"Sr"
	// mentions from being mistaken for the header.
	reTableBroad  = regexp.MustCompile(`(?i)\b(?:Item|Description|Qty|Quantity|Price|Amount|Value|Sr|S\.N)\b`)
	reTableNarrow = regexp.MustCompile(`(?i)\b(?:Description|Qty|Quantity|Price|Amount|Value)\b`)

	reTableFooter = regexp.MustCompile(`(?i)\b(?:Net\s*Value|Total|Gross\s*Value|Grand\s*Total|VAT|Tax|Payment|Amount\s*Due|Summary)\b`)

	reNumeral      = regexp.MustCompile(`[0-9,]+\.?\d*`)
	reNumeralSpans = regexp.MustCompile(`\s*[0-9,]+\.?\d*\s*`)
	reItemCode     = regexp.MustCompile(`\b(\d{3,6})\b`)
	reAllDigits    = regexp.MustCompile(`^\d+$`)
)

var qtyCeiling = decimal.NewFromInt(1000)

// ParseLineItems locates the item table in residual text and decomposes each
// row into code, description, quantity, rate and value. Rows are consumed
// from just after the table header (or from the top when no header line is
// found) until a footer/summary line fires.
//
// Known precision limit, kept deliberately: only the last three numerals of a
// row are classified. The last is the value; the second-to-last is a quantity
// when it is a positive integral number below 1000, otherwise a unit rate. In
// the rate case the third-to-last gets the same quantity test, covering the
// common "qty rate value" column order. Earlier numerals contribute nothing
// beyond the item-code scan.
func ParseLineItems(text string) []entity.LineItem {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	start := 0
	for i, line := range lines {
		if i == tableScanLines {
			break
		}
		if reTableBroad.MatchString(line) && reTableNarrow.MatchString(line) {
			start = i + 1
			break
		}
	}

	var items []entity.LineItem
	for _, line := range lines[start:] {
		if reTableFooter.MatchString(line) {
			break
		}
		if item, ok := parseRow(line); ok {
			items = append(items, item)
		}
	}
	return items
}

func parseRow(line string) (entity.LineItem, bool) {
	numerals := reNumeral.FindAllString(line, -1)
	if len(numerals) == 0 || len(line) <= 5 {
		return entity.LineItem{}, false
	}

	desc := strings.Join(strings.Fields(reNumeralSpans.ReplaceAllString(line, " ")), " ")
	if len(desc) <= 2 || reAllDigits.MatchString(desc) {
		return entity.LineItem{}, false
	}
	if r := []rune(desc); len(r) > maxDescriptionLen {
		desc = string(r[:maxDescriptionLen])
	}

	item := entity.LineItem{
		Description: desc,
		Qty:         1,
		Value:       ParseAmount(numerals[len(numerals)-1]),
	}

	if len(numerals) >= 2 {
		if d := ParseAmount(numerals[len(numerals)-2]); d != nil {
			if isQty(d) {
				item.Qty = int(d.IntPart())
			} else {
				item.Rate = d
				if len(numerals) >= 3 {
					if q := ParseAmount(numerals[len(numerals)-3]); q != nil && isQty(q) {
						item.Qty = int(q.IntPart())
					}
				}
			}
		}
	}

	if m := reItemCode.FindStringSubmatch(line); m != nil {
		item.ItemCode = m[1]
	}
	return item, true
}

// isQty reports whether a numeral reads as an item count rather than money.
func isQty(d *decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(qtyCeiling) && d.IsInteger()
}
