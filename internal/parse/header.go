package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jkimaro/invoice-extractor/internal/entity"
)

// Label-anchored field patterns: <label> [:=\s] <value up to end of line>.
var (
	reInvoiceNo    = labelPattern(`(?:PI\s*(?:No|Number)|Invoice\s*(?:No|Number))`)
	reCodeNo       = labelPattern(`Code\s*(?:No|Number|#)`)
	reDateField    = labelPattern(`Date`)
	reCustomerName = labelPattern(`Customer\s*Name`)
	reAddressField = labelPattern(`Address`)
	reReference    = labelPattern(`Reference`)

	// Adjacent labels bleed onto the same OCR line; anything from one of
	// these words to the end of the captured value is noise.
	reTrailingLabel = regexp.MustCompile(`(?i)\s+(?:Tel|Fax|Del\.|Ref|Date|PI|Cust|Kind|Attended|Type|Payment|Delivery|Remarks)\s*.*$`)

	reCustomerTail = regexp.MustCompile(`(?i)(?:Customer\s*Name|Customer)\s*(?:Name)?(?:\s+Customer)?(?:\s+Name)?$`)
	reCustomerLead = regexp.MustCompile(`(?i)^(?:Customer\s*Name|Customer)\s*(?:Name)?\s*`)

	rePhoneLabel   = regexp.MustCompile(`(?im)(?:Tel\.?|Telephone|Phone)\s*[:=\s]\s*([+\d][\d\s\-/()]{4,}\d)`)
	rePhoneStrip   = regexp.MustCompile(`[^\d+\-()\s/]`)
	reDigit        = regexp.MustCompile(`\d`)
	reProductToken = regexp.MustCompile(`(?i)(?:LT|TR|PCS|NOS|UNT|KG|HR|LTR|BOX|CASE|SETS?|TYRE|TIRE|WHEEL|BRAKE|VALVE|REPAIR|SERVICE)\d`)

	reEmail = regexp.MustCompile(`([\w.-]+@[\w.-]+\.\w+)`)

	reNetValue   = regexp.MustCompile(`(?im)Net\s*(?:Value|Amount)\s*[:=]\s*([0-9,.]+)`)
	reVATValue   = regexp.MustCompile(`(?im)VAT\s*[:=]\s*([0-9,.]+)`)
	reGrossValue = regexp.MustCompile(`(?im)Gross\s*Value\s*[:=]\s*(?:[A-Z]{2,4}\s+)?([0-9,.]+)`)
)

const minPhoneDigits = 7

func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)` + label + `\s*[:=\s]\s*([^\n]+?)(?:\n|$)`)
}

// ParseHeader extracts the scalar invoice fields from residual text (seller
// block already removed). Each field has its own extractor applied
// independently to the same input, so extraction order carries no hidden
// coupling; every field is optional.
func ParseHeader(text string) entity.HeaderRecord {
	return entity.HeaderRecord{
		InvoiceNo:    labeledField(reInvoiceNo, text),
		CodeNo:       labeledField(reCodeNo, text),
		Date:         labeledField(reDateField, text),
		CustomerName: cleanCustomerName(labeledField(reCustomerName, text)),
		Address:      labeledField(reAddressField, text),
		Phone:        extractPhone(text),
		Email:        extractEmail(text),
		Reference:    labeledField(reReference, text),
		NetValue:     amountField(reNetValue, text),
		VAT:          amountField(reVATValue, text),
		GrossValue:   amountField(reGrossValue, text),
	}
}

func labeledField(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := strings.TrimSpace(m[1])
	v = reTrailingLabel.ReplaceAllString(v, "")
	return strings.Join(strings.Fields(v), " ")
}

// cleanCustomerName strips duplicated label words OCR tends to echo around
// the value ("CUSTOMER NAME John Doe Customer" -> "John Doe") and drops a
// trailing token that repeats the leading one.
func cleanCustomerName(v string) string {
	if v == "" {
		return ""
	}
	v = strings.TrimSpace(reCustomerTail.ReplaceAllString(v, ""))
	v = strings.TrimSpace(reCustomerLead.ReplaceAllString(v, ""))
	parts := strings.Fields(v)
	if len(parts) > 1 && strings.EqualFold(parts[0], parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, " ")
}

// extractPhone finds a labeled phone number and validates it: at least
// minPhoneDigits digits after stripping non-phone characters, and not part of
// an OCR'd product specification (a unit/part token such as TYRE or PCS
// directly after the digits disqualifies the match).
func extractPhone(text string) string {
	loc := rePhoneLabel.FindStringSubmatchIndex(text)
	if loc == nil {
		return ""
	}
	candidate := strings.TrimSpace(text[loc[2]:loc[3]])
	digits := rePhoneStrip.ReplaceAllString(candidate, "")
	if len(reDigit.FindAllString(digits, -1)) < minPhoneDigits {
		return ""
	}
	rest := text[loc[3]:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	// only the token directly after the number can disqualify it; unit
	// tokens further along the line are unrelated content
	if fields := strings.Fields(rest); len(fields) > 0 {
		rest = " " + fields[0]
	} else {
		rest = ""
	}
	if reProductToken.MatchString(candidate + rest) {
		return ""
	}
	return candidate
}

// extractEmail returns the first thing shaped like local@domain.tld.
func extractEmail(text string) string {
	if m := reEmail.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func amountField(re *regexp.Regexp, text string) *decimal.Decimal {
	if m := re.FindStringSubmatch(text); m != nil {
		return ParseAmount(m[1])
	}
	return nil
}
