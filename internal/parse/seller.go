package parse

import (
	"regexp"
	"strings"

	"github.com/jkimaro/invoice-extractor/internal/entity"
)

// sellerScanLines caps how far into the document the seller block may reach.
const sellerScanLines = 8

// defaultSplit is used when no document-structure keyword is found near the
// top: assume the first couple of lines belong to the seller.
const defaultSplit = 2

var (
	reDocKeyword = regexp.MustCompile(`(?i)Proforma|Invoice\b|PI\b|Customer\b|Bill\s*To|Date\b|Customer\s*Reference|Invoice\s*No|Code`)

	reSellerPhone = regexp.MustCompile(`(?i)(?:Tel\.?|Telephone|Phone)[:\s]*([+\d][\d\s\-/(),]{4,}\d)`)
	reSellerEmail = regexp.MustCompile(`([\w.-]+@[\w.-]+\.\w+)`)
	reSellerTaxID = regexp.MustCompile(`(?i)(?:Tax\s*ID|Tax\s*No\.?|Tax\s*Number)[:\s]*([A-Z0-9/-]+)`)
	reSellerVAT   = regexp.MustCompile(`(?i)(?:VAT\s*Reg\.?|VAT\s*No\.?|VAT)[:\s]*([A-Z0-9/-]+)`)
)

// DetectSellerBlock isolates the top-of-document seller/supplier block and
// returns it alongside the residual text, so seller contact details are not
// misread as customer fields downstream.
//
// The first non-blank line before the split point becomes the seller name,
// the rest join into the address. The split point is the first of the top
// lines matching a document-structure keyword (Invoice, Customer, Date, ...),
// defaulting to the lesser of 2 and the number of available lines. Detection
// never fails: when nothing usable is found the input comes back unchanged
// with zero SellerFields.
func DetectSellerBlock(text string) (entity.SellerFields, string) {
	var top []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			top = append(top, trimmed)
			if len(top) == sellerScanLines {
				break
			}
		}
	}

	split := -1
	for i, line := range top {
		if reDocKeyword.MatchString(line) {
			split = i
			break
		}
	}
	if split < 0 {
		split = min(defaultSplit, len(top))
	}
	if split == 0 {
		return entity.SellerFields{}, text
	}

	sellerLines := top[:split]
	seller := entity.SellerFields{Name: sellerLines[0]}
	if len(sellerLines) > 1 {
		seller.Address = strings.Join(sellerLines[1:], " ")
	}

	block := strings.Join(sellerLines, "\n")
	if m := reSellerPhone.FindStringSubmatch(block); m != nil {
		seller.Phone = strings.TrimSpace(m[1])
	}
	if m := reSellerEmail.FindStringSubmatch(block); m != nil {
		seller.Email = strings.TrimSpace(m[1])
	}
	if m := reSellerTaxID.FindStringSubmatch(block); m != nil {
		seller.TaxID = strings.TrimSpace(m[1])
	}
	if m := reSellerVAT.FindStringSubmatch(block); m != nil {
		seller.VATRegistration = strings.TrimSpace(m[1])
	}

	// Splice the block out of the working text (first occurrence only). When
	// the block cannot be located verbatim the original text stands.
	residual := strings.Replace(text, block, "", 1)
	return seller, residual
}
