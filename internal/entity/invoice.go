package entity

import (
	"github.com/shopspring/decimal"

	"github.com/jkimaro/invoice-extractor/constants"
)

// SellerFields identifies the invoice issuer, recovered from the
// top-of-document seller block. Empty string means the field was not found.
type SellerFields struct {
	Name            string `json:"seller_name,omitempty"`
	Address         string `json:"seller_address,omitempty"`
	Phone           string `json:"seller_phone,omitempty"`
	Email           string `json:"seller_email,omitempty"`
	TaxID           string `json:"seller_tax_id,omitempty"`
	VATRegistration string `json:"seller_vat_reg,omitempty"`
}

// HeaderRecord holds the scalar (non-tabular) fields of an invoice.
// Monetary fields are decimals, never floats; nil means absent.
type HeaderRecord struct {
	Seller       SellerFields     `json:"seller"`
	InvoiceNo    string           `json:"invoice_no,omitempty"`
	CodeNo       string           `json:"code_no,omitempty"`
	Date         string           `json:"date,omitempty"`
	CustomerName string           `json:"customer_name,omitempty"`
	Address      string           `json:"address,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Reference    string           `json:"reference,omitempty"`
	NetValue     *decimal.Decimal `json:"net_value,omitempty"`
	VAT          *decimal.Decimal `json:"vat,omitempty"`
	GrossValue   *decimal.Decimal `json:"gross_value,omitempty"`
}

// LineItem is one row of the itemized goods/services table.
type LineItem struct {
	ItemCode    string           `json:"item_code,omitempty"`
	Description string           `json:"description"` // never empty, at most 255 chars
	Qty         int              `json:"qty"`         // >= 1, defaults to 1
	Rate        *decimal.Decimal `json:"rate,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
}

// ExtractionResult is the uniform envelope returned for every extraction
// attempt. Invariants: Success == false implies Header and Items are empty;
// Success == true implies RawText is non-empty (OCR produced something, even
// when parsing extracted nothing).
type ExtractionResult struct {
	Success      bool                `json:"success"`
	ErrorKind    constants.ErrorKind `json:"error,omitempty"`
	Message      string              `json:"message,omitempty"`
	Header       HeaderRecord        `json:"header"`
	Items        []LineItem          `json:"items"`
	RawText      string              `json:"raw_text"`
	OCRAvailable bool                `json:"ocr_available"`
}
