// Package export renders extraction results as XLSX workbooks for manual
// review, entirely in memory.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jkimaro/invoice-extractor/internal/entity"
)

const (
	headerSheet = "Header"
	itemsSheet  = "Items"
)

// Service produces XLSX bytes from a successful ExtractionResult.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// InvoiceXLSX returns a two-sheet workbook: header fields as label/value
// pairs and one row per line item. Failed extractions cannot be exported.
func (s *Service) InvoiceXLSX(res entity.ExtractionResult) ([]byte, error) {
	if !res.Success {
		return nil, fmt.Errorf("cannot export failed extraction: %s", res.ErrorKind)
	}
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", headerSheet); err != nil {
		return nil, err
	}

	h := res.Header
	pairs := []struct {
		label string
		value string
	}{
		{"Invoice No", h.InvoiceNo},
		{"Code No", h.CodeNo},
		{"Date", h.Date},
		{"Customer Name", h.CustomerName},
		{"Address", h.Address},
		{"Phone", h.Phone},
		{"Email", h.Email},
		{"Reference", h.Reference},
		{"Net Value", amountString(h.NetValue)},
		{"VAT", amountString(h.VAT)},
		{"Gross Value", amountString(h.GrossValue)},
		{"Seller Name", h.Seller.Name},
		{"Seller Address", h.Seller.Address},
		{"Seller Phone", h.Seller.Phone},
		{"Seller Email", h.Seller.Email},
		{"Seller Tax ID", h.Seller.TaxID},
		{"Seller VAT Reg", h.Seller.VATRegistration},
	}
	for i, p := range pairs {
		row := i + 1
		setCell(f, headerSheet, 1, row, p.label)
		setCell(f, headerSheet, 2, row, p.value)
	}

	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, err
	}
	for col, title := range []string{"Item Code", "Description", "Qty", "Rate", "Value"} {
		setCell(f, itemsSheet, col+1, 1, title)
	}
	for i, item := range res.Items {
		row := i + 2
		setCell(f, itemsSheet, 1, row, item.ItemCode)
		setCell(f, itemsSheet, 2, row, item.Description)
		setCell(f, itemsSheet, 3, row, item.Qty)
		setCell(f, itemsSheet, 4, row, amountString(item.Rate))
		setCell(f, itemsSheet, 5, row, amountString(item.Value))
	}

	_ = f.SetColWidth(headerSheet, "A", "A", 18)
	_ = f.SetColWidth(headerSheet, "B", "B", 40)
	_ = f.SetColWidth(itemsSheet, "B", "B", 48)
	_ = f.SetColWidth(itemsSheet, "C", "E", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"items", len(res.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = f.SetCellValue(sheet, cell, v)
}

// amountString renders money with a fixed two-decimal scale so review sheets
// show "105500.00" rather than a trimmed "105500".
func amountString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
