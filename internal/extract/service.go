// Package extract orchestrates the invoice pipeline: decode, preprocess,
// OCR, then text parsing, with every outcome folded into a uniform
// ExtractionResult envelope. No error escapes as a Go error; callers branch
// on Success and ErrorKind.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jkimaro/invoice-extractor/constants"
	"github.com/jkimaro/invoice-extractor/internal/entity"
	"github.com/jkimaro/invoice-extractor/internal/parse"
)

// Service runs one document end to end per Extract call. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	decoder ImageDecoder
	prep    Preprocessor
	ocr     TextRecognizer
	logger  *slog.Logger
}

func NewService(decoder ImageDecoder, prep Preprocessor, ocr TextRecognizer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{decoder: decoder, prep: prep, ocr: ocr, logger: logger}
}

// Extract takes the raw bytes of an uploaded file and returns the extraction
// envelope. Stages run in order with no retries: capability check, image
// decode, preprocessing (degrades to the raw image), OCR, parsing (degrades
// to raw text only). Cancellation is the caller's concern; an expired ctx
// surfaces through the recognizer as ocr_failed.
func (s *Service) Extract(ctx context.Context, fileBytes []byte) entity.ExtractionResult {
	id := uuid.New()
	start := time.Now()

	if s.ocr == nil || !s.ocr.Available() {
		s.logger.Warn("extract.ocr.unavailable", "extraction_id", id)
		return failure(constants.ErrorKindOCRUnavailable,
			"OCR extraction is not available in this environment; enter invoice details manually.")
	}

	img, err := s.decoder.Decode(fileBytes)
	if err != nil {
		s.logger.Warn("extract.decode.failed", "extraction_id", id, "error", err)
		return failure(constants.ErrorKindInvalidImage,
			fmt.Sprintf("could not open file as image: %v", err))
	}

	prepared := img
	if s.prep != nil {
		if p, err := s.prep.Prepare(img); err != nil {
			s.logger.Warn("extract.preprocess.degraded", "extraction_id", id, "error", err)
		} else {
			prepared = p
		}
	}

	text, err := s.ocr.Recognize(ctx, prepared)
	if err != nil {
		s.logger.Error("extract.ocr.failed", "extraction_id", id, "error", err)
		return failure(constants.ErrorKindOCRFailed,
			fmt.Sprintf("OCR extraction failed: %v; enter invoice details manually.", err))
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Error("extract.ocr.empty", "extraction_id", id)
		return failure(constants.ErrorKindOCRFailed,
			"OCR produced no text; enter invoice details manually.")
	}

	header, items := s.parseText(id, text)

	s.logger.Info("extract.ok",
		"extraction_id", id,
		"raw_bytes", len(text),
		"items", len(items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return entity.ExtractionResult{
		Success:      true,
		Header:       header,
		Items:        items,
		RawText:      text,
		OCRAvailable: true,
	}
}

// parseText runs the parsing core. A panic inside the heuristics degrades to
// an empty header and item list while the raw OCR text still ships in the
// envelope: partial text remains actionable by a human reviewer, so parse
// trouble is not a failed extraction.
func (s *Service) parseText(id uuid.UUID, text string) (header entity.HeaderRecord, items []entity.LineItem) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("extract.parse.degraded", "extraction_id", id, "panic", r)
			header = entity.HeaderRecord{}
			items = nil
		}
	}()

	seller, residual := parse.DetectSellerBlock(text)
	header = parse.ParseHeader(residual)
	header.Seller = seller
	items = parse.ParseLineItems(residual)
	return header, items
}

func failure(kind constants.ErrorKind, msg string) entity.ExtractionResult {
	return entity.ExtractionResult{
		Success:      false,
		ErrorKind:    kind,
		Message:      msg,
		OCRAvailable: false,
	}
}
