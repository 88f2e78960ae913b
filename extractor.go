// Package invoiceextractor turns scanned invoice images into structured
// business records. The single entry point is Service.Extract: raw file
// bytes in, a uniform ExtractionResult envelope out. See internal/parse for
// the text heuristics and internal/extract for the pipeline.
package invoiceextractor

import (
	"log/slog"

	"github.com/jkimaro/invoice-extractor/internal/async"
	"github.com/jkimaro/invoice-extractor/internal/common"
	"github.com/jkimaro/invoice-extractor/internal/extract"
	"github.com/jkimaro/invoice-extractor/internal/imgproc"
	"github.com/jkimaro/invoice-extractor/internal/ocr"
)

// New wires the default collaborators: imaging-based decode and OCR
// preprocessing plus a tesseract-backed recognizer. A nil cfg loads
// configuration from the environment.
func New(cfg *common.Config, logger *slog.Logger) *extract.Service {
	if cfg == nil {
		cfg = common.LoadConfig()
	}
	rec := ocr.NewRecognizer(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		PSM:         cfg.OCR.PSM,
		OEM:         cfg.OCR.OEM,
		TessdataDir: cfg.OCR.TessdataDir,
		ArtifactDir: cfg.OCR.ArtifactDir,
	}, logger)
	return extract.NewService(imgproc.Decoder{}, imgproc.Preprocessor{}, rec, logger)
}

// NewQueue builds a worker queue around svc for serving contexts; finished
// envelopes are delivered to sink.
func NewQueue(svc async.Extractor, sink async.ResultSink, cfg *common.Config, logger *slog.Logger) *async.ExtractQueue {
	if cfg == nil {
		cfg = common.LoadConfig()
	}
	return async.NewExtractQueue(svc, sink, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.Size),
		async.WithExtractTimeout(cfg.Queue.ExtractTimeout),
	)
}
