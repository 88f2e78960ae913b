// Package ocr wraps the tesseract binary as a text recognizer for prepared
// invoice images.
package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang string // default "eng"
	PSM  int    // page segmentation mode; default 6, a uniform block of text
	OEM  int    // engine mode; leave 0 for tesseract's default

	TessdataDir string
	ArtifactDir string // staging dir for temp PNGs; default os.TempDir()
}

// Recognizer runs OCR over decoded images by staging them as PNG files and
// shelling out to tesseract through a Runner.
type Recognizer struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewRecognizer(cfg Config, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 6
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = os.TempDir()
	}
	return &Recognizer{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Available reports whether the tesseract binary can be resolved. Callers
// must check this before Recognize; a missing binary is a capability gap,
// not a per-document failure.
func (r *Recognizer) Available() bool {
	_, err := exec.LookPath(r.cfg.Tesseract)
	return err == nil
}

// Recognize stages img as a temporary PNG, runs tesseract on it, and returns
// the normalized text.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	path, cleanup, err := r.stagePNG(img)
	if err != nil {
		return "", err
	}
	defer cleanup()

	args := []string{path, "stdout", "-l", r.cfg.Lang, "--psm", strconv.Itoa(r.cfg.PSM)}
	if r.cfg.OEM > 0 {
		args = append(args, "--oem", strconv.Itoa(r.cfg.OEM))
	}
	if r.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", r.cfg.TessdataDir)
	}

	out, errb, err := r.runner.Run(ctx, r.cfg.Tesseract, args...)
	if err != nil {
		r.logger.Error("ocr.tesseract.failed", "error", err, "stderr", truncate(string(errb), 2<<10))
		return "", fmt.Errorf("tesseract: %w", err)
	}

	txt := reBoxNoise.ReplaceAllString(string(out), "")
	return Normalize(txt), nil
}

func (r *Recognizer) stagePNG(img image.Image) (string, func(), error) {
	if img == nil {
		return "", nil, fmt.Errorf("nil image")
	}
	f, err := os.CreateTemp(r.cfg.ArtifactDir, "invoice-ocr-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("stage image: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("encode staged png: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close staged png: %w", err)
	}
	return f.Name(), cleanup, nil
}
