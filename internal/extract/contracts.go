package extract

import (
	"context"
	"image"
)

// ImageDecoder is the first collaborator: uploaded bytes -> decoded image.
type ImageDecoder interface {
	Decode(data []byte) (image.Image, error)
}

// Preprocessor prepares a decoded image for OCR. It is never expected to
// fail fatally; on error the orchestrator falls back to the unprepared image.
type Preprocessor interface {
	Prepare(img image.Image) (image.Image, error)
}

// TextRecognizer is the OCR boundary: prepared image -> raw text. Available
// is a capability probe checked before any per-document work happens.
type TextRecognizer interface {
	Available() bool
	Recognize(ctx context.Context, img image.Image) (string, error)
}
