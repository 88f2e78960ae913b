// Package imgproc prepares uploaded invoice scans for OCR.
package imgproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// minOCRWidth is the width below which small scans are upscaled; tesseract
// accuracy drops sharply on narrow captures.
const minOCRWidth = 1000

// Decoder turns a raw byte buffer into an image. Supported formats follow the
// imaging package: JPEG, PNG, GIF, BMP and TIFF.
type Decoder struct{}

func (Decoder) Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Preprocessor enhances a decoded scan for text recognition: grayscale,
// upscale to a workable width, light denoise, then contrast and sharpening.
// Callers treat a failure here as non-fatal and OCR the original image.
type Preprocessor struct{}

func (Preprocessor) Prepare(img image.Image) (image.Image, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	out := imaging.Grayscale(img)
	if w := out.Bounds().Dx(); w > 0 && w < minOCRWidth {
		out = imaging.Resize(out, minOCRWidth, 0, imaging.Lanczos)
	}
	out = imaging.Blur(out, 0.5)
	out = imaging.AdjustContrast(out, 30)
	out = imaging.Sharpen(out, 1.0)
	return out, nil
}
