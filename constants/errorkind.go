package constants

// ErrorKind is the canonical failure category reported in an extraction
// envelope. Callers branch on these values, never on Go errors.
type ErrorKind string

// Stable values (serialized as-is in the envelope).
const (
	ErrorKindNone           ErrorKind = ""                // success or degraded-but-usable
	ErrorKindOCRUnavailable ErrorKind = "ocr_unavailable" // tesseract cannot be resolved
	ErrorKindInvalidImage   ErrorKind = "invalid_image"   // bytes are not a decodable image
	ErrorKindOCRFailed      ErrorKind = "ocr_failed"      // the OCR engine itself errored
)
