package contour

import "errors"

// Error codes for extraction failures.
const (
	ErrCodeDurationUnavailable = "DURATION_UNAVAILABLE"
	ErrCodeDecodeFailed        = "DECODE_FAILED"
	ErrCodeEmptyExtraction     = "EMPTY_EXTRACTION"
	ErrCodeExtractionInFlight  = "EXTRACTION_IN_FLIGHT"
)

// Error represents a contour extraction error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a contour error.
func NewError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// IsCode reports whether err is a contour error with the given code.
func IsCode(err error, code string) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Code == code
}
