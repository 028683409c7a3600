package chronoid

import "fmt"

// Error is a chrono-id validation error with a machine-readable code and a
// human-readable message. All errors are synchronous, local, and
// non-retryable: parsing either fully succeeds or fails with one of these.
type Error struct {
	// Code identifies the error class (e.g., "TimestampUnderflow").
	Code string
	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two *Error values by code, so errors.Is(err, ErrTimestampUnderflow)
// holds for underflow errors regardless of which epoch date the message names.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Pre-defined errors for the fixed error taxonomy.
var (
	// ErrNullInput is returned when the input string is empty.
	ErrNullInput = &Error{
		Code:    "NullOrEmptyInput",
		Message: "Input string is null or empty",
	}

	// ErrInvalidFormat is returned when an ISO 8601 string is malformed.
	ErrInvalidFormat = &Error{
		Code:    "InvalidFormat",
		Message: "Invalid ISO 8601 format",
	}

	// ErrTimestampUnderflow is returned when an instant precedes the Unix
	// epoch or the variant's configured epoch. Concrete instances carry a
	// message naming the violated epoch date; match with errors.Is.
	ErrTimestampUnderflow = &Error{
		Code:    "TimestampUnderflow",
		Message: "Timestamp underflow",
	}

	// ErrHexFormat is returned when a hex string has the wrong length or
	// contains non-hex characters.
	ErrHexFormat = &Error{
		Code:    "HexFormatError",
		Message: "Invalid hex format",
	}
)

// unixUnderflow reports an instant before the Unix epoch.
func unixUnderflow() *Error {
	return &Error{
		Code:    "TimestampUnderflow",
		Message: "Timestamp underflow: Date is before Unix Epoch (1970-01-01)",
	}
}

// epochUnderflow reports an instant before the variant's configured epoch.
// Variants with a zero epoch reuse the Unix epoch wording.
func epochUnderflow(epochDate string) *Error {
	if epochDate == "1970-01-01" {
		return unixUnderflow()
	}
	return &Error{
		Code:    "TimestampUnderflow",
		Message: fmt.Sprintf("Timestamp underflow: Date is before Epoch (%s)", epochDate),
	}
}

// hexFormatError reports a malformed hex string for the named variant.
func hexFormatError(variant, input string) *Error {
	return &Error{
		Code:    "HexFormatError",
		Message: fmt.Sprintf("Invalid hex format for %s: %q", variant, input),
	}
}
