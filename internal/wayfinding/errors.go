package wayfinding

// Code is a machine-readable validation error code.
type Code string

const (
	CodeInvalidLatitude  Code = "INVALID_LATITUDE"
	CodeInvalidLongitude Code = "INVALID_LONGITUDE"
	CodeInvalidHeading   Code = "INVALID_HEADING"
	CodeInvalidRadius    Code = "INVALID_RADIUS"
	CodeUnknownCategory  Code = "UNKNOWN_CATEGORY"
)

// Error is returned by the opt-in validators.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}
