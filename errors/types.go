package errors

// Error codes used across the harness. The numbering follows HTTP status
// classes so codes stay meaningful in logs.
const (
	CodeInvalidConfig = 400
	CodeMismatch      = 409
	CodeInvalidNumber = 422
	CodeInternal      = 500
)

// InvalidConfig reports a configuration value that failed to load or validate
func InvalidConfig(format string, args ...any) *Error {
	return New(CodeInvalidConfig, format, args...)
}

// Mismatch reports two sort strategies disagreeing on the same input
func Mismatch(format string, args ...any) *Error {
	return New(CodeMismatch, format, args...)
}

// InvalidNumber reports a string that does not decode as a signed integer
func InvalidNumber(format string, args ...any) *Error {
	return New(CodeInvalidNumber, format, args...)
}

// Internal reports a failure that carries no domain code of its own
func Internal(format string, args ...any) *Error {
	return New(CodeInternal, format, args...)
}

// IsCode reports whether any *Error in err's chain carries code
func IsCode(err error, code int) bool {
	for err != nil {
		var ge *Error
		if !As(err, &ge) {
			return false
		}
		if ge.Code == code {
			return true
		}
		err = ge.cause
	}
	return false
}
