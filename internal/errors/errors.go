// Package errors defines stable error codes for the roam CLI and
// analysis engines. Absence of data is never an error: empty inputs
// produce empty results, and lookups that miss produce structured
// not-found results. These codes cover the remaining failure modes.
package errors

import "fmt"

// Code is a stable, machine-readable error code.
type Code string

const (
	// IndexMissing indicates no index database was found for the repo.
	IndexMissing Code = "INDEX_MISSING"
	// SymbolNotFound indicates a requested symbol name has no match.
	SymbolNotFound Code = "SYMBOL_NOT_FOUND"
	// SymbolAmbiguous indicates a name matched multiple symbols and no
	// candidate could be preferred by reference count.
	SymbolAmbiguous Code = "SYMBOL_AMBIGUOUS"
	// FileNotFound indicates a requested file path has no match.
	FileNotFound Code = "FILE_NOT_FOUND"
	// InvalidArgument indicates a programmer-error-class input such as a
	// negative hop cap.
	InvalidArgument Code = "INVALID_ARGUMENT"
	// Internal indicates an unexpected failure.
	Internal Code = "INTERNAL_ERROR"
)

// RoamError carries a code, a human message and optional structured
// details (for example the candidate list of an ambiguous lookup).
type RoamError struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates a RoamError.
func New(code Code, message string, cause error) *RoamError {
	return &RoamError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *RoamError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *RoamError) Unwrap() error { return e.cause }

// WithDetails attaches structured details and returns the error.
func (e *RoamError) WithDetails(details interface{}) *RoamError {
	e.Details = details
	return e
}

// CodeOf extracts the code from an error, or Internal for foreign errors.
func CodeOf(err error) Code {
	if re, ok := err.(*RoamError); ok {
		return re.Code
	}
	return Internal
}
