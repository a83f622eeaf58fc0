package codes

import "fmt"

// A Code is an unsigned 32-bit error code.
type Code uint32

const (
	// To add new codes always add them at the end, to not break iota

	// Success indicates no error.
	Success Code = iota

	// InvalidToken is returned when the access token is invalid or has expired.
	InvalidToken

	// Unauthenticated is returned when authentication is needed for execution.
	Unauthenticated

	// BadAuthenticationData is returned when the authentication fails.
	BadAuthenticationData

	// BadInputData is returned when the input parameters are not valid.
	BadInputData

	// Internal is returned when there is an unexpected/undesired problem.
	Internal

	// NotFound is returned when something cannot be found.
	NotFound

	// VersioningFailure is returned when version tracking cannot be
	// enabled or read for a node.
	VersioningFailure
)

// String returns a string representation of the Code.
func (c Code) String() string {
	switch c {
	case InvalidToken:
		return "invalid or expired token"
	case Unauthenticated:
		return "unauthenticated request"
	case BadAuthenticationData:
		return "bad authentication data"
	case BadInputData:
		return "bad input data"
	case Internal:
		return "internal error"
	case NotFound:
		return "not found"
	case VersioningFailure:
		return "versioning failure"
	default:
		return "FIXME: this should be a helpful message"
	}
}

// An Err reports more details on an individual error.
type Err struct {
	Message string `json:"message"`
	Code    Code   `json:"code"`
}

// Error implements the error interface.
func (e *Err) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewErr is a useful function to create Errs with the corresponding Code message.
// If no message is passed, the default code message will be used.
func NewErr(c Code, msg string) *Err {
	if msg == "" {
		msg = c.String()
	}
	return &Err{msg, c}
}
