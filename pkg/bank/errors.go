package bank

import (
	"errors"
)

// Kind is the normalized category of a failed operation.
type Kind int

const (
	// KindUnexpected covers statuses and payloads nothing else recognizes.
	KindUnexpected Kind = iota
	// KindValidation means the input was rejected. Client-side rejections
	// happen before any request is sent.
	KindValidation
	// KindNotFound maps HTTP 404 and "not found" rejections.
	KindNotFound
	// KindConflict maps HTTP 409.
	KindConflict
	// KindInvalidState maps HTTP 400 state precondition failures, such as
	// closing an account twice.
	KindInvalidState
	// KindInsufficientFunds is a 400 whose payload says the balance is too low.
	KindInsufficientFunds
	// KindServer maps HTTP 5xx.
	KindServer
	// KindTransport means no response was received.
	KindTransport
	// KindTimeout is a transport failure caused by the request deadline.
	KindTimeout
)

// String returns the label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	default:
		return "unexpected"
	}
}

// Sentinel errors, one per Kind. Every *Error matches the sentinel of its
// kind with errors.Is; timeouts match ErrTransport as well.
var (
	ErrValidation        = errors.New("bank: validation failed")
	ErrNotFound          = errors.New("bank: not found")
	ErrConflict          = errors.New("bank: conflict")
	ErrInvalidState      = errors.New("bank: invalid state")
	ErrInsufficientFunds = errors.New("bank: insufficient funds")
	ErrServer            = errors.New("bank: server error")
	ErrTransport         = errors.New("bank: transport failure")
	ErrTimeout           = errors.New("bank: request timeout")
	ErrUnexpected        = errors.New("bank: unexpected error")
)

// Error is the error type returned by every mediator operation.
type Error struct {
	// Kind is the normalized category.
	Kind Kind
	// Op is the operation that failed, e.g. "withdraw cash".
	Op string
	// Entity and ID name the record involved, when known.
	Entity string
	ID     string
	// Field is the offending input field for validation failures.
	Field string
	// Status is the HTTP status code, 0 when no response was received.
	Status int
	// Code is the structured error code from the server payload, if any.
	Code string
	// Message is safe to show to an end user.
	Message string
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

// Unwrap exposes the kind sentinel and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 3)
	errs = append(errs, sentinel(e.Kind))
	if e.Kind == KindTimeout {
		errs = append(errs, ErrTransport)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// UserMessage returns the message meant for display.
func (e *Error) UserMessage() string {
	return e.Message
}

func sentinel(k Kind) error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindInvalidState:
		return ErrInvalidState
	case KindInsufficientFunds:
		return ErrInsufficientFunds
	case KindServer:
		return ErrServer
	case KindTransport:
		return ErrTransport
	case KindTimeout:
		return ErrTimeout
	default:
		return ErrUnexpected
	}
}

// NewValidationError builds a client-side validation failure for field.
func NewValidationError(op, field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Op:      op,
		Field:   field,
		Message: message,
	}
}

// KindOf returns the Kind of err. Errors that are not *Error report
// KindUnexpected.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnexpected
}

// UserMessage returns a displayable message for any error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var be *Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return "An unexpected error occurred"
}

// IsValidation checks if err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if err reports a missing customer or account.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if err reports a duplicate.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsInvalidState checks if err reports a state precondition failure.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsInsufficientFunds checks if err reports a balance too low for a withdrawal.
func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsServer checks if err is a 5xx failure.
func IsServer(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsTransport checks if no response was received, timeouts included.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsTimeout checks if the request deadline expired.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// ClassifyError returns a label for err suitable for metrics.
func ClassifyError(err error) string {
	if err == nil {
		return "none"
	}
	return KindOf(err).String()
}
