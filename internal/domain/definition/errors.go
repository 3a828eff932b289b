package definition

import (
	"errors"
	"fmt"

	"github.com/zjrosen/defreg/internal/domain/descriptor"
)

// Sentinels matched by the typed errors below.
var (
	ErrDefinitionNotFound = errors.New("definition not found")
	ErrInvalidDefinition  = errors.New("invalid definition")
	ErrNoAccess           = errors.New("no access")
)

// NotFoundError reports a descriptor no collaborator could locate.
type NotFoundError struct {
	Descriptor descriptor.Descriptor
	// Referrer is the definition that referenced the missing one, if any.
	Referrer descriptor.Descriptor
}

// NewNotFound builds a NotFoundError for d.
func NewNotFound(d descriptor.Descriptor) *NotFoundError {
	return &NotFoundError{Descriptor: d}
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("No %s named %s found", e.Descriptor.DefType, e.Descriptor.QualifiedName())
	if !e.Referrer.IsZero() {
		msg += fmt.Sprintf(" (referenced by %s)", e.Referrer)
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrDefinitionNotFound
}

// InvalidDefinitionError reports a structural or reference validation failure.
type InvalidDefinitionError struct {
	Descriptor descriptor.Descriptor
	Message    string
	Cause      error
}

// NewInvalid builds an InvalidDefinitionError with a formatted message.
func NewInvalid(d descriptor.Descriptor, format string, args ...any) *InvalidDefinitionError {
	return &InvalidDefinitionError{Descriptor: d, Message: fmt.Sprintf(format, args...)}
}

// WrapInvalid builds an InvalidDefinitionError around an underlying cause.
func WrapInvalid(d descriptor.Descriptor, cause error, format string, args ...any) *InvalidDefinitionError {
	return &InvalidDefinitionError{Descriptor: d, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *InvalidDefinitionError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Descriptor.IsZero() {
		return msg
	}
	return fmt.Sprintf("%s [%s]", msg, e.Descriptor)
}

func (e *InvalidDefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

func (e *InvalidDefinitionError) Unwrap() error {
	return e.Cause
}

// NoAccessError reports a denied reference. Message is the cached verdict.
type NoAccessError struct {
	Message string
}

// NewNoAccess builds a NoAccessError.
func NewNoAccess(message string) *NoAccessError {
	return &NoAccessError{Message: message}
}

func (e *NoAccessError) Error() string {
	return e.Message
}

func (e *NoAccessError) Is(target error) bool {
	return target == ErrNoAccess
}

// IsNotFoundFor reports whether err is a NotFoundError for exactly d.
func IsNotFoundFor(err error, d descriptor.Descriptor) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Descriptor == d
}
