package notify

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed dispatch.
type ErrorKind string

const (
	KindIdentityNotResolvable    ErrorKind = "IdentityNotResolvable"
	KindUnsupportedEventType     ErrorKind = "UnsupportedEventType"
	KindMissingRequiredField     ErrorKind = "MissingRequiredField"
	KindTemplateGenerationFailed ErrorKind = "TemplateGenerationFailed"
	KindInvalidAddress           ErrorKind = "InvalidAddress"
	KindDeliveryFailed           ErrorKind = "DeliveryFailed"
	KindUnknown                  ErrorKind = "Unknown"
)

// Error is the typed failure produced by every pipeline stage.
type Error struct {
	Kind      ErrorKind
	EventType EventType
	Field     string
	Msg       string
	Err       error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind carried by err, Unknown for foreign errors and ""
// for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ─── Constructors ───

func errIdentity(msg string, cause error) *Error {
	return &Error{Kind: KindIdentityNotResolvable, Msg: msg, Err: cause}
}

func errUnsupported(et EventType) *Error {
	return &Error{
		Kind:      KindUnsupportedEventType,
		EventType: et,
		Msg:       fmt.Sprintf("unsupported event type %q", string(et)),
	}
}

func errMissing(et EventType, field string) *Error {
	return &Error{
		Kind:      KindMissingRequiredField,
		EventType: et,
		Field:     field,
		Msg:       fmt.Sprintf("%s requires %s", et, field),
	}
}

func errTemplate(et EventType, cause error) *Error {
	return &Error{
		Kind:      KindTemplateGenerationFailed,
		EventType: et,
		Msg:       fmt.Sprintf("%s: %v", et, cause),
		Err:       cause,
	}
}

func errDelivery(kind ErrorKind, et EventType, msg string) *Error {
	return &Error{Kind: kind, EventType: et, Msg: msg}
}

func errPanic(v any) *Error {
	return &Error{Kind: KindUnknown, Msg: fmt.Sprintf("internal error: %v", v)}
}
