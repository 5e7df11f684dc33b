package client

import "fmt"

// Kind classifies API failures so callers can branch without parsing
// messages.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindConflict          Kind = "conflict"
	KindNetwork           Kind = "network"
	KindServer            Kind = "server"
)

type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code, zero for client-side errors.
	Status int
	// Fields holds per-field validation messages when the server
	// returned them.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errKind(err error, kind Kind) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == kind
}

func IsValidation(err error) bool        { return errKind(err, KindValidation) }
func IsUnauthorized(err error) bool      { return errKind(err, KindUnauthorized) }
func IsForbidden(err error) bool         { return errKind(err, KindForbidden) }
func IsNotFound(err error) bool          { return errKind(err, KindNotFound) }
func IsInvalidTransition(err error) bool { return errKind(err, KindInvalidTransition) }
func IsConflict(err error) bool          { return errKind(err, KindConflict) }
func IsNetwork(err error) bool           { return errKind(err, KindNetwork) }
func IsServer(err error) bool            { return errKind(err, KindServer) }
