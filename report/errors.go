package report

import (
	"fmt"
	"runtime/debug"
)

// Kind classifies a compilation error.
type Kind int

// Enumeration of error kinds.
const (
	// KindSyntax indicates the input text failed to parse.
	KindSyntax Kind = iota

	// KindType indicates the input parsed but was semantically invalid: a
	// width mismatch, an unresolvable identifier, an illegal assignment, etc.
	KindType

	// KindValue indicates something required a compile-time-constant value
	// that could not be resolved.
	KindValue

	// KindDuplicateSym indicates a strict symbol definition found an existing
	// binding for the same name.
	KindDuplicateSym

	// KindInternal indicates a compiler defect: an unsupported construct or
	// invariant violation inside the compiler itself.  Never a property of
	// the input.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindType:
		return "type error"
	case KindValue:
		return "value error"
	case KindDuplicateSym:
		return "duplicate symbol"
	default:
		return "internal error"
	}
}

// Error is a structured compilation error.  All failures surfaced by the
// compiler are values of this type so that embedding tools (doc generators,
// language servers) can build diagnostics without string scraping.
type Error struct {
	// The kind of failure.  Must be one of the enumerated kinds.
	Kind Kind

	// The name of the unit the error occurred in: a file path for file
	// units, or a caller-supplied description (eg. the enclosing function or
	// instruction name) for embedded units.
	Unit string

	// The span over which the error occurs.  May be nil if no position
	// information is available.
	Span *TextSpan

	// The error message.
	Message string

	// Backtrace is the captured call stack for internal errors.  Nil for all
	// other kinds.
	Backtrace []byte
}

func (e *Error) Error() string {
	if e.Span == nil {
		return fmt.Sprintf("%s: %s: %s", e.Unit, e.Kind, e.Message)
	}

	return fmt.Sprintf(
		"%s:%d:%d: %s: %s",
		e.Unit, e.Span.StartLine+1, e.Span.StartCol+1, e.Kind, e.Message,
	)
}

// Raise creates a new compilation error of the given kind.
func Raise(kind Kind, span *TextSpan, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Span: span, Message: fmt.Sprintf(msg, args...)}
}

// RaiseInternal creates a new internal error carrying the current call stack.
func RaiseInternal(span *TextSpan, msg string, args ...interface{}) *Error {
	return &Error{
		Kind:      KindInternal,
		Span:      span,
		Message:   fmt.Sprintf(msg, args...),
		Backtrace: debug.Stack(),
	}
}

// -----------------------------------------------------------------------------

// Catch recovers a panicked *Error raised during a compilation pass and
// stores it in *err after tagging it with the unit name.  Any other panic is
// converted into an internal error with a backtrace.
// NB: This function must ALWAYS be deferred.
func Catch(unit string, err *error) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*Error); ok {
			if cerr.Unit == "" {
				cerr.Unit = unit
			}

			*err = cerr
			return
		}

		*err = &Error{
			Kind:      KindInternal,
			Unit:      unit,
			Message:   fmt.Sprint(x),
			Backtrace: debug.Stack(),
		}
	}
}
