package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate  Phase = "validate"  // call shape and option checks
	PhaseEvaluate  Phase = "evaluate"  // integrand invocation and result marshaling
	PhaseIntegrate Phase = "integrate" // kernel work
	PhaseLoad      Phase = "load"      // integrand module loading
	PhaseHost      Phase = "host"      // host binding argument handling
)

// Kind categorizes the error
type Kind string

const (
	KindArity        Kind = "arity"
	KindTypeMismatch Kind = "type_mismatch"
	KindFieldUnknown Kind = "field_unknown"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindOutOfRange   Kind = "out_of_range"
	KindNotComplex   Kind = "not_complex"
	KindDivergent    Kind = "divergent"
	KindNonFinite    Kind = "non_finite"
	KindInvalidData  Kind = "invalid_data"
)

// Class is the coarse error taxonomy exposed to host bindings.
type Class string

const (
	ClassContract    Class = "contract"
	ClassValueDomain Class = "value"
	ClassInternal    Class = "internal"
)

// Class reports which taxonomy bucket the kind belongs to.
func (k Kind) Class() Class {
	switch k {
	case KindArity, KindTypeMismatch, KindFieldUnknown, KindInvalidInput, KindNotFound:
		return ClassContract
	case KindOutOfRange, KindNotComplex, KindDivergent, KindNonFinite:
		return ClassValueDomain
	default:
		return ClassInternal
	}
}

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Method string
	GoType string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Method != "" {
		b.WriteString(" in ")
		b.WriteString(e.Method)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Class returns the taxonomy bucket of the error's kind.
func (e *Error) Class() Class {
	return e.Kind.Class()
}

// ClassOf returns the class of the first *Error in err's chain.
// Errors that did not originate in this library report "" and false.
func ClassOf(err error) (Class, bool) {
	var e *Error
	if !stderrors.As(err, &e) {
		return "", false
	}
	return e.Class(), true
}

// IsContract reports whether err is a malformed-call error.
func IsContract(err error) bool {
	c, ok := ClassOf(err)
	return ok && c == ClassContract
}

// IsValueDomain reports whether err is a value-domain error.
func IsValueDomain(err error) bool {
	c, ok := ClassOf(err)
	return ok && c == ClassValueDomain
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Method sets the quadrature method name
func (b *Builder) Method(name string) *Builder {
	b.err.Method = name
	return b
}

// Path sets the argument or option path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Arity creates an argument count mismatch error
func Arity(phase Phase, method string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArity,
		Method: method,
		Detail: fmt.Sprintf("expected %d argument(s), got %d", want, got),
		Value:  got,
	}
}

// TypeMismatch creates a type mismatch error for a value that cannot be
// converted to the expected type
func TypeMismatch(phase Phase, path []string, goType, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Detail: fmt.Sprintf("cannot convert to %s", want),
	}
}

// FieldUnknown creates an unknown option or keyword error
func FieldUnknown(phase Phase, method, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Method: method,
		Path:   []string{name},
		Detail: fmt.Sprintf("unexpected keyword %q", name),
	}
}

// OutOfRange creates an out of range option error
func OutOfRange(method, name string, value any, allowed string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindOutOfRange,
		Method: method,
		Path:   []string{name},
		Value:  value,
		Detail: fmt.Sprintf("%v is invalid, %s", value, allowed),
	}
}

// NotComplex creates an error for integrand output that cannot be
// converted to a complex number
func NotComplex(x float64, goType string) *Error {
	return &Error{
		Phase:  PhaseEvaluate,
		Kind:   KindNotComplex,
		GoType: goType,
		Value:  x,
		Detail: fmt.Sprintf("integrand returned a non-numeric value at x=%g", x),
	}
}

// Divergent creates a non-convergence error for integrals over unbounded domains
func Divergent(method, detail string) *Error {
	return &Error{
		Phase:  PhaseIntegrate,
		Kind:   KindDivergent,
		Method: method,
		Detail: detail,
	}
}

// NonFinite creates an error for an integrand value that is infinite or NaN
// strictly inside the integration domain
func NonFinite(method string, x float64) *Error {
	return &Error{
		Phase:  PhaseIntegrate,
		Kind:   KindNonFinite,
		Method: method,
		Value:  x,
		Detail: fmt.Sprintf("integrand is not finite at x=%g", x),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
