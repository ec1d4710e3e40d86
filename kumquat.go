package kumquat

// Evaluator is the single capability quadrature kernels need from an integrand.
// A non-nil error aborts the quadrature immediately.
type Evaluator interface {
	Evaluate(x float64) (complex128, error)
}

// EvaluatorFunc adapts an ordinary function to Evaluator.
type EvaluatorFunc func(x float64) (complex128, error)

// Evaluate calls f(x).
func (f EvaluatorFunc) Evaluate(x float64) (complex128, error) {
	return f(x)
}

// Callable is a host-side function invoked with the integration variable
// followed by fixed extra arguments.
type Callable interface {
	Call(x float64, args []any, kwargs map[string]any) (any, error)
}

// Args is the fixed positional tail passed after x on every call.
type Args []any

// Kwargs is the fixed set of named arguments passed on every call.
type Kwargs map[string]any

// Complexer is implemented by values that know their complex representation.
type Complexer interface {
	Complex() complex128
}
