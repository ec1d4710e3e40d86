package kumquat

// Integrand binds a Callable to fixed extra arguments, producing an
// Evaluator. The argument containers are never modified.
type Integrand struct {
	fn     Callable
	args   Args
	kwargs Kwargs
}

// Bind returns an Evaluator that calls c(x, args..., kwargs) and converts
// the result to complex128. Nil args and kwargs mean none. Neither container
// is modified, and each call receives a fresh copy of kwargs.
func Bind(c Callable, args Args, kwargs Kwargs) *Integrand {
	return &Integrand{fn: c, args: args, kwargs: kwargs}
}

// Evaluate implements Evaluator. Errors raised by the Callable are returned
// as is; only a result that is not a number is reported by this layer.
func (in *Integrand) Evaluate(x float64) (complex128, error) {
	v, err := in.fn.Call(x, in.args, in.kwargs)
	if err != nil {
		return 0, err
	}
	return ToComplex(x, v)
}

// Args returns the bound positional arguments.
func (in *Integrand) Args() Args { return in.args }

// Kwargs returns the bound named arguments.
func (in *Integrand) Kwargs() Kwargs { return in.kwargs }
