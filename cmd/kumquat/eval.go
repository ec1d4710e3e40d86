package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/kumquat/integrate"
	"github.com/wippyai/kumquat/luaquad"
)

type integrateFlags struct {
	method  string
	bounds  string
	options string
	args    []float64
	json    bool
}

func (f *integrateFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.method, "method", "m", string(integrate.MethodGaussKronrod), "integration method")
	flags.StringVarP(&f.bounds, "bounds", "b", "", "comma separated bounds, e.g. 0,1 or 0,inf")
	flags.StringVarP(&f.options, "options", "o", "", `options as a JSON object, e.g. '{"tolerance":1e-10}'`)
	flags.Float64SliceVar(&f.args, "arg", nil, "extra argument passed after x (repeatable)")
	flags.BoolVar(&f.json, "json", false, "print the result as JSON")
}

// inputs resolves the method, bounds and options. Configured defaults come
// first so --options overrides them.
func (f *integrateFlags) inputs(a *app) (integrate.Method, []any, []integrate.Option, error) {
	method := integrate.Method(f.method)
	bounds, err := parseBounds(f.bounds)
	if err != nil {
		return method, nil, nil, err
	}
	opts, err := parseOptions(f.options)
	if err != nil {
		return method, nil, nil, err
	}
	return method, bounds, append(configOptions(a.v, method), opts...), nil
}

func newEvalCmd(a *app) *cobra.Command {
	var f integrateFlags
	var expr string

	cmd := &cobra.Command{
		Use:   "eval --expr EXPR --bounds A,B",
		Short: "Integrate a Lua expression in x",
		Long: `Integrate a Lua expression in x. The complex helpers I, exp, log, sqrt,
sin, cos, abs, conj and complex are in scope, and extra --arg values are
available through ... in the expression.

  kumquat eval --expr 'exp(I*x)' --bounds 0,3.14159
  kumquat eval -m exp_sinh --expr 'math.exp(-x*select(1, ...))' --bounds 0 --arg 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			method, bounds, opts, err := f.inputs(a)
			if err != nil {
				return a.report(method, nil, err, f.json)
			}

			state := luaquad.NewState(luaquad.WithOutput(a.stderr))
			defer state.Close()

			fn, err := state.Function(expr)
			if err != nil {
				return a.report(method, nil, err, f.json)
			}

			a.log.Debug("evaluating expression",
				zap.String("expr", expr),
				zap.String("method", string(method)))

			res, err := integrate.Run(method, state.Integrand(fn, floatArgs(f.args), nil), bounds, opts...)
			return a.report(method, res, err, f.json)
		},
	}
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "Lua expression in x")
	_ = cmd.MarkFlagRequired("expr")
	f.register(cmd)
	return cmd
}
