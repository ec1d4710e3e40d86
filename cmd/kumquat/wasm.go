package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/kumquat"
	"github.com/wippyai/kumquat/engine"
	"github.com/wippyai/kumquat/integrate"
)

func newWasmCmd(a *app) *cobra.Command {
	var f integrateFlags
	var export string
	var list bool

	cmd := &cobra.Command{
		Use:   "wasm FILE.wasm --export NAME --bounds A,B",
		Short: "Integrate a function exported by a WebAssembly module",
		Long: `Integrate a function exported by a core WebAssembly module. The export
must have the signature (f64 x, f64 extra...) -> (f64 re, f64 im) or
(f64 x, f64 extra...) -> f64.

  kumquat wasm integrand.wasm --export f --bounds 0,1 --arg 2
  kumquat wasm integrand.wasm --list`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			if list {
				return a.listExports(ctx, data)
			}

			method, bounds, opts, err := f.inputs(a)
			if err != nil {
				return a.report(method, nil, err, f.json)
			}

			if export == "" {
				if export, err = soleExport(ctx, data); err != nil {
					return err
				}
			}

			m, err := engine.Load(ctx, data, export)
			if err != nil {
				return a.report(method, nil, err, f.json)
			}
			defer m.Close(ctx)

			ev := kumquat.Bind(m.Callable(), kumquat.Args(floatArgs(f.args)), nil)
			res, err := integrate.Run(method, ev, bounds, opts...)
			return a.report(method, res, err, f.json)
		},
	}
	cmd.Flags().StringVar(&export, "export", "", "exported function to integrate (default: the only export)")
	cmd.Flags().BoolVar(&list, "list", false, "list exported functions and exit")
	f.register(cmd)
	return cmd
}

func (a *app) listExports(ctx context.Context, data []byte) error {
	eng, err := engine.NewWazeroEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	mod, err := eng.LoadModule(ctx, data)
	if err != nil {
		return err
	}
	for _, name := range mod.ExportNames() {
		params, results, _ := mod.Signature(name)
		fmt.Fprintf(a.stdout, "%s(%s) -> (%s)\n", name, valueTypes(params), valueTypes(results))
	}
	return nil
}

func soleExport(ctx context.Context, data []byte) (string, error) {
	eng, err := engine.NewWazeroEngine(ctx)
	if err != nil {
		return "", err
	}
	defer eng.Close(ctx)

	mod, err := eng.LoadModule(ctx, data)
	if err != nil {
		return "", err
	}
	names := mod.ExportNames()
	if len(names) != 1 {
		return "", fmt.Errorf("module exports %d functions, use --export to pick one", len(names))
	}
	return names[0], nil
}

func valueTypes(ts []api.ValueType) string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = api.ValueTypeName(t)
	}
	return strings.Join(names, ", ")
}
