// Command kumquat integrates complex-valued functions from Lua scripts,
// Lua expressions and WebAssembly modules.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands.
type app struct {
	v      *viper.Viper
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}
	var cfgFile string

	root := &cobra.Command{
		Use:   "kumquat",
		Short: "Numerical integration of complex-valued functions",
		Long: `kumquat integrates complex-valued functions of one real variable with
adaptive Gauss-Kronrod, tanh-sinh, sinh-sinh, exp-sinh and trapezoidal
quadrature. Integrands come from Lua scripts, Lua expressions or
WebAssembly exports.

Configuration is read from --config and from KUMQUAT_* environment
variables, e.g. KUMQUAT_TOLERANCE=1e-10 or KUMQUAT_LOG_LEVEL=debug.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(a.v, cfgFile); err != nil {
				return err
			}
			log, err := newLogger(a.v.GetString(keyLogLevel), a.stderr)
			if err != nil {
				return err
			}
			a.log = log
			installLogger(log)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String(keyLogLevel, "warn", "log level: debug, info, warn, error")
	flags.Float64(keyTolerance, 0, "default relative tolerance for every method")
	flags.Int(keyMaxLevels, -1, "default refinement level limit for every method")
	_ = a.v.BindPFlag(keyLogLevel, flags.Lookup(keyLogLevel))
	_ = a.v.BindPFlag(keyTolerance, flags.Lookup(keyTolerance))
	_ = a.v.BindPFlag(keyMaxLevels, flags.Lookup(keyMaxLevels))

	root.AddCommand(
		newRunCmd(a),
		newEvalCmd(a),
		newWasmCmd(a),
		newMethodsCmd(a),
		newTUICmd(a),
	)
	return root
}
