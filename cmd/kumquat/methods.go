package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/kumquat/integrate"
)

func newMethodsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List integration methods and their default options",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, m := range integrate.Methods() {
				arity, _ := integrate.Arity(m)
				cfg, err := integrate.NewConfig(m)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%-14s %-7s %s\n", m, boundsLabel(arity), describeConfig(cfg))
			}
			return nil
		},
	}
}

func boundsLabel(arity int) string {
	switch arity {
	case 0:
		return "(-inf,inf)"
	case 1:
		return "a"
	default:
		return "a,b"
	}
}

func describeConfig(cfg integrate.Config) string {
	var parts []string
	add := func(k string, v any) { parts = append(parts, fmt.Sprintf("%s=%v", k, v)) }

	switch c := cfg.(type) {
	case *integrate.GaussKronrodConfig:
		add(integrate.OptTolerance, c.Tolerance)
		add(integrate.OptMaxLevels, c.MaxLevels)
		add(integrate.OptPoints, c.Points)
	case *integrate.DEConfig:
		add(integrate.OptTolerance, c.Tolerance)
		add(integrate.OptMaxLevels, c.MaxLevels)
	case *integrate.ExpSinhConfig:
		add(integrate.OptTolerance, c.Tolerance)
		add(integrate.OptMaxLevels, c.MaxLevels)
		add(integrate.OptIntervalInfinity, c.IntervalInfinity)
	case *integrate.TrapezoidalConfig:
		add(integrate.OptTolerance, c.Tolerance)
		add(integrate.OptMaxLevels, c.MaxLevels)
	}
	return strings.Join(parts, " ")
}
