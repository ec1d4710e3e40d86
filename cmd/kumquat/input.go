package main

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/integrate"
)

// parseBounds splits a comma separated list of numbers. inf and -inf are
// accepted. The count is checked by integrate.Run.
func parseBounds(s string) ([]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	bounds := make([]any, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
				Path("bounds", strconv.Itoa(i)).
				GoType("string").
				Value(p).
				Cause(err).
				Detail("bound must be a number").
				Build()
		}
		bounds[i] = f
	}
	return bounds, nil
}

// parseOptions reads a JSON object of keyword options, e.g.
// {"tolerance": 1e-10, "full_output": true}. Keys keep document order.
func parseOptions(s string) ([]integrate.Option, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !gjson.Valid(s) {
		return nil, errors.InvalidInput(errors.PhaseValidate, "options are not valid JSON")
	}
	r := gjson.Parse(s)
	if !r.IsObject() {
		return nil, errors.InvalidInput(errors.PhaseValidate, "options must be a JSON object")
	}

	var opts []integrate.Option
	r.ForEach(func(k, v gjson.Result) bool {
		opts = append(opts, integrate.Set(k.String(), v.Value()))
		return true
	})
	return opts, nil
}

// floatArgs converts the --arg values to integrand arguments.
func floatArgs(vals []float64) []any {
	if len(vals) == 0 {
		return nil
	}
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v
	}
	return args
}
