package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/sjson"

	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/integrate"
	"github.com/wippyai/kumquat/luaquad"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))
)

// renderText writes a result as aligned key/value lines.
func renderText(w io.Writer, method integrate.Method, res *integrate.Result) {
	line := func(k, v string) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", k)), valueStyle.Render(v))
	}
	line("method", string(method))
	line("value", luaquad.FormatComplex(res.Value))
	line("error estimate", fmt.Sprintf("%g", res.ErrorEstimate))
	if res.Diagnostics == nil {
		return
	}
	m := res.Diagnostics.Map()
	for _, k := range res.Diagnostics.Keys() {
		line(k, fmt.Sprint(m[k]))
	}
}

// renderJSON encodes a result. Non-finite numbers become null.
func renderJSON(method integrate.Method, res *integrate.Result) (string, error) {
	out := "{}"
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
			out, err = sjson.SetRaw(out, path, "null")
			return
		}
		out, err = sjson.Set(out, path, v)
	}

	set("method", string(method))
	set("value.real", real(res.Value))
	set("value.imag", imag(res.Value))
	set("error_estimate", res.ErrorEstimate)
	if res.Diagnostics != nil {
		m := res.Diagnostics.Map()
		for _, k := range res.Diagnostics.Keys() {
			set("diagnostics."+escapePath(k), m[k])
		}
	}
	return out, err
}

// renderErrorJSON encodes an error with its class and kind when known.
func renderErrorJSON(err error) string {
	out := "{}"
	out, _ = sjson.Set(out, "error.message", err.Error())
	var e *errors.Error
	if stderrors.As(err, &e) {
		out, _ = sjson.Set(out, "error.class", string(e.Class()))
		out, _ = sjson.Set(out, "error.kind", string(e.Kind))
		out, _ = sjson.Set(out, "error.phase", string(e.Phase))
		if len(e.Path) > 0 {
			out, _ = sjson.Set(out, "error.path", e.Path)
		}
	}
	return out
}

// escapePath escapes sjson path metacharacters in a single key.
func escapePath(k string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(k)
}

// report prints a result or, in JSON mode, an error document. The error is
// returned either way so the process exits non-zero.
func (a *app) report(method integrate.Method, res *integrate.Result, err error, asJSON bool) error {
	if err != nil {
		if asJSON {
			fmt.Fprintln(a.stdout, renderErrorJSON(err))
		}
		return err
	}
	if !asJSON {
		renderText(a.stdout, method, res)
		return nil
	}
	out, jerr := renderJSON(method, res)
	if jerr != nil {
		return fmt.Errorf("encode result: %w", jerr)
	}
	fmt.Fprintln(a.stdout, out)
	return nil
}
