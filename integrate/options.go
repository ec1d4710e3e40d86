package integrate

import (
	"math"
	"reflect"

	"github.com/wippyai/kumquat/errors"
)

// Option names as accepted by Set.
const (
	OptTolerance        = "tolerance"
	OptMaxLevels        = "max_levels"
	OptFullOutput       = "full_output"
	OptPoints           = "points"
	OptIntervalInfinity = "interval_infinity"
)

// Option is a single named configuration value.
type Option struct {
	Value any
	Name  string
}

// Set returns the option with the given keyword name.
func Set(name string, value any) Option {
	return Option{Name: name, Value: value}
}

// Tolerance sets the relative error the method aims for.
func Tolerance(v float64) Option { return Set(OptTolerance, v) }

// MaxLevels caps the number of refinement levels. Zero disables refinement
// but still produces an estimate.
func MaxLevels(n int) Option { return Set(OptMaxLevels, n) }

// FullOutput requests Diagnostics in the Result.
func FullOutput(on bool) Option { return Set(OptFullOutput, on) }

// Points selects the Gauss-Kronrod order.
func Points(n int) Option { return Set(OptPoints, n) }

// IntervalInfinity selects the exp-sinh ray: +1 for [a, +inf), -1 for
// (-inf, a].
func IntervalInfinity(sign int) Option { return Set(OptIntervalInfinity, sign) }

func optionPath(name string) []string {
	return []string{"options", name}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// toFloat converts any Go number to float64.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func floatOption(name string, v any) (float64, error) {
	f, ok := toFloat(v)
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseValidate, optionPath(name), typeName(v), "float64")
	}
	return f, nil
}

// intOption accepts integer kinds and floats holding an integral value,
// since scripting hosts often have a single number type. Values outside the
// int32 range saturate at its bounds regardless of their Go type.
func intOption(name string, v any) (int, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampInt32(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt32 {
			return math.MaxInt32, nil
		}
		return int(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			if math.Abs(f) > math.MaxInt32 {
				return int(math.Copysign(math.MaxInt32, f)), nil
			}
			return int(f), nil
		}
		return 0, errors.New(errors.PhaseValidate, errors.KindTypeMismatch).
			Path(optionPath(name)...).
			GoType(typeName(v)).
			Value(v).
			Detail("%s must be an integer, got %v", name, f).
			Build()
	}
	return 0, errors.TypeMismatch(errors.PhaseValidate, optionPath(name), typeName(v), "int")
}

func clampInt32(n int64) int {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < -math.MaxInt32:
		return -math.MaxInt32
	}
	return int(n)
}

func boolOption(name string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.TypeMismatch(errors.PhaseValidate, optionPath(name), typeName(v), "bool")
	}
	return b, nil
}

func unknownOption(method Method, name string) error {
	return errors.FieldUnknown(errors.PhaseValidate, string(method), name)
}
