package kumquat

import (
	"fmt"
	"reflect"

	"github.com/wippyai/kumquat/errors"
)

// ToComplex converts an integrand result to complex128.
// Numbers and Complexer values convert; anything else is a value-domain error
// naming the abscissa x at which the integrand produced it.
func ToComplex(x float64, v any) (complex128, error) {
	switch n := v.(type) {
	case complex128:
		return n, nil
	case complex64:
		return complex128(n), nil
	case float64:
		return complex(n, 0), nil
	case float32:
		return complex(float64(n), 0), nil
	case int:
		return complex(float64(n), 0), nil
	case int8:
		return complex(float64(n), 0), nil
	case int16:
		return complex(float64(n), 0), nil
	case int32:
		return complex(float64(n), 0), nil
	case int64:
		return complex(float64(n), 0), nil
	case uint:
		return complex(float64(n), 0), nil
	case uint8:
		return complex(float64(n), 0), nil
	case uint16:
		return complex(float64(n), 0), nil
	case uint32:
		return complex(float64(n), 0), nil
	case uint64:
		return complex(float64(n), 0), nil
	case Complexer:
		return n.Complex(), nil
	}

	// Named numeric types
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex(), nil
	case reflect.Float32, reflect.Float64:
		return complex(rv.Float(), 0), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return complex(float64(rv.Int()), 0), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return complex(float64(rv.Uint()), 0), nil
	}
	return 0, errors.NotComplex(x, fmt.Sprintf("%T", v))
}
