package quadrature

import (
	"math"
	"math/cmplx"

	"go.uber.org/zap"

	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/transform"
)

// TrapezoidalPanels is the number of panels at refinement level 0.
const TrapezoidalPanels = 16

// Trapezoidal integrates over [-1, 1] with the composite trapezoid rule,
// halving the panel width at each level. It converges geometrically for
// periodic integrands over a full period and slowly otherwise.
type Trapezoidal struct{}

// Integrate integrates f over [-1, 1]. Both endpoints are evaluated, so f
// must be finite there.
func (Trapezoidal) Integrate(f transform.Integrand, maxLevels int, tol float64) (Estimate, error) {
	n := TrapezoidalPanels
	h := 2.0 / float64(n)

	at := func(k, n int) (complex128, error) {
		x := -1 + float64(k)*2/float64(n)
		v, err := f.At(x, 1-math.Abs(x))
		if err != nil {
			return 0, err
		}
		if !transform.IsFinite(v) {
			return 0, errors.NonFinite("trapezoidal", x)
		}
		return v, nil
	}

	first, err := at(0, n)
	if err != nil {
		return Estimate{}, err
	}
	last, err := at(n, n)
	if err != nil {
		return Estimate{}, err
	}
	ends := (first + last) / 2
	endsAbs := (cmplx.Abs(first) + cmplx.Abs(last)) / 2

	var sum, even complex128
	var abs float64
	for k := 1; k < n; k++ {
		v, err := at(k, n)
		if err != nil {
			return Estimate{}, err
		}
		sum += v
		abs += cmplx.Abs(v)
		if k%2 == 0 {
			even += v
		}
	}

	value := complex(h, 0) * (ends + sum)
	l1 := h * (endsAbs + abs)
	coarse := complex(2*h, 0) * (ends + even)
	errEst := cmplx.Abs(value - coarse)

	level := 0
	for level < maxLevels && errEst > tol*l1 {
		level++
		n *= 2
		h /= 2

		var add complex128
		var addAbs float64
		for k := 1; k < n; k += 2 {
			v, err := at(k, n)
			if err != nil {
				return Estimate{}, err
			}
			add += v
			addAbs += cmplx.Abs(v)
		}

		next := value/2 + complex(h, 0)*add
		l1 = l1/2 + h*addAbs
		errEst = cmplx.Abs(next - value)
		value = next
	}

	Logger().Debug("trapezoidal finished",
		zap.Int("levels", level),
		zap.Int("panels", n),
		zap.Float64("error", errEst),
		zap.Float64("l1", l1))

	return Estimate{Value: value, Error: errEst, L1: l1, Levels: level}, nil
}
