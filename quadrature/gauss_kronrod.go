package quadrature

import (
	"fmt"
	"math"
	"math/cmplx"

	"go.uber.org/zap"

	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/transform"
)

// GaussKronrod integrates over [-1, 1] with a Kronrod rule and its embedded
// Gauss rule, bisecting while the difference between the two is too large.
type GaussKronrod struct {
	table  *kronrodTable
	points int
}

// NewGaussKronrod returns the rule with the given number of points, which
// must be one of SupportedPoints.
func NewGaussKronrod(points int) (*GaussKronrod, error) {
	t, ok := tableFor(points)
	if !ok {
		return nil, errors.OutOfRange("gauss_kronrod", "points", points, fmt.Sprintf("must be one of %v", SupportedPoints))
	}
	return &GaussKronrod{table: t, points: points}, nil
}

// Points returns the number of Kronrod nodes.
func (g *GaussKronrod) Points() int { return g.points }

// Abscissa returns the non-negative Kronrod nodes, ascending from 0.
func (g *GaussKronrod) Abscissa() []float64 { return append([]float64(nil), g.table.x...) }

// Weights returns the Kronrod weights matching Abscissa.
func (g *GaussKronrod) Weights() []float64 { return append([]float64(nil), g.table.wk...) }

// GaussWeights returns the embedded Gauss weights matching Abscissa, with
// zeros at the nodes the Gauss rule does not use.
func (g *GaussKronrod) GaussWeights() []float64 { return append([]float64(nil), g.table.wg...) }

// Integrate integrates f over [-1, 1]. Each interval whose error estimate
// exceeds both tol relative to its own estimate and its share of the
// absolute tolerance is bisected, at most maxLevels times along any branch.
func (g *GaussKronrod) Integrate(f transform.Integrand, maxLevels int, tol float64) (Estimate, error) {
	est, err := g.adapt(f, -1, 1, maxLevels, tol, 0, 0)
	if err != nil {
		return Estimate{}, err
	}
	Logger().Debug("gauss-kronrod finished",
		zap.Int("points", g.points),
		zap.Int("levels", est.Levels),
		zap.Float64("error", est.Error),
		zap.Float64("l1", est.L1))
	return est, nil
}

func (g *GaussKronrod) adapt(f transform.Integrand, lo, hi float64, levels int, tol, absTol float64, depth int) (Estimate, error) {
	est, err := g.rule(f, lo, hi)
	if err != nil {
		return Estimate{}, err
	}
	est.Levels = depth

	relTol := tol * cmplx.Abs(est.Value)
	if absTol == 0 {
		absTol = relTol
	}
	if levels == 0 || est.Error <= relTol || est.Error <= absTol {
		return est, nil
	}

	mid := (lo + hi) / 2
	left, err := g.adapt(f, lo, mid, levels-1, tol, absTol/2, depth+1)
	if err != nil {
		return Estimate{}, err
	}
	right, err := g.adapt(f, mid, hi, levels-1, tol, absTol/2, depth+1)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		Value:  left.Value + right.Value,
		Error:  left.Error + right.Error,
		L1:     left.L1 + right.L1,
		Levels: max(left.Levels, right.Levels),
	}, nil
}

// rule applies the rule pair to [lo, hi], a subinterval of [-1, 1].
func (g *GaussKronrod) rule(f transform.Integrand, lo, hi float64) (Estimate, error) {
	t := g.table
	mid := (lo + hi) / 2
	half := (hi - lo) / 2

	var kronrod, gauss complex128
	var l1 float64

	at := func(y float64) (complex128, error) {
		v, err := f.At(y, 1-math.Abs(y))
		if err != nil {
			return 0, err
		}
		if !transform.IsFinite(v) {
			return 0, errors.NonFinite("gauss_kronrod", y)
		}
		return v, nil
	}

	c, err := at(mid)
	if err != nil {
		return Estimate{}, err
	}
	kronrod = complex(t.wk[0], 0) * c
	gauss = complex(t.wg[0], 0) * c
	l1 = t.wk[0] * cmplx.Abs(c)

	for j := 1; j < len(t.x); j++ {
		dx := half * t.x[j]
		v1, err := at(mid - dx)
		if err != nil {
			return Estimate{}, err
		}
		v2, err := at(mid + dx)
		if err != nil {
			return Estimate{}, err
		}
		kronrod += complex(t.wk[j], 0) * (v1 + v2)
		gauss += complex(t.wg[j], 0) * (v1 + v2)
		l1 += t.wk[j] * (cmplx.Abs(v1) + cmplx.Abs(v2))
	}

	kronrod *= complex(half, 0)
	gauss *= complex(half, 0)
	return Estimate{
		Value: kronrod,
		Error: math.Max(cmplx.Abs(kronrod-gauss), 2*Epsilon*cmplx.Abs(kronrod)),
		L1:    l1 * half,
	}, nil
}
