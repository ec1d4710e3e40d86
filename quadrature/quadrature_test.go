package quadrature

import (
	stderrors "errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/wippyai/kumquat"
	"github.com/wippyai/kumquat/errors"
	"github.com/wippyai/kumquat/transform"
)

func fn(f func(x float64) complex128) kumquat.Evaluator {
	return kumquat.EvaluatorFunc(func(x float64) (complex128, error) {
		return f(x), nil
	})
}

func finite(f func(x float64) complex128, a, b float64) transform.Integrand {
	return transform.NewFinite(fn(f), a, b)
}

func near(got, want complex128, tol float64) bool {
	return cmplx.Abs(got-want) <= tol
}

type counting struct {
	calls  int
	failAt int
	err    error
}

func (c *counting) Evaluate(x float64) (complex128, error) {
	c.calls++
	if c.calls == c.failAt {
		return 0, c.err
	}
	return complex(math.Exp(-x*x), 0), nil
}

func TestKronrodTables(t *testing.T) {
	tests := []struct {
		points      int
		outerX      float64
		outerW      float64
		center      float64
		gaussIdx    int
		gaussX      float64
		gaussWeight float64
	}{
		{15, 0.991455371120812639, 0.022935322010529225, 0.209482141084727828, 6, 0.949107912342758525, 0.129484966168869693},
		{21, 0.995657163025808081, 0.011694638867371874, 0.149445554002916906, 9, 0.973906528517171720, 0.066671344308688138},
	}

	for _, tt := range tests {
		gk, err := NewGaussKronrod(tt.points)
		if err != nil {
			t.Fatalf("NewGaussKronrod(%d): %v", tt.points, err)
		}
		x := gk.Abscissa()
		w := gk.Weights()
		g := gk.GaussWeights()
		n := len(x) - 1

		if len(x) != (tt.points+1)/2 {
			t.Fatalf("points=%d: %d abscissa, want %d", tt.points, len(x), (tt.points+1)/2)
		}
		if x[0] != 0 {
			t.Errorf("points=%d: abscissa[0] = %v, want 0", tt.points, x[0])
		}
		if math.Abs(x[n]-tt.outerX) > 1e-13 {
			t.Errorf("points=%d: outer node %v, want %v", tt.points, x[n], tt.outerX)
		}
		if math.Abs(w[n]-tt.outerW) > 1e-13 {
			t.Errorf("points=%d: outer weight %v, want %v", tt.points, w[n], tt.outerW)
		}
		if math.Abs(w[0]-tt.center) > 1e-13 {
			t.Errorf("points=%d: center weight %v, want %v", tt.points, w[0], tt.center)
		}
		if math.Abs(x[tt.gaussIdx]-tt.gaussX) > 1e-13 {
			t.Errorf("points=%d: gauss node %v, want %v", tt.points, x[tt.gaussIdx], tt.gaussX)
		}
		if math.Abs(g[tt.gaussIdx]-tt.gaussWeight) > 1e-13 {
			t.Errorf("points=%d: gauss weight %v, want %v", tt.points, g[tt.gaussIdx], tt.gaussWeight)
		}
	}
}

func TestKronrodWeightsSumToTwo(t *testing.T) {
	for _, p := range SupportedPoints {
		gk, err := NewGaussKronrod(p)
		if err != nil {
			t.Fatal(err)
		}
		x, w, g := gk.Abscissa(), gk.Weights(), gk.GaussWeights()

		sk, sg := w[0], g[0]
		gaussNodes := 0
		if g[0] != 0 {
			gaussNodes = 1
		}
		for j := 1; j < len(w); j++ {
			sk += 2 * w[j]
			sg += 2 * g[j]
			if g[j] != 0 {
				gaussNodes += 2
			}
			if x[j] <= x[j-1] {
				t.Errorf("points=%d: abscissa not ascending at %d", p, j)
			}
		}
		if math.Abs(sk-2) > 1e-13 || math.Abs(sg-2) > 1e-13 {
			t.Errorf("points=%d: kronrod sum %v, gauss sum %v", p, sk, sg)
		}
		if gaussNodes != (p-1)/2 {
			t.Errorf("points=%d: %d gauss nodes, want %d", p, gaussNodes, (p-1)/2)
		}
	}
}

func TestAbscissaIsCopy(t *testing.T) {
	gk, _ := NewGaussKronrod(15)
	x := gk.Abscissa()
	x[1] = 42
	if gk.Abscissa()[1] == 42 {
		t.Error("Abscissa exposes the shared table")
	}
}

func TestNewGaussKronrodRejectsPoints(t *testing.T) {
	for _, p := range []int{0, 7, 17, 30, 63} {
		_, err := NewGaussKronrod(p)
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Kind != errors.KindOutOfRange {
			t.Fatalf("points=%d: expected out_of_range, got %v", p, err)
		}
		if !errors.IsValueDomain(err) {
			t.Errorf("points=%d: expected value-domain error", p)
		}
	}
}

func TestGaussKronrodPolynomialExact(t *testing.T) {
	for _, p := range SupportedPoints {
		n := (p - 1) / 2
		deg := 3*n + 1
		if deg%2 == 1 {
			deg--
		}
		gk, _ := NewGaussKronrod(p)
		est, err := gk.Integrate(finite(func(x float64) complex128 {
			return complex(math.Pow(x, float64(deg)), 0)
		}, -1, 1), 0, DefaultTolerance)
		if err != nil {
			t.Fatal(err)
		}
		want := 2 / float64(deg+1)
		if math.Abs(real(est.Value)-want) > 1e-13 {
			t.Errorf("points=%d: ∫x^%d = %v, want %v", p, deg, est.Value, want)
		}
	}
}

func TestGaussKronrodIntegrals(t *testing.T) {
	expI := func(x float64) complex128 { return cmplx.Exp(complex(0, x)) }
	quadratic := func(x float64) complex128 {
		d := complex(x, -1)
		return 3 * d * d
	}
	wantQuadratic := cmplx.Pow(complex(1, -1), 3) - cmplx.Pow(complex(0, -1), 3)

	for _, p := range SupportedPoints {
		gk, _ := NewGaussKronrod(p)

		est, err := gk.Integrate(finite(expI, 0, 2*math.Pi), 15, DefaultTolerance)
		if err != nil {
			t.Fatal(err)
		}
		if !near(est.Value, 0, 1e-7) {
			t.Errorf("points=%d: ∫exp(ix) = %v", p, est.Value)
		}

		est, err = gk.Integrate(finite(quadratic, 0, 1), 15, DefaultTolerance)
		if err != nil {
			t.Fatal(err)
		}
		if !near(est.Value, wantQuadratic, 1e-7) {
			t.Errorf("points=%d: ∫3(x-i)² = %v, want %v", p, est.Value, wantQuadratic)
		}
		if est.L1 <= 0 || est.Error < 0 {
			t.Errorf("points=%d: L1=%v error=%v", p, est.L1, est.Error)
		}
	}
}

func TestGaussKronrodOrderMatters(t *testing.T) {
	pole := complex(0.501, 1e-8)
	f := func(x float64) complex128 {
		return cmplx.Pow(pole-complex(x, 0), -1.5)
	}

	gk15, _ := NewGaussKronrod(15)
	gk61, _ := NewGaussKronrod(61)
	e15, err := gk15.Integrate(finite(f, 0, 1), 1, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	e61, err := gk61.Integrate(finite(f, 0, 1), 1, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if cmplx.Abs(e15.Value-e61.Value) < 1e-3 {
		t.Errorf("15 and 61 points agree: %v vs %v", e15.Value, e61.Value)
	}
	if e15.Levels > 1 || e61.Levels > 1 {
		t.Errorf("levels exceed cap: %d, %d", e15.Levels, e61.Levels)
	}
}

func TestGaussKronrodNonFinite(t *testing.T) {
	gk, _ := NewGaussKronrod(15)
	_, err := gk.Integrate(finite(func(x float64) complex128 {
		return complex(1/x, 0)
	}, -1, 1), 0, DefaultTolerance)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindNonFinite {
		t.Fatalf("expected non_finite, got %v", err)
	}
}

func TestKernelsStopAtFirstFailure(t *testing.T) {
	sentinel := stderrors.New("integrand failed")
	gk, _ := NewGaussKronrod(31)

	kernels := map[string]func(transform.Integrand) error{
		"gauss_kronrod": func(f transform.Integrand) error {
			_, err := gk.Integrate(f, 15, DefaultTolerance)
			return err
		},
		"tanh_sinh": func(f transform.Integrand) error {
			_, err := TanhSinh().Integrate(f, 11, DefaultTolerance)
			return err
		},
		"sinh_sinh": func(f transform.Integrand) error {
			_, err := SinhSinh().Integrate(f, 11, DefaultTolerance)
			return err
		},
		"exp_sinh": func(f transform.Integrand) error {
			_, err := ExpSinh().Integrate(f, 11, DefaultTolerance)
			return err
		},
		"trapezoidal": func(f transform.Integrand) error {
			_, err := Trapezoidal{}.Integrate(f, 8, DefaultTolerance)
			return err
		},
	}

	for name, run := range kernels {
		t.Run(name, func(t *testing.T) {
			c := &counting{failAt: 5, err: sentinel}
			var f transform.Integrand
			switch name {
			case "sinh_sinh":
				f = transform.NewRealLine(c)
			case "exp_sinh":
				f = transform.NewRay(c, 0, 1)
			default:
				f = transform.NewFinite(c, -1, 1)
			}
			if err := run(f); err != sentinel {
				t.Fatalf("err = %v, want sentinel", err)
			}
			if c.calls != 5 {
				t.Errorf("kernel kept evaluating: %d calls", c.calls)
			}
		})
	}
}

func TestTanhSinhEndpointSingularities(t *testing.T) {
	tests := []struct {
		name string
		f    func(x float64) complex128
		want complex128
	}{
		{"inverse sqrt", func(x float64) complex128 { return complex(1/math.Sqrt(x), 0) }, 2},
		{"log", func(x float64) complex128 { return complex(math.Log(x), 0) }, -1},
		{"complex log", func(x float64) complex128 { return complex(0, math.Log(x)) }, complex(0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := TanhSinh().Integrate(finite(tt.f, 0, 1), 11, DefaultTolerance)
			if err != nil {
				t.Fatal(err)
			}
			if !near(est.Value, tt.want, 1e-7) {
				t.Errorf("got %v, want %v", est.Value, tt.want)
			}
		})
	}
}

func TestTanhSinhOscillatory(t *testing.T) {
	est, err := TanhSinh().Integrate(finite(func(x float64) complex128 {
		return cmplx.Exp(complex(0, x))
	}, 0, 2*math.Pi), 11, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if !near(est.Value, 0, 1e-7) {
		t.Errorf("got %v", est.Value)
	}
}

func TestTanhSinhRefinementMatters(t *testing.T) {
	peak := func(x float64) complex128 {
		d := x - 0.3
		return complex(1/(1e-6+d*d), 0)
	}
	coarse, err := TanhSinh().Integrate(finite(peak, 0, 1), 0, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	fine, err := TanhSinh().Integrate(finite(peak, 0, 1), 10, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if coarse.Levels != 0 {
		t.Errorf("max_levels=0 reached level %d", coarse.Levels)
	}
	if fine.Levels > 10 {
		t.Errorf("levels %d exceed cap", fine.Levels)
	}
	if cmplx.Abs(coarse.Value-fine.Value) < 1 {
		t.Errorf("coarse %v and fine %v agree", coarse.Value, fine.Value)
	}
}

func TestSinhSinh(t *testing.T) {
	gauss := func(x float64) complex128 { return complex(math.Exp(-x*x), 0) }

	coarse, err := SinhSinh().Integrate(transform.NewRealLine(fn(gauss)), 0, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	fine, err := SinhSinh().Integrate(transform.NewRealLine(fn(gauss)), 10, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	want := complex(math.Sqrt(math.Pi), 0)
	if !near(fine.Value, want, 1e-10) {
		t.Errorf("∫exp(-x²) = %v, want %v", fine.Value, want)
	}
	if cmplx.Abs(coarse.Value-fine.Value) > DefaultTolerance*fine.L1 {
		t.Errorf("levels 0 and 10 disagree: %v vs %v", coarse.Value, fine.Value)
	}

	lorentz := func(x float64) complex128 { return complex(0, 1/(1+x*x)) }
	est, err := SinhSinh().Integrate(transform.NewRealLine(fn(lorentz)), 11, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if !near(est.Value, complex(0, math.Pi), 1e-7) {
		t.Errorf("∫i/(1+x²) = %v, want iπ", est.Value)
	}
}

func TestSinhSinhDivergent(t *testing.T) {
	tests := []struct {
		name string
		f    func(x float64) complex128
	}{
		{"constant", func(float64) complex128 { return complex(0, 1) }},
		{"oscillatory", func(x float64) complex128 { return cmplx.Exp(complex(0, x)) }},
		{"growing", func(x float64) complex128 { return complex(x*x, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SinhSinh().Integrate(transform.NewRealLine(fn(tt.f)), 11, DefaultTolerance)
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != errors.KindDivergent {
				t.Fatalf("expected divergent, got %v", err)
			}
			if !errors.IsValueDomain(err) {
				t.Error("divergence should be a value-domain error")
			}
		})
	}
}

func TestExpSinh(t *testing.T) {
	decay := func(x float64) complex128 { return complex(math.Exp(-x), 0) }
	est, err := ExpSinh().Integrate(transform.NewRay(fn(decay), 0, 1), 11, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if !near(est.Value, 1, 1e-8) {
		t.Errorf("∫exp(-x) = %v, want 1", est.Value)
	}

	odd := func(x float64) complex128 { return complex(0, x*math.Exp(-math.Abs(x))) }
	up, err := ExpSinh().Integrate(transform.NewRay(fn(odd), 0, 1), 11, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	down, err := ExpSinh().Integrate(transform.NewRay(fn(odd), 0, -1), 11, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if real(up.Value) != -real(down.Value) || imag(up.Value) != -imag(down.Value) {
		t.Errorf("ray results not exact negatives: %v vs %v", up.Value, down.Value)
	}
	if !near(up.Value, complex(0, 1), 1e-8) {
		t.Errorf("∫ix exp(-x) = %v, want i", up.Value)
	}
}

func TestExpSinhDivergent(t *testing.T) {
	_, err := ExpSinh().Integrate(transform.NewRay(fn(func(float64) complex128 { return 1 }), 0, 1), 11, DefaultTolerance)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindDivergent {
		t.Fatalf("expected divergent, got %v", err)
	}
}

func TestDoubleExponentialInteriorNonFinite(t *testing.T) {
	pole := func(x float64) complex128 { return complex(1/(x-0.5), 0) }
	// x = 0.5 is the image of t = 0, which level 0 always evaluates.
	_, err := TanhSinh().Integrate(finite(pole, 0, 1), 5, DefaultTolerance)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindNonFinite {
		t.Fatalf("expected non_finite, got %v", err)
	}
}

func TestTrapezoidal(t *testing.T) {
	periodic := func(x float64) complex128 {
		return complex(1/(2+math.Cos(math.Pi*x)), 0)
	}
	est, err := Trapezoidal{}.Integrate(finite(periodic, -1, 1), 8, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	want := complex(2/math.Sqrt(3), 0)
	if !near(est.Value, want, 1e-10) {
		t.Errorf("got %v, want %v", est.Value, want)
	}

	linear := func(x float64) complex128 { return complex(x, 2*x) }
	est, err = Trapezoidal{}.Integrate(finite(linear, 0, 2), 0, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	if !near(est.Value, complex(2, 4), 1e-13) {
		t.Errorf("linear: got %v", est.Value)
	}
	if est.Levels != 0 {
		t.Errorf("levels = %d, want 0", est.Levels)
	}
}

func TestTrapezoidalEndpointSingularity(t *testing.T) {
	_, err := Trapezoidal{}.Integrate(finite(func(x float64) complex128 {
		return complex(1/x, 0)
	}, 0, 1), 8, DefaultTolerance)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindNonFinite {
		t.Fatalf("expected non_finite, got %v", err)
	}
}

func TestIdempotent(t *testing.T) {
	f := finite(func(x float64) complex128 { return cmplx.Exp(complex(-x, 3*x)) }, 0, 4)
	gk, _ := NewGaussKronrod(21)

	a, err := gk.Integrate(f, 15, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := gk.Integrate(f, 15, DefaultTolerance)
	if a != b {
		t.Errorf("gauss_kronrod not repeatable: %+v vs %+v", a, b)
	}

	c, _ := TanhSinh().Integrate(f, 11, DefaultTolerance)
	d, _ := TanhSinh().Integrate(f, 11, DefaultTolerance)
	if c != d {
		t.Errorf("tanh_sinh not repeatable: %+v vs %+v", c, d)
	}
}
