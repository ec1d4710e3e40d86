package quadrature

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// SupportedPoints lists the Gauss-Kronrod orders that can be requested.
var SupportedPoints = []int{15, 21, 31, 41, 51, 61}

// kronrodTable holds the non-negative half of a (2n+1)-point Kronrod rule
// and its embedded n-point Gauss rule. Index 0 is the center.
type kronrodTable struct {
	x  []float64 // abscissa, ascending from 0
	wk []float64 // Kronrod weights
	wg []float64 // Gauss weights, 0 where x is not a Gauss node
}

type lazyTable struct {
	once  sync.Once
	table *kronrodTable
}

var kronrodTables = func() map[int]*lazyTable {
	m := make(map[int]*lazyTable, len(SupportedPoints))
	for _, p := range SupportedPoints {
		m[p] = &lazyTable{}
	}
	return m
}()

func tableFor(points int) (*kronrodTable, bool) {
	lt, ok := kronrodTables[points]
	if !ok {
		return nil, false
	}
	lt.once.Do(func() {
		lt.table = newKronrodTable(points)
	})
	return lt.table, true
}

func newKronrodTable(points int) *kronrodTable {
	n := (points - 1) / 2
	x, w := kronrodRule(n)

	t := &kronrodTable{
		x:  make([]float64, n+1),
		wk: make([]float64, n+1),
		wg: make([]float64, n+1),
	}
	t.wk[0] = w[n]
	for j := 1; j <= n; j++ {
		t.x[j] = (x[n+j] - x[n-j]) / 2
		t.wk[j] = (w[n+j] + w[n-j]) / 2
	}

	gx := make([]float64, n)
	gw := make([]float64, n)
	quad.Legendre{}.FixedLocations(gx, gw, -1, 1)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return gx[idx[a]] < gx[idx[b]] })

	// Upper half of the Gauss nodes, ascending, lines up with the
	// Kronrod entries j where n-j is odd.
	g := n / 2
	for j := 0; j <= n; j++ {
		if (n-j)%2 == 1 {
			t.wg[j] = gw[idx[g]]
			g++
		}
	}
	return t
}

// kronrodRule returns the 2n+1 nodes (ascending) and weights of the
// Gauss-Kronrod rule extending the n-point Gauss-Legendre rule. The
// Jacobi-Kronrod matrix is built with Laurie's algorithm and its eigen
// decomposition gives nodes and weights as in Golub-Welsch.
func kronrodRule(n int) ([]float64, []float64) {
	m := (3*n+1)/2 + 1
	a0 := make([]float64, m)
	b0 := make([]float64, m)
	b0[0] = 2
	for k := 1; k < m; k++ {
		fk := float64(k)
		b0[k] = fk * fk / (4*fk*fk - 1)
	}

	a, b := jacobiKronrod(n, a0, b0)

	size := 2*n + 1
	j := mat.NewSymDense(size, nil)
	for k := 0; k < size; k++ {
		j.SetSym(k, k, a[k])
		if k+1 < size {
			j.SetSym(k, k+1, math.Sqrt(b[k+1]))
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(j, true) {
		panic(fmt.Sprintf("quadrature: eigen decomposition of %d-point Kronrod matrix failed", size))
	}
	x := eig.Values(nil)
	var v mat.Dense
	eig.VectorsTo(&v)

	w := make([]float64, size)
	for i := range w {
		v0 := v.At(0, i)
		w[i] = b[0] * v0 * v0
	}
	return x, w
}

// jacobiKronrod extends the recurrence coefficients a0, b0 of an n-point
// Gauss rule to those of the 2n+1 point Kronrod rule (Laurie 1997).
func jacobiKronrod(n int, a0, b0 []float64) ([]float64, []float64) {
	a := make([]float64, 2*n+1)
	b := make([]float64, 2*n+1)
	copy(a, a0[:3*n/2+1])
	copy(b, b0[:(3*n+1)/2+1])

	s := make([]float64, n/2+2)
	t := make([]float64, n/2+2)
	t[1] = b[n+1]

	for m := 0; m <= n-2; m++ {
		acc := 0.0
		for k := (m + 1) / 2; k >= 0; k-- {
			l := m - k
			acc += (a[k+n+1]-a[l])*t[k+1] + b[k+n+1]*s[k] - b[l]*s[k+1]
			s[k+1] = acc
		}
		s, t = t, s
	}

	for j := n / 2; j >= 0; j-- {
		s[j+1] = s[j]
	}

	for m := n - 1; m <= 2*n-3; m++ {
		acc := 0.0
		j := 0
		for k := m + 1 - n; k <= (m-1)/2; k++ {
			l := m - k
			j = n - 1 - l
			acc += -(a[k+n+1]-a[l])*t[j+1] - b[k+n+1]*s[j+1] + b[l]*s[j+2]
			s[j+1] = acc
		}
		k := (m + 1) / 2
		if m%2 == 0 {
			a[k+n+1] = a[k] + (s[j+1]-b[k+n+1]*s[j+2])/t[j+2]
		} else {
			b[k+n+1] = s[j+1] / s[j+2]
		}
		s, t = t, s
	}

	a[2*n] = a[n-1] - b[2*n]*s[1]/t[1]
	return a, b
}
