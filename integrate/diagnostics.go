package integrate

// Diagnostics keys.
const (
	KeyL1Norm   = "L1 norm"
	KeyAbscissa = "abscissa"
	KeyWeights  = "weights"
	KeyLevels   = "levels"
)

// Diagnostics is the introspection data of one integration. Which fields are
// meaningful depends on the method; Keys lists them.
type Diagnostics struct {
	keys     []string
	Abscissa []float64
	Weights  []float64
	L1Norm   float64
	Levels   int
}

// Keys returns the diagnostic keys the method reports, in a fixed order.
func (d *Diagnostics) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Map returns the diagnostics keyed by name. The slices are copies.
func (d *Diagnostics) Map() map[string]any {
	m := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		switch k {
		case KeyL1Norm:
			m[k] = d.L1Norm
		case KeyAbscissa:
			m[k] = append([]float64(nil), d.Abscissa...)
		case KeyWeights:
			m[k] = append([]float64(nil), d.Weights...)
		case KeyLevels:
			m[k] = d.Levels
		}
	}
	return m
}

// Result is a complete integration outcome.
type Result struct {
	// Diagnostics is nil unless FullOutput was requested.
	Diagnostics   *Diagnostics
	Value         complex128
	ErrorEstimate float64
}
