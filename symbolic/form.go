package symbolic

import (
	"fmt"
	"strings"
)

// MeasureKind selects the mesh entities an integral runs over.
type MeasureKind int

const (
	CellMeasure MeasureKind = iota
	ExteriorFacetMeasure
	InteriorFacetMeasure
)

func (k MeasureKind) String() string {
	switch k {
	case CellMeasure:
		return "dx"
	case ExteriorFacetMeasure:
		return "ds"
	case InteriorFacetMeasure:
		return "dS"
	}
	return fmt.Sprintf("measure(%d)", int(k))
}

// Integral pairs a scalar integrand with a measure.
type Integral struct {
	Integrand Expr
	Kind      MeasureKind
}

// Form is an ordered sum of integrals. The zero-integral form is valid
// and assembles to zero.
type Form struct {
	integrals []Integral
}

// NewForm builds a form from integrals. Integrands must be scalar.
func NewForm(integrals ...Integral) *Form {
	for _, it := range integrals {
		if !it.Integrand.ValueShape().IsScalar() {
			panic(fmt.Sprintf("symbolic: integrand %s has shape %v, want scalar",
				it.Integrand, it.Integrand.ValueShape()))
		}
	}
	return &Form{integrals: integrals}
}

// CellIntegral is shorthand for a single-integral form over cells.
func CellIntegral(e Expr) *Form {
	return NewForm(Integral{Integrand: e, Kind: CellMeasure})
}

// ExteriorFacetIntegral is shorthand for a single-integral form over
// the boundary facets.
func ExteriorFacetIntegral(e Expr) *Form {
	return NewForm(Integral{Integrand: e, Kind: ExteriorFacetMeasure})
}

// InteriorFacetIntegral is shorthand for a single-integral form over
// interior facets.
func InteriorFacetIntegral(e Expr) *Form {
	return NewForm(Integral{Integrand: e, Kind: InteriorFacetMeasure})
}

// Integrals returns the form's integrals in definition order. The
// returned slice is shared; callers must not mutate it.
func (f *Form) Integrals() []Integral {
	return f.integrals
}

// Add returns the sum of two forms, concatenating their integrals.
func (f *Form) Add(g *Form) *Form {
	sum := make([]Integral, 0, len(f.integrals)+len(g.integrals))
	sum = append(sum, f.integrals...)
	sum = append(sum, g.integrals...)
	return &Form{integrals: sum}
}

// Arguments returns the form's arguments sorted by count.
func (f *Form) Arguments() []Argument {
	return ExtractArguments(f)
}

func (f *Form) String() string {
	if len(f.integrals) == 0 {
		return "0"
	}
	parts := make([]string, len(f.integrals))
	for i, it := range f.integrals {
		parts[i] = fmt.Sprintf("%s * %s", it.Integrand, it.Kind)
	}
	return strings.Join(parts, " + ")
}
