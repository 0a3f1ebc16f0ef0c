package symbolic

import "strconv"

// Constant is a literal scalar value.
type Constant struct {
	Value float64
}

func NewConstant(v float64) *Constant {
	return &Constant{Value: v}
}

func (c *Constant) ValueShape() Shape { return nil }

func (c *Constant) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

// SpatialCoordinate is the physical coordinate of the evaluation point.
// On one-dimensional domains it is scalar valued.
type SpatialCoordinate struct {
	Domain Domain
}

func NewSpatialCoordinate(d Domain) *SpatialCoordinate {
	return &SpatialCoordinate{Domain: d}
}

func (x *SpatialCoordinate) ValueShape() Shape {
	return geometricShape(x.Domain)
}

func (x *SpatialCoordinate) String() string { return "x" }

// FacetNormal is the outward unit normal on a facet. It is only
// meaningful inside facet integrals.
type FacetNormal struct {
	Domain Domain
}

func NewFacetNormal(d Domain) *FacetNormal {
	return &FacetNormal{Domain: d}
}

func (n *FacetNormal) ValueShape() Shape {
	return geometricShape(n.Domain)
}

func (n *FacetNormal) String() string { return "n" }

// Circumradius is the circumradius of the cell containing the
// evaluation point. For an interval of length h it is h/2.
type Circumradius struct {
	Domain Domain
}

func NewCircumradius(d Domain) *Circumradius {
	return &Circumradius{Domain: d}
}

func (c *Circumradius) ValueShape() Shape { return nil }

func (c *Circumradius) String() string { return "circumradius" }

// geometricShape collapses one-dimensional vectors to scalars so that
// coordinate-like quantities on interval meshes compose with scalar
// arithmetic without explicit indexing.
func geometricShape(d Domain) Shape {
	if d.GeometricDimension() == 1 {
		return nil
	}
	return Shape{d.GeometricDimension()}
}
