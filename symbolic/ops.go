package symbolic

import "fmt"

// Shape rules are enforced at construction time. Violations are
// programming errors in the form definition and panic with a message
// naming the offending shapes.

// Sum is the pointwise sum of two equally shaped expressions.
type Sum struct {
	Left, Right Expr
}

func Add(a, b Expr) Expr {
	if !a.ValueShape().Equal(b.ValueShape()) {
		panic(fmt.Sprintf("symbolic: cannot add shapes %v and %v",
			a.ValueShape(), b.ValueShape()))
	}
	return &Sum{Left: a, Right: b}
}

// Sub builds a - b as a + (-1)*b.
func Sub(a, b Expr) Expr {
	return Add(a, Mul(NewConstant(-1), b))
}

func (s *Sum) ValueShape() Shape { return s.Left.ValueShape() }

func (s *Sum) String() string {
	return fmt.Sprintf("(%s + %s)", s.Left, s.Right)
}

// Product is multiplication by a scalar factor. At least one operand
// must be scalar; the result takes the other operand's shape.
type Product struct {
	Left, Right Expr
}

func Mul(a, b Expr) Expr {
	if !a.ValueShape().IsScalar() && !b.ValueShape().IsScalar() {
		panic(fmt.Sprintf("symbolic: product needs a scalar operand, got %v and %v",
			a.ValueShape(), b.ValueShape()))
	}
	return &Product{Left: a, Right: b}
}

func (p *Product) ValueShape() Shape {
	if p.Left.ValueShape().IsScalar() {
		return p.Right.ValueShape()
	}
	return p.Left.ValueShape()
}

func (p *Product) String() string {
	return fmt.Sprintf("(%s * %s)", p.Left, p.Right)
}

// InnerProduct contracts two equally shaped expressions to a scalar.
type InnerProduct struct {
	Left, Right Expr
}

func Inner(a, b Expr) Expr {
	if !a.ValueShape().Equal(b.ValueShape()) {
		panic(fmt.Sprintf("symbolic: cannot contract shapes %v and %v",
			a.ValueShape(), b.ValueShape()))
	}
	return &InnerProduct{Left: a, Right: b}
}

func (ip *InnerProduct) ValueShape() Shape { return nil }

func (ip *InnerProduct) String() string {
	return fmt.Sprintf("inner(%s, %s)", ip.Left, ip.Right)
}

// Gradient is the spatial gradient of its operand. On one-dimensional
// domains the gradient of a scalar is again scalar, so the operand
// shape is preserved; higher-dimensional index handling is outside the
// scope of this engine.
type Gradient struct {
	Operand Expr
}

func Grad(e Expr) Expr {
	return &Gradient{Operand: e}
}

func (g *Gradient) ValueShape() Shape { return g.Operand.ValueShape() }

func (g *Gradient) String() string {
	return fmt.Sprintf("grad(%s)", g.Operand)
}

// SubComponent selects the Index-th subspace component of an
// expression over a mixed element. Produced by Split.
type SubComponent struct {
	Base  Expr
	Index int
	shape Shape
}

func NewSubComponent(base Expr, index int) *SubComponent {
	me, ok := elementOf(base).(MixedElement)
	if !ok {
		panic(fmt.Sprintf("symbolic: %s is not over a mixed element", base))
	}
	if index < 0 || index >= me.NumSubElements() {
		panic(fmt.Sprintf("symbolic: subcomponent %d out of range [0,%d)",
			index, me.NumSubElements()))
	}
	return &SubComponent{
		Base:  base,
		Index: index,
		shape: me.SubElement(index).ValueShape(),
	}
}

func (sc *SubComponent) ValueShape() Shape { return sc.shape }

func (sc *SubComponent) String() string {
	return fmt.Sprintf("split(%s)[%d]", sc.Base, sc.Index)
}

// elementOf returns the element behind an argument or coefficient
// leaf, or nil when the expression carries no element.
func elementOf(e Expr) Element {
	switch n := e.(type) {
	case Argument:
		return n.ArgElement()
	case Coefficient:
		return n.CoefficientElement()
	}
	return nil
}
