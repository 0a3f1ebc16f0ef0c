package function

import (
	"fmt"

	"github.com/notargets/FormKernel/space"
)

// DirichletBC constrains a set of degrees of freedom to a prescribed
// value. Only the node set matters to action assembly; the value is
// used when applying the condition to a function directly.
type DirichletBC struct {
	space *space.FunctionSpace
	value float64
	nodes []int
}

// NewDirichletBC constrains the boundary facets of V carrying the
// given marker.
func NewDirichletBC(V *space.FunctionSpace, value float64, marker int) (*DirichletBC, error) {
	nodes := V.BoundaryNodes(marker)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("function: no boundary facets carry marker %d", marker)
	}
	return &DirichletBC{space: V, value: value, nodes: nodes}, nil
}

// NewDirichletBCOnNodes constrains an explicit dof set. Order is
// preserved; duplicates are dropped.
func NewDirichletBCOnNodes(V *space.FunctionSpace, value float64, nodes []int) (*DirichletBC, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("function: empty node set")
	}
	seen := make(map[int]bool, len(nodes))
	unique := make([]int, 0, len(nodes))
	for _, n := range nodes {
		if n < 0 || n >= V.DofCount() {
			return nil, fmt.Errorf("function: node %d out of range [0,%d)", n, V.DofCount())
		}
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}
	return &DirichletBC{space: V, value: value, nodes: unique}, nil
}

func (bc *DirichletBC) Space() *space.FunctionSpace { return bc.space }
func (bc *DirichletBC) Value() float64              { return bc.value }

// NodeSet returns the constrained dofs. The slice is shared; callers
// must not mutate it.
func (bc *DirichletBC) NodeSet() []int { return bc.nodes }

// Apply sets the condition's value on f's constrained dofs.
func (bc *DirichletBC) Apply(f *Function) error {
	return f.SetConstOn(bc.value, bc.nodes)
}
