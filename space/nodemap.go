// Package space provides function spaces over 1-D meshes: global
// degree-of-freedom numbering, cell and facet node maps, and mixed
// spaces built from component spaces.
package space

import "fmt"

// NodeMap maps mesh entities (cells or facets) to global degrees of
// freedom: Values[entity][localnode] → global dof.
type NodeMap struct {
	Values [][]int
	Arity  int // nodes per entity
}

// NewNodeMap validates a rectangular entity → dof table.
func NewNodeMap(values [][]int, arity int) (*NodeMap, error) {
	if arity < 1 {
		return nil, fmt.Errorf("space: node map arity must be >= 1, got %d", arity)
	}
	for e, row := range values {
		if len(row) != arity {
			return nil, fmt.Errorf("space: entity %d has %d nodes, want %d", e, len(row), arity)
		}
	}
	return &NodeMap{Values: values, Arity: arity}, nil
}

// Entity returns the global dofs of one entity. The slice is shared.
func (nm *NodeMap) Entity(i int) []int { return nm.Values[i] }

// Len returns the number of entities.
func (nm *NodeMap) Len() int { return len(nm.Values) }

// Verify checks that every index lies in [0, dofCount).
func (nm *NodeMap) Verify(dofCount int) error {
	for e, row := range nm.Values {
		for _, dof := range row {
			if dof < 0 || dof >= dofCount {
				return fmt.Errorf("space: entity %d references dof %d, have %d dofs",
					e, dof, dofCount)
			}
		}
	}
	return nil
}

// offsetNodeMap shifts every dof in a node map by a constant, used to
// stack component maps in mixed spaces.
func offsetNodeMap(nm *NodeMap, offset int) *NodeMap {
	values := make([][]int, len(nm.Values))
	for e, row := range nm.Values {
		shifted := make([]int, len(row))
		for i, dof := range row {
			shifted[i] = dof + offset
		}
		values[e] = shifted
	}
	return &NodeMap{Values: values, Arity: nm.Arity}
}
