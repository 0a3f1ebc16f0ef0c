package mesh

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// meshFile is the on-disk YAML mesh description:
//
//	vertices: [0.0, 0.5, 1.0]
//	cells:
//	  - [0, 1]
//	  - [1, 2]
//	boundary:
//	  1: [0]
//	  2: [2]
type meshFile struct {
	Vertices []float64     `yaml:"vertices"`
	Cells    [][]int       `yaml:"cells"`
	Boundary map[int][]int `yaml:"boundary"`
}

// ReadFile reads a YAML mesh description from path.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("mesh: reading %s: %w", path, err)
	}
	return m, nil
}

// Read parses a YAML mesh description.
func Read(r io.Reader) (*Mesh, error) {
	var mf meshFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&mf); err != nil {
		return nil, fmt.Errorf("mesh: invalid mesh file: %w", err)
	}
	cells := make([][2]int, len(mf.Cells))
	for i, c := range mf.Cells {
		if len(c) != 2 {
			return nil, fmt.Errorf("mesh: cell %d has %d vertices, want 2", i, len(c))
		}
		cells[i] = [2]int{c[0], c[1]}
	}
	return New(mf.Vertices, cells, mf.Boundary)
}
