package genetic_route

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Graph is a complete weighted graph over nodes 1..NodeCount. Weights are
// stored 0-indexed. The matrix is read-only once built and is shared by
// every Path of a run. Weights need not be symmetric: Cost(a, b) and
// Cost(b, a) are independent directed costs.
type Graph struct {
	weights   *mat.Dense
	nodeCount int
}

// NewGraph draws a uniform weight in [0, 1) for every off-diagonal cell in
// row-major order. The diagonal is zero.
func NewGraph(nodeCount int, rng Rand) (*Graph, error) {
	if nodeCount < MinNodeCount {
		return nil, fmt.Errorf("node count %d is below %d: %w", nodeCount, MinNodeCount, ErrConfiguration)
	}

	weights := mat.NewDense(nodeCount, nodeCount, nil)
	for i := 0; i < nodeCount; i++ {
		for j := 0; j < nodeCount; j++ {
			if i != j {
				weights.Set(i, j, rng.Float64())
			}
		}
	}

	return &Graph{weights: weights, nodeCount: nodeCount}, nil
}

// NewGraphFromWeights builds a graph from a caller supplied matrix. The
// rows are copied.
func NewGraphFromWeights(rows [][]float64) (*Graph, error) {
	n := len(rows)
	if n < MinNodeCount {
		return nil, fmt.Errorf("weight matrix is empty: %w", ErrConfiguration)
	}

	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("weight matrix row %d has %d columns, want %d: %w", i, len(row), n, ErrConfiguration)
		}
		for j, w := range row {
			switch {
			case math.IsNaN(w) || math.IsInf(w, 0):
				return nil, fmt.Errorf("weight [%d][%d] is not finite: %w", i, j, ErrConfiguration)
			case w < 0:
				return nil, fmt.Errorf("weight [%d][%d] = %v is negative: %w", i, j, w, ErrConfiguration)
			case i == j && w != 0:
				return nil, fmt.Errorf("diagonal weight [%d][%d] = %v is not zero: %w", i, j, w, ErrConfiguration)
			}
			data = append(data, w)
		}
	}

	return &Graph{weights: mat.NewDense(n, n, data), nodeCount: n}, nil
}

func (g *Graph) NodeCount() int {
	return g.nodeCount
}

// Contains reports whether id is a valid node identifier.
func (g *Graph) Contains(id int) bool {
	return id >= 1 && id <= g.nodeCount
}

// Cost is the weight of the edge a→b. Both ids must be in range.
func (g *Graph) Cost(a, b int) float64 {
	return g.weights.At(a-1, b-1)
}

// Weights returns a copy of the matrix as rows.
func (g *Graph) Weights() [][]float64 {
	rows := make([][]float64, g.nodeCount)
	for i := range rows {
		rows[i] = mat.Row(nil, i, g.weights)
	}
	return rows
}

func (g *Graph) String() string {
	return fmt.Sprintf("%.2f", mat.Formatted(g.weights, mat.Squeeze()))
}
