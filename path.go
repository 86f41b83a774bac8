package genetic_route

import (
	"fmt"

	cp "github.com/jinzhu/copier"
)

// Path is one candidate route: a fixed start, a fixed end and the interior
// nodes visited between them. The interior nodes are the genome.
type Path struct {
	Start int
	End   int
	Nodes []int
	graph *Graph
}

// NewPath validates every node id against graph. The path takes ownership
// of nodes.
func NewPath(start, end int, nodes []int, graph *Graph) (*Path, error) {
	if graph == nil {
		return nil, fmt.Errorf("path needs a graph: %w", ErrConfiguration)
	}
	if len(nodes) < MinPathLength-2 {
		return nil, fmt.Errorf("path has %d interior nodes, need at least %d: %w", len(nodes), MinPathLength-2, ErrConfiguration)
	}
	if !graph.Contains(start) {
		return nil, fmt.Errorf("start node %d outside [1, %d]: %w", start, graph.NodeCount(), ErrInvalidNodeID)
	}
	if !graph.Contains(end) {
		return nil, fmt.Errorf("end node %d outside [1, %d]: %w", end, graph.NodeCount(), ErrInvalidNodeID)
	}
	for i, node := range nodes {
		if !graph.Contains(node) {
			return nil, fmt.Errorf("interior node %d at position %d outside [1, %d]: %w", node, i, graph.NodeCount(), ErrInvalidNodeID)
		}
	}

	return &Path{Start: start, End: end, Nodes: nodes, graph: graph}, nil
}

// newRandomPath draws interior nodes uniformly from [1, node count].
func newRandomPath(start, end, interior int, graph *Graph, rng Rand) *Path {
	nodes := make([]int, interior)
	for i := range nodes {
		nodes[i] = randint(rng, 1, graph.NodeCount())
	}
	return &Path{Start: start, End: end, Nodes: nodes, graph: graph}
}

// Length sums the edge costs along the full path. It is recomputed on every
// call so it always reflects the current genome.
func (p *Path) Length() float64 {
	var length float64
	prev := p.Start
	for _, node := range p.Nodes {
		length += p.graph.Cost(prev, node)
		prev = node
	}
	return length + p.graph.Cost(prev, p.End)
}

// Mutate replaces one interior node with a random node id. Any interior
// position can be picked. The replacement value is drawn before the
// position. A path without interior nodes is left as is.
func (p *Path) Mutate(rng Rand) {
	if len(p.Nodes) == 0 {
		return
	}
	node := randint(rng, 1, p.graph.NodeCount())
	position := randint(rng, 0, len(p.Nodes)-1)
	p.Nodes[position] = node
}

// GetPath returns start, interior nodes and end as a new slice. Later
// mutation never changes a slice returned earlier.
func (p *Path) GetPath() []int {
	full := make([]int, 0, len(p.Nodes)+2)
	full = append(full, p.Start)
	full = append(full, p.Nodes...)
	return append(full, p.End)
}

// Clone returns an independent copy sharing the same graph.
func (p *Path) Clone() *Path {
	clone := &Path{graph: p.graph}
	if err := cp.CopyWithOption(clone, p, cp.Option{DeepCopy: true}); err != nil {
		// copier only fails on nil or mismatched arguments.
		clone.Start, clone.End = p.Start, p.End
		clone.Nodes = append([]int(nil), p.Nodes...)
	}
	return clone
}

func (p *Path) String() string {
	return fmt.Sprint(p.GetPath())
}
