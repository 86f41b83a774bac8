package genetic_route

import (
	"fmt"
	"sort"
)

type PopulationConfig struct {
	PathsCount int `toml:"paths_count"`
	PathLength int `toml:"path_length"`
	Start      int `toml:"start"`
	End        int `toml:"end"`
}

// Validate checks the constants against a graph of nodeCount nodes.
func (c *PopulationConfig) Validate(nodeCount int) error {
	if c == nil {
		return fmt.Errorf("population config cannot be nil: %w", ErrConfiguration)
	}
	if c.PathsCount < MinPathsCount {
		return fmt.Errorf("paths count %d is below %d: %w", c.PathsCount, MinPathsCount, ErrConfiguration)
	}
	if c.PathLength < MinPathLength {
		return fmt.Errorf("path length %d is below %d: %w", c.PathLength, MinPathLength, ErrConfiguration)
	}
	if c.Start < 1 || c.Start > nodeCount {
		return fmt.Errorf("start node %d outside [1, %d]: %w", c.Start, nodeCount, ErrInvalidNodeID)
	}
	if c.End < 1 || c.End > nodeCount {
		return fmt.Errorf("end node %d outside [1, %d]: %w", c.End, nodeCount, ErrInvalidNodeID)
	}
	return nil
}

// Interior is the number of genes of every path.
func (c *PopulationConfig) Interior() int {
	return c.PathLength - 2
}

// MutationCohort is the number of mutations applied per generation.
func (c *PopulationConfig) MutationCohort() int {
	return (c.PathsCount + MutationDivisor - 1) / MutationDivisor
}

type MutationRecord struct {
	Before []int
	After  []int
}

type CrossoverRecord struct {
	Parent1 []int
	Parent2 []int
	Child   []int
}

// Population is one generation. It is never modified after construction:
// Advance breeds from copies and returns a new Population.
type Population struct {
	Paths  []*Path
	Config *PopulationConfig

	// How this generation was bred from its parent. Empty for the first one.
	Mutations  []MutationRecord
	Crossovers []CrossoverRecord

	graph      *Graph
	state      *RunState
	best       *Path
	bestLength float64
}

// NewPopulation wraps paths into a generation and offers its shortest path
// to state.
func NewPopulation(config *PopulationConfig, graph *Graph, state *RunState, paths []*Path) (*Population, error) {
	if graph == nil {
		return nil, fmt.Errorf("population needs a graph: %w", ErrConfiguration)
	}
	if state == nil {
		return nil, fmt.Errorf("population needs a run state: %w", ErrConfiguration)
	}
	if err := config.Validate(graph.NodeCount()); err != nil {
		return nil, err
	}
	if len(paths) != config.PathsCount {
		return nil, fmt.Errorf("got %d paths, want %d: %w", len(paths), config.PathsCount, ErrConfiguration)
	}

	p := &Population{
		Paths:  paths,
		Config: config,
		graph:  graph,
		state:  state,
	}

	for i, path := range paths {
		if path == nil || len(path.Nodes) != config.Interior() {
			return nil, fmt.Errorf("path %d does not have %d interior nodes: %w", i, config.Interior(), ErrConfiguration)
		}
		if path.graph == nil {
			return nil, fmt.Errorf("path %d has no graph: %w", i, ErrConfiguration)
		}
		for j, node := range path.Nodes {
			if !graph.Contains(node) {
				return nil, fmt.Errorf("path %d: interior node %d at position %d outside [1, %d]: %w", i, node, j, graph.NodeCount(), ErrInvalidNodeID)
			}
		}
		if path.graph != graph {
			return nil, fmt.Errorf("path %d belongs to another graph: %w", i, ErrInvalidNodeID)
		}
		if path.Start != config.Start || path.End != config.End {
			return nil, fmt.Errorf("path %d runs %d→%d, want %d→%d: %w", i, path.Start, path.End, config.Start, config.End, ErrConfiguration)
		}
		// First of equally short paths wins.
		if length := path.Length(); p.best == nil || length < p.bestLength {
			p.best, p.bestLength = path, length
		}
	}

	state.Offer(p.best, p.bestLength)
	return p, nil
}

// RandomPaths draws the paths of a first generation.
func RandomPaths(config *PopulationConfig, graph *Graph, rng Rand) ([]*Path, error) {
	if graph == nil {
		return nil, fmt.Errorf("population needs a graph: %w", ErrConfiguration)
	}
	if err := config.Validate(graph.NodeCount()); err != nil {
		return nil, err
	}

	paths := make([]*Path, config.PathsCount)
	for i := range paths {
		paths[i] = newRandomPath(config.Start, config.End, config.Interior(), graph, rng)
	}
	return paths, nil
}

// NewRandomPopulation builds a first generation from random paths.
func NewRandomPopulation(config *PopulationConfig, graph *Graph, state *RunState, rng Rand) (*Population, error) {
	paths, err := RandomPaths(config, graph, rng)
	if err != nil {
		return nil, err
	}
	return NewPopulation(config, graph, state, paths)
}

// Best returns this generation's shortest path and its length.
func (p *Population) Best() (*Path, float64) {
	return p.best, p.bestLength
}

// State is the run-wide best tracking this generation reports to.
func (p *Population) State() *RunState {
	return p.state
}

func (p *Population) Graph() *Graph {
	return p.graph
}

// Advance breeds the next generation: the elite survives unchanged, a
// tenth of the paths are mutated and uniform crossover fills the rest.
func (p *Population) Advance(rng Rand) (*Population, error) {
	descendants, mutations, crossovers := p.breed(rng)

	next, err := NewPopulation(p.Config, p.graph, p.state, descendants)
	if err != nil {
		return nil, fmt.Errorf("failed to build next generation: %w", err)
	}
	next.Mutations = mutations
	next.Crossovers = crossovers
	return next, nil
}

type rankedPath struct {
	path   *Path
	length float64
}

func (p *Population) breed(rng Rand) ([]*Path, []MutationRecord, []CrossoverRecord) {
	count := p.Config.PathsCount

	ranked := make([]rankedPath, len(p.Paths))
	for i, path := range p.Paths {
		ranked[i] = rankedPath{path: path, length: path.Length()}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].length < ranked[j].length
	})

	descendants := make([]*Path, 0, count)
	descendants = append(descendants, ranked[0].path.Clone())

	// The breeding pool is a private copy of everything but the elite, so
	// mutation never reaches back into this generation.
	pool := make([]*Path, len(ranked)-1)
	for i, r := range ranked[1:] {
		pool[i] = r.path.Clone()
	}
	last := count - 2

	// A pool path picked more than once collects every mutation, and each
	// slot it fills carries the final genome.
	mutations := make([]MutationRecord, 0, p.Config.MutationCohort())
	picked := make([]int, 0, p.Config.MutationCohort())
	for i := 0; i < p.Config.MutationCohort(); i++ {
		idx := randint(rng, 0, last)
		path := pool[idx]
		before := path.GetPath()
		path.Mutate(rng)
		mutations = append(mutations, MutationRecord{Before: before, After: path.GetPath()})
		picked = append(picked, idx)
	}
	for _, idx := range picked {
		descendants = append(descendants, pool[idx].Clone())
	}

	var crossovers []CrossoverRecord
	for len(descendants) < count {
		parent1 := pool[randint(rng, 0, last)]
		parent2 := pool[randint(rng, 0, last)]
		child := crossover(parent1, parent2, rng)
		crossovers = append(crossovers, CrossoverRecord{
			Parent1: parent1.GetPath(),
			Parent2: parent2.GetPath(),
			Child:   child.GetPath(),
		})
		descendants = append(descendants, child)
	}

	return descendants, mutations, crossovers
}

// crossover takes every gene from parent1 on heads and from parent2 on tails.
func crossover(parent1, parent2 *Path, rng Rand) *Path {
	nodes := make([]int, len(parent1.Nodes))
	for i := range nodes {
		if randint(rng, 0, 1) == 1 {
			nodes[i] = parent1.Nodes[i]
		} else {
			nodes[i] = parent2.Nodes[i]
		}
	}
	return &Path{Start: parent1.Start, End: parent1.End, Nodes: nodes, graph: parent1.graph}
}
