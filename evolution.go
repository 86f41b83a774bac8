package genetic_route

import (
	"context"
	"fmt"
	"time"
)

type GraphConfig struct {
	NodeCount int `toml:"node_count"`
}

type EvolutionConfig struct {
	GenerationCount int               `toml:"generation_count"`
	Seed            int64             `toml:"seed"`
	LogEvery        int               `toml:"log_every"`
	Timeout         time.Duration     `toml:"timeout"`
	Graph           *GraphConfig      `toml:"graph"`
	Population      *PopulationConfig `toml:"population"`
}

func (c *EvolutionConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("evolution config cannot be nil: %w", ErrConfiguration)
	}
	if c.Graph == nil {
		return fmt.Errorf("graph config cannot be nil: %w", ErrConfiguration)
	}
	if c.Graph.NodeCount < MinNodeCount {
		return fmt.Errorf("node count %d is below %d: %w", c.Graph.NodeCount, MinNodeCount, ErrConfiguration)
	}
	if c.GenerationCount < 0 {
		return fmt.Errorf("generation count %d is negative: %w", c.GenerationCount, ErrConfiguration)
	}
	if c.LogEvery < 0 {
		return fmt.Errorf("log_every %d is negative: %w", c.LogEvery, ErrConfiguration)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout %v is negative: %w", c.Timeout, ErrConfiguration)
	}
	return c.Population.Validate(c.Graph.NodeCount)
}

// Evolution drives one run: it builds the first generation, advances it
// GenerationCount times and hands every generation to the recorders.
type Evolution struct {
	Config   *EvolutionConfig
	Graph    *Graph
	State    *RunState
	Recorder Recorder
	rng      Rand
}

type RunResult struct {
	// Number of Advance calls completed.
	Generations int
	BestLength  float64
	BestPath    []int
	Final       *Population
}

func NewEvolution(config *EvolutionConfig, graph *Graph, rng Rand, recorders ...Recorder) (*Evolution, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if graph == nil {
		return nil, fmt.Errorf("evolution needs a graph: %w", ErrConfiguration)
	}
	if graph.NodeCount() != config.Graph.NodeCount {
		return nil, fmt.Errorf("graph has %d nodes, config wants %d: %w", graph.NodeCount(), config.Graph.NodeCount, ErrConfiguration)
	}
	if rng == nil {
		return nil, fmt.Errorf("evolution needs a random source: %w", ErrConfiguration)
	}

	return &Evolution{
		Config:   config,
		Graph:    graph,
		State:    NewRunState(),
		Recorder: Recorders(recorders),
		rng:      rng,
	}, nil
}

// Run evolves until GenerationCount generations were produced, or ctx
// (bounded by Config.Timeout when set) is done. On cancellation the result
// so far is returned together with ctx.Err().
func (e *Evolution) Run(ctx context.Context) (*RunResult, error) {
	if e.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Config.Timeout)
		defer cancel()
	}

	pop, err := NewRandomPopulation(e.Config.Population, e.Graph, e.State, e.rng)
	if err != nil {
		return nil, err
	}
	if err := e.record(0, pop); err != nil {
		return e.result(0, pop), err
	}

	for i := 1; i <= e.Config.GenerationCount; i++ {
		select {
		case <-ctx.Done():
			return e.result(i-1, pop), ctx.Err()
		default:
		}

		if pop, err = pop.Advance(e.rng); err != nil {
			return nil, err
		}
		if err := e.record(i, pop); err != nil {
			return e.result(i, pop), err
		}
	}

	return e.result(e.Config.GenerationCount, pop), nil
}

func (e *Evolution) record(generation int, pop *Population) error {
	if e.Recorder == nil {
		return nil
	}
	if err := e.Recorder.Record(generation, pop, ComputeMetrics(generation, pop)); err != nil {
		return fmt.Errorf("failed to record generation %d: %w", generation, err)
	}
	return nil
}

func (e *Evolution) result(generations int, pop *Population) *RunResult {
	return &RunResult{
		Generations: generations,
		BestLength:  e.State.BestLength(),
		BestPath:    e.State.BestPath(),
		Final:       pop,
	}
}
