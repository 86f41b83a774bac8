package genetic_route

import (
	"math"
	"sync"
)

// RunState holds the best path seen across every generation of one run.
// Each run owns its own RunState; it is never reset between generations.
type RunState struct {
	mu         sync.Mutex
	bestLength float64
	bestPath   *Path
}

func NewRunState() *RunState {
	return &RunState{bestLength: math.Inf(1)}
}

// Offer records a snapshot of path as the run's best when length is strictly
// lower than the current best. Compare and write happen under one lock, so
// concurrent offers never lose an improvement.
func (s *RunState) Offer(path *Path, length float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !(length < s.bestLength) {
		return false
	}
	s.bestLength = length
	s.bestPath = path.Clone()
	return true
}

// BestLength is +Inf until the first generation is built.
func (s *RunState) BestLength() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestLength
}

// BestPath returns the full best path, or nil if nothing was offered yet.
func (s *RunState) BestPath() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bestPath == nil {
		return nil
	}
	return s.bestPath.GetPath()
}
