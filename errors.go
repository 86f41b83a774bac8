package genetic_route

import "errors"

// Every constructor in this package returns one of these, wrapped with
// context. Match them with errors.Is.
var (
	// ErrConfiguration is returned for constants the algorithm can't run
	// with: fewer than one node, fewer than two paths per generation, or
	// paths with no interior positions.
	ErrConfiguration = errors.New("genetic_route: invalid configuration")

	// ErrInvalidNodeID is returned when a node identifier falls outside
	// [1, node count].
	ErrInvalidNodeID = errors.New("genetic_route: node id out of range")
)
