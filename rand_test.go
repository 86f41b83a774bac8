package genetic_route

// scriptedRand replays fixed draws and records every Intn bound it was
// asked for. Once a script runs out it returns 0.
type scriptedRand struct {
	ints   []int
	floats []float64
	bounds []int
}

func (r *scriptedRand) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// chainGraph is a 4 node graph where 1→2→3→4 costs 0.3 and every other
// edge costs 1.
func chainGraph() *Graph {
	g, err := NewGraphFromWeights([][]float64{
		{0, 0.1, 1, 1},
		{1, 0, 0.1, 1},
		{1, 1, 0, 0.1},
		{1, 1, 1, 0},
	})
	if err != nil {
		panic(err)
	}
	return g
}
