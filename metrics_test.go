package genetic_route

import (
	"math"
	test "testing"
)

func TestComputeMetrics(t *test.T) {
	g := chainGraph()
	pop, err := NewPopulation(chainConfig(), g, NewRunState(), tiedPaths(t, g))
	if err != nil {
		t.Fatalf("NewPopulation returned error: %v", err)
	}

	m := ComputeMetrics(3, pop)
	if m.Generation != 3 {
		t.Errorf("Expected generation 3, got %d", m.Generation)
	}
	if m.MinLength != 1 || m.MaxLength != 3 {
		t.Errorf("Expected min 1 and max 3, got %v and %v", m.MinLength, m.MaxLength)
	}
	if math.Abs(m.MeanLength-1.775) > 1e-9 {
		t.Errorf("Expected mean 1.775, got %v", m.MeanLength)
	}
	if m.StdDevLength <= 0 {
		t.Errorf("Expected a positive standard deviation, got %v", m.StdDevLength)
	}
	if m.BestLength != 1 {
		t.Errorf("Expected best length 1, got %v", m.BestLength)
	}

	// Elite [4 4] against [2 1], [4 4], [1 1], [3 1]: 2 + 0 + 2 + 2 of 8 genes.
	if math.Abs(m.Diversity-0.75) > 1e-9 {
		t.Errorf("Expected diversity 0.75, got %v", m.Diversity)
	}
}

func TestDiversityOfClones(t *test.T) {
	g := chainGraph()
	p := makePath(t, g, 1, 4, 4, 4)
	paths := []*Path{p, p.Clone(), p.Clone(), p.Clone()}

	pop, err := NewPopulation(chainConfig(), g, NewRunState(), paths)
	if err != nil {
		t.Fatalf("NewPopulation returned error: %v", err)
	}
	if m := ComputeMetrics(0, pop); m.Diversity != 0 || m.StdDevLength != 0 {
		t.Errorf("Expected no diversity or spread among clones, got %v and %v", m.Diversity, m.StdDevLength)
	}
}

func TestGeneWidth(t *test.T) {
	for nodes, expected := range map[int]int{1: 1, 20: 1, 256: 1, 257: 2, 65536: 2, 65537: 3} {
		if got := geneWidth(nodes); got != expected {
			t.Errorf("Expected width %d for %d nodes, got %d", expected, nodes, got)
		}
	}
}

func TestGenomeKey(t *test.T) {
	p := &Path{Nodes: []int{1, 2, 300}}
	if key := genomeKey(p, 2); key != "\x00\x00\x00\x01\x01\x2b" {
		t.Errorf("Unexpected genome key %q", key)
	}
}
