package genetic_route

import (
	"math"

	"github.com/xrash/smetrics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationMetrics holds aggregate fitness metrics for one generation.
type GenerationMetrics struct {
	Generation   int
	MinLength    float64
	MeanLength   float64
	MaxLength    float64
	StdDevLength float64
	// Mean share of genome bytes that differ from the elite's, in [0, 1].
	Diversity float64
	// Run-wide best after this generation was built.
	BestLength float64
}

func ComputeMetrics(generation int, p *Population) *GenerationMetrics {
	lengths := make([]float64, len(p.Paths))
	for i, path := range p.Paths {
		lengths[i] = path.Length()
	}

	m := &GenerationMetrics{
		Generation:   generation,
		MinLength:    floats.Min(lengths),
		MeanLength:   stat.Mean(lengths, nil),
		MaxLength:    floats.Max(lengths),
		StdDevLength: stat.StdDev(lengths, nil),
		BestLength:   p.state.BestLength(),
	}
	if math.IsNaN(m.StdDevLength) {
		m.StdDevLength = 0
	}

	m.Diversity = diversity(p)
	return m
}

// diversity compares every genome with the elite's using the Hamming
// distance of their byte encodings. The measure is exact per gene for
// graphs of up to 256 nodes; larger graphs use several bytes per gene.
func diversity(p *Population) float64 {
	elite, _ := p.Best()
	width := geneWidth(p.graph.NodeCount())
	reference := genomeKey(elite, width)
	if len(reference) == 0 {
		return 0
	}

	var total float64
	for _, path := range p.Paths {
		distance, err := smetrics.Hamming(reference, genomeKey(path, width))
		if err != nil {
			continue
		}
		total += float64(distance) / float64(len(reference))
	}
	return total / float64(len(p.Paths))
}

// geneWidth is the number of bytes needed to encode ids 1..nodeCount.
func geneWidth(nodeCount int) int {
	width := 1
	for top := nodeCount - 1; top > 0xff; top >>= 8 {
		width++
	}
	return width
}

// genomeKey encodes the interior nodes big-endian, width bytes each.
func genomeKey(path *Path, width int) string {
	key := make([]byte, 0, len(path.Nodes)*width)
	for _, node := range path.Nodes {
		v := node - 1
		for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
			key = append(key, byte(v>>shift))
		}
	}
	return string(key)
}
