package genetic_route

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Recorder observes every generation of a run. Generation 0 is the random
// first generation.
type Recorder interface {
	Record(generation int, p *Population, m *GenerationMetrics) error
}

// Recorders fans a generation out to every recorder. All recorders are
// called even when one fails; the first error is returned.
type Recorders []Recorder

func (rs Recorders) Record(generation int, p *Population, m *GenerationMetrics) error {
	var first error
	for _, r := range rs {
		if err := r.Record(generation, p, m); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LogRecorder reports progress through logrus. The best path is logged at
// Info every Every generations and on the Final one. Breeding details are
// logged at Debug for the first and Final generations.
type LogRecorder struct {
	Log   log.FieldLogger
	Every int
	Final int
}

func NewLogRecorder(logger log.FieldLogger, every, final int) *LogRecorder {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogRecorder{Log: logger, Every: every, Final: final}
}

func (r *LogRecorder) Record(generation int, p *Population, m *GenerationMetrics) error {
	entry := r.Log.WithField("generation", generation)

	if generation == 0 {
		for i, path := range p.Paths {
			entry.Debugf("Initial path %d: %v", i, path.GetPath())
		}
	}

	if generation == 0 || generation == r.Final || (r.Every > 0 && generation%r.Every == 0) {
		entry.WithFields(log.Fields{
			"min_length":  m.MinLength,
			"mean_length": m.MeanLength,
			"diversity":   fmt.Sprintf("%.3f", m.Diversity),
			"best_length": m.BestLength,
		}).Infof("Min path: %v", p.State().BestPath())
	}

	if generation == 1 || (generation > 0 && generation == r.Final) {
		for _, mut := range p.Mutations {
			entry.Debugf("Mutation before: %v after: %v", mut.Before, mut.After)
		}
		for _, c := range p.Crossovers {
			entry.Debugf("Crossover father: %v mother: %v child: %v", c.Parent1, c.Parent2, c.Child)
		}
	}
	return nil
}
