package solver

import (
	"log/slog"

	"github.com/askiada/go-almanac/pkg/pipeline/measure"
)

// Option configures a Solver.
type Option func(s *Solver)

// WithConcurrency sets the number of goroutines running each stage.
func WithConcurrency(concurrent int) Option {
	return func(s *Solver) {
		s.concurrency = concurrent
	}
}

// WithMeasure records step durations into m.
func WithMeasure(m measure.Measure) Option {
	return func(s *Solver) {
		s.measure = m
	}
}

// WithGraph writes the DOT graph of the steps to fileName once the run is over.
func WithGraph(fileName string) Option {
	return func(s *Solver) {
		s.graphFile = fileName
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}
