package solver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-almanac/internal/logging"
	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/pipeline"
	"github.com/askiada/go-almanac/pkg/pipeline/drawer"
	"github.com/askiada/go-almanac/pkg/pipeline/measure"
	"github.com/askiada/go-almanac/pkg/pipeline/model"
)

// Report holds the smallest final value of each mode that was run.
type Report struct {
	Points *int64
	Ranges *int64
}

type result struct {
	mode  Mode
	value int64
}

// Solver streams seeds through the stages of an almanac pipeline.
type Solver struct {
	pipeline    *almanac.Pipeline
	concurrency int
	measure     measure.Measure
	graphFile   string
	logger      *slog.Logger
}

// New creates a solver for p.
func New(p *almanac.Pipeline, opts ...Option) *Solver {
	s := &Solver{
		pipeline:    p,
		concurrency: 1,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.concurrency < 1 {
		s.concurrency = 1
	}

	return s
}

func (s *Solver) pipelineOptions() []model.PipelineOption {
	var opts []model.PipelineOption
	if s.measure != nil {
		opts = append(opts, measure.PipelineMeasure(s.measure))
	}
	if s.graphFile != "" {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(s.graphFile), s.measure))
	}

	return opts
}

// Solve returns the smallest final value over seeds for the requested mode. In ranges mode, seeds
// are read as (start, length) pairs and ranges are split at stage boundaries instead of being
// enumerated.
func (s *Solver) Solve(ctx context.Context, seeds []int64, mode Mode) (Report, error) {
	if !mode.points() && !mode.ranges() {
		return Report{}, errors.Wrapf(ErrUnknownMode, "%q", mode)
	}
	if len(seeds) == 0 {
		return Report{}, errors.Wrap(almanac.ErrEmptyBatch, "unable to solve")
	}
	if mode.ranges() {
		_, err := almanac.SpansFromPairs(seeds)
		if err != nil {
			return Report{}, errors.Wrap(err, "unable to read seed ranges")
		}
	}

	if err := ctx.Err(); err != nil {
		return Report{}, errors.Wrap(err, "unable to solve")
	}

	start := time.Now()
	s.logger.Debug("solver started", "mode", string(mode), "seeds", len(seeds), "stages", s.pipeline.Len(), "concurrency", s.concurrency)

	pipe, err := pipeline.New(ctx, s.pipelineOptions()...)
	if err != nil {
		return Report{}, errors.Wrap(err, "unable to create pipeline")
	}

	root, err := pipeline.AddRootStep(pipe, "seeds", func(ctx context.Context, rootChan chan<- []int64) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rootChan <- seeds:
			return nil
		}
	})
	if err != nil {
		return Report{}, errors.Wrap(err, "unable to add seeds step")
	}

	results, err := s.addBranches(pipe, root, mode)
	if err != nil {
		return Report{}, err
	}

	report := Report{}
	err = pipeline.AddSink(pipe, "minimum", results, func(_ context.Context, res result) error {
		report.keep(res)

		return nil
	})
	if err != nil {
		return Report{}, errors.Wrap(err, "unable to add minimum step")
	}

	err = pipe.Run()
	if err != nil {
		return Report{}, errors.Wrap(err, "unable to run pipeline")
	}

	if (mode.points() && report.Points == nil) || (mode.ranges() && report.Ranges == nil) {
		return Report{}, errors.Wrap(almanac.ErrEmptyBatch, "no final value")
	}
	if s.measure != nil {
		if steps := measure.Bottlenecks(s.measure); len(steps) > 0 {
			s.logger.Debug("busiest step", "step", steps[0].Name, "busy", steps[0].Busy.String())
		}
	}
	s.logger.Info("solved", "mode", string(mode), "elapsed", time.Since(start).String())

	return report, nil
}

func (r *Report) keep(res result) {
	best := &r.Points
	if res.mode == ModeRanges {
		best = &r.Ranges
	}
	if *best == nil || res.value < **best {
		value := res.value
		*best = &value
	}
}

func (s *Solver) addBranches(pipe *pipeline.Pipeline, root *model.Step[[]int64], mode Mode) (*model.Step[result], error) {
	if mode != ModeBoth {
		if mode == ModePoints {
			return s.addPointsBranch(pipe, root)
		}

		return s.addRangesBranch(pipe, root)
	}

	splitter, err := pipeline.AddSplitter(pipe, "modes", root, 2)
	if err != nil {
		return nil, errors.Wrap(err, "unable to add modes splitter")
	}
	pointsInput, err := splitter.Next()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get points branch")
	}
	rangesInput, err := splitter.Next()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get ranges branch")
	}

	points, err := s.addPointsBranch(pipe, pointsInput)
	if err != nil {
		return nil, err
	}
	ranges, err := s.addRangesBranch(pipe, rangesInput)
	if err != nil {
		return nil, err
	}

	merged, err := pipeline.AddMerger(pipe, "results", points, ranges)
	if err != nil {
		return nil, errors.Wrap(err, "unable to add results merger")
	}

	return merged, nil
}

func stepName(mode Mode, idx int, stage *almanac.Stage) string {
	return fmt.Sprintf("%s %d: %s", mode, idx+1, stage.Name())
}

func (s *Solver) addPointsBranch(pipe *pipeline.Pipeline, input *model.Step[[]int64]) (*model.Step[result], error) {
	current, err := pipeline.AddStepOneToMany(pipe, "points", input, func(_ context.Context, seeds []int64) ([]int64, error) {
		return seeds, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add points step")
	}

	for idx, stage := range s.pipeline.Stages() {
		current, err = pipeline.AddStepOneToOne(pipe, stepName(ModePoints, idx, stage), current, func(_ context.Context, point int64) (int64, error) {
			return stage.TranslatePoint(point), nil
		}, pipeline.StepConcurrency[int64](s.concurrency))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add stage %s", stage.Name())
		}
	}

	out, err := pipeline.AddStepOneToOne(pipe, "points result", current, func(_ context.Context, point int64) (result, error) {
		return result{mode: ModePoints, value: point}, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add points result step")
	}

	return out, nil
}

func (s *Solver) addRangesBranch(pipe *pipeline.Pipeline, input *model.Step[[]int64]) (*model.Step[result], error) {
	current, err := pipeline.AddStepOneToMany(pipe, "ranges", input, func(_ context.Context, seeds []int64) ([]almanac.Span, error) {
		return almanac.SpansFromPairs(seeds)
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add ranges step")
	}

	for idx, stage := range s.pipeline.Stages() {
		current, err = pipeline.AddStepOneToMany(pipe, stepName(ModeRanges, idx, stage), current, func(_ context.Context, span almanac.Span) ([]almanac.Span, error) {
			return stage.TranslateRange(span), nil
		}, pipeline.StepConcurrency[almanac.Span](s.concurrency))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add stage %s", stage.Name())
		}
	}

	out, err := pipeline.AddStepOneToOne(pipe, "ranges result", current, func(_ context.Context, span almanac.Span) (result, error) {
		return result{mode: ModeRanges, value: span.Start}, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add ranges result step")
	}

	return out, nil
}
