package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-almanac/pkg/pipeline/model"
)

func newStep[O any](stepType model.StepType, name string, opts ...StepOption[O]) *model.Step[O] {
	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       stepType,
			Name:       name,
			Concurrent: 1,
		},
	}
	for _, opt := range opts {
		opt(step)
	}
	if step.Details.Concurrent < 1 {
		step.Details.Concurrent = 1
	}
	step.Output = make(chan O, step.Details.BufferSize)

	return step
}

// detailsOf returns the step details, falling back to the start step for bare input steps built
// outside of the pipeline.
func detailsOf[O any](step *model.Step[O]) *model.StepInfo {
	if step.Details == nil {
		return model.StartStep.Details
	}

	return step.Details
}

func (p *Pipeline) onStepOutput(parent, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	for _, opt := range p.opts {
		err := opt.OnStepOutput(parent, step, iterationDuration, computationDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run on step output function")
		}
	}

	return nil
}

// runWorkers runs worker once, or concurrent times in an errgroup when concurrent is greater than 1.
// The group stops as soon as one worker fails.
func runWorkers(ctx context.Context, concurrent int, worker func(ctx context.Context, goIdx int) error) error {
	if concurrent <= 1 {
		return worker(ctx, 0)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(concurrent)
	for goIdx := 0; goIdx < concurrent; goIdx++ {
		errGrp.Go(func() error {
			return worker(dCtx, goIdx)
		})
	}

	return errGrp.Wait()
}

func oneToOneWorker[I, O any](ctx context.Context, goIdx int, pipe *Pipeline, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	for {
		startIter := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}
			startFn := time.Now()
			out, err := oneToOneFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}
			endFn := time.Since(startFn)

			// check the context again so that running goroutines stop adding elements to the pipeline
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
			case output.Output <- out:
				err := pipe.onStepOutput(detailsOf(input), output.Details, time.Since(startIter)-endFn, endFn)
				if err != nil {
					return err
				}
			}
		}
	}
}

func oneToManyWorker[I, O any](ctx context.Context, goIdx int, pipe *Pipeline, input *model.Step[I], output *model.Step[O], oneToManyFn func(context.Context, I) ([]O, error)) error {
	for {
		startIter := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}
			startFn := time.Now()
			outs, err := oneToManyFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}
			endFn := time.Since(startFn)
			for _, out := range outs {
				select {
				case <-ctx.Done():
					return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
				case output.Output <- out:
				}
			}
			err = pipe.onStepOutput(detailsOf(input), output.Details, time.Since(startIter)-endFn, endFn)
			if err != nil {
				return err
			}
		}
	}
}

func prepareStep[I, O any](pipe *Pipeline, name string, input *model.Step[I], opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := newStep(model.NormalStepType, name, opts...)
	for _, opt := range pipe.opts {
		err := opt.PrepareStep(detailsOf(input), step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare step function")
		}
	}

	return step, nil
}

func addStep[O any](pipe *Pipeline, step *model.Step[O], run func(ctx context.Context) error) *model.Step[O] {
	errC := make(chan error, 1)
	pipe.register(step.Details.Name, errC, func(ctx context.Context) {
		defer func() {
			close(step.Output)
			close(errC)
		}()
		err := run(ctx)
		if err != nil {
			errC <- err
		}
	})

	return step
}

// AddStepOneToOne adds a step producing exactly one output for each input.
func AddStepOneToOne[I, O any](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, step, func(ctx context.Context) error {
		return runWorkers(ctx, step.Details.Concurrent, func(ctx context.Context, goIdx int) error {
			return oneToOneWorker(ctx, goIdx, pipe, input, step, oneToOneFn)
		})
	}), nil
}

// AddStepOneToMany adds a step producing any number of outputs, possibly none, for each input.
func AddStepOneToMany[I, O any](pipe *Pipeline, name string, input *model.Step[I], oneToManyFn func(context.Context, I) ([]O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, step, func(ctx context.Context) error {
		return runWorkers(ctx, step.Details.Concurrent, func(ctx context.Context, goIdx int) error {
			return oneToManyWorker(ctx, goIdx, pipe, input, step, oneToManyFn)
		})
	}), nil
}
