package pipeline

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-almanac/pkg/pipeline/model"
)

// AddRootStep adds a step without input. stepFn pushes elements to rootChan, which is closed once
// stepFn returns.
func AddRootStep[O any](pipe *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error, opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	step := newStep(model.RootStepType, name, opts...)
	for _, opt := range pipe.opts {
		err := opt.PrepareStep(model.StartStep.Details, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare step function")
		}
	}

	return addStep(pipe, step, func(ctx context.Context) error {
		return stepFn(ctx, step.Output)
	}), nil
}
