package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-almanac/pkg/pipeline/model"
)

// Splitter broadcasts every element of its input to Total branches.
type Splitter[I any] struct {
	mu            sync.Mutex
	currIdx       int
	mainStep      *model.Step[I]
	splittedSteps []*model.Step[I]
	bufferSize    int
	Total         int
}

// Get returns the next unused branch. It returns false once every branch has been handed out.
func (s *Splitter[I]) Get() (*model.Step[I], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currIdx >= len(s.splittedSteps) {
		return nil, false
	}
	step := s.splittedSteps[s.currIdx]
	s.currIdx++

	return step, true
}

// Next is Get returning ErrSplitterExhausted once every branch has been handed out.
func (s *Splitter[I]) Next() (*model.Step[I], error) {
	step, ok := s.Get()
	if !ok {
		return nil, errors.Wrapf(ErrSplitterExhausted, "all %d branches are in use", s.Total)
	}

	return step, nil
}

// forward copies buf to output until buf is closed or ctx is done, then closes output.
func forward[I any](ctx context.Context, buf <-chan I, output chan<- I) {
	defer close(output)
	for {
		select {
		case <-ctx.Done():
			return
		case elem, ok := <-buf:
			if !ok {
				return
			}
			select {
			case <-ctx.Done():
				return
			case output <- elem:
			}
		}
	}
}

func runSplitter[I any](ctx context.Context, pipe *Pipeline, input *model.Step[I], splitter *Splitter[I], buffers []chan I) error {
	for {
		startIter := time.Now()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry, ok := <-input.Output:
			if !ok {
				return nil
			}
			startFn := time.Now()
			for _, buf := range buffers {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case buf <- entry:
				}
			}
			endFn := time.Since(startFn)
			for _, opt := range pipe.opts {
				err := opt.OnSplitterOutput(detailsOf(input), splitter.mainStep.Details, startFn.Sub(startIter), endFn)
				if err != nil {
					return errors.Wrap(err, "unable to run on splitter output function")
				}
			}
		}
	}
}

// AddSplitter adds a step copying each element of input to total branches. Branches are retrieved
// with Splitter.Get and must all be consumed.
func AddSplitter[I any](pipe *Pipeline, name string, input *model.Step[I], total int, opts ...SplitterOption[I]) (*Splitter[I], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}
	if total <= 0 {
		return nil, ErrSplitterTotal
	}
	splitter := &Splitter[I]{
		Total: total,
		mainStep: &model.Step[I]{
			Details: &model.StepInfo{
				Type:       model.SplitterStepType,
				Name:       name,
				Concurrent: 1,
			},
		},
	}
	for _, opt := range opts {
		opt(splitter)
	}
	if splitter.bufferSize == 0 {
		splitter.bufferSize = 1
	}
	splitter.mainStep.Details.BufferSize = splitter.bufferSize

	for _, opt := range pipe.opts {
		err := opt.PrepareSplitter(detailsOf(input), splitter.mainStep.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare splitter function")
		}
	}

	buffers := make([]chan I, total)
	splitter.splittedSteps = make([]*model.Step[I], total)
	for i := range total {
		buffers[i] = make(chan I, splitter.bufferSize)
		splitter.splittedSteps[i] = &model.Step[I]{
			Details: splitter.mainStep.Details,
			Output:  make(chan I),
		}
	}

	errC := make(chan error, 1)
	pipe.register(name, errC, func(ctx context.Context) {
		wgrp := &sync.WaitGroup{}
		wgrp.Add(total)
		for i, buf := range buffers {
			go func() {
				defer wgrp.Done()
				forward(ctx, buf, splitter.splittedSteps[i].Output)
			}()
		}

		err := runSplitter(ctx, pipe, input, splitter, buffers)
		for _, buf := range buffers {
			close(buf)
		}
		wgrp.Wait()
		if err != nil {
			errC <- err
		}
		close(errC)
	})

	return splitter, nil
}
