package almanac

import "github.com/pkg/errors"

// QueryEngine runs batches of inputs through a pipeline and reduces the results.
type QueryEngine struct {
	pipeline *Pipeline
}

// NewQueryEngine creates a query engine over p.
func NewQueryEngine(p *Pipeline) *QueryEngine {
	return &QueryEngine{pipeline: p}
}

// FinalPoints translates every point, keeping the input order.
func (q *QueryEngine) FinalPoints(points []int64) []int64 {
	out := make([]int64, len(points))
	for i, point := range points {
		out[i] = q.pipeline.TranslatePoint(point)
	}

	return out
}

// FinalRanges translates every span and returns the flattened output spans.
func (q *QueryEngine) FinalRanges(spans []Span) []Span {
	return q.pipeline.TranslateRanges(spans)
}

// MinFinalPoint returns the smallest final value over points.
func (q *QueryEngine) MinFinalPoint(points []int64) (int64, error) {
	if len(points) == 0 {
		return 0, errors.Wrap(ErrEmptyBatch, "unable to reduce points")
	}

	best := q.pipeline.TranslatePoint(points[0])
	for _, point := range points[1:] {
		best = min(best, q.pipeline.TranslatePoint(point))
	}

	return best, nil
}

// MinFinalValueOverRanges returns the smallest final value reachable from any value of spans,
// without enumerating them.
func (q *QueryEngine) MinFinalValueOverRanges(spans []Span) (int64, error) {
	out := q.pipeline.TranslateRanges(spans)
	if len(out) == 0 {
		return 0, errors.Wrap(ErrEmptyBatch, "unable to reduce ranges")
	}

	return MinStart(out), nil
}

// MinStart returns the smallest start over spans. spans must not be empty.
func MinStart(spans []Span) int64 {
	best := spans[0].Start
	for _, span := range spans[1:] {
		best = min(best, span.Start)
	}

	return best
}

// SpansFromPairs reads values as consecutive (start, length) pairs.
func SpansFromPairs(values []int64) ([]Span, error) {
	if len(values)%2 != 0 {
		return nil, errors.Wrapf(ErrOddPairs, "got %d values", len(values))
	}

	spans := make([]Span, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		if values[i+1] <= 0 {
			return nil, errors.Wrapf(ErrInvalidLength, "pair %d has length %d", i/2, values[i+1])
		}
		if endOverflows(values[i], values[i+1]) {
			return nil, errors.Wrapf(ErrInvalidLength, "pair %d starting at %d with length %d overflows", i/2, values[i], values[i+1])
		}
		spans = append(spans, NewSpan(values[i], values[i+1]))
	}

	return spans, nil
}
