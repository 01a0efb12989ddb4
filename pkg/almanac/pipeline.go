package almanac

// Pipeline applies its stages in declaration order. A pipeline without stages is the identity.
type Pipeline struct {
	stages []*Stage
}

// NewPipeline creates a pipeline from stages, in the order they must be applied.
func NewPipeline(stages ...*Stage) *Pipeline {
	list := make([]*Stage, len(stages))
	copy(list, stages)

	return &Pipeline{stages: list}
}

// Stages returns the stages in application order.
func (p *Pipeline) Stages() []*Stage {
	list := make([]*Stage, len(p.stages))
	copy(list, p.stages)

	return list
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// TranslatePoint folds point through every stage.
func (p *Pipeline) TranslatePoint(point int64) int64 {
	for _, stage := range p.stages {
		point = stage.TranslatePoint(point)
	}

	return point
}

// Trace returns point followed by its value after each stage.
func (p *Pipeline) Trace(point int64) []int64 {
	trace := make([]int64, 0, len(p.stages)+1)
	trace = append(trace, point)
	for _, stage := range p.stages {
		point = stage.TranslatePoint(point)
		trace = append(trace, point)
	}

	return trace
}

// TranslateRanges folds a working set of spans through every stage. Each stage output becomes the
// next stage input; adjacent spans are never merged.
func (p *Pipeline) TranslateRanges(spans []Span) []Span {
	working := make([]Span, 0, len(spans))
	for _, span := range spans {
		if !span.Empty() {
			working = append(working, span)
		}
	}
	for _, stage := range p.stages {
		next := make([]Span, 0, len(working))
		for _, span := range working {
			next = append(next, stage.TranslateRange(span)...)
		}
		working = next
	}

	return working
}
