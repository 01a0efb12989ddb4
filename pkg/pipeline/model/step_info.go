package model

// StepType identifies the kind of node a step is in the pipeline graph.
type StepType string

const (
	RootStepType     StepType = "root"
	NormalStepType   StepType = "step"
	SplitterStepType StepType = "splitter"
	MergerStepType   StepType = "merger"
	SinkStepType     StepType = "sink"
)

// StepInfo describes a step to pipeline options.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
	BufferSize int
}

var (
	StartStep = &Step[any]{Details: &StepInfo{Name: "start"}}
	EndStep   = &Step[any]{Details: &StepInfo{Name: "end"}}
)

// Step is a typed handle on the output of a step.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}
