package loader

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-almanac/internal/logging"
	"github.com/askiada/go-almanac/pkg/almanac"
)

var (
	ErrNoStages      = errors.New("no stages")
	ErrMalformedRule = errors.New("rule must have destination, source and length")
)

// StageDef is a named stage as declared in a document.
type StageDef struct {
	Name  string
	Rules []almanac.Rule
}

// Almanac is a parsed document. Stages keep their declared order.
type Almanac struct {
	Seeds  []int64
	Stages []StageDef
}

type buildConfig struct {
	tolerateOverlap bool
	logger          *slog.Logger
}

// BuildOption configures Build.
type BuildOption func(c *buildConfig)

// TolerateOverlap keeps the first of overlapping rules instead of failing.
func TolerateOverlap(tolerate bool) BuildOption {
	return func(c *buildConfig) {
		c.tolerateOverlap = tolerate
	}
}

// WithLogger sets the logger used to report dropped rules.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

// Build validates every stage and chains them into a pipeline.
func (a *Almanac) Build(opts ...BuildOption) (*almanac.Pipeline, error) {
	cfg := &buildConfig{logger: logging.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(a.Stages) == 0 {
		return nil, ErrNoStages
	}

	var stageOpts []almanac.StageOption
	if cfg.tolerateOverlap {
		stageOpts = append(stageOpts, almanac.StageTolerateOverlap())
	}

	stages := make([]*almanac.Stage, 0, len(a.Stages))
	for _, def := range a.Stages {
		stage, err := almanac.NewStage(def.Name, def.Rules, stageOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to build stage %s", def.Name)
		}
		for _, rule := range stage.Dropped() {
			cfg.logger.Warn("overlapping rule dropped", "stage", def.Name, "span", rule.Span().String(), "offset", rule.Offset)
		}
		cfg.logger.Debug("stage built", "stage", def.Name, "rules", stage.Len())
		stages = append(stages, stage)
	}

	return almanac.NewPipeline(stages...), nil
}
