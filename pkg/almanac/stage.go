package almanac

import (
	"slices"
	"sort"

	"github.com/pkg/errors"
)

// Stage is one layer of disjoint offset rules, sorted by source start.
type Stage struct {
	name    string
	rules   []Rule
	dropped []Rule
}

type stageConfig struct {
	tolerateOverlap bool
}

// StageOption configures how a stage is built.
type StageOption func(c *stageConfig)

// StageTolerateOverlap keeps the first of two overlapping rules, in source order, instead of
// failing. Dropped rules are available through Stage.Dropped.
func StageTolerateOverlap() StageOption {
	return func(c *stageConfig) {
		c.tolerateOverlap = true
	}
}

// NewStage sorts rules by source start and checks that they are valid and pairwise disjoint.
func NewStage(name string, rules []Rule, opts ...StageOption) (*Stage, error) {
	cfg := &stageConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	stage := &Stage{
		name:  name,
		rules: make([]Rule, 0, len(sorted)),
	}
	for _, rule := range sorted {
		err := rule.Validate()
		if err != nil {
			return nil, errors.Wrapf(err, "stage %q", name)
		}
		if n := len(stage.rules); n > 0 && stage.rules[n-1].End() > rule.Start {
			if !cfg.tolerateOverlap {
				return nil, errors.Wrapf(ErrOverlappingRules, "stage %q: %s and %s", name, stage.rules[n-1].Span(), rule.Span())
			}
			stage.dropped = append(stage.dropped, rule)

			continue
		}
		stage.rules = append(stage.rules, rule)
	}

	return stage, nil
}

// Name returns the stage name.
func (s *Stage) Name() string {
	return s.name
}

// Len returns the number of rules kept by the stage.
func (s *Stage) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the sorted rules.
func (s *Stage) Rules() []Rule {
	return slices.Clone(s.rules)
}

// Dropped returns the rules discarded because they overlapped an earlier one.
func (s *Stage) Dropped() []Rule {
	return slices.Clone(s.dropped)
}

// compareRule orders a rule against a point: negative when the whole rule lies below p, positive
// when it lies above, zero when it contains p.
func compareRule(rule Rule, p int64) int {
	switch {
	case p < rule.Start:
		return 1
	case p >= rule.End():
		return -1
	default:
		return 0
	}
}

// FindRule returns the rule containing p.
func (s *Stage) FindRule(p int64) (Rule, bool) {
	idx, found := slices.BinarySearchFunc(s.rules, p, compareRule)
	if !found {
		return Rule{}, false
	}

	return s.rules[idx], true
}

// TranslatePoint maps p through the stage. Uncovered values are returned unchanged.
func (s *Stage) TranslatePoint(p int64) int64 {
	rule, ok := s.FindRule(p)
	if !ok {
		return p
	}

	return rule.Translate(p)
}

// TranslateRange splits span at the rule boundaries it crosses. Covered parts are shifted by their
// rule offset, gaps are kept as they are. The result follows the order of the input positions.
func (s *Stage) TranslateRange(span Span) []Span {
	if span.Empty() {
		return nil
	}

	first := sort.Search(len(s.rules), func(i int) bool {
		return s.rules[i].End() > span.Start
	})

	var out []Span
	cursor := span.Start
	for _, rule := range s.rules[first:] {
		if rule.Start >= span.End {
			break
		}
		if cursor < rule.Start {
			out = append(out, Span{Start: cursor, End: rule.Start})
		}
		covered := span.Intersect(rule.Span())
		out = append(out, covered.Shift(rule.Offset))
		cursor = covered.End
	}
	if cursor < span.End {
		out = append(out, Span{Start: cursor, End: span.End})
	}

	return out
}
