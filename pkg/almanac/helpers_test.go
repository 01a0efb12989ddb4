package almanac_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/pkg/almanac"
)

var exampleSeeds = []int64{79, 14, 55, 13}

var exampleStages = []struct {
	name  string
	rules [][3]int64
}{
	{"seed-to-soil", [][3]int64{{50, 98, 2}, {52, 50, 48}}},
	{"soil-to-fertilizer", [][3]int64{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}}},
	{"fertilizer-to-water", [][3]int64{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}}},
	{"water-to-light", [][3]int64{{88, 18, 7}, {18, 25, 70}}},
	{"light-to-temperature", [][3]int64{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}}},
	{"temperature-to-humidity", [][3]int64{{0, 69, 1}, {1, 0, 69}}},
	{"humidity-to-location", [][3]int64{{60, 56, 37}, {56, 93, 4}}},
}

func newStage(t *testing.T, name string, triples [][3]int64, opts ...almanac.StageOption) *almanac.Stage {
	t.Helper()
	rules := make([]almanac.Rule, len(triples))
	for i, tr := range triples {
		rules[i] = almanac.NewRule(tr[0], tr[1], tr[2])
	}
	stage, err := almanac.NewStage(name, rules, opts...)
	require.NoError(t, err)

	return stage
}

func examplePipeline(t *testing.T) *almanac.Pipeline {
	t.Helper()
	stages := make([]*almanac.Stage, len(exampleStages))
	for i, def := range exampleStages {
		stages[i] = newStage(t, def.name, def.rules)
	}

	return almanac.NewPipeline(stages...)
}

func bruteMin(p *almanac.Pipeline, spans []almanac.Span) int64 {
	first := true
	var best int64
	for _, span := range spans {
		for v := span.Start; v < span.End; v++ {
			got := p.TranslatePoint(v)
			if first || got < best {
				best = got
				first = false
			}
		}
	}

	return best
}

func totalLen(spans []almanac.Span) int64 {
	var total int64
	for _, span := range spans {
		total += span.Len()
	}

	return total
}
