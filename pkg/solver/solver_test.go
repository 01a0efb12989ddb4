package solver_test

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/internal/logging"
	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/pipeline/measure"
	"github.com/askiada/go-almanac/pkg/solver"
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

func examplePipeline(t *testing.T) *almanac.Pipeline {
	t.Helper()
	stages := make([]*almanac.Stage, len(exampleStages))
	for i, def := range exampleStages {
		rules := make([]almanac.Rule, len(def.rules))
		for j, tr := range def.rules {
			rules[j] = almanac.NewRule(tr[0], tr[1], tr[2])
		}
		stage, err := almanac.NewStage(def.name, rules)
		require.NoError(t, err)
		stages[i] = stage
	}

	return almanac.NewPipeline(stages...)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]solver.Mode{
		"points":  solver.ModePoints,
		"Ranges ": solver.ModeRanges,
		"both":    solver.ModeBoth,
		"":        solver.ModeBoth,
	} {
		got, err := solver.ParseMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := solver.ParseMode("all")
	assert.ErrorIs(t, err, solver.ErrUnknownMode)
}

func TestSolveExample(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		mode   solver.Mode
		points *int64
		ranges *int64
	}{
		"points": {mode: solver.ModePoints, points: ptr(35)},
		"ranges": {mode: solver.ModeRanges, ranges: ptr(46)},
		"both":   {mode: solver.ModeBoth, points: ptr(35), ranges: ptr(46)},
	}
	for name, tc := range tcs {
		for _, concurrent := range []int{1, 4} {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				s := solver.New(examplePipeline(t), solver.WithConcurrency(concurrent))
				report, err := s.Solve(context.Background(), exampleSeeds, tc.mode)
				require.NoError(t, err)
				assert.Equal(t, tc.points, report.Points)
				assert.Equal(t, tc.ranges, report.Ranges)
			})
		}
	}
}

func TestSolveMatchesQueryEngine(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(5))
	pipe := examplePipeline(t)
	engine := almanac.NewQueryEngine(pipe)
	s := solver.New(pipe, solver.WithConcurrency(3))

	for range 20 {
		seeds := make([]int64, 2*(1+rnd.Intn(5)))
		for i := 0; i < len(seeds); i += 2 {
			seeds[i] = rnd.Int63n(120)
			seeds[i+1] = 1 + rnd.Int63n(30)
		}
		spans, err := almanac.SpansFromPairs(seeds)
		require.NoError(t, err)
		wantPoints, err := engine.MinFinalPoint(seeds)
		require.NoError(t, err)
		wantRanges, err := engine.MinFinalValueOverRanges(spans)
		require.NoError(t, err)

		report, err := s.Solve(context.Background(), seeds, solver.ModeBoth)
		require.NoError(t, err)
		require.NotNil(t, report.Points)
		require.NotNil(t, report.Ranges)
		assert.Equal(t, wantPoints, *report.Points, seeds)
		assert.Equal(t, wantRanges, *report.Ranges, seeds)
	}
}

func TestSolveNoStages(t *testing.T) {
	t.Parallel()

	report, err := solver.New(almanac.NewPipeline()).Solve(context.Background(), []int64{10, 5, 3, 2}, solver.ModeBoth)
	require.NoError(t, err)
	assert.Equal(t, ptr(2), report.Points)
	assert.Equal(t, ptr(3), report.Ranges)
}

func TestSolveErrors(t *testing.T) {
	t.Parallel()

	s := solver.New(examplePipeline(t))

	_, err := s.Solve(context.Background(), nil, solver.ModePoints)
	require.ErrorIs(t, err, almanac.ErrEmptyBatch)

	_, err = s.Solve(context.Background(), []int64{1, 2, 3}, solver.ModeRanges)
	require.ErrorIs(t, err, almanac.ErrOddPairs)

	_, err = s.Solve(context.Background(), []int64{1, 0}, solver.ModeBoth)
	require.ErrorIs(t, err, almanac.ErrInvalidLength)

	_, err = s.Solve(context.Background(), []int64{math.MaxInt64 - 1, 5}, solver.ModeRanges)
	require.ErrorIs(t, err, almanac.ErrInvalidLength)

	_, err = s.Solve(context.Background(), []int64{1, 2}, solver.Mode("all"))
	require.ErrorIs(t, err, solver.ErrUnknownMode)

	report, err := s.Solve(context.Background(), []int64{1, 2, 3}, solver.ModePoints)
	require.NoError(t, err)
	assert.Nil(t, report.Ranges)
}

func TestSolveCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.New(examplePipeline(t)).Solve(ctx, exampleSeeds, solver.ModeBoth)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolveWithMeasureAndGraph(t *testing.T) {
	t.Parallel()

	graphFile := filepath.Join(t.TempDir(), "almanac.gv")
	m := measure.NewDefaultMeasure()
	s := solver.New(examplePipeline(t), solver.WithMeasure(m), solver.WithGraph(graphFile))

	report, err := s.Solve(context.Background(), exampleSeeds, solver.ModeBoth)
	require.NoError(t, err)
	assert.Equal(t, ptr(35), report.Points)

	assert.Equal(t, int64(4), m.GetMetric("points 1: seed-to-soil").Total())
	assert.Equal(t, int64(4), m.GetMetric("points result").Total())

	content, err := os.ReadFile(graphFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"seeds" -> "modes"`)
	assert.Contains(t, string(content), `"points 7: humidity-to-location" -> "points result"`)
	assert.Contains(t, string(content), `"ranges result" -> "results"`)
	assert.Contains(t, string(content), `"results" -> "minimum"`)
}

func ptr(v int64) *int64 {
	return &v
}

func TestSolveLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(&buf, logging.LevelDebug, logging.FormatJSON)
	s := solver.New(examplePipeline(t), solver.WithLogger(logger), solver.WithMeasure(measure.NewDefaultMeasure()))

	_, err := s.Solve(context.Background(), exampleSeeds, solver.ModeRanges)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"solver started"`)
	assert.Contains(t, buf.String(), `"msg":"busiest step"`)
	assert.Contains(t, buf.String(), `"msg":"solved"`)
}
