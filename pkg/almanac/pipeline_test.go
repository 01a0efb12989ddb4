package almanac_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/pkg/almanac"
)

func TestEmptyPipelineIsIdentity(t *testing.T) {
	t.Parallel()

	pipe := almanac.NewPipeline()
	assert.Equal(t, 0, pipe.Len())
	assert.Equal(t, int64(123), pipe.TranslatePoint(123))
	spans := []almanac.Span{{Start: 4, End: 9}, {Start: -2, End: 1}}
	assert.Equal(t, spans, pipe.TranslateRanges(spans))
}

func TestPipelineChainedStages(t *testing.T) {
	t.Parallel()

	stageA := newStage(t, "a", [][3]int64{{50, 98, 2}, {52, 50, 48}})
	stageB := newStage(t, "b", [][3]int64{{0, 0, 10}, {500, 90, 5}})
	pipe := almanac.NewPipeline(stageA, stageB)

	assert.Equal(t, int64(81), pipe.TranslatePoint(79))
	assert.Equal(t, []int64{79, 81, 81}, pipe.Trace(79))
	assert.Equal(t, []*almanac.Stage{stageA, stageB}, pipe.Stages())
}

func TestPipelineOrderMatters(t *testing.T) {
	t.Parallel()

	stageA := newStage(t, "a", [][3]int64{{10, 0, 5}})
	stageB := newStage(t, "b", [][3]int64{{100, 10, 5}})

	assert.Equal(t, int64(101), almanac.NewPipeline(stageA, stageB).TranslatePoint(1))
	assert.Equal(t, int64(11), almanac.NewPipeline(stageB, stageA).TranslatePoint(1))
}

func TestPipelineExample(t *testing.T) {
	t.Parallel()

	pipe := examplePipeline(t)
	assert.Equal(t, []int64{79, 81, 81, 81, 74, 78, 78, 82}, pipe.Trace(79))
	assert.Equal(t, int64(43), pipe.TranslatePoint(14))
	assert.Equal(t, int64(86), pipe.TranslatePoint(55))
	assert.Equal(t, int64(35), pipe.TranslatePoint(13))
}

func TestPipelineTranslateRangesKeepsCoverage(t *testing.T) {
	t.Parallel()

	pipe := examplePipeline(t)
	input := []almanac.Span{almanac.NewSpan(0, 120), almanac.NewSpan(79, 14)}
	out := pipe.TranslateRanges(input)
	assert.Equal(t, totalLen(input), totalLen(out))
}

func TestPipelineTranslateRangesRandom(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(7))
	for iter := 0; iter < 20; iter++ {
		var stages []*almanac.Stage
		for s := 0; s < 4; s++ {
			var triples [][3]int64
			var cursor int64
			for i := 0; i < 5; i++ {
				cursor += rnd.Int63n(20)
				length := rnd.Int63n(25) + 1
				triples = append(triples, [3]int64{rnd.Int63n(300), cursor, length})
				cursor += length
			}
			stages = append(stages, newStage(t, "random", triples))
		}
		pipe := almanac.NewPipeline(stages...)
		input := []almanac.Span{almanac.NewSpan(rnd.Int63n(150), rnd.Int63n(80)+1)}

		out := pipe.TranslateRanges(input)
		require.Equal(t, totalLen(input), totalLen(out))

		engine := almanac.NewQueryEngine(pipe)
		got, err := engine.MinFinalValueOverRanges(input)
		require.NoError(t, err)
		assert.Equal(t, bruteMin(pipe, input), got)
	}
}
