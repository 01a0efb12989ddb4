package store_test

import (
	"testing"

	"github.com/dominikbraun/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/internal/store"
)

func TestMemoryStoreWithGraph(t *testing.T) {
	t.Parallel()

	stepStore := store.NewMemoryStore[string, string]()
	gra := graph.NewWithStore(graph.StringHash, stepStore, graph.Directed(), graph.PreventCycles())

	require.NoError(t, gra.AddVertex("start"))
	require.NoError(t, gra.AddVertex("seed-to-soil"))
	require.NoError(t, gra.AddVertex("end"))
	require.NoError(t, gra.AddEdge("start", "seed-to-soil"))
	require.NoError(t, gra.AddEdge("seed-to-soil", "end"))

	count, err := stepStore.VertexCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	err = gra.AddEdge("end", "start")
	assert.Error(t, err)

	err = gra.AddVertex("start")
	assert.ErrorIs(t, err, graph.ErrVertexAlreadyExists)
}

func TestMemoryStoreUpdateVertex(t *testing.T) {
	t.Parallel()

	stepStore := store.NewMemoryStore[string, string]()
	require.NoError(t, stepStore.AddVertex("step", "step", graph.VertexProperties{}))

	err := stepStore.UpdateVertex("step", func(p *graph.VertexProperties) {
		p.Attributes["xlabel"] = "1ms"
		p.Weight = 3
	})
	require.NoError(t, err)

	_, props, err := stepStore.Vertex("step")
	require.NoError(t, err)
	assert.Equal(t, "1ms", props.Attributes["xlabel"])
	assert.Equal(t, 3, props.Weight)

	assert.ErrorIs(t, stepStore.UpdateVertex("missing"), graph.ErrVertexNotFound)
}

func TestMemoryStoreRemove(t *testing.T) {
	t.Parallel()

	stepStore := store.NewMemoryStore[string, string]()
	require.NoError(t, stepStore.AddVertex("a", "a", graph.VertexProperties{}))
	require.NoError(t, stepStore.AddVertex("b", "b", graph.VertexProperties{}))
	require.NoError(t, stepStore.AddEdge("a", "b", graph.Edge[string]{Source: "a", Target: "b"}))

	assert.ErrorIs(t, stepStore.RemoveVertex("a"), graph.ErrVertexHasEdges)
	require.NoError(t, stepStore.RemoveEdge("a", "b"))
	require.NoError(t, stepStore.RemoveVertex("a"))
	assert.ErrorIs(t, stepStore.RemoveVertex("a"), graph.ErrVertexNotFound)

	_, err := stepStore.Edge("a", "b")
	assert.ErrorIs(t, err, graph.ErrEdgeNotFound)
	assert.ErrorIs(t, stepStore.UpdateEdge("a", "b", graph.Edge[string]{}), graph.ErrEdgeNotFound)
}

func TestMemoryStoreCreatesCycle(t *testing.T) {
	t.Parallel()

	stepStore := store.NewMemoryStore[string, string]().(*store.MemoryStore[string, string])
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, stepStore.AddVertex(name, name, graph.VertexProperties{}))
	}
	require.NoError(t, stepStore.AddEdge("a", "b", graph.Edge[string]{Source: "a", Target: "b"}))
	require.NoError(t, stepStore.AddEdge("b", "c", graph.Edge[string]{Source: "b", Target: "c"}))

	cycle, err := stepStore.CreatesCycle("c", "a")
	require.NoError(t, err)
	assert.True(t, cycle)

	cycle, err = stepStore.CreatesCycle("a", "c")
	require.NoError(t, err)
	assert.False(t, cycle)

	_, err = stepStore.CreatesCycle("x", "a")
	assert.Error(t, err)
}
