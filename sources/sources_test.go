// Package sources_test contains unit tests for the word graph with
// preimage lists: edge bookkeeping, node merging, and node surgery.
package sources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cosets/sources"
	"github.com/katalvlaran/cosets/wordgraph"
)

const U = sources.Undefined

const (
	a = sources.Label(0)
	b = sources.Label(1)
)

// example builds the graph 0 -a-> 1, 0 -b-> 2, 1 -a-> 3, 2 -a-> 3,
// 2 -b-> 2 on 4 nodes.
func example() *sources.Graph {
	g := sources.New(4, 2)
	g.SetTargetNoChecks(0, a, 1)
	g.SetTargetNoChecks(0, b, 2)
	g.SetTargetNoChecks(1, a, 3)
	g.SetTargetNoChecks(2, a, 3)
	g.SetTargetNoChecks(2, b, 2)
	return g
}

// sourcesOf collects the source list of c under x in list order.
func sourcesOf(g *sources.Graph, c sources.Node, x sources.Label) []sources.Node {
	var out []sources.Node
	for s := g.FirstSource(c, x); s != U; s = g.NextSource(s, x) {
		out = append(out, s)
	}
	return out
}

func TestGraph_SourceLists(t *testing.T) {
	g := example()

	// lists are prepend-ordered: latest writer first
	assert.Equal(t, []sources.Node{0}, sourcesOf(g, 1, a))
	assert.Equal(t, []sources.Node{2, 0}, sourcesOf(g, 2, b))
	assert.Equal(t, []sources.Node{2, 1}, sourcesOf(g, 3, a))
	assert.Empty(t, sourcesOf(g, 0, a))

	assert.True(t, g.IsSourceNoChecks(3, a, 1))
	assert.True(t, g.IsSourceNoChecks(3, a, 2))
	assert.False(t, g.IsSourceNoChecks(3, a, 0))
}

func TestGraph_RemoveTarget(t *testing.T) {
	g := example()

	g.RemoveTargetNoChecks(1, a)
	assert.Equal(t, U, g.TargetNoChecks(1, a))
	assert.Equal(t, []sources.Node{2}, sourcesOf(g, 3, a))

	// removing from the middle of a list works too
	g.RemoveTargetNoChecks(0, b)
	assert.Equal(t, []sources.Node{2}, sourcesOf(g, 2, b))
}

func TestGraph_NewFromGraph(t *testing.T) {
	wg := wordgraph.NewFromRows([][]wordgraph.Node{
		{1, 2},
		{U, U},
		{1, U},
	})
	g := sources.NewFromGraph(wg)
	assert.Equal(t, wordgraph.Node(1), g.TargetNoChecks(0, a))
	assert.ElementsMatch(t, []sources.Node{0, 2}, sourcesOf(g, 1, a))
}

func TestGraph_MergeNodes(t *testing.T) {
	g := example()
	var newEdges int
	var clashes [][2]sources.Node

	g.MergeNodes(1, 2,
		func(sources.Node, sources.Label) { newEdges++ },
		func(u, v sources.Node) { clashes = append(clashes, [2]sources.Node{u, v}) },
	)

	// the edges into 2 were redirected to 1, the self-loop 2 -b-> 2
	// became 1 -b-> 1, and the targets under a agreed already
	assert.Equal(t, wordgraph.Node(1), g.TargetNoChecks(0, a))
	assert.Equal(t, wordgraph.Node(1), g.TargetNoChecks(0, b))
	assert.Equal(t, wordgraph.Node(3), g.TargetNoChecks(1, a))
	assert.Equal(t, wordgraph.Node(1), g.TargetNoChecks(1, b))
	assert.Equal(t, 3, newEdges)
	assert.Empty(t, clashes)

	// node 2 no longer appears in any live source list
	assert.Equal(t, []sources.Node{1}, sourcesOf(g, 3, a))
	assert.False(t, g.IsSourceNoChecks(3, a, 2))
}

func TestGraph_MergeNodes_Incompatible(t *testing.T) {
	g := sources.New(4, 2)
	g.SetTargetNoChecks(0, a, 1)
	g.SetTargetNoChecks(0, b, 2)
	g.SetTargetNoChecks(1, a, 1)
	g.SetTargetNoChecks(2, a, 3)

	var clashes [][2]sources.Node
	g.MergeNodes(1, 2, nil,
		func(u, v sources.Node) { clashes = append(clashes, [2]sources.Node{u, v}) },
	)

	// both 1 and 2 had a target under a, and they disagreed
	require.Len(t, clashes, 1)
	assert.Equal(t, [2]sources.Node{1, 3}, clashes[0])
}

func TestGraph_SwapNodes(t *testing.T) {
	g := example()
	g.SwapNodes(1, 2)

	assert.Equal(t, wordgraph.Node(2), g.TargetNoChecks(0, a))
	assert.Equal(t, wordgraph.Node(1), g.TargetNoChecks(0, b))
	assert.Equal(t, wordgraph.Node(3), g.TargetNoChecks(2, a))
	assert.Equal(t, wordgraph.Node(3), g.TargetNoChecks(1, a))
	assert.Equal(t, wordgraph.Node(1), g.TargetNoChecks(1, b))
	assert.Equal(t, U, g.TargetNoChecks(2, b))
	assert.ElementsMatch(t, []sources.Node{1, 2}, sourcesOf(g, 3, a))
}

func TestGraph_RenameNode(t *testing.T) {
	g := sources.New(4, 2)
	g.SetTargetNoChecks(0, a, 1)
	g.SetTargetNoChecks(1, a, 1)

	g.RenameNode(1, 3)
	assert.Equal(t, wordgraph.Node(3), g.TargetNoChecks(0, a))
	assert.Equal(t, wordgraph.Node(3), g.TargetNoChecks(3, a))
	assert.Equal(t, U, g.TargetNoChecks(1, a))
	assert.ElementsMatch(t, []sources.Node{0, 3}, sourcesOf(g, 3, a))
	assert.Empty(t, sourcesOf(g, 1, a))
}

func TestGraph_RebuildSources(t *testing.T) {
	g := example()

	// write through the embedded table, leaving the lists stale
	g.Graph.SetTargetNoChecks(1, b, 3)
	assert.False(t, g.IsSourceNoChecks(3, b, 1))

	g.RebuildSources([]sources.Node{0, 1, 2, 3})
	assert.True(t, g.IsSourceNoChecks(3, b, 1))
	assert.ElementsMatch(t, []sources.Node{1, 2}, sourcesOf(g, 3, a))
	assert.ElementsMatch(t, []sources.Node{0}, sourcesOf(g, 1, a))
}

func TestGraph_RemoveAllSourcesAndTargets(t *testing.T) {
	g := example()
	g.RemoveAllSourcesAndTargets(2)
	assert.Equal(t, U, g.TargetNoChecks(2, a))
	assert.Equal(t, U, g.TargetNoChecks(2, b))
	assert.Empty(t, sourcesOf(g, 2, b))
}

func TestGraph_InducedSubgraph(t *testing.T) {
	g := sources.New(4, 1)
	g.SetTargetNoChecks(0, a, 0)
	g.SetTargetNoChecks(1, a, 2)
	g.SetTargetNoChecks(2, a, 1)

	g.InducedSubgraph(1, 3)
	require.Equal(t, 2, g.NumberOfNodes())
	assert.Equal(t, wordgraph.Node(1), g.TargetNoChecks(0, a))
	assert.Equal(t, wordgraph.Node(0), g.TargetNoChecks(1, a))
	assert.Equal(t, []sources.Node{0}, sourcesOf(g, 1, a))
}

func TestGraph_ShrinkToFit(t *testing.T) {
	g := sources.New(4, 1)
	g.SetTargetNoChecks(0, a, 1)
	g.SetTargetNoChecks(1, a, 0)

	g.ShrinkToFit(2)
	require.Equal(t, 2, g.NumberOfNodes())
	assert.Equal(t, []sources.Node{1}, sourcesOf(g, 0, a))
}

func TestGraph_DisjointUnion(t *testing.T) {
	g := sources.New(2, 1)
	g.SetTargetNoChecks(0, a, 1)

	wg := wordgraph.NewFromRows([][]wordgraph.Node{{1}, {0}})
	g.DisjointUnion(wg)

	require.Equal(t, 4, g.NumberOfNodes())
	assert.Equal(t, wordgraph.Node(3), g.TargetNoChecks(2, a))
	assert.Equal(t, wordgraph.Node(2), g.TargetNoChecks(3, a))
	assert.Equal(t, []sources.Node{3}, sourcesOf(g, 2, a))
}

func TestGraph_Copy(t *testing.T) {
	g := example()
	h := g.Copy()
	h.SetTargetNoChecks(3, b, 0)
	assert.Equal(t, U, g.TargetNoChecks(3, b))
	assert.Empty(t, sourcesOf(g, 0, b))
	assert.Equal(t, []sources.Node{3}, sourcesOf(h, 0, b))
}
