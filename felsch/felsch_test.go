// Package felsch_test contains unit tests for the enumeration graph:
// node management, definitions, coincidence processing, and lookaheads.
package felsch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cosets/felsch"
	"github.com/katalvlaran/cosets/presentation"
	"github.com/katalvlaran/cosets/wordgraph"
)

func TestGraph_New(t *testing.T) {
	p := presentation.New(2)
	g := felsch.New(p)

	assert.Equal(t, 1, g.NumberOfNodes())
	assert.Equal(t, 2, g.OutDegree())
	assert.Equal(t, uint64(1), g.NumberOfNodesActive())
	assert.Equal(t, uint64(1), g.NumberOfNodesDefined())
	assert.Equal(t, uint64(0), g.NumberOfNodesKilled())
	assert.True(t, g.IsActiveNode(g.InitialNode()))
	assert.False(t, g.HasFreeNodes())
	assert.Same(t, p, g.Presentation())
}

func TestGraph_NewNode(t *testing.T) {
	g := felsch.New(presentation.New(1))

	n1 := g.NewNode()
	assert.Equal(t, felsch.Node(1), n1)
	assert.Equal(t, uint64(2), g.NumberOfNodesActive())
	// growing by the default factor left one spare node on the free list
	assert.True(t, g.HasFreeNodes())
	assert.Equal(t, g.NodeCapacity(), g.NumberOfNodes())

	n2 := g.NewNode()
	assert.Equal(t, felsch.Node(2), n2)
	assert.Equal(t, uint64(3), g.NumberOfNodesActive())
	assert.False(t, g.HasFreeNodes())
}

func TestGraph_NodeList(t *testing.T) {
	g := felsch.New(presentation.New(1))
	g.NewNode()
	g.NewNode()

	// the active list runs 0, 1, 2 in definition order
	assert.Equal(t, felsch.Node(1), g.NextActiveNode(0))
	assert.Equal(t, felsch.Node(2), g.NextActiveNode(1))
	assert.Equal(t, g.FirstFreeNode(), g.NextActiveNode(2))

	assert.Equal(t, 0, g.PositionOfNode(0))
	assert.Equal(t, 2, g.PositionOfNode(2))
	assert.Equal(t, -1, g.PositionOfNode(felsch.Node(100)))
}

func TestGraph_PushDefinitionHLT(t *testing.T) {
	// the relation aa = a forces a single idempotent class
	p := presentation.New(1)
	p.AddRule(wordgraph.Word{0, 0}, wordgraph.Word{0})
	g := felsch.New(p)

	g.PushDefinitionHLT(false, g.InitialNode(), p.Rules[0], p.Rules[1])
	g.ProcessCoincidences(false)

	require.Equal(t, uint64(2), g.NumberOfNodesActive())
	assert.Equal(t, felsch.Node(1), g.TargetNoChecks(0, 0))
	assert.Equal(t, felsch.Node(1), g.TargetNoChecks(1, 0))
}

func TestGraph_PushDefinitionHLT_SharedTarget(t *testing.T) {
	// when both sides end in an undefined edge a single new node serves
	// as the target of both
	p := presentation.New(2)
	g := felsch.New(p)

	g.PushDefinitionHLT(false, 0, wordgraph.Word{0}, wordgraph.Word{1})
	assert.Equal(t, uint64(2), g.NumberOfNodesActive())
	assert.Equal(t, g.TargetNoChecks(0, 0), g.TargetNoChecks(0, 1))
}

func TestGraph_Coincidence(t *testing.T) {
	p := presentation.New(2)
	g := felsch.New(p)

	n1 := g.NewNode()
	n2 := g.NewNode()
	g.Define(false, 0, 0, n1)
	g.Define(false, 0, 1, n2)

	// the relation a = b at the root makes 1 and 2 coincide
	g.PushDefinitionHLT(false, 0, wordgraph.Word{0}, wordgraph.Word{1})
	g.ProcessCoincidences(false)

	assert.Equal(t, uint64(2), g.NumberOfNodesActive())
	assert.Equal(t, uint64(1), g.NumberOfNodesKilled())
	assert.True(t, g.IsActiveNode(n1))
	assert.False(t, g.IsActiveNode(n2))
	assert.Equal(t, n1, g.FindNode(n2))
	assert.Equal(t, n1, g.TargetNoChecks(0, 1))
}

func TestGraph_CompletePath(t *testing.T) {
	g := felsch.New(presentation.New(2))

	e := g.CompletePath(false, 0, wordgraph.Word{0, 1, 0})
	assert.Equal(t, uint64(4), g.NumberOfNodesActive())
	assert.Equal(t, e, g.FollowPathNoChecks(0, wordgraph.Word{0, 1, 0}))

	// completing the same path again defines nothing new
	again := g.CompletePath(false, 0, wordgraph.Word{0, 1, 0})
	assert.Equal(t, e, again)
	assert.Equal(t, uint64(4), g.NumberOfNodesActive())
}

func TestGraph_MakeCompatible(t *testing.T) {
	// 0 -a-> 1 -a-> 2 -a-> 2 violates aa = a at the root; the sweep
	// merges 2 into 1
	p := presentation.New(1)
	p.AddRule(wordgraph.Word{0, 0}, wordgraph.Word{0})
	g := felsch.New(p)

	n1, n2 := g.NewNode(), g.NewNode()
	g.Define(false, 0, 0, n1)
	g.Define(false, n1, 0, n2)
	g.Define(false, n2, 0, n2)

	g.SetLookaheadCursor(g.InitialNode())
	killed := g.MakeCompatible(false, time.Second, 0.01)

	assert.Equal(t, uint64(1), killed)
	assert.Equal(t, uint64(2), g.NumberOfNodesActive())
	assert.Equal(t, n1, g.FindNode(n2))
	assert.Equal(t, n1, g.TargetNoChecks(0, 0))
	assert.Equal(t, n1, g.TargetNoChecks(n1, 0))
}

func TestGraph_FelschLookahead(t *testing.T) {
	p := presentation.New(1)
	p.AddRule(wordgraph.Word{0, 0}, wordgraph.Word{0})
	g := felsch.New(p)

	n1, n2 := g.NewNode(), g.NewNode()
	g.Define(false, 0, 0, n1)
	g.Define(false, n1, 0, n2)
	g.Define(false, n2, 0, n2)

	g.SetLookaheadCursor(g.InitialNode())
	killed := g.FelschLookahead()

	assert.Equal(t, uint64(1), killed)
	assert.Equal(t, uint64(2), g.NumberOfNodesActive())
}

func TestGraph_ProcessDefinitions(t *testing.T) {
	// registering the definitions and processing them finds the same
	// merge a lookahead would
	p := presentation.New(1)
	p.AddRule(wordgraph.Word{0, 0}, wordgraph.Word{0})
	g := felsch.New(p)

	n1, n2 := g.NewNode(), g.NewNode()
	g.Define(true, 0, 0, n1)
	g.Define(true, n1, 0, n2)
	g.Define(true, n2, 0, n2)
	g.ProcessDefinitions()

	assert.Equal(t, uint64(2), g.NumberOfNodesActive())
	assert.Equal(t, n1, g.TargetNoChecks(n1, 0))
	assert.False(t, g.AnySkippedDefinitions())
}

func TestGraph_DefinitionStackPolicies(t *testing.T) {
	p := presentation.New(1)

	for _, pol := range []felsch.DefPolicy{
		felsch.NoStackIfNoSpace,
		felsch.PurgeFromTop,
		felsch.PurgeAll,
		felsch.DiscardAllIfNoSpace,
	} {
		g := felsch.New(p)
		g.SetDefMax(1)
		g.SetDefPolicy(pol)

		g.Define(true, 0, 0, g.NewNode())
		g.Define(true, 1, 0, g.NewNode())
		assert.True(t, g.AnySkippedDefinitions(), "policy %s", pol)
	}

	g := felsch.New(p)
	g.SetDefMax(1)
	g.SetDefPolicy(felsch.Unlimited)
	g.Define(true, 0, 0, g.NewNode())
	g.Define(true, 1, 0, g.NewNode())
	assert.False(t, g.AnySkippedDefinitions())
}

func TestGraph_LargeCollapse(t *testing.T) {
	// force the large collapse path by setting the threshold to 1
	p := presentation.New(2)
	g := felsch.New(p)

	n1 := g.NewNode()
	n2 := g.NewNode()
	g.Define(false, 0, 0, n1)
	g.Define(false, 0, 1, n2)
	g.Define(false, n1, 0, n1)
	g.Define(false, n2, 0, n2)
	g.SetLargeCollapse(1)

	g.PushDefinitionHLT(false, 0, wordgraph.Word{0}, wordgraph.Word{1})
	g.ProcessCoincidences(false)

	assert.Equal(t, uint64(2), g.NumberOfNodesActive())
	assert.Equal(t, n1, g.TargetNoChecks(0, 1))
	assert.Equal(t, n1, g.TargetNoChecks(n1, 0))
	// the rebuilt source lists are consistent with the edge table
	assert.True(t, g.IsSourceNoChecks(n1, 0, 0))
	assert.True(t, g.IsSourceNoChecks(n1, 1, 0))
	assert.True(t, g.IsSourceNoChecks(n1, 0, n1))
}

func TestDefPolicy_String(t *testing.T) {
	assert.Equal(t, "no_stack_if_no_space", felsch.NoStackIfNoSpace.String())
	assert.Equal(t, "purge_from_top", felsch.PurgeFromTop.String())
	assert.Equal(t, "purge_all", felsch.PurgeAll.String())
	assert.Equal(t, "discard_all_if_no_space", felsch.DiscardAllIfNoSpace.String())
	assert.Equal(t, "unlimited", felsch.Unlimited.String())
}
