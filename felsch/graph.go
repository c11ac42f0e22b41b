package felsch

import (
	"time"

	"github.com/katalvlaran/cosets/presentation"
	"github.com/katalvlaran/cosets/sources"
	"github.com/katalvlaran/cosets/wordgraph"
)

// coincidence is a pair of nodes known to represent the same class.
type coincidence struct {
	first  Node
	second Node
}

// occurrence locates one letter inside one rule word: rule indexes the
// flat rule list of the presentation, pos the letter within that word.
type occurrence struct {
	rule int
	pos  int
}

// Graph is the enumeration graph: a word graph with source lists, a
// node manager over the same nodes, the presentation being traced, and
// the two pending-work stacks.
//
// Node 0 always represents the class of the empty word and is never
// merged away, because coincidences always free the larger node.
type Graph struct {
	sources.Graph
	NodeManager

	pres *presentation.Presentation
	occ  [][]occurrence

	defs  definitions
	coinc []coincidence

	largeCollapse int
}

// New returns a graph ready to enumerate over p, with the single node 0
// and out-degree equal to the alphabet size. The graph keeps and
// mutates p; pass a copy if the caller needs the original intact.
func New(p *presentation.Presentation) *Graph {
	g := &Graph{}
	g.Init(p)
	return g
}

// Init resets g to the state New would produce.
func (g *Graph) Init(p *presentation.Presentation) {
	g.Graph.Init(1, p.AlphabetSize)
	g.NodeManager = newNodeManager()
	g.pres = p
	g.occ = make([][]occurrence, p.AlphabetSize)
	for i := range p.Rules {
		g.indexWord(i)
	}
	g.defs = definitions{
		policy:   NoStackIfNoSpace,
		max:      2000,
		isActive: g.IsActiveNode,
	}
	g.coinc = g.coinc[:0]
	g.largeCollapse = 100000
}

// Presentation returns the presentation g enumerates over.
func (g *Graph) Presentation() *presentation.Presentation { return g.pres }

// AddRule appends the relation (u, v) to the presentation and indexes
// its letters, so that later definitions trace the new rule too.
func (g *Graph) AddRule(u, v wordgraph.Word) {
	g.pres.Rules = append(g.pres.Rules, u, v)
	g.indexWord(len(g.pres.Rules) - 2)
	g.indexWord(len(g.pres.Rules) - 1)
}

// indexWord records every letter occurrence of rule word i.
func (g *Graph) indexWord(i int) {
	for j, a := range g.pres.Rules[i] {
		g.occ[a] = append(g.occ[a], occurrence{rule: i, pos: j})
	}
}

// SetDefPolicy sets the policy applied when the definition stack is
// full.
func (g *Graph) SetDefPolicy(p DefPolicy) { g.defs.policy = p }

// SetDefMax sets the capacity of the definition stack.
func (g *Graph) SetDefMax(n int) { g.defs.max = n }

// SetLargeCollapse sets the number of pending coincidences beyond which
// processing stops maintaining the source lists and rebuilds them once
// at the end.
func (g *Graph) SetLargeCollapse(n int) { g.largeCollapse = n }

// AnySkippedDefinitions reports whether any definition was ever refused
// by the stack. When it is set, the graph may be incompatible with the
// relations even though the stack is empty, and only a full lookahead
// can tell.
func (g *Graph) AnySkippedDefinitions() bool { return g.defs.anySkipped }

// ClearDefinitions empties the definition stack.
func (g *Graph) ClearDefinitions() { g.defs.clear() }

// NewNode activates a node with no edges and no sources, growing the
// graph and the manager together when the free list is empty.
func (g *Graph) NewNode() Node {
	if !g.HasFreeNodes() {
		grow := int(g.growthFactor * float64(g.NodeCapacity()))
		if grow < 1 {
			grow = 1
		}
		g.addFreeNodes(grow)
		g.Graph.AddNodes(g.NodeCapacity() - g.NumberOfNodes())
	}
	c := g.newActiveNode()
	g.RemoveAllSourcesAndTargets(c)
	return c
}

// Define defines the edge (c, x, d), maintaining the source lists and,
// when regDefs is set, pushing the definition for later tracing.
func (g *Graph) Define(regDefs bool, c Node, x Label, d Node) {
	g.SetTargetNoChecks(c, x, d)
	if regDefs {
		g.defs.emplaceBack(c, x)
	}
}

// mergeTargetsOfNodes reconciles the targets of the edges (x, a) and
// (y, b): a missing target is copied from the other side, two distinct
// targets become a pending coincidence, and when both are missing
// prefDefs, if non-nil, may define them. A label of UndefinedLabel
// stands for the empty word, making the node itself the target.
func (g *Graph) mergeTargetsOfNodes(regDefs bool, x Node, a Label, y Node, b Label, prefDefs func(Node, Label, Node, Label)) {
	xa := x
	if a != wordgraph.UndefinedLabel {
		xa = g.TargetNoChecks(x, a)
	}
	yb := y
	if b != wordgraph.UndefinedLabel {
		yb = g.TargetNoChecks(y, b)
	}

	switch {
	case xa == Undefined && yb != Undefined:
		g.Define(regDefs, x, a, yb)
	case xa != Undefined && yb == Undefined:
		g.Define(regDefs, y, b, xa)
	case xa == Undefined && yb == Undefined:
		if prefDefs != nil {
			prefDefs(x, a, y, b)
		}
	case xa != yb:
		g.coinc = append(g.coinc, coincidence{xa, yb})
	}
}

// mergeTargetsOfPaths traces u from uNode and v from vNode up to their
// last letters and reconciles the two final edges. A side whose prefix
// leaves the defined part of the graph is left alone.
func (g *Graph) mergeTargetsOfPaths(regDefs bool, uNode Node, u wordgraph.Word, vNode Node, v wordgraph.Word, prefDefs func(Node, Label, Node, Label)) {
	x, a := uNode, wordgraph.UndefinedLabel
	if len(u) > 0 {
		x = g.FollowPathNoChecks(uNode, u[:len(u)-1])
		if x == Undefined {
			return
		}
		a = u[len(u)-1]
	}
	y, b := vNode, wordgraph.UndefinedLabel
	if len(v) > 0 {
		y = g.FollowPathNoChecks(vNode, v[:len(v)-1])
		if y == Undefined {
			return
		}
		b = v[len(v)-1]
	}
	g.mergeTargetsOfNodes(regDefs, x, a, y, b, prefDefs)
}

// CompletePath follows w from c, activating a new node for every
// missing edge, and returns the endpoint.
func (g *Graph) CompletePath(regDefs bool, c Node, w wordgraph.Word) Node {
	e, i := g.LastNodeOnPath(c, w)
	for ; i < len(w); i++ {
		d := g.NewNode()
		g.Define(regDefs, e, w[i], d)
		e = d
	}
	return e
}

// PushDefinitionHLT traces both sides of the relation (u, v) from c,
// completing all but the last edge of each side, and reconciles the two
// final edges. When both are missing a single new node becomes the
// target of both, which is what makes the relation hold at c.
func (g *Graph) PushDefinitionHLT(regDefs bool, c Node, u, v wordgraph.Word) {
	x, a := c, wordgraph.UndefinedLabel
	if len(u) > 0 {
		x = g.CompletePath(regDefs, c, u[:len(u)-1])
		a = u[len(u)-1]
	}
	y, b := c, wordgraph.UndefinedLabel
	if len(v) > 0 {
		y = g.CompletePath(regDefs, c, v[:len(v)-1])
		b = v[len(v)-1]
	}
	g.mergeTargetsOfNodes(regDefs, x, a, y, b, func(xx Node, aa Label, yy Node, bb Label) {
		d := g.NewNode()
		g.Define(regDefs, xx, aa, d)
		if aa != bb || xx != yy {
			g.Define(regDefs, yy, bb, d)
		}
	})
}

// ProcessCoincidences drains the coincidence stack, merging each pair
// of nodes into the smaller one. While the stack stays below the large
// collapse threshold the source lists are maintained edge by edge;
// beyond it the merges run on the edge table alone and the source lists
// are rebuilt once the stack is empty.
func (g *Graph) ProcessCoincidences(regDefs bool) {
	if len(g.coinc) == 0 {
		return
	}
	var newEdge func(Node, Label)
	if regDefs {
		newEdge = func(n Node, x Label) { g.defs.emplaceBack(n, x) }
	}
	incompat := func(u, v Node) { g.coinc = append(g.coinc, coincidence{u, v}) }

	for len(g.coinc) > 0 && len(g.coinc) < g.largeCollapse {
		c := g.coinc[len(g.coinc)-1]
		g.coinc = g.coinc[:len(g.coinc)-1]
		min, max := g.FindNode(c.first), g.FindNode(c.second)
		if min == max {
			continue
		}
		if min > max {
			min, max = max, min
		}
		g.unionNodes(min, max)
		g.MergeNodes(min, max, newEdge, incompat)
	}

	if len(g.coinc) == 0 {
		return
	}

	// Large collapse. Merge on the edge table only: copy the out-edges
	// of max onto min where min has none, and queue the clashes.
	for len(g.coinc) > 0 {
		c := g.coinc[len(g.coinc)-1]
		g.coinc = g.coinc[:len(g.coinc)-1]
		min, max := g.FindNode(c.first), g.FindNode(c.second)
		if min == max {
			continue
		}
		if min > max {
			min, max = max, min
		}
		g.unionNodes(min, max)
		for x := 0; x < g.OutDegree(); x++ {
			v := g.TargetNoChecks(max, Label(x))
			if v == Undefined {
				continue
			}
			u := g.TargetNoChecks(min, Label(x))
			if u == Undefined {
				g.Graph.Graph.SetTargetNoChecks(min, Label(x), v)
			} else if u != v {
				g.coinc = append(g.coinc, coincidence{u, v})
			}
		}
	}

	// Resolve the surviving targets and rebuild every source list.
	for c := g.InitialNode(); c != g.firstFree; c = g.forwd[c] {
		g.RemoveAllSources(c)
	}
	for c := g.InitialNode(); c != g.firstFree; c = g.forwd[c] {
		for x := 0; x < g.OutDegree(); x++ {
			cx := g.TargetNoChecks(c, Label(x))
			if cx == Undefined {
				continue
			}
			d := g.FindNode(cx)
			if d != cx && regDefs {
				g.defs.emplaceBack(c, Label(x))
			}
			g.Graph.Graph.SetTargetNoChecks(c, Label(x), d)
			g.AddSourceNoChecks(d, Label(x), c)
		}
	}
}

// ProcessDefinitions drains the definition stack, tracing through every
// rule instance that each recorded edge could have completed, and
// processes the coincidences this uncovers as it goes.
func (g *Graph) ProcessDefinitions() {
	for !g.defs.empty() {
		d := g.defs.pop()
		if g.IsActiveNode(d.node) {
			g.processDefinition(d.node, d.label)
		}
		g.ProcessCoincidences(true)
	}
}

// processDefinition finds every rule instance whose path crosses the
// edge (c, a) and reconciles its two sides. For each occurrence of a in
// a rule word, the nodes the instance could start from are found by
// walking the source lists backwards along the prefix before the
// occurrence.
func (g *Graph) processDefinition(c Node, a Label) {
	rules := g.pres.Rules
	for _, o := range g.occ[a] {
		w := rules[o.rule]
		starts := []Node{c}
		for k := o.pos - 1; k >= 0 && len(starts) > 0; k-- {
			var prev []Node
			for _, n := range starts {
				for s := g.FirstSource(n, w[k]); s != Undefined; s = g.NextSource(s, w[k]) {
					prev = append(prev, s)
				}
			}
			starts = prev
		}
		other := rules[o.rule^1]
		for _, s := range starts {
			g.mergeTargetsOfPaths(true, s, w, s, other, nil)
		}
	}
}

// MakeCompatible sweeps the active nodes from the lookahead cursor,
// tracing every rule at every node and merging the endpoints that
// disagree, without ever defining new nodes. It returns the number of
// nodes the sweep killed.
//
// When stopEarly is set the sweep gives up as not worth finishing if an
// interval passes during which fewer than ratio times the active nodes
// were killed.
func (g *Graph) MakeCompatible(stopEarly bool, interval time.Duration, ratio float64) uint64 {
	before := g.killed
	rules := g.pres.Rules
	last := time.Now()
	killedAtLast := g.killed
	for g.currentLA != g.firstFree {
		for i := 0; i+1 < len(rules); i += 2 {
			g.mergeTargetsOfPaths(false, g.currentLA, rules[i], g.currentLA, rules[i+1], nil)
			g.ProcessCoincidences(false)
		}
		g.currentLA = g.forwd[g.currentLA]
		if stopEarly && time.Since(last) >= interval {
			if float64(g.killed-killedAtLast) < ratio*float64(g.active) {
				break
			}
			last = time.Now()
			killedAtLast = g.killed
		}
	}
	return g.killed - before
}

// FelschLookahead re-traces every defined edge of every active node
// from the lookahead cursor, as if each were a fresh definition, and
// returns the number of nodes killed.
func (g *Graph) FelschLookahead() uint64 {
	before := g.killed
	for g.currentLA != g.firstFree {
		for x := 0; x < g.OutDegree(); x++ {
			if g.TargetNoChecks(g.currentLA, Label(x)) != Undefined {
				g.processDefinition(g.currentLA, Label(x))
				g.ProcessCoincidences(false)
			}
		}
		g.currentLA = g.forwd[g.currentLA]
	}
	return g.killed - before
}

// PermuteNodes relabels the first n nodes by q, where p is the inverse
// permutation, keeping the edge table, source lists, and node manager
// consistent. The permutation must move the active nodes to an initial
// segment, which is what standardization produces; the coincidence and
// definition stacks must be empty.
func (g *Graph) PermuteNodes(p, q []Node, n int) {
	g.Graph.PermuteNodes(p, q, n)
	g.relink()
}

// CompactToActive discards the free nodes, leaving exactly the active
// nodes 0..n-1. The graph must have been standardized first so that the
// active nodes occupy an initial segment.
func (g *Graph) CompactToActive() {
	n := int(g.active)
	g.eraseFreeNodes()
	g.ShrinkToFit(n)
}
