package sources

import (
	"github.com/katalvlaran/cosets/wordgraph"
)

// Node and Label alias the shared word graph types for brevity.
type (
	Node  = wordgraph.Node
	Label = wordgraph.Label
)

// Undefined marks an absent node, as in package wordgraph.
const Undefined = wordgraph.Undefined

// Graph is a word graph extended with intrusive preimage lists.
//
// Mutate it only through the methods of this type; writing edges through
// the embedded word graph directly leaves the source lists stale.
type Graph struct {
	wordgraph.Graph

	firstSource []Node // row-major, head of the source list per (node, label)
	nextSource  []Node // row-major, successor per (source node, label)
}

// New returns a graph with numNodes nodes and out-degree outDegree, with
// no edges defined.
func New(numNodes, outDegree int) *Graph {
	g := &Graph{}
	g.Init(numNodes, outDegree)
	return g
}

// NewFromGraph returns a copy of wg with its source lists computed.
func NewFromGraph(wg *wordgraph.Graph) *Graph {
	g := New(wg.NumberOfNodes(), wg.OutDegree())
	for n := Node(0); int(n) < wg.NumberOfNodes(); n++ {
		for x := 0; x < wg.OutDegree(); x++ {
			if t := wg.TargetNoChecks(n, Label(x)); t != Undefined {
				g.SetTargetNoChecks(n, Label(x), t)
			}
		}
	}
	return g
}

// Init resets g to numNodes nodes and out-degree outDegree with no
// edges, reusing allocations where possible.
func (g *Graph) Init(numNodes, outDegree int) {
	g.Graph.Init(numNodes, outDegree)
	need := numNodes * outDegree
	if cap(g.firstSource) < need {
		g.firstSource = make([]Node, need)
		g.nextSource = make([]Node, need)
	} else {
		g.firstSource = g.firstSource[:need]
		g.nextSource = g.nextSource[:need]
	}
	for i := 0; i < need; i++ {
		g.firstSource[i] = Undefined
		g.nextSource[i] = Undefined
	}
}

// Copy returns a deep copy of g.
func (g *Graph) Copy() *Graph {
	h := &Graph{
		Graph:       *g.Graph.Copy(),
		firstSource: make([]Node, len(g.firstSource)),
		nextSource:  make([]Node, len(g.nextSource)),
	}
	copy(h.firstSource, g.firstSource)
	copy(h.nextSource, g.nextSource)
	return h
}

// AddNodes appends nr new nodes with no edges and empty source lists.
func (g *Graph) AddNodes(nr int) {
	g.Graph.AddNodes(nr)
	need := g.NumberOfNodes() * g.OutDegree()
	for len(g.firstSource) < need {
		g.firstSource = append(g.firstSource, Undefined)
		g.nextSource = append(g.nextSource, Undefined)
	}
}

// FirstSource returns the head of the list of sources of c under x, or
// Undefined when the list is empty.
func (g *Graph) FirstSource(c Node, x Label) Node {
	return g.firstSource[int(c)*g.OutDegree()+int(x)]
}

// NextSource returns the successor of d in the list of sources of the
// node target(d, x), or Undefined at the end of the list.
func (g *Graph) NextSource(d Node, x Label) Node {
	return g.nextSource[int(d)*g.OutDegree()+int(x)]
}

// SetTargetNoChecks defines the edge from c labelled x to point at d and
// prepends c to the source list of d under x.
//
// The previous target of (c, x), if any, keeps c in its source list;
// use RemoveTargetNoChecks first when redefining an edge whose old
// target's list must stay consistent. MergeNodes relies on the
// overwrite behaviour.
func (g *Graph) SetTargetNoChecks(c Node, x Label, d Node) {
	g.Graph.SetTargetNoChecks(c, x, d)
	g.AddSourceNoChecks(d, x, c)
}

// RemoveTargetNoChecks undefines the edge from c labelled x, removing c
// from the source list of the old target.
func (g *Graph) RemoveTargetNoChecks(c Node, x Label) {
	g.removeSource(g.TargetNoChecks(c, x), x, c)
	g.Graph.RemoveTargetNoChecks(c, x)
}

// AddSourceNoChecks prepends d to the list of sources of c under x,
// without touching the edge table.
func (g *Graph) AddSourceNoChecks(c Node, x Label, d Node) {
	m := g.OutDegree()
	g.nextSource[int(d)*m+int(x)] = g.firstSource[int(c)*m+int(x)]
	g.firstSource[int(c)*m+int(x)] = d
}

// removeSource unlinks d from the list of sources of cx under x.
func (g *Graph) removeSource(cx Node, x Label, d Node) {
	m := g.OutDegree()
	e := g.firstSource[int(cx)*m+int(x)]
	if e == d {
		g.firstSource[int(cx)*m+int(x)] = g.nextSource[int(d)*m+int(x)]
		return
	}
	for g.nextSource[int(e)*m+int(x)] != d {
		e = g.nextSource[int(e)*m+int(x)]
	}
	g.nextSource[int(e)*m+int(x)] = g.nextSource[int(d)*m+int(x)]
}

// IsSourceNoChecks reports whether d is a source of c under x. It walks
// the source list, so it is linear in the in-degree of c.
func (g *Graph) IsSourceNoChecks(c Node, x Label, d Node) bool {
	c = g.FirstSource(c, x)
	for c != d && c != Undefined {
		c = g.NextSource(c, x)
	}
	return c == d
}

// RemoveAllSources empties every source list of c.
func (g *Graph) RemoveAllSources(c Node) {
	m := g.OutDegree()
	for x := 0; x < m; x++ {
		g.firstSource[int(c)*m+x] = Undefined
	}
}

// RemoveAllSourcesAndTargets empties every source list of c and
// undefines every edge out of c, without maintaining the source lists of
// the old targets. Use together with RebuildSources.
func (g *Graph) RemoveAllSourcesAndTargets(c Node) {
	m := g.OutDegree()
	for x := 0; x < m; x++ {
		g.firstSource[int(c)*m+x] = Undefined
		g.Graph.RemoveTargetNoChecks(c, Label(x))
	}
}

// MergeNodes redirects every edge into max to point at min, and merges
// the out-edges of max into those of min. newEdge is called for every
// edge that is redirected or newly defined; incompat is called with the
// two distinct targets whenever min and max both have an edge under the
// same label, and the caller is expected to record them for later
// identification.
//
// min must be less than max, and both must be valid nodes.
func (g *Graph) MergeNodes(min, max Node, newEdge func(Node, Label), incompat func(Node, Node)) {
	m := g.OutDegree()
	for x := 0; x < m; x++ {
		// redirect every edge v -> max to v -> min
		v := g.FirstSource(max, Label(x))
		for v != Undefined {
			w := g.NextSource(v, Label(x))
			g.SetTargetNoChecks(v, Label(x), min)
			if newEdge != nil {
				newEdge(v, Label(x))
			}
			v = w
		}

		// now let v be the image of max
		v = g.TargetNoChecks(max, Label(x))
		if v != Undefined {
			g.removeSource(v, Label(x), max)
			// let u be the image of min, and ensure u == v
			u := g.TargetNoChecks(min, Label(x))
			if u == Undefined {
				g.SetTargetNoChecks(min, Label(x), v)
				if newEdge != nil {
					newEdge(min, Label(x))
				}
			} else if u != v {
				incompat(u, v)
			}
		}
	}
}

// PermuteNodes relabels the first n nodes by q (old to new), where p is
// the inverse permutation, keeping the source lists consistent.
func (g *Graph) PermuteNodes(p, q []Node, n int) {
	g.Graph.PermuteNodes(p, q, n)
	m := g.OutDegree()
	mapped := func(i Node) Node {
		if i == Undefined {
			return i
		}
		return q[i]
	}
	oldFirst := make([]Node, n*m)
	copy(oldFirst, g.firstSource[:n*m])
	oldNext := make([]Node, n*m)
	copy(oldNext, g.nextSource[:n*m])
	for c := 0; c < n; c++ {
		for x := 0; x < m; x++ {
			g.firstSource[c*m+x] = mapped(oldFirst[int(p[c])*m+x])
			g.nextSource[c*m+x] = mapped(oldNext[int(p[c])*m+x])
		}
	}
}

// edgeRec is an edge gathered during node surgery.
type edgeRec struct {
	s Node
	x Label
	t Node
}

// incidentEdges collects every edge into or out of any node in nodes.
// Out-edges whose target is itself in nodes are collected once, through
// the source list of the target.
func (g *Graph) incidentEdges(nodes ...Node) []edgeRec {
	inSet := func(n Node) bool {
		for _, c := range nodes {
			if n == c {
				return true
			}
		}
		return false
	}
	var edges []edgeRec
	m := g.OutDegree()
	for _, c := range nodes {
		for x := 0; x < m; x++ {
			for s := g.FirstSource(c, Label(x)); s != Undefined; s = g.NextSource(s, Label(x)) {
				edges = append(edges, edgeRec{s, Label(x), c})
			}
			if t := g.TargetNoChecks(c, Label(x)); t != Undefined && !inSet(t) {
				edges = append(edges, edgeRec{c, Label(x), t})
			}
		}
	}
	return edges
}

// SwapNodes exchanges the labels of the valid nodes c and d: afterwards
// d plays exactly the role c played and vice versa.
func (g *Graph) SwapNodes(c, d Node) {
	swap := func(n Node) Node {
		switch n {
		case c:
			return d
		case d:
			return c
		default:
			return n
		}
	}
	edges := g.incidentEdges(c, d)
	for _, e := range edges {
		g.RemoveTargetNoChecks(e.s, e.x)
	}
	for _, e := range edges {
		g.SetTargetNoChecks(swap(e.s), e.x, swap(e.t))
	}
}

// RenameNode moves the valid node c to the slot d, which must have no
// edges: afterwards d has exactly the in- and out-edges c had.
func (g *Graph) RenameNode(c, d Node) {
	rename := func(n Node) Node {
		if n == c {
			return d
		}
		return n
	}
	edges := g.incidentEdges(c)
	for _, e := range edges {
		g.RemoveTargetNoChecks(e.s, e.x)
	}
	for _, e := range edges {
		g.SetTargetNoChecks(rename(e.s), e.x, rename(e.t))
	}
}

// RebuildSources recomputes the source lists of the given nodes from the
// edge table: every list is emptied and then refilled from the out-edges
// of the nodes themselves. The set must be closed under following edges.
func (g *Graph) RebuildSources(nodes []Node) {
	m := g.OutDegree()
	for _, c := range nodes {
		for x := 0; x < m; x++ {
			g.firstSource[int(c)*m+x] = Undefined
		}
	}
	for _, c := range nodes {
		for x := 0; x < m; x++ {
			if t := g.TargetNoChecks(c, Label(x)); t != Undefined {
				g.AddSourceNoChecks(t, Label(x), c)
			}
		}
	}
}

// InducedSubgraph restricts g to the nodes in [first, last), renumbering
// them to [0, last-first). The retained nodes must have no edges to or
// from the removed ones.
func (g *Graph) InducedSubgraph(first, last Node) {
	n := int(last - first)
	m := g.OutDegree()
	rows := make([][]Node, n)
	for c := 0; c < n; c++ {
		rows[c] = make([]Node, m)
		for x := 0; x < m; x++ {
			t := g.TargetNoChecks(first+Node(c), Label(x))
			if t != Undefined {
				t -= first
			}
			rows[c][x] = t
		}
	}
	g.Init(n, m)
	for c := 0; c < n; c++ {
		for x := 0; x < m; x++ {
			if rows[c][x] != Undefined {
				g.SetTargetNoChecks(Node(c), Label(x), rows[c][x])
			}
		}
	}
}

// ShrinkToFit discards every node at or above numNodes. The kept nodes
// must have no edges to or from the discarded ones.
func (g *Graph) ShrinkToFit(numNodes int) {
	g.Restrict(numNodes)
	m := g.OutDegree()
	g.firstSource = g.firstSource[:numNodes*m]
	g.nextSource = g.nextSource[:numNodes*m]
}

// DisjointUnion appends a shifted copy of wg to g: node i of wg becomes
// node N+i of g, where N is the old node count of g.
func (g *Graph) DisjointUnion(wg *wordgraph.Graph) {
	n := Node(g.NumberOfNodes())
	g.AddNodes(wg.NumberOfNodes())
	for s := Node(0); int(s) < wg.NumberOfNodes(); s++ {
		for x := 0; x < wg.OutDegree(); x++ {
			if t := wg.TargetNoChecks(s, Label(x)); t != Undefined {
				g.SetTargetNoChecks(s+n, Label(x), t+n)
			}
		}
	}
}
