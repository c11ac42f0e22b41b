package wordgraph

import (
	"fmt"
	"strings"
)

// Graph is a word graph: a table assigning to every pair (node, label) a
// target node or Undefined. The table is stored row-major, one row of
// OutDegree() slots per node.
//
// The zero value is an empty graph with no nodes and out-degree zero.
type Graph struct {
	numNodes  int
	outDegree int
	targets   []Node // row-major, len == numNodes*outDegree
}

// New returns a word graph with numNodes nodes, out-degree outDegree, and
// every edge undefined.
func New(numNodes, outDegree int) *Graph {
	g := &Graph{}
	g.Init(numNodes, outDegree)
	return g
}

// NewFromRows returns a word graph whose row for node i is rows[i]; the
// out-degree is the length of the first row. Rows shorter than the
// out-degree are padded with Undefined.
func NewFromRows(rows [][]Node) *Graph {
	m := 0
	if len(rows) > 0 {
		m = len(rows[0])
	}
	g := New(len(rows), m)
	for i, row := range rows {
		for j, t := range row {
			g.targets[i*m+j] = t
		}
	}
	return g
}

// Init resets g to numNodes nodes and out-degree outDegree with every
// edge undefined, reusing the table when it is large enough.
func (g *Graph) Init(numNodes, outDegree int) {
	g.numNodes = numNodes
	g.outDegree = outDegree
	need := numNodes * outDegree
	if cap(g.targets) < need {
		g.targets = make([]Node, need)
	} else {
		g.targets = g.targets[:need]
	}
	for i := range g.targets {
		g.targets[i] = Undefined
	}
}

// Copy returns a deep copy of g.
func (g *Graph) Copy() *Graph {
	h := &Graph{
		numNodes:  g.numNodes,
		outDegree: g.outDegree,
		targets:   make([]Node, len(g.targets)),
	}
	copy(h.targets, g.targets)
	return h
}

// NumberOfNodes returns the number of nodes in g.
func (g *Graph) NumberOfNodes() int { return g.numNodes }

// OutDegree returns the number of edge slots per node.
func (g *Graph) OutDegree() int { return g.outDegree }

// NumberOfEdges returns the number of defined edges in g.
func (g *Graph) NumberOfEdges() int {
	count := 0
	for _, t := range g.targets {
		if t != Undefined {
			count++
		}
	}
	return count
}

// Target returns the target of the edge from n labelled l, or Undefined
// when the edge is not defined. It validates both arguments.
func (g *Graph) Target(n Node, l Label) (Node, error) {
	if err := g.validateNode(n); err != nil {
		return Undefined, fmt.Errorf("%w: node %d, have %d nodes", err, n, g.numNodes)
	}
	if err := g.validateLabel(l); err != nil {
		return Undefined, fmt.Errorf("%w: label %d, out-degree %d", err, l, g.outDegree)
	}
	return g.TargetNoChecks(n, l), nil
}

// TargetNoChecks returns the target of the edge from n labelled l without
// validating the arguments.
func (g *Graph) TargetNoChecks(n Node, l Label) Node {
	return g.targets[int(n)*g.outDegree+int(l)]
}

// SetTarget defines the edge from n labelled l to point at target. It
// validates all three arguments.
func (g *Graph) SetTarget(n Node, l Label, target Node) error {
	if err := g.validateNode(n); err != nil {
		return fmt.Errorf("%w: source %d, have %d nodes", err, n, g.numNodes)
	}
	if err := g.validateNode(target); err != nil {
		return fmt.Errorf("%w: target %d, have %d nodes", err, target, g.numNodes)
	}
	if err := g.validateLabel(l); err != nil {
		return fmt.Errorf("%w: label %d, out-degree %d", err, l, g.outDegree)
	}
	g.SetTargetNoChecks(n, l, target)
	return nil
}

// SetTargetNoChecks defines the edge from n labelled l without validating
// the arguments.
func (g *Graph) SetTargetNoChecks(n Node, l Label, target Node) {
	g.targets[int(n)*g.outDegree+int(l)] = target
}

// RemoveTargetNoChecks makes the edge from n labelled l undefined.
func (g *Graph) RemoveTargetNoChecks(n Node, l Label) {
	g.targets[int(n)*g.outDegree+int(l)] = Undefined
}

// NextTarget returns the first defined edge (target, label) out of n with
// label at least l, or (Undefined, UndefinedLabel) when there is none.
func (g *Graph) NextTarget(n Node, l Label) (Node, Label) {
	row := g.targets[int(n)*g.outDegree : (int(n)+1)*g.outDegree]
	for x := int(l); x < g.outDegree; x++ {
		if row[x] != Undefined {
			return row[x], Label(x)
		}
	}
	return Undefined, UndefinedLabel
}

// AddNodes appends nr new nodes with no defined edges.
func (g *Graph) AddNodes(nr int) {
	g.numNodes += nr
	need := g.numNodes * g.outDegree
	for len(g.targets) < need {
		g.targets = append(g.targets, Undefined)
	}
}

// AddToOutDegree adds nr edge slots to every node, relaying the table.
func (g *Graph) AddToOutDegree(nr int) {
	if nr == 0 {
		return
	}
	m := g.outDegree + nr
	targets := make([]Node, g.numNodes*m)
	for n := 0; n < g.numNodes; n++ {
		copy(targets[n*m:], g.targets[n*g.outDegree:(n+1)*g.outDegree])
		for x := g.outDegree; x < m; x++ {
			targets[n*m+x] = Undefined
		}
	}
	g.outDegree = m
	g.targets = targets
}

// Restrict shrinks g to its first numNodes nodes. Edges out of the kept
// nodes that point at removed nodes are left in place; callers are
// expected to restrict to a closed set of nodes.
func (g *Graph) Restrict(numNodes int) {
	g.numNodes = numNodes
	g.targets = g.targets[:numNodes*g.outDegree]
}

// PermuteNodes relabels the nodes of g by the permutation q, where
// p is the inverse of q; p maps new node numbers to old ones and q maps
// old node numbers to new ones. Only the first n nodes are permuted; the
// rest of the table is untouched.
func (g *Graph) PermuteNodes(p, q []Node, n int) {
	m := g.outDegree
	old := make([]Node, n*m)
	copy(old, g.targets[:n*m])
	for c := 0; c < n; c++ {
		for x := 0; x < m; x++ {
			t := old[int(p[c])*m+x]
			if t != Undefined {
				t = q[t]
			}
			g.targets[c*m+x] = t
		}
	}
}

// Equal reports whether g and h have the same nodes, out-degree, and
// edges.
func (g *Graph) Equal(h *Graph) bool {
	if g.numNodes != h.numNodes || g.outDegree != h.outDegree {
		return false
	}
	for i, t := range g.targets {
		if h.targets[i] != t {
			return false
		}
	}
	return true
}

// String renders g as {{t00, t01, ...}, {t10, ...}, ...} with "-" for
// undefined targets.
func (g *Graph) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for n := 0; n < g.numNodes; n++ {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('{')
		for x := 0; x < g.outDegree; x++ {
			if x > 0 {
				b.WriteString(", ")
			}
			t := g.targets[n*g.outDegree+x]
			if t == Undefined {
				b.WriteByte('-')
			} else {
				fmt.Fprintf(&b, "%d", t)
			}
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}
