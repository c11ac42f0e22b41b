package wordgraph

import "fmt"

// Joiner computes joins of the congruences represented by two word
// graphs, using the Hopcroft–Karp algorithm for checking equivalence of
// finite state automata. The two input graphs must have the same
// out-degree; they need not be complete.
//
// A Joiner can be reused across calls; its internal union-find and stack
// are recycled.
type Joiner struct {
	uf    *unionFind
	stack []joinPair
}

type joinPair struct {
	x, y uint32
}

// NewJoiner returns an empty Joiner.
func NewJoiner() *Joiner { return &Joiner{} }

// find resolves the target of node n (in the disjoint union of x and y)
// under the label a, as a union-find representative. Nodes below xn
// belong to x, nodes at or above xn belong to y.
func (j *Joiner) find(x *Graph, xn int, y *Graph, n uint32, a Label) uint32 {
	if int(n) < xn {
		return j.uf.find(uint32(x.TargetNoChecks(Node(n), a)))
	}
	return j.uf.find(uint32(y.TargetNoChecks(Node(int(n)-xn), a)) + uint32(xn))
}

// run unites the roots and then propagates: whenever two nodes are
// united, their targets under every label are united too.
func (j *Joiner) run(x *Graph, xn int, xroot Node, y *Graph, yn int, yroot Node) {
	j.uf = newUnionFind(xn + yn)
	j.uf.unite(uint32(xroot), uint32(yroot)+uint32(xn))
	j.stack = append(j.stack[:0], joinPair{uint32(xroot), uint32(yroot) + uint32(xn)})
	m := x.OutDegree()
	for len(j.stack) > 0 {
		top := j.stack[len(j.stack)-1]
		j.stack = j.stack[:len(j.stack)-1]
		for a := 0; a < m; a++ {
			rx := j.find(x, xn, y, top.x, Label(a))
			ry := j.find(x, xn, y, top.y, Label(a))
			if rx != ry {
				j.uf.unite(rx, ry)
				j.stack = append(j.stack, joinPair{rx, ry})
			}
		}
	}
}

// JoinNoChecks replaces xy with the join of x and y rooted at xroot and
// yroot. Both input graphs must be complete on the nodes reachable from
// their roots.
func (j *Joiner) JoinNoChecks(xy *Graph, x *Graph, xroot Node, y *Graph, yroot Node) {
	if x.NumberOfNodes() > y.NumberOfNodes() {
		j.JoinNoChecks(xy, y, yroot, x, xroot)
		return
	}
	xn, yn := x.NumberOfNodes(), y.NumberOfNodes()
	j.run(x, xn, xroot, y, yn, yroot)
	lookup := j.uf.normalize()

	xy.Init(j.uf.numberOfBlocks(), x.OutDegree())
	for s := 0; s < xn; s++ {
		for a := 0; a < x.OutDegree(); a++ {
			t := x.TargetNoChecks(Node(s), Label(a))
			if t != Undefined {
				xy.SetTargetNoChecks(
					Node(lookup[j.uf.find(uint32(s))]),
					Label(a),
					Node(lookup[j.uf.find(uint32(t))]),
				)
			}
		}
	}
	restrictToReachable(xy, Node(lookup[j.uf.find(uint32(xroot))]))
}

// Join is JoinNoChecks with validation of the roots and out-degrees.
func (j *Joiner) Join(xy *Graph, x *Graph, xroot Node, y *Graph, yroot Node) error {
	if err := x.validateNode(xroot); err != nil {
		return fmt.Errorf("%w: root %d, have %d nodes", err, xroot, x.NumberOfNodes())
	}
	if err := y.validateNode(yroot); err != nil {
		return fmt.Errorf("%w: root %d, have %d nodes", err, yroot, y.NumberOfNodes())
	}
	if x.OutDegree() != y.OutDegree() {
		return fmt.Errorf("%w: %d and %d", ErrOutDegreeMismatch, x.OutDegree(), y.OutDegree())
	}
	j.JoinNoChecks(xy, x, xroot, y, yroot)
	return nil
}

// IsSubrelationNoChecks reports whether every pair of words identified
// by x is identified by y, i.e. x is a finer congruence than y. Both
// graphs are taken rooted at node 0 and are assumed to consist of the
// nodes reachable from their roots.
//
// When x refines y the join of the two congruences is y itself, so it
// suffices to check that the join quotient has as many classes as y.
func (j *Joiner) IsSubrelationNoChecks(x, y *Graph) bool {
	xn, yn := x.NumberOfNodes(), y.NumberOfNodes()
	if yn > xn {
		return false
	}
	j.run(x, xn, 0, y, yn, 0)
	return j.uf.numberOfBlocks() == yn
}

// IsSubrelation is IsSubrelationNoChecks after checking the out-degrees
// match and that both graphs have at least one node.
func (j *Joiner) IsSubrelation(x, y *Graph) (bool, error) {
	if x.OutDegree() != y.OutDegree() {
		return false, fmt.Errorf("%w: %d and %d", ErrOutDegreeMismatch, x.OutDegree(), y.OutDegree())
	}
	if x.NumberOfNodes() == 0 || y.NumberOfNodes() == 0 {
		return false, fmt.Errorf("%w: graphs must have at least one node", ErrNodeOutOfRange)
	}
	return j.IsSubrelationNoChecks(x, y), nil
}

// restrictToReachable renumbers g so that only the nodes reachable from
// root remain, with root first in a breadth-first numbering.
func restrictToReachable(g *Graph, root Node) {
	q := make([]Node, g.NumberOfNodes())
	for i := range q {
		q[i] = Undefined
	}
	order := []Node{root}
	q[root] = 0
	next := Node(1)
	for i := 0; i < len(order); i++ {
		for a := 0; a < g.OutDegree(); a++ {
			t := g.TargetNoChecks(order[i], Label(a))
			if t != Undefined && q[t] == Undefined {
				q[t] = next
				next++
				order = append(order, t)
			}
		}
	}
	h := New(len(order), g.OutDegree())
	for _, s := range order {
		for a := 0; a < g.OutDegree(); a++ {
			t := g.TargetNoChecks(s, Label(a))
			if t != Undefined {
				h.SetTargetNoChecks(q[s], Label(a), q[t])
			}
		}
	}
	*g = *h
}
