package wordgraph

import "fmt"

// Meeter computes meets of the congruences represented by two word
// graphs, by the product automaton construction restricted to the pairs
// reachable from the pair of roots. The two input graphs must have the
// same out-degree.
//
// A Meeter can be reused across calls; its pair lookup table is
// recycled.
type Meeter struct {
	lookup map[uint64]Node
	queue  []joinPair
}

// NewMeeter returns an empty Meeter.
func NewMeeter() *Meeter { return &Meeter{} }

// MeetNoChecks replaces xy with the meet of x and y rooted at xroot and
// yroot. An edge of the meet is defined exactly when the corresponding
// edges are defined in both x and y.
func (m *Meeter) MeetNoChecks(xy *Graph, x *Graph, xroot Node, y *Graph, yroot Node) {
	if m.lookup == nil {
		m.lookup = make(map[uint64]Node)
	} else {
		clear(m.lookup)
	}
	deg := x.OutDegree()
	key := func(a, b Node) uint64 { return uint64(a)<<32 | uint64(b) }

	m.queue = append(m.queue[:0], joinPair{uint32(xroot), uint32(yroot)})
	m.lookup[key(xroot, yroot)] = 0
	type edge struct {
		from  Node
		label Label
		to    Node
	}
	var edges []edge
	for i := 0; i < len(m.queue); i++ {
		p := m.queue[i]
		from := m.lookup[key(Node(p.x), Node(p.y))]
		for a := 0; a < deg; a++ {
			tx := x.TargetNoChecks(Node(p.x), Label(a))
			ty := y.TargetNoChecks(Node(p.y), Label(a))
			if tx == Undefined || ty == Undefined {
				continue
			}
			k := key(tx, ty)
			to, ok := m.lookup[k]
			if !ok {
				to = Node(len(m.lookup))
				m.lookup[k] = to
				m.queue = append(m.queue, joinPair{uint32(tx), uint32(ty)})
			}
			edges = append(edges, edge{from, Label(a), to})
		}
	}
	xy.Init(len(m.lookup), deg)
	for _, e := range edges {
		xy.SetTargetNoChecks(e.from, e.label, e.to)
	}
}

// Meet is MeetNoChecks with validation of the roots and out-degrees.
func (m *Meeter) Meet(xy *Graph, x *Graph, xroot Node, y *Graph, yroot Node) error {
	if err := x.validateNode(xroot); err != nil {
		return fmt.Errorf("%w: root %d, have %d nodes", err, xroot, x.NumberOfNodes())
	}
	if err := y.validateNode(yroot); err != nil {
		return fmt.Errorf("%w: root %d, have %d nodes", err, yroot, y.NumberOfNodes())
	}
	if x.OutDegree() != y.OutDegree() {
		return fmt.Errorf("%w: %d and %d", ErrOutDegreeMismatch, x.OutDegree(), y.OutDegree())
	}
	m.MeetNoChecks(xy, x, xroot, y, yroot)
	return nil
}

// IsSubrelationNoChecks reports whether every pair of words identified
// by x is identified by y. Both graphs are taken rooted at node 0 and
// are assumed to consist of the nodes reachable from their roots.
//
// When x refines y the meet of the two congruences is x itself, so it
// suffices to check that the meet has as many classes as x.
func (m *Meeter) IsSubrelationNoChecks(x, y *Graph) bool {
	var xy Graph
	m.MeetNoChecks(&xy, x, 0, y, 0)
	return xy.NumberOfNodes() == x.NumberOfNodes()
}

// IsSubrelation is IsSubrelationNoChecks after checking the out-degrees
// match and that both graphs have at least one node.
func (m *Meeter) IsSubrelation(x, y *Graph) (bool, error) {
	if x.OutDegree() != y.OutDegree() {
		return false, fmt.Errorf("%w: %d and %d", ErrOutDegreeMismatch, x.OutDegree(), y.OutDegree())
	}
	if x.NumberOfNodes() == 0 || y.NumberOfNodes() == 0 {
		return false, fmt.Errorf("%w: graphs must have at least one node", ErrNodeOutOfRange)
	}
	return m.IsSubrelationNoChecks(x, y), nil
}
