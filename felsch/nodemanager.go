package felsch

import "github.com/katalvlaran/cosets/wordgraph"

// Node and Label alias the shared word graph types for brevity.
type (
	Node  = wordgraph.Node
	Label = wordgraph.Label
)

// Undefined marks an absent node, as in package wordgraph.
const Undefined = wordgraph.Undefined

// NodeManager splits the nodes of an enumeration graph into an active
// part and a free part using a doubly linked list over two arrays.
//
// If c is a node then forwd[c] is the node after c in the list and
// bckwd[c] the node before it; bckwd[0] = 0 and forwd of the last node
// is Undefined. The list starts with the active nodes, in order of
// definition, followed by the free nodes. A node c is active exactly
// when ident[c] == c; a freed node instead holds in ident[c] a
// forwarding address to the node it was identified with, so that
// findNode can resolve stale references long after the merge.
//
// Two cursors walk the active part independently: current is used by
// the main enumeration loop and currentLA by lookaheads. Freeing a node
// a cursor points at moves that cursor back one place, so a loop that
// processes coincidences between steps never skips or revisits a node.
type NodeManager struct {
	current   Node
	currentLA Node

	bckwd []Node
	forwd []Node
	ident []Node

	firstFree  Node
	lastActive Node

	growthFactor float64

	active  uint64
	defined uint64
	killed  uint64
}

// Stats is a snapshot of the node counts of an enumeration.
type Stats struct {
	NodesActive  uint64
	NodesDefined uint64
	NodesKilled  uint64
}

// newNodeManager returns a manager with the single active node 0.
func newNodeManager() NodeManager {
	return NodeManager{
		bckwd:        []Node{0},
		forwd:        []Node{Undefined},
		ident:        []Node{0},
		firstFree:    Undefined,
		lastActive:   0,
		growthFactor: 2.0,
		active:       1,
		defined:      1,
	}
}

// InitialNode returns the first node of the list; it is always active.
func (m *NodeManager) InitialNode() Node { return 0 }

// Cursor returns the position of the main cursor.
func (m *NodeManager) Cursor() Node { return m.current }

// SetCursor moves the main cursor to c, which must be active.
func (m *NodeManager) SetCursor(c Node) { m.current = c }

// LookaheadCursor returns the position of the lookahead cursor.
func (m *NodeManager) LookaheadCursor() Node { return m.currentLA }

// SetLookaheadCursor moves the lookahead cursor to c.
func (m *NodeManager) SetLookaheadCursor(c Node) { m.currentLA = c }

// NodeCapacity returns the total number of managed nodes, active and
// free together.
func (m *NodeManager) NodeCapacity() int { return len(m.forwd) }

// FirstFreeNode returns the first free node, or Undefined when every
// node is active. It terminates iterations over the active part.
func (m *NodeManager) FirstFreeNode() Node { return m.firstFree }

// HasFreeNodes reports whether any node is free.
func (m *NodeManager) HasFreeNodes() bool { return m.firstFree != Undefined }

// IsActiveNode reports whether c is active.
func (m *NodeManager) IsActiveNode(c Node) bool {
	return c != Undefined && m.ident[c] == c
}

// NextActiveNode returns the node after c in the list.
func (m *NodeManager) NextActiveNode(c Node) Node { return m.forwd[c] }

// NumberOfNodesActive returns the number of active nodes.
func (m *NodeManager) NumberOfNodesActive() uint64 { return m.active }

// NumberOfNodesDefined returns the number of nodes ever activated.
func (m *NodeManager) NumberOfNodesDefined() uint64 { return m.defined }

// NumberOfNodesKilled returns the number of nodes freed by merges.
func (m *NodeManager) NumberOfNodesKilled() uint64 { return m.killed }

// Stats returns a snapshot of the node counts.
func (m *NodeManager) Stats() Stats {
	return Stats{
		NodesActive:  m.active,
		NodesDefined: m.defined,
		NodesKilled:  m.killed,
	}
}

// GrowthFactor returns the factor by which the capacity grows when the
// free list runs out.
func (m *NodeManager) GrowthFactor() float64 { return m.growthFactor }

// SetGrowthFactor sets the capacity growth factor; values below 1 are
// ignored.
func (m *NodeManager) SetGrowthFactor(f float64) {
	if f >= 1 {
		m.growthFactor = f
	}
}

// PositionOfNode returns the number of active nodes strictly before c
// in the list, or -1 when c is not active.
func (m *NodeManager) PositionOfNode(c Node) int {
	pos := 0
	for d := m.InitialNode(); d != m.firstFree; d = m.forwd[d] {
		if d == c {
			return pos
		}
		pos++
	}
	return -1
}

// FindNode resolves the forwarding addresses of c, returning the active
// node that c was ultimately identified with. Paths are halved as they
// are walked, so repeated lookups of the same dead node are cheap.
func (m *NodeManager) FindNode(c Node) Node {
	for {
		d := m.ident[c]
		if d == c {
			return d
		}
		e := m.ident[d]
		if d == e {
			return d
		}
		m.ident[c] = e
		c = e
	}
}

// addFreeNodes appends n new free nodes at the end of the arrays and
// links them in at the front of the free list:
//
//	0 <-> ... <-> lastActive <-> oldCapacity <-> ... <-> oldCapacity+n-1
//	  <-> old first free node <-> remaining old free nodes
func (m *NodeManager) addFreeNodes(n int) {
	oldCapacity := len(m.forwd)
	oldFirstFree := m.firstFree

	for i := 0; i < n; i++ {
		m.forwd = append(m.forwd, Node(oldCapacity+i+1))
		m.bckwd = append(m.bckwd, Node(oldCapacity+i-1))
		m.ident = append(m.ident, 0)
	}
	m.forwd[len(m.forwd)-1] = Undefined

	m.firstFree = Node(oldCapacity)
	m.forwd[m.lastActive] = m.firstFree
	m.bckwd[m.firstFree] = m.lastActive

	if oldFirstFree != Undefined {
		m.forwd[len(m.forwd)-1] = oldFirstFree
		m.bckwd[oldFirstFree] = Node(len(m.forwd) - 1)
	}
}

// addActiveNodes activates n nodes, taking them from the free list and
// growing the arrays when the free list is too short.
func (m *NodeManager) addActiveNodes(n int) {
	if spare := m.NodeCapacity() - int(m.active); n > spare {
		extra := n - spare
		m.addFreeNodes(extra)
		// the nodes just added sit at the front of the free list, so the
		// whole tail of the arrays is now active
		m.lastActive = Node(len(m.forwd) - 1)
		m.firstFree = m.forwd[m.lastActive]
		for i := len(m.ident) - extra; i < len(m.ident); i++ {
			m.ident[i] = Node(i)
		}
		m.active += uint64(extra)
		m.defined += uint64(extra)
		n -= extra
	}
	m.active += uint64(n)
	m.defined += uint64(n)
	for ; n > 0; n-- {
		m.bckwd[m.firstFree] = m.lastActive
		m.lastActive = m.firstFree
		m.firstFree = m.forwd[m.lastActive]
		m.ident[m.lastActive] = m.lastActive
	}
}

// newActiveNode activates and returns one node. The caller is expected
// to have grown the free list if it was empty, so that the graph tables
// stay in step with the manager.
func (m *NodeManager) newActiveNode() Node {
	m.addActiveNodes(1)
	return m.lastActive
}

// eraseFreeNodes truncates the arrays to the active nodes. Every active
// node must already be numbered below the active count, which is what
// standardization arranges.
func (m *NodeManager) eraseFreeNodes() {
	n := int(m.active)
	m.firstFree = Undefined
	m.forwd = m.forwd[:n]
	m.forwd[m.lastActive] = Undefined
	m.bckwd = m.bckwd[:n]
	m.ident = m.ident[:n]
}

// ff maps r to its image under the transposition of c and d.
func ff(c, d, r Node) Node {
	switch r {
	case c:
		return d
	case d:
		return c
	default:
		return r
	}
}

// switchNodes exchanges the positions of c and d in the list, at least
// one of which must be active.
func (m *NodeManager) switchNodes(c, d Node) {
	fc, fd, bc, bd := m.forwd[c], m.forwd[d], m.bckwd[c], m.bckwd[d]

	if fc != d {
		m.forwd[d] = fc
		m.bckwd[c] = bd
		m.forwd[bd] = c
		if fc != Undefined {
			m.bckwd[fc] = d
		}
	} else {
		m.forwd[d] = c
		m.bckwd[c] = d
	}

	if fd != c {
		m.forwd[c] = fd
		m.bckwd[d] = bc
		m.forwd[bc] = d
		if fd != Undefined {
			m.bckwd[fd] = c
		}
	} else {
		m.forwd[c] = d
		m.bckwd[d] = c
	}

	if !m.IsActiveNode(c) {
		m.ident[d] = 0
		m.ident[c] = c
	} else if !m.IsActiveNode(d) {
		m.ident[c] = 0
		m.ident[d] = d
	}

	m.current = ff(c, d, m.current)
	m.lastActive = ff(c, d, m.lastActive)
	m.firstFree = ff(c, d, m.firstFree)
}

// freeNode unlinks the active node c from the active part and prepends
// it to the free list, pulling any cursor pointing at c back one place.
func (m *NodeManager) freeNode(c Node) {
	if c == m.current {
		m.current = m.bckwd[m.current]
	}
	if c == m.currentLA {
		m.currentLA = m.bckwd[m.currentLA]
	}

	if c == m.lastActive {
		// the free list simply starts one node earlier
		m.lastActive = m.bckwd[m.lastActive]
	} else {
		m.bckwd[m.forwd[c]] = m.bckwd[c]
		m.forwd[m.bckwd[c]] = m.forwd[c]
		m.forwd[c] = m.firstFree
		if m.firstFree != Undefined {
			m.bckwd[m.firstFree] = c
		}
		m.forwd[m.lastActive] = c
	}
	m.bckwd[c] = m.lastActive
	m.firstFree = c
	m.ident[c] = 0
}

// unionNodes frees max and leaves a forwarding address to min, which
// must be an active node smaller than max.
func (m *NodeManager) unionNodes(min, max Node) {
	m.freeNode(max)
	m.active--
	m.killed++
	m.ident[max] = min
}

// relink rebuilds the list after a node permutation that moved the
// active nodes to 0..active-1 in their new order.
func (m *NodeManager) relink() {
	n := int(m.active)
	total := len(m.forwd)
	for i := 0; i < total; i++ {
		m.forwd[i] = Node(i + 1)
		m.ident[i] = 0
		if i < n {
			m.ident[i] = Node(i)
		}
		if i > 0 {
			m.bckwd[i] = Node(i - 1)
		}
	}
	m.bckwd[0] = 0
	m.forwd[total-1] = Undefined
	m.lastActive = Node(n - 1)
	m.firstFree = Undefined
	if n < total {
		m.firstFree = Node(n)
	}
	m.current = 0
	m.currentLA = 0
}
