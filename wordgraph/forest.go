package wordgraph

import "fmt"

// Forest is a collection of rooted trees on the nodes [0, n): every
// node has a parent node and the label of the edge from the parent, or
// Undefined for roots.
//
// Standardization fills a Forest with the spanning tree of the portion
// of a word graph reachable from node 0; reading the labels from a node
// up to its root then spells (reversed) a canonical word for the node.
type Forest struct {
	parent []Node
	label  []Label
}

// NewForest returns a forest with n nodes, all roots.
func NewForest(n int) *Forest {
	f := &Forest{}
	f.AddNodes(n)
	return f
}

// NumberOfNodes returns the number of nodes in f.
func (f *Forest) NumberOfNodes() int { return len(f.parent) }

// Empty reports whether f has no nodes.
func (f *Forest) Empty() bool { return len(f.parent) == 0 }

// Clear removes all nodes from f, retaining the allocated space.
func (f *Forest) Clear() {
	f.parent = f.parent[:0]
	f.label = f.label[:0]
}

// AddNodes appends n new root nodes.
func (f *Forest) AddNodes(n int) {
	for i := 0; i < n; i++ {
		f.parent = append(f.parent, Undefined)
		f.label = append(f.label, UndefinedLabel)
	}
}

// Set records that the parent of node is parent, reached by an edge
// labelled label.
func (f *Forest) Set(node, parent Node, label Label) error {
	if int(node) >= len(f.parent) {
		return fmt.Errorf("%w: node %d, have %d nodes", ErrNodeOutOfRange, node, len(f.parent))
	}
	if int(parent) >= len(f.parent) {
		return fmt.Errorf("%w: parent %d, have %d nodes", ErrNodeOutOfRange, parent, len(f.parent))
	}
	f.SetNoChecks(node, parent, label)
	return nil
}

// SetNoChecks is Set without argument validation.
func (f *Forest) SetNoChecks(node, parent Node, label Label) {
	f.parent[node] = parent
	f.label[node] = label
}

// Parent returns the parent of node, or Undefined when node is a root.
func (f *Forest) Parent(node Node) Node { return f.parent[node] }

// Label returns the label of the edge from the parent of node, or
// UndefinedLabel when node is a root.
func (f *Forest) Label(node Node) Label { return f.label[node] }

// PathToRoot appends to w the labels on the path from node to its root,
// in the order they are traversed (i.e. the reverse of the word spelling
// the node), and returns the result.
func (f *Forest) PathToRoot(w Word, node Node) Word {
	for f.parent[node] != Undefined {
		w = append(w, f.label[node])
		node = f.parent[node]
	}
	return w
}

// PathFromRoot returns the labels on the path from the root of node down
// to node: the canonical word of the node.
func (f *Forest) PathFromRoot(node Node) Word {
	w := f.PathToRoot(nil, node)
	for i, j := 0, len(w)-1; i < j; i, j = i+1, j-1 {
		w[i], w[j] = w[j], w[i]
	}
	return w
}
