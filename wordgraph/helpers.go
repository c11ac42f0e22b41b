package wordgraph

import "fmt"

// FollowPath returns the last node on the path starting at from and
// labelled by word, or Undefined if the path leaves the defined part of
// the graph. It validates from and every letter of word.
func (g *Graph) FollowPath(from Node, word Word) (Node, error) {
	if err := g.validateNode(from); err != nil {
		return Undefined, fmt.Errorf("%w: node %d, have %d nodes", err, from, g.numNodes)
	}
	for _, l := range word {
		if err := g.validateLabel(l); err != nil {
			return Undefined, fmt.Errorf("%w: letter %d, out-degree %d", err, l, g.outDegree)
		}
	}
	return g.FollowPathNoChecks(from, word), nil
}

// FollowPathNoChecks is FollowPath without argument validation.
func (g *Graph) FollowPathNoChecks(from Node, word Word) Node {
	to := from
	for _, l := range word {
		if to == Undefined {
			return Undefined
		}
		to = g.TargetNoChecks(to, l)
	}
	return to
}

// LastNodeOnPath follows word from the node from as far as the defined
// edges allow, returning the last defined node reached and the number of
// letters consumed.
func (g *Graph) LastNodeOnPath(from Node, word Word) (Node, int) {
	prev, to := from, from
	for i, l := range word {
		prev = to
		to = g.TargetNoChecks(to, l)
		if to == Undefined {
			return prev, i
		}
	}
	return to, len(word)
}

// IsComplete reports whether every edge of every node in [0, n) is
// defined, where n is the number of nodes of g.
func IsComplete(g *Graph) bool {
	return IsCompleteRange(g, 0, Node(g.numNodes))
}

// IsCompleteRange reports whether every edge of every node in
// [first, last) is defined.
func IsCompleteRange(g *Graph, first, last Node) bool {
	for n := first; n < last; n++ {
		for x := 0; x < g.outDegree; x++ {
			if g.TargetNoChecks(n, Label(x)) == Undefined {
				return false
			}
		}
	}
	return true
}

// IsCompatible reports whether, for every node in [first, last) and every
// rule (u, v) in rules, the paths labelled u and v lead to the same node
// whenever both are defined. rules must have even length; rules[2i] and
// rules[2i+1] form a rule.
func IsCompatible(g *Graph, first, last Node, rules []Word) bool {
	for n := first; n < last; n++ {
		for i := 0; i+1 < len(rules); i += 2 {
			l := g.FollowPathNoChecks(n, rules[i])
			if l == Undefined {
				continue
			}
			r := g.FollowPathNoChecks(n, rules[i+1])
			if r == Undefined {
				continue
			}
			if l != r {
				return false
			}
		}
	}
	return true
}

// isAcyclicVisit runs the shared preorder/postorder cycle check from the
// nodes on the stack. Nodes numbered >= N on the stack are markers
// recording that the out-neighbours of node-N have all been pushed.
func isAcyclicVisit(g *Graph, stack []Node, pre, post []Node, nextPre, nextPost *Node) bool {
	N := Node(g.numNodes)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v >= N {
			post[v-N] = *nextPost
			*nextPost++
			continue
		}
		if pre[v] < *nextPre && post[v] == N {
			// v is an ancestor of a node later in the search
			return false
		}
		if pre[v] == N {
			pre[v] = *nextPre
			*nextPre++
			stack = append(stack, N+v)
			for x := 0; x < g.outDegree; x++ {
				if w := g.TargetNoChecks(v, Label(x)); w != Undefined {
					stack = append(stack, w)
				}
			}
		}
	}
	return true
}

// IsAcyclic reports whether g has no nontrivial directed cycle.
func IsAcyclic(g *Graph) bool {
	if IsComplete(g) && g.numNodes > 0 && g.outDegree > 0 {
		// a complete graph with at least one node and letter has a cycle
		return false
	}
	N := Node(g.numNodes)
	pre := make([]Node, g.numNodes)
	post := make([]Node, g.numNodes)
	for i := range pre {
		pre[i] = N
		post[i] = N
	}
	var nextPre, nextPost Node
	for m := Node(0); m < N; m++ {
		if pre[m] == N {
			if !isAcyclicVisit(g, []Node{m}, pre, post, &nextPre, &nextPost) {
				return false
			}
		}
	}
	return true
}

// IsAcyclicFrom reports whether the subgraph induced by the nodes
// reachable from source is acyclic.
func IsAcyclicFrom(g *Graph, source Node) (bool, error) {
	if err := g.validateNode(source); err != nil {
		return false, fmt.Errorf("%w: source %d, have %d nodes", err, source, g.numNodes)
	}
	N := Node(g.numNodes)
	pre := make([]Node, g.numNodes)
	post := make([]Node, g.numNodes)
	for i := range pre {
		pre[i] = N
		post[i] = N
	}
	var nextPre, nextPost Node
	return isAcyclicVisit(g, []Node{source}, pre, post, &nextPre, &nextPost), nil
}

// IsAcyclicBetween reports whether every path from source to target is
// free of nontrivial cycles. Nodes that cannot reach target are ignored.
func IsAcyclicBetween(g *Graph, source, target Node) (bool, error) {
	if err := g.validateNode(source); err != nil {
		return false, fmt.Errorf("%w: source %d, have %d nodes", err, source, g.numNodes)
	}
	if err := g.validateNode(target); err != nil {
		return false, fmt.Errorf("%w: target %d, have %d nodes", err, target, g.numNodes)
	}
	reachable, err := IsReachable(g, source, target)
	if err != nil {
		return false, err
	}
	if !reachable {
		return true, nil
	}
	N := Node(g.numNodes)
	pre := make([]Node, g.numNodes)
	post := make([]Node, g.numNodes)
	for i := range pre {
		pre[i] = N
		post[i] = N
	}
	// exclude nodes that cannot reach target from the search
	for m := Node(0); m < N; m++ {
		ok, _ := IsReachable(g, m, target)
		if !ok {
			pre[m] = N + 1
		}
	}
	var nextPre, nextPost Node
	return isAcyclicVisit(g, []Node{source}, pre, post, &nextPre, &nextPost), nil
}

// topoFrame is one level of the iterative depth-first search used by
// TopologicalSort.
type topoFrame struct {
	node Node
	edge Label
}

const (
	topoUnseen uint8 = iota
	topoDone
	topoActive
)

// topoVisit explores from the frames on the stack, appending finished
// nodes to order in post-order. It reports false when a cycle is found.
func topoVisit(g *Graph, stack []topoFrame, seen []uint8, order []Node) ([]Node, bool) {
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if seen[top.node] != topoActive {
			seen[top.node] = topoActive
			top.edge = 0
		}
		dived := false
		for int(top.edge) < g.outDegree {
			n, e := g.NextTarget(top.node, top.edge)
			if n == Undefined {
				break
			}
			top.edge = e
			switch seen[n] {
			case topoUnseen:
				// never saw this node before, so dive
				top.edge++
				stack = append(stack, topoFrame{node: n})
				dived = true
			case topoDone:
				// all descendants of n already explored, try the next edge
				top.edge++
				continue
			default:
				// n is both an ancestor and a descendant: a cycle
				return nil, false
			}
			break
		}
		if dived {
			continue
		}
		seen[top.node] = topoDone
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}
	return order, true
}

// TopologicalSort returns the nodes of g ordered so that the target of
// every edge precedes its source, or ErrCycleDetected when no such order
// exists.
func TopologicalSort(g *Graph) ([]Node, error) {
	if IsComplete(g) && g.numNodes > 0 && g.outDegree > 0 {
		return nil, ErrCycleDetected
	}
	seen := make([]uint8, g.numNodes)
	order := make([]Node, 0, g.numNodes)
	var ok bool
	for m := Node(0); int(m) < g.numNodes; m++ {
		if seen[m] == topoUnseen {
			order, ok = topoVisit(g, []topoFrame{{node: m}}, seen, order)
			if !ok {
				return nil, ErrCycleDetected
			}
		}
	}
	return order, nil
}

// TopologicalSortFrom is TopologicalSort restricted to the nodes
// reachable from source; the last node of the result is source.
func TopologicalSortFrom(g *Graph, source Node) ([]Node, error) {
	if err := g.validateNode(source); err != nil {
		return nil, fmt.Errorf("%w: source %d, have %d nodes", err, source, g.numNodes)
	}
	seen := make([]uint8, g.numNodes)
	order, ok := topoVisit(g, []topoFrame{{node: source}}, seen, nil)
	if !ok {
		return nil, ErrCycleDetected
	}
	return order, nil
}

// IsReachable reports whether there is a path (possibly empty) from
// source to target.
func IsReachable(g *Graph, source, target Node) (bool, error) {
	if err := g.validateNode(source); err != nil {
		return false, fmt.Errorf("%w: source %d, have %d nodes", err, source, g.numNodes)
	}
	if err := g.validateNode(target); err != nil {
		return false, fmt.Errorf("%w: target %d, have %d nodes", err, target, g.numNodes)
	}
	if source == target {
		return true, nil
	}
	seen := make([]bool, g.numNodes)
	seen[source] = true
	stack := []Node{source}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for x := 0; x < g.outDegree; x++ {
			w := g.TargetNoChecks(v, Label(x))
			if w == Undefined {
				continue
			}
			if w == target {
				return true, nil
			}
			if !seen[w] {
				seen[w] = true
				stack = append(stack, w)
			}
		}
	}
	return false, nil
}

// NodesReachableFrom returns the set of nodes reachable from source,
// including source itself, in discovery order.
func NodesReachableFrom(g *Graph, source Node) ([]Node, error) {
	if err := g.validateNode(source); err != nil {
		return nil, fmt.Errorf("%w: source %d, have %d nodes", err, source, g.numNodes)
	}
	seen := make([]bool, g.numNodes)
	seen[source] = true
	result := []Node{source}
	stack := []Node{source}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for x := 0; x < g.outDegree; x++ {
			w := g.TargetNoChecks(v, Label(x))
			if w != Undefined && !seen[w] {
				seen[w] = true
				result = append(result, w)
				stack = append(stack, w)
			}
		}
	}
	return result, nil
}

// NumberOfNodesReachableFrom returns the size of the set computed by
// NodesReachableFrom.
func NumberOfNodesReachableFrom(g *Graph, source Node) (int, error) {
	nodes, err := NodesReachableFrom(g, source)
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// AncestorsOf returns the set of nodes from which target is reachable,
// including target itself.
func AncestorsOf(g *Graph, target Node) ([]Node, error) {
	if err := g.validateNode(target); err != nil {
		return nil, fmt.Errorf("%w: target %d, have %d nodes", err, target, g.numNodes)
	}
	// reverse adjacency, then forward search from target
	reverse := make([][]Node, g.numNodes)
	for n := Node(0); int(n) < g.numNodes; n++ {
		for x := 0; x < g.outDegree; x++ {
			if w := g.TargetNoChecks(n, Label(x)); w != Undefined {
				reverse[w] = append(reverse[w], n)
			}
		}
	}
	seen := make([]bool, g.numNodes)
	seen[target] = true
	result := []Node{target}
	stack := []Node{target}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, w := range reverse[v] {
			if !seen[w] {
				seen[w] = true
				result = append(result, w)
				stack = append(stack, w)
			}
		}
	}
	return result, nil
}

// IsConnected reports whether the underlying undirected graph of g is
// connected. The empty graph is connected.
func IsConnected(g *Graph) bool {
	if g.numNodes == 0 {
		return true
	}
	uf := newUnionFind(g.numNodes)
	for n := Node(0); int(n) < g.numNodes; n++ {
		for x := 0; x < g.outDegree; x++ {
			if w := g.TargetNoChecks(n, Label(x)); w != Undefined {
				uf.unite(uint32(n), uint32(w))
			}
		}
	}
	return uf.numberOfBlocks() == 1
}

// AddCycle appends n new nodes to g joined in a directed cycle by edges
// labelled 0.
func AddCycle(g *Graph, n int) {
	first := Node(g.numNodes)
	g.AddNodes(n)
	for i := 0; i < n-1; i++ {
		g.SetTargetNoChecks(first+Node(i), 0, first+Node(i)+1)
	}
	g.SetTargetNoChecks(first+Node(n-1), 0, first)
}
