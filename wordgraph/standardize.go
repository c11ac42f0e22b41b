package wordgraph

import "fmt"

// Permutable is the subset of word graph behaviour needed by
// Standardize. Both *Graph and graph types layered on top of it (such as
// graphs that maintain source lists) satisfy it.
type Permutable interface {
	NumberOfNodes() int
	OutDegree() int
	TargetNoChecks(Node, Label) Node
	// PermuteNodes relabels the first n nodes by q (old to new), where p
	// is the inverse permutation (new to old).
	PermuteNodes(p, q []Node, n int)
}

// Standardize renumbers the nodes of g reachable from node 0 into the
// canonical numbering induced by o, filling f with the spanning tree of
// the reachable portion rooted at 0. Any previous contents of f are
// discarded. It reports whether the numbering of g changed.
//
// In the canonical numbering, node k is the k-th node discovered when
// the words labelling paths from node 0 are traversed in increasing
// o-order.
func Standardize(g Permutable, f *Forest, o Order) (bool, error) {
	if !f.Empty() {
		f.Clear()
	}
	if g.NumberOfNodes() == 0 {
		return false, nil
	}
	switch o {
	case NoOrder:
		return false, nil
	case ShortLex:
		return shortlexStandardize(g, f), nil
	case Lex:
		return lexStandardize(g, f), nil
	case Recursive:
		return recursiveStandardize(g, f), nil
	default:
		return false, fmt.Errorf("wordgraph: unknown order %d", o)
	}
}

// identityPerms returns the pair of mutually inverse identity
// permutations on the nodes of g.
func identityPerms(g Permutable) (p, q []Node) {
	p = make([]Node, g.NumberOfNodes())
	for i := range p {
		p[i] = Node(i)
	}
	q = make([]Node, len(p))
	copy(q, p)
	return p, q
}

// swapToFront moves the node r (in new numbering) to position t by
// transposing p and q, extends f, and records the tree edge (s, x, t).
// It reports whether anything was discovered, via the caller.
func swapToFront(f *Forest, p, q []Node, s Node, t *Node, r Node, x Label, changed *bool) {
	*t++
	f.AddNodes(1)
	if r > *t {
		p[*t], p[r] = p[r], p[*t]
		q[p[*t]], q[p[r]] = q[p[r]], q[p[*t]]
		*changed = true
	}
	if s == *t {
		f.SetNoChecks(*t, r, x)
	} else {
		f.SetNoChecks(*t, s, x)
	}
}

// shortlexStandardize performs a breadth-first renumbering: the frontier
// is scanned in order, each node's edges in label order.
func shortlexStandardize(g Permutable, f *Forest) bool {
	f.AddNodes(1)
	t := Node(0)
	n := g.OutDegree()
	changed := false
	p, q := identityPerms(g)

	for s := Node(0); s <= t; s++ {
		for x := 0; x < n; x++ {
			r := g.TargetNoChecks(p[s], Label(x))
			if r == Undefined {
				continue
			}
			r = q[r]
			if r > t {
				swapToFront(f, p, q, s, &t, r, Label(x), &changed)
			}
		}
	}
	g.PermuteNodes(p, q, g.NumberOfNodes())
	return changed
}

// lexStandardize performs a depth-first renumbering: edges labelled by
// smaller letters are exhausted before larger ones, backtracking through
// the forest.
func lexStandardize(g Permutable, f *Forest) bool {
	f.AddNodes(1)
	var s, t Node
	x := Label(0)
	n := g.OutDegree()
	changed := false
	p, q := identityPerms(g)

	for s <= t {
		r := g.TargetNoChecks(p[s], x)
		if r != Undefined {
			r = q[r]
			if r > t {
				swapToFront(f, p, q, s, &t, r, x, &changed)
				s = t
				x = 0
				continue
			}
		}
		x++
		if int(x) == n {
			// backtrack along the tree edge into s
			x = f.Label(s)
			s = f.Parent(s)
		}
	}
	g.PermuteNodes(p, q, g.NumberOfNodes())
	return changed
}

// followPermutable is FollowPathNoChecks over the Permutable interface.
func followPermutable(g Permutable, from Node, word Word) Node {
	to := from
	for _, l := range word {
		if to == Undefined {
			return Undefined
		}
		to = g.TargetNoChecks(to, l)
	}
	return to
}

// reachableCount returns the number of nodes reachable from node 0.
func reachableCount(g Permutable) int {
	seen := make([]bool, g.NumberOfNodes())
	seen[0] = true
	count := 1
	stack := []Node{0}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for x := 0; x < g.OutDegree(); x++ {
			if w := g.TargetNoChecks(v, Label(x)); w != Undefined && !seen[w] {
				seen[w] = true
				count++
				stack = append(stack, w)
			}
		}
	}
	return count
}

// recursiveStandardize renumbers with respect to the recursive path
// order: all words over the first letter come first, then words whose
// maximal letter is the second letter, and so on, interleaving the
// previously numbered words around each new letter.
func recursiveStandardize(g Permutable, f *Forest) bool {
	f.AddNodes(1)

	var words []Word
	n := g.OutDegree()
	a := Label(0)
	var s, t Node

	p, q := identityPerms(g)
	maxT := Node(reachableCount(g) - 1)

	changed := false
	swapIfNecessary := func(s Node, x Label) bool {
		r := g.TargetNoChecks(p[s], x)
		if r == Undefined {
			return false
		}
		r = q[r]
		if r <= t {
			return false
		}
		swapToFront(f, p, q, s, &t, r, x, &changed)
		changed = true
		return true
	}

	// the chain of nodes under the first letter
	for s <= t {
		if swapIfNecessary(s, 0) {
			w := make(Word, t)
			words = append(words, w)
		}
		s++
	}
	a++
	newGenerator := true
	var x, u, w int
	for int(a) < n && t < maxT {
		if newGenerator {
			w = -1 // -1 stands for the empty word
			if swapIfNecessary(0, a) {
				words = append(words, Word{a})
			}
			x = len(words) - 1
			u = len(words) - 1
			newGenerator = false
		}

		uu := followPermutable(g, 0, words[u])
		if uu != Undefined {
			for v := 0; v < x; v++ {
				uuv := followPermutable(g, uu, words[v][:len(words[v])-1])
				if uuv != Undefined {
					s = q[uuv]
					if swapIfNecessary(s, words[v][len(words[v])-1]) {
						nxt := make(Word, 0, len(words[u])+len(words[v]))
						nxt = append(nxt, words[u]...)
						nxt = append(nxt, words[v]...)
						words = append(words, nxt)
					}
				}
			}
		}
		w++
		if w < len(words) {
			ww := followPermutable(g, 0, words[w])
			if ww != Undefined {
				s = q[ww]
				if swapIfNecessary(s, a) {
					u = len(words)
					nxt := make(Word, 0, len(words[w])+1)
					nxt = append(nxt, words[w]...)
					nxt = append(nxt, a)
					words = append(words, nxt)
				}
			}
		} else {
			a++
			newGenerator = true
		}
	}
	g.PermuteNodes(p, q, g.NumberOfNodes())
	return changed
}
