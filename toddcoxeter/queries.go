package toddcoxeter

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/cosets/felsch"
	"github.com/katalvlaran/cosets/wordgraph"
)

// UndefinedIndex is returned by the Current* queries when a word's
// class cannot be determined from the enumeration so far.
const UndefinedIndex = ^uint64(0)

// ensureStarted builds the enumeration graph without running any
// strategy, so that the Current* queries have something to look at.
func (tc *ToddCoxeter) ensureStarted() {
	if !tc.started {
		tc.initRun()
		tc.started = true
	}
}

// offset is 1 when class 0 stands for the empty word of a semigroup
// presentation and therefore is not itself a class.
func (tc *ToddCoxeter) offset() uint64 {
	if tc.input.ContainsEmptyWord {
		return 0
	}
	return 1
}

// NumberOfClasses runs the enumeration to completion and returns the
// number of congruence classes. It may not terminate when the
// congruence has infinitely many classes.
func (tc *ToddCoxeter) NumberOfClasses() uint64 {
	tc.Run()
	return tc.graph.NumberOfNodesActive() - tc.offset()
}

// CurrentIndexOf returns the index of the class of w as determined so
// far, or UndefinedIndex when w is invalid or its class is not yet
// known. Indices returned before the enumeration finishes may still
// change as classes merge.
func (tc *ToddCoxeter) CurrentIndexOf(w wordgraph.Word) uint64 {
	if err := tc.input.ValidateWord(w); err != nil {
		return UndefinedIndex
	}
	tc.ensureStarted()
	n := tc.graph.FollowPathNoChecks(tc.graph.InitialNode(), tc.prepare(w))
	if n == wordgraph.Undefined {
		return UndefinedIndex
	}
	pos := tc.graph.PositionOfNode(n)
	if pos < 0 {
		return UndefinedIndex
	}
	return uint64(pos) - tc.offset()
}

// IndexOf runs the enumeration to completion and returns the index of
// the class of w under the shortlex numbering of classes.
func (tc *ToddCoxeter) IndexOf(w wordgraph.Word) (uint64, error) {
	if err := tc.input.ValidateWord(w); err != nil {
		return UndefinedIndex, err
	}
	tc.Run()
	if _, err := tc.Standardize(wordgraph.ShortLex); err != nil {
		return UndefinedIndex, err
	}
	n := tc.graph.FollowPathNoChecks(tc.graph.InitialNode(), tc.prepare(w))
	return uint64(n) - tc.offset(), nil
}

// CurrentWordOf returns the canonical word of the class with the given
// index under the current standardization. The graph must have been
// standardized since the last run.
func (tc *ToddCoxeter) CurrentWordOf(index uint64) (wordgraph.Word, error) {
	if tc.standardized == wordgraph.NoOrder {
		return nil, ErrNotStandardized
	}
	n := index + tc.offset()
	if n >= tc.graph.NumberOfNodesActive() {
		return nil, fmt.Errorf("%w: index %d, have %d classes",
			ErrIndexOutOfRange, index, tc.graph.NumberOfNodesActive()-tc.offset())
	}
	return tc.prepare(tc.forest.PathFromRoot(wordgraph.Node(n))), nil
}

// WordOf runs the enumeration to completion and returns the shortlex
// normal form of the class with the given index.
func (tc *ToddCoxeter) WordOf(index uint64) (wordgraph.Word, error) {
	tc.Run()
	if _, err := tc.Standardize(wordgraph.ShortLex); err != nil {
		return nil, err
	}
	return tc.CurrentWordOf(index)
}

// CurrentContains reports whether u and v are already known to lie in
// the same class. False means not yet known, not necessarily distinct.
func (tc *ToddCoxeter) CurrentContains(u, v wordgraph.Word) bool {
	iu := tc.CurrentIndexOf(u)
	iv := tc.CurrentIndexOf(v)
	return iu != UndefinedIndex && iu == iv
}

// Contains runs the enumeration to completion and reports whether u and
// v lie in the same congruence class.
func (tc *ToddCoxeter) Contains(u, v wordgraph.Word) (bool, error) {
	if err := tc.input.ValidateWord(u); err != nil {
		return false, err
	}
	if err := tc.input.ValidateWord(v); err != nil {
		return false, err
	}
	// literally equal words need no enumeration
	if slices.Equal(u, v) {
		return true, nil
	}
	iu, err := tc.IndexOf(u)
	if err != nil {
		return false, err
	}
	iv, err := tc.IndexOf(v)
	if err != nil {
		return false, err
	}
	return iu == iv, nil
}

// NormalForms runs the enumeration to completion and returns the
// canonical word of every class, ordered by class index under o.
func (tc *ToddCoxeter) NormalForms(o wordgraph.Order) ([]wordgraph.Word, error) {
	tc.Run()
	if _, err := tc.Standardize(o); err != nil {
		return nil, err
	}
	n := tc.graph.NumberOfNodesActive() - tc.offset()
	forms := make([]wordgraph.Word, 0, n)
	for i := uint64(0); i < n; i++ {
		w, err := tc.CurrentWordOf(i)
		if err != nil {
			return nil, err
		}
		forms = append(forms, w)
	}
	return forms, nil
}

// Complete reports whether every active node of the enumeration graph
// currently has a target for every letter. A finished enumeration is
// always complete.
func (tc *ToddCoxeter) Complete() bool {
	tc.ensureStarted()
	g := tc.graph
	for c := g.InitialNode(); g.IsActiveNode(c); c = g.NextActiveNode(c) {
		for x := 0; x < g.OutDegree(); x++ {
			if g.TargetNoChecks(c, wordgraph.Label(x)) == wordgraph.Undefined {
				return false
			}
		}
	}
	return true
}

// Compatible reports whether every relation currently holds at every
// active node of the enumeration graph. Paths that are not yet defined
// do not count as violations. A finished enumeration is always
// compatible.
func (tc *ToddCoxeter) Compatible() bool {
	tc.ensureStarted()
	g := tc.graph
	rules := g.Presentation().Rules
	for c := g.InitialNode(); g.IsActiveNode(c); c = g.NextActiveNode(c) {
		for i := 0; i+1 < len(rules); i += 2 {
			u := g.FollowPathNoChecks(c, rules[i])
			v := g.FollowPathNoChecks(c, rules[i+1])
			if u != wordgraph.Undefined && v != wordgraph.Undefined && u != v {
				return false
			}
		}
	}
	return true
}

// Standardize renumbers the classes into the canonical numbering of o
// and fills the spanning tree, reporting whether the numbering changed.
// Standardizing does not run the enumeration.
func (tc *ToddCoxeter) Standardize(o wordgraph.Order) (bool, error) {
	tc.ensureStarted()
	if o == wordgraph.NoOrder || tc.standardized == o {
		return false, nil
	}
	changed, err := wordgraph.Standardize(tc.graph, tc.forest, o)
	if err != nil {
		return false, err
	}
	tc.standardized = o
	return changed, nil
}

// IsStandardized reports whether the classes currently carry the
// canonical numbering of o.
func (tc *ToddCoxeter) IsStandardized(o wordgraph.Order) bool {
	return tc.standardized == o && o != wordgraph.NoOrder
}

// ShrinkToFit discards the bookkeeping for merged-away classes. It does
// nothing until the enumeration has finished.
func (tc *ToddCoxeter) ShrinkToFit() {
	if !tc.finished {
		return
	}
	tc.Standardize(wordgraph.ShortLex) //nolint:errcheck // shortlex cannot fail
	tc.graph.CompactToActive()
}

// CurrentWordGraph returns the enumeration graph as it stands. The
// caller must not mutate it.
func (tc *ToddCoxeter) CurrentWordGraph() *felsch.Graph {
	tc.ensureStarted()
	return tc.graph
}

// WordGraph runs the enumeration to completion and returns the
// shortlex-standardized graph.
func (tc *ToddCoxeter) WordGraph() (*felsch.Graph, error) {
	tc.Run()
	if _, err := tc.Standardize(wordgraph.ShortLex); err != nil {
		return nil, err
	}
	return tc.graph, nil
}

// CurrentSpanningTree returns the spanning tree filled by the last
// standardization; it is empty before the first standardization.
func (tc *ToddCoxeter) CurrentSpanningTree() *wordgraph.Forest {
	tc.ensureStarted()
	return tc.forest
}

// SpanningTree runs the enumeration to completion and returns the
// shortlex spanning tree of the classes.
func (tc *ToddCoxeter) SpanningTree() (*wordgraph.Forest, error) {
	tc.Run()
	if _, err := tc.Standardize(wordgraph.ShortLex); err != nil {
		return nil, err
	}
	return tc.forest, nil
}
