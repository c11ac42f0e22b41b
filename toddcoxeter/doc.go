// Package toddcoxeter implements Todd-Coxeter coset enumeration for
// congruences of finitely presented semigroups and monoids.
//
// An enumeration starts from a presentation (package presentation) and
// a set of generating pairs, and computes the classes of the left,
// right, or two-sided congruence the pairs generate, as the nodes of a
// complete deterministic word graph. Queries such as NumberOfClasses,
// IndexOf, and Contains run the enumeration on demand; the Current*
// variants inspect the partial state without running it.
//
// Strategies:
//
//	– StrategyHLT    trace every relation at every class, look ahead
//	                 periodically to find missed merges (the default).
//	– StrategyFelsch define one edge at a time and chase every
//	                 consequence immediately.
//	– StrategyCR, StrategyROverC, StrategyCr, StrategyRc
//	                 mix bursts of the two.
//
// The enumeration may not terminate when the congruence has infinitely
// many classes; RunFor, RunContext, and RunUntil bound a run by time,
// context, or predicate, and the queries then report what is known so
// far.
//
// Example usage:
//
//	p := presentation.New(2)
//	p.AddRule(wordgraph.Word{0, 0, 0}, wordgraph.Word{0})
//	p.AddRule(wordgraph.Word{1, 1, 1, 1}, wordgraph.Word{1})
//	p.AddRule(wordgraph.Word{0, 1, 0, 1}, wordgraph.Word{0, 0})
//
//	tc, err := toddcoxeter.New(toddcoxeter.TwoSidedCongruence, p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(tc.NumberOfClasses()) // 27
package toddcoxeter
