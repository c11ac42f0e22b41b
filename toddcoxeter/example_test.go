package toddcoxeter_test

import (
	"fmt"

	"github.com/katalvlaran/cosets/presentation"
	"github.com/katalvlaran/cosets/toddcoxeter"
	"github.com/katalvlaran/cosets/wordgraph"
)

// ExampleToddCoxeter enumerates the two-sided congruence classes of the
// semigroup with presentation <a, b | aaa = a, a = bb> and prints one
// canonical word per class.
func ExampleToddCoxeter() {
	p := presentation.New(2)
	p.AddRule(wordgraph.Word{0, 0, 0}, wordgraph.Word{0})
	p.AddRule(wordgraph.Word{0}, wordgraph.Word{1, 1})

	tc, err := toddcoxeter.New(toddcoxeter.TwoSidedCongruence, p)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(tc.NumberOfClasses())

	forms, err := tc.NormalForms(wordgraph.ShortLex)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, w := range forms {
		fmt.Println(w)
	}

	// Output:
	// 5
	// [0]
	// [1]
	// [0 0]
	// [0 1]
	// [0 0 1]
}

// ExampleToddCoxeter_generatingPairs enumerates a right congruence of
// the monogenic semigroup <a | a^5 = a^3> generated by identifying a
// with a^3.
func ExampleToddCoxeter_generatingPairs() {
	p := presentation.New(1)
	p.AddRule(wordgraph.Word{0, 0, 0, 0, 0}, wordgraph.Word{0, 0, 0})

	tc, err := toddcoxeter.New(toddcoxeter.RightCongruence, p)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := tc.AddGeneratingPair(wordgraph.Word{0}, wordgraph.Word{0, 0, 0}); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(tc.NumberOfClasses())
	eq, err := tc.Contains(wordgraph.Word{0}, wordgraph.Word{0, 0, 0, 0, 0})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(eq)

	// Output:
	// 2
	// true
}
