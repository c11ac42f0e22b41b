// Package cosets is an in-memory toolkit for computing with finitely
// presented semigroups and monoids — from word graph primitives to full
// Todd–Coxeter coset enumeration.
//
// 🚀 What is cosets?
//
//	A pure-Go library that brings together:
//		• Word graphs: partial deterministic automata over an integer alphabet
//		• Helpers: path following, completeness, compatibility, acyclicity, toposort
//		• Standardization: shortlex, lex and recursive canonical numbering
//		• Joins & meets: Hopcroft–Karp joins and product-automaton meets
//		• Source tracking: word graphs with preimage lists and node merging
//		• Presentations: validated rewriting systems over 0-based alphabets
//		• Enumeration: HLT, Felsch and hybrid Todd–Coxeter strategies
//		• Queries: class counts, word-to-index, index-to-word, normal forms
//
// ✨ Why choose cosets?
//
//   - Deterministic – identical input settings always produce identical graphs
//   - Interruptible – time limits, contexts and predicates stop long runs
//   - Pure Go core – the engine itself has no cgo and no service deps
//   - Inspectable – the enumeration graph, forest and node list are all exposed
//
// Under the hood, everything is organized in five subpackages plus a CLI:
//
//	wordgraph/    — Graph, Forest, helpers, standardization, Joiner/Meeter
//	sources/      — Graph with intrusive preimage lists and MergeNodes
//	presentation/ — Presentation type, validation, reversal
//	felsch/       — node-managed enumeration graph: definitions, coincidences
//	toddcoxeter/  — the ToddCoxeter engine: strategies, lookahead, queries
//	cmd/coxeter   — enumerate presentations described in TOML files
//
// Quick example — the semigroup ⟨a, b | a³ = a, a = b²⟩ has 5 elements:
//
//	p := presentation.New(2)
//	p.AddRule(wordgraph.Word{0, 0, 0}, wordgraph.Word{0})
//	p.AddRule(wordgraph.Word{0}, wordgraph.Word{1, 1})
//	tc, _ := toddcoxeter.New(toddcoxeter.TwoSidedCongruence, p)
//	fmt.Println(tc.NumberOfClasses()) // 5
//
// Dive into each package's doc.go for the full API, complexity notes and
// worked examples.
//
//	go get github.com/katalvlaran/cosets
package cosets
