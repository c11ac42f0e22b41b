// Package wordgraph implements word graphs: deterministic, partially
// defined automata in which every node has the same number of outgoing
// edge slots, one per letter of a fixed alphabet.
//
// A word graph with n nodes and out-degree m stores a target node (or
// Undefined) for every pair (node, label) with node < n and label < m.
// Following a word from a node traverses one edge per letter and stops
// at the first undefined edge.
//
// Beyond the core table the package provides:
//
//   - path following (FollowPath, LastNodeOnPath)
//   - acyclicity and reachability tests, topological sorting
//   - completeness and rule-compatibility checks
//   - standardization with respect to ShortLex, Lex, or Recursive order,
//     producing the spanning forest of the reachable portion
//   - joins (Hopcroft–Karp) and meets (product construction) of the
//     congruences represented by two word graphs
//   - random (acyclic) word graph generation for tests and benchmarks
//
// All traversal algorithms are iterative and run in O(n·m) time and O(n)
// additional memory unless stated otherwise.
package wordgraph
