// Package felsch implements the mutable word graph at the heart of a
// coset enumeration.
//
// The graph couples three pieces of state that must stay consistent
// while relations are traced and nodes are identified:
//
//   - the edge table with intrusive source lists (package sources),
//     so that every edge into a node can be redirected when the node is
//     merged into another;
//   - a NodeManager, a doubly linked list splitting the nodes into an
//     active part and a free part, with forwarding addresses recording
//     what each freed node was identified with;
//   - a stack of pending coincidences (pairs of nodes known to be
//     equal) and a stack of pending definitions (edges whose
//     consequences under the relations have not yet been traced).
//
// The enumeration strategies in package toddcoxeter drive the graph
// through PushDefinitionHLT, ProcessDefinitions, ProcessCoincidences,
// and the two lookahead sweeps.
package felsch
