// Package sources implements word graphs that additionally track, for
// every node and label, the list of nodes with an edge into that node
// under that label.
//
// The source lists make it possible to redirect every edge into a node
// in time proportional to the number of such edges, which is what node
// merging during coset enumeration needs. They are stored intrusively:
// first[c][x] is the head of the list of sources of c under x, and
// next[d][x] is the successor of d in the list of sources of the node
// target(d, x).
//
// The package does not track which nodes are "valid" (have correct
// source lists); callers such as the enumeration engine manage validity
// themselves and use RebuildSources after bulk edits.
package sources
