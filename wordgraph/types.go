package wordgraph

import (
	"errors"
	"math"
)

// Node identifies a node of a word graph.
type Node uint32

// Label identifies an edge label, i.e. a letter of the alphabet.
type Label uint32

// Word is a sequence of labels.
type Word []Label

const (
	// Undefined marks an absent node value: a missing edge target, a
	// missing source, or the parent of a root.
	Undefined = Node(math.MaxUint32)

	// UndefinedLabel marks an absent label value.
	UndefinedLabel = Label(math.MaxUint32)
)

var (
	// ErrNodeOutOfRange is returned when a node argument is not less than
	// the number of nodes in the graph.
	ErrNodeOutOfRange = errors.New("wordgraph: node out of range")

	// ErrLabelOutOfRange is returned when a label argument is not less
	// than the out-degree of the graph.
	ErrLabelOutOfRange = errors.New("wordgraph: label out of range")

	// ErrOutDegreeMismatch is returned by binary operations (join, meet)
	// when the two graphs have different out-degrees.
	ErrOutDegreeMismatch = errors.New("wordgraph: out-degree mismatch")

	// ErrCycleDetected is returned by TopologicalSort when the graph
	// contains a nontrivial directed cycle.
	ErrCycleDetected = errors.New("wordgraph: cycle detected")

	// ErrBadParameters is returned by the random generators when the
	// requested node, degree, or edge counts are inconsistent.
	ErrBadParameters = errors.New("wordgraph: bad parameters")
)

// Order is a reduction ordering on words, used to choose the
// standardization of a word graph.
type Order uint8

const (
	// NoOrder performs no standardization.
	NoOrder Order = iota
	// ShortLex orders words first by length, then lexicographically.
	ShortLex
	// Lex orders words lexicographically.
	Lex
	// Recursive is the recursive path ordering.
	Recursive
)

// String returns the name of the order.
func (o Order) String() string {
	switch o {
	case NoOrder:
		return "none"
	case ShortLex:
		return "shortlex"
	case Lex:
		return "lex"
	case Recursive:
		return "recursive"
	default:
		return "unknown"
	}
}

// validateNode reports ErrNodeOutOfRange unless n < g.NumberOfNodes().
func (g *Graph) validateNode(n Node) error {
	if int(n) >= g.numNodes {
		return ErrNodeOutOfRange
	}
	return nil
}

// validateLabel reports ErrLabelOutOfRange unless l < g.OutDegree().
func (g *Graph) validateLabel(l Label) error {
	if int(l) >= g.outDegree {
		return ErrLabelOutOfRange
	}
	return nil
}
