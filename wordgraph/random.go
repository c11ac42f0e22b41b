package wordgraph

import (
	"fmt"
	"math/rand"
)

// Random returns a word graph with numNodes nodes, out-degree outDegree,
// and exactly numEdges defined edges with uniformly random sources,
// labels, and targets.
func Random(numNodes, outDegree, numEdges int, rng *rand.Rand) (*Graph, error) {
	if numNodes < 1 {
		return nil, fmt.Errorf("%w: need at least 1 node, got %d", ErrBadParameters, numNodes)
	}
	if outDegree < 1 {
		return nil, fmt.Errorf("%w: need out-degree at least 1, got %d", ErrBadParameters, outDegree)
	}
	if numEdges > numNodes*outDegree {
		return nil, fmt.Errorf("%w: at most %d edges possible, got %d",
			ErrBadParameters, numNodes*outDegree, numEdges)
	}
	g := New(numNodes, outDegree)
	toAdd := numEdges
	oldEdges := 0
	for toAdd != 0 {
		for i := 0; i < toAdd; i++ {
			g.SetTargetNoChecks(
				Node(rng.Intn(numNodes)),
				Label(rng.Intn(outDegree)),
				Node(rng.Intn(numNodes)),
			)
		}
		newEdges := g.NumberOfEdges()
		toAdd -= newEdges - oldEdges
		oldEdges = newEdges
	}
	return g, nil
}

// RandomAcyclic returns a random acyclic word graph with numNodes nodes,
// out-degree outDegree, and exactly numEdges defined edges. Every edge
// points from a lower-numbered node to a higher-numbered one, so the
// result is acyclic by construction.
func RandomAcyclic(numNodes, outDegree, numEdges int, rng *rand.Rand) (*Graph, error) {
	if numNodes < 2 {
		return nil, fmt.Errorf("%w: need at least 2 nodes, got %d", ErrBadParameters, numNodes)
	}
	if outDegree < 2 {
		return nil, fmt.Errorf("%w: need out-degree at least 2, got %d", ErrBadParameters, outDegree)
	}
	maxEdges := numNodes * outDegree
	if alt := numNodes * (numNodes - 1) / 2; alt < maxEdges {
		maxEdges = alt
	}
	if numEdges > maxEdges {
		return nil, fmt.Errorf("%w: at most %d edges possible, got %d",
			ErrBadParameters, maxEdges, numEdges)
	}
	g := New(numNodes, outDegree)
	toAdd := numEdges
	oldEdges := 0
	for toAdd != 0 {
		for i := 0; i < toAdd; i++ {
			v := rng.Intn(numNodes)
			if v != numNodes-1 {
				g.SetTargetNoChecks(
					Node(v),
					Label(rng.Intn(outDegree)),
					Node(v+1+rng.Intn(numNodes-v-1)),
				)
			}
		}
		newEdges := g.NumberOfEdges()
		toAdd -= newEdges - oldEdges
		oldEdges = newEdges
	}
	return g, nil
}
