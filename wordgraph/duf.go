package wordgraph

// unionFind is a disjoint-set forest with rank by size and path halving,
// over the elements [0, n).
type unionFind struct {
	parent []uint32
	rank   []uint32
	blocks int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]uint32, n),
		rank:   make([]uint32, n),
		blocks: n,
	}
	for i := range uf.parent {
		uf.parent[i] = uint32(i)
	}
	return uf
}

// find returns the representative of x, halving the path as it goes.
func (uf *unionFind) find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// unite merges the blocks of x and y and reports whether they were
// distinct.
func (uf *unionFind) unite(x, y uint32) bool {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	uf.blocks--
	return true
}

func (uf *unionFind) numberOfBlocks() int { return uf.blocks }

// normalize renumbers the blocks so that representatives are the least
// elements of their blocks, then returns a dense renumbering of the
// representatives in increasing order of first occurrence.
func (uf *unionFind) normalize() []uint32 {
	lookup := make([]uint32, len(uf.parent))
	for i := range lookup {
		lookup[i] = ^uint32(0)
	}
	next := uint32(0)
	for i := range uf.parent {
		r := uf.find(uint32(i))
		if lookup[r] == ^uint32(0) {
			lookup[r] = next
			next++
		}
	}
	return lookup
}
