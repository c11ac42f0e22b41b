package wordgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cosets/wordgraph"
)

// cycle returns the single-letter cycle graph on n nodes, which
// represents the congruence a^i = a^j iff i = j (mod n).
func cycle(n int) *wordgraph.Graph {
	g := wordgraph.New(0, 1)
	wordgraph.AddCycle(g, n)
	return g
}

func TestJoiner_Join(t *testing.T) {
	j := wordgraph.NewJoiner()
	var xy wordgraph.Graph

	// join of mod 4 and mod 6 is mod gcd(4, 6) = 2
	require.NoError(t, j.Join(&xy, cycle(4), 0, cycle(6), 0))
	assert.Equal(t, 2, xy.NumberOfNodes())
	assert.Equal(t, "{{1}, {0}}", xy.String())

	// joining with itself changes nothing
	require.NoError(t, j.Join(&xy, cycle(5), 0, cycle(5), 0))
	assert.Equal(t, 5, xy.NumberOfNodes())
}

func TestJoiner_Validation(t *testing.T) {
	j := wordgraph.NewJoiner()
	var xy wordgraph.Graph

	x := wordgraph.New(2, 1)
	y := wordgraph.New(2, 2)
	assert.ErrorIs(t, j.Join(&xy, x, 0, y, 0), wordgraph.ErrOutDegreeMismatch)
	assert.ErrorIs(t, j.Join(&xy, x, 5, x, 0), wordgraph.ErrNodeOutOfRange)
	assert.ErrorIs(t, j.Join(&xy, x, 0, x, 5), wordgraph.ErrNodeOutOfRange)
}

func TestJoiner_IsSubrelation(t *testing.T) {
	j := wordgraph.NewJoiner()

	// mod 12 refines mod 4, not the other way round
	ok, err := j.IsSubrelation(cycle(12), cycle(4))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = j.IsSubrelation(cycle(4), cycle(12))
	require.NoError(t, err)
	assert.False(t, ok)

	// mod 4 and mod 6 are incomparable
	ok, err = j.IsSubrelation(cycle(4), cycle(6))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = j.IsSubrelation(wordgraph.New(2, 1), wordgraph.New(2, 2))
	assert.ErrorIs(t, err, wordgraph.ErrOutDegreeMismatch)
	_, err = j.IsSubrelation(wordgraph.New(0, 1), cycle(3))
	assert.ErrorIs(t, err, wordgraph.ErrNodeOutOfRange)
}

func TestMeeter_Meet(t *testing.T) {
	m := wordgraph.NewMeeter()
	var xy wordgraph.Graph

	// meet of mod 4 and mod 6 is mod lcm(4, 6) = 12
	require.NoError(t, m.Meet(&xy, cycle(4), 0, cycle(6), 0))
	assert.Equal(t, 12, xy.NumberOfNodes())
	assert.True(t, wordgraph.IsComplete(&xy))

	// the meet only follows edges defined on both sides
	x := wordgraph.NewFromRows([][]wordgraph.Node{{1, U}, {U, U}})
	y := wordgraph.NewFromRows([][]wordgraph.Node{{U, 1}, {U, U}})
	require.NoError(t, m.Meet(&xy, x, 0, y, 0))
	assert.Equal(t, 1, xy.NumberOfNodes())
	assert.Equal(t, 0, xy.NumberOfEdges())
}

func TestMeeter_Validation(t *testing.T) {
	m := wordgraph.NewMeeter()
	var xy wordgraph.Graph

	x := wordgraph.New(2, 1)
	y := wordgraph.New(2, 2)
	assert.ErrorIs(t, m.Meet(&xy, x, 0, y, 0), wordgraph.ErrOutDegreeMismatch)
	assert.ErrorIs(t, m.Meet(&xy, x, 9, x, 0), wordgraph.ErrNodeOutOfRange)
}

func TestMeeter_IsSubrelation(t *testing.T) {
	m := wordgraph.NewMeeter()

	ok, err := m.IsSubrelation(cycle(12), cycle(4))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.IsSubrelation(cycle(4), cycle(12))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJoinMeet_Agree(t *testing.T) {
	// the joiner and the meeter must agree on refinement
	j := wordgraph.NewJoiner()
	m := wordgraph.NewMeeter()
	for _, pair := range [][2]int{{2, 4}, {3, 9}, {4, 6}, {5, 5}} {
		x, y := cycle(pair[0]), cycle(pair[1])
		jr, err := j.IsSubrelation(y, x)
		require.NoError(t, err)
		mr, err := m.IsSubrelation(y, x)
		require.NoError(t, err)
		assert.Equal(t, jr, mr, "cycles %v", pair)
	}
}
