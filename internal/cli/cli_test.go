package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cosets/internal/cli"
	"github.com/katalvlaran/cosets/wordgraph"
)

// fiveClassProblem is the TOML form of the semigroup <a, b | aaa = a,
// a = bb>, which has 5 elements.
const fiveClassProblem = `
alphabet = 2
contains_empty_word = false

[[rules]]
lhs = [0, 0, 0]
rhs = [0]

[[rules]]
lhs = [0]
rhs = [1, 1]
`

// pairedProblem is the monogenic semigroup <a | a^5 = a^3> with the
// generating pair (a, a^3).
const pairedProblem = `
alphabet = 1

[[rules]]
lhs = [0, 0, 0, 0, 0]
rhs = [0, 0, 0]

[[pairs]]
lhs = [0]
rhs = [0, 0, 0]
`

// writeProblem writes contents to a file under a test temp dir.
func writeProblem(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problem.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// execute runs the coxeter command tree with the given arguments and
// returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseWord(t *testing.T) {
	w, err := cli.ParseWord("0,1,0")
	require.NoError(t, err)
	assert.Equal(t, wordgraph.Word{0, 1, 0}, w)

	w, err = cli.ParseWord("2")
	require.NoError(t, err)
	assert.Equal(t, wordgraph.Word{2}, w)

	w, err = cli.ParseWord(" 0, 1 ")
	require.NoError(t, err)
	assert.Equal(t, wordgraph.Word{0, 1}, w)

	w, err = cli.ParseWord("")
	require.NoError(t, err)
	assert.Empty(t, w)

	_, err = cli.ParseWord("a,b")
	assert.ErrorIs(t, err, cli.ErrBadWord)
	_, err = cli.ParseWord("0,,1")
	assert.ErrorIs(t, err, cli.ErrBadWord)
}

func TestLoadProblem(t *testing.T) {
	path := writeProblem(t, fiveClassProblem)

	p, pairs, err := cli.LoadProblem(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.AlphabetSize)
	assert.False(t, p.ContainsEmptyWord)
	assert.Equal(t, 2, p.NumberOfRules())
	assert.Equal(t, wordgraph.Word{0, 0, 0}, p.Rules[0])
	assert.Empty(t, pairs)
}

func TestLoadProblem_Pairs(t *testing.T) {
	path := writeProblem(t, pairedProblem)

	p, pairs, err := cli.LoadProblem(path)
	require.NoError(t, err)
	assert.Equal(t, 1, p.AlphabetSize)
	require.Len(t, pairs, 2)
	assert.Equal(t, wordgraph.Word{0}, pairs[0])
	assert.Equal(t, wordgraph.Word{0, 0, 0}, pairs[1])
}

func TestLoadProblem_Errors(t *testing.T) {
	_, _, err := cli.LoadProblem(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	// a rule using letters outside the alphabet fails validation
	path := writeProblem(t, `
alphabet = 1

[[rules]]
lhs = [0, 4]
rhs = [0]
`)
	_, _, err = cli.LoadProblem(path)
	assert.Error(t, err)
}

func TestClassesCommand(t *testing.T) {
	path := writeProblem(t, fiveClassProblem)

	out, err := execute(t, "classes", path)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestClassesCommand_Strategies(t *testing.T) {
	path := writeProblem(t, fiveClassProblem)

	for _, s := range []string{"hlt", "felsch", "CR", "R/C", "Cr", "Rc"} {
		out, err := execute(t, "classes", "--strategy", s, path)
		require.NoError(t, err, "strategy %s", s)
		assert.Equal(t, "5\n", out, "strategy %s", s)
	}

	_, err := execute(t, "classes", "--strategy", "bogus", path)
	assert.ErrorIs(t, err, cli.ErrBadStrategy)
}

func TestClassesCommand_Pairs(t *testing.T) {
	path := writeProblem(t, pairedProblem)

	out, err := execute(t, "classes", "--kind", "right", path)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestClassesCommand_BadKind(t *testing.T) {
	path := writeProblem(t, fiveClassProblem)
	_, err := execute(t, "classes", "--kind", "sideways", path)
	assert.ErrorIs(t, err, cli.ErrBadKind)
}

func TestNormalFormsCommand(t *testing.T) {
	path := writeProblem(t, fiveClassProblem)

	out, err := execute(t, "normal-forms", path)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n0,0\n0,1\n0,0,1\n", out)

	out, err = execute(t, "normal-forms", "--order", "lex", path)
	require.NoError(t, err)
	assert.Equal(t, "0\n0,0\n0,0,1\n0,0,1,0\n1\n", out)

	_, err = execute(t, "normal-forms", "--order", "sideways", path)
	assert.ErrorIs(t, err, cli.ErrBadOrder)
}

func TestIndexCommand(t *testing.T) {
	path := writeProblem(t, fiveClassProblem)

	out, err := execute(t, "index", path, "1,1")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, err = execute(t, "index", path, "1")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = execute(t, "index", path, "nope")
	assert.ErrorIs(t, err, cli.ErrBadWord)
}

func TestContainsCommand(t *testing.T) {
	path := writeProblem(t, fiveClassProblem)

	out, err := execute(t, "contains", path, "0,0,1", "0,0,0,0,1")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = execute(t, "contains", path, "0", "1")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestTimeLimitFlag(t *testing.T) {
	// the bicyclic monoid never finishes, so a time limit must turn
	// into an error
	path := writeProblem(t, `
alphabet = 2
contains_empty_word = true

[[rules]]
lhs = [0, 1]
rhs = []
`)
	_, err := execute(t, "classes", "--time-limit", "50ms", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")
}

func TestVerboseFlag(t *testing.T) {
	path := writeProblem(t, fiveClassProblem)
	out, err := execute(t, "classes", "-v", path)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}
