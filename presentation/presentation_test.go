// Package presentation_test contains unit tests for finite
// presentations: validation, reversal, and copying.
package presentation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cosets/presentation"
	"github.com/katalvlaran/cosets/wordgraph"
)

func TestPresentation_New(t *testing.T) {
	p := presentation.New(3)
	assert.Equal(t, 3, p.AlphabetSize)
	assert.Equal(t, 0, p.NumberOfRules())
	assert.Equal(t, 0, p.Length())
	assert.False(t, p.ContainsEmptyWord)
	require.NoError(t, p.Validate())
}

func TestPresentation_AddRule(t *testing.T) {
	p := presentation.New(2)
	p.AddRule(wordgraph.Word{0, 0, 0}, wordgraph.Word{0}).
		AddRule(wordgraph.Word{0}, wordgraph.Word{1, 1})

	assert.Equal(t, 2, p.NumberOfRules())
	assert.Equal(t, 7, p.Length())
	require.NoError(t, p.Validate())
}

func TestPresentation_ValidateWord(t *testing.T) {
	p := presentation.New(2)

	require.NoError(t, p.ValidateWord(wordgraph.Word{0, 1, 0}))
	assert.ErrorIs(t, p.ValidateWord(wordgraph.Word{0, 2}), presentation.ErrLetterOutOfRange)
	assert.ErrorIs(t, p.ValidateWord(wordgraph.Word{}), presentation.ErrEmptyWord)

	p.ContainsEmptyWord = true
	require.NoError(t, p.ValidateWord(wordgraph.Word{}))
}

func TestPresentation_Validate(t *testing.T) {
	p := presentation.New(2)
	p.Rules = []wordgraph.Word{{0}}
	assert.ErrorIs(t, p.Validate(), presentation.ErrOddRules)

	p = presentation.New(0)
	p.AddRule(wordgraph.Word{0}, wordgraph.Word{0})
	assert.ErrorIs(t, p.Validate(), presentation.ErrEmptyAlphabet)

	p = presentation.New(2)
	p.AddRule(wordgraph.Word{0, 5}, wordgraph.Word{1})
	assert.ErrorIs(t, p.Validate(), presentation.ErrLetterOutOfRange)

	p = presentation.New(2)
	p.AddRule(wordgraph.Word{0}, wordgraph.Word{})
	assert.ErrorIs(t, p.Validate(), presentation.ErrEmptyWord)

	p.ContainsEmptyWord = true
	require.NoError(t, p.Validate())
}

func TestPresentation_Reversed(t *testing.T) {
	p := presentation.New(2)
	p.AddRule(wordgraph.Word{0, 1, 1}, wordgraph.Word{1, 0})

	q := p.Reversed()
	assert.Equal(t, wordgraph.Word{1, 1, 0}, q.Rules[0])
	assert.Equal(t, wordgraph.Word{0, 1}, q.Rules[1])
	assert.Equal(t, p.AlphabetSize, q.AlphabetSize)

	// reversing twice gives the original back
	assert.Equal(t, p.Rules, q.Reversed().Rules)
	// the original is untouched
	assert.Equal(t, wordgraph.Word{0, 1, 1}, p.Rules[0])
}

func TestPresentation_Copy(t *testing.T) {
	p := presentation.New(2)
	p.ContainsEmptyWord = true
	p.AddRule(wordgraph.Word{0, 1}, wordgraph.Word{1})

	q := p.Copy()
	q.Rules[0][0] = 1
	q.AddRule(wordgraph.Word{0}, wordgraph.Word{1})

	assert.Equal(t, wordgraph.Word{0, 1}, p.Rules[0])
	assert.Equal(t, 1, p.NumberOfRules())
	assert.True(t, q.ContainsEmptyWord)
}

func TestReverseWord(t *testing.T) {
	assert.Equal(t, wordgraph.Word{2, 1, 0}, presentation.ReverseWord(wordgraph.Word{0, 1, 2}))
	assert.Equal(t, wordgraph.Word{}, presentation.ReverseWord(nil))
}
