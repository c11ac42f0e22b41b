package presentation

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/cosets/wordgraph"
)

var (
	// ErrOddRules is returned when the rule list has odd length.
	ErrOddRules = errors.New("presentation: rule list has odd length")

	// ErrLetterOutOfRange is returned when a word contains a letter not
	// in the alphabet.
	ErrLetterOutOfRange = errors.New("presentation: letter out of range")

	// ErrEmptyWord is returned when a rule contains the empty word but
	// the presentation does not permit it.
	ErrEmptyWord = errors.New("presentation: empty word in rule but empty word not permitted")

	// ErrEmptyAlphabet is returned when the alphabet has no letters but
	// there are rules.
	ErrEmptyAlphabet = errors.New("presentation: rules over an empty alphabet")
)

// Presentation is a finite presentation: an alphabet of AlphabetSize
// letters 0..AlphabetSize-1, defining relations in Rules, and whether
// the empty word belongs to the presented object.
type Presentation struct {
	// AlphabetSize is the number of letters.
	AlphabetSize int

	// Rules holds the relations; Rules[2i] and Rules[2i+1] form a
	// relation. The slice must have even length.
	Rules []wordgraph.Word

	// ContainsEmptyWord records whether the empty word is an element,
	// i.e. whether this is a monoid presentation.
	ContainsEmptyWord bool
}

// New returns an empty presentation over an alphabet of size n.
func New(n int) *Presentation {
	return &Presentation{AlphabetSize: n}
}

// AddRule appends the relation lhs = rhs.
func (p *Presentation) AddRule(lhs, rhs wordgraph.Word) *Presentation {
	p.Rules = append(p.Rules, lhs, rhs)
	return p
}

// ValidateWord reports an error unless every letter of w is in the
// alphabet, and, when the empty word is not permitted, w is nonempty.
func (p *Presentation) ValidateWord(w wordgraph.Word) error {
	if len(w) == 0 && !p.ContainsEmptyWord {
		return ErrEmptyWord
	}
	for _, l := range w {
		if int(l) >= p.AlphabetSize {
			return fmt.Errorf("%w: letter %d, alphabet size %d", ErrLetterOutOfRange, l, p.AlphabetSize)
		}
	}
	return nil
}

// Validate reports the first problem with p: an odd rule list, a rule
// over letters outside the alphabet, or an empty word in a rule of a
// semigroup presentation.
func (p *Presentation) Validate() error {
	if len(p.Rules)%2 != 0 {
		return fmt.Errorf("%w: %d words", ErrOddRules, len(p.Rules))
	}
	if p.AlphabetSize == 0 && len(p.Rules) != 0 {
		return ErrEmptyAlphabet
	}
	for i, w := range p.Rules {
		if err := p.ValidateWord(w); err != nil {
			return fmt.Errorf("rule word %d: %w", i, err)
		}
	}
	return nil
}

// Length returns the sum of the lengths of all rule words.
func (p *Presentation) Length() int {
	total := 0
	for _, w := range p.Rules {
		total += len(w)
	}
	return total
}

// NumberOfRules returns the number of relations.
func (p *Presentation) NumberOfRules() int { return len(p.Rules) / 2 }

// Reversed returns a copy of p with every rule word reversed. Enumerating
// a left congruence over p is the same as enumerating the corresponding
// right congruence over the reversed presentation.
func (p *Presentation) Reversed() *Presentation {
	q := &Presentation{
		AlphabetSize:      p.AlphabetSize,
		ContainsEmptyWord: p.ContainsEmptyWord,
		Rules:             make([]wordgraph.Word, len(p.Rules)),
	}
	for i, w := range p.Rules {
		q.Rules[i] = ReverseWord(w)
	}
	return q
}

// Copy returns a deep copy of p.
func (p *Presentation) Copy() *Presentation {
	q := &Presentation{
		AlphabetSize:      p.AlphabetSize,
		ContainsEmptyWord: p.ContainsEmptyWord,
		Rules:             make([]wordgraph.Word, len(p.Rules)),
	}
	for i, w := range p.Rules {
		q.Rules[i] = append(wordgraph.Word(nil), w...)
	}
	return q
}

// ReverseWord returns a reversed copy of w.
func ReverseWord(w wordgraph.Word) wordgraph.Word {
	r := make(wordgraph.Word, len(w))
	for i, l := range w {
		r[len(w)-1-i] = l
	}
	return r
}
