// Package presentation defines the input to a coset enumeration: a
// finite alphabet, a flat list of defining relations over that alphabet,
// and a flag recording whether the empty word is permitted (i.e. whether
// the presented object is a monoid rather than a semigroup).
//
// Relations are stored as a flat slice of words of even length; words
// 2i and 2i+1 form the i-th relation. This layout matches how the
// enumeration engine walks both sides of each rule in lockstep.
package presentation
