// Package regex implements regular expressions over sequences of arbitrary
// tokens. Patterns are trees of Expression nodes, either built directly or
// parsed from text with a LiteralFactory, and are compiled into a
// nondeterministic automaton that is simulated without backtracking.
package regex

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Regex is a compiled token pattern.
type Regex[E any] struct {
	exprs []Expression[E]
	auto  *Automaton[E]
}

// New compiles the sequence of expressions into a Regex.
func New[E any](exprs ...Expression[E]) (*Regex[E], error) {
	auto, err := Compile(exprs...)
	if err != nil {
		return nil, err
	}
	return &Regex[E]{exprs: slices.Clone(exprs), auto: auto}, nil
}

// MustNew is like New but panics on error.
func MustNew[E any](exprs ...Expression[E]) *Regex[E] {
	re, err := New(exprs...)
	if err != nil {
		panic(err)
	}
	return re
}

func (re *Regex[E]) Expressions() []Expression[E] {
	return slices.Clone(re.exprs)
}

func (re *Regex[E]) Automaton() *Automaton[E] {
	return re.auto
}

func (re *Regex[E]) String() string {
	return joinExpressions(re.exprs)
}

// Equal reports whether both patterns have the same textual form.
func (re *Regex[E]) Equal(other *Regex[E]) bool {
	if re == nil || other == nil {
		return re == other
	}
	return re.String() == other.String()
}

// Hash is consistent with Equal.
func (re *Regex[E]) Hash() uint64 {
	return xxhash.Sum64String(re.String())
}

// Apply reports whether the pattern occurs anywhere in tokens.
func (re *Regex[E]) Apply(tokens []E) bool {
	return re.Find(tokens) != nil
}

// Matches reports whether the pattern matches all of tokens.
func (re *Regex[E]) Matches(tokens []E) bool {
	return re.Match(tokens) != nil
}

// Match returns the match covering all of tokens, or nil.
func (re *Regex[E]) Match(tokens []E) *Match[E] {
	m := re.auto.LookingAt(tokens, 0)
	if m == nil || !coversAll(m, len(tokens)) {
		return nil
	}
	return m
}

func coversAll[E any](m *Match[E], n int) bool {
	if n == 0 {
		return m.IsEmpty()
	}
	return m.EndIndex() == n
}

// LookingAt matches the pattern starting exactly at start.
func (re *Regex[E]) LookingAt(tokens []E, start int) *Match[E] {
	return re.auto.LookingAt(tokens, start)
}

// Find returns the first match in tokens.
func (re *Regex[E]) Find(tokens []E) *Match[E] {
	return re.FindAt(tokens, 0)
}

// FindAt returns the first match that begins at or after start.
func (re *Regex[E]) FindAt(tokens []E, start int) *Match[E] {
	for i := max(start, 0); i <= len(tokens)-re.auto.minLen; i++ {
		if m := re.auto.LookingAt(tokens, i); m != nil {
			return m
		}
	}
	return nil
}

// FindAll finds up to maxCount non-overlapping matches in tokens.
// To return all matches pass a maxCount of -1
func (re *Regex[E]) FindAll(tokens []E, maxCount int) []*Match[E] {
	var all []*Match[E]
	for start := 0; maxCount == -1 || len(all) < maxCount; {
		m := re.FindAt(tokens, start)
		// an empty match only happens on empty input
		if m == nil || m.IsEmpty() {
			break
		}
		all = append(all, m)
		start = m.EndIndex()
	}
	return all
}

// ReplaceAll returns a copy of tokens in which every match is replaced by
// the result of repl.
func (re *Regex[E]) ReplaceAll(tokens []E, repl func(m *Match[E]) []E) []E {
	out := make([]E, 0, len(tokens))
	last := 0
	for _, m := range re.FindAll(tokens, -1) {
		out = append(out, tokens[last:m.StartIndex()]...)
		out = append(out, repl(m)...)
		last = m.EndIndex()
	}
	return append(out, tokens[last:]...)
}
