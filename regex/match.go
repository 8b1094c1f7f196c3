package regex

import (
	"fmt"
	"slices"
	"strings"
)

// Token is a matched token together with its index in the searched sequence.
type Token[E any] struct {
	Value E
	Index int
}

func (t Token[E]) String() string {
	return fmt.Sprint(t.Value)
}

// Range is a half-open interval [Start, End) of token indices. An empty
// match has the range [-1, -1).
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Group associates an expression of the pattern with the tokens it matched.
// The tokens of a group are all tokens matched by literals it contains, in
// input order.
type Group[E any] struct {
	expr   Expression[E]
	tokens []Token[E]
}

// Expr returns the expression that produced the group.
func (g Group[E]) Expr() Expression[E] {
	return g.expr
}

// Name is the name of a named group and empty otherwise.
func (g Group[E]) Name() string {
	if mg, ok := g.expr.(*MatchingGroup[E]); ok && mg.kind == GroupNamed {
		return mg.name
	}
	return ""
}

func (g Group[E]) Tokens() []E {
	tokens := make([]E, len(g.tokens))
	for i, t := range g.tokens {
		tokens[i] = t.Value
	}
	return tokens
}

// Indexed returns the tokens with their indices.
func (g Group[E]) Indexed() []Token[E] {
	return slices.Clone(g.tokens)
}

func (g Group[E]) Len() int {
	return len(g.tokens)
}

func (g Group[E]) Range() Range {
	if len(g.tokens) == 0 {
		return Range{Start: -1, End: -1}
	}
	start, end := g.tokens[0].Index, g.tokens[0].Index
	for _, t := range g.tokens[1:] {
		start = min(start, t.Index)
		end = max(end, t.Index)
	}
	return Range{Start: start, End: end + 1}
}

// Text joins the tokens with single spaces.
func (g Group[E]) Text() string {
	strs := make([]string, len(g.tokens))
	for i, t := range g.tokens {
		strs[i] = t.String()
	}
	return strings.Join(strs, " ")
}

func (g Group[E]) String() string {
	return g.expr.String() + ":'" + g.Text() + "'"
}

func (g Group[E]) isLiteral() bool {
	_, ok := g.expr.(*Literal[E])
	return ok
}

func (g Group[E]) isCapturing() bool {
	mg, ok := g.expr.(*MatchingGroup[E])
	return ok && mg.kind != GroupNonMatching
}

// Match is the result of a successful search. Every expression that took
// part in the match has a pair, in pre-order; the whole pattern is the first
// group.
type Match[E any] struct {
	pairs  []Group[E]
	groups []Group[E]
	tokens []E
	start  int
}

func (m *Match[E]) StartIndex() int {
	return m.start
}

// EndIndex is one past the last matched token, or -1 for an empty match.
func (m *Match[E]) EndIndex() int {
	if m.start < 0 {
		return -1
	}
	return m.start + len(m.tokens)
}

func (m *Match[E]) Range() Range {
	return Range{Start: m.StartIndex(), End: m.EndIndex()}
}

func (m *Match[E]) Tokens() []E {
	return slices.Clone(m.tokens)
}

func (m *Match[E]) Len() int {
	return len(m.tokens)
}

// IsEmpty is true for a match that consumed no tokens.
func (m *Match[E]) IsEmpty() bool {
	return len(m.tokens) == 0
}

// Pairs returns a pair for every expression in the match, including
// literals, repetitions and non-matching groups.
func (m *Match[E]) Pairs() []Group[E] {
	return slices.Clone(m.pairs)
}

// Groups returns the matching and named groups; the first one spans the
// whole match.
func (m *Match[E]) Groups() []Group[E] {
	return slices.Clone(m.groups)
}

// Group returns the first group with the given name, or nil.
func (m *Match[E]) Group(name string) *Group[E] {
	for i := range m.groups {
		if m.groups[i].Name() == name && name != "" {
			return &m.groups[i]
		}
	}
	return nil
}

func (m *Match[E]) String() string {
	strs := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		strs[i] = p.String()
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

func (m *Match[E]) MultilineString() string {
	strs := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		strs[i] = p.String()
	}
	return strings.Join(strs, "\n")
}

// matchBuilder collects pairs while a path is replayed.
type matchBuilder[E any] struct {
	pairs []Group[E]
}

func (b *matchBuilder[E]) add(g Group[E]) {
	b.pairs = append(b.pairs, g)
}

func (b *matchBuilder[E]) addAll(gs []Group[E]) {
	b.pairs = append(b.pairs, gs...)
}

func (b *matchBuilder[E]) isEmpty() bool {
	return len(b.pairs) == 0
}

func (b *matchBuilder[E]) freeze() *Match[E] {
	m := &Match[E]{pairs: b.pairs, start: -1}
	for _, p := range b.pairs {
		switch {
		case p.isLiteral():
			if m.start < 0 {
				m.start = p.tokens[0].Index
			}
			m.tokens = append(m.tokens, p.tokens[0].Value)
		case p.isCapturing():
			m.groups = append(m.groups, p)
		}
	}
	return m
}

// replayer walks a winning path from its oldest step on.
type replayer[E any] struct {
	a      *Automaton[E]
	path   []*step[E]
	pos    int
	tokens []E
	next   int
	offset int
}

func (a *Automaton[E]) replay(tokens []E, offset int, last *step[E]) *Match[E] {
	var path []*step[E]
	for s := last; s.prev != nil; s = s.prev {
		path = append(path, s)
	}
	slices.Reverse(path)

	r := &replayer[E]{a: a, path: path, tokens: tokens, offset: offset}
	var b matchBuilder[E]
	r.run(noFragment, a.start, &b)
	return b.freeze()
}

// run consumes path steps starting in state at until it reaches the end
// state of owner, then adds a group for owner followed by everything
// collected inside it to out. It returns the state it stopped in.
func (r *replayer[E]) run(owner fragmentID, at StateID, out *matchBuilder[E]) StateID {
	var inner matchBuilder[E]

	for r.pos < len(r.path) && !r.closes(owner, at) {
		s := r.path[r.pos]
		r.pos++

		st := &r.a.states[at]
		switch {
		case s.kind == stepLiteral:
			// consume a token, this is the base case
			inner.add(Group[E]{
				expr:   s.lit,
				tokens: []Token[E]{{Value: r.tokens[r.next], Index: r.offset + r.next}},
			})
			r.next++
			at = s.state
		case st.kind == stateStart:
			// recurse so that the sub-automaton gets its own group
			at = r.run(st.frag, s.state, &inner)
		default:
			at = s.state
		}
	}

	if owner != noFragment {
		expr := r.a.frags[owner].expr
		if _, isGroup := expr.(*MatchingGroup[E]); isGroup || !inner.isEmpty() {
			g := Group[E]{expr: expr}
			for _, p := range inner.pairs {
				if p.isLiteral() {
					g.tokens = append(g.tokens, p.tokens...)
				}
			}
			out.add(g)
		}
	}
	out.addAll(inner.pairs)

	return at
}

func (r *replayer[E]) closes(owner fragmentID, at StateID) bool {
	st := &r.a.states[at]
	return owner != noFragment && st.kind == stateEnd && st.frag == owner
}
