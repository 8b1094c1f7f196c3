package regex

import (
	"fmt"
	"strings"
)

// Predicate decides whether a single token is accepted by a literal.
type Predicate[E any] func(token E) bool

// Expression is a node of a token pattern. The set of variants is closed:
// *Literal, *MatchingGroup, *Or, *Star, *Plus, *Option, *MinMax,
// *StartAssertion and *EndAssertion. Nodes are immutable once constructed.
type Expression[E any] interface {
	fmt.Stringer

	// MinLength is the fewest tokens the expression can consume.
	MinLength() int

	build(b *builder[E]) fragment
}

// <...>
type Literal[E any] struct {
	source string
	pred   Predicate[E]
}

// NewLiteral returns a literal matching exactly one token accepted by pred.
// source is only used for display and equality of compiled patterns.
func NewLiteral[E any](source string, pred Predicate[E]) *Literal[E] {
	return &Literal[E]{source: source, pred: pred}
}

func (l *Literal[E]) Source() string {
	return l.source
}

// Apply reports whether token is accepted.
func (l *Literal[E]) Apply(token E) bool {
	return l.pred(token)
}

func (l *Literal[E]) MinLength() int {
	return 1
}

func (l *Literal[E]) String() string {
	return "<" + l.source + ">"
}

func (l *Literal[E]) build(b *builder[E]) fragment {
	f := b.fragment(l)
	b.connectOn(f.start, f.end, edgeLiteral, l)
	return f
}

type GroupKind uint8

const (
	// GroupMatching is referred to by order: (<a> <b>)
	GroupMatching GroupKind = iota
	// GroupNamed is referred to by name: (<name>:<a> <b>)
	GroupNamed
	// GroupNonMatching groups without capturing: (?:<a> <b>)
	GroupNonMatching
)

// ( ... ), (<name>: ... ) and (?: ... )
type MatchingGroup[E any] struct {
	kind  GroupKind
	name  string
	exprs []Expression[E]
}

func NewGroup[E any](exprs ...Expression[E]) *MatchingGroup[E] {
	return &MatchingGroup[E]{kind: GroupMatching, exprs: exprs}
}

func NewNamedGroup[E any](name string, exprs ...Expression[E]) *MatchingGroup[E] {
	return &MatchingGroup[E]{kind: GroupNamed, name: name, exprs: exprs}
}

func NewNonMatchingGroup[E any](exprs ...Expression[E]) *MatchingGroup[E] {
	return &MatchingGroup[E]{kind: GroupNonMatching, exprs: exprs}
}

func (g *MatchingGroup[E]) Kind() GroupKind {
	return g.kind
}

// Name is empty unless the group is named.
func (g *MatchingGroup[E]) Name() string {
	return g.name
}

// Expressions returns a copy of the group's sub-expressions.
func (g *MatchingGroup[E]) Expressions() []Expression[E] {
	return append([]Expression[E](nil), g.exprs...)
}

func (g *MatchingGroup[E]) MinLength() int {
	n := 0
	for _, e := range g.exprs {
		n += e.MinLength()
	}
	return n
}

func (g *MatchingGroup[E]) String() string {
	switch g.kind {
	case GroupNamed:
		return "(<" + g.name + ">:" + joinExpressions(g.exprs) + ")"
	case GroupNonMatching:
		return "(?:" + joinExpressions(g.exprs) + ")"
	default:
		return "(" + joinExpressions(g.exprs) + ")"
	}
}

// every boundary between two sub-automata gets its own connector state, so
// that the start and end of each sub-automaton stay distinguishable
func (g *MatchingGroup[E]) build(b *builder[E]) fragment {
	f := b.fragment(g)

	prev := f.start
	for i, e := range g.exprs {
		sub := b.build(e)
		if i == 0 {
			b.connect(prev, sub.start)
		} else {
			connector := b.addState(stateInner, noFragment)
			b.connect(prev, connector)
			b.connect(connector, sub.start)
		}
		prev = sub.end
	}
	b.connect(prev, f.end)
	return f
}

// <a> | <b>
type Or[E any] struct {
	left  Expression[E]
	right Expression[E]
}

func NewOr[E any](left, right Expression[E]) *Or[E] {
	return &Or[E]{left: left, right: right}
}

func (o *Or[E]) Left() Expression[E] {
	return o.left
}

func (o *Or[E]) Right() Expression[E] {
	return o.right
}

func (o *Or[E]) MinLength() int {
	return min(o.left.MinLength(), o.right.MinLength())
}

func (o *Or[E]) String() string {
	return o.left.String() + " | " + o.right.String()
}

func (o *Or[E]) build(b *builder[E]) fragment {
	f := b.fragment(o)
	left := b.build(o.left)
	right := b.build(o.right)

	b.connect(f.start, left.start)
	b.connect(f.start, right.start)
	b.connect(left.end, f.end)
	b.connect(right.end, f.end)
	return f
}

// <a>*
type Star[E any] struct {
	sub Expression[E]
}

func NewStar[E any](sub Expression[E]) *Star[E] {
	return &Star[E]{sub: sub}
}

func (s *Star[E]) Sub() Expression[E] {
	return s.sub
}

func (s *Star[E]) MinLength() int {
	return 0
}

func (s *Star[E]) String() string {
	return s.sub.String() + "*"
}

func (s *Star[E]) build(b *builder[E]) fragment {
	f := b.fragment(s)
	sub := b.build(s.sub)

	// run it again
	b.connect(sub.end, sub.start)

	b.connect(f.start, sub.start)
	b.connect(sub.end, f.end)

	// skip it completely
	b.connect(f.start, f.end)
	return f
}

// <a>+ is the same as <a> <a>*
type Plus[E any] struct {
	sub Expression[E]
}

func NewPlus[E any](sub Expression[E]) *Plus[E] {
	return &Plus[E]{sub: sub}
}

func (p *Plus[E]) Sub() Expression[E] {
	return p.sub
}

func (p *Plus[E]) MinLength() int {
	return p.sub.MinLength()
}

func (p *Plus[E]) String() string {
	return p.sub.String() + "+"
}

func (p *Plus[E]) build(b *builder[E]) fragment {
	f := b.fragment(p)
	sub := b.build(p.sub)

	b.connect(sub.end, sub.start)
	b.connect(f.start, sub.start)
	b.connect(sub.end, f.end)
	return f
}

// <a>?
type Option[E any] struct {
	sub Expression[E]
}

func NewOption[E any](sub Expression[E]) *Option[E] {
	return &Option[E]{sub: sub}
}

func (o *Option[E]) Sub() Expression[E] {
	return o.sub
}

func (o *Option[E]) MinLength() int {
	return 0
}

func (o *Option[E]) String() string {
	return o.sub.String() + "?"
}

func (o *Option[E]) build(b *builder[E]) fragment {
	f := b.fragment(o)
	sub := b.build(o.sub)

	b.connect(f.start, sub.start)
	b.connect(sub.end, f.end)
	b.connect(f.start, f.end)
	return f
}

// <a>{m,n}
type MinMax[E any] struct {
	sub Expression[E]
	min int
	max int
}

// NewMinMax returns a bounded repetition of sub. It fails with a *BoundsError
// unless 0 <= min <= max and max >= 1. Every allowed repetition becomes its
// own copy of the sub-automaton, so large maxima produce large automata.
func NewMinMax[E any](sub Expression[E], min, max int) (*MinMax[E], error) {
	if min < 0 || max < 1 || min > max {
		return nil, &BoundsError{Min: min, Max: max}
	}
	return &MinMax[E]{sub: sub, min: min, max: max}, nil
}

func (m *MinMax[E]) Sub() Expression[E] {
	return m.sub
}

func (m *MinMax[E]) Bounds() (min, max int) {
	return m.min, m.max
}

func (m *MinMax[E]) MinLength() int {
	return m.min * m.sub.MinLength()
}

func (m *MinMax[E]) String() string {
	return fmt.Sprintf("%s{%d,%d}", m.sub, m.min, m.max)
}

func (m *MinMax[E]) build(b *builder[E]) fragment {
	f := b.fragment(m)

	copies := make([]fragment, m.max)
	for i := range copies {
		copies[i] = b.build(m.sub)
	}

	b.connect(f.start, copies[0].start)
	for i, c := range copies {
		// stop as soon as the minimum is satisfied
		if i >= m.min-1 {
			b.connect(c.end, f.end)
		}
		if i < len(copies)-1 {
			b.connect(c.end, copies[i+1].start)
		}
	}

	if m.min == 0 {
		b.connect(f.start, f.end)
	}
	return f
}

// ^
type StartAssertion[E any] struct{}

func NewStartAssertion[E any]() *StartAssertion[E] {
	return &StartAssertion[E]{}
}

func (a *StartAssertion[E]) MinLength() int {
	return 0
}

func (a *StartAssertion[E]) String() string {
	return "^"
}

func (a *StartAssertion[E]) build(b *builder[E]) fragment {
	f := b.fragment(a)
	b.connectOn(f.start, f.end, edgeStartAssertion, nil)
	return f
}

// $
type EndAssertion[E any] struct{}

func NewEndAssertion[E any]() *EndAssertion[E] {
	return &EndAssertion[E]{}
}

func (a *EndAssertion[E]) MinLength() int {
	return 0
}

func (a *EndAssertion[E]) String() string {
	return "$"
}

func (a *EndAssertion[E]) build(b *builder[E]) fragment {
	f := b.fragment(a)
	b.connectOn(f.start, f.end, edgeEndAssertion, nil)
	return f
}

func joinExpressions[E any](exprs []Expression[E]) string {
	strs := make([]string, len(exprs))
	for i, e := range exprs {
		strs[i] = e.String()
	}
	return strings.Join(strs, " ")
}

// isNil also catches typed nil pointers stored in the interface
func isNil[E any](e Expression[E]) bool {
	switch n := e.(type) {
	case nil:
		return true
	case *Literal[E]:
		return n == nil
	case *MatchingGroup[E]:
		return n == nil
	case *Or[E]:
		return n == nil
	case *Star[E]:
		return n == nil
	case *Plus[E]:
		return n == nil
	case *Option[E]:
		return n == nil
	case *MinMax[E]:
		return n == nil
	case *StartAssertion[E]:
		return n == nil
	case *EndAssertion[E]:
		return n == nil
	}
	return false
}
