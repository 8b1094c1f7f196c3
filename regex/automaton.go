package regex

import (
	"fmt"
)

// StateID addresses a state in an automaton's state arena.
type StateID uint32

type stateKind uint8

const (
	stateInner stateKind = iota
	stateStart
	stateEnd
)

// fragmentID identifies the sub-automaton built by one expression node.
type fragmentID int32

const noFragment fragmentID = -1

type edgeKind uint8

const (
	edgeLiteral edgeKind = iota
	edgeStartAssertion
	edgeEndAssertion
)

func (k edgeKind) String() string {
	switch k {
	case edgeLiteral:
		return "Literal"
	case edgeStartAssertion:
		return "StartAssertion"
	case edgeEndAssertion:
		return "EndAssertion"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// edge is a transition that is either consuming (a literal) or zero-width
// (an assertion checked against the position, never against a token).
type edge[E any] struct {
	kind edgeKind
	to   StateID
	lit  *Literal[E]
}

type state[E any] struct {
	kind stateKind
	// set for start and end states
	frag     fragmentID
	edges    []edge[E]
	epsilons []StateID
}

type fragment struct {
	id    fragmentID
	start StateID
	end   StateID
}

type fragmentInfo[E any] struct {
	expr  Expression[E]
	start StateID
	end   StateID
}

// Automaton is a compiled token pattern: a Thompson NFA with epsilon edges.
// It is never modified after Compile and may be used from multiple
// goroutines at once.
type Automaton[E any] struct {
	states []state[E]
	frags  []fragmentInfo[E]
	root   *MatchingGroup[E]
	start  StateID
	end    StateID
	minLen int
}

// Compile wraps exprs in a matching group and builds its automaton.
func Compile[E any](exprs ...Expression[E]) (*Automaton[E], error) {
	root := NewGroup(exprs...)

	b := &builder[E]{}
	f := b.build(root)
	if b.err != nil {
		return nil, &CompileError{Err: b.err}
	}

	return &Automaton[E]{
		states: b.states,
		frags:  b.frags,
		root:   root,
		start:  f.start,
		end:    f.end,
		minLen: root.MinLength(),
	}, nil
}

// States returns the number of states in the automaton.
func (a *Automaton[E]) States() int {
	return len(a.states)
}

// MinLength is the fewest tokens any match can consume.
func (a *Automaton[E]) MinLength() int {
	return a.minLen
}

func (a *Automaton[E]) String() string {
	return fmt.Sprintf("Automaton{states: %d, fragments: %d, start: %d, end: %d}",
		len(a.states), len(a.frags), a.start, a.end)
}

type builder[E any] struct {
	states []state[E]
	frags  []fragmentInfo[E]
	err    error
}

func (b *builder[E]) addState(kind stateKind, frag fragmentID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, state[E]{kind: kind, frag: frag})
	return id
}

// fragment allocates a start and an end state owned by expr.
func (b *builder[E]) fragment(expr Expression[E]) fragment {
	id := fragmentID(len(b.frags))
	start := b.addState(stateStart, id)
	end := b.addState(stateEnd, id)
	b.frags = append(b.frags, fragmentInfo[E]{expr: expr, start: start, end: end})
	return fragment{id: id, start: start, end: end}
}

// connect adds an epsilon edge.
func (b *builder[E]) connect(from, to StateID) {
	b.states[from].epsilons = append(b.states[from].epsilons, to)
}

func (b *builder[E]) connectOn(from, to StateID, kind edgeKind, lit *Literal[E]) {
	b.states[from].edges = append(b.states[from].edges, edge[E]{kind: kind, to: to, lit: lit})
}

// build validates expr and builds it. After the first error, it keeps
// returning throwaway fragments so that callers need no error plumbing.
func (b *builder[E]) build(expr Expression[E]) fragment {
	if b.err == nil {
		b.err = validate(expr)
	}
	if b.err != nil {
		return b.placeholder()
	}
	return expr.build(b)
}

func (b *builder[E]) placeholder() fragment {
	start := b.addState(stateInner, noFragment)
	end := b.addState(stateInner, noFragment)
	return fragment{id: noFragment, start: start, end: end}
}

// validate checks a single node; children are checked when they are built.
func validate[E any](expr Expression[E]) error {
	if isNil(expr) {
		return fmt.Errorf("%w: nil expression", ErrMalformedExpression)
	}

	switch e := expr.(type) {
	case *Literal[E]:
		if e.pred == nil {
			return fmt.Errorf("%w: literal %s has no predicate", ErrMalformedExpression, e)
		}
	case *MinMax[E]:
		if e.min < 0 || e.max < 1 || e.min > e.max {
			return &BoundsError{Min: e.min, Max: e.max}
		}
	}

	var children []Expression[E]
	switch e := expr.(type) {
	case *Or[E]:
		children = []Expression[E]{e.left, e.right}
	case *Star[E]:
		children = []Expression[E]{e.sub}
	case *Plus[E]:
		children = []Expression[E]{e.sub}
	case *Option[E]:
		children = []Expression[E]{e.sub}
	case *MinMax[E]:
		children = []Expression[E]{e.sub}
	case *MatchingGroup[E]:
		children = e.exprs
	}
	for _, c := range children {
		if isNil(c) {
			return fmt.Errorf("%w: %T has a nil sub-expression", ErrMalformedExpression, expr)
		}
	}
	return nil
}
