package regex

import (
	"github.com/mfroeh/tokre/internal/sparse"
)

type stepKind uint8

const (
	stepStart stepKind = iota
	stepEpsilon
	stepLiteral
	stepAssertion
)

// step is one move through the automaton with a back reference to the step
// before it. The chain from the winning step back to the start is the path
// that is replayed to build a Match.
type step[E any] struct {
	state StateID
	prev  *step[E]
	kind  stepKind
	lit   *Literal[E]
}

// generation is the set of steps that are active at one input position.
// Each state is held by at most one step, the first one that reached it.
type generation[E any] struct {
	steps []*step[E]
	seen  *sparse.Set
	at    []*step[E]
}

func newGeneration[E any](states int) *generation[E] {
	return &generation[E]{
		seen: sparse.New(states),
		at:   make([]*step[E], states),
	}
}

func (g *generation[E]) add(s *step[E]) bool {
	if !g.seen.Insert(uint32(s.state)) {
		return false
	}
	g.steps = append(g.steps, s)
	g.at[s.state] = s
	return true
}

func (g *generation[E]) holds(id StateID) bool {
	return g.seen.Contains(uint32(id))
}

func (g *generation[E]) reset() {
	for _, s := range g.steps {
		g.at[s.state] = nil
	}
	g.steps = g.steps[:0]
	g.seen.Clear()
}

// Apply reports whether the automaton matches a prefix of tokens.
func (a *Automaton[E]) Apply(tokens []E) bool {
	if len(tokens) < a.minLen {
		return false
	}
	return a.evaluate(tokens, true, len(tokens) == 0) != nil
}

// LookingAt matches the automaton against tokens beginning at start and
// returns the longest match, or nil if there is none.
func (a *Automaton[E]) LookingAt(tokens []E, start int) *Match[E] {
	if start < 0 || len(tokens)-start-a.minLen < 0 {
		// can't possibly match
		return nil
	}

	rest := tokens[start:]
	last := a.evaluate(rest, start == 0, len(tokens) == 0)
	if last == nil {
		return nil
	}
	return a.replay(rest, start, last)
}

// evaluate runs all paths through the automaton in lockstep, one generation
// per consumed token, and returns the last step of the path that consumed
// the most tokens. Among equally long paths the first one found in edge
// order wins.
//
// hasStart is true if tokens begins at the start of the whole sequence.
// A path that consumed nothing is only accepted if allowEmpty is set.
func (a *Automaton[E]) evaluate(tokens []E, hasStart, allowEmpty bool) *step[E] {
	cur := newGeneration[E](len(a.states))
	next := newGeneration[E](len(a.states))
	cur.add(&step[E]{state: a.start, kind: stepStart})

	var solution *step[E]
	for consumed := 0; len(cur.steps) > 0; consumed++ {
		a.expandEpsilons(cur, 0)
		a.expandAssertions(cur, hasStart, consumed, len(tokens))

		// every generation consumed one more token than the one before,
		// so a later solution is always the longer one
		if end := cur.at[a.end]; end != nil && (consumed > 0 || allowEmpty) {
			solution = end
		}

		if consumed == len(tokens) {
			break
		}

		token := tokens[consumed]
		next.reset()
		for _, s := range cur.steps {
			for _, e := range a.states[s.state].edges {
				if e.kind != edgeLiteral || next.holds(e.to) {
					continue
				}
				if e.lit.Apply(token) {
					next.add(&step[E]{state: e.to, prev: s, kind: stepLiteral, lit: e.lit})
				}
			}
		}
		cur, next = next, cur
	}

	return solution
}

// expandEpsilons follows epsilon edges depth first from every step at or
// after index from.
func (a *Automaton[E]) expandEpsilons(g *generation[E], from int) {
	n := len(g.steps)
	for i := from; i < n; i++ {
		a.expandEpsilon(g, g.steps[i])
	}
}

func (a *Automaton[E]) expandEpsilon(g *generation[E], s *step[E]) {
	for _, to := range a.states[s.state].epsilons {
		// states already in the generation end loops from * and +
		if g.holds(to) {
			continue
		}
		ns := &step[E]{state: to, prev: s, kind: stepEpsilon}
		g.add(ns)
		a.expandEpsilon(g, ns)
	}
}

// expandAssertions takes every satisfied assertion edge and the epsilon
// edges behind it until nothing new is reached.
func (a *Automaton[E]) expandAssertions(g *generation[E], hasStart bool, consumed, total int) {
	for from := 0; from < len(g.steps); {
		n := len(g.steps)
		for i := from; i < n; i++ {
			s := g.steps[i]
			for _, e := range a.states[s.state].edges {
				if e.kind == edgeLiteral || g.holds(e.to) {
					continue
				}
				if assertionHolds(e.kind, hasStart, consumed, total) {
					g.add(&step[E]{state: e.to, prev: s, kind: stepAssertion})
				}
			}
		}
		a.expandEpsilons(g, n)
		from = n
	}
}

func assertionHolds(kind edgeKind, hasStart bool, consumed, total int) bool {
	switch kind {
	case edgeStartAssertion:
		return hasStart && consumed == 0
	case edgeEndAssertion:
		return consumed == total
	}
	return false
}
