package regex

import (
	"strconv"
	"strings"
	"unicode"
)

// LiteralFactory turns the text between a literal's brackets into a token
// predicate.
type LiteralFactory[E any] func(source string) (Predicate[E], error)

// Parse parses a textual pattern and compiles it.
//
// Elements are separated by whitespace:
//
//	<...> or [...]   literal, the inside is handed to factory
//	( ... )          matching group
//	(<name>: ... )   named group
//	(?: ... )        non-matching group
//	x*  x+  x?       repetition
//	x{m,n}  x{n}     bounded repetition
//	x | y            alternation of the two adjacent elements
//	^  $             start and end of the sequence
func Parse[E any](pattern string, factory LiteralFactory[E]) (*Regex[E], error) {
	exprs, err := ParseExpressions(pattern, factory)
	if err != nil {
		return nil, err
	}
	return New(exprs...)
}

// MustParse is like Parse but panics on error.
func MustParse[E any](pattern string, factory LiteralFactory[E]) *Regex[E] {
	re, err := Parse(pattern, factory)
	if err != nil {
		panic(err)
	}
	return re
}

// ParseExpressions parses a textual pattern into its top-level expressions.
func ParseExpressions[E any](pattern string, factory LiteralFactory[E]) ([]Expression[E], error) {
	p := parser[E]{re: pattern, factory: factory}
	exprs, _, err := p.parseSequence(0, false)
	if err != nil {
		return nil, err
	}
	return exprs, nil
}

type parser[E any] struct {
	re      string
	factory LiteralFactory[E]
}

// parseSequence parses elements until the end of the pattern or, inside a
// group, until the closing ')'. It returns the index after the sequence.
func (p *parser[E]) parseSequence(i int, inGroup bool) ([]Expression[E], int, error) {
	var exprs []Expression[E]
	pendingOr := -1

	for {
		i = p.skipSpace(i)
		if i >= len(p.re) {
			if inGroup {
				return nil, i, newParseError(i, "did not find closing ')'", nil)
			}
			break
		}

		switch p.re[i] {
		case ')':
			if !inGroup {
				return nil, i, newParseError(i, "unexpected ')'", nil)
			}
			if pendingOr >= 0 {
				return nil, i, newParseError(pendingOr, "'|' is missing its right operand", nil)
			}
			return exprs, i + 1, nil
		case '|':
			if len(exprs) == 0 || pendingOr >= 0 {
				return nil, i, newParseError(i, "'|' is missing its left operand", nil)
			}
			pendingOr = i
			i++
			continue
		case '*', '+', '?', '{':
			return nil, i, newParseError(i, "quantifier without an expression", nil)
		}

		expr, j, err := p.parseElement(i)
		if err != nil {
			return nil, j, err
		}
		i = j

		if pendingOr >= 0 {
			left := exprs[len(exprs)-1]
			exprs[len(exprs)-1] = NewOr(left, expr)
			pendingOr = -1
			continue
		}
		exprs = append(exprs, expr)
	}

	if pendingOr >= 0 {
		return nil, i, newParseError(pendingOr, "'|' is missing its right operand", nil)
	}
	return exprs, i, nil
}

// parseElement parses a group, literal or anchor followed by any number of
// quantifiers.
func (p *parser[E]) parseElement(i int) (Expression[E], int, error) {
	var (
		expr Expression[E]
		j    int
		err  error
	)

	switch p.re[i] {
	case '(':
		expr, j, err = p.parseGroup(i)
	case '<', '[':
		expr, j, err = p.parseLiteral(i)
	case '^':
		expr, j = NewStartAssertion[E](), i+1
	case '$':
		expr, j = NewEndAssertion[E](), i+1
	default:
		return nil, i, newParseError(i, "unknown symbol "+strconv.QuoteRune(rune(p.re[i])), nil)
	}
	if err != nil {
		return nil, j, err
	}

	for {
		k := p.skipSpace(j)
		if k >= len(p.re) {
			return expr, j, nil
		}

		switch p.re[k] {
		case '*':
			expr, j = NewStar(expr), k+1
		case '+':
			expr, j = NewPlus(expr), k+1
		case '?':
			expr, j = NewOption(expr), k+1
		case '{':
			mi, ma, cons, err := parseMinMax(p.re, k)
			if err != nil {
				return nil, k, err
			}
			mm, err := NewMinMax(expr, mi, ma)
			if err != nil {
				return nil, k, newParseError(k, "invalid repetition", err)
			}
			expr, j = mm, k+cons
		default:
			return expr, j, nil
		}
	}
}

// (...), (<name>:...) and (?:...)
func (p *parser[E]) parseGroup(i int) (Expression[E], int, error) {
	// pop off '('
	j := i + 1

	if strings.HasPrefix(p.re[j:], "?:") {
		exprs, k, err := p.parseSequence(j+2, true)
		if err != nil {
			return nil, k, err
		}
		return NewNonMatchingGroup(exprs...), k, nil
	}

	if name, cons, ok := parseGroupName(p.re, j); ok {
		exprs, k, err := p.parseSequence(j+cons, true)
		if err != nil {
			return nil, k, err
		}
		return NewNamedGroup(name, exprs...), k, nil
	}

	exprs, k, err := p.parseSequence(j, true)
	if err != nil {
		return nil, k, err
	}
	return NewGroup(exprs...), k, nil
}

// <name>: at the start of a group, name consists of word characters only
func parseGroupName(re string, i int) (string, int, bool) {
	if i >= len(re) || re[i] != '<' {
		return "", 0, false
	}

	j := i + 1
	for j < len(re) && isWordByte(re[j]) {
		j++
	}

	if j+1 >= len(re) || re[j] != '>' || re[j+1] != ':' {
		return "", 0, false
	}
	return re[i+1 : j], j + 2 - i, true
}

func isWordByte(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

// <...> and [...]
// brackets of the same kind nest, so <a<b>c> is a single literal "a<b>c"
func (p *parser[E]) parseLiteral(i int) (Expression[E], int, error) {
	open := p.re[i]
	closing := byte('>')
	if open == '[' {
		closing = ']'
	}

	end := indexOfClose(p.re, i, open, closing)
	if end == -1 {
		return nil, i, newParseError(i, "bad token, non-matching brackets (<> or [])", nil)
	}

	source := p.re[i+1 : end]
	pred, err := p.factory(source)
	if err != nil {
		return nil, i, newParseError(i, "error parsing token "+p.re[i:end+1], err)
	}
	return NewLiteral(source, pred), end + 1, nil
}

// {m,n} and {n}
func parseMinMax(re string, i int) (mi int, ma int, consumed int, err error) {
	endIdx := strings.IndexByte(re[i:], '}')
	if endIdx == -1 {
		return 0, 0, 0, newParseError(i, "did not find closing '}'", nil)
	}

	// inside '{...}'
	inner := re[i+1 : i+endIdx]
	numStrs := strings.SplitN(inner, ",", 2)

	mi, err = strconv.Atoi(strings.TrimSpace(numStrs[0]))
	if err != nil {
		return 0, 0, 0, newParseError(i, "failed to convert to number", err)
	}

	if len(numStrs) == 1 {
		return mi, mi, endIdx + 1, nil
	}

	ma, err = strconv.Atoi(strings.TrimSpace(numStrs[1]))
	if err != nil {
		return 0, 0, 0, newParseError(i, "failed to convert to number", err)
	}
	return mi, ma, endIdx + 1, nil
}

func (p *parser[E]) skipSpace(i int) int {
	for i < len(p.re) && unicode.IsSpace(rune(p.re[i])) {
		i++
	}
	return i
}

// indexOfClose returns the index of the bracket closing the one at start,
// or -1.
func indexOfClose(s string, start int, open, closing byte) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
