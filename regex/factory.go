package regex

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

// WordFactory builds literals over string tokens that match when the token
// equals the literal's text.
func WordFactory(source string) (Predicate[string], error) {
	return func(token string) bool {
		return token == source
	}, nil
}

// ParseWords parses a pattern over words, e.g. "<the> <big>? <dog>".
func ParseWords(pattern string) (*Regex[string], error) {
	return Parse(pattern, WordFactory)
}

// ParseRunes parses a pattern over characters, e.g. "<a> <\d>+ <[:alpha:]>".
func ParseRunes(pattern string) (*Regex[rune], error) {
	return Parse(pattern, RuneFactory)
}

var errInvalidRuneLiteral = errors.New("invalid character literal")

// RuneFactory builds literals over rune tokens. The literal text may be
//
//	a           the character itself
//	a-z         an inclusive range
//	.           any character but newline
//	\d \w \s    perl classes and their negations \D \W \S
//	\n \t ...   ASCII escapes, any other escaped character stands for itself
//	[:alpha:]   POSIX classes
func RuneFactory(source string) (Predicate[rune], error) {
	if source == "." {
		return func(r rune) bool { return r != '\n' }, nil
	}

	if ranges, negate, ok := perlClass(source); ok {
		return rangePredicate(ranges, negate), nil
	}

	if ranges, ok := posixClasses[source]; ok {
		return rangePredicate(ranges, false), nil
	}

	if len(source) == 2 && source[0] == '\\' {
		c := escapedChar(source[1])
		return func(r rune) bool { return r == c }, nil
	}

	switch utf8.RuneCountInString(source) {
	case 1:
		c, _ := utf8.DecodeRuneInString(source)
		return func(r rune) bool { return r == c }, nil
	case 3:
		rs := []rune(source)
		if rs[1] == '-' && rs[0] <= rs[2] {
			return rangePredicate([]runeRange{{from: rs[0], to: rs[2]}}, false), nil
		}
	}

	return nil, fmt.Errorf("%w: %q", errInvalidRuneLiteral, source)
}

type runeRange struct {
	from rune
	to   rune
}

func (r runeRange) inRange(c rune) bool {
	return c >= r.from && c <= r.to
}

func rangePredicate(ranges []runeRange, negate bool) Predicate[rune] {
	return func(c rune) bool {
		return slices.ContainsFunc(ranges, func(r runeRange) bool { return r.inRange(c) }) != negate
	}
}

var (
	wordRanges = []runeRange{
		{from: 'a', to: 'z'},
		{from: 'A', to: 'Z'},
		{from: '0', to: '9'},
		{from: '_', to: '_'},
	}
	digitRanges = []runeRange{
		{from: '0', to: '9'},
	}
	spaceRanges = []runeRange{
		{from: ' ', to: ' '},
		{from: '\t', to: '\r'}, // \t \n \v \f \r
	}
)

// supported: \w, \W, \d, \D, \s, \S
func perlClass(s string) ([]runeRange, bool, bool) {
	switch s {
	case `\w`, `\W`:
		return wordRanges, s == `\W`, true
	case `\d`, `\D`:
		return digitRanges, s == `\D`, true
	case `\s`, `\S`:
		return spaceRanges, s == `\S`, true
	}
	return nil, false, false
}

var posixClasses = map[string][]runeRange{
	"[:word:]": wordRanges,
	"[:alnum:]": {
		{from: 'a', to: 'z'},
		{from: 'A', to: 'Z'},
		{from: '0', to: '9'},
	},
	"[:alpha:]": {
		{from: 'a', to: 'z'},
		{from: 'A', to: 'Z'},
	},
	"[:ascii:]": {
		{from: 0x0, to: 0x7f},
	},
	"[:blank:]": {
		{from: ' ', to: ' '},
		{from: '\t', to: '\t'},
	},
	"[:cntrl:]": {
		{from: 0x0, to: 0x1f},
		{from: 0x7f, to: 0x7f},
	},
	"[:digit:]": digitRanges,
	"[:graph:]": {
		{from: 0x21, to: 0x7e},
	},
	"[:lower:]": {
		{from: 'a', to: 'z'},
	},
	"[:print:]": {
		{from: 0x20, to: 0x7e},
	},
	"[:punct:]": {
		{from: '!', to: '/'},
		{from: ':', to: '@'},
		{from: '[', to: '`'},
		{from: '{', to: '~'},
	},
	"[:space:]": spaceRanges,
	"[:upper:]": {
		{from: 'A', to: 'Z'},
	},
	"[:xdigit:]": {
		{from: 'A', to: 'F'},
		{from: 'a', to: 'f'},
		{from: '0', to: '9'},
	},
}

// escapedChar resolves ASCII escape sequences like 't' in "\t"; any other
// character stands for itself
// https://en.wikipedia.org/wiki/Escape_sequences_in_C
func escapedChar(c byte) rune {
	switch c {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'e':
		return 0x1b
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	}
	return rune(c)
}
