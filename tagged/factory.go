package tagged

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/coregex"

	"github.com/mfroeh/tokre/logic"
	"github.com/mfroeh/tokre/regex"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrEmptyValue   = errors.New("empty value")
)

type field uint8

const (
	fieldWord field = iota
	fieldTag
	fieldChunk
)

var fields = map[string]field{
	"word":  fieldWord,
	"tag":   fieldTag,
	"pos":   fieldTag,
	"chunk": fieldChunk,
}

func (f field) of(t Token) string {
	switch f {
	case fieldTag:
		return t.Tag
	case fieldChunk:
		return t.Chunk
	default:
		return t.Word
	}
}

// Factory builds literal predicates from logic expressions over token
// fields, e.g. <tag=/NN.*/ & !word='dogs'>. An argument is field=value or
// just a value, which tests the word. Fields are word, tag (or pos) and
// chunk. A value is 'text', "text" with Go escapes, /regexp/ that has to
// match the whole field, or bare text.
func Factory(source string) (regex.Predicate[Token], error) {
	expr, err := logic.Parse(source, argPredicate)
	if err != nil {
		return nil, err
	}
	return expr.Apply, nil
}

// Compile parses a pattern over tagged tokens.
func Compile(pattern string) (*regex.Regex[Token], error) {
	return regex.Parse(pattern, Factory)
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *regex.Regex[Token] {
	return regex.MustParse(pattern, Factory)
}

func argPredicate(arg string) (logic.Predicate[Token], error) {
	f, value := fieldWord, arg
	if key, rest, ok := strings.Cut(arg, "="); ok && isKey(strings.TrimSpace(key)) {
		key = strings.TrimSpace(key)
		var known bool
		if f, known = fields[strings.ToLower(key)]; !known {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, key)
		}
		value = strings.TrimSpace(rest)
	}

	match, err := valueMatcher(value)
	if err != nil {
		return nil, err
	}
	return func(t Token) bool {
		return match(f.of(t))
	}, nil
}

func isKey(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func valueMatcher(value string) (func(string) bool, error) {
	if value == "" {
		return nil, ErrEmptyValue
	}

	if len(value) >= 2 && value[0] == value[len(value)-1] {
		inner := value[1 : len(value)-1]
		switch value[0] {
		case '\'':
			return equals(inner), nil
		case '"':
			s, err := strconv.Unquote(value)
			if err != nil {
				return nil, fmt.Errorf("bad string literal %s: %w", value, err)
			}
			return equals(s), nil
		case '/':
			re, err := coregex.Compile("^(?:" + strings.ReplaceAll(inner, `\/`, "/") + ")$")
			if err != nil {
				return nil, fmt.Errorf("bad regular expression %s: %w", value, err)
			}
			return fullMatch(re), nil
		}
	}

	return equals(value), nil
}

func equals(want string) func(string) bool {
	return func(got string) bool {
		return got == want
	}
}

// fullMatch reports whether re matches all of a field, checking the span of
// the match and not only that there is one.
func fullMatch(re *coregex.Regex) func(string) bool {
	return func(s string) bool {
		loc := re.FindStringIndex(s)
		return loc != nil && loc[0] == 0 && loc[1] == len(s)
	}
}
