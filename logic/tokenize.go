package logic

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenKind uint8

const (
	TokenArg TokenKind = iota
	TokenNot
	TokenAnd
	TokenOr
	TokenLParen
	TokenRParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenArg:
		return "arg"
	case TokenNot:
		return "!"
	case TokenAnd:
		return "&"
	case TokenOr:
		return "|"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	}
	return "?"
}

// Token is one element of an infix logic expression. Arg and Pred are only
// set for TokenArg.
type Token[E any] struct {
	Kind   TokenKind
	Offset int
	Arg    string
	Pred   Predicate[E]
}

func (t Token[E]) String() string {
	if t.Kind == TokenArg {
		return t.Arg
	}
	return t.Kind.String()
}

// operators bind tighter the lower their precedence
func (t Token[E]) precedence() int {
	switch t.Kind {
	case TokenNot:
		return 0
	case TokenAnd:
		return 1
	case TokenOr:
		return 2
	}
	return -1
}

func (t Token[E]) isOperator() bool {
	return t.Kind == TokenNot || t.Kind == TokenAnd || t.Kind == TokenOr
}

// Tokenize splits input into operators, parentheses and arguments. Every
// argument is handed to factory.
func Tokenize[E any](input string, factory ArgFactory[E]) ([]Token[E], error) {
	var tokens []Token[E]

	for i := 0; i < len(input); {
		if r, size := utf8.DecodeRuneInString(input[i:]); unicode.IsSpace(r) {
			i += size
			continue
		}

		kind := TokenArg
		switch input[i] {
		case '(':
			kind = TokenLParen
		case ')':
			kind = TokenRParen
		case '!':
			kind = TokenNot
		case '&':
			kind = TokenAnd
		case '|':
			kind = TokenOr
		}

		if kind != TokenArg {
			tokens = append(tokens, Token[E]{Kind: kind, Offset: i})
			i++
			continue
		}

		arg, end := readArg(input, i)
		pred, err := factory(arg)
		if err != nil {
			return nil, &TokenizeError{Offset: i, Message: "invalid argument " + arg, Err: err}
		}
		tokens = append(tokens, Token[E]{Kind: TokenArg, Offset: i, Arg: arg, Pred: pred})
		i = end
	}

	return tokens, nil
}

// readArg reads the argument starting at i and returns it trimmed, along
// with the index after it. It ends before '&', '|' or an unbalanced ')'.
// Quoted literals ('...', "..." and /.../) at the start of the argument or
// after '=' are read as a whole, so they may contain any of those. Other
// quote characters are ordinary.
func readArg(input string, i int) (string, int) {
	depth := 0
	j := i

loop:
	for ; j < len(input); j++ {
		switch c := input[j]; c {
		case '\'', '"', '/':
			if j > i && !strings.HasSuffix(strings.TrimRightFunc(input[i:j], unicode.IsSpace), "=") {
				continue
			}
			if end := closingQuote(input, j, c); end != -1 {
				j = end
			}
		case '(':
			depth++
		case ')':
			if depth == 0 {
				break loop
			}
			depth--
		case '&', '|':
			break loop
		}
	}

	return strings.TrimSpace(input[i:j]), j
}

// closingQuote returns the index of the quote closing the one at start.
// Backslash escapes are skipped except inside single quotes.
func closingQuote(s string, start int, quote byte) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if quote != '\'' {
				i++
			}
		case quote:
			return i
		}
	}
	return -1
}
