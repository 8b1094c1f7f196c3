// Package tagged matches token patterns against part-of-speech tagged
// sentences such as "The/DT/B-NP dog/NN/I-NP barks/VBZ/B-VP".
package tagged

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyToken = errors.New("empty token")

// Token is a word with its part-of-speech tag and chunk tag. Tag and Chunk
// may be empty.
type Token struct {
	Word  string
	Tag   string
	Chunk string
}

// ParseToken reads "word", "word/tag" or "word/tag/chunk". The tag and the
// chunk are split off from the right, so only the word may contain '/'
// when all three parts are present.
func ParseToken(s string) (Token, error) {
	parts := strings.Split(s, "/")

	var tok Token
	switch {
	case len(parts) >= 3:
		n := len(parts)
		tok = Token{Word: strings.Join(parts[:n-2], "/"), Tag: parts[n-2], Chunk: parts[n-1]}
	case len(parts) == 2:
		tok = Token{Word: parts[0], Tag: parts[1]}
	default:
		tok = Token{Word: parts[0]}
	}

	if tok.Word == "" {
		return Token{}, fmt.Errorf("%w: %q", ErrEmptyToken, s)
	}
	return tok, nil
}

// ParseSentence reads whitespace separated tokens.
func ParseSentence(line string) ([]Token, error) {
	fields := strings.Fields(line)
	sentence := make([]Token, 0, len(fields))
	for i, f := range fields {
		tok, err := ParseToken(f)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		sentence = append(sentence, tok)
	}
	return sentence, nil
}

// Words returns a sentence that only has words.
func Words(line string) []Token {
	fields := strings.Fields(line)
	sentence := make([]Token, len(fields))
	for i, f := range fields {
		sentence[i] = Token{Word: f}
	}
	return sentence
}

func (t Token) String() string {
	switch {
	case t.Chunk != "":
		return t.Word + "/" + t.Tag + "/" + t.Chunk
	case t.Tag != "":
		return t.Word + "/" + t.Tag
	default:
		return t.Word
	}
}
