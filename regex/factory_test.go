package regex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRuneFactory(t *testing.T) {
	tests := map[string]struct {
		givenSource string
		wantAccept  []rune
		wantReject  []rune
	}{
		"single":       {givenSource: "a", wantAccept: []rune{'a'}, wantReject: []rune{'b', 'A'}},
		"multi byte":   {givenSource: "é", wantAccept: []rune{'é'}, wantReject: []rune{'e'}},
		"any":          {givenSource: ".", wantAccept: []rune{'a', ' ', 'é'}, wantReject: []rune{'\n'}},
		"range":        {givenSource: "a-z", wantAccept: []rune{'a', 'm', 'z'}, wantReject: []rune{'A', '-'}},
		"digit":        {givenSource: `\d`, wantAccept: []rune{'0', '9'}, wantReject: []rune{'a'}},
		"not digit":    {givenSource: `\D`, wantAccept: []rune{'a', ' '}, wantReject: []rune{'5'}},
		"word":         {givenSource: `\w`, wantAccept: []rune{'_', 'Z', '3'}, wantReject: []rune{'-', ' '}},
		"not word":     {givenSource: `\W`, wantAccept: []rune{'-'}, wantReject: []rune{'q'}},
		"space":        {givenSource: `\s`, wantAccept: []rune{' ', '\t', '\n'}, wantReject: []rune{'a'}},
		"not space":    {givenSource: `\S`, wantAccept: []rune{'a'}, wantReject: []rune{' '}},
		"tab escape":   {givenSource: `\t`, wantAccept: []rune{'\t'}, wantReject: []rune{'t'}},
		"escaped dot":  {givenSource: `\.`, wantAccept: []rune{'.'}, wantReject: []rune{'a'}},
		"posix upper":  {givenSource: "[:upper:]", wantAccept: []rune{'A', 'Z'}, wantReject: []rune{'a'}},
		"posix xdigit": {givenSource: "[:xdigit:]", wantAccept: []rune{'f', 'F', '0'}, wantReject: []rune{'g'}},
		"posix punct":  {givenSource: "[:punct:]", wantAccept: []rune{'!', '@', '~'}, wantReject: []rune{'a', ' '}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			pred, err := RuneFactory(tt.givenSource)

			// then
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, r := range tt.wantAccept {
				if !pred(r) {
					t.Errorf("expected %q to be accepted", r)
				}
			}
			for _, r := range tt.wantReject {
				if pred(r) {
					t.Errorf("expected %q to be rejected", r)
				}
			}
		})
	}
}

func TestRuneFactoryErrors(t *testing.T) {
	for _, source := range []string{"", "ab", "z-a", "[:nope:]", "abcd"} {
		if _, err := RuneFactory(source); err == nil {
			t.Errorf("expected an error for %q", source)
		}
	}
}

func TestParseRunesFind(t *testing.T) {
	tests := map[string]struct {
		givenPattern string
		givenInput   string
		wantRange    *Range
	}{
		"happy digits": {
			givenPattern: `<a> <\d>+`,
			givenInput:   "xa123y",
			wantRange:    &Range{Start: 1, End: 5},
		},
		"posix class": {
			givenPattern: "<[:alpha:]>+ <[:digit:]>",
			givenInput:   "--ab1",
			wantRange:    &Range{Start: 2, End: 5},
		},
		"square brackets around class": {
			givenPattern: "[[:space:]]",
			givenInput:   "a b",
			wantRange:    &Range{Start: 1, End: 2},
		},
		"anchored": {
			givenPattern: "^ <b>",
			givenInput:   "ab",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			re, err := ParseRunes(tt.givenPattern)
			if err != nil {
				t.Fatal(err)
			}

			// when
			m := re.Find([]rune(tt.givenInput))

			// then
			var got *Range
			if m != nil {
				r := m.Range()
				got = &r
			}
			if d := cmp.Diff(tt.wantRange, got); d != "" {
				t.Errorf("diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestWordFactory(t *testing.T) {
	re, err := ParseWords("<the> <big>* <dog>")
	if err != nil {
		t.Fatal(err)
	}

	m := re.Find(words("see the big big dog run"))
	if m == nil {
		t.Fatal("expected a match")
	}
	if d := cmp.Diff([]string{"the", "big", "big", "dog"}, m.Tokens()); d != "" {
		t.Errorf("diff (-want +got):\n%s", d)
	}
}
