package regex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func pairStrings[E any](m *Match[E]) []string {
	var strs []string
	for _, p := range m.Pairs() {
		strs = append(strs, p.String())
	}
	return strs
}

func TestMatchPairs(t *testing.T) {
	tests := map[string]struct {
		givenExprs  []Expression[string]
		givenTokens []string
		wantPairs   []string
	}{
		"happy literals and option": {
			givenExprs:  []Expression[string]{lit("a"), NewOption[string](lit("b")), lit("c")},
			givenTokens: words("a b c"),
			wantPairs: []string{
				"(<a> <b>? <c>):'a b c'",
				"<a>:'a'",
				"<b>?:'b'",
				"<b>:'b'",
				"<c>:'c'",
			},
		},
		"skipped option has no pair": {
			givenExprs:  []Expression[string]{lit("a"), NewOption[string](lit("b")), lit("c")},
			givenTokens: words("a c"),
			wantPairs: []string{
				"(<a> <b>? <c>):'a c'",
				"<a>:'a'",
				"<c>:'c'",
			},
		},
		"named group with plus": {
			givenExprs:  []Expression[string]{NewNamedGroup[string]("g", NewPlus[string](lit("a"))), lit("b")},
			givenTokens: words("a a b"),
			wantPairs: []string{
				"((<g>:<a>+) <b>):'a a b'",
				"(<g>:<a>+):'a a'",
				"<a>+:'a a'",
				"<a>:'a'",
				"<a>:'a'",
				"<b>:'b'",
			},
		},
		"empty named group still has a pair": {
			givenExprs:  []Expression[string]{NewNamedGroup[string]("g", NewStar[string](lit("a"))), lit("b")},
			givenTokens: words("b"),
			wantPairs: []string{
				"((<g>:<a>*) <b>):'b'",
				"(<g>:<a>*):''",
				"<b>:'b'",
			},
		},
		"bounded repetition": {
			givenExprs:  []Expression[string]{lit("a"), mustMinMax[string](t, lit("b"), 1, 3), lit("c")},
			givenTokens: words("a b b c"),
			wantPairs: []string{
				"(<a> <b>{1,3} <c>):'a b b c'",
				"<a>:'a'",
				"<b>{1,3}:'b b'",
				"<b>:'b'",
				"<b>:'b'",
				"<c>:'c'",
			},
		},
		"or keeps the taken side": {
			givenExprs:  []Expression[string]{NewOr[string](lit("a"), lit("b")), lit("c")},
			givenTokens: words("b c"),
			wantPairs: []string{
				"(<a> | <b> <c>):'b c'",
				"<a> | <b>:'b'",
				"<b>:'b'",
				"<c>:'c'",
			},
		},
		"non-matching group is a pair but not a group": {
			givenExprs:  []Expression[string]{NewNonMatchingGroup[string](lit("a"), lit("b"))},
			givenTokens: words("a b"),
			wantPairs: []string{
				"((?:<a> <b>)):'a b'",
				"(?:<a> <b>):'a b'",
				"<a>:'a'",
				"<b>:'b'",
			},
		},
		"assertions": {
			givenExprs:  []Expression[string]{NewStartAssertion[string](), lit("a"), NewEndAssertion[string]()},
			givenTokens: words("a"),
			wantPairs: []string{
				"(^ <a> $):'a'",
				"<a>:'a'",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			re := MustNew(tt.givenExprs...)

			// when
			m := re.Find(tt.givenTokens)

			// then
			if m == nil {
				t.Fatal("expected a match")
			}
			if d := cmp.Diff(tt.wantPairs, pairStrings(m)); d != "" {
				t.Errorf("diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestMatchGroups(t *testing.T) {
	re := MustNew[string](
		NewNamedGroup[string]("det", lit("the")),
		NewNonMatchingGroup[string](NewStar[string](lit("big"))),
		NewGroup[string](lit("dog")),
		NewNamedGroup[string]("tail", NewStar[string](lit("!"))),
	)
	tokens := words("see the big big dog")

	// when
	m := re.Find(tokens)

	// then
	if m == nil {
		t.Fatal("expected a match")
	}

	var gotGroups []string
	for _, g := range m.Groups() {
		gotGroups = append(gotGroups, g.String())
	}
	wantGroups := []string{
		"((<det>:<the>) (?:<big>*) (<dog>) (<tail>:<!>*)):'the big big dog'",
		"(<det>:<the>):'the'",
		"(<dog>):'dog'",
		"(<tail>:<!>*):''",
	}
	if d := cmp.Diff(wantGroups, gotGroups); d != "" {
		t.Errorf("groups diff (-want +got):\n%s", d)
	}

	if d := cmp.Diff(Range{Start: 1, End: 5}, m.Range()); d != "" {
		t.Errorf("range diff (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"the", "big", "big", "dog"}, m.Tokens()); d != "" {
		t.Errorf("tokens diff (-want +got):\n%s", d)
	}

	det := m.Group("det")
	if det == nil {
		t.Fatal("expected group det")
	}
	if d := cmp.Diff([]Token[string]{{Value: "the", Index: 1}}, det.Indexed()); d != "" {
		t.Errorf("det diff (-want +got):\n%s", d)
	}

	tail := m.Group("tail")
	if tail == nil {
		t.Fatal("expected group tail")
	}
	if d := cmp.Diff(Range{Start: -1, End: -1}, tail.Range()); d != "" {
		t.Errorf("tail range diff (-want +got):\n%s", d)
	}

	if m.Group("missing") != nil || m.Group("") != nil {
		t.Error("expected no group for unknown names")
	}
}

func TestNamedCapture(t *testing.T) {
	re := MustNew[string](NewNamedGroup[string]("g", NewPlus[string](lit("a"))), lit("b"))

	m := re.Match(words("a a b"))
	if m == nil {
		t.Fatal("expected a match")
	}

	if d := cmp.Diff([]string{"a", "a"}, m.Group("g").Tokens()); d != "" {
		t.Errorf("diff (-want +got):\n%s", d)
	}
	if d := cmp.Diff("g", m.Group("g").Name()); d != "" {
		t.Errorf("name diff (-want +got):\n%s", d)
	}
}

func TestEmptyMatch(t *testing.T) {
	re := MustNew[string](NewStar[string](lit("a")))

	m := re.Match(nil)
	if m == nil {
		t.Fatal("expected an empty match")
	}

	if !m.IsEmpty() || m.Len() != 0 {
		t.Errorf("expected an empty match, got %v", m)
	}
	if d := cmp.Diff(Range{Start: -1, End: -1}, m.Range()); d != "" {
		t.Errorf("range diff (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"(<a>*):''"}, pairStrings(m)); d != "" {
		t.Errorf("pairs diff (-want +got):\n%s", d)
	}
}

func TestRange(t *testing.T) {
	tests := map[string]struct {
		givenRange Range
		wantLen    int
		wantEmpty  bool
		wantStr    string
	}{
		"happy":    {givenRange: Range{Start: 1, End: 4}, wantLen: 3, wantStr: "[1, 4)"},
		"empty":    {givenRange: Range{Start: -1, End: -1}, wantLen: 0, wantEmpty: true, wantStr: "[-1, -1)"},
		"one wide": {givenRange: Range{Start: 0, End: 1}, wantLen: 1, wantStr: "[0, 1)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if d := cmp.Diff(tt.wantLen, tt.givenRange.Len()); d != "" {
				t.Errorf("len diff (-want +got):\n%s", d)
			}
			if d := cmp.Diff(tt.wantEmpty, tt.givenRange.IsEmpty()); d != "" {
				t.Errorf("empty diff (-want +got):\n%s", d)
			}
			if d := cmp.Diff(tt.wantStr, tt.givenRange.String()); d != "" {
				t.Errorf("string diff (-want +got):\n%s", d)
			}
		})
	}
}
