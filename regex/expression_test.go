package regex

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lit(s string) *Literal[string] {
	return NewLiteral(s, func(token string) bool { return token == s })
}

func words(s string) []string {
	return strings.Fields(s)
}

func mustMinMax[E any](t *testing.T, sub Expression[E], mi, ma int) *MinMax[E] {
	t.Helper()
	mm, err := NewMinMax(sub, mi, ma)
	if err != nil {
		t.Fatalf("NewMinMax(%d, %d): %v", mi, ma, err)
	}
	return mm
}

func TestExpressionString(t *testing.T) {
	mm, _ := NewMinMax[string](lit("a"), 1, 3)

	tests := map[string]struct {
		givenExpr Expression[string]
		wantStr   string
	}{
		"literal": {
			givenExpr: lit("a"),
			wantStr:   "<a>",
		},
		"group": {
			givenExpr: NewGroup[string](lit("a"), lit("b")),
			wantStr:   "(<a> <b>)",
		},
		"named group": {
			givenExpr: NewNamedGroup[string]("g", NewPlus[string](lit("a"))),
			wantStr:   "(<g>:<a>+)",
		},
		"non-matching group": {
			givenExpr: NewNonMatchingGroup[string](lit("a")),
			wantStr:   "(?:<a>)",
		},
		"or": {
			givenExpr: NewOr[string](lit("a"), lit("b")),
			wantStr:   "<a> | <b>",
		},
		"star": {
			givenExpr: NewStar[string](lit("a")),
			wantStr:   "<a>*",
		},
		"option": {
			givenExpr: NewOption[string](lit("a")),
			wantStr:   "<a>?",
		},
		"min max": {
			givenExpr: mm,
			wantStr:   "<a>{1,3}",
		},
		"assertions": {
			givenExpr: NewGroup[string](NewStartAssertion[string](), lit("a"), NewEndAssertion[string]()),
			wantStr:   "(^ <a> $)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if d := cmp.Diff(tt.wantStr, tt.givenExpr.String()); d != "" {
				t.Errorf("diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestExpressionMinLength(t *testing.T) {
	tests := map[string]struct {
		givenExpr Expression[string]
		wantLen   int
	}{
		"literal": {
			givenExpr: lit("a"),
			wantLen:   1,
		},
		"sequence": {
			givenExpr: NewGroup[string](
				lit("a"),
				NewPlus[string](lit("b")),
				NewOption[string](lit("c")),
				mustMinMax[string](t, NewGroup[string](lit("a"), lit("b")), 2, 3),
			),
			wantLen: 6,
		},
		"or takes the shorter side": {
			givenExpr: NewOr[string](NewGroup[string](lit("a"), lit("b")), lit("c")),
			wantLen:   1,
		},
		"star": {
			givenExpr: NewStar[string](lit("a")),
			wantLen:   0,
		},
		"assertions are zero width": {
			givenExpr: NewGroup[string](NewStartAssertion[string](), NewEndAssertion[string]()),
			wantLen:   0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if d := cmp.Diff(tt.wantLen, tt.givenExpr.MinLength()); d != "" {
				t.Errorf("diff (-want +got):\n%s", d)
			}
		})
	}
}

func TestNewMinMax(t *testing.T) {
	tests := map[string]struct {
		givenMin int
		givenMax int
		wantErr  bool
	}{
		"happy zero to one": {givenMin: 0, givenMax: 1},
		"happy exact":       {givenMin: 2, givenMax: 2},
		"max zero":          {givenMin: 0, givenMax: 0, wantErr: true},
		"min above max":     {givenMin: 1, givenMax: 0, wantErr: true},
		"negative min":      {givenMin: -1, givenMax: 0, wantErr: true},
		"negative max":      {givenMin: 0, givenMax: -1, wantErr: true},
		"min above max 2":   {givenMin: 3, givenMax: 2, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// when
			mm, err := NewMinMax[string](lit("b"), tt.givenMin, tt.givenMax)

			// then
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", mm)
				}
				if !errors.Is(err, ErrInvalidBounds) {
					t.Errorf("expected ErrInvalidBounds, got %v", err)
				}
				var be *BoundsError
				if !errors.As(err, &be) || be.Min != tt.givenMin || be.Max != tt.givenMax {
					t.Errorf("expected BoundsError{%d, %d}, got %v", tt.givenMin, tt.givenMax, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gotMin, gotMax := mm.Bounds()
			if gotMin != tt.givenMin || gotMax != tt.givenMax {
				t.Errorf("Bounds() = %d, %d", gotMin, gotMax)
			}
		})
	}
}
