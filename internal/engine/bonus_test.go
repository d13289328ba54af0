package engine

import (
	"errors"
	"testing"
)

func TestApplyMultiplierCompounds(t *testing.T) {
	s := emptyField()
	s.Comets = []Comet{NewComet()}

	s, err := ApplyBonus(s, MultiplierBonus(2))
	if err != nil {
		t.Fatalf("ApplyBonus() failed: %v", err)
	}
	s, err = ApplyBonus(s, MultiplierBonus(2))
	if err != nil {
		t.Fatalf("ApplyBonus() failed: %v", err)
	}

	if s.Multiplier != 4 {
		t.Errorf("Multiplier = %v, expected 4", s.Multiplier)
	}
}

func TestApplyLifeBonus(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"gain", 3, 1, 4},
		{"lose", 3, -1, 2},
		{"no clamp below zero", 0, -2, -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := emptyField()
			s.Lives = tc.start
			next, err := ApplyBonus(s, LifeBonus(tc.delta))
			if err != nil {
				t.Fatalf("ApplyBonus() failed: %v", err)
			}
			if next.Lives != tc.want {
				t.Errorf("Lives = %d, expected %d", next.Lives, tc.want)
			}
			if s.Lives != tc.start {
				t.Error("ApplyBonus modified its input")
			}
		})
	}
}

func TestApplyCometDuplicatesFirst(t *testing.T) {
	s := emptyField()
	first := Comet{X: 100, Y: 200, VX: 1, VY: -2, R: 7, Active: true}
	s.Comets = []Comet{first}

	next, err := ApplyBonus(s, CometBonus())
	if err != nil {
		t.Fatalf("ApplyBonus() failed: %v", err)
	}

	if len(next.Comets) != 2 {
		t.Fatalf("expected 2 comets, got %d", len(next.Comets))
	}
	if next.Comets[0] != first || next.Comets[1] != first {
		t.Errorf("duplicate differs from the original: %+v", next.Comets)
	}
	if len(s.Comets) != 1 {
		t.Error("ApplyBonus modified its input")
	}
}

func TestApplyCometCopiesInactiveFirst(t *testing.T) {
	s := emptyField()
	s.Comets = []Comet{{X: 5, Y: 930, Active: false}, {X: 50, Y: 50, Active: true}}

	next, err := ApplyBonus(s, CometBonus())
	if err != nil {
		t.Fatalf("ApplyBonus() failed: %v", err)
	}
	if next.Comets[2] != s.Comets[0] {
		t.Errorf("expected a copy of comets[0], got %+v", next.Comets[2])
	}
}

func TestApplyCometWithoutComets(t *testing.T) {
	s := emptyField()

	next, err := ApplyBonus(s, CometBonus())
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected invariant violation, got %v", err)
	}
	if len(next.Comets) != 0 {
		t.Error("refused bonus must leave the state unchanged")
	}
}

func TestApplyZeroBonus(t *testing.T) {
	s := emptyField()
	if _, err := ApplyBonus(s, Bonus{}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero bonus should be a configuration error, got %v", err)
	}
}

func TestParseBonus(t *testing.T) {
	tests := []struct {
		in      string
		want    Bonus
		wantErr bool
	}{
		{"multiplier:2", MultiplierBonus(2), false},
		{"multiplier:1.5", MultiplierBonus(1.5), false},
		{" life:1 ", LifeBonus(1), false},
		{"life:-1", LifeBonus(-1), false},
		{"comet", CometBonus(), false},
		{"multiplier", Bonus{}, true},
		{"multiplier:0", Bonus{}, true},
		{"multiplier:NaN", Bonus{}, true},
		{"multiplier:abc", Bonus{}, true},
		{"life", Bonus{}, true},
		{"life:1.5", Bonus{}, true},
		{"comet:2", Bonus{}, true},
		{"shield", Bonus{}, true},
		{"", Bonus{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseBonus(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("ParseBonus(%q) error = %v, expected configuration error", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBonus(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseBonus(%q) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestBonusTextRoundTrip(t *testing.T) {
	for _, b := range []Bonus{MultiplierBonus(2), LifeBonus(1), CometBonus()} {
		text, err := b.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", b, err)
		}
		var decoded Bonus
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) failed: %v", text, err)
		}
		if decoded != b {
			t.Errorf("round trip of %v gave %v", b, decoded)
		}
	}

	if _, err := (Bonus{}).MarshalText(); err == nil {
		t.Error("zero bonus should not encode")
	}
}
