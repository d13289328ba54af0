package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BonusKind enumerates the closed set of bonus variants.
type BonusKind uint8

const (
	bonusInvalid BonusKind = iota
	BonusMultiplier
	BonusLife
	BonusComet
)

// String returns the wire name of the kind.
func (k BonusKind) String() string {
	switch k {
	case BonusMultiplier:
		return "multiplier"
	case BonusLife:
		return "life"
	case BonusComet:
		return "comet"
	default:
		return "invalid"
	}
}

// Bonus is a one-shot gameplay event. Values are built with MultiplierBonus,
// LifeBonus, CometBonus or ParseBonus; the zero value is not a valid bonus.
type Bonus struct {
	kind   BonusKind
	factor float64
	lives  int
}

// MultiplierBonus multiplies the score multiplier by factor.
func MultiplierBonus(factor float64) Bonus {
	return Bonus{kind: BonusMultiplier, factor: factor}
}

// LifeBonus adds n lives (n may be negative).
func LifeBonus(n int) Bonus {
	return Bonus{kind: BonusLife, lives: n}
}

// CometBonus duplicates the first comet.
func CometBonus() Bonus {
	return Bonus{kind: BonusComet}
}

// Kind returns the bonus variant.
func (b Bonus) Kind() BonusKind {
	return b.kind
}

// IsZero reports whether b is the invalid zero value.
func (b Bonus) IsZero() bool {
	return b.kind == bonusInvalid
}

// Factor returns the multiplier payload (multiplier bonuses only).
func (b Bonus) Factor() float64 {
	return b.factor
}

// Lives returns the life payload (life bonuses only).
func (b Bonus) Lives() int {
	return b.lives
}

// String renders the bonus in its text form: "multiplier:2", "life:1", "comet".
func (b Bonus) String() string {
	switch b.kind {
	case BonusMultiplier:
		return "multiplier:" + strconv.FormatFloat(b.factor, 'g', -1, 64)
	case BonusLife:
		return "life:" + strconv.Itoa(b.lives)
	case BonusComet:
		return "comet"
	default:
		return "invalid"
	}
}

// ParseBonus decodes the text form of a bonus. Unknown kinds and malformed
// payloads are rejected with a ConfigurationError.
func ParseBonus(text string) (Bonus, error) {
	kind, payload, hasPayload := strings.Cut(strings.TrimSpace(text), ":")

	switch kind {
	case "multiplier":
		if !hasPayload {
			return Bonus{}, bonusError(text, "multiplier needs a factor")
		}
		f, err := strconv.ParseFloat(payload, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return Bonus{}, bonusError(text, "factor must be a positive number")
		}
		return MultiplierBonus(f), nil

	case "life":
		if !hasPayload {
			return Bonus{}, bonusError(text, "life needs a count")
		}
		n, err := strconv.Atoi(payload)
		if err != nil {
			return Bonus{}, bonusError(text, "count must be an integer")
		}
		return LifeBonus(n), nil

	case "comet":
		if hasPayload {
			return Bonus{}, bonusError(text, "comet takes no payload")
		}
		return CometBonus(), nil
	}

	return Bonus{}, bonusError(text, "unknown bonus kind")
}

func bonusError(text, reason string) error {
	return &ConfigurationError{Field: "bonus", Value: text, Reason: reason}
}

// MarshalText implements encoding.TextMarshaler.
func (b Bonus) MarshalText() ([]byte, error) {
	if b.kind == bonusInvalid {
		return nil, bonusError("", "zero bonus cannot be encoded")
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so bonuses decode
// straight out of YAML and flag values.
func (b *Bonus) UnmarshalText(text []byte) error {
	parsed, err := ParseBonus(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ApplyBonus returns a new state with the bonus applied. s is not modified.
//
//   - multiplier: Multiplier is multiplied by the factor, so repeats compound.
//   - life: Lives moves by the count, without clamping.
//   - comet: a copy of Comets[0] is appended, whatever its position or flag.
func ApplyBonus(s State, b Bonus) (State, error) {
	switch b.kind {
	case BonusMultiplier:
		next := s.Clone()
		next.Multiplier *= b.factor
		return next, nil

	case BonusLife:
		next := s.Clone()
		next.Lives += b.lives
		return next, nil

	case BonusComet:
		if len(s.Comets) == 0 {
			return s, &InvariantViolation{Op: "comet bonus", Reason: "no comet to duplicate"}
		}
		next := s.Clone()
		next.Comets = append(next.Comets, next.Comets[0])
		return next, nil
	}

	return s, bonusError(fmt.Sprintf("kind %d", b.kind), "unknown bonus kind")
}
