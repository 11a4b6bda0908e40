package vocab

import (
	"strings"

	perr "sublevel/internal/platform/errors"
)

// Level is a CEFR level; the zero value is "no level"
type Level uint8

// Ordered CEFR levels
const (
	LevelNone Level = iota
	A1
	A2
	B1
	B2
	C1
	C2
)

var levelNames = [...]string{"", "A1", "A2", "B1", "B2", "C1", "C2"}

// String returns the canonical tag ("A1".."C2"), "" for LevelNone
func (l Level) String() string {
	if int(l) >= len(levelNames) {
		return ""
	}
	return levelNames[l]
}

// Rank returns the 1-based position of the level (A1=1 .. C2=6)
func (l Level) Rank() int { return int(l) }

// ParseLevel accepts tags case-insensitively ("b2", " C1 ")
func ParseLevel(s string) (Level, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i := 1; i < len(levelNames); i++ {
		if levelNames[i] == s {
			return Level(i), nil
		}
	}
	return LevelNone, perr.Newf(perr.ErrorCodeValidation, "unknown CEFR level %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Schema selects which levels take part in scoring
type Schema string

const (
	// FiveLevel scores A1..C1
	FiveLevel Schema = "five"
	// SixLevel scores A1..C2
	SixLevel Schema = "six"
)

// ParseSchema accepts "five"/"5" and "six"/"6"
func ParseSchema(s string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "five", "5", "five-level":
		return FiveLevel, nil
	case "six", "6", "six-level", "":
		return SixLevel, nil
	default:
		return "", perr.InvalidArgf("unknown level schema %q (want five|six)", s)
	}
}

// Levels returns the ordered levels of the schema
func (s Schema) Levels() []Level {
	if s == FiveLevel {
		return []Level{A1, A2, B1, B2, C1}
	}
	return []Level{A1, A2, B1, B2, C1, C2}
}

// Top returns the highest level of the schema
func (s Schema) Top() Level {
	lv := s.Levels()
	return lv[len(lv)-1]
}

// Contains reports whether l takes part in the schema
func (s Schema) Contains(l Level) bool { return l != LevelNone && l <= s.Top() }
