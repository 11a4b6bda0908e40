// Package vocab holds the leveled reference vocabulary (word -> CEFR level).
// A Vocabulary is immutable after construction and safe for concurrent readers
package vocab

import (
	"sort"
	"strings"
)

// Entry is a single (word, level) row of the reference list
type Entry struct {
	Word  string `json:"word" yaml:"word"`
	Level Level  `json:"level" yaml:"level"`
}

// Vocabulary maps lowercase base words to their CEFR level
type Vocabulary struct {
	levels  map[string]Level
	byLevel map[Level][]string
}

// New builds a Vocabulary from entries. Words are lowercased and trimmed;
// empty words and LevelNone are skipped; a duplicate word keeps its lowest level
func New(entries []Entry) *Vocabulary {
	v := &Vocabulary{
		levels:  make(map[string]Level, len(entries)),
		byLevel: make(map[Level][]string, 6),
	}
	for _, e := range entries {
		w := strings.ToLower(strings.TrimSpace(e.Word))
		if w == "" || e.Level == LevelNone {
			continue
		}
		if cur, ok := v.levels[w]; ok && cur <= e.Level {
			continue
		}
		v.levels[w] = e.Level
	}
	for w, l := range v.levels {
		v.byLevel[l] = append(v.byLevel[l], w)
	}
	for l := range v.byLevel {
		sort.Strings(v.byLevel[l])
	}
	return v
}

// LevelOf returns the level of word by exact lowercase match
func (v *Vocabulary) LevelOf(word string) (Level, bool) {
	if v == nil {
		return LevelNone, false
	}
	l, ok := v.levels[word]
	return l, ok
}

// Len returns the number of distinct words
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.levels)
}

// Size returns the number of words at exactly level l
func (v *Vocabulary) Size(l Level) int {
	if v == nil {
		return 0
	}
	return len(v.byLevel[l])
}

// SizeAtOrBelow returns the number of words at levels <= l
func (v *Vocabulary) SizeAtOrBelow(l Level) int {
	n := 0
	for x := A1; x <= l; x++ {
		n += v.Size(x)
	}
	return n
}

// SizeAbove returns the number of words at levels > l, bounded by top
func (v *Vocabulary) SizeAbove(l, top Level) int {
	n := 0
	for x := l + 1; x <= top; x++ {
		n += v.Size(x)
	}
	return n
}

// Words returns the sorted words at level l (a copy)
func (v *Vocabulary) Words(l Level) []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.byLevel[l]...)
}

// Entries returns every row sorted by level then word
func (v *Vocabulary) Entries() []Entry {
	out := make([]Entry, 0, v.Len())
	for l := A1; l <= C2; l++ {
		for _, w := range v.Words(l) {
			out = append(out, Entry{Word: w, Level: l})
		}
	}
	return out
}
