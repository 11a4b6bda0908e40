// Package langhint gives a coarse script reading of a text.
// The pipeline only scores English; a track whose letters are mostly non-Latin is flagged, not rejected
package langhint

import "unicode"

// Hint is the script breakdown of a text
type Hint struct {
	Script  string  `json:"script"`
	Letters int     `json:"letters"`
	Latin   float64 `json:"latin_share"`
}

// ordered so specific scripts win ties against Latin
var scripts = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"Hiragana", unicode.Hiragana},
	{"Katakana", unicode.Katakana},
	{"Hangul", unicode.Hangul},
	{"Han", unicode.Han},
	{"Arabic", unicode.Arabic},
	{"Hebrew", unicode.Hebrew},
	{"Thai", unicode.Thai},
	{"Greek", unicode.Greek},
	{"Cyrillic", unicode.Cyrillic},
	{"Devanagari", unicode.Devanagari},
	{"Latin", unicode.Latin},
}

// Detect counts letters per script and returns the predominant one ("" when there are no letters)
func Detect(s string) Hint {
	counts := make([]int, len(scripts))
	total := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		total++
		for i, sc := range scripts {
			if unicode.Is(sc.table, r) {
				counts[i]++
				break
			}
		}
	}

	h := Hint{Letters: total}
	best := 0
	for i, c := range counts {
		if c > best {
			best = c
			h.Script = scripts[i].name
		}
	}
	if total > 0 {
		h.Latin = float64(counts[len(counts)-1]) / float64(total)
	}
	return h
}

// MostlyLatin reports whether at least half of the letters are Latin
func (h Hint) MostlyLatin() bool { return h.Letters > 0 && h.Latin >= 0.5 }
