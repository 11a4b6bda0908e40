// Package coverage scores a document's unique lemmas against a leveled vocabulary.
//
// Two normalizations coexist and are reported under different names:
// Ratio divides by the document's unique lemma count, the Dict and cumulative
// ratios divide by the size of the reference vocabulary slice they cover
package coverage

import (
	"sublevel/internal/core/stats"
	"sublevel/internal/core/vocab"
)

// LevelScore is the scoring of one level
type LevelScore struct {
	Level vocab.Level `json:"level"`

	Count int     `json:"count"` // unique lemmas at exactly this level
	Ratio float64 `json:"ratio"` // Count / unique lemmas

	Dict float64 `json:"dict"` // Count / vocabulary size at this level

	Below      int     `json:"below"`       // unique lemmas at levels <= this one
	BelowRatio float64 `json:"below_ratio"` // Below / vocabulary size at levels <= this one

	Above      int     `json:"above"`       // unique lemmas at schema levels > this one
	AboveRatio float64 `json:"above_ratio"` // Above / vocabulary size at schema levels > this one
}

// Coverage is the full scoring of a document
type Coverage struct {
	Schema         vocab.Schema `json:"schema"`
	Unique         int          `json:"unique"`
	Levels         []LevelScore `json:"levels"`
	Unleveled      int          `json:"unleveled"`
	UnleveledRatio float64      `json:"unleveled_ratio"`
}

// Of returns the score of level l (zero value when l is outside the schema)
func (c Coverage) Of(l vocab.Level) LevelScore {
	for _, s := range c.Levels {
		if s.Level == l {
			return s
		}
	}
	return LevelScore{Level: l}
}

// Score counts each distinct lemma once. Lemmas absent from v, or whose level lies
// outside the schema, are unleveled
func Score(lemmas []string, v *vocab.Vocabulary, schema vocab.Schema) Coverage {
	levels := schema.Levels()
	top := schema.Top()

	counts := make(map[vocab.Level]int, len(levels))
	seen := make(map[string]struct{}, len(lemmas))
	leveled := 0
	for _, l := range lemmas {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		if lv, ok := v.LevelOf(l); ok && schema.Contains(lv) {
			counts[lv]++
			leveled++
		}
	}

	c := Coverage{
		Schema:    schema,
		Unique:    len(seen),
		Levels:    make([]LevelScore, 0, len(levels)),
		Unleveled: len(seen) - leveled,
	}
	c.UnleveledRatio = stats.Ratioi(c.Unleveled, c.Unique)

	below := 0
	for _, lv := range levels {
		below += counts[lv]
		above := leveled - below
		c.Levels = append(c.Levels, LevelScore{
			Level:      lv,
			Count:      counts[lv],
			Ratio:      stats.Ratioi(counts[lv], c.Unique),
			Dict:       stats.Ratioi(counts[lv], v.Size(lv)),
			Below:      below,
			BelowRatio: stats.Ratioi(below, v.SizeAtOrBelow(lv)),
			Above:      above,
			AboveRatio: stats.Ratioi(above, v.SizeAbove(lv, top)),
		})
	}
	return c
}
