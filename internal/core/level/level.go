// Package level turns a model prediction into a CEFR label and a short vocabulary summary
package level

import (
	"context"
	"math"
	"sort"

	"sublevel/internal/core/annotate"
	"sublevel/internal/core/features"
	"sublevel/internal/core/lengths"
	"sublevel/internal/core/vocab"
)

// Predictor is the external level model. It returns a continuous level on the
// rank scale (1 = A1 .. 6 = C2)
type Predictor interface {
	Predict(ctx context.Context, rec *features.Record) (float64, error)
}

// Label renders a prediction:
// at or above the schema top -> "C1+" / "C2+";
// fractional part in [0.2, 0.5) -> "B1+";
// in [0.5, 0.8) -> "B1+/B2";
// otherwise the nearest level
func Label(pred float64, schema vocab.Schema) string {
	levels := schema.Levels()
	top := float64(len(levels))
	if math.IsNaN(pred) || pred < 1 {
		return levels[0].String()
	}
	if pred >= top {
		return levels[len(levels)-1].String() + "+"
	}
	floor := math.Floor(pred)
	frac := pred - floor
	lo := levels[int(floor)-1]
	switch {
	case frac >= 0.2 && frac < 0.5:
		return lo.String() + "+"
	case frac >= 0.5 && frac < 0.8:
		return lo.String() + "+/" + levels[int(floor)].String()
	default:
		return Nearest(pred, schema).String()
	}
}

// Nearest rounds pred to a level of the schema
func Nearest(pred float64, schema vocab.Schema) vocab.Level {
	levels := schema.Levels()
	i := int(math.Round(pred))
	if i < 1 {
		i = 1
	}
	if i > len(levels) {
		i = len(levels)
	}
	return levels[i-1]
}

// Band groups words by length
type Band struct {
	Short  []string `json:"short"`
	Medium []string `json:"medium"`
	Long   []string `json:"long"`
}

func band(words []string) Band {
	s, m, l := lengths.Band(words)
	return Band{Short: s, Medium: m, Long: l}
}

// Summary lists the document's leveled words at or below and above a level
type Summary struct {
	Level vocab.Level `json:"level"`
	Known Band        `json:"known"`
	Hard  Band        `json:"hard"`
}

// Summarize splits the unique lemmas found in v around lv; words are sorted
func Summarize(ann annotate.Annotation, v *vocab.Vocabulary, lv vocab.Level) Summary {
	var known, hard []string
	for _, w := range ann.Unique() {
		wl, ok := v.LevelOf(w)
		if !ok {
			continue
		}
		if wl <= lv {
			known = append(known, w)
		} else {
			hard = append(hard, w)
		}
	}
	sort.Strings(known)
	sort.Strings(hard)
	return Summary{Level: lv, Known: band(known), Hard: band(hard)}
}

// Estimate is a labeled prediction
type Estimate struct {
	Prediction float64  `json:"prediction"`
	Label      string   `json:"label"`
	Summary    *Summary `json:"summary,omitempty"`
}
