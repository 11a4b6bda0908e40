// Package aggregate folds a track's timed entries into one normalized document
package aggregate

import (
	"strings"

	"sublevel/internal/core/langhint"
	"sublevel/internal/core/normalize"
	"sublevel/internal/core/subtitle"
)

// Document is the joined speech text of a track plus per-line timing series.
// The three series have one value per kept line, in entry order
type Document struct {
	Content    string        `json:"content"`
	Lines      []string      `json:"lines"`
	DurationMS []float64     `json:"duration_ms"`
	CharsRate  []float64     `json:"chars_rate"`
	WordsRate  []float64     `json:"words_rate"`
	Dropped    int           `json:"dropped"`
	Invalid    int           `json:"invalid"`
	Hint       langhint.Hint `json:"hint"`
}

// Empty reports whether no line survived
func (d Document) Empty() bool { return len(d.Lines) == 0 }

// Aggregator turns entries into a Document; it holds no per-document state
type Aggregator struct {
	norm *normalize.Normalizer
}

// New returns an Aggregator using n (a fresh Normalizer when nil)
func New(n *normalize.Normalizer) *Aggregator {
	if n == nil {
		n = normalize.New()
	}
	return &Aggregator{norm: n}
}

// Aggregate normalizes each entry and keeps the ones with speech.
// Entries with non-positive duration count as Invalid; entries with no speech count as Dropped
func (a *Aggregator) Aggregate(entries []subtitle.Entry) Document {
	var (
		d Document
		b strings.Builder
	)
	for _, e := range entries {
		if !e.Valid() {
			d.Invalid++
			continue
		}
		line := a.norm.Line(e.Text)
		if line == "" {
			d.Dropped++
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(line)

		secs := e.Duration().Seconds()
		d.Lines = append(d.Lines, line)
		d.DurationMS = append(d.DurationMS, e.DurationMS())
		d.CharsRate = append(d.CharsRate, e.CharsPerSecond())
		d.WordsRate = append(d.WordsRate, float64(len(strings.Fields(line)))/secs)
	}
	d.Content = b.String()
	d.Hint = langhint.Detect(d.Content)
	return d
}
