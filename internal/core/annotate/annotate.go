// Package annotate runs the NLP tagger over a document and keeps only the tokens
// that say something about vocabulary difficulty
package annotate

import (
	"context"
	"strings"

	"sublevel/internal/core/nlp"
	"sublevel/internal/core/stats"
)

// Annotation is the filtered lemma stream of one document
type Annotation struct {
	Lemmas          []string `json:"lemmas"`
	POS             []string `json:"pos"`
	SentenceLengths []int    `json:"sentence_lengths"`
}

// Joined returns the lemmas separated by single spaces
func (a Annotation) Joined() string { return strings.Join(a.Lemmas, " ") }

// Unique returns the distinct lemmas in first-seen order
func (a Annotation) Unique() []string {
	seen := make(map[string]struct{}, len(a.Lemmas))
	out := make([]string, 0, len(a.Lemmas))
	for _, l := range a.Lemmas {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

// SentenceMedian is the median sentence length in tokens
func (a Annotation) SentenceMedian() float64 { return stats.Mediani(a.SentenceLengths) }

// Keep reports whether a token carries lexical signal
func Keep(t nlp.Token) bool {
	text := t.Text
	switch {
	case t.Entity,
		strings.TrimSpace(t.Lemma) == "",
		IsPunct(text),
		IsCurrency(text),
		IsDigit(text),
		IsSpace(text),
		IsStop(text),
		LikeNum(text),
		LikeURL(text),
		LikeEmail(text):
		return false
	}
	return true
}

// Annotator applies a Tagger and the Keep filter
type Annotator struct {
	tagger nlp.Tagger
}

// New returns an Annotator over t
func New(t nlp.Tagger) *Annotator { return &Annotator{tagger: t} }

// Annotate tags each line on its own; a line is never merged with its neighbour,
// so sentence lengths follow cue boundaries. Hyphens are removed before tagging
func (a *Annotator) Annotate(ctx context.Context, lines []string) (Annotation, error) {
	var out Annotation
	for _, line := range lines {
		line = strings.ReplaceAll(line, "-", "")
		if strings.TrimSpace(line) == "" {
			continue
		}
		an, err := a.tagger.Annotate(ctx, line)
		if err != nil {
			return Annotation{}, err
		}
		for _, s := range an.Sentences {
			out.SentenceLengths = append(out.SentenceLengths, s.Len())
		}
		for _, t := range an.Tokens {
			if !Keep(t) {
				continue
			}
			out.Lemmas = append(out.Lemmas, strings.ToLower(t.Lemma))
			out.POS = append(out.POS, t.POS)
		}
	}
	return out, nil
}
