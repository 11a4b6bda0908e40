package nlp

import (
	"context"
	"strings"
	"unicode"
)

// SimpleTagger splits on whitespace and peels punctuation off word edges.
// It tags only punctuation and numbers; every other token is "X".
// Deterministic, used in tests and when no statistical model is wanted
type SimpleTagger struct {
	lem Lemmatizer
}

// NewSimpleTagger returns a SimpleTagger; nil lem lowercases
func NewSimpleTagger(lem Lemmatizer) *SimpleTagger {
	if lem == nil {
		lem = LowerLemmatizer{}
	}
	return &SimpleTagger{lem: lem}
}

// Annotate implements Tagger
func (s *SimpleTagger) Annotate(ctx context.Context, text string) (Analysis, error) {
	var a Analysis
	if err := ctx.Err(); err != nil {
		return a, err
	}

	sent := 0
	start := 0
	var sb strings.Builder
	closeSentence := func() {
		if len(a.Tokens) > start {
			a.Sentences = append(a.Sentences, Sentence{Text: strings.TrimSpace(sb.String()), Start: start, End: len(a.Tokens)})
			sent++
		}
		start = len(a.Tokens)
		sb.Reset()
	}

	for _, field := range strings.Fields(text) {
		sb.WriteString(field)
		sb.WriteByte(' ')
		for _, piece := range splitEdges(field) {
			tok := Token{Text: piece, Sentence: sent}
			switch {
			case isPunct(piece):
				tok.Lemma, tok.Tag, tok.POS = piece, ".", "PUNCT"
			case isNumber(piece):
				tok.Lemma, tok.Tag, tok.POS = piece, "CD", "NUM"
			default:
				tok.Lemma, tok.Tag, tok.POS = s.lem.Lemma(piece), "", "X"
			}
			a.Tokens = append(a.Tokens, tok)
			if piece == "." || piece == "!" || piece == "?" {
				closeSentence()
			}
		}
	}
	closeSentence()
	return a, nil
}

// splitEdges separates leading and trailing punctuation runes into their own tokens
func splitEdges(w string) []string {
	rs := []rune(w)
	i, j := 0, len(rs)
	for i < j && unicode.IsPunct(rs[i]) {
		i++
	}
	for j > i && unicode.IsPunct(rs[j-1]) {
		j--
	}
	out := make([]string, 0, 3)
	for _, r := range rs[:i] {
		out = append(out, string(r))
	}
	if i < j {
		out = append(out, string(rs[i:j]))
	}
	for _, r := range rs[j:] {
		out = append(out, string(r))
	}
	return out
}

func isPunct(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return s != ""
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
