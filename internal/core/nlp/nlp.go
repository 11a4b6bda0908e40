// Package nlp adapts an English tokenizer, tagger, entity recognizer and lemmatizer
// behind a small Tagger interface. Implementations are safe for concurrent use
package nlp

import (
	"context"
	"strings"
)

// Token is one annotated token
type Token struct {
	Text     string `json:"text"`
	Lemma    string `json:"lemma"`
	Tag      string `json:"tag"` // Penn Treebank tag
	POS      string `json:"pos"` // universal POS tag
	Entity   bool   `json:"entity,omitempty"`
	Sentence int    `json:"sentence"`
}

// Sentence is a token span [Start, End) of an Analysis
type Sentence struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Len is the number of tokens in the sentence
func (s Sentence) Len() int { return s.End - s.Start }

// Analysis is the annotation of one text
type Analysis struct {
	Tokens    []Token    `json:"tokens"`
	Sentences []Sentence `json:"sentences"`
}

// Tagger annotates raw English text
type Tagger interface {
	Annotate(ctx context.Context, text string) (Analysis, error)
}

// Lemmatizer maps a word to its base form
type Lemmatizer interface {
	Lemma(word string) string
}

// LowerLemmatizer uses the lowercase word as its own lemma
type LowerLemmatizer struct{}

// Lemma implements Lemmatizer
func (LowerLemmatizer) Lemma(word string) string { return strings.ToLower(word) }

// Kind names a Tagger implementation
type Kind string

// Tagger kinds
const (
	KindProse  Kind = "prose"
	KindSimple Kind = "simple"
)

// New builds the Tagger named by kind with the golem English lemmatizer
func New(kind Kind) (Tagger, error) {
	lem, err := NewGolem()
	if err != nil {
		return nil, err
	}
	if kind == KindSimple {
		return NewSimpleTagger(lem), nil
	}
	return NewProseTagger(lem)
}
