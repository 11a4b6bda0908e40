package nlp

import (
	"context"
	"strings"

	perr "sublevel/internal/platform/errors"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// NewGolem loads the English golem dictionary
func NewGolem() (Lemmatizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "nlp: load lemmatizer")
	}
	return lemmaFunc(func(w string) string { return lem.Lemma(strings.ToLower(w)) }), nil
}

type lemmaFunc func(string) string

func (f lemmaFunc) Lemma(w string) string { return f(w) }

// ProseTagger tokenizes, tags and runs entity extraction with prose.
// The prose model and the punkt sentence tokenizer are loaded once and shared
type ProseTagger struct {
	lem   Lemmatizer
	model *prose.Model
	punkt *sentences.DefaultSentenceTokenizer
}

// NewProseTagger loads the prose and punkt models and uses lem for base forms
func NewProseTagger(lem Lemmatizer) (*ProseTagger, error) {
	if lem == nil {
		lem = LowerLemmatizer{}
	}
	seed, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "nlp: load prose model")
	}
	punkt, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "nlp: load sentence model")
	}
	return &ProseTagger{lem: lem, model: seed.Model, punkt: punkt}, nil
}

// Annotate implements Tagger. The text is tagged as one document; tokens are
// assigned to punkt sentences by byte offset
func (p *ProseTagger) Annotate(ctx context.Context, text string) (Analysis, error) {
	var a Analysis
	if strings.TrimSpace(text) == "" {
		return a, nil
	}
	if err := ctx.Err(); err != nil {
		return a, err
	}

	var spans []*sentences.Sentence
	for _, s := range p.punkt.Tokenize(text) {
		if strings.TrimSpace(s.Text) != "" {
			spans = append(spans, s)
		}
	}

	doc, err := prose.NewDocument(text, prose.UsingModel(p.model), prose.WithSegmentation(false))
	if err != nil {
		return a, perr.Wrap(err, perr.ErrorCodeUnknown, "nlp: tag")
	}

	cur, si, open := 0, 0, -1
	for _, t := range doc.Tokens() {
		if i := strings.Index(text[cur:], t.Text); i >= 0 {
			cur += i
			for si+1 < len(spans) && spans[si+1].Start <= cur {
				si++
			}
			cur += len(t.Text)
		}
		if si != open || len(a.Sentences) == 0 {
			st := text
			if si < len(spans) {
				st = strings.TrimSpace(spans[si].Text)
			}
			a.Sentences = append(a.Sentences, Sentence{Text: st, Start: len(a.Tokens)})
			open = si
		}
		n := len(a.Sentences) - 1
		a.Tokens = append(a.Tokens, Token{
			Text:     t.Text,
			Lemma:    p.lem.Lemma(t.Text),
			Tag:      t.Tag,
			POS:      ToUPOS(t.Tag),
			Entity:   t.Label != "" && t.Label != "O",
			Sentence: n,
		})
		a.Sentences[n].End = len(a.Tokens)
	}
	return a, nil
}
