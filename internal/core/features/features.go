// Package features composes the per-document pipeline:
// aggregate -> annotate -> coverage -> lengths -> one Record.
// A Pipeline holds only read-only dependencies and may be shared by goroutines
package features

import (
	"context"

	"sublevel/internal/core/aggregate"
	"sublevel/internal/core/annotate"
	"sublevel/internal/core/coverage"
	"sublevel/internal/core/lengths"
	"sublevel/internal/core/nlp"
	"sublevel/internal/core/stats"
	"sublevel/internal/core/subtitle"
	"sublevel/internal/core/vocab"
	perr "sublevel/internal/platform/errors"
	"sublevel/internal/platform/logger"
)

// Result carries the record with the intermediate artifacts callers may want to show
type Result struct {
	Record     *Record              `json:"features"`
	Document   aggregate.Document   `json:"-"`
	Annotation annotate.Annotation  `json:"-"`
	Coverage   coverage.Coverage    `json:"-"`
	Lengths    lengths.Distribution `json:"-"`
}

// Pipeline extracts features with injected vocabulary and tagger
type Pipeline struct {
	opts  Options
	vocab *vocab.Vocabulary
	agg   *aggregate.Aggregator
	ann   *annotate.Annotator
	keys  []string
}

// NewPipeline wires a Pipeline. v and t are required
func NewPipeline(v *vocab.Vocabulary, t nlp.Tagger, opts Options) (*Pipeline, error) {
	if v == nil {
		return nil, perr.InvalidArgf("features: vocabulary is required")
	}
	if t == nil {
		return nil, perr.InvalidArgf("features: tagger is required")
	}
	if opts.Schema == "" {
		opts.Schema = vocab.SixLevel
	}
	return &Pipeline{
		opts:  opts,
		vocab: v,
		agg:   aggregate.New(nil),
		ann:   annotate.New(t),
		keys:  Keys(opts),
	}, nil
}

// Options returns the pipeline options
func (p *Pipeline) Options() Options { return p.opts }

// Keys returns the record schema
func (p *Pipeline) Keys() []string { return append([]string(nil), p.keys...) }

// Extract returns the feature record of one track. A track without usable speech
// yields an all-zero record, not an error
func (p *Pipeline) Extract(ctx context.Context, entries []subtitle.Entry) (*Record, error) {
	res, err := p.Run(ctx, entries)
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// Run is Extract keeping the intermediate artifacts
func (p *Pipeline) Run(ctx context.Context, entries []subtitle.Entry) (Result, error) {
	log := logger.C(ctx)
	rec := newRecord(p.keys)

	doc := p.agg.Aggregate(entries)
	if doc.Invalid > 0 || doc.Dropped > 0 {
		log.Debug().Int("invalid", doc.Invalid).Int("dropped", doc.Dropped).Int("kept", len(doc.Lines)).Msg("entries skipped")
	}
	if doc.Empty() {
		log.Info().Int("entries", len(entries)).Msg("no speech in track, zero record")
		return Result{Record: rec, Document: doc, Coverage: coverage.Score(nil, p.vocab, p.opts.Schema), Lengths: lengths.Build(nil)}, nil
	}
	if !doc.Hint.MostlyLatin() {
		log.Warn().Str("script", doc.Hint.Script).Float64("latin_share", doc.Hint.Latin).Msg("track is mostly non-Latin")
	}

	ann, err := p.ann.Annotate(ctx, doc.Lines)
	if err != nil {
		return Result{}, perr.Wrap(err, perr.CodeOf(err), "features: annotate")
	}
	cov := coverage.Score(ann.Lemmas, p.vocab, p.opts.Schema)
	dist := lengths.Build(ann.Lemmas)

	p.fill(rec, doc, ann, cov, dist)
	return Result{Record: rec, Document: doc, Annotation: ann, Coverage: cov, Lengths: dist}, nil
}

func (p *Pipeline) fill(rec *Record, doc aggregate.Document, ann annotate.Annotation, cov coverage.Coverage, dist lengths.Distribution) {
	total := len(ann.Lemmas)
	rec.seti(KeyLemmasCount, total)
	rec.seti(KeyLemmasUnique, cov.Unique)
	rec.set(KeyLemmasUniqueRatio, stats.Ratioi(cov.Unique, total))

	for _, s := range cov.Levels {
		name := s.Level.String()
		rec.seti(name, s.Count)
		rec.set(ratio(name), s.Ratio)

		c, b, a := CoverageKey(s.Level), BelowKey(s.Level), AboveKey(s.Level)
		rec.seti(c, s.Count)
		rec.set(ratio(c), s.Dict)
		rec.seti(b, s.Below)
		rec.set(ratio(b), s.BelowRatio)
		rec.seti(a, s.Above)
		rec.set(ratio(a), s.AboveRatio)
	}
	rec.seti(KeyUnleveled, cov.Unleveled)
	rec.set(ratio(KeyUnleveled), cov.UnleveledRatio)

	for _, b := range dist.Buckets {
		eq, more, less := LenKeys(b.Len)
		rec.seti(eq, b.Equal)
		rec.set(ratio(eq), b.EqualRatio)
		rec.seti(more, b.More)
		rec.set(ratio(more), b.MoreRatio)
		rec.seti(less, b.Less)
		rec.set(ratio(less), b.LessRatio)
	}

	if p.opts.EnableTiming {
		rec.set(KeyDurationMedian, stats.Median(doc.DurationMS))
		rec.set(KeyCharsRateMedian, stats.Median(doc.CharsRate))
		rec.set(KeyWordsRateMedian, stats.Median(doc.WordsRate))
		rec.seti(KeyLinesCount, len(doc.Lines))
	}
	if p.opts.EnableSentence {
		rec.seti(KeySentsCount, len(ann.SentenceLengths))
		rec.set(KeySentsMedian, ann.SentenceMedian())
	}
	if p.opts.EnablePOS {
		counts := make(map[string]int, len(nlp.UPOS))
		for _, pos := range ann.POS {
			counts[pos]++
		}
		for _, u := range nlp.UPOS {
			rec.set(POSKey(u), stats.Ratioi(counts[u], len(ann.POS)))
		}
	}
}
