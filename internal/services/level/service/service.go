// Package service implements level feature extraction workflows
package service

import (
	"context"
	"sync"

	"sublevel/internal/core/features"
	"sublevel/internal/core/level"
	"sublevel/internal/core/nlp"
	"sublevel/internal/core/subtitle"
	"sublevel/internal/core/vocab"
	"sublevel/internal/modkit/repokit"
	perr "sublevel/internal/platform/errors"
	"sublevel/internal/platform/logger"
	pnet "sublevel/internal/platform/net"
	"sublevel/internal/services/level/domain"
	"sublevel/internal/services/level/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for level extraction
type Service interface{ domain.ServicePort }

// Config for the level service
type Config struct {
	Options features.Options
	Workers int
	Tagger  string
}

// Deps are the collaborators of the service. Predictor and DB are optional
type Deps struct {
	Vocab     *vocab.Vocabulary
	Tagger    nlp.Tagger
	Predictor level.Predictor
	DB        repokit.TxRunner
	Repo      repokit.Binder[repo.Repo]
}

// Svc implements the Service interface
type Svc struct {
	deps Deps
	cfg  Config
	repo repo.Repo

	mu        sync.Mutex
	pipelines map[features.Options]*features.Pipeline
}

// New creates a level service
func New(d Deps, cfg Config) *Svc {
	if d.Vocab == nil {
		panic("level.Service requires a vocabulary")
	}
	if d.Tagger == nil {
		panic("level.Service requires a tagger")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Options.Schema == "" {
		cfg.Options.Schema = vocab.SixLevel
	}
	s := &Svc{deps: d, cfg: cfg, pipelines: map[features.Options]*features.Pipeline{}}
	if d.DB != nil && d.Repo != nil {
		s.repo = d.Repo.Bind(d.DB)
	}
	return s
}

// EnsureSchema creates storage tables when a store is wired
func (s *Svc) EnsureSchema(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.EnsureSchema(ctx)
}

// pipeline returns the cached pipeline for the merged options
func (s *Svc) pipeline(o domain.OptionsInput) (*features.Pipeline, error) {
	opts, err := o.Apply(s.cfg.Options)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pipelines[opts]; ok {
		return p, nil
	}
	p, err := features.NewPipeline(s.deps.Vocab, s.deps.Tagger, opts)
	if err != nil {
		return nil, err
	}
	s.pipelines[opts] = p
	return p, nil
}

func (s *Svc) run(ctx context.Context, name string, entries []subtitle.Entry, o domain.OptionsInput) (domain.FeaturesResult, features.Result, error) {
	ctx = logger.WithDocument(ctx, name)
	p, err := s.pipeline(o)
	if err != nil {
		return domain.FeaturesResult{}, features.Result{}, err
	}
	res, err := p.Run(ctx, entries)
	if err != nil {
		return domain.FeaturesResult{}, features.Result{}, err
	}
	logger.C(ctx).Debug().
		Int("entries", len(entries)).
		Int("lines", len(res.Document.Lines)).
		Int("lemmas", len(res.Annotation.Lemmas)).
		Msg("features extracted")

	return domain.FeaturesResult{
		Name:     name,
		Schema:   p.Options().Schema,
		Lines:    len(res.Document.Lines),
		Dropped:  res.Document.Dropped,
		Invalid:  res.Document.Invalid,
		Script:   res.Document.Hint.Script,
		Features: res.Record,
	}, res, nil
}

// Extract computes the feature record of a JSON track
func (s *Svc) Extract(ctx context.Context, in domain.FeaturesInput) (domain.FeaturesResult, error) {
	out, _, err := s.run(ctx, in.Name, in.Subtitles(), in.Options)
	if err != nil {
		return out, err
	}
	if in.Save {
		out.ID, err = s.save(ctx, out, nil, "")
	}
	return out, err
}

// ExtractBytes decodes and parses a subtitle file then extracts its features
func (s *Svc) ExtractBytes(ctx context.Context, in domain.RawInput) (domain.FeaturesResult, error) {
	var f subtitle.Format
	if in.Format != "" {
		pf, err := subtitle.ParseFormat(in.Format)
		if err != nil {
			return domain.FeaturesResult{}, err
		}
		f = pf
	}
	entries, err := subtitle.ParseBytes(in.Name, f, in.Body)
	if err != nil {
		return domain.FeaturesResult{}, err
	}
	out, _, err := s.run(ctx, in.Name, entries, in.Options)
	if err != nil {
		return out, err
	}
	if in.Save {
		out.ID, err = s.save(ctx, out, nil, "")
	}
	return out, err
}

// Estimate extracts features and asks the external model for a level
func (s *Svc) Estimate(ctx context.Context, in domain.FeaturesInput) (domain.EstimateResult, error) {
	if s.deps.Predictor == nil {
		return domain.EstimateResult{}, perr.Unavailablef("level model is not configured")
	}
	out, res, err := s.run(ctx, in.Name, in.Subtitles(), in.Options)
	if err != nil {
		return domain.EstimateResult{}, err
	}
	if res.Document.Empty() {
		return domain.EstimateResult{}, perr.EmptyDocumentf("track %q has no usable speech", in.Name)
	}

	pred, err := s.deps.Predictor.Predict(ctx, out.Features)
	if err != nil {
		return domain.EstimateResult{}, err
	}
	summary := level.Summarize(res.Annotation, s.deps.Vocab, level.Nearest(pred, out.Schema))
	est := level.Estimate{
		Prediction: pred,
		Label:      level.Label(pred, out.Schema),
		Summary:    &summary,
	}
	if in.Save {
		if out.ID, err = s.save(ctx, out, &pred, est.Label); err != nil {
			return domain.EstimateResult{}, err
		}
	}
	return domain.EstimateResult{FeaturesResult: out, Estimate: est}, nil
}

// ExtractBatch processes independent tracks with at most Workers in flight.
// Results keep input order; one failing track does not affect the others
func (s *Svc) ExtractBatch(ctx context.Context, in domain.BatchInput) []domain.BatchItem {
	out := make([]domain.BatchItem, len(in.Documents))
	sem := make(chan struct{}, s.cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range in.Documents {
		out[i].Index = i
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			out[i].Error, out[i].Code = ctx.Err().Error(), perr.ErrorCodeUnavailable
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			r, err := s.Extract(ctx, in.Documents[i])
			if err != nil {
				out[i].Error, out[i].Code = err.Error(), perr.CodeOf(err)
				return
			}
			out[i].Result = &r
		}(i)
	}
	wg.Wait()
	return out
}

// Keys lists the record schema for the given options
func (s *Svc) Keys(in domain.KeysInput) ([]string, error) {
	p, err := s.pipeline(in.Options)
	if err != nil {
		return nil, err
	}
	return p.Keys(), nil
}

// Analysis loads a stored analysis
func (s *Svc) Analysis(ctx context.Context, id string) (domain.Analysis, error) {
	if s.repo == nil {
		return domain.Analysis{}, perr.Unavailablef("analysis store is not configured")
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Analysis{}, perr.WithField(perr.InvalidArgf("invalid analysis id %q", id), "id")
	}
	row, err := s.repo.Get(ctx, uid)
	if err != nil {
		return domain.Analysis{}, err
	}
	return toAnalysis(row), nil
}

// Recent lists the latest stored analyses
func (s *Svc) Recent(ctx context.Context, limit int) ([]domain.Analysis, error) {
	if s.repo == nil {
		return nil, perr.Unavailablef("analysis store is not configured")
	}
	rows, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Analysis, 0, len(rows))
	for _, r := range rows {
		out = append(out, toAnalysis(r))
	}
	return out, nil
}

// Info describes the loaded pipeline
func (s *Svc) Info() domain.PipelineInfo {
	by := make(map[string]int, 6)
	for _, l := range vocab.SixLevel.Levels() {
		by[l.String()] = s.deps.Vocab.Size(l)
	}
	return domain.PipelineInfo{
		Schema:     s.cfg.Options.Schema,
		Tagger:     s.cfg.Tagger,
		Vocabulary: s.deps.Vocab.Len(),
		ByLevel:    by,
		Options:    s.cfg.Options,
		KeyCount:   len(features.Keys(s.cfg.Options)),
		ModelWired: s.deps.Predictor != nil,
		StoreWired: s.repo != nil,
	}
}

func (s *Svc) save(ctx context.Context, out domain.FeaturesResult, pred *float64, label string) (string, error) {
	if s.repo == nil {
		return "", perr.Unavailablef("analysis store is not configured")
	}
	id := uuid.New()
	row := repo.Row{
		ID:         id,
		Name:       out.Name,
		Schema:     string(out.Schema),
		Features:   out.Features.Map(),
		Prediction: pred,
		Label:      label,
	}
	err := repokit.WithTx(ctx, s.deps.DB, func(q repokit.Queryer) error {
		return s.deps.Repo.Bind(q).Insert(ctx, row)
	})
	if err != nil {
		return "", err
	}
	logger.C(ctx).Info().
		Str("analysis", id.String()).
		Str("client", pnet.ClientID(ctx)).
		Str("schema", string(out.Schema)).
		Msg("analysis saved")
	return id.String(), nil
}

func toAnalysis(r repo.Row) domain.Analysis {
	return domain.Analysis{
		ID:         r.ID.String(),
		Name:       r.Name,
		Schema:     vocab.Schema(r.Schema),
		Features:   r.Features,
		Prediction: r.Prediction,
		Label:      r.Label,
		CreatedAt:  r.CreatedAt,
	}
}
