// Package module wires level feature extraction into the API using modkit
package module

import (
	"context"
	"strings"

	"sublevel/internal/adapters/model"
	"sublevel/internal/core/features"
	"sublevel/internal/core/nlp"
	"sublevel/internal/core/vocab"
	modkit "sublevel/internal/modkit"
	"sublevel/internal/modkit/httpkit"
	"sublevel/internal/modkit/repokit"
	perr "sublevel/internal/platform/errors"
	"sublevel/internal/platform/net/middleware"
	str "sublevel/internal/platform/strings"
	"sublevel/internal/services/level/domain"
	levelhttp "sublevel/internal/services/level/http"
	levelrepo "sublevel/internal/services/level/repo"
	levelsvc "sublevel/internal/services/level/service"
)

// Module mounts the level routes and exposes the pipeline as its port
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   *levelsvc.Svc
	gate  middleware.AuthPort
}

// New constructs the level module. Config comes from CORE_LEVEL_*; non-zero
// overrides win. Wiring failures panic, as a server cannot run without them
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("level"), modkit.WithPrefix("/level")}, opts...)...)

	cfg := merge(FromConfig(deps.Cfg), overrides)
	svc, err := NewService(deps, cfg)
	if err != nil {
		panic(err)
	}
	if cfg.EnsureSchema {
		if err := svc.EnsureSchema(context.Background()); err != nil {
			panic(err)
		}
	}

	m := &Module{deps: deps, built: b, svc: svc}
	if len(cfg.APIKeys) > 0 {
		m.gate = httpkit.NewPortFunc(httpkit.APIKeys(cfg.APIKeys...))
		deps.Log.Info().Int("keys", len(cfg.APIKeys)).Msg("level routes require an api key")
	}
	return m
}

// NewService builds the level service from resolved options; the CLI uses it directly
func NewService(deps modkit.Deps, o Options) (*levelsvc.Svc, error) {
	schema, err := vocab.ParseSchema(o.Schema)
	if err != nil {
		return nil, err
	}

	v := o.Vocab
	if v == nil {
		if o.VocabPath == "" {
			return nil, perr.InvalidArgf("level: CORE_LEVEL_VOCAB_PATH is required")
		}
		if v, err = vocab.LoadFile(o.VocabPath); err != nil {
			return nil, err
		}
	}

	kind := nlp.Kind(strings.ToLower(o.Tagger))
	tagger := o.NLP
	if tagger == nil {
		if tagger, err = nlp.New(kind); err != nil {
			return nil, err
		}
	}

	d := levelsvc.Deps{Vocab: v, Tagger: tagger, Predictor: o.Predictor}
	if d.Predictor == nil && o.ModelURL != "" {
		d.Predictor = model.New(model.Options{Endpoint: o.ModelURL, APIKey: o.ModelKey, Timeout: o.ModelTimeout})
	}
	if deps.PG != nil {
		d.DB = repokit.WithBeginHooks(deps.PG, levelrepo.LocalTimeout(o.StoreTimeout))
		d.Repo = levelrepo.NewPG()
	}

	deps.Log.Info().
		Int("vocabulary", v.Len()).
		Str("schema", string(schema)).
		Str("tagger", string(kind)).
		Bool("model", d.Predictor != nil).
		Bool("store", d.DB != nil).
		Msg("level pipeline ready")

	return levelsvc.New(d, levelsvc.Config{
		Options: features.Options{
			Schema:         schema,
			EnablePOS:      o.POS,
			EnableSentence: o.Sentences,
			EnableTiming:   o.Timing,
		},
		Workers: o.Workers,
		Tagger:  string(kind),
	}), nil
}

func merge(cfg, o Options) Options {
	if o.VocabPath != "" {
		cfg.VocabPath = o.VocabPath
	}
	if o.Schema != "" {
		cfg.Schema = o.Schema
	}
	if o.Workers != 0 {
		cfg.Workers = o.Workers
	}
	if o.Tagger != "" {
		cfg.Tagger = o.Tagger
	}
	if o.ModelURL != "" {
		cfg.ModelURL = o.ModelURL
	}
	if o.ModelKey != "" {
		cfg.ModelKey = o.ModelKey
	}
	if o.ModelTimeout != 0 {
		cfg.ModelTimeout = o.ModelTimeout
	}
	if o.StoreTimeout != 0 {
		cfg.StoreTimeout = o.StoreTimeout
	}
	if o.Vocab != nil {
		cfg.Vocab = o.Vocab
	}
	if o.NLP != nil {
		cfg.NLP = o.NLP
	}
	if o.Predictor != nil {
		cfg.Predictor = o.Predictor
	}
	if len(o.APIKeys) > 0 {
		cfg.APIKeys = o.APIKeys
	}
	return cfg
}

// Service exposes the wired service, mainly for tests and cmds
func (m *Module) Service() domain.ServicePort { return m.svc }

// Ports returns the module ports
func (m *Module) Ports() any { return domain.ServicePort(m.svc) }

// MountRoutes mounts level and any WithRegister endpoints behind the api key gate
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		httpkit.Gate(rr, m.gate, func(gr httpkit.Router) {
			levelhttp.Register(gr, m.svc)
			m.built.Register(gr)
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }
