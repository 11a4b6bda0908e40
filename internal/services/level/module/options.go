package module

import (
	"time"

	"sublevel/internal/core/level"
	"sublevel/internal/core/nlp"
	"sublevel/internal/core/vocab"
	"sublevel/internal/platform/config"
)

// Options holds configuration settings for the level module
type Options struct {
	VocabPath    string
	Schema       string
	POS          bool
	Sentences    bool
	Timing       bool
	Workers      int
	Tagger       string
	ModelURL     string
	ModelKey     string
	ModelTimeout time.Duration
	EnsureSchema bool
	StoreTimeout time.Duration

	// APIKeys gates the level routes behind bearer keys when non-empty
	APIKeys []string

	// injected collaborators win over the path and kind settings
	Vocab     *vocab.Vocabulary
	NLP       nlp.Tagger
	Predictor level.Predictor
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	lc := cfg.Prefix("CORE_LEVEL_")
	return Options{
		VocabPath:    lc.MayString("VOCAB_PATH", ""),
		Schema:       lc.MayEnum("SCHEMA", "six", "five", "six", "5", "6"),
		POS:          lc.MayBool("POS", true),
		Sentences:    lc.MayBool("SENTENCES", true),
		Timing:       lc.MayBool("TIMING", true),
		Workers:      lc.MayInt("WORKERS", 4),
		Tagger:       lc.MayEnum("TAGGER", string(nlp.KindProse), string(nlp.KindProse), string(nlp.KindSimple)),
		ModelURL:     lc.MayString("MODEL_URL", ""),
		ModelKey:     lc.MayString("MODEL_KEY", ""),
		ModelTimeout: lc.MayDuration("MODEL_TIMEOUT", 15*time.Second),
		EnsureSchema: lc.MayBool("ENSURE_SCHEMA", true),
		StoreTimeout: lc.MayDuration("STORE_TIMEOUT", 5*time.Second),
		APIKeys:      lc.MayCSV("API_KEYS", nil),
	}
}
