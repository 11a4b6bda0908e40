// Package domain holds DTOs and ports for level feature extraction
package domain

import (
	"time"

	"sublevel/internal/core/features"
	"sublevel/internal/core/level"
	"sublevel/internal/core/subtitle"
	"sublevel/internal/core/vocab"
	perr "sublevel/internal/platform/errors"
)

// EntryInput is one timed subtitle cue. Broken timings are accepted and skipped by the pipeline
type EntryInput struct {
	StartMS int64  `json:"start_ms" example:"1000"`
	EndMS   int64  `json:"end_ms"   example:"2000"`
	Text    string `json:"text"     validate:"max=4000" example:"Hello world!"`
}

// OptionsInput overrides the configured feature options; nil fields keep the defaults
type OptionsInput struct {
	Schema         string `json:"schema,omitempty" validate:"omitempty,oneof=five six 5 6" example:"six"`
	EnablePOS      *bool  `json:"enable_pos,omitempty"`
	EnableSentence *bool  `json:"enable_sentence,omitempty"`
	EnableTiming   *bool  `json:"enable_timing,omitempty"`
}

// Apply merges o over base
func (o OptionsInput) Apply(base features.Options) (features.Options, error) {
	if o.Schema != "" {
		s, err := vocab.ParseSchema(o.Schema)
		if err != nil {
			return base, err
		}
		base.Schema = s
	}
	if o.EnablePOS != nil {
		base.EnablePOS = *o.EnablePOS
	}
	if o.EnableSentence != nil {
		base.EnableSentence = *o.EnableSentence
	}
	if o.EnableTiming != nil {
		base.EnableTiming = *o.EnableTiming
	}
	return base, nil
}

// FeaturesInput is a track given as JSON cues
type FeaturesInput struct {
	Name    string       `json:"name,omitempty" validate:"omitempty,max=200" example:"pilot.srt"`
	Entries []EntryInput `json:"entries"        validate:"required,min=1,max=50000,dive"`
	Options OptionsInput `json:"options"`
	Save    bool         `json:"save,omitempty"`
}

// Subtitles converts the cues to pipeline entries
func (in FeaturesInput) Subtitles() []subtitle.Entry {
	out := make([]subtitle.Entry, len(in.Entries))
	for i, e := range in.Entries {
		out[i] = subtitle.FromMillis(i+1, e.StartMS, e.EndMS, e.Text)
	}
	return out
}

// RawInput is a track given as a subtitle file body
type RawInput struct {
	Name    string
	Format  string
	Body    []byte
	Options OptionsInput
	Save    bool
}

// BatchInput is a list of tracks processed concurrently
type BatchInput struct {
	Documents []FeaturesInput `json:"documents" validate:"required,min=1,max=100,dive"`
}

// KeysInput selects the schema to list keys for
type KeysInput struct {
	Options OptionsInput `json:"options"`
}

// FeaturesResult is the extraction result of one track
type FeaturesResult struct {
	ID       string           `json:"id,omitempty" example:"5b0f0d2e-8f2a-4a55-9b1e-8c2b8f4e9d11"`
	Name     string           `json:"name,omitempty"`
	Schema   vocab.Schema     `json:"schema" example:"six"`
	Lines    int              `json:"lines" example:"812"`
	Dropped  int              `json:"dropped" example:"14"`
	Invalid  int              `json:"invalid" example:"0"`
	Script   string           `json:"script,omitempty" example:"Latin"`
	Features *features.Record `json:"features" swaggertype:"object"`
}

// EstimateResult adds a labeled model prediction
type EstimateResult struct {
	FeaturesResult
	Estimate level.Estimate `json:"estimate"`
}

// BatchItem is one slot of a batch result, in input order
type BatchItem struct {
	Index  int             `json:"index"`
	Result *FeaturesResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   perr.ErrorCode  `json:"code,omitempty"`
}

// Analysis is a persisted extraction
type Analysis struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Schema     vocab.Schema       `json:"schema"`
	Features   map[string]float64 `json:"features"`
	Prediction *float64           `json:"prediction,omitempty"`
	Label      string             `json:"label,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// PipelineInfo describes the loaded pipeline
type PipelineInfo struct {
	Schema     vocab.Schema     `json:"schema"`
	Tagger     string           `json:"tagger"`
	Vocabulary int              `json:"vocabulary"`
	ByLevel    map[string]int   `json:"by_level"`
	Options    features.Options `json:"options"`
	KeyCount   int              `json:"key_count"`
	ModelWired bool             `json:"model_wired"`
	StoreWired bool             `json:"store_wired"`
}
