// Package http provides http transport for level feature extraction
package http

import (
	"io"
	stdhttp "net/http"
	"strconv"

	"sublevel/internal/modkit/httpkit"
	perr "sublevel/internal/platform/errors"
	"sublevel/internal/platform/net/http/bind"
	"sublevel/internal/services/level/domain"

	"github.com/go-chi/chi/v5"
)

// MaxBody caps request bodies; subtitle tracks run far below this
const MaxBody = 16 << 20

var jsonOpts = bind.JSONOptions{MaxBytes: MaxBody, DisallowUnknown: true}

// Register mounts level endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/features", h.features)
	httpkit.Post(r, "/subtitles", h.subtitles)
	httpkit.Post(r, "/estimate", h.estimate)
	httpkit.Post(r, "/batch", h.batch)
	httpkit.Get(r, "/keys", h.keys)
	httpkit.Get(r, "/pipeline", h.pipeline)
	httpkit.Get(r, "/analyses", h.recent)
	httpkit.Get(r, "/analyses/{id}", h.analysis)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /level/features Level levelFeatures
// @Summary Extract the feature record of a subtitle track
// @Tags Level
// @Accept json
// @Produce json
// @Param payload body domain.FeaturesInput true "Timed cues"
// @Success 200 {object} domain.FeaturesResult "ok"
// @Failure 400 {object} phttp.Envelope "bad input"
// @Router /level/features [post]
func (h *handlers) features(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.FeaturesInput](r, jsonOpts)
	if err != nil {
		return nil, err
	}
	return h.svc.Extract(r.Context(), in)
}

// swagger:route POST /level/subtitles Level levelSubtitles
// @Summary Extract features from a raw subtitle file (srt, vtt, ssa)
// @Tags Level
// @Accept plain
// @Produce json
// @Param name   query string false "File name, used for format detection"
// @Param format query string false "srt|vtt|ssa"
// @Param schema query string false "five|six"
// @Param save   query bool   false "Persist the analysis"
// @Success 200 {object} domain.FeaturesResult "ok"
// @Failure 422 {object} phttp.Envelope "no usable speech"
// @Router /level/subtitles [post]
func (h *handlers) subtitles(r *stdhttp.Request) (any, error) {
	defer func() { _ = r.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBody+1))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read body")
	}
	if len(body) > MaxBody {
		return nil, perr.InvalidArgf("subtitle body exceeds %d bytes", MaxBody)
	}
	q := r.URL.Query()
	save, _ := strconv.ParseBool(q.Get("save"))
	return h.svc.ExtractBytes(r.Context(), domain.RawInput{
		Name:    q.Get("name"),
		Format:  q.Get("format"),
		Body:    body,
		Options: domain.OptionsInput{Schema: q.Get("schema")},
		Save:    save,
	})
}

// swagger:route POST /level/estimate Level levelEstimate
// @Summary Extract features and estimate the CEFR level with the configured model
// @Tags Level
// @Accept json
// @Produce json
// @Param payload body domain.FeaturesInput true "Timed cues"
// @Success 200 {object} domain.EstimateResult "ok"
// @Failure 503 {object} phttp.Envelope "model not configured"
// @Router /level/estimate [post]
func (h *handlers) estimate(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.FeaturesInput](r, jsonOpts)
	if err != nil {
		return nil, err
	}
	return h.svc.Estimate(r.Context(), in)
}

// swagger:route POST /level/batch Level levelBatch
// @Summary Extract features for several tracks concurrently
// @Tags Level
// @Accept json
// @Produce json
// @Param payload body domain.BatchInput true "Tracks"
// @Success 200 {array} domain.BatchItem "ok, in input order"
// @Router /level/batch [post]
func (h *handlers) batch(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.BatchInput](r, jsonOpts)
	if err != nil {
		return nil, err
	}
	return h.svc.ExtractBatch(r.Context(), in), nil
}

// swagger:route GET /level/keys Level levelKeys
// @Summary Ordered feature keys for a schema
// @Tags Level
// @Produce json
// @Param schema query string false "five|six"
// @Success 200 {array} string "ok"
// @Router /level/keys [get]
func (h *handlers) keys(r *stdhttp.Request) (any, error) {
	in := domain.KeysInput{Options: domain.OptionsInput{Schema: r.URL.Query().Get("schema")}}
	return h.svc.Keys(in)
}

// swagger:route GET /level/pipeline Level levelPipeline
// @Summary Loaded vocabulary, tagger and options
// @Tags Level
// @Produce json
// @Success 200 {object} domain.PipelineInfo "ok"
// @Router /level/pipeline [get]
func (h *handlers) pipeline(_ *stdhttp.Request) (any, error) {
	return h.svc.Info(), nil
}

// swagger:route GET /level/analyses Level levelRecent
// @Summary Most recent stored analyses
// @Tags Level
// @Produce json
// @Param limit query int false "1..200, default 50"
// @Success 200 {array} domain.Analysis "ok"
// @Router /level/analyses [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 200 {
			return nil, perr.WithField(perr.InvalidArgf("limit must be 1..200"), "limit")
		}
		limit = n
	}
	return h.svc.Recent(r.Context(), limit)
}

// swagger:route GET /level/analyses/{id} Level levelAnalysis
// @Summary Load a stored analysis
// @Tags Level
// @Produce json
// @Param id path string true "Analysis id"
// @Success 200 {object} domain.Analysis "ok"
// @Failure 404 {object} phttp.Envelope "not found"
// @Router /level/analyses/{id} [get]
func (h *handlers) analysis(r *stdhttp.Request) (any, error) {
	return h.svc.Analysis(r.Context(), chi.URLParam(r, "id"))
}
