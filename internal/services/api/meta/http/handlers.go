// Package http serves the unauthenticated /meta endpoints: liveness,
// readiness, build info and the loaded pipeline
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"sublevel/internal/core/version"
	"sublevel/internal/modkit/httpkit"
	perr "sublevel/internal/platform/errors"
	"sublevel/internal/services/level/domain"
)

// Pinger is the optional readiness hook of a dependency
type Pinger interface{ Ping(stdctx.Context) error }

// PipelineReporter describes the loaded extraction pipeline
type PipelineReporter interface {
	Info() domain.PipelineInfo
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	Pipeline    PipelineReporter
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	for path, fn := range map[string]func(*http.Request) (any, error){
		"/health":   h.health,
		"/ready":    h.ready,
		"/version":  h.version,
		"/service":  h.service,
		"/pipeline": h.pipeline,
	} {
		httpkit.Get(r, path, fn)
	}
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"sublevel-api"`
	Started string `json:"started"  example:"2026-10-19T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-19T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-19T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"sublevel-api"`
	Started string `json:"started" example:"2026-10-19T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Started: stamp(h.deps.StartedAt), Now: stamp(time.Now())}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := []ReadyCheck{pingCheck(ctx, "pg", h.deps.PG), h.pipelineCheck()}

	// a missing store is fine; only a failing check takes the service out
	out := ReadyResponse{Status: "ok", Checks: checks, Now: stamp(time.Now())}
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			out.Status = "fail"
		case c.Status == "unknown" && out.Status == "ok":
			out.Status = "degraded"
		}
	}
	return out, nil
}

const readyTimeout = 2 * time.Second

func pingCheck(ctx stdctx.Context, name string, dep any) ReadyCheck {
	c := ReadyCheck{Name: name, Status: "skipped"}
	if dep == nil {
		return c
	}
	p, ok := dep.(Pinger)
	if !ok {
		c.Status = "unknown"
		return c
	}
	c.Status = "ok"
	if err := p.Ping(ctx); err != nil {
		c.Status, c.Error = "fail", err.Error()
	}
	return c
}

func (h *handlers) pipelineCheck() ReadyCheck {
	c := ReadyCheck{Name: "pipeline", Status: "skipped"}
	if h.deps.Pipeline == nil {
		return c
	}
	c.Status = "ok"
	if h.deps.Pipeline.Info().Vocabulary == 0 {
		c.Status, c.Error = "fail", "empty vocabulary"
	}
	return c
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt).Seconds()),
	}, nil
}

// swagger:route GET /meta/pipeline Meta metaPipeline
// @Summary Loaded vocabulary and feature options
// @Tags Meta
// @Produce json
// @Success 200 type domain.PipelineInfo ok
// @Router /meta/pipeline [get]
func (h *handlers) pipeline(_ *http.Request) (any, error) {
	if h.deps.Pipeline == nil {
		return nil, perr.Unavailablef("pipeline not mounted")
	}
	return h.deps.Pipeline.Info(), nil
}
