// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"sublevel/internal/core/version"
	modkit "sublevel/internal/modkit"
	"sublevel/internal/modkit/httpkit"
	str "sublevel/internal/platform/strings"

	metahttp "sublevel/internal/services/api/meta/http"
)

// Ports are the optional cross module ports meta reports on
type Ports struct {
	Pipeline metahttp.PipelineReporter
}

// Module serves health, readiness and pipeline info under /meta
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New constructs a meta module; WithPorts(Ports{...}) adds the pipeline report
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	ports, _ := b.Ports.(Ports)
	return &Module{
		built: b,
		deps: metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   time.Now(),
			PG:          deps.PG,
			Pipeline:    ports.Pipeline,
		},
	}
}

// MountRoutes mounts the meta endpoints and any WithRegister extras
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, m.deps)
		m.built.Register(rr)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Ports is empty; meta consumes ports but exports none
func (m *Module) Ports() any { return nil }
