// Package api provides the HTTP API for the application
package api

import (
	"sublevel/internal/platform/config"
	"sublevel/internal/platform/logger"
	phttp "sublevel/internal/platform/net/http"
	"sublevel/internal/platform/store"

	"sublevel/internal/modkit"
	"sublevel/internal/modkit/httpkit"
	"sublevel/internal/modkit/module"
	"sublevel/internal/modkit/swaggerkit"

	metamod "sublevel/internal/services/api/meta/module"
	leveldomain "sublevel/internal/services/level/domain"
	levelmod "sublevel/internal/services/level/module"
)

// Options are the API options
type Options struct {
	// Config is the root config; modules pick their own prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Level          levelmod.Options
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil && opt.Store.PG != nil {
		deps.PG = opt.Store.PG
	}

	// level owns the pipeline; meta reports on it through its port
	level := levelmod.New(deps, opt.Level)
	pipeline := module.MustPortsOf[leveldomain.ServicePort](level)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Pipeline: pipeline})),
		level,
	}

	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
