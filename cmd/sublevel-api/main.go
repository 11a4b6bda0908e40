// @title         Sublevel API
// @version       0.1.0
// @description   CEFR feature extraction for subtitle tracks

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sublevel/internal/modkit/repokit"
	"sublevel/internal/platform/config"
	"sublevel/internal/platform/logger"
	phttp "sublevel/internal/platform/net/http"
	"sublevel/internal/platform/store"

	"sublevel/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	// the analysis store is optional; without a DBURL the API is stateless
	pgURL := pgCfg.MayString("DBURL", "")
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "sublevel-api",
			PG: store.PGConfig{
				Enabled:        pgURL != "",
				URL:            pgURL,
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:         pgCfg.MayBool("LOG_SQL", false),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 20),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 3*time.Second),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(context.Background(), st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
