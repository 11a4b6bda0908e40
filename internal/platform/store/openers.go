package store

import (
	"context"
	"fmt"
	"time"

	"sublevel/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pingPolicy spaces readiness pings; tests swap it for a zero wait
var pingPolicy = func(retries int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, uint64(retries-1))
}

// openPG opens the pool and waits for Postgres to answer before handing out
// the traced adapter. Readiness pings go straight to the pool, untraced.
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	pc := cfg.PG.withDefaults()

	var tracer pg.QueryTracer
	if pc.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{URL: pc.URL, MaxConns: pc.MaxConns, SlowMs: pc.SlowQueryMs}, tracer,
		func(pcfg *pgxpool.Config) {
			if cfg.AppName != "" {
				pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
			}
		})
	if err != nil {
		return nil, err
	}

	attempts := 0
	ping := func() error {
		attempts++
		pctx, cancel := context.WithTimeout(ctx, pc.PingTimeout)
		defer cancel()
		return p.Pool.Ping(pctx)
	}
	notify := func(err error, wait time.Duration) {
		s.Log.Warn().Err(err).Int("attempt", attempts).Dur("retry_in", wait).Msg("postgres not ready")
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(pingPolicy(pc.ConnectRetries), ctx), notify); err != nil {
		p.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
	}
	return newPGAdapter(p), nil
}
