// Package pg opens the pgx pool behind the analysis store and traces its SQL
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is the subset of pool settings the store exposes
type Config struct {
	URL      string
	MaxConns int32 // pgx default when zero
	SlowMs   int   // statements at or above this are traced at warn
}

// PG bundles the pool with the tracer the store adapter reports to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL, lets tune adjust the parsed pool config, and creates
// the pool. The pool connects lazily; Open does not wait for the server.
func Open(ctx context.Context, cfg Config, tracer QueryTracer, tune func(*pgxpool.Config)) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if tune != nil {
		tune(pcfg)
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close is safe on a nil PG or pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
