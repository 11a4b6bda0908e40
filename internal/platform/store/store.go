// Package store is the optional persistence layer behind saved analyses.
// Repos see only the small SQL seam defined here; pgx stays in this package.
package store

import (
	"context"
	"errors"
	"fmt"

	"sublevel/internal/platform/logger"
)

// Store holds the backends Open enabled. The zero value has none.
type Store struct {
	Log logger.Logger
	PG  TxRunner // nil when Postgres is disabled
}

// Row is a single-row result
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set; callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement changed
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements, inside or outside a transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open a transaction. fn's error
// rolls it back; a nil return commits.
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is implemented by backends that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open applies opts and connects every backend cfg enables
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	if cfg.PG.Enabled {
		pg, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = pg
	}
	return s, nil
}

// Guard pings every backend that supports it and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.PG.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close releases every open backend
func (s *Store) Close(_ context.Context) error {
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
