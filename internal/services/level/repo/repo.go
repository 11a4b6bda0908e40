// Package repo provides postgres persistence for level analyses
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sublevel/internal/modkit/repokit"
	perr "sublevel/internal/platform/errors"
	"sublevel/internal/platform/store"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Table is the analyses table name
const Table = "level_analyses"

// Schema creates the analyses table when missing
const Schema = `
create table if not exists level_analyses (
	id          uuid primary key,
	name        text not null default '',
	schema      text not null,
	features    jsonb not null,
	prediction  double precision,
	label       text not null default '',
	created_at  timestamptz not null default now()
);
create index if not exists level_analyses_created_at_idx on level_analyses (created_at desc);
`

// Repo defines the repository contract for analyses
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, row Row) error
	Get(ctx context.Context, id uuid.UUID) (Row, error)
	Recent(ctx context.Context, limit int) ([]Row, error)
}

// Row is one stored analysis
type Row struct {
	ID         uuid.UUID
	Name       string
	Schema     string
	Features   map[string]float64
	Prediction *float64
	Label      string
	CreatedAt  time.Time
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{"id", "name", "schema", "features", "prediction", "label", "created_at"}

type (
	// PG implements the Repo binder using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, Schema); err != nil {
		return perr.FromPostgres(err, "level: ensure schema")
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, row Row) error {
	fj, err := json.Marshal(row.Features)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "level: encode features")
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	sql, args, err := psql.Insert(Table).
		Columns(columns...).
		Values(row.ID, row.Name, row.Schema, fj, row.Prediction, row.Label, row.CreatedAt).
		ToSql()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "level: build insert")
	}
	if err := store.ExecOne(ctx, r.q, sql, args...); err != nil {
		return perr.FromPostgres(err, "level: insert analysis")
	}
	return nil
}

func (r *queries) Get(ctx context.Context, id uuid.UUID) (Row, error) {
	sql, args, err := psql.Select(columns...).From(Table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Row{}, perr.Wrap(err, perr.ErrorCodeDB, "level: build select")
	}
	row, err := store.One(ctx, r.q, scan, sql, args...)
	if errors.Is(err, perr.ErrNotFound) {
		return Row{}, perr.NotFoundf("analysis %s not found", id)
	}
	if err != nil {
		return Row{}, perr.FromPostgres(err, "level: get analysis")
	}
	return row, nil
}

func (r *queries) Recent(ctx context.Context, limit int) ([]Row, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	sql, args, err := psql.Select(columns...).From(Table).OrderBy("created_at desc").Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "level: build recent")
	}
	out, err := store.Many(ctx, r.q, scan, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "level: recent analyses")
	}
	return out, nil
}

// LocalTimeout bounds every statement of a transaction
func LocalTimeout(d time.Duration) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, fmt.Sprintf("set local statement_timeout = %d", d.Milliseconds()))
		return err
	}
}

func scan(s store.Row) (Row, error) {
	var (
		rr Row
		fj []byte
	)
	if err := s.Scan(&rr.ID, &rr.Name, &rr.Schema, &fj, &rr.Prediction, &rr.Label, &rr.CreatedAt); err != nil {
		return Row{}, err
	}
	if err := json.Unmarshal(fj, &rr.Features); err != nil {
		return Row{}, perr.Wrap(err, perr.ErrorCodeJSON, "level: decode features")
	}
	return rr, nil
}
