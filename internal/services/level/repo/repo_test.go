package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"sublevel/internal/modkit/repokit"
	perr "sublevel/internal/platform/errors"

	"github.com/google/uuid"
)

type call struct {
	sql  string
	args []any
}

type tag string

func (t tag) String() string      { return string(t) }
func (t tag) RowsAffected() int64 { return 1 }

type fakeQ struct {
	calls []call
	err   error
	rows  repokit.Rows
}

func (f *fakeQ) Exec(_ context.Context, sql string, args ...any) (repokit.CommandTag, error) {
	f.calls = append(f.calls, call{sql, args})
	if f.err != nil {
		return nil, f.err
	}
	return tag("INSERT 0 1"), nil
}

func (f *fakeQ) Query(_ context.Context, sql string, args ...any) (repokit.Rows, error) {
	f.calls = append(f.calls, call{sql, args})
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeQ) QueryRow(_ context.Context, sql string, args ...any) repokit.Row {
	f.calls = append(f.calls, call{sql, args})
	return scanRow{err: f.err}
}

type scanRow struct {
	vals []any
	err  error
}

func (s scanRow) Scan(dest ...any) error {
	if s.err != nil {
		return s.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = s.vals[i].(uuid.UUID)
		case *string:
			*p = s.vals[i].(string)
		case *[]byte:
			*p = []byte(s.vals[i].(string))
		case **float64:
			if v, ok := s.vals[i].(float64); ok {
				*p = &v
			}
		case *time.Time:
			*p = s.vals[i].(time.Time)
		}
	}
	return nil
}

type fakeRows struct {
	data []scanRow
	i    int
}

func (r *fakeRows) Next() bool             { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Scan(dest ...any) error { return r.data[r.i-1].Scan(dest...) }
func (r *fakeRows) Err() error             { return nil }
func (r *fakeRows) Close()                 {}

func TestInsert_BuildsDollarPlaceholders(t *testing.T) {
	q := &fakeQ{}
	r := NewPG().Bind(q)

	p := 2.5
	id := uuid.New()
	err := r.Insert(context.Background(), Row{
		ID:         id,
		Name:       "ep1.srt",
		Schema:     "six",
		Features:   map[string]float64{"lemmas_count": 3},
		Prediction: &p,
		Label:      "A2/B1",
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(q.calls) != 1 {
		t.Fatalf("expected one exec, got %d", len(q.calls))
	}
	c := q.calls[0]
	if !strings.HasPrefix(c.sql, "INSERT INTO level_analyses") || !strings.Contains(c.sql, "$7") {
		t.Fatalf("unexpected sql %q", c.sql)
	}
	if c.args[0] != id || string(c.args[3].([]byte)) != `{"lemmas_count":3}` {
		t.Fatalf("unexpected args %#v", c.args)
	}
	if ts := c.args[6].(time.Time); ts.IsZero() {
		t.Fatalf("created_at not defaulted")
	}
}

func TestInsert_DBError(t *testing.T) {
	q := &fakeQ{err: errors.New("connection reset")}
	if err := NewPG().Bind(q).Insert(context.Background(), Row{ID: uuid.New()}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGet(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()
	q := &fakeQ{rows: &fakeRows{data: []scanRow{{vals: []any{id, "a.srt", "five", `{"A1":2}`, 1.5, "A1/A2", now}}}}}

	got, err := NewPG().Bind(q).Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != id || got.Schema != "five" || got.Features["A1"] != 2 || got.Prediction == nil || *got.Prediction != 1.5 {
		t.Fatalf("unexpected row %+v", got)
	}
	if !strings.Contains(q.calls[0].sql, "WHERE id = $1") {
		t.Fatalf("unexpected sql %q", q.calls[0].sql)
	}
}

func TestGet_NotFound(t *testing.T) {
	q := &fakeQ{rows: &fakeRows{}}
	_, err := NewPG().Bind(q).Get(context.Background(), uuid.New())
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGet_BadFeaturesJSON(t *testing.T) {
	q := &fakeQ{rows: &fakeRows{data: []scanRow{{vals: []any{uuid.New(), "", "six", `not json`, nil, "", time.Now()}}}}}
	if _, err := NewPG().Bind(q).Get(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRecent_ClampsLimit(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "LIMIT 50"},
		{-3, "LIMIT 50"},
		{500, "LIMIT 50"},
		{7, "LIMIT 7"},
	}
	for _, tc := range cases {
		q := &fakeQ{rows: &fakeRows{}}
		out, err := NewPG().Bind(q).Recent(context.Background(), tc.in)
		if err != nil {
			t.Fatalf("Recent(%d): %v", tc.in, err)
		}
		if len(out) != 0 {
			t.Fatalf("Recent(%d): expected empty, got %d", tc.in, len(out))
		}
		if !strings.Contains(q.calls[0].sql, tc.want) || !strings.Contains(q.calls[0].sql, "ORDER BY created_at desc") {
			t.Fatalf("Recent(%d): sql %q", tc.in, q.calls[0].sql)
		}
	}
}

func TestRecent_Scans(t *testing.T) {
	now := time.Now().UTC()
	q := &fakeQ{rows: &fakeRows{data: []scanRow{
		{vals: []any{uuid.New(), "a", "six", `{}`, nil, "", now}},
		{vals: []any{uuid.New(), "b", "six", `{"x":1}`, 3.0, "B1", now}},
	}}}
	out, err := NewPG().Bind(q).Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(out) != 2 || out[0].Prediction != nil || out[1].Label != "B1" {
		t.Fatalf("unexpected rows %+v", out)
	}
}

func TestEnsureSchema(t *testing.T) {
	q := &fakeQ{}
	if err := NewPG().Bind(q).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if q.calls[0].sql != Schema {
		t.Fatalf("expected schema ddl")
	}
}

func TestLocalTimeout(t *testing.T) {
	q := &fakeQ{}
	if err := LocalTimeout(1500*time.Millisecond)(context.Background(), q); err != nil {
		t.Fatalf("hook: %v", err)
	}
	if q.calls[0].sql != "set local statement_timeout = 1500" {
		t.Fatalf("unexpected sql %q", q.calls[0].sql)
	}
}
