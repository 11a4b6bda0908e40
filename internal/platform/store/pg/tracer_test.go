package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	pnet "sublevel/internal/platform/net"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	cases := []struct{ in, want string }{
		{"select 1", "select 1"},
		{"\n  insert into analyses (id, report)\n\tvalues ($1, $2)\r\n", "insert into analyses (id, report) values ($1, $2)"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := compact(tc.in); got != tc.want {
			t.Fatalf("compact(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTracer_OnQuery(t *testing.T) {
	type line struct {
		Level     string  `json:"level"`
		ElapsedMS float64 `json:"elapsed_ms"`
		Slow      bool    `json:"slow"`
		SQL       string  `json:"sql"`
		Args      []any   `json:"args"`
		Error     string  `json:"error"`
		Component string  `json:"component"`
		RequestID string  `json:"request_id"`
	}
	ev := QueryEvent{
		SQL:       "select report\n  from analyses where id = $1",
		Args:      []any{"a1"},
		ElapsedUS: 2500,
		Err:       errors.New("no rows"),
	}

	cases := []struct {
		name  string
		ctx   context.Context
		slow  bool
		level string
		rid   string
	}{
		{"fast", context.Background(), false, "info", ""},
		{"slow with request", pnet.WithRequest(context.Background(), "req-7"), true, "warn", "req-7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			// the root level must not hide traced statements
			tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))
			e := ev
			e.Slow = tc.slow
			tr.OnQuery(tc.ctx, e)

			var got line
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("decode %q: %v", buf.String(), err)
			}
			if got.Level != tc.level || got.Slow != tc.slow || got.RequestID != tc.rid {
				t.Fatalf("line = %+v", got)
			}
			if got.SQL != "select report from analyses where id = $1" || got.ElapsedMS != 2.5 {
				t.Fatalf("line = %+v", got)
			}
			if got.Error != "no rows" || got.Component != "pg" || len(got.Args) != 1 || got.Args[0] != "a1" {
				t.Fatalf("line = %+v", got)
			}
		})
	}
}
