package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgres(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  ErrorCode
	}{
		{"unique", "23505", ErrorCodeDuplicateKey},
		{"not null", "23502", ErrorCodeValidation},
		{"check", "23514", ErrorCodeValidation},
		{"truncation", "22001", ErrorCodeInvalidArgument},
		{"bad uuid text", "22P02", ErrorCodeInvalidArgument},
		{"statement timeout", "57014", ErrorCodeUnavailable},
		{"starting up", "57P03", ErrorCodeUnavailable},
		{"read only", "25006", ErrorCodeUnavailable},
		{"deadlock", "40P01", ErrorCodeDB},
		{"undefined table", "42P01", ErrorCodeDB},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tc.state})
			err := FromPostgres(src, "level: insert analysis")
			if CodeOf(err) != tc.want {
				t.Fatalf("code = %v, want %v", CodeOf(err), tc.want)
			}
			var pgErr *pgconn.PgError
			if !stderrs.As(err, &pgErr) || pgErr.Code != tc.state {
				t.Fatalf("PgError lost in %v", err)
			}
			if WireFrom(err).Message != "level: insert analysis" {
				t.Fatalf("wire message = %q", WireFrom(err).Message)
			}
		})
	}
}

func TestFromPostgres_NonPg(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatal("nil must stay nil")
	}

	ours := New(ErrorCodeDB, "store: 0 rows affected")
	if got := FromPostgres(ours, "level: insert analysis"); got != ours {
		t.Fatalf("project error rewrapped: %v", got)
	}
	if got := FromPostgres(ErrNotFound, "level: get analysis"); !IsCode(got, ErrorCodeNotFound) {
		t.Fatalf("not found code lost: %v", got)
	}

	foreign := stderrs.New("conn refused")
	got := FromPostgres(foreign, "level: recent analyses")
	if !IsCode(got, ErrorCodeDB) || !stderrs.Is(got, foreign) {
		t.Fatalf("foreign error mapping: %v", got)
	}
}
