package repokit

import (
	"context"
	"errors"
	"slices"
	"testing"

	"sublevel/internal/platform/store"
)

// logQ records statements; a tx shares the log with its runner
type logQ struct{ log *[]string }

func (q logQ) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	*q.log = append(*q.log, sql)
	return nil, nil
}

func (q logQ) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	*q.log = append(*q.log, sql)
	return nil, nil
}

func (q logQ) QueryRow(_ context.Context, sql string, _ ...any) store.Row {
	*q.log = append(*q.log, sql)
	return nil
}

type logTx struct {
	logQ
	err error
}

func (t logTx) Tx(ctx context.Context, fn func(Queryer) error) error {
	*t.log = append(*t.log, "begin")
	if err := fn(t.logQ); err != nil {
		*t.log = append(*t.log, "rollback")
		return err
	}
	*t.log = append(*t.log, "commit")
	return t.err
}

func exec(sql string) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, sql)
		return err
	}
}

func TestWithBeginHooks(t *testing.T) {
	boom := errors.New("boom")
	failing := func(context.Context, Queryer) error { return boom }

	cases := []struct {
		name  string
		hooks []BeginHook
		err   error
		want  []string
	}{
		{"no hooks", nil, nil, []string{"begin", "insert", "commit"}},
		{"in order", []BeginHook{exec("set a"), exec("set b")}, nil, []string{"begin", "set a", "set b", "insert", "commit"}},
		{"hook error skips fn", []BeginHook{exec("set a"), failing, exec("set b")}, boom, []string{"begin", "set a", "rollback"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var log []string
			tx := WithBeginHooks(logTx{logQ: logQ{log: &log}}, tc.hooks...)
			err := WithTx(context.Background(), tx, func(q Queryer) error {
				_, err := q.Exec(context.Background(), "insert")
				return err
			})
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
			if !slices.Equal(log, tc.want) {
				t.Fatalf("log = %v, want %v", log, tc.want)
			}
		})
	}
}

func TestWithBeginHooks_OutsideTx(t *testing.T) {
	var log []string
	tx := WithBeginHooks(logTx{logQ: logQ{log: &log}}, exec("set a"))
	ctx := context.Background()

	_, _ = tx.Exec(ctx, "e")
	_, _ = tx.Query(ctx, "q")
	_ = tx.QueryRow(ctx, "r")
	if !slices.Equal(log, []string{"e", "q", "r"}) {
		t.Fatalf("hooks must only run inside Tx, log = %v", log)
	}
}

func TestWithTx_RunnerError(t *testing.T) {
	var log []string
	commitErr := errors.New("commit failed")
	err := WithTx(context.Background(), logTx{logQ: logQ{log: &log}, err: commitErr}, func(Queryer) error { return nil })
	if !errors.Is(err, commitErr) {
		t.Fatalf("err = %v", err)
	}
}

func TestBindFunc(t *testing.T) {
	var log []string
	var b Binder[int] = BindFunc[int](func(q Queryer) int {
		_, _ = q.Exec(context.Background(), "bound")
		return 1
	})
	if b.Bind(logQ{log: &log}) != 1 || len(log) != 1 {
		t.Fatalf("bind did not use the queryer: %v", log)
	}
}
