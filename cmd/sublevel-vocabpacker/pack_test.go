package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sublevel/internal/core/vocab"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a1.csv", "word,level\nhello,A1\nworld,A1\n")
	write(t, dir, "b/b1.json", `[{"word":"travel","level":"B1"},{"word":"World","level":"B2"}]`)
	write(t, dir, "c.yaml", "ubiquitous: C2\nfine: a2\n")
	write(t, dir, "notes.txt", "ignored")
	write(t, dir, ".git/x.csv", "ignored,A1\n")

	paths, err := findFragments(dir, filepath.Join(dir, "out.json"))
	if err != nil {
		t.Fatalf("findFragments: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("found %v", paths)
	}

	entries, rep, err := assemble(paths)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if rep.Rows != 6 || rep.Words != 5 || rep.Conflicts != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
	want := []string{"hello:A1", "world:A1", "fine:A2", "travel:B1", "ubiquitous:C2"}
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Word + ":" + e.Level.String()
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("entries = %v", got)
	}

	// the packed output loads back as a vocabulary
	b, err := json.Marshal(entries)
	if err != nil {
		t.Fatal(err)
	}
	v, err := vocab.Load(bytes.NewReader(b), vocab.FormatJSON)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if v.Len() != 5 {
		t.Fatalf("reloaded %d words", v.Len())
	}

	var buf bytes.Buffer
	rep.print(&buf)
	if !strings.Contains(buf.String(), "A1: 2") {
		t.Fatalf("summary: %s", buf.String())
	}
}

func TestAssemble_Errors(t *testing.T) {
	if _, _, err := assemble(nil); err == nil {
		t.Fatalf("expected error for no fragments")
	}
	dir := t.TempDir()
	bad := write(t, dir, "bad.csv", "word,level\nhello,Z9\n")
	if _, _, err := assemble([]string{bad}); err == nil {
		t.Fatalf("expected error for bad level")
	}
}
