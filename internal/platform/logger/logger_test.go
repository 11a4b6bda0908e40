package logger

import (
	"bytes"
	"context"
	"testing"

	kit "sublevel/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" INFO ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"panic":   zerolog.PanicLevel,
		"":        zerolog.DebugLevel,
		"loud":    zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Init runs once per process, so everything touching the root lives here
func TestInit_ChildrenCarryFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "info",
		Format:       "json",
		Service:      "sublevel-test",
		Writer:       &buf,
		WithCaller:   true,
		SampleEvery:  1,
		StaticFields: map[string]string{"build": "ci"},
	})
	Init(Options{Writer: &bytes.Buffer{}}) // ignored

	ctx := WithDocument(WithRequest(context.Background(), "req-7"), "pilot.srt")
	C(ctx).Info().Msg("scored")
	Named("pipeline").Info().Msg("stage")
	C(context.Background()).Debug().Msg("below level")

	out := buf.String()
	for _, want := range []string{
		`"request_id":"req-7"`, `"document":"pilot.srt"`, `"component":"pipeline"`,
		`"service":"sublevel-test"`, `"build":"ci"`, `"caller":`, "scored",
	} {
		kit.MustContain(t, out, want)
	}
	if bytes.Contains(buf.Bytes(), []byte("below level")) {
		t.Fatalf("debug line emitted at info level")
	}
	if Named("") != Get() {
		t.Fatalf("empty component must return the root")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_COMPONENT", "api")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	got := FromEnv()
	want := Options{Level: "warn", Format: "json", Service: "sublevel", Component: "api", WithCaller: true, SampleEvery: 5}
	if got.Level != want.Level || got.Format != want.Format || got.Service != want.Service ||
		got.Component != want.Component || got.WithCaller != want.WithCaller || got.SampleEvery != want.SampleEvery {
		t.Fatalf("FromEnv = %+v, want %+v", got, want)
	}
}

func TestWith_EmptyValueKeepsContext(t *testing.T) {
	base := context.Background()
	if WithRequest(base, "") != base || WithDocument(base, "") != base {
		t.Fatalf("empty values must not wrap the context")
	}
}
