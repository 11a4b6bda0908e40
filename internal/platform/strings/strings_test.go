package strings

import (
	"slices"
	"testing"

	kit "sublevel/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	methods := []string{"GET", "POST"}
	if got := IfEmpty(nil, methods); !slices.Equal(got, methods) {
		t.Fatalf("nil input: %v", got)
	}
	if got := IfEmpty([]string{"OPTIONS"}, methods); !slices.Equal(got, []string{"OPTIONS"}) {
		t.Fatalf("set input replaced: %v", got)
	}
}

func TestMustString(t *testing.T) {
	if MustString("level", "module name") != "level" {
		t.Fatalf("value changed")
	}
	kit.MustPanic(t, func() { MustString(" \t", "module name") })
}

func TestMustPrefix(t *testing.T) {
	for in, want := range map[string]string{"/level/": "/level", " meta ": "/meta", "//level//": "/level"} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", " // "} {
		kit.MustPanic(t, func() { MustPrefix(in) })
	}
}
