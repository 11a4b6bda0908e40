package httpkit

import (
	"net/http"
	"testing"
)

func TestMountAPI(t *testing.T) {
	pass := func(next http.Handler) http.Handler { return next }
	cases := []struct {
		version string
		mw      []func(http.Handler) http.Handler
		prefix  string
		uses    int
	}{
		{"v1", []func(http.Handler) http.Handler{pass, pass}, "/api/v1", 1},
		{"/v2/", nil, "/api/v2", 0},
	}
	for _, tc := range cases {
		r := &fakeRouter{}
		MountAPI(r, tc.version, tc.mw, func(Router) { r.mountHits++ })
		if len(r.prefixes) != 1 || r.prefixes[0] != tc.prefix {
			t.Fatalf("%s: prefixes = %v, want [%s]", tc.version, r.prefixes, tc.prefix)
		}
		if r.useCalls != tc.uses || r.lastMWLen != len(tc.mw) || r.mountHits != 1 {
			t.Fatalf("%s: use=%d mw=%d hits=%d", tc.version, r.useCalls, r.lastMWLen, r.mountHits)
		}
	}
}
