package httpkit

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	perrs "sublevel/internal/platform/errors"
)

func reqWithAuth(h string) *http.Request {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	if h != "" {
		req.Header.Set("Authorization", h)
	}
	return req
}

func TestPort_Parse_Malformed(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(string) (string, error) {
		t.Fatalf("parser should not be called on a malformed header")
		return "", nil
	})

	for _, h := range []string{"", "Basic abc", "Bearer   \t "} {
		cid, err := p.Parse(reqWithAuth(h))
		if cid != "" {
			t.Fatalf("%q: expected empty client, got %q", h, cid)
		}
		var pe *perrs.Error
		if !errors.As(err, &pe) || pe.Code() != perrs.ErrorCodeUnauthorized {
			t.Fatalf("%q: expected unauthorized perrs error, got %#v", h, err)
		}
	}
}

func TestPort_Parse_InvalidToken(t *testing.T) {
	t.Parallel()

	calls := 0
	p := NewPortFunc(func(tok string) (string, error) {
		calls++
		if tok != "bad.token" {
			t.Fatalf("expected raw token bad.token, got %q", tok)
		}
		return "", errors.New("parse failed")
	})

	cid, err := p.Parse(reqWithAuth("Bearer bad.token"))
	if err == nil || cid != "" {
		t.Fatalf("expected error and empty client, got %q %v", cid, err)
	}
	if calls != 1 {
		t.Fatalf("expected parser called once, got %d", calls)
	}
}

func TestPort_Parse_ValidToken_CaseInsensitiveAndTrim(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(tok string) (string, error) {
		if tok != "abc123" {
			t.Fatalf("expected trimmed token abc123, got %q", tok)
		}
		return "client-1", nil
	})

	cid, err := p.Parse(reqWithAuth("   BEARER   abc123   "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cid != "client-1" {
		t.Fatalf("unexpected client %q", cid)
	}
}

func TestPort_Parse_NilParser(t *testing.T) {
	t.Parallel()

	var p Port
	if _, err := p.Parse(reqWithAuth("Bearer tok")); err == nil {
		t.Fatalf("expected error when parser is nil")
	}
}

func TestAPIKeys(t *testing.T) {
	t.Parallel()

	fn := APIKeys(" alpha ", "", "beta")
	a, err := fn("alpha")
	if err != nil || !strings.HasPrefix(a, "key-") {
		t.Fatalf("alpha: %q %v", a, err)
	}
	b, err := fn("beta")
	if err != nil || b == a {
		t.Fatalf("beta: %q %v (alpha %q)", b, err, a)
	}
	if strings.Contains(a, "alpha") {
		t.Fatalf("client id leaks the key: %q", a)
	}
	for _, bad := range []string{"", "gamma", "alph"} {
		if _, err := fn(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
	if _, err := APIKeys()("anything"); err == nil {
		t.Fatalf("empty key set accepted a token")
	}
}
