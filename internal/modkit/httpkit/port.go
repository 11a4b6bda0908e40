// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	perrs "sublevel/internal/platform/errors"
)

// TokenFunc resolves a bearer token to a client id
type TokenFunc func(token string) (clientID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the client id from an Authorization Bearer token.
// It returns unauthorized when the header is missing or malformed, or when the parser fails
func (p *Port) Parse(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	if s == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	const prefix = "bearer"
	if !strings.HasPrefix(strings.ToLower(s), prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}

	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	cid, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return cid, nil
}

// APIKeys accepts any of keys. The client id is a short hash of the matched key,
// so logs can tell callers apart without leaking the key
func APIKeys(keys ...string) TokenFunc {
	var clean []string
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			clean = append(clean, k)
		}
	}
	return func(token string) (string, error) {
		ok := 0
		var hit string
		for _, k := range clean {
			if subtle.ConstantTimeCompare([]byte(token), []byte(k)) == 1 {
				ok, hit = 1, k
			}
		}
		if ok == 0 {
			return "", perrs.Unauthorizedf("unknown api key")
		}
		sum := sha256.Sum256([]byte(hit))
		return "key-" + hex.EncodeToString(sum[:4]), nil
	}
}
