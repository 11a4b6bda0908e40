// Package middleware holds the HTTP middleware modules mount, as plain
// func(http.Handler) http.Handler so chi types stay inside the platform
package middleware

import (
	"net/http"
	"time"

	pstrings "sublevel/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the shape every entry of a module stack has
type Middleware = func(http.Handler) http.Handler

var (
	// RequestID propagates X-Request-Id or mints one
	RequestID Middleware = chimw.RequestID
	// RealIP trusts X-Forwarded-For and X-Real-IP
	RealIP          Middleware = chimw.RealIP
	NoCache         Middleware = chimw.NoCache
	StripSlashes    Middleware = chimw.StripSlashes
	RedirectSlashes Middleware = chimw.RedirectSlashes
)

// Timeout cancels the request context after d and answers 504 if nothing was written
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress gzips/deflates responses at level (flate levels)
func Compress(level int) Middleware { return chimw.Compress(level) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Throttle caps in-flight requests; extra ones wait in backlog up to ttl, then get 429
func Throttle(limit, backlog int, ttl time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, backlog, ttl)
}

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string // every origin when empty
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS defaults the method and header lists to what the API routes use
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-Id"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
