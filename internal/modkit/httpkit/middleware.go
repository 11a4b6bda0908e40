package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "sublevel/internal/platform/net/http"
	"sublevel/internal/platform/net/middleware"
)

// CommonStack is the per-module baseline; level adds its api-key gate on top
// when keys are configured. Outermost first.
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.RecoverJSON,
		middleware.NoCache,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes,
		middleware.StripSlashes,
		// extraction is CPU bound; queue bursts instead of running them all at once
		middleware.Throttle(32, 256, 30*time.Second),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
