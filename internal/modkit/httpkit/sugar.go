// Package httpkit holds the routing helpers modules mount their handlers with,
// so services never import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "sublevel/internal/platform/net/http"
)

// Router is the platform router seam
type Router = phttp.Router

// Get mounts h under GET; its result is written in the response envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, call(h))
}

// Post mounts h under POST; h parses its own body
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, call(h))
}

// call adapts fn to a platform handler. A returned phttp.Response is written as is,
// any other value is wrapped in a 200 envelope and errors map through perr
func call(fn func(*http.Request) (any, error)) phttp.Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}
