package httpkit

import (
	"sublevel/internal/platform/net/middleware"
)

// Protected groups routes under bearer auth
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// Gate mounts fn under bearer auth when p is set and openly otherwise
func Gate(r Router, p middleware.AuthPort, fn func(Router)) {
	if p == nil {
		fn(r)
		return
	}
	Protected(r, p, fn)
}
