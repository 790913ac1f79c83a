package http

import (
	"github.com/gorilla/mux"
)

type Router = mux.Router

// NewRouter returns a router mounted at c.Prefix which reports unmatched
// routes with an ErrorResponse in the request codec.
func NewRouter(c *Config) *Router {
	r := mux.NewRouter()
	if c.Prefix != "" {
		r = r.PathPrefix(c.Prefix).Subrouter()
	}
	r.NotFoundHandler = routeError(StatusNotFound, "route not found")
	r.MethodNotAllowedHandler = routeError(StatusMethodNotAllowed, "method not allowed")
	return r
}

func routeError(status int, msg string) Handler {
	return HandlerFunc(func(w ResponseWriter, r *Request) {
		codec, err := CodecFor(r)
		if err != nil {
			codec = CodecJson{}
		}
		Write(w, r, codec, status, ErrorResponse{Error: msg})
	})
}
