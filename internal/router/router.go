// Package router is a thin layer over http.ServeMux that adds middleware
// chains and route groups. Patterns use the ServeMux syntax, so handlers read
// path parameters with r.PathValue.
package router

import (
	"net/http"
	"slices"
	"sync"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Router registers routes on a shared mux. Groups share the mux and the route
// table but carry their own middleware chain.
type Router struct {
	mux    *http.ServeMux
	chain  []Middleware
	routes *routeTable
}

type routeTable struct {
	mu       sync.Mutex
	patterns []string
}

// New creates a Router whose chain runs around every route, in order.
func New(middleware ...Middleware) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		chain:  middleware,
		routes: &routeTable{},
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) Get(pattern string, h http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodGet, pattern, h, mw...)
}

func (r *Router) Post(pattern string, h http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPost, pattern, h, mw...)
}

func (r *Router) Put(pattern string, h http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPut, pattern, h, mw...)
}

func (r *Router) Delete(pattern string, h http.HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodDelete, pattern, h, mw...)
}

// Handle registers h for method and pattern behind the router's chain plus mw.
// It panics on conflicting patterns, like http.ServeMux.
func (r *Router) Handle(method, pattern string, h http.Handler, mw ...Middleware) {
	full := method + " " + pattern
	r.mux.Handle(full, r.wrap(h, mw))
	r.routes.add(full)
}

// Group returns a router sharing this mux whose chain extends this one.
func (r *Router) Group(middleware ...Middleware) *Router {
	return &Router{
		mux:    r.mux,
		chain:  append(slices.Clone(r.chain), middleware...),
		routes: r.routes,
	}
}

// NotFound registers the handler for requests no other pattern matches.
func (r *Router) NotFound(h http.HandlerFunc) {
	r.mux.Handle("/", r.wrap(h, nil))
}

// Routes lists the registered "METHOD /pattern" entries in registration order.
func (r *Router) Routes() []string {
	r.routes.mu.Lock()
	defer r.routes.mu.Unlock()
	return slices.Clone(r.routes.patterns)
}

// wrap applies the chain so the first middleware is the outermost.
func (r *Router) wrap(h http.Handler, mw []Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	for i := len(r.chain) - 1; i >= 0; i-- {
		h = r.chain[i](h)
	}
	return h
}

func (t *routeTable) add(pattern string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.patterns = append(t.patterns, pattern)
}
