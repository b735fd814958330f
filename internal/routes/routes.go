// Package routes holds the route table of the site.
package routes

import (
	"net/http"

	"impractical.co/brochure/internal/handlers"
)

// Route binds a method and path to a handler. When Prefix is set, Path
// matches every path starting with it.
type Route struct {
	Method  string
	Path    string
	Prefix  bool
	Handler http.Handler
}

// Registrar is what a route table gets registered on.
type Registrar interface {
	Handle(method, path string, handler http.Handler)
	HandlePrefix(method, prefix string, handler http.Handler)
}

// Table returns every route the site serves.
func Table(h *handlers.Handlers) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/favicon.ico", Handler: http.HandlerFunc(h.Favicon)},
		{Method: http.MethodGet, Path: "/styles.css", Handler: http.HandlerFunc(h.Styles)},
		{Method: http.MethodGet, Path: "/", Handler: http.HandlerFunc(h.Index)},
		{Method: http.MethodGet, Path: "/index", Handler: http.HandlerFunc(h.Index)},
		{Method: http.MethodGet, Path: "/about", Handler: http.HandlerFunc(h.About)},
		{Method: http.MethodGet, Path: "/assets/", Prefix: true, Handler: http.HandlerFunc(h.Assets)},
	}
}

// Register registers every route of table on r.
func Register(r Registrar, table []Route) {
	for _, route := range table {
		if route.Prefix {
			r.HandlePrefix(route.Method, route.Path, route.Handler)
			continue
		}
		r.Handle(route.Method, route.Path, route.Handler)
	}
}
