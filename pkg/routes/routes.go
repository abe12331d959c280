// Package routes defines declarative route groups registered against a ServeMux.
package routes

import "net/http"

// Route binds an HTTP method and path pattern to a handler function.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group collects routes under a shared path prefix. Child groups nest
// beneath the parent prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route from the given groups to the mux, composing
// method, accumulated prefix, and pattern into ServeMux syntax.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", g)
	}
}

func register(mux *http.ServeMux, prefix string, g Group) {
	full := prefix + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+full+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		register(mux, full, child)
	}
}
