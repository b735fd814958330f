// Package middleware holds the http.Handler wrappers every request passes
// through before it reaches the router.
package middleware

import (
	"net/http"
	"slices"
)

// Chain is a list of middleware applied in order: the first one sees the
// request first and the response last.
type Chain []func(http.Handler) http.Handler

func (c Chain) ThenFunc(handler http.HandlerFunc) http.Handler {
	return c.Then(handler)
}

func (c Chain) Then(handler http.Handler) http.Handler {
	for _, middleware := range slices.Backward(c) {
		handler = middleware(handler)
	}
	return handler
}
