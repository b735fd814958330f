package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// Compress negotiates gzip or deflate encoding of responses with the client,
// based on its Accept-Encoding header.
func Compress(next http.Handler) http.Handler {
	return handlers.CompressHandler(next)
}
