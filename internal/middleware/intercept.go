package middleware

import (
	"context"
	"net/http"
	"strconv"

	"impractical.co/brochure"
)

// ErrorRenderer renders the page sent in place of an intercepted response.
type ErrorRenderer func(ctx context.Context, status int, message string) ([]byte, error)

// NotFoundMessages intercepts 404 responses only.
var NotFoundMessages = map[int]string{
	http.StatusNotFound: "Page not found",
}

// InterceptErrors replaces the body of every response whose status is a key
// of messages with the page render produces for that status and message. The
// status code and the headers set by the wrapped handler are kept, except
// Content-Length and Content-Type, which describe the new body. Responses
// with any other status pass through untouched.
func InterceptErrors(render ErrorRenderer, messages map[int]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			iw := &interceptWriter{ResponseWriter: w, messages: messages}
			next.ServeHTTP(iw, r)
			if !iw.intercepted {
				return
			}

			ctx := r.Context()
			message := messages[iw.status]
			body, err := render(ctx, iw.status, message)
			contentType := "text/html; charset=utf-8"
			if err != nil {
				brochure.Logger(ctx).ErrorContext(ctx, "error rendering error page",
					"status", iw.status, "err", err)
				body = []byte(message)
				contentType = "text/plain; charset=utf-8"
			}

			h := w.Header()
			h.Set("Content-Type", contentType)
			h.Set("Content-Length", strconv.Itoa(len(body)))
			w.WriteHeader(iw.status)
			if r.Method == http.MethodHead {
				return
			}
			if _, err := w.Write(body); err != nil {
				brochure.Logger(ctx).DebugContext(ctx, "error writing error page", "err", err)
			}
		})
	}
}

// interceptWriter passes everything through to the underlying
// http.ResponseWriter until a status listed in messages is written. From then
// on the status and body are held back for InterceptErrors to replace.
type interceptWriter struct {
	http.ResponseWriter
	messages map[int]string

	status      int
	wroteHeader bool
	intercepted bool
}

func (w *interceptWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	// 1xx responses are informational and may precede the real status
	if status >= 100 && status < 200 {
		w.ResponseWriter.WriteHeader(status)
		return
	}
	w.wroteHeader = true
	w.status = status
	if _, ok := w.messages[status]; ok {
		w.intercepted = true
		return
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *interceptWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if w.intercepted {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

func (w *interceptWriter) Flush() {
	if w.intercepted {
		return
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		if !w.wroteHeader {
			w.WriteHeader(http.StatusOK)
		}
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *interceptWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
