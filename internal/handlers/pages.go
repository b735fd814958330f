// Package handlers holds the http.Handlers behind every route of the site.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"impractical.co/brochure"
	"impractical.co/brochure/internal/pages"
)

// Renderer renders pages by name, and the body of a server error response.
type Renderer interface {
	Render(ctx context.Context, name string, fields brochure.Fields) ([]byte, error)
	ServerError(ctx context.Context) []byte
}

// Handlers serves the pages and static files of the site. It holds no
// per-request state and is safe for concurrent use.
type Handlers struct {
	renderer Renderer
	favicon  http.Handler
	styles   http.Handler
	assets   http.Handler
}

// New returns Handlers rendering pages with renderer, serving favicon.ico and
// styles.css from files and everything under /assets/ from assets. When
// listAssets is false, directories without an index.html aren't listed.
func New(renderer Renderer, files, assets http.FileSystem, listAssets bool) *Handlers {
	return &Handlers{
		renderer: renderer,
		favicon:  StaticFile(files, "/favicon.ico"),
		styles:   StaticFile(files, "/styles.css"),
		assets:   Directory("/assets", assets, listAssets),
	}
}

// Index renders the home page. Query parameters are accepted and ignored.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, pages.IndexKey, brochure.Fields{
		"title":       "Index Title",
		"keywords":    "Index Keywords",
		"description": "Index Description",
		"test":        "Index Test",
	})
}

// About renders the about page. Query parameters are accepted and ignored.
func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, pages.AboutKey, brochure.Fields{
		"title":       "About Title",
		"keywords":    "About Keywords",
		"description": "About Description",
	})
}

func (h *Handlers) Favicon(w http.ResponseWriter, r *http.Request) {
	h.favicon.ServeHTTP(w, r)
}

func (h *Handlers) Styles(w http.ResponseWriter, r *http.Request) {
	h.styles.ServeHTTP(w, r)
}

func (h *Handlers) Assets(w http.ResponseWriter, r *http.Request) {
	h.assets.ServeHTTP(w, r)
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, name string, fields brochure.Fields) {
	ctx := r.Context()
	body, err := h.renderer.Render(ctx, name, fields)
	if err != nil {
		brochure.Logger(ctx).ErrorContext(ctx, "error rendering page",
			"page", name, "path", r.URL.Path, "err", err)
		writeHTML(ctx, w, http.StatusInternalServerError, h.renderer.ServerError(ctx))
		return
	}
	writeHTML(ctx, w, http.StatusOK, body)
}

func writeHTML(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		brochure.Logger(ctx).DebugContext(ctx, "error writing response", "err", err)
	}
}
