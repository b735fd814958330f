// Package app wires configuration, pages, handlers, middleware and routes
// into a ready-to-serve server.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"impractical.co/brochure"
	"impractical.co/brochure/internal/env"
	"impractical.co/brochure/internal/handlers"
	"impractical.co/brochure/internal/middleware"
	"impractical.co/brochure/internal/pages"
	"impractical.co/brochure/internal/routes"
	"impractical.co/brochure/internal/server"
)

// SiteName is shown in the footer of every page.
const SiteName = "Brochure"

// New builds the server described by cfg. Every page is rendered once before
// New returns, so a broken or missing template fails startup instead of the
// first request for it.
func New(ctx context.Context, cfg env.Config, logger *slog.Logger) (*server.Server, error) {
	ctx = brochure.LoggingContext(ctx, logger)

	templates := pages.Templates()
	if cfg.TemplateDir != "" {
		templates = os.DirFS(cfg.TemplateDir)
		logger.InfoContext(ctx, "using templates from disk", "dir", cfg.TemplateDir)
	}

	catalog, err := pages.NewCatalog(ctx, templates, SiteName)
	if err != nil {
		return nil, fmt.Errorf("error building page catalog: %w", err)
	}
	if err := catalog.Preload(ctx); err != nil {
		return nil, fmt.Errorf("error loading templates: %w", err)
	}
	if err := checkDir(cfg.FilesDir); err != nil {
		logger.WarnContext(ctx, "static files directory unavailable, its files will 404",
			"dir", cfg.FilesDir, "err", err)
	}
	if err := checkDir(cfg.AssetsDir); err != nil {
		logger.WarnContext(ctx, "assets directory unavailable, its files will 404",
			"dir", cfg.AssetsDir, "err", err)
	}

	h := handlers.New(catalog, http.Dir(cfg.FilesDir), http.Dir(cfg.AssetsDir), cfg.ListAssets)

	srv := server.Init(logger, cfg.Addr, cfg.Compress, cfg.ShutdownTimeout)
	srv.BaseChain = append(srv.BaseChain,
		middleware.InterceptErrors(pages.ErrorPageRenderer(catalog), middleware.NotFoundMessages))
	routes.Register(srv, routes.Table(h))
	return srv, nil
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%q: %w", dir, fs.ErrInvalid)
	}
	return nil
}
