// Package server holds the HTTP listener: router, middleware chain and
// lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/lmittmann/tint"

	"impractical.co/brochure/internal/middleware"
)

type Server struct {
	Logger    *slog.Logger
	router    *mux.Router
	BaseChain middleware.Chain

	addr            string
	shutdownTimeout time.Duration
}

// NewLogger returns a structured logger writing human-readable lines to w.
func NewLogger(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
		NoColor:    !color,
	}))
}

// Init creates the router and the middleware chain every request passes
// through: request logging, panic recovery and, when compress is set,
// response compression. Callers append anything that must sit closer to the
// router to BaseChain before serving.
func Init(logger *slog.Logger, addr string, compress bool, shutdownTimeout time.Duration) *Server {
	router := mux.NewRouter()
	// anything unrouted, whatever the reason, is a plain 404
	router.NotFoundHandler = http.NotFoundHandler()
	router.MethodNotAllowedHandler = http.NotFoundHandler()

	baseChain := middleware.Chain{
		middleware.LogRequest(logger),
		middleware.Recover(logger),
	}
	if compress {
		baseChain = append(baseChain, middleware.Compress)
	}

	return &Server{
		Logger:          logger,
		router:          router,
		BaseChain:       baseChain,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handle routes requests for exactly path with method to handler. GET routes
// also answer HEAD.
func (s *Server) Handle(method, path string, handler http.Handler) {
	s.router.Handle(path, handler).Methods(methods(method)...)
}

// HandlePrefix routes requests for every path under prefix with method to
// handler. GET routes also answer HEAD.
func (s *Server) HandlePrefix(method, prefix string, handler http.Handler) {
	s.router.PathPrefix(prefix).Handler(handler).Methods(methods(method)...)
}

func methods(method string) []string {
	if method == http.MethodGet {
		return []string{http.MethodGet, http.MethodHead}
	}
	return []string{method}
}

// Handler returns the router wrapped in BaseChain.
func (s *Server) Handler() http.Handler {
	return s.BaseChain.Then(s.router)
}

// LogFatal is effectively log.Fatal, but using the structured logger.
func (s *Server) LogFatal(msg string, args ...any) {
	s.Logger.Error(msg, args...)
	os.Exit(1)
}

// Listen binds the server's address and serves on it until ctx is done.
func (s *Server) Listen(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("error binding %q: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then stops accepting connections and
// waits up to the shutdown timeout for in-flight requests to finish. It
// returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.Logger.Handler(), slog.LevelWarn),
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	s.Logger.Info("Starting server", "address", ln.Addr().String())

	errs := make(chan error, 1)
	go func() {
		errs <- srv.Serve(ln)
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("error serving: %w", err)
	case <-ctx.Done():
	}

	s.Logger.Info("Stopping server", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error serving: %w", err)
	}
	return nil
}
