package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"impractical.co/brochure/internal/app"
	"impractical.co/brochure/internal/env"
	"impractical.co/brochure/internal/server"
)

type flags struct {
	envFiles        []string
	addr            string
	files           string
	assets          string
	templates       string
	listAssets      bool
	compress        bool
	logLevel        string
	logColor        bool
	shutdownTimeout time.Duration
}

func newRootCmd() (*cobra.Command, *flags) {
	f := &flags{}
	defaults := env.Default()

	cmd := &cobra.Command{
		Use:           "brochure [flags]",
		Short:         "Serve the brochure site",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.Load(f.envFiles...)
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVar(&f.envFiles, "env-file", []string{".env"}, "dotenv files to load; variables already set win")
	fl.StringVar(&f.addr, "addr", defaults.Addr, "host:port to listen on ($"+env.AddrVar+")")
	fl.StringVar(&f.files, "files", defaults.FilesDir, "directory holding favicon.ico and styles.css ($"+env.FilesDirVar+")")
	fl.StringVar(&f.assets, "assets", defaults.AssetsDir, "directory served under /assets/ ($"+env.AssetsDirVar+")")
	fl.StringVar(&f.templates, "templates", defaults.TemplateDir, "directory to load templates from instead of the built-in ones ($"+env.TemplateDirVar+")")
	fl.BoolVar(&f.listAssets, "list-assets", defaults.ListAssets, "list directories under /assets/ ($"+env.ListAssetsVar+")")
	fl.BoolVar(&f.compress, "compress", defaults.Compress, "compress responses when the client accepts it ($"+env.CompressVar+")")
	fl.StringVar(&f.logLevel, "log-level", defaults.LogLevel.String(), "minimum level logged: debug, info, warn or error ($"+env.LogLevelVar+")")
	fl.BoolVar(&f.logColor, "log-color", defaults.LogColor, "colorize log output ($"+env.LogColorVar+")")
	fl.DurationVar(&f.shutdownTimeout, "shutdown-timeout", defaults.ShutdownTimeout, "how long in-flight requests get to finish on shutdown ($"+env.ShutdownTimeoutVar+")")

	return cmd, f
}

// apply overrides cfg with every flag set on the command line.
func (f *flags) apply(cmd *cobra.Command, cfg *env.Config) error {
	fl := cmd.Flags()
	if fl.Changed("addr") {
		cfg.Addr = f.addr
	}
	if fl.Changed("files") {
		cfg.FilesDir = f.files
	}
	if fl.Changed("assets") {
		cfg.AssetsDir = f.assets
	}
	if fl.Changed("templates") {
		cfg.TemplateDir = f.templates
	}
	if fl.Changed("list-assets") {
		cfg.ListAssets = f.listAssets
	}
	if fl.Changed("compress") {
		cfg.Compress = f.compress
	}
	if fl.Changed("log-level") {
		var level slog.Level
		if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", f.logLevel, err)
		}
		cfg.LogLevel = level
	}
	if fl.Changed("log-color") {
		cfg.LogColor = f.logColor
	}
	if fl.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout = f.shutdownTimeout
	}
	return nil
}

func run(ctx context.Context, cfg env.Config) error {
	logger := server.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogColor)

	srv, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := srv.Listen(ctx); err != nil {
		srv.LogFatal("Server stopped", "err", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, _ := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
