// Package env loads the server's configuration from the environment and
// optional .env files.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	AddrVar            = "BROCHURE_ADDR"
	FilesDirVar        = "BROCHURE_FILES_DIR"
	AssetsDirVar       = "BROCHURE_ASSETS_DIR"
	TemplateDirVar     = "BROCHURE_TEMPLATE_DIR"
	ListAssetsVar      = "BROCHURE_LIST_ASSETS"
	CompressVar        = "BROCHURE_COMPRESS"
	LogLevelVar        = "BROCHURE_LOG_LEVEL"
	LogColorVar        = "BROCHURE_LOG_COLOR"
	ShutdownTimeoutVar = "BROCHURE_SHUTDOWN_TIMEOUT"
)

// Config is everything the server needs to start. It's built once at startup
// and never changed afterwards.
type Config struct {
	// Addr is the host:port the server listens on.
	Addr string

	// FilesDir holds favicon.ico and styles.css.
	FilesDir string

	// AssetsDir is served under /assets/.
	AssetsDir string

	// TemplateDir overrides the templates compiled into the binary when
	// set.
	TemplateDir string

	// ListAssets serves directory listings under /assets/ for directories
	// without an index.html.
	ListAssets bool

	// Compress negotiates gzip or deflate encoding of responses.
	Compress bool

	LogLevel slog.Level
	LogColor bool

	// ShutdownTimeout bounds how long in-flight requests get to finish
	// once the server is asked to stop.
	ShutdownTimeout time.Duration
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Addr:            "0.0.0.0:5000",
		FilesDir:        "./files",
		AssetsDir:       "./files/assets",
		ListAssets:      true,
		Compress:        true,
		LogLevel:        slog.LevelInfo,
		LogColor:        true,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads the passed .env files into the environment, without overriding
// variables that are already set, then builds a Config from Default and the
// environment. Files that don't exist are skipped.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("error loading %q: %w", file, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from Default and the variables lookup returns.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []error

	str := func(key string, dst *string) {
		if val, ok := lookup(key); ok && val != "" {
			*dst = val
		}
	}
	boolean := func(key string, dst *bool) {
		val, ok := lookup(key)
		if !ok || val == "" {
			return
		}
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: %w", key, val, err))
			return
		}
		*dst = parsed
	}

	str(AddrVar, &cfg.Addr)
	str(FilesDirVar, &cfg.FilesDir)
	str(AssetsDirVar, &cfg.AssetsDir)
	str(TemplateDirVar, &cfg.TemplateDir)
	boolean(ListAssetsVar, &cfg.ListAssets)
	boolean(CompressVar, &cfg.Compress)
	boolean(LogColorVar, &cfg.LogColor)

	if val, ok := lookup(LogLevelVar); ok && val != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(val)); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: %w", LogLevelVar, val, err))
		}
	}
	if val, ok := lookup(ShutdownTimeoutVar); ok && val != "" {
		timeout, err := time.ParseDuration(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: %w", ShutdownTimeoutVar, val, err))
		} else {
			cfg.ShutdownTimeout = timeout
		}
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
