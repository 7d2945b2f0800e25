package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/dasmanifest/internal/builder"
	"github.com/specialistvlad/dasmanifest/internal/ctxlog"
	"github.com/specialistvlad/dasmanifest/internal/dataset"
	"github.com/specialistvlad/dasmanifest/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	builder    *builder.Builder
	httpServer *http.Server
}

// Option customises an App at construction time.
type Option func(*options)

type options struct {
	resolver resolver.Resolver
}

// WithResolver replaces the dasgoclient resolver, e.g. with a test double.
func WithResolver(r resolver.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = resolver.NewDAS(cfg.ResolverCommand, cfg.Timeout)
	}

	policy, err := dataset.PolicyByName(cfg.Naming)
	if err != nil {
		return nil, err
	}

	b, err := builder.New(builder.Options{
		Resolver:   o.resolver,
		Policy:     policy,
		Redirector: cfg.Redirector,
		Process:    cfg.Process,
		Workers:    cfg.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest builder: %w", err)
	}
	logger.Debug("Manifest builder created.", "policy", policy.Name(), "redirector", cfg.Redirector, "workers", cfg.Workers)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		builder: b,
	}, nil
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
