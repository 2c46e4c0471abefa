package internal

import (
	"context"
	"log/slog"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/render"
)

// PageSource supplies the pages to convert and resolves sibling pages for
// link rendering.
type PageSource interface {
	render.PageLookup
	Pages(ctx context.Context) ([]*models.Page, error)
}

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	source PageSource
	logger *slog.Logger
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithSource injects a page source, replacing the Notion-backed default.
func WithSource(src PageSource) Option {
	return func(a *application) {
		a.source = src
	}
}

// WithLogger sets the logger, replacing the default JSON logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}
