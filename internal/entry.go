// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notion"
	"github.com/starford/ansuz/internal/preview"
	"github.com/starford/ansuz/internal/render"
	"github.com/starford/ansuz/internal/state"
	"github.com/starford/ansuz/internal/writer"
)

// newApplication applies the options and fills in defaults.
func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
		slog.SetDefault(app.logger)
	}
	return app, nil
}

// renderConfig builds the renderer's view of the site settings.
func renderConfig(cfg *Config) render.Config {
	return render.Config{
		DefaultLayout:    cfg.Site.DefaultLayout,
		PermalinkPattern: cfg.Site.PermalinkPattern,
		BaseURL:          cfg.Site.BaseURL,
	}
}

// Run executes one conversion pass: fetch every page of the database,
// compile the published ones (and drafts when a drafts directory is
// configured), write the changed documents, and record their checksums.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg, logger := app.config, app.logger

	src := app.source
	if src == nil {
		if err := cfg.Notion.Validate(); err != nil {
			return fmt.Errorf("notion config: %w", err)
		}
		src = notion.NewSource(notion.NewClient(cfg.Notion.Token, logger), cfg.Notion.DatabaseID)
	}

	posts, err := writer.NewFS(cfg.Output.PostsDir)
	if err != nil {
		return fmt.Errorf("init posts writer: %w", err)
	}
	var drafts *writer.FS
	if cfg.Output.DraftsDir != "" {
		if drafts, err = writer.NewFS(cfg.Output.DraftsDir); err != nil {
			return fmt.Errorf("init drafts writer: %w", err)
		}
	}

	db, err := state.Open(cfg.State.Path)
	if err != nil {
		return fmt.Errorf("init state: %w", err)
	}
	defer db.Close()

	pages, err := src.Pages(ctx)
	if err != nil {
		return fmt.Errorf("fetch pages: %w", err)
	}
	logger.Info("pages fetched", slog.Int("count", len(pages)))

	compiler := render.NewCompiler(renderConfig(cfg), src, logger)

	var written, skipped, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.App.Parallelism)

	for _, page := range pages {
		page := page
		g.Go(func() error {
			switch err := convertPage(gCtx, compiler, page, posts, drafts, db, logger); {
			case err == nil:
				written.Add(1)
			case errors.Is(err, errSkipped):
				skipped.Add(1)
			default:
				// A bad page must not sink the rest of the run; the caller
				// learns about it from the summary error.
				failed.Add(1)
				logger.Error("page conversion failed",
					slog.String("page", page.Title),
					slog.String("error", err.Error()))
			}
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("conversion complete",
		slog.Int64("written", written.Load()),
		slog.Int64("skipped", skipped.Load()),
		slog.Int64("failed", failed.Load()))

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d pages failed", n, len(pages))
	}
	return nil
}

// errSkipped marks pages that needed no work: unchanged output or drafts
// with no drafts directory configured.
var errSkipped = errors.New("skipped")

func convertPage(ctx context.Context, compiler *render.Compiler, page *models.Page, posts, drafts *writer.FS, db state.Store, logger *slog.Logger) error {
	out := posts
	if !isPublished(page) {
		if drafts == nil {
			logger.Debug("skipping draft", slog.String("page", page.Title))
			return errSkipped
		}
		out = drafts
	}

	doc, err := compiler.CompilePage(ctx, page)
	if err != nil {
		return err
	}

	sum := checksum.SumString(doc.Content)
	prev, err := db.GetChecksum(page.ID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	if prev == sum {
		logger.Debug("page unchanged", slog.String("dest", doc.Name))
		return errSkipped
	}

	if err := out.Write(doc.Name, []byte(doc.Content)); err != nil {
		return err
	}
	if err := db.UpsertPage(state.PageRow{
		ID:       page.ID,
		Title:    page.Title,
		Dest:     doc.Name,
		Checksum: sum,
	}); err != nil {
		return err
	}
	logger.Info("wrote page", slog.String("dest", doc.Name))
	return nil
}

// isPublished reports whether a page carries a true published property.
// Pages without one are treated as drafts.
func isPublished(page *models.Page) bool {
	published, _ := page.Properties["published"].(bool)
	return published
}

// Status returns the recorded conversion state.
func Status(opts ...Option) ([]state.PageRow, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	db, err := state.Open(app.config.State.Path)
	if err != nil {
		return nil, fmt.Errorf("init state: %w", err)
	}
	defer db.Close()
	return db.ListPages()
}

// Serve runs the local preview server until the context is cancelled or a
// shutdown signal arrives.
func Serve(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg, logger := app.config, app.logger

	db, err := state.Open(cfg.State.Path)
	if err != nil {
		return fmt.Errorf("init state: %w", err)
	}
	defer db.Close()

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: preview.NewRouter(db, cfg.Output.PostsDir),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("preview server starting",
			slog.String("address", cfg.App.HTTP.Address()),
			slog.String("dir", cfg.Output.PostsDir))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("preview server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("preview server stopped")
	return nil
}
