package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// Document is a compiled page: the Markdown content and the file name it
// should be written under. Writing it anywhere is the caller's job.
type Document struct {
	Name    string
	Content string
}

// Compiler turns pages into Markdown documents. It holds only read-only
// state, so a single Compiler may serve concurrent CompilePage calls for
// distinct pages.
type Compiler struct {
	cfg    Config
	lookup PageLookup
	logger *slog.Logger
}

// NewCompiler builds a Compiler. lookup may be nil when the caller knows the
// pages carry no cross-page links.
func NewCompiler(cfg Config, lookup PageLookup, logger *slog.Logger) *Compiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compiler{cfg: cfg, lookup: lookup, logger: logger}
}

// CompilePage renders the front-matter header and every child block of page
// in order, joined by single newlines. Each call owns a fresh counter
// context; nothing leaks between compilations.
func (c *Compiler) CompilePage(ctx context.Context, page *models.Page) (*Document, error) {
	fm := BuildFrontMatter(page.Title, page.Properties, page.LastEdited, c.cfg)
	header, err := fm.Marshal()
	if err != nil {
		return nil, err
	}

	rc := newContext(page, c.cfg, c.lookup, c.logger)
	parts := make([]string, 0, len(page.Children))
	for _, b := range page.Children {
		md, err := rc.RenderBlock(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("render: page %s: %w", page.ID, err)
		}
		parts = append(parts, md)
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(parts, "\n"))
	return &Document{
		Name:    Slugify(page.Title) + ".md",
		Content: sb.String(),
	}, nil
}
