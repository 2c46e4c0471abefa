package render

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/starford/ansuz/internal/models"
)

// PageLookup resolves a sibling page by its identifier. Implementations
// backed by a shared cache must be safe for concurrent use, since distinct
// page compiles may resolve links at the same time.
type PageLookup interface {
	GetPage(ctx context.Context, id string) (*models.Page, error)
}

// Context carries the per-page rendering state: the enclosing page, the
// numbered-list counter, and the page lookup for cross-page links. One
// Context serves exactly one CompilePage call and is never shared.
type Context struct {
	page    *models.Page
	cfg     Config
	lookup  PageLookup
	logger  *slog.Logger
	counter int
}

func newContext(page *models.Page, cfg Config, lookup PageLookup, logger *slog.Logger) *Context {
	return &Context{page: page, cfg: cfg, lookup: lookup, logger: logger, counter: 1}
}

// RenderBlock maps one block to its Markdown fragment. Consecutive numbered
// items auto-number through a counter that any other variant resets to 1, so
// a list interrupted by a paragraph restarts at 1.
func (c *Context) RenderBlock(ctx context.Context, b models.Block) (string, error) {
	if b.Type != models.BlockNumbered {
		c.counter = 1
	}
	text, err := c.RenderText(ctx, b.Text)
	if err != nil {
		return "", err
	}
	switch b.Type {
	case models.BlockParagraph:
		return text, nil
	case models.BlockHeading1:
		return "# " + text, nil
	case models.BlockHeading2:
		return "## " + text, nil
	case models.BlockHeading3:
		return "### " + text, nil
	case models.BlockQuote:
		return "> " + text, nil
	case models.BlockBulleted:
		return "- " + text, nil
	case models.BlockNumbered:
		n := c.counter
		c.counter++
		return strconv.Itoa(n) + ". " + text, nil
	case models.BlockCode:
		// Blank lines around the fence come from the surrounding newline
		// joins in CompilePage.
		return "\n" + CodeFence(b.Language, text) + "\n", nil
	case models.BlockCallout:
		return "> " + b.Icon + " " + text, nil
	case models.BlockDivider:
		return "", nil
	default:
		// Unknown variants degrade to empty output so future upstream block
		// kinds never fail a page.
		c.logger.Debug("skipping unsupported block",
			slog.String("type", string(b.Type)),
			slog.String("page", c.page.Title))
		return "", nil
	}
}

// CodeFence wraps code in a fenced block tagged with its language.
func CodeFence(language, code string) string {
	return "```" + language + "\n" + code + "\n```"
}
