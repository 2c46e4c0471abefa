package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// CrossCollectionLinkError reports an inline link whose target page lives in
// a different parent collection than the page being compiled. A page with
// such a link fails as a whole rather than shipping a silently broken URL.
type CrossCollectionLinkError struct {
	PageID           string
	TargetCollection string
	SourceCollection string
}

func (e *CrossCollectionLinkError) Error() string {
	return fmt.Sprintf("render: linked page %s belongs to collection %q, not %q",
		e.PageID, e.TargetCollection, e.SourceCollection)
}

// RenderText renders styled runs as inline Markdown. Page-link runs resolve
// their target through the page lookup and become [title](permalink) links
// built from the target's own front matter; formatting modifiers wrap the
// run text with the matching inline syntax.
func (c *Context) RenderText(ctx context.Context, runs []models.TextRun) (string, error) {
	var sb strings.Builder
	for _, run := range runs {
		if isPageLink(run) {
			link, err := c.renderPageLink(ctx, run.Modifiers[0].Target)
			if err != nil {
				return "", err
			}
			sb.WriteString(link)
			continue
		}
		sb.WriteString(renderInline(run))
	}
	return sb.String(), nil
}

// isPageLink reports whether a run is a cross-page reference: its first
// modifier carries the page-link tag. Runs with empty text are never links.
func isPageLink(run models.TextRun) bool {
	return run.Text != "" && len(run.Modifiers) > 0 && run.Modifiers[0].Type == models.ModifierPageLink
}

func (c *Context) renderPageLink(ctx context.Context, pageID string) (string, error) {
	if c.lookup == nil {
		return "", fmt.Errorf("render: no page lookup configured for link to %s", pageID)
	}
	target, err := c.lookup.GetPage(ctx, pageID)
	if err != nil {
		return "", fmt.Errorf("render: resolve linked page %s: %w", pageID, err)
	}
	if target.Collection != c.page.Collection {
		return "", &CrossCollectionLinkError{
			PageID:           pageID,
			TargetCollection: target.Collection,
			SourceCollection: c.page.Collection,
		}
	}
	fm := BuildFrontMatter(target.Title, target.Properties, target.LastEdited, c.cfg)
	url, err := BuildPermalink(fm, c.cfg)
	if err != nil {
		return "", err
	}
	return "[" + target.Title + "](" + url + ")", nil
}

// renderInline applies formatting modifiers in listed order, so the first
// modifier wraps innermost.
func renderInline(run models.TextRun) string {
	text := run.Text
	for _, mod := range run.Modifiers {
		switch mod.Type {
		case models.ModifierCode:
			text = "`" + text + "`"
		case models.ModifierStrikethrough:
			text = "~~" + text + "~~"
		case models.ModifierItalic:
			text = "*" + text + "*"
		case models.ModifierBold:
			text = "**" + text + "**"
		case models.ModifierLink:
			text = "[" + text + "](" + mod.Target + ")"
		}
	}
	return text
}
