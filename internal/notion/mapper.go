package notion

import (
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/starford/ansuz/internal/models"
)

// MapPage converts an API page row plus its fetched block tree into the
// domain model. children may be nil when only the metadata is needed, e.g.
// for link resolution.
func MapPage(p *notionapi.Page, children []notionapi.Block) *models.Page {
	return &models.Page{
		ID:         string(p.ID),
		Title:      pageTitle(p),
		Collection: string(p.Parent.DatabaseID),
		Properties: mapProperties(p.Properties),
		LastEdited: time.Time(p.LastEditedTime),
		Children:   MapBlocks(children),
	}
}

// pageTitle extracts the page's title property.
func pageTitle(p *notionapi.Page) string {
	for _, prop := range p.Properties {
		if title, ok := prop.(*notionapi.TitleProperty); ok {
			return plainText(title.Title)
		}
	}
	return ""
}

// mapProperties converts API property values into the typed values the front
// matter builder understands. Keys are snake_cased; the title property is
// skipped because the page title is carried separately.
func mapProperties(props notionapi.Properties) map[string]any {
	out := make(map[string]any, len(props))
	for name, prop := range props {
		if _, isTitle := prop.(*notionapi.TitleProperty); isTitle {
			continue
		}
		if v := propertyValue(prop); v != nil {
			out[snakeKey(name)] = v
		}
	}
	return out
}

// snakeKey lowercases a property name and joins its words with underscores.
func snakeKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

func propertyValue(prop notionapi.Property) any {
	switch p := prop.(type) {
	case *notionapi.RichTextProperty:
		return plainText(p.RichText)
	case *notionapi.NumberProperty:
		return p.Number
	case *notionapi.SelectProperty:
		if p.Select.Name == "" {
			return nil
		}
		return p.Select.Name
	case *notionapi.StatusProperty:
		if p.Status.Name == "" {
			return nil
		}
		return p.Status.Name
	case *notionapi.MultiSelectProperty:
		var values []string
		for _, opt := range p.MultiSelect {
			values = append(values, opt.Name)
		}
		if len(values) == 0 {
			return nil
		}
		return values
	case *notionapi.DateProperty:
		return dateValue(p.Date)
	case *notionapi.CheckboxProperty:
		return p.Checkbox
	case *notionapi.URLProperty:
		return p.URL
	case *notionapi.EmailProperty:
		return p.Email
	case *notionapi.PhoneNumberProperty:
		return p.PhoneNumber
	case *notionapi.PeopleProperty:
		var names []string
		for _, user := range p.People {
			if user.Name != "" {
				names = append(names, user.Name)
			}
		}
		if len(names) == 0 {
			return nil
		}
		return names
	case *notionapi.FormulaProperty:
		return formulaValue(p.Formula)
	case *notionapi.RollupProperty:
		return rollupValue(p.Rollup)
	default:
		return nil
	}
}

// dateValue reduces a date object to a single date or a range.
func dateValue(d *notionapi.DateObject) any {
	if d == nil || d.Start == nil {
		return nil
	}
	start := time.Time(*d.Start)
	if d.End != nil {
		return models.DateRange{Start: start, End: time.Time(*d.End)}
	}
	return start
}

// formulaValue extracts the computed value of a formula property.
func formulaValue(f notionapi.Formula) any {
	switch f.Type {
	case notionapi.FormulaTypeString:
		return f.String
	case notionapi.FormulaTypeNumber:
		return f.Number
	case notionapi.FormulaTypeBoolean:
		return f.Boolean
	case notionapi.FormulaTypeDate:
		return dateValue(f.Date)
	}
	return nil
}

// rollupValue extracts the computed value of a rollup property.
func rollupValue(r notionapi.Rollup) any {
	switch r.Type {
	case notionapi.RollupTypeNumber:
		return r.Number
	case notionapi.RollupTypeDate:
		return dateValue(r.Date)
	case notionapi.RollupTypeArray:
		var values []any
		for _, item := range r.Array {
			if v := propertyValue(item); v != nil {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return nil
		}
		return values
	}
	return nil
}

// MapBlocks converts API blocks into the closed domain variant set. Kinds
// the renderer has no mapping for become BlockUnsupported.
func MapBlocks(blocks []notionapi.Block) []models.Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]models.Block, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, mapBlock(block))
	}
	return out
}

func mapBlock(block notionapi.Block) models.Block {
	switch b := block.(type) {
	case *notionapi.ParagraphBlock:
		return models.Block{Type: models.BlockParagraph, Text: mapRichText(b.Paragraph.RichText)}
	case *notionapi.Heading1Block:
		return models.Block{Type: models.BlockHeading1, Text: mapRichText(b.Heading1.RichText)}
	case *notionapi.Heading2Block:
		return models.Block{Type: models.BlockHeading2, Text: mapRichText(b.Heading2.RichText)}
	case *notionapi.Heading3Block:
		return models.Block{Type: models.BlockHeading3, Text: mapRichText(b.Heading3.RichText)}
	case *notionapi.QuoteBlock:
		return models.Block{Type: models.BlockQuote, Text: mapRichText(b.Quote.RichText)}
	case *notionapi.BulletedListItemBlock:
		return models.Block{Type: models.BlockBulleted, Text: mapRichText(b.BulletedListItem.RichText)}
	case *notionapi.NumberedListItemBlock:
		return models.Block{Type: models.BlockNumbered, Text: mapRichText(b.NumberedListItem.RichText)}
	case *notionapi.CodeBlock:
		return models.Block{
			Type:     models.BlockCode,
			Language: codeLanguage(string(b.Code.Language)),
			Text:     []models.TextRun{models.Plain(plainText(b.Code.RichText))},
		}
	case *notionapi.CalloutBlock:
		return models.Block{
			Type: models.BlockCallout,
			Icon: calloutIcon(b.Callout.Icon),
			Text: mapRichText(b.Callout.RichText),
		}
	case *notionapi.DividerBlock:
		return models.Block{Type: models.BlockDivider}
	default:
		return models.Block{Type: models.BlockUnsupported}
	}
}

// codeLanguage normalizes the upstream language tag for a Markdown fence.
func codeLanguage(lang string) string {
	lang = strings.ToLower(lang)
	if lang == "plain text" || lang == "plain_text" {
		return ""
	}
	return lang
}

func calloutIcon(icon *notionapi.Icon) string {
	if icon == nil || icon.Emoji == nil {
		return ""
	}
	return string(*icon.Emoji)
}

// mapRichText converts API rich text segments into text runs. Page mentions
// become page-link runs; annotations become formatting modifiers ordered
// innermost first, with any hyperlink wrapping outermost.
func mapRichText(rts []notionapi.RichText) []models.TextRun {
	if len(rts) == 0 {
		return nil
	}
	runs := make([]models.TextRun, 0, len(rts))
	for _, rt := range rts {
		runs = append(runs, mapRun(rt))
	}
	return runs
}

func mapRun(rt notionapi.RichText) models.TextRun {
	run := models.TextRun{Text: rt.PlainText}

	// A page mention is a cross-page link; its modifier must lead so the
	// renderer can classify the run.
	if rt.Mention != nil && rt.Mention.Type == notionapi.MentionTypePage && rt.Mention.Page != nil {
		run.Modifiers = []models.Modifier{
			{Type: models.ModifierPageLink, Target: string(rt.Mention.Page.ID)},
		}
		return run
	}

	if ann := rt.Annotations; ann != nil {
		if ann.Code {
			run.Modifiers = append(run.Modifiers, models.Modifier{Type: models.ModifierCode})
		}
		if ann.Strikethrough {
			run.Modifiers = append(run.Modifiers, models.Modifier{Type: models.ModifierStrikethrough})
		}
		if ann.Italic {
			run.Modifiers = append(run.Modifiers, models.Modifier{Type: models.ModifierItalic})
		}
		if ann.Bold {
			run.Modifiers = append(run.Modifiers, models.Modifier{Type: models.ModifierBold})
		}
	}
	if rt.Href != "" {
		run.Modifiers = append(run.Modifiers, models.Modifier{Type: models.ModifierLink, Target: rt.Href})
	}
	return run
}

// plainText flattens rich text to its unstyled string.
func plainText(rts []notionapi.RichText) string {
	var sb strings.Builder
	for _, rt := range rts {
		sb.WriteString(rt.PlainText)
	}
	return sb.String()
}
