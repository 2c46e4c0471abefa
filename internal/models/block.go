package models

// BlockType is the closed set of content block variants the renderer
// understands. Upstream kinds outside this set map to BlockUnsupported.
type BlockType string

const (
	BlockParagraph   BlockType = "paragraph"
	BlockHeading1    BlockType = "heading_1"
	BlockHeading2    BlockType = "heading_2"
	BlockHeading3    BlockType = "heading_3"
	BlockQuote       BlockType = "quote"
	BlockBulleted    BlockType = "bulleted_list_item"
	BlockNumbered    BlockType = "numbered_list_item"
	BlockCode        BlockType = "code"
	BlockCallout     BlockType = "callout"
	BlockDivider     BlockType = "divider"
	BlockUnsupported BlockType = "unsupported"
)

// Block is a single content unit within a page. Blocks are owned by the page
// that produced them and never outlive its traversal.
type Block struct {
	Type     BlockType
	Text     []TextRun
	Language string // code blocks only
	Icon     string // callout blocks only
}

// ModifierType tags an inline style or link applied to a text run.
type ModifierType string

const (
	ModifierBold          ModifierType = "b"
	ModifierItalic        ModifierType = "i"
	ModifierCode          ModifierType = "c"
	ModifierStrikethrough ModifierType = "s"
	ModifierLink          ModifierType = "a" // Target is a URL
	ModifierPageLink      ModifierType = "p" // Target is a page ID
)

// Modifier is one styling or link instruction on a text run.
type Modifier struct {
	Type   ModifierType
	Target string
}

// TextRun is a string fragment carrying zero or more modifiers, applied in
// order with the first listed wrapping innermost.
type TextRun struct {
	Text      string
	Modifiers []Modifier
}

// Plain builds a run with no modifiers.
func Plain(text string) TextRun {
	return TextRun{Text: text}
}
