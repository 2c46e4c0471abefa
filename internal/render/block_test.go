package render

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/starford/ansuz/internal/models"
)

func testContext(page *models.Page, lookup PageLookup) *Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newContext(page, testCfg, lookup, logger)
}

func renderOne(t *testing.T, b models.Block) string {
	t.Helper()
	rc := testContext(&models.Page{Title: "T"}, nil)
	got, err := rc.RenderBlock(context.Background(), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func TestRenderBlock_Variants(t *testing.T) {
	text := []models.TextRun{models.Plain("hello")}
	cases := []struct {
		name  string
		block models.Block
		want  string
	}{
		{"paragraph", models.Block{Type: models.BlockParagraph, Text: text}, "hello"},
		{"heading1", models.Block{Type: models.BlockHeading1, Text: text}, "# hello"},
		{"heading2", models.Block{Type: models.BlockHeading2, Text: text}, "## hello"},
		{"heading3", models.Block{Type: models.BlockHeading3, Text: text}, "### hello"},
		{"quote", models.Block{Type: models.BlockQuote, Text: text}, "> hello"},
		{"bulleted", models.Block{Type: models.BlockBulleted, Text: text}, "- hello"},
		{"numbered", models.Block{Type: models.BlockNumbered, Text: text}, "1. hello"},
		{"callout", models.Block{Type: models.BlockCallout, Icon: "💡", Text: text}, "> 💡 hello"},
		{"divider", models.Block{Type: models.BlockDivider}, ""},
		{"unsupported", models.Block{Type: models.BlockUnsupported, Text: text}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderOne(t, tc.block); got != tc.want {
				t.Errorf("RenderBlock = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderBlock_CodeFence(t *testing.T) {
	b := models.Block{
		Type:     models.BlockCode,
		Language: "python",
		Text:     []models.TextRun{models.Plain("print(1)")},
	}
	if got, want := renderOne(t, b), "\n```python\nprint(1)\n```\n"; got != want {
		t.Errorf("code block = %q, want %q", got, want)
	}
	if got, want := CodeFence("python", "print(1)"), "```python\nprint(1)\n```"; got != want {
		t.Errorf("CodeFence = %q, want %q", got, want)
	}
}

func TestRenderBlock_CounterResets(t *testing.T) {
	rc := testContext(&models.Page{Title: "T"}, nil)
	seq := []models.Block{
		{Type: models.BlockNumbered, Text: []models.TextRun{models.Plain("a")}},
		{Type: models.BlockNumbered, Text: []models.TextRun{models.Plain("b")}},
		{Type: models.BlockParagraph, Text: []models.TextRun{models.Plain("c")}},
		{Type: models.BlockNumbered, Text: []models.TextRun{models.Plain("d")}},
	}
	want := []string{"1. a", "2. b", "c", "1. d"}
	for i, b := range seq {
		got, err := rc.RenderBlock(context.Background(), b)
		if err != nil {
			t.Fatalf("block %d: unexpected error: %v", i, err)
		}
		if got != want[i] {
			t.Errorf("block %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestRenderBlock_CounterRunsPastTwo(t *testing.T) {
	rc := testContext(&models.Page{Title: "T"}, nil)
	for i, want := range []string{"1. x", "2. x", "3. x"} {
		got, err := rc.RenderBlock(context.Background(), models.Block{
			Type: models.BlockNumbered,
			Text: []models.TextRun{models.Plain("x")},
		})
		if err != nil {
			t.Fatalf("block %d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Errorf("block %d = %q, want %q", i, got, want)
		}
	}
}
