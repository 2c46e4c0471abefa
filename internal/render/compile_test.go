package render

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/models"
)

func testCompiler(lookup PageLookup) *Compiler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCompiler(testCfg, lookup, logger)
}

func TestCompilePage_Empty(t *testing.T) {
	page := &models.Page{
		ID:         "p1",
		Title:      "Hello, World!",
		Collection: "db1",
		Properties: map[string]any{},
		LastEdited: time.Date(2021, 5, 3, 12, 0, 0, 0, time.UTC),
	}
	doc, err := testCompiler(nil).CompilePage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Name != "hello-world.md" {
		t.Errorf("Name = %q, want %q", doc.Name, "hello-world.md")
	}
	want := "---\nlayout: post\npublished_at: 2021-05-03\n---\n\n"
	if doc.Content != want {
		t.Errorf("Content = %q, want header followed by empty body %q", doc.Content, want)
	}
}

func TestCompilePage_Body(t *testing.T) {
	page := &models.Page{
		ID:         "p1",
		Title:      "Post",
		Collection: "db1",
		Properties: map[string]any{},
		LastEdited: time.Date(2021, 5, 3, 0, 0, 0, 0, time.UTC),
		Children: []models.Block{
			{Type: models.BlockHeading1, Text: []models.TextRun{models.Plain("Intro")}},
			{Type: models.BlockParagraph, Text: []models.TextRun{models.Plain("Some text.")}},
			{Type: models.BlockNumbered, Text: []models.TextRun{models.Plain("first")}},
			{Type: models.BlockNumbered, Text: []models.TextRun{models.Plain("second")}},
		},
	}
	doc, err := testCompiler(nil).CompilePage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantBody := "# Intro\nSome text.\n1. first\n2. second"
	if !strings.HasSuffix(doc.Content, "---\n\n"+wantBody) {
		t.Errorf("Content = %q, want body %q after the header", doc.Content, wantBody)
	}
}

func TestCompilePage_FreshCounterPerCall(t *testing.T) {
	page := &models.Page{
		ID:         "p1",
		Title:      "Post",
		Collection: "db1",
		Properties: map[string]any{},
		LastEdited: time.Date(2021, 5, 3, 0, 0, 0, 0, time.UTC),
		Children: []models.Block{
			{Type: models.BlockNumbered, Text: []models.TextRun{models.Plain("a")}},
			{Type: models.BlockNumbered, Text: []models.TextRun{models.Plain("b")}},
		},
	}
	c := testCompiler(nil)
	first, err := c.CompilePage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.CompilePage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Content != second.Content {
		t.Errorf("repeated compiles differ:\n%q\n%q", first.Content, second.Content)
	}
	if !strings.Contains(second.Content, "1. a\n2. b") {
		t.Errorf("Content = %q, numbering did not restart at 1", second.Content)
	}
}

func TestCompilePage_LinkErrorFailsPage(t *testing.T) {
	target := &models.Page{ID: "p2", Title: "Other", Collection: "db2"}
	page := &models.Page{
		ID:         "p1",
		Title:      "Post",
		Collection: "db1",
		Properties: map[string]any{},
		LastEdited: time.Now(),
		Children: []models.Block{
			{Type: models.BlockParagraph, Text: []models.TextRun{
				{Text: "Other", Modifiers: []models.Modifier{{Type: models.ModifierPageLink, Target: "p2"}}},
			}},
		},
	}
	doc, err := testCompiler(fakeLookup{"p2": target}).CompilePage(context.Background(), page)
	if err == nil {
		t.Fatal("expected error from cross-collection link")
	}
	if doc != nil {
		t.Errorf("doc = %+v, want nil on failure", doc)
	}
}
