package render

import (
	"errors"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello-world"},
		{"My Post", "my-post"},
		{"already-slugified", "already-slugified"},
		{"Multiple   Spaces\tAnd Tabs", "multiple-spaces-and-tabs"},
		{"Café Nº 7", "caf-n-7"},
		{"2021 Year In Review", "2021-year-in-review"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugify_StableOnOwnOutput(t *testing.T) {
	titles := []string{"Hello, World!", "My Post", "Café Nº 7", "a  b  c"}
	for _, title := range titles {
		once := Slugify(title)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify(%q) = %q, but re-applying gives %q", title, once, twice)
		}
	}
}

func TestBuildPermalink(t *testing.T) {
	cfg := Config{
		BaseURL:          "https://x.io",
		PermalinkPattern: "${baseurl}/${year}/${month}/${title}",
	}
	fm := FrontMatter{
		Title: "My Post",
		Fields: map[string]any{
			"layout":       "post",
			"published_at": time.Date(2021, 5, 3, 0, 0, 0, 0, time.UTC),
		},
	}
	got, err := BuildPermalink(fm, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://x.io/2021/5/my-post"; got != want {
		t.Errorf("permalink = %q, want %q", got, want)
	}
}

func TestBuildPermalink_Categories(t *testing.T) {
	cfg := Config{
		BaseURL:          "https://x.io",
		PermalinkPattern: "${baseurl}/${categories}/${title}",
	}

	fm := FrontMatter{
		Title:  "My Post",
		Fields: map[string]any{"categories": []string{"go", "tools"}},
	}
	got, err := BuildPermalink(fm, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://x.io/go/tools/my-post"; got != want {
		t.Errorf("permalink = %q, want %q", got, want)
	}

	// Anything that is not a list of strings degrades to the empty string.
	fm.Fields = map[string]any{"categories": "not-a-list"}
	got, err = BuildPermalink(fm, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "https://x.io//my-post"; got != want {
		t.Errorf("permalink = %q, want %q", got, want)
	}
}

func TestBuildPermalink_MissingKey(t *testing.T) {
	cfg := Config{PermalinkPattern: "${baseurl}/${nope}/${title}"}
	fm := FrontMatter{Title: "My Post", Fields: map[string]any{}}

	_, err := BuildPermalink(fm, cfg)
	if err == nil {
		t.Fatal("expected error for unknown placeholder")
	}
	var terr *TemplateError
	if !errors.As(err, &terr) {
		t.Fatalf("error = %T, want *TemplateError", err)
	}
	if terr.Key != "nope" {
		t.Errorf("Key = %q, want %q", terr.Key, "nope")
	}
}

func TestBuildPermalink_FrontMatterKeysAvailable(t *testing.T) {
	cfg := Config{PermalinkPattern: "/${lang}/${title}"}
	fm := FrontMatter{Title: "Hi", Fields: map[string]any{"lang": "en"}}

	got, err := BuildPermalink(fm, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "/en/hi"; got != want {
		t.Errorf("permalink = %q, want %q", got, want)
	}
}
