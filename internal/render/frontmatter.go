// Package render compiles pages into Markdown documents: front-matter
// derivation, permalink construction, and block-by-block rendering.
package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/ansuz/internal/models"
)

// Config carries the conversion settings the renderer reads. It is built
// once per run and never mutated.
type Config struct {
	DefaultLayout    string
	PermalinkPattern string
	BaseURL          string
}

// Bookkeeping property keys that never reach the front matter: the title
// feeds the slug and file name, published drives the posts/drafts split.
var frontMatterBlocklist = map[string]struct{}{
	"title":     {},
	"published": {},
}

// FrontMatter is a page's sanitized metadata header. Fields holds only
// serializable values: strings, lists of strings, dates, and whatever
// unexpected values sanitization passed through untouched.
type FrontMatter struct {
	Title  string
	Fields map[string]any
}

// BuildFrontMatter derives the front matter for a page from its raw property
// map. layout falls back to the configured default and published_at to the
// page's last-modified date (UTC) when the properties carry neither.
// Empty-string values are dropped.
func BuildFrontMatter(title string, properties map[string]any, lastModified time.Time, cfg Config) FrontMatter {
	fields := make(map[string]any, len(properties)+2)
	for k, v := range properties {
		if _, blocked := frontMatterBlocklist[k]; blocked {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		fields[k] = sanitizeValue(v)
	}
	if _, ok := fields["layout"]; !ok {
		fields["layout"] = cfg.DefaultLayout
	}
	if _, ok := fields["published_at"]; !ok {
		y, m, d := lastModified.UTC().Date()
		fields["published_at"] = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return FrontMatter{Title: title, Fields: fields}
}

// sanitizeValue reduces a property value to the serializable subset: date
// ranges collapse to their start date, booleans become the strings "true"
// and "false". Values of any other type pass through untouched.
func sanitizeValue(v any) any {
	switch val := v.(type) {
	case models.DateRange:
		return val.Start
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return v
	}
}

// Marshal serializes the front matter as a fenced YAML header. Key order is
// deterministic: layout, published_at, then the remaining keys sorted.
func (fm FrontMatter) Marshal() (string, error) {
	rest := make([]string, 0, len(fm.Fields))
	for k := range fm.Fields {
		if k == "layout" || k == "published_at" {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range append([]string{"layout", "published_at"}, rest...) {
		v, ok := fm.Fields[k]
		if !ok {
			continue
		}
		valNode := &yaml.Node{}
		if t, isDate := v.(time.Time); isDate {
			valNode.Kind = yaml.ScalarNode
			valNode.Value = t.Format("2006-01-02")
		} else if err := valNode.Encode(v); err != nil {
			return "", fmt.Errorf("render: encode front matter key %q: %w", k, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k}, valNode)
	}

	out, err := yaml.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("render: marshal front matter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(out)
	sb.WriteString("---\n")
	return sb.String(), nil
}
