package render

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	slugSpaceRe = regexp.MustCompile(`\s+`)
	slugStripRe = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify returns the URL-safe form of a title: lowercase, whitespace runs
// collapsed to single hyphens, everything outside [a-z0-9-] stripped.
// Applying it to an already-slugified string changes nothing.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugSpaceRe.ReplaceAllString(s, "-")
	return slugStripRe.ReplaceAllString(s, "")
}

// TemplateError reports a permalink pattern placeholder with no matching
// substitution key.
type TemplateError struct {
	Pattern string
	Key     string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("render: permalink pattern %q references unknown key %q", e.Pattern, e.Key)
}

// BuildPermalink fills the configured ${name} permalink pattern from the
// page's front matter. The substitution set is every front-matter field plus
// baseurl, the slugified title, slash-joined categories, and year/month/day
// split out of published_at. A placeholder outside that set returns a
// *TemplateError.
func BuildPermalink(fm FrontMatter, cfg Config) (string, error) {
	subst := make(map[string]string, len(fm.Fields)+6)
	for k, v := range fm.Fields {
		subst[k] = stringifyValue(v)
	}
	subst["baseurl"] = cfg.BaseURL
	subst["title"] = Slugify(fm.Title)
	if cats, ok := fm.Fields["categories"].([]string); ok {
		subst["categories"] = strings.Join(cats, "/")
	} else {
		subst["categories"] = ""
	}
	if published, ok := fm.Fields["published_at"].(time.Time); ok {
		subst["year"] = strconv.Itoa(published.Year())
		subst["month"] = strconv.Itoa(int(published.Month()))
		subst["day"] = strconv.Itoa(published.Day())
	}

	var missing string
	expanded := os.Expand(cfg.PermalinkPattern, func(name string) string {
		v, ok := subst[name]
		if !ok && missing == "" {
			missing = name
		}
		return v
	})
	if missing != "" {
		return "", &TemplateError{Pattern: cfg.PermalinkPattern, Key: missing}
	}
	return expanded, nil
}

// stringifyValue renders a front-matter value for URL substitution.
func stringifyValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02")
	case []string:
		return strings.Join(val, "/")
	default:
		return fmt.Sprintf("%v", val)
	}
}
