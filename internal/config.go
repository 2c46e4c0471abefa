package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Notion NotionConfig      `yaml:"notion"`
	Site   SiteConfig        `yaml:"site"`
	Output OutputConfig      `yaml:"output"`
	State  StateConfig       `yaml:"state"`
}

// Validate validates everything a conversion run or the preview server
// needs. Notion credentials are validated separately, since status and
// serve never talk to the API.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.State.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel    slog.Level `yaml:"log_level"`
	Parallelism int        `yaml:"parallelism"`
	HTTP        HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Parallelism, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// HTTPConfig holds the preview server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the preview server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// NotionConfig holds the Notion API credentials and the source database.
type NotionConfig struct {
	Token      string `yaml:"token"`
	DatabaseID string `yaml:"database_id"`
}

// Validate validates the Notion configuration. Called only by commands that
// actually reach the API.
func (c *NotionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Token, validation.Required),
		validation.Field(&c.DatabaseID, validation.Required),
	)
}

// SiteConfig holds the settings the renderer reads: the default layout, the
// permalink pattern, and the site base URL.
type SiteConfig struct {
	DefaultLayout    string `yaml:"default_layout"`
	PermalinkPattern string `yaml:"permalink_pattern"`
	BaseURL          string `yaml:"baseurl"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultLayout, validation.Required),
		validation.Field(&c.PermalinkPattern, validation.Required),
	)
}

// OutputConfig holds the destination directories. DraftsDir may be empty, in
// which case draft pages are skipped entirely.
type OutputConfig struct {
	PostsDir  string `yaml:"posts_dir"`
	DraftsDir string `yaml:"drafts_dir"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PostsDir, validation.Required),
	)
}

// StateConfig holds the conversion-state database location.
type StateConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the state configuration.
func (c *StateConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel:    slog.LevelInfo,
			Parallelism: 4,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Site: SiteConfig{
			DefaultLayout:    "post",
			PermalinkPattern: "${baseurl}/${year}/${month}/${day}/${title}",
		},
		Output: OutputConfig{
			PostsDir: "./posts",
		},
		State: StateConfig{
			Path: "./ansuz.db",
		},
	}
}
