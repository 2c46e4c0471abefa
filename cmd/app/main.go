package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

// loadConfig builds the effective configuration: defaults, then the config
// file when present, then command-line flags on top.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	configPath := cmd.String("config")
	if _, err := pkgconfig.LoadIfExists(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if v := cmd.String("token"); v != "" {
		cfg.Notion.Token = v
	}
	if v := cmd.String("database"); v != "" {
		cfg.Notion.DatabaseID = v
	}
	if v := cmd.String("dest"); v != "" {
		cfg.Output.PostsDir = v
	}
	if v := cmd.String("drafts"); v != "" {
		cfg.Output.DraftsDir = v
	}
	if v := cmd.Int("parallel"); v != 0 {
		cfg.App.Parallelism = int(v)
	}
	if v := cmd.Int("port"); v != 0 {
		cfg.App.HTTP.Port = int(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runStatus(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rows, err := internal.Status(internal.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("app status error: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEST\tTITLE\tUPDATED")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.Dest, row.Title, row.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Serve(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app serve error: %w", err)
	}
	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "ansuz.yaml",
		Value:       "ansuz.yaml",
		Sources:     cli.EnvVars("ANSUZ_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:  "ansuz",
		Usage: "Convert a Notion database into Markdown posts for a static site generator",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "convert",
				Usage:  "Fetch the database and write Markdown posts",
				Action: runConvert,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "token",
						Usage:   "Notion integration token",
						Sources: cli.EnvVars("ANSUZ_NOTION_TOKEN"),
					},
					&cli.StringFlag{
						Name:    "database",
						Usage:   "Notion database ID",
						Sources: cli.EnvVars("ANSUZ_NOTION_DATABASE"),
					},
					&cli.StringFlag{
						Name:    "dest",
						Usage:   "Directory for published posts",
						Sources: cli.EnvVars("ANSUZ_DEST"),
					},
					&cli.StringFlag{
						Name:    "drafts",
						Usage:   "Directory for draft posts (drafts are skipped when unset)",
						Sources: cli.EnvVars("ANSUZ_DRAFTS"),
					},
					&cli.IntFlag{
						Name:    "parallel",
						Usage:   "Number of pages converted concurrently",
						Sources: cli.EnvVars("ANSUZ_PARALLEL"),
					},
				},
			},
			{
				Name:   "status",
				Usage:  "List converted pages from the state database",
				Action: runStatus,
			},
			{
				Name:   "serve",
				Usage:  "Serve the converted output locally",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Usage:   "Preview server port",
						Sources: cli.EnvVars("ANSUZ_PORT"),
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
