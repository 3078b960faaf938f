package cmd

import (
	"fmt"
	"os"

	"github.com/masmgr/commitgraph/config"
	"github.com/masmgr/commitgraph/internal/output"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "commitgraph",
		Usage:   "Lay out and draw the commit graph of a Git repository",
		Version: "1.0.0",
		Commands: []*cli.Command{
			GraphCmd(),
			BranchesCmd(),
			ShowCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, yaml, csv, svg)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of rows to print (0 prints all)",
		},
		&cli.IntFlag{
			Name:  "max-commits",
			Usage: "Maximum number of commits to load (0 loads all)",
		},
		&cli.StringSliceFlag{
			Name:    "priority",
			Aliases: []string{"p"},
			Usage:   "Branch kept in the leftmost columns (can be specified multiple times, in order)",
		},
		&cli.BoolFlag{
			Name:  "first-parent",
			Usage: "Only follow the first parent of each commit",
		},
		&cli.BoolFlag{
			Name:  "mute-merges",
			Usage: "De-emphasize merge commits",
		},
		&cli.BoolFlag{
			Name:  "mute-not-head",
			Usage: "De-emphasize commits that are not ancestors of HEAD",
		},
		&cli.StringFlag{
			Name:  "style",
			Usage: "Curve style for SVG output (rounded, angular)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns on ref names to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns on ref names to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "History reader (go-git, git-cli)",
		},
		&cli.BoolFlag{
			Name:  "hide-remotes",
			Usage: "Do not show remote-tracking branches",
		},
		&cli.BoolFlag{
			Name:  "hide-tags",
			Usage: "Do not show tags",
		},
		&cli.BoolFlag{
			Name:  "hide-stashes",
			Usage: "Do not show stashes",
		},
		&cli.BoolFlag{
			Name:  "hide-uncommitted",
			Usage: "Do not show the uncommitted changes row",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "yaml", "yml":
		return output.FormatYAML
	case "csv":
		return output.FormatCSV
	case "svg":
		return output.FormatSVG
	default:
		return output.FormatConsole
	}
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyOverrides(c, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides copies explicitly set CLI flags over the loaded configuration.
func applyOverrides(c *cli.Context, cfg *config.Config) error {
	if priority := c.StringSlice("priority"); len(priority) > 0 {
		cfg.Graph.PriorityBranches = priority
	}
	if c.IsSet("first-parent") {
		cfg.Graph.FirstParentOnly = c.Bool("first-parent")
	}
	if c.IsSet("mute-merges") {
		cfg.Graph.MuteMergeCommits = c.Bool("mute-merges")
	}
	if c.IsSet("mute-not-head") {
		cfg.Graph.MuteCommitsNotAncestorsOfHead = c.Bool("mute-not-head")
	}
	if style := c.String("style"); style != "" {
		cfg.Render.Style = config.Style(style)
	}

	if c.IsSet("max-commits") {
		cfg.Reader.MaxCommits = c.Int("max-commits")
	}
	if backend := c.String("backend"); backend != "" {
		cfg.Reader.Backend = backend
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Reader.IncludeRefs = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Reader.ExcludeRefs = excludes
	}
	if c.Bool("hide-remotes") {
		cfg.Reader.ShowRemoteBranches = false
	}
	if c.Bool("hide-tags") {
		cfg.Reader.ShowTags = false
	}
	if c.Bool("hide-stashes") {
		cfg.Reader.ShowStashes = false
	}
	if c.Bool("hide-uncommitted") {
		cfg.Reader.ShowUncommittedChanges = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
