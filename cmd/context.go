package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/masmgr/commitgraph/config"
	"github.com/masmgr/commitgraph/internal/git"
	"github.com/masmgr/commitgraph/internal/graph"
	"github.com/masmgr/commitgraph/internal/output"
	"github.com/urfave/cli/v2"
)

// openReader opens the history reader for a repository. Tests replace it to
// serve fixed histories.
var openReader = func(opts git.ReadOptions) (git.RepositoryReader, error) {
	reader, err := git.NewHistoryReader(opts)
	if err != nil {
		return nil, err
	}
	return reader, nil
}

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all graph commands.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	History  *git.History
	Graph    *graph.Graph
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading, repository opening, history reading and layout.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	reader, err := openReader(readOptions(cfg, repoPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	history, err := reader.ReadCommits(c.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return &CommandContext{
		Config:   cfg,
		RepoPath: repoPath,
		History:  history,
		Graph:    layoutHistory(cfg, history),
	}, nil
}

// readOptions maps the reader section of the configuration onto git.ReadOptions.
func readOptions(cfg *config.Config, repoPath string) git.ReadOptions {
	return git.ReadOptions{
		RepoPath:               repoPath,
		MaxCommits:             cfg.Reader.MaxCommits,
		ShowRemoteBranches:     cfg.Reader.ShowRemoteBranches,
		ShowTags:               cfg.Reader.ShowTags,
		ShowStashes:            cfg.Reader.ShowStashes,
		ShowUncommittedChanges: cfg.Reader.ShowUncommittedChanges,
		IncludeRefs:            cfg.Reader.IncludeRefs,
		ExcludeRefs:            cfg.Reader.ExcludeRefs,
		Backend:                git.Backend(cfg.Reader.Backend),
	}
}

// layoutHistory runs the layout engine. Without configured priority branches
// the checked-out branch keeps the leftmost column.
func layoutHistory(cfg *config.Config, history *git.History) *graph.Graph {
	opts := cfg.Graph
	if len(opts.PriorityBranches) == 0 && history.HeadRef != "" {
		opts.PriorityBranches = []string{history.HeadRef}
	}
	return graph.NewLayouter(opts, len(cfg.Render.Colours)).Layout(history.Commits, history.HEAD)
}

// HasCommits returns true if the repository has any commits to draw.
func (ctx *CommandContext) HasCommits() bool {
	return ctx.Graph.Len() > 0
}

// PrintNoCommitsMessage prints a message when the repository has no commits.
func (ctx *CommandContext) PrintNoCommitsMessage() {
	color.Yellow("No commits found in %s.", ctx.RepoPath)
}

// Report builds the report handed to the output writers.
func (ctx *CommandContext) Report() *output.GraphReport {
	return &output.GraphReport{
		RepoPath:      ctx.RepoPath,
		GeneratedAt:   time.Now(),
		HEAD:          ctx.History.HEAD,
		HeadRef:       ctx.History.HeadRef,
		MoreAvailable: ctx.History.MoreAvailable,
		Graph:         ctx.Graph,
		Records:       ctx.History.Commits,
	}
}

// OutputOptions creates OutputOptions from CLI flags and the render configuration.
func (ctx *CommandContext) OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Limit:      c.Int("limit"),
		OutputPath: c.String("output"),
		Render:     ctx.Config.Render,
	}
}

// executeWithContext builds the command context and runs fn unless the
// repository is empty.
func executeWithContext(c *cli.Context, fn func(ctx *CommandContext, c *cli.Context) error) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	if !ctx.HasCommits() {
		ctx.PrintNoCommitsMessage()
		return nil
	}
	return fn(ctx, c)
}
