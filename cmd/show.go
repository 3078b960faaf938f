package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/masmgr/commitgraph/internal/git"
	"github.com/masmgr/commitgraph/internal/graph"
	"github.com/urfave/cli/v2"
)

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"s"},
		Usage:     "Show where a commit sits in the layout",
		ArgsUsage: "<hash>",
		Flags:     commonFlags(),
		Action:    showAction,
	}
}

func showAction(c *cli.Context) error {
	query := c.Args().First()
	if query == "" {
		return errors.New("show requires a commit hash")
	}

	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		commit, err := resolveCommit(ctx.Graph, ctx.History.Commits, query)
		if err != nil {
			return err
		}
		printCommitDetail(c.App.Writer, ctx.Graph, ctx.History.Commits[commit.Row], commit)
		return nil
	})
}

// resolveCommit finds a commit by full hash, falling back to a unique prefix.
func resolveCommit(g *graph.Graph, records []git.CommitRecord, query string) (graph.Commit, error) {
	if c, err := g.CommitByHash(query); err == nil {
		return c, nil
	}

	row := -1
	for i, rec := range records {
		if !strings.HasPrefix(rec.Hash, query) {
			continue
		}
		if row >= 0 {
			return graph.Commit{}, fmt.Errorf("ambiguous hash %q", query)
		}
		row = i
	}
	if row < 0 {
		return graph.Commit{}, fmt.Errorf("%q: %w", query, graph.ErrCommitNotFound)
	}
	c, _ := g.Commit(row)
	return c, nil
}

func printCommitDetail(w io.Writer, g *graph.Graph, rec git.CommitRecord, c graph.Commit) {
	label := color.New(color.FgHiBlack)
	field := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", label.Sprintf("%-9s", name+":"), value)
	}

	color.New(color.FgYellow).Fprintln(w, rec.Hash)
	field("Row", strconv.Itoa(c.Row))
	if c.Column < 0 {
		field("Column", "-")
	} else {
		field("Column", strconv.Itoa(c.Column))
		field("Branch", branchDisplayName(g, c))
	}
	if row, ok := g.NearestParentRow(c.Row); ok {
		field("Parent", strconv.Itoa(row))
	}
	if row, ok := g.NearestChildRow(c.Row); ok {
		field("Child", strconv.Itoa(row))
	}
	if flags := commitFlags(c); len(flags) > 0 {
		field("Flags", strings.Join(flags, ", "))
	}
	if rec.Message != "" {
		fmt.Fprintf(w, "\n    %s\n", rec.Message)
	}
}

func branchDisplayName(g *graph.Graph, c graph.Commit) string {
	if name := g.BranchName(c); name != "" {
		return name
	}
	return "(orphan)"
}

func commitFlags(c graph.Commit) []string {
	var flags []string
	if !c.Committed {
		flags = append(flags, "uncommitted")
	}
	if c.IsCurrent {
		flags = append(flags, "HEAD")
	}
	if c.IsMerge() {
		flags = append(flags, "merge")
	}
	if c.IsStash {
		flags = append(flags, "stash")
	}
	if c.Muted {
		flags = append(flags, "muted")
	}
	if c.Droppable {
		flags = append(flags, "droppable")
	}
	return flags
}
