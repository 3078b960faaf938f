package cmd

import (
	"github.com/urfave/cli/v2"
)

// BranchesCmd returns the branches command.
func BranchesCmd() *cli.Command {
	return &cli.Command{
		Name:    "branches",
		Aliases: []string{"b"},
		Usage:   "List the branches of the layout with their columns",
		Flags:   commonFlags(),
		Action:  branchesAction,
	}
}

func branchesAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		return writeBranchReport(c, ctx)
	})
}
