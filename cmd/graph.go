package cmd

import (
	"github.com/urfave/cli/v2"
)

// GraphCmd returns the graph command.
func GraphCmd() *cli.Command {
	return &cli.Command{
		Name:    "graph",
		Aliases: []string{"g"},
		Usage:   "Draw the commit graph",
		Flags:   commonFlags(),
		Action:  graphAction,
	}
}

func graphAction(c *cli.Context) error {
	return executeWithContext(c, func(ctx *CommandContext, c *cli.Context) error {
		return writeGraphReport(c, ctx)
	})
}
