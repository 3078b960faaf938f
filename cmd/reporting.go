package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/masmgr/commitgraph/internal/output"
)

func writeGraphReport(c *cli.Context, ctx *CommandContext) error {
	opts := ctx.OutputOptions(c)
	writer := output.NewGraphReportWriter(opts.Format)
	return writer.Write(ctx.Report(), opts)
}

func writeBranchReport(c *cli.Context, ctx *CommandContext) error {
	opts := ctx.OutputOptions(c)
	writer := output.NewBranchReportWriter(opts.Format)
	return writer.Write(ctx.Report(), opts)
}
