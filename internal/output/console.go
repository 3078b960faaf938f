package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/masmgr/commitgraph/internal/graph"
)

const consoleMessageWidth = 72

// consolePalette approximates the default SVG palette with terminal colours.
var consolePalette = []*color.Color{
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgHiMagenta),
	color.New(color.FgRed),
	color.New(color.FgCyan),
	color.New(color.FgHiRed),
	color.New(color.FgHiGreen),
	color.New(color.FgHiYellow),
	color.New(color.FgHiBlue),
	color.New(color.FgHiCyan),
}

var (
	hashColor  = color.New(color.FgYellow)
	refsColor  = color.New(color.FgCyan, color.Bold)
	dateColor  = color.New(color.FgHiBlack)
	mutedColor = color.New(color.FgHiBlack)
)

// cell is one column of one row in the text rendering.
type cell struct {
	glyph  rune
	colour int
}

// graphCells rasterizes the layout: '*' for a vertex, 'o' for a muted vertex
// and '|' where a segment passes through a row. A segment occupies the column
// it runs straight in, which depends on where it bends.
func graphCells(g *graph.Graph) [][]cell {
	width := g.ContentWidth()
	cells := make([][]cell, g.Len())
	for r := range cells {
		cells[r] = make([]cell, width)
		for x := range cells[r] {
			cells[r][x] = cell{glyph: ' ', colour: -1}
		}
	}

	for _, l := range g.Lines() {
		col := l.P1.X
		if l.Curve == graph.CurveFirst {
			col = l.P2.X
		}
		if col < 0 {
			continue
		}
		for y := l.P1.Y + 1; y < l.P2.Y; y++ {
			if cells[y][col].glyph == ' ' {
				cells[y][col] = cell{glyph: '|', colour: l.ColourIndex}
			}
		}
	}

	for _, c := range g.Commits() {
		if c.Column < 0 {
			continue
		}
		glyph := '*'
		if c.Muted {
			glyph = 'o'
		}
		cells[c.Row][c.Column] = cell{glyph: glyph, colour: c.ColourIndex}
	}
	return cells
}

func renderCells(row []cell) string {
	var sb strings.Builder
	for i, c := range row {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if c.colour < 0 {
			sb.WriteRune(c.glyph)
			continue
		}
		sb.WriteString(consolePalette[c.colour%len(consolePalette)].Sprint(string(c.glyph)))
	}
	return sb.String()
}

// ConsoleGraphWriter draws the commit graph as coloured text.
type ConsoleGraphWriter struct{}

// Write outputs the commit graph to the console.
func (w *ConsoleGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	g := report.Graph
	color.New(color.FgGreen).Fprintln(out, "Commit Graph")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	if report.HEAD != "" {
		head := report.HEAD
		if len(head) > 8 {
			head = head[:8]
		}
		if report.HeadRef != "" {
			fmt.Fprintf(out, "HEAD: %s (%s)\n", head, report.HeadRef)
		} else {
			fmt.Fprintf(out, "HEAD: %s (detached)\n", head)
		}
	}
	fmt.Fprintf(out, "Commits: %d, Columns: %d\n\n", g.Len(), g.ContentWidth())

	cells := graphCells(g)
	for _, c := range limitRows(g.Commits(), options.Limit) {
		rec := report.Records[c.Row]

		var sb strings.Builder
		sb.WriteString(renderCells(cells[c.Row]))
		sb.WriteString("  ")
		sb.WriteString(hashColor.Sprint(displayHash(rec)))
		if labels := refLabels(rec, report.HeadRef); len(labels) > 0 {
			sb.WriteByte(' ')
			sb.WriteString(refsColor.Sprint("(" + strings.Join(labels, ", ") + ")"))
		}
		sb.WriteByte(' ')
		msg := truncateMessage(rec.Message, consoleMessageWidth)
		if c.Muted {
			msg = mutedColor.Sprint(msg)
		}
		sb.WriteString(msg)
		if date := relativeDate(rec.Date, report.GeneratedAt); date != "" {
			sb.WriteByte(' ')
			sb.WriteString(dateColor.Sprint(date))
		}
		fmt.Fprintln(out, sb.String())
	}

	if report.MoreAvailable {
		color.New(color.FgYellow).Fprintln(out, "\nMore commits are available; raise --max-commits to load them.")
	}
	return nil
}

// ConsoleBranchWriter prints the branch summary as a table.
type ConsoleBranchWriter struct{}

// Write outputs the branch summary to the console.
func (w *ConsoleBranchWriter) Write(report *GraphReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	g := report.Graph
	color.New(color.FgGreen).Fprintln(out, "Branches")
	fmt.Fprintf(out, "Repository: %s\n\n", report.RepoPath)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.AppendHeader(table.Row{"#", "Branch", "Column", "Follows", "Priority", "Tip", "Segments"})

	for _, br := range g.Branches() {
		tip := ""
		if br.Tip >= 0 && br.Tip < len(report.Records) {
			tip = displayHash(report.Records[br.Tip])
		}
		priority := ""
		if br.Priority {
			priority = "yes"
		}
		tbl.AppendRow(table.Row{int(br.ID), branchLabel(br), br.Column, followsName(g, br), priority, tip, len(br.Lines)})
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d", len(g.Branches())), fmt.Sprintf("Width: %d", g.ContentWidth())})
	fmt.Fprintln(out, tbl.Render())
	return nil
}
