package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CSVGraphWriter writes one CSV row per commit.
type CSVGraphWriter struct{}

// Write outputs the commit graph as CSV.
func (w *CSVGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"Row", "Hash", "Column", "ColourIndex", "Branch", "Parents",
		"Committed", "Droppable", "Muted", "Refs", "Author", "Date", "Message"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	g := report.Graph
	for _, c := range limitRows(g.Commits(), options.Limit) {
		rec := report.Records[c.Row]
		date := ""
		if !rec.Date.IsZero() {
			date = rec.Date.Format(reportDateTimeLayout)
		}
		row := []string{
			strconv.Itoa(c.Row),
			c.Hash,
			strconv.Itoa(c.Column),
			strconv.Itoa(c.ColourIndex),
			g.BranchName(c),
			joinInts(c.Parents, " "),
			strconv.FormatBool(c.Committed),
			strconv.FormatBool(c.Droppable),
			strconv.FormatBool(c.Muted),
			strings.Join(refLabels(rec, report.HeadRef), "; "),
			rec.Author,
			date,
			rec.Message,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVBranchWriter writes one CSV row per branch.
type CSVBranchWriter struct{}

// Write outputs the branch summary as CSV.
func (w *CSVBranchWriter) Write(report *GraphReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"ID", "Name", "Column", "Follows", "Priority", "Synthetic", "Tip", "Segments"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	g := report.Graph
	for _, br := range g.Branches() {
		row := []string{
			fmt.Sprintf("%d", br.ID),
			br.Name,
			strconv.Itoa(br.Column),
			followsName(g, br),
			strconv.FormatBool(br.Priority),
			strconv.FormatBool(br.Synthetic),
			strconv.Itoa(br.Tip),
			strconv.Itoa(len(br.Lines)),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
