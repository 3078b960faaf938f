package output

import (
	"time"

	"github.com/masmgr/commitgraph/config"
	"github.com/masmgr/commitgraph/internal/git"
	"github.com/masmgr/commitgraph/internal/graph"
)

// Compile-time interface conformance checks.
var (
	// GraphReportWriter implementations
	_ GraphReportWriter = (*ConsoleGraphWriter)(nil)
	_ GraphReportWriter = (*JSONGraphWriter)(nil)
	_ GraphReportWriter = (*YAMLGraphWriter)(nil)
	_ GraphReportWriter = (*CSVGraphWriter)(nil)
	_ GraphReportWriter = (*SVGGraphWriter)(nil)

	// BranchReportWriter implementations
	_ BranchReportWriter = (*ConsoleBranchWriter)(nil)
	_ BranchReportWriter = (*JSONBranchWriter)(nil)
	_ BranchReportWriter = (*YAMLBranchWriter)(nil)
	_ BranchReportWriter = (*CSVBranchWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatCSV     OutputFormat = "csv"
	FormatSVG     OutputFormat = "svg"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Limit      int // rows to print, 0 for all
	OutputPath string
	Render     config.RenderConfig
}

// GraphReport holds a computed layout together with the records it was built from.
type GraphReport struct {
	RepoPath      string
	GeneratedAt   time.Time
	HEAD          string
	HeadRef       string
	MoreAvailable bool
	Graph         *graph.Graph
	Records       []git.CommitRecord // indexed by row
}

// GraphReportWriter writes the full commit graph.
type GraphReportWriter interface {
	Write(report *GraphReport, options OutputOptions) error
}

// BranchReportWriter writes the branch and channel summary.
type BranchReportWriter interface {
	Write(report *GraphReport, options OutputOptions) error
}

// NewGraphReportWriter creates a graph writer for the specified format.
func NewGraphReportWriter(format OutputFormat) GraphReportWriter {
	switch format {
	case FormatJSON:
		return &JSONGraphWriter{}
	case FormatYAML:
		return &YAMLGraphWriter{}
	case FormatCSV:
		return &CSVGraphWriter{}
	case FormatSVG:
		return &SVGGraphWriter{}
	default:
		return &ConsoleGraphWriter{}
	}
}

// NewBranchReportWriter creates a branch writer for the specified format.
// Formats without a branch rendition fall back to the console table.
func NewBranchReportWriter(format OutputFormat) BranchReportWriter {
	switch format {
	case FormatJSON:
		return &JSONBranchWriter{}
	case FormatYAML:
		return &YAMLBranchWriter{}
	case FormatCSV:
		return &CSVBranchWriter{}
	default:
		return &ConsoleBranchWriter{}
	}
}
