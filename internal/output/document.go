package output

import (
	"time"

	"github.com/masmgr/commitgraph/internal/graph"
)

// GraphDocument is the serialized form of a layout shared by the JSON and YAML writers.
type GraphDocument struct {
	RepoPath      string           `json:"repo" yaml:"repo"`
	GeneratedAt   string           `json:"generatedAt" yaml:"generatedAt"`
	Head          string           `json:"head,omitempty" yaml:"head,omitempty"`
	HeadRef       string           `json:"headRef,omitempty" yaml:"headRef,omitempty"`
	MoreAvailable bool             `json:"moreAvailable" yaml:"moreAvailable"`
	Width         int              `json:"width" yaml:"width"`
	Commits       []CommitDocument `json:"commits" yaml:"commits"`
	Branches      []BranchDocument `json:"branches" yaml:"branches"`
}

// CommitDocument is one row of the layout.
type CommitDocument struct {
	Hash        string   `json:"hash" yaml:"hash"`
	Row         int      `json:"row" yaml:"row"`
	Column      int      `json:"column" yaml:"column"`
	ColourIndex int      `json:"colourIndex" yaml:"colourIndex"`
	Branch      string   `json:"branch" yaml:"branch"`
	Parents     []int    `json:"parents" yaml:"parents"`
	Committed   bool     `json:"committed" yaml:"committed"`
	Droppable   bool     `json:"droppable" yaml:"droppable"`
	Muted       bool     `json:"muted" yaml:"muted"`
	Stash       bool     `json:"stash,omitempty" yaml:"stash,omitempty"`
	Current     bool     `json:"current,omitempty" yaml:"current,omitempty"`
	Refs        []string `json:"refs,omitempty" yaml:"refs,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	Message     string   `json:"message" yaml:"message"`
}

// BranchDocument is one branch with the segments it draws.
type BranchDocument struct {
	ID        int            `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Column    int            `json:"column" yaml:"column"`
	Follows   *int           `json:"follows,omitempty" yaml:"follows,omitempty"`
	Priority  bool           `json:"priority" yaml:"priority"`
	Synthetic bool           `json:"synthetic" yaml:"synthetic"`
	Tip       int            `json:"tip" yaml:"tip"`
	Lines     []LineDocument `json:"lines" yaml:"lines"`
}

// LineDocument is one segment in grid units.
type LineDocument struct {
	X1          int    `json:"x1" yaml:"x1"`
	Y1          int    `json:"y1" yaml:"y1"`
	X2          int    `json:"x2" yaml:"x2"`
	Y2          int    `json:"y2" yaml:"y2"`
	Curve       string `json:"curve" yaml:"curve"`
	Committed   bool   `json:"committed" yaml:"committed"`
	ColourIndex int    `json:"colourIndex" yaml:"colourIndex"`
}

func newGraphDocument(report *GraphReport, options OutputOptions) GraphDocument {
	g := report.Graph
	doc := GraphDocument{
		RepoPath:      report.RepoPath,
		GeneratedAt:   report.GeneratedAt.Format(time.RFC3339),
		Head:          report.HEAD,
		HeadRef:       report.HeadRef,
		MoreAvailable: report.MoreAvailable,
		Width:         g.ContentWidth(),
		Branches:      newBranchDocuments(g),
	}

	commits := limitRows(g.Commits(), options.Limit)
	doc.Commits = make([]CommitDocument, len(commits))
	for i, c := range commits {
		rec := report.Records[c.Row]
		parents := c.Parents
		if parents == nil {
			parents = []int{}
		}
		cd := CommitDocument{
			Hash:        c.Hash,
			Row:         c.Row,
			Column:      c.Column,
			ColourIndex: c.ColourIndex,
			Branch:      g.BranchName(c),
			Parents:     parents,
			Committed:   c.Committed,
			Droppable:   c.Droppable,
			Muted:       c.Muted,
			Stash:       c.IsStash,
			Current:     c.IsCurrent,
			Refs:        refLabels(rec, report.HeadRef),
			Author:      rec.Author,
			Message:     rec.Message,
		}
		if !rec.Date.IsZero() {
			cd.Date = rec.Date.Format(time.RFC3339)
		}
		doc.Commits[i] = cd
	}
	return doc
}

func newBranchDocuments(g *graph.Graph) []BranchDocument {
	branches := g.Branches()
	docs := make([]BranchDocument, len(branches))
	for i, br := range branches {
		bd := BranchDocument{
			ID:        int(br.ID),
			Name:      br.Name,
			Column:    br.Column,
			Priority:  br.Priority,
			Synthetic: br.Synthetic,
			Tip:       br.Tip,
			Lines:     make([]LineDocument, len(br.Lines)),
		}
		if br.Follows != graph.NoBranch {
			follows := int(br.Follows)
			bd.Follows = &follows
		}
		for j, l := range br.Lines {
			bd.Lines[j] = LineDocument{
				X1:          l.P1.X,
				Y1:          l.P1.Y,
				X2:          l.P2.X,
				Y2:          l.P2.Y,
				Curve:       l.Curve.String(),
				Committed:   l.Committed,
				ColourIndex: l.ColourIndex,
			}
		}
		docs[i] = bd
	}
	return docs
}
