// Package graph lays out a commit history as a two-dimensional graph: every
// commit is assigned a row and a column (channel), and parent links become
// line segments owned by the branch drawing them.
package graph

import (
	"github.com/masmgr/commitgraph/config"
	"github.com/masmgr/commitgraph/internal/git"
)

// Layouter computes graph layouts with a fixed configuration.
type Layouter struct {
	options     config.GraphConfig
	paletteSize int
}

// NewLayouter creates a layouter. paletteSize is the number of colours the
// renderer cycles through; zero leaves colour indexes equal to columns.
func NewLayouter(options config.GraphConfig, paletteSize int) *Layouter {
	return &Layouter{options: options, paletteSize: paletteSize}
}

// Layout assigns every commit a branch and column and builds the line
// segments between commits. records must be ordered newest first with every
// commit before its parents; head is the hash used as reference for muting
// and droppable detection and may be empty.
func (l *Layouter) Layout(records []git.CommitRecord, head string) *Graph {
	b := newBuilder(records, l.options, l.paletteSize)

	b.linkTopology()
	b.discoverRefs()
	b.propagateHeads()
	b.inheritUncommitted()

	b.assignChannels()
	b.collapseLeft()
	b.buildLines()

	b.markMuted(head)
	b.markDroppable(head)

	return b.finalize(head)
}

// builder holds the mutable state of one layout pass.
type builder struct {
	options     config.GraphConfig
	paletteSize int

	commits  []commit
	lookup   map[string]int
	branches []branch
	byRef    map[string]BranchID

	// discovered lists ref branches in the row order their tips were met.
	discovered []BranchID
	orphans    []BranchID
}

func newBuilder(records []git.CommitRecord, options config.GraphConfig, paletteSize int) *builder {
	b := &builder{
		options:     options,
		paletteSize: paletteSize,
		commits:     make([]commit, len(records)),
		lookup:      make(map[string]int, len(records)),
		byRef:       make(map[string]BranchID),
	}
	for i := range records {
		b.commits[i] = commit{
			rec:         &records[i],
			row:         i,
			firstParent: -1,
			branch:      NoBranch,
		}
		if _, dup := b.lookup[records[i].Hash]; !dup {
			b.lookup[records[i].Hash] = i
		}
	}
	return b
}

func (b *builder) newBranch(name, tracked string, tip int) BranchID {
	b.branches = append(b.branches, branch{
		name:      name,
		shortName: shortName(name),
		tracked:   tracked,
		column:    -1,
		follows:   NoBranch,
		slot:      -1,
		tip:       tip,
	})
	return BranchID(len(b.branches) - 1)
}

// find resolves the branch that owns the channel of id, compressing the
// follows chain on the way.
func (b *builder) find(id BranchID) BranchID {
	root := id
	for b.branches[root].follows != NoBranch {
		root = b.branches[root].follows
	}
	for id != root {
		next := b.branches[id].follows
		b.branches[id].follows = root
		id = next
	}
	return root
}

func (b *builder) columnOf(row int) int {
	id := b.commits[row].branch
	if id == NoBranch {
		return -1
	}
	return b.branches[b.find(id)].column
}

func (b *builder) colourIndex(column int) int {
	if column < 0 || b.paletteSize <= 0 {
		return column
	}
	return column % b.paletteSize
}
