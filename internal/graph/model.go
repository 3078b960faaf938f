package graph

import (
	"github.com/masmgr/commitgraph/internal/git"
)

// BranchID indexes the branch arena of a layout.
type BranchID int

// NoBranch marks a commit without a branch or a branch that follows nothing.
const NoBranch BranchID = -1

// CurveTiming describes where a line segment bends between its endpoints.
type CurveTiming int

const (
	// NoCurve is a straight vertical segment.
	NoCurve CurveTiming = iota
	// CurveFirst bends immediately after leaving the child commit.
	CurveFirst
	// CurveLast stays straight until just before reaching the parent.
	CurveLast
)

// String returns a string representation of the curve timing.
func (c CurveTiming) String() string {
	switch c {
	case NoCurve:
		return "none"
	case CurveFirst:
		return "first"
	case CurveLast:
		return "last"
	default:
		return "unknown"
	}
}

// Point is a grid position: X is the column, Y the row.
type Point struct {
	X int
	Y int
}

// Line is one segment from a commit (P1) to one of its parents (P2), in grid units.
type Line struct {
	P1          Point
	P2          Point
	Curve       CurveTiming
	Committed   bool
	ColourIndex int
}

// commit is the working state of one row during layout.
type commit struct {
	rec         *git.CommitRecord
	row         int
	firstParent int   // row of the first parent, -1 when not loaded
	parents     []int // rows, in parent order
	children    []int // rows, ascending
	defined     []BranchID
	inferred    []BranchID
	branch      BranchID
	droppable   bool
	muted       bool
}

func (c *commit) hasHeads() bool {
	return len(c.defined) > 0 || len(c.inferred) > 0
}

// heads returns the defined heads, or the inferred ones when none are defined.
func (c *commit) heads() []BranchID {
	if len(c.defined) > 0 {
		return c.defined
	}
	return c.inferred
}

// branch is one entry of the branch arena.
type branch struct {
	name      string
	shortName string // last path segment, compared when deduplicating
	tracked   string // name without the remote prefix, matched against priority names
	synthetic bool
	column    int
	follows   BranchID
	priority  bool
	slot      int // index in the priority list, -1 when not a priority branch
	tip       int
	lines     []Line
}

// insertID adds id to the sorted set ids and reports whether it was added.
func insertID(ids []BranchID, id BranchID) ([]BranchID, bool) {
	i := 0
	for i < len(ids) && ids[i] < id {
		i++
	}
	if i < len(ids) && ids[i] == id {
		return ids, false
	}
	ids = append(ids, NoBranch)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids, true
}

func containsID(ids []BranchID, id BranchID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
		if x > id {
			return false
		}
	}
	return false
}

// mergeIDs adds every id of src to dst and reports whether dst changed.
func mergeIDs(dst []BranchID, src []BranchID) ([]BranchID, bool) {
	changed := false
	for _, id := range src {
		var added bool
		dst, added = insertID(dst, id)
		changed = changed || added
	}
	return dst, changed
}
