package graph

import "errors"

// ErrCommitNotFound is returned when a hash is not part of the layout.
var ErrCommitNotFound = errors.New("commit not found in graph")

// Commit is the layout result for one row.
type Commit struct {
	Hash        string
	Row         int
	Column      int // -1 when the commit has no branch
	ColourIndex int
	Branch      BranchID
	Parents     []int // rows of the linked parents, in parent order
	Children    []int // rows of the linked children, ascending
	Committed   bool
	Droppable   bool
	Muted       bool
	IsStash     bool
	IsCurrent   bool
}

// IsMerge reports whether more than one parent is linked.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// Branch is the layout result for one channel owner or alias.
type Branch struct {
	ID        BranchID
	Name      string // empty for branches synthesized for orphaned history
	Column    int    // effective column, resolved through Follows
	Follows   BranchID
	Priority  bool
	Synthetic bool
	Tip       int
	Lines     []Line
}

// Graph is an immutable layout. Slices returned by its methods must not be modified.
type Graph struct {
	commits   []Commit
	branches  []Branch
	byHash    map[string]int
	maxColumn int
}

// finalize turns the working state into output records, resolving every
// follows chain to an effective column once.
func (b *builder) finalize(head string) *Graph {
	g := &Graph{
		commits:   make([]Commit, len(b.commits)),
		branches:  make([]Branch, len(b.branches)),
		byHash:    b.lookup,
		maxColumn: -1,
	}

	for i := range b.branches {
		id := BranchID(i)
		root := b.find(id)
		br := &b.branches[i]
		follows := NoBranch
		if root != id {
			follows = root
		}
		g.branches[i] = Branch{
			ID:        id,
			Name:      br.name,
			Column:    b.branches[root].column,
			Follows:   follows,
			Priority:  br.priority,
			Synthetic: br.synthetic,
			Tip:       br.tip,
			Lines:     br.lines,
		}
	}

	for r := range b.commits {
		c := &b.commits[r]
		col := b.columnOf(r)
		g.commits[r] = Commit{
			Hash:        c.rec.Hash,
			Row:         r,
			Column:      col,
			ColourIndex: b.colourIndex(col),
			Branch:      c.branch,
			Parents:     c.parents,
			Children:    c.children,
			Committed:   !c.rec.IsUncommitted(),
			Droppable:   c.droppable,
			Muted:       c.muted,
			IsStash:     c.rec.Stash != nil,
			IsCurrent:   head != "" && c.rec.Hash == head,
		}
		g.maxColumn = max(g.maxColumn, col)
	}

	return g
}

// Len returns the number of rows.
func (g *Graph) Len() int {
	return len(g.commits)
}

// Commits returns every row in order.
func (g *Graph) Commits() []Commit {
	return g.commits
}

// Branches returns the branch arena, indexed by BranchID.
func (g *Graph) Branches() []Branch {
	return g.branches
}

// Commit returns the commit at row.
func (g *Graph) Commit(row int) (Commit, bool) {
	if row < 0 || row >= len(g.commits) {
		return Commit{}, false
	}
	return g.commits[row], true
}

// CommitByHash looks up a commit by its full hash.
func (g *Graph) CommitByHash(hash string) (Commit, error) {
	row, ok := g.byHash[hash]
	if !ok {
		return Commit{}, ErrCommitNotFound
	}
	return g.commits[row], nil
}

// Branch returns the branch with the given id.
func (g *Graph) Branch(id BranchID) (Branch, bool) {
	if id < 0 || int(id) >= len(g.branches) {
		return Branch{}, false
	}
	return g.branches[id], true
}

// BranchName returns the name of the branch a commit is attributed to.
func (g *Graph) BranchName(c Commit) string {
	br, ok := g.Branch(c.Branch)
	if !ok {
		return ""
	}
	return br.Name
}

// CommitsBetween returns the commits from rowA to rowB inclusive, in row
// order, regardless of argument order. Rows outside the graph are clamped.
func (g *Graph) CommitsBetween(rowA, rowB int) []Commit {
	if rowA > rowB {
		rowA, rowB = rowB, rowA
	}
	rowA = max(rowA, 0)
	rowB = min(rowB, len(g.commits)-1)
	if rowA > rowB {
		return nil
	}
	return g.commits[rowA : rowB+1]
}

// NearestParentRow returns the closest row below row holding one of its parents.
func (g *Graph) NearestParentRow(row int) (int, bool) {
	c, ok := g.Commit(row)
	if !ok || len(c.Parents) == 0 {
		return -1, false
	}
	nearest := c.Parents[0]
	for _, p := range c.Parents[1:] {
		nearest = min(nearest, p)
	}
	return nearest, true
}

// NearestChildRow returns the closest row above row holding one of its children.
func (g *Graph) NearestChildRow(row int) (int, bool) {
	c, ok := g.Commit(row)
	if !ok || len(c.Children) == 0 {
		return -1, false
	}
	return c.Children[len(c.Children)-1], true
}

// MaxColumn returns the highest column in use, or -1 for an empty graph.
func (g *Graph) MaxColumn() int {
	return g.maxColumn
}

// ContentWidth returns the number of columns the graph needs.
func (g *Graph) ContentWidth() int {
	return g.maxColumn + 1
}

// Lines returns every segment of every branch.
func (g *Graph) Lines() []Line {
	var lines []Line
	for _, br := range g.branches {
		lines = append(lines, br.Lines...)
	}
	return lines
}
