package graph

// buildLines walks every branch from its tip towards its roots and emits one
// segment per linked parent. A walk only continues into parents the branch
// owns; the owner of any other parent draws from there on.
func (b *builder) buildLines() {
	visited := make([]bool, len(b.commits))

	for i := range b.branches {
		id := BranchID(i)
		tip := b.branches[id].tip
		if tip < 0 || tip >= len(b.commits) || b.commits[tip].branch != id {
			continue
		}
		b.walkLines(id, tip, visited)
	}

	// Commits whose branch does not reach them from its tip (e.g. a fork
	// point claimed by a priority branch through a side chain).
	for r := range b.commits {
		if !visited[r] && b.commits[r].branch != NoBranch {
			b.walkLines(b.commits[r].branch, r, visited)
		}
	}
}

func (b *builder) walkLines(id BranchID, start int, visited []bool) {
	stack := []int{start}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[r] {
			continue
		}
		visited[r] = true

		c := &b.commits[r]
		for _, p := range c.parents {
			b.branches[id].lines = append(b.branches[id].lines, b.segment(r, p))
		}
		// Reverse so the first parent is walked first.
		for i := len(c.parents) - 1; i >= 0; i-- {
			p := c.parents[i]
			if !visited[p] && b.commits[p].branch == id {
				stack = append(stack, p)
			}
		}
	}
}

// segment classifies the line from a commit to one of its parents. The line
// takes the colour of the endpoint in the higher column.
func (b *builder) segment(from, to int) Line {
	x1, x2 := b.columnOf(from), b.columnOf(to)

	curve := NoCurve
	switch {
	case x2 > x1:
		curve = CurveFirst
	case x2 < x1:
		curve = CurveLast
	}

	return Line{
		P1:          Point{X: x1, Y: from},
		P2:          Point{X: x2, Y: to},
		Curve:       curve,
		Committed:   !b.commits[from].rec.IsUncommitted() && !b.commits[to].rec.IsUncommitted(),
		ColourIndex: b.colourIndex(max(x1, x2)),
	}
}
