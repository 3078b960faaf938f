package graph

import (
	"math"
	"sort"
)

// rowRange is the span of rows a channel is drawn across, inclusive.
type rowRange struct {
	lo int
	hi int
}

func (a rowRange) overlaps(b rowRange) bool {
	return a.lo <= b.hi && b.lo <= a.hi
}

// collapseLeft slides each non-priority branch into the lowest non-priority
// channel that is unused across the rows the branch spans, then renumbers the
// channels so none is skipped.
func (b *builder) collapseLeft() {
	ranges := b.activeRanges()

	var candidates []BranchID
	for i := range b.branches {
		br := &b.branches[i]
		if br.follows == NoBranch && !br.priority && br.column >= 0 {
			candidates = append(candidates, BranchID(i))
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return b.branches[candidates[i]].column < b.branches[candidates[j]].column
	})

	for _, id := range candidates {
		current := b.branches[id].column
		for _, col := range b.nonPriorityColumnsBelow(current) {
			if b.channelFree(col, id, ranges) {
				b.branches[id].column = col
				break
			}
		}
	}

	b.compactColumns()
}

// activeRanges spans, per channel owner, from the youngest child of any of its
// commits to the oldest parent of any of its commits.
func (b *builder) activeRanges() []rowRange {
	ranges := make([]rowRange, len(b.branches))
	for i := range ranges {
		ranges[i] = rowRange{lo: math.MaxInt, hi: -1}
	}

	for r := range b.commits {
		c := &b.commits[r]
		if c.branch == NoBranch {
			continue
		}
		rg := &ranges[b.find(c.branch)]
		rg.lo = min(rg.lo, r)
		rg.hi = max(rg.hi, r)
		if len(c.children) > 0 {
			rg.lo = min(rg.lo, c.children[0])
		}
		for _, p := range c.parents {
			rg.hi = max(rg.hi, p)
		}
	}
	return ranges
}

func (b *builder) nonPriorityColumnsBelow(limit int) []int {
	seen := make(map[int]struct{})
	var cols []int
	for i := range b.branches {
		br := &b.branches[i]
		if br.follows != NoBranch || br.priority || br.column < 0 || br.column >= limit {
			continue
		}
		if _, ok := seen[br.column]; !ok {
			seen[br.column] = struct{}{}
			cols = append(cols, br.column)
		}
	}
	sort.Ints(cols)
	return cols
}

// channelFree reports whether no other branch drawn in col overlaps id's rows.
func (b *builder) channelFree(col int, id BranchID, ranges []rowRange) bool {
	for i := range b.branches {
		other := BranchID(i)
		br := &b.branches[other]
		if other == id || br.follows != NoBranch || br.column != col {
			continue
		}
		if ranges[other].overlaps(ranges[id]) {
			return false
		}
	}
	return true
}
