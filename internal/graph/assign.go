package graph

import "sort"

// assignChannels resolves branch aliasing, priority slots, orphan histories
// and the branch of every commit, then numbers the channels densely.
func (b *builder) assignChannels() {
	b.deduplicate()
	b.assignPriority()
	b.synthesizeOrphans()
	b.resolveCommitBranches()
	b.aliasEmptyBranches()
	b.placeColumns()
	b.stealUncommittedTip()
	b.compactColumns()
}

// deduplicate makes a ref follow an earlier ref with the same short name when
// one is a direct ancestor of the other (e.g. main and origin/main).
func (b *builder) deduplicate() {
	registered := make(map[string][]BranchID)
	seen := make([]bool, len(b.branches))

	for r := range b.commits {
		for _, id := range b.commits[r].defined {
			if seen[id] {
				continue
			}
			seen[id] = true
			b.discovered = append(b.discovered, id)

			short := b.branches[id].shortName
			for _, existing := range registered[short] {
				if b.isDirectAncestor(existing, id) || b.isDirectAncestor(id, existing) {
					b.branches[id].follows = existing
					break
				}
			}
			if b.branches[id].follows == NoBranch {
				registered[short] = append(registered[short], id)
			}
		}
	}
}

// isDirectAncestor walks breadth-first from the tip of desc and reports
// whether candidate's tip is met before any commit that only inherited
// candidate, which would mean the two lines joined through a merge.
func (b *builder) isDirectAncestor(desc, candidate BranchID) bool {
	start := b.branches[desc].tip
	visited := make(map[int]struct{})
	visited[start] = struct{}{}
	queue := []int{start}

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		c := &b.commits[r]
		if containsID(c.defined, candidate) {
			return true
		}
		if containsID(c.inferred, candidate) {
			return false
		}
		for _, p := range c.parents {
			if _, ok := visited[p]; !ok {
				visited[p] = struct{}{}
				queue = append(queue, p)
			}
		}
	}
	return false
}

// assignPriority gives each caller-listed name to at most one branch. Exact
// name matches are served before matches on the remote branch name or the
// short name; within each pass the branch whose tip comes first in row order
// wins.
func (b *builder) assignPriority() {
	names := b.options.PriorityBranches
	if len(names) == 0 {
		return
	}
	taken := make([]bool, len(names))

	claim := func(match func(br *branch, name string) bool) {
		for _, id := range b.discovered {
			br := &b.branches[id]
			if br.follows != NoBranch || br.priority {
				continue
			}
			for i, name := range names {
				if !taken[i] && match(br, name) {
					taken[i] = true
					br.slot = i
					br.priority = true
					break
				}
			}
		}
	}

	claim(func(br *branch, name string) bool { return br.name == name })
	claim(func(br *branch, name string) bool { return br.tracked == name || br.shortName == name })
}

// synthesizeOrphans creates a nameless branch for every commit reachable from
// no ref and hands it down to all of its unheaded ancestors.
func (b *builder) synthesizeOrphans() {
	for r := range b.commits {
		if b.commits[r].hasHeads() {
			continue
		}
		id := b.newBranch("", "", r)
		b.branches[id].synthetic = true
		b.orphans = append(b.orphans, id)

		b.commits[r].inferred = []BranchID{id}
		stack := []int{r}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, p := range b.commits[cur].parents {
				pc := &b.commits[p]
				if pc.hasHeads() {
					continue
				}
				pc.inferred = []BranchID{id}
				stack = append(stack, p)
			}
		}
	}
}

func (b *builder) resolveCommitBranches() {
	for r := range b.commits {
		c := &b.commits[r]
		c.branch = b.pick(c.heads())
	}
}

// pick prefers the head whose channel holds the lowest priority slot and
// falls back to the first head.
func (b *builder) pick(ids []BranchID) BranchID {
	best, bestSlot := NoBranch, -1
	for _, id := range ids {
		root := &b.branches[b.find(id)]
		if root.priority && (bestSlot < 0 || root.slot < bestSlot) {
			best, bestSlot = id, root.slot
		}
	}
	if best != NoBranch {
		return best
	}
	if len(ids) > 0 {
		return ids[0]
	}
	return NoBranch
}

// aliasEmptyBranches makes a branch that ended up owning no commit follow the
// branch owning its tip, so it does not reserve an empty channel.
func (b *builder) aliasEmptyBranches() {
	owned := make([]int, len(b.branches))
	for r := range b.commits {
		if id := b.commits[r].branch; id != NoBranch {
			owned[b.find(id)]++
		}
	}

	for i := range b.branches {
		id := BranchID(i)
		br := &b.branches[id]
		if br.follows != NoBranch || owned[id] > 0 {
			continue
		}
		owner := b.commits[br.tip].branch
		if owner == NoBranch {
			continue
		}
		root := b.find(owner)
		if root == id {
			continue
		}
		br.follows = root
		br.priority = false
		br.slot = -1
	}
}

// placeColumns puts priority branches at their slot, named branches after the
// priority list in discovery order, and orphan branches after those.
func (b *builder) placeColumns() {
	next := len(b.options.PriorityBranches)
	for _, id := range b.discovered {
		br := &b.branches[id]
		switch {
		case br.follows != NoBranch:
		case br.priority:
			br.column = br.slot
		default:
			br.column = next
			next++
		}
	}
	for _, id := range b.orphans {
		br := &b.branches[id]
		if br.follows == NoBranch {
			br.column = next
			next++
		}
	}
}

// stealUncommittedTip moves the tip of the checked out branch onto the
// uncommitted changes row.
func (b *builder) stealUncommittedTip() {
	if len(b.commits) == 0 {
		return
	}
	c := &b.commits[0]
	if !c.rec.IsUncommitted() || c.branch == NoBranch || c.firstParent < 0 {
		return
	}
	parentBranch := b.commits[c.firstParent].branch
	if parentBranch != NoBranch && b.find(parentBranch) == b.find(c.branch) {
		b.branches[c.branch].tip = 0
	}
}

// compactColumns renumbers the channels in use to 0..k-1, keeping their order.
// Branches sharing a channel keep sharing it; followers hold none.
func (b *builder) compactColumns() {
	var columns []int
	seen := make(map[int]struct{})
	for i := range b.branches {
		br := &b.branches[i]
		if br.follows != NoBranch || br.column < 0 {
			continue
		}
		if _, ok := seen[br.column]; !ok {
			seen[br.column] = struct{}{}
			columns = append(columns, br.column)
		}
	}
	sort.Ints(columns)

	rank := make(map[int]int, len(columns))
	for i, col := range columns {
		rank[col] = i
	}
	for i := range b.branches {
		br := &b.branches[i]
		if br.follows != NoBranch || br.column < 0 {
			br.column = -1
			continue
		}
		br.column = rank[br.column]
	}
}
