package graph

import "strings"

// linkTopology connects every commit to the parents present in the loaded
// window. Parents outside the window are simply not linked.
func (b *builder) linkTopology() {
	for r := range b.commits {
		c := &b.commits[r]
		hashes := c.rec.ParentHashes
		if b.options.FirstParentOnly && len(hashes) > 1 {
			hashes = hashes[:1]
		}
		for i, h := range hashes {
			p, ok := b.lookup[h]
			if !ok || p == r || containsRow(c.parents, p) {
				continue
			}
			if i == 0 {
				c.firstParent = p
			}
			c.parents = append(c.parents, p)
			b.commits[p].children = append(b.commits[p].children, r)
		}
	}
}

// discoverRefs creates one branch per local or remote ref name and records it
// as a defined head of the commit the ref points at.
func (b *builder) discoverRefs() {
	for r := range b.commits {
		c := &b.commits[r]
		if c.rec.IsUncommitted() {
			continue
		}
		for _, name := range c.rec.Heads {
			b.attachRef(c, "refs/heads/"+name, name, name)
		}
		for _, remote := range c.rec.Remotes {
			b.attachRef(c, "refs/remotes/"+remote.Name, remote.Name, remote.BranchName())
		}
	}
}

func (b *builder) attachRef(c *commit, key, name, tracked string) {
	id, ok := b.byRef[key]
	if !ok {
		id = b.newBranch(name, tracked, c.row)
		b.byRef[key] = id
	}
	c.defined, _ = insertID(c.defined, id)
}

// propagateHeads lets a first parent without defined heads inherit the heads
// of its child, so a channel continues until the next named ref.
func (b *builder) propagateHeads() {
	for r := range b.commits {
		b.propagateFrom(r)
	}
}

func (b *builder) propagateFrom(row int) {
	for cur := row; ; {
		c := &b.commits[cur]
		heads := c.heads()
		if len(heads) == 0 || c.firstParent < 0 {
			return
		}
		p := &b.commits[c.firstParent]
		if len(p.defined) > 0 {
			return
		}
		var changed bool
		p.inferred, changed = mergeIDs(p.inferred, heads)
		if !changed {
			return
		}
		cur = c.firstParent
	}
}

// inheritUncommitted gives the uncommitted changes row the heads of its parent
// so it draws as an extension of the checked out branch.
func (b *builder) inheritUncommitted() {
	if len(b.commits) == 0 {
		return
	}
	c := &b.commits[0]
	if !c.rec.IsUncommitted() || c.firstParent < 0 {
		return
	}
	c.inferred = append([]BranchID(nil), b.commits[c.firstParent].heads()...)
}

// shortName returns the part of a ref name after its last slash, so that
// main, origin/main and feature/main share one name.
func shortName(name string) string {
	return name[strings.LastIndexByte(name, '/')+1:]
}

func containsRow(rows []int, row int) bool {
	for _, r := range rows {
		if r == row {
			return true
		}
	}
	return false
}
