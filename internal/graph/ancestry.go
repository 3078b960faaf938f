package graph

// markMuted applies the mute rules. Merge muting is a per-commit predicate;
// ancestry muting scans rows once, tracking the hashes still expected to be
// seen on the way down from head. The scan relies on every commit appearing
// before its parents.
func (b *builder) markMuted(head string) {
	if b.options.MuteMergeCommits {
		for r := range b.commits {
			c := &b.commits[r]
			if c.rec.IsMerge() && c.rec.Stash == nil {
				c.muted = true
			}
		}
	}

	if !b.options.MuteCommitsNotAncestorsOfHead || head == "" {
		return
	}
	if _, ok := b.lookup[head]; !ok {
		return
	}

	expected := map[string]struct{}{head: {}}
	for r := range b.commits {
		c := &b.commits[r]
		if c.rec.IsUncommitted() {
			continue
		}
		_, ok := expected[c.rec.Hash]
		if !ok && c.rec.Stash != nil {
			_, ok = expected[c.rec.Stash.BaseHash]
		}
		if !ok {
			c.muted = true
			continue
		}
		delete(expected, c.rec.Hash)
		for _, p := range c.rec.ParentHashes {
			expected[p] = struct{}{}
		}
	}
}

// markDroppable scans rows from the top and marks the commits reachable from
// head, starting at head itself. The first merge met anywhere in the scan,
// above head included, ends the marking. Stashes keep only their base as
// parent and never count as merges.
func (b *builder) markDroppable(head string) {
	if head == "" {
		return
	}
	if _, ok := b.lookup[head]; !ok {
		return
	}

	expected := map[string]struct{}{head: {}}
	for r := range b.commits {
		c := &b.commits[r]
		if c.rec.IsMerge() && c.rec.Stash == nil {
			return
		}
		if _, ok := expected[c.rec.Hash]; !ok {
			continue
		}
		c.droppable = true
		delete(expected, c.rec.Hash)
		for _, p := range c.rec.ParentHashes {
			expected[p] = struct{}{}
		}
	}
}
