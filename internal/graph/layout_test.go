package graph

import (
	"errors"
	"testing"

	"github.com/masmgr/commitgraph/config"
	"github.com/masmgr/commitgraph/internal/git"
)

// rec builds a commit record with the given parents.
func rec(hash string, parents ...string) git.CommitRecord {
	return git.CommitRecord{Hash: hash, ParentHashes: parents}
}

func withHeads(r git.CommitRecord, heads ...string) git.CommitRecord {
	r.Heads = heads
	return r
}

func withRemote(r git.CommitRecord, name, remote string) git.CommitRecord {
	r.Remotes = append(r.Remotes, git.RemoteRef{Name: name, RemoteName: remote})
	return r
}

func layout(records []git.CommitRecord, head string, opts config.GraphConfig) *Graph {
	return NewLayouter(opts, 0).Layout(records, head)
}

func branchNamed(t *testing.T, g *Graph, name string) Branch {
	t.Helper()
	for _, br := range g.Branches() {
		if br.Name == name {
			return br
		}
	}
	t.Fatalf("branch %q not found", name)
	return Branch{}
}

func columns(g *Graph) []int {
	cols := make([]int, g.Len())
	for i, c := range g.Commits() {
		cols[i] = c.Column
	}
	return cols
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLayout_LinearHistory(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("c0", "c1"), "main"),
		rec("c1", "c2"),
		rec("c2", "c3"),
		rec("c3", "c4"),
		rec("c4"),
	}

	g := layout(records, "c0", config.GraphConfig{PriorityBranches: []string{"main"}})

	if got := columns(g); !equalInts(got, []int{0, 0, 0, 0, 0}) {
		t.Errorf("columns = %v, expected all 0", got)
	}
	lines := g.Lines()
	if len(lines) != 4 {
		t.Fatalf("len(Lines()) = %d, expected 4", len(lines))
	}
	for _, l := range lines {
		if l.Curve != NoCurve {
			t.Errorf("line %v curve = %s, expected none", l, l.Curve)
		}
		if !l.Committed {
			t.Errorf("line %v should be committed", l)
		}
	}
	for _, c := range g.Commits() {
		if c.Muted {
			t.Errorf("commit %s should not be muted", c.Hash)
		}
	}
	if g.ContentWidth() != 1 {
		t.Errorf("ContentWidth() = %d, expected 1", g.ContentWidth())
	}
}

func TestLayout_MergeCurves(t *testing.T) {
	tests := []struct {
		name     string
		records  []git.CommitRecord
		expected map[[2]int]CurveTiming // (from row, to row) -> curve
	}{
		{
			name: "merge on side column into priority column",
			records: []git.CommitRecord{
				withHeads(rec("m", "f1", "b"), "feature"),
				rec("f1", "base"),
				withHeads(rec("b", "base"), "main"),
				rec("base"),
			},
			expected: map[[2]int]CurveTiming{
				{0, 1}: NoCurve,
				{0, 2}: CurveLast,
				{1, 3}: CurveLast,
				{2, 3}: NoCurve,
			},
		},
		{
			name: "merge on priority column from side column",
			records: []git.CommitRecord{
				withHeads(rec("m", "a", "f"), "main"),
				rec("a", "base"),
				withHeads(rec("f", "base"), "feature"),
				rec("base"),
			},
			expected: map[[2]int]CurveTiming{
				{0, 1}: NoCurve,
				{0, 2}: CurveFirst,
				{1, 3}: NoCurve,
				{2, 3}: CurveLast,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layout(tt.records, "", config.GraphConfig{PriorityBranches: []string{"main"}})

			lines := g.Lines()
			if len(lines) != len(tt.expected) {
				t.Fatalf("len(Lines()) = %d, expected %d", len(lines), len(tt.expected))
			}
			for _, l := range lines {
				want, ok := tt.expected[[2]int{l.P1.Y, l.P2.Y}]
				if !ok {
					t.Errorf("unexpected line %v", l)
					continue
				}
				if l.Curve != want {
					t.Errorf("line %d->%d curve = %s, expected %s", l.P1.Y, l.P2.Y, l.Curve, want)
				}
				if l.ColourIndex != max(l.P1.X, l.P2.X) {
					t.Errorf("line %d->%d colour = %d, expected %d", l.P1.Y, l.P2.Y, l.ColourIndex, max(l.P1.X, l.P2.X))
				}
			}
			if main := branchNamed(t, g, "main"); main.Column != 0 {
				t.Errorf("main column = %d, expected 0", main.Column)
			}
			if feature := branchNamed(t, g, "feature"); feature.Column != 1 {
				t.Errorf("feature column = %d, expected 1", feature.Column)
			}
		})
	}
}

func TestLayout_RemoteFollowsLocal(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("c0", "c1"), "main"),
		withRemote(rec("c1", "c2"), "origin/main", "origin"),
		rec("c2"),
	}

	g := layout(records, "c0", config.GraphConfig{})

	main := branchNamed(t, g, "main")
	remote := branchNamed(t, g, "origin/main")
	if remote.Follows != main.ID {
		t.Errorf("origin/main follows = %d, expected %d", remote.Follows, main.ID)
	}
	if remote.Column != main.Column {
		t.Errorf("origin/main column = %d, expected %d", remote.Column, main.Column)
	}
	if g.MaxColumn() != 0 {
		t.Errorf("MaxColumn() = %d, expected 0", g.MaxColumn())
	}
}

func TestLayout_SameCommitRemoteFollowsLocal(t *testing.T) {
	records := []git.CommitRecord{
		withRemote(withHeads(rec("c0", "c1"), "main"), "origin/main", "origin"),
		rec("c1"),
	}

	g := layout(records, "c0", config.GraphConfig{})

	if remote := branchNamed(t, g, "origin/main"); remote.Follows != branchNamed(t, g, "main").ID {
		t.Errorf("origin/main follows = %d, expected main", remote.Follows)
	}
	if g.ContentWidth() != 1 {
		t.Errorf("ContentWidth() = %d, expected 1", g.ContentWidth())
	}
}

func TestLayout_DivergedRemoteKeepsOwnChannel(t *testing.T) {
	// origin/main and main share a short name but neither contains the other.
	records := []git.CommitRecord{
		withHeads(rec("l", "base"), "main"),
		withRemote(rec("r", "base"), "origin/main", "origin"),
		rec("base"),
	}

	g := layout(records, "l", config.GraphConfig{})

	remote := branchNamed(t, g, "origin/main")
	if remote.Follows != NoBranch {
		t.Errorf("origin/main follows = %d, expected none", remote.Follows)
	}
	if remote.Column == branchNamed(t, g, "main").Column {
		t.Errorf("diverged branches share column %d", remote.Column)
	}
}

func TestLayout_RemoteBehindMergeKeepsOwnChannel(t *testing.T) {
	// origin/main is reachable from main only through the merge, so the walk
	// from main meets it as an inherited head first.
	records := []git.CommitRecord{
		withHeads(rec("m", "p", "r"), "main"),
		withRemote(rec("r", "p"), "origin/main", "origin"),
		rec("p", "b"),
		rec("b"),
	}

	g := layout(records, "m", config.GraphConfig{})

	main := branchNamed(t, g, "main")
	remote := branchNamed(t, g, "origin/main")
	if remote.Follows != NoBranch {
		t.Errorf("origin/main follows = %d, expected none", remote.Follows)
	}
	if remote.Column == main.Column {
		t.Errorf("origin/main shares column %d with main", remote.Column)
	}
	if g.ContentWidth() != 2 {
		t.Errorf("ContentWidth() = %d, expected 2", g.ContentWidth())
	}
}

func TestLayout_ShortNameDeduplication(t *testing.T) {
	tests := []struct {
		name     string
		records  []git.CommitRecord
		follower string
		leader   string // empty when follower keeps its own channel
		width    int
	}{
		{
			name: "remote of local branch",
			records: []git.CommitRecord{
				withHeads(rec("a", "b"), "main"),
				withRemote(rec("b", "c"), "origin/main", "origin"),
				rec("c"),
			},
			follower: "origin/main",
			leader:   "main",
			width:    1,
		},
		{
			name: "local branches ending in the same segment",
			records: []git.CommitRecord{
				withHeads(rec("a", "b"), "feature/x"),
				withHeads(rec("b", "c"), "bugfix/x"),
				rec("c"),
			},
			follower: "bugfix/x",
			leader:   "feature/x",
			width:    1,
		},
		{
			name: "nested remote name",
			records: []git.CommitRecord{
				withHeads(rec("a", "b"), "feature/x"),
				withRemote(rec("b", "c"), "origin/feature/x", "origin"),
				rec("c"),
			},
			follower: "origin/feature/x",
			leader:   "feature/x",
			width:    1,
		},
		{
			name: "different last segment",
			records: []git.CommitRecord{
				withHeads(rec("a", "b"), "feature/x"),
				withHeads(rec("b", "c"), "feature/y"),
				rec("c"),
			},
			follower: "feature/y",
			width:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layout(tt.records, "a", config.GraphConfig{})

			follower := branchNamed(t, g, tt.follower)
			if tt.leader == "" {
				if follower.Follows != NoBranch {
					t.Errorf("%s follows = %d, expected none", tt.follower, follower.Follows)
				}
			} else if leader := branchNamed(t, g, tt.leader); follower.Follows != leader.ID {
				t.Errorf("%s follows = %d, expected %s (%d)", tt.follower, follower.Follows, tt.leader, leader.ID)
			}
			if g.ContentWidth() != tt.width {
				t.Errorf("ContentWidth() = %d, expected %d", g.ContentWidth(), tt.width)
			}
		})
	}
}

func TestLayout_OrphanHistory(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("m", "base"), "main"),
		withHeads(rec("d", "base"), "dev"),
		rec("o1", "o2"),
		rec("base"),
		rec("o2"),
	}

	g := layout(records, "m", config.GraphConfig{PriorityBranches: []string{"main"}})

	o1, _ := g.CommitByHash("o1")
	o2, _ := g.CommitByHash("o2")
	orphan, ok := g.Branch(o1.Branch)
	if !ok {
		t.Fatalf("o1 has no branch")
	}
	if !orphan.Synthetic || orphan.Name != "" {
		t.Errorf("orphan branch = %+v, expected synthetic and unnamed", orphan)
	}
	if o2.Branch != o1.Branch {
		t.Errorf("o2 branch = %d, expected %d", o2.Branch, o1.Branch)
	}
	for _, name := range []string{"main", "dev"} {
		if br := branchNamed(t, g, name); br.Column >= orphan.Column {
			t.Errorf("%s column %d not before orphan column %d", name, br.Column, orphan.Column)
		}
	}
	if orphan.Column != 2 {
		t.Errorf("orphan column = %d, expected 2", orphan.Column)
	}
}

func TestLayout_CollapseReusesFreeChannel(t *testing.T) {
	// dev ends above the row where the orphan history starts, so both fit in
	// the same channel.
	records := []git.CommitRecord{
		withHeads(rec("m0", "m1"), "main"),
		withHeads(rec("d0"), "dev"),
		rec("m1", "m2"),
		rec("o0", "o1"),
		rec("m2"),
		rec("o1"),
	}

	g := layout(records, "", config.GraphConfig{PriorityBranches: []string{"main"}})

	d0, _ := g.CommitByHash("d0")
	o0, _ := g.CommitByHash("o0")
	if d0.Column != 1 || o0.Column != 1 {
		t.Errorf("dev column = %d, orphan column = %d, expected both 1", d0.Column, o0.Column)
	}
	if g.ContentWidth() != 2 {
		t.Errorf("ContentWidth() = %d, expected 2", g.ContentWidth())
	}
}

func TestLayout_MuteNotAncestorsOfHead(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("h0", "h1"), "main"),
		withHeads(rec("t0", "t1"), "topic"),
		rec("h1", "h2"),
		rec("t1", "h2"),
		rec("h2"),
	}

	g := layout(records, "h0", config.GraphConfig{MuteCommitsNotAncestorsOfHead: true})

	expected := map[string]bool{"h0": false, "t0": true, "h1": false, "t1": true, "h2": false}
	for _, c := range g.Commits() {
		if c.Muted != expected[c.Hash] {
			t.Errorf("%s muted = %v, expected %v", c.Hash, c.Muted, expected[c.Hash])
		}
	}
}

func TestLayout_MuteRules(t *testing.T) {
	stash := rec("s", "b", "idx")
	stash.Stash = &git.StashInfo{Selector: "stash@{0}", BaseHash: "b"}

	records := []git.CommitRecord{
		withHeads(rec("m", "b", "f"), "main"),
		stash,
		rec("f", "b"),
		rec("b"),
	}

	tests := []struct {
		name     string
		opts     config.GraphConfig
		head     string
		expected map[string]bool
	}{
		{
			name:     "no rules",
			head:     "m",
			expected: map[string]bool{},
		},
		{
			name:     "merges muted",
			opts:     config.GraphConfig{MuteMergeCommits: true},
			head:     "m",
			expected: map[string]bool{"m": true},
		},
		{
			name:     "stash of head ancestor kept",
			opts:     config.GraphConfig{MuteCommitsNotAncestorsOfHead: true},
			head:     "m",
			expected: map[string]bool{},
		},
		{
			name:     "head outside window",
			opts:     config.GraphConfig{MuteCommitsNotAncestorsOfHead: true},
			head:     "missing",
			expected: map[string]bool{},
		},
		{
			name:     "older head",
			opts:     config.GraphConfig{MuteCommitsNotAncestorsOfHead: true},
			head:     "f",
			expected: map[string]bool{"m": true, "s": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layout(records, tt.head, tt.opts)
			for _, c := range g.Commits() {
				if c.Muted != tt.expected[c.Hash] {
					t.Errorf("%s muted = %v, expected %v", c.Hash, c.Muted, tt.expected[c.Hash])
				}
			}
		})
	}
}

func TestLayout_Droppable(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("a", "c"), "dev"),
		withHeads(rec("b", "c"), "main"),
		rec("c", "d"),
		rec("d", "e", "f"),
		rec("e"),
		rec("f"),
	}

	tests := []struct {
		name     string
		head     string
		expected []string
	}{
		{name: "run ends at merge", head: "b", expected: []string{"b", "c"}},
		{name: "head on merge", head: "d", expected: nil},
		{name: "no head", head: "", expected: nil},
		{name: "merge above head", head: "e", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layout(records, tt.head, config.GraphConfig{})
			var got []string
			for _, c := range g.Commits() {
				if c.Droppable {
					got = append(got, c.Hash)
				}
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("droppable = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("droppable = %v, expected %v", got, tt.expected)
					break
				}
			}
		})
	}
}

func TestLayout_DroppableStopsAtMergeAboveHead(t *testing.T) {
	tests := []struct {
		name     string
		records  []git.CommitRecord
		expected []string
	}{
		{
			name: "merge on another branch",
			records: []git.CommitRecord{
				withHeads(rec("m", "o", "h"), "other"),
				rec("o", "z"),
				withHeads(rec("h", "z"), "main"),
				rec("z"),
			},
			expected: nil,
		},
		{
			name: "stash above head",
			records: []git.CommitRecord{
				{Hash: "s", ParentHashes: []string{"h"}, Stash: &git.StashInfo{Selector: "stash@{0}", BaseHash: "h"}},
				withHeads(rec("h", "z"), "main"),
				rec("z"),
			},
			expected: []string{"h", "z"},
		},
		{
			name: "plain commits above head",
			records: []git.CommitRecord{
				withHeads(rec("d", "z"), "dev"),
				withHeads(rec("h", "z"), "main"),
				rec("z"),
			},
			expected: []string{"h", "z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layout(tt.records, "h", config.GraphConfig{})
			var got []string
			for _, c := range g.Commits() {
				if c.Droppable {
					got = append(got, c.Hash)
				}
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("droppable = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Fatalf("droppable = %v, expected %v", got, tt.expected)
				}
			}
		})
	}
}

func TestLayout_PriorityOrder(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("a", "base"), "a"),
		withHeads(rec("b", "base"), "b"),
		withHeads(rec("c", "base"), "c"),
		rec("base"),
	}

	tests := []struct {
		name     string
		priority []string
		expected map[string]int
	}{
		{
			name:     "caller order",
			priority: []string{"c", "a"},
			expected: map[string]int{"c": 0, "a": 1, "b": 2},
		},
		{
			name:     "no priority uses discovery order",
			priority: nil,
			expected: map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:     "absent names are compacted",
			priority: []string{"missing", "b"},
			expected: map[string]int{"b": 0, "a": 1, "c": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layout(records, "", config.GraphConfig{PriorityBranches: tt.priority})
			for name, col := range tt.expected {
				if br := branchNamed(t, g, name); br.Column != col {
					t.Errorf("%s column = %d, expected %d", name, br.Column, col)
				}
			}
		})
	}
}

func TestLayout_PriorityShortNameMatch(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("d", "base"), "dev"),
		withRemote(rec("r", "base"), "origin/main", "origin"),
		rec("base"),
	}

	g := layout(records, "", config.GraphConfig{PriorityBranches: []string{"main"}})

	remote := branchNamed(t, g, "origin/main")
	if !remote.Priority || remote.Column != 0 {
		t.Errorf("origin/main = %+v, expected priority column 0", remote)
	}
	if dev := branchNamed(t, g, "dev"); dev.Column != 1 {
		t.Errorf("dev column = %d, expected 1", dev.Column)
	}
	base, _ := g.CommitByHash("base")
	if base.Branch != remote.ID {
		t.Errorf("base branch = %d, expected priority branch %d", base.Branch, remote.ID)
	}
}

func TestLayout_UncommittedChanges(t *testing.T) {
	records := []git.CommitRecord{
		rec(git.UncommittedHash, "h0"),
		withHeads(rec("h0", "h1"), "main"),
		rec("h1"),
	}

	g := layout(records, "h0", config.GraphConfig{
		PriorityBranches:              []string{"main"},
		MuteCommitsNotAncestorsOfHead: true,
	})

	main := branchNamed(t, g, "main")
	if main.Tip != 0 {
		t.Errorf("main tip = %d, expected 0", main.Tip)
	}
	u, _ := g.Commit(0)
	if u.Committed || u.Muted || u.Droppable {
		t.Errorf("uncommitted row = %+v, expected uncommitted, unmuted, not droppable", u)
	}
	if g.BranchName(u) != "main" {
		t.Errorf("BranchName(uncommitted) = %q, expected %q", g.BranchName(u), "main")
	}
	if got := columns(g); !equalInts(got, []int{0, 0, 0}) {
		t.Errorf("columns = %v, expected all 0", got)
	}

	for _, l := range g.Lines() {
		touchesUncommitted := l.P1.Y == 0 || l.P2.Y == 0
		if l.Committed == touchesUncommitted {
			t.Errorf("line %d->%d committed = %v", l.P1.Y, l.P2.Y, l.Committed)
		}
	}
}

func TestLayout_FirstParentOnly(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("m", "a", "f"), "main"),
		rec("a", "base"),
		withHeads(rec("f", "base"), "feature"),
		rec("base"),
	}

	g := layout(records, "m", config.GraphConfig{FirstParentOnly: true})

	m, _ := g.Commit(0)
	if m.IsMerge() || len(m.Parents) != 1 || m.Parents[0] != 1 {
		t.Errorf("merge parents = %v, expected [1]", m.Parents)
	}
	if len(g.Lines()) != 3 {
		t.Errorf("len(Lines()) = %d, expected 3", len(g.Lines()))
	}
}

func TestLayout_MissingParentsTolerated(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("c0", "c1", "outside"), "main"),
		rec("c1", "also-outside"),
	}

	g := layout(records, "c0", config.GraphConfig{})

	c0, _ := g.Commit(0)
	if len(c0.Parents) != 1 {
		t.Errorf("c0 parents = %v, expected one linked parent", c0.Parents)
	}
	if len(g.Lines()) != 1 {
		t.Errorf("len(Lines()) = %d, expected 1", len(g.Lines()))
	}
}

func TestLayout_Empty(t *testing.T) {
	g := layout(nil, "", config.GraphConfig{PriorityBranches: []string{"main"}})

	if g.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", g.Len())
	}
	if g.MaxColumn() != -1 || g.ContentWidth() != 0 {
		t.Errorf("MaxColumn() = %d, ContentWidth() = %d, expected -1 and 0", g.MaxColumn(), g.ContentWidth())
	}
	if len(g.Lines()) != 0 {
		t.Errorf("len(Lines()) = %d, expected 0", len(g.Lines()))
	}
}

func TestLayout_ColourIndexCycles(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("a", "base"), "a"),
		withHeads(rec("b", "base"), "b"),
		withHeads(rec("c", "base"), "c"),
		rec("base"),
	}

	g := NewLayouter(config.GraphConfig{}, 2).Layout(records, "")

	for _, c := range g.Commits() {
		if c.ColourIndex != c.Column%2 {
			t.Errorf("%s colour = %d, expected %d", c.Hash, c.ColourIndex, c.Column%2)
		}
	}
}

func TestGraph_Queries(t *testing.T) {
	records := []git.CommitRecord{
		withHeads(rec("m", "a", "f"), "main"),
		rec("a", "base"),
		withHeads(rec("f", "base"), "feature"),
		rec("base"),
	}
	g := layout(records, "m", config.GraphConfig{})

	t.Run("CommitByHash", func(t *testing.T) {
		c, err := g.CommitByHash("f")
		if err != nil || c.Row != 2 {
			t.Errorf("CommitByHash(f) = %d, %v, expected row 2", c.Row, err)
		}
		if _, err := g.CommitByHash("nope"); !errors.Is(err, ErrCommitNotFound) {
			t.Errorf("CommitByHash(nope) error = %v, expected ErrCommitNotFound", err)
		}
	})

	t.Run("CommitsBetween", func(t *testing.T) {
		tests := []struct {
			name     string
			a, b     int
			expected []string
		}{
			{name: "ordered", a: 1, b: 2, expected: []string{"a", "f"}},
			{name: "reversed", a: 3, b: 2, expected: []string{"f", "base"}},
			{name: "clamped", a: -5, b: 1, expected: []string{"m", "a"}},
			{name: "outside", a: 7, b: 9, expected: nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := g.CommitsBetween(tt.a, tt.b)
				if len(got) != len(tt.expected) {
					t.Fatalf("CommitsBetween(%d, %d) returned %d commits, expected %d", tt.a, tt.b, len(got), len(tt.expected))
				}
				for i := range got {
					if got[i].Hash != tt.expected[i] {
						t.Errorf("CommitsBetween(%d, %d)[%d] = %q, expected %q", tt.a, tt.b, i, got[i].Hash, tt.expected[i])
					}
				}
			})
		}
	})

	t.Run("Navigation", func(t *testing.T) {
		if row, ok := g.NearestParentRow(0); !ok || row != 1 {
			t.Errorf("NearestParentRow(0) = %d, %v, expected 1", row, ok)
		}
		if row, ok := g.NearestChildRow(3); !ok || row != 2 {
			t.Errorf("NearestChildRow(3) = %d, %v, expected 2", row, ok)
		}
		if _, ok := g.NearestParentRow(3); ok {
			t.Errorf("NearestParentRow(3) should not exist")
		}
		if _, ok := g.NearestChildRow(0); ok {
			t.Errorf("NearestChildRow(0) should not exist")
		}
		if _, ok := g.NearestChildRow(42); ok {
			t.Errorf("NearestChildRow(42) should not exist")
		}
	})

	t.Run("Current", func(t *testing.T) {
		m, _ := g.Commit(0)
		if !m.IsCurrent || !m.IsMerge() {
			t.Errorf("row 0 = %+v, expected current merge", m)
		}
	})
}

func TestCurveTiming_String(t *testing.T) {
	tests := []struct {
		curve    CurveTiming
		expected string
	}{
		{NoCurve, "none"},
		{CurveFirst, "first"},
		{CurveLast, "last"},
		{CurveTiming(9), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.curve.String(); got != tt.expected {
				t.Errorf("String() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
