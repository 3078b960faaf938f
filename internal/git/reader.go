package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const stashRefName = plumbing.ReferenceName("refs/stash")

// HistoryReader reads commit history from a Git repository.
type HistoryReader struct {
	repo        *git.Repository
	opts        ReadOptions
	filterCache map[string]bool
}

// NewHistoryReader creates a new history reader for the given repository.
func NewHistoryReader(opts ReadOptions) (*HistoryReader, error) {
	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, err
	}
	return NewHistoryReaderFromRepository(repo, opts), nil
}

// NewHistoryReaderFromRepository wraps an already opened repository.
func NewHistoryReaderFromRepository(repo *git.Repository, opts ReadOptions) *HistoryReader {
	return &HistoryReader{
		repo:        repo,
		opts:        opts,
		filterCache: make(map[string]bool),
	}
}

// refSet groups the decorations found on each commit.
type refSet struct {
	heads   map[string][]string
	remotes map[string][]RemoteRef
	tags    map[string][]string
	tips    []string
}

func newRefSet() *refSet {
	return &refSet{
		heads:   make(map[string][]string),
		remotes: make(map[string][]RemoteRef),
		tags:    make(map[string][]string),
	}
}

func (s *refSet) addTip(hash string) {
	for _, t := range s.tips {
		if t == hash {
			return
		}
	}
	s.tips = append(s.tips, hash)
}

// decorate copies the ref lists for the commit onto the record.
func (s *refSet) decorate(rec *CommitRecord) {
	rec.Heads = append(rec.Heads, s.heads[rec.Hash]...)
	rec.Remotes = append(rec.Remotes, s.remotes[rec.Hash]...)
	rec.Tags = append(rec.Tags, s.tags[rec.Hash]...)
}

// ReadCommits reads every commit reachable from the selected refs, newest first.
func (r *HistoryReader) ReadCommits(ctx context.Context) (*History, error) {
	if r.opts.Backend == BackendGitCLI {
		return r.readCommitsGitCLI(ctx)
	}

	history := &History{}
	if err := r.readHead(history); err != nil {
		return nil, err
	}

	refs, err := r.collectRefs()
	if err != nil {
		return nil, err
	}
	if history.HEAD != "" {
		refs.addTip(history.HEAD)
	}

	var stashes []stashEntry
	if r.opts.ShowStashes {
		stashes, err = r.readStashes()
		if err != nil {
			return nil, err
		}
	}
	selectors := make(map[plumbing.Hash]string, len(stashes))
	for _, s := range stashes {
		if _, dup := selectors[s.commit.Hash]; !dup {
			selectors[s.commit.Hash] = s.selector
		}
	}

	commits, err := r.walk(ctx, refs.tips, stashes)
	if err != nil {
		return nil, err
	}

	records := make([]CommitRecord, 0, len(commits))
	for i, c := range commits {
		if r.opts.MaxCommits > 0 && i >= r.opts.MaxCommits {
			history.MoreAvailable = true
			break
		}
		rec := recordFromCommit(c)
		if selector, ok := selectors[c.Hash]; ok {
			rec = stashRecord(c, selector)
		}
		refs.decorate(&rec)
		records = append(records, rec)
	}

	if r.opts.ShowUncommittedChanges && history.HEAD != "" {
		dirty, err := r.worktreeDirty()
		if err != nil {
			return nil, err
		}
		if dirty {
			records = append([]CommitRecord{uncommittedRecord(history.HEAD)}, records...)
		}
	}

	history.Commits = records
	return history, nil
}

func (r *HistoryReader) readHead(history *History) error {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil
		}
		return fmt.Errorf("resolve HEAD: %w", err)
	}
	history.HEAD = ref.Hash().String()
	if ref.Name().IsBranch() {
		history.HeadRef = ref.Name().Short()
	}
	return nil
}

// collectRefs gathers branch, remote and tag decorations plus the tips to walk from.
func (r *HistoryReader) collectRefs() (*refSet, error) {
	refs := newRefSet()

	remoteNames, err := r.remoteNames()
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	var filterErr error
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		short := name.Short()
		hash := ref.Hash().String()

		switch {
		case name.IsBranch():
			ok, err := r.matchesFilters(short)
			if err != nil {
				filterErr = err
				return err
			}
			if ok {
				refs.heads[hash] = append(refs.heads[hash], short)
				refs.addTip(hash)
			}
		case name.IsRemote():
			if !r.opts.ShowRemoteBranches || strings.HasSuffix(short, "/HEAD") {
				return nil
			}
			ok, err := r.matchesFilters(short)
			if err != nil {
				filterErr = err
				return err
			}
			if ok {
				refs.remotes[hash] = append(refs.remotes[hash], RemoteRef{
					Name:       short,
					RemoteName: matchRemoteName(short, remoteNames),
				})
				refs.addTip(hash)
			}
		case name.IsTag():
			if !r.opts.ShowTags {
				return nil
			}
			ok, err := r.matchesFilters(short)
			if err != nil {
				filterErr = err
				return err
			}
			if !ok {
				return nil
			}
			// Annotated tags point at a tag object; decorate the commit it targets.
			if tagObj, err := r.repo.TagObject(ref.Hash()); err == nil {
				target, err := tagObj.Commit()
				if err != nil {
					return nil
				}
				hash = target.Hash.String()
			}
			refs.tags[hash] = append(refs.tags[hash], short)
			refs.addTip(hash)
		}
		return nil
	})
	if filterErr != nil {
		return nil, filterErr
	}
	if err != nil {
		return nil, fmt.Errorf("iterate references: %w", err)
	}

	for _, m := range refs.heads {
		sort.Strings(m)
	}
	for _, m := range refs.tags {
		sort.Strings(m)
	}
	for _, m := range refs.remotes {
		sort.Slice(m, func(i, j int) bool { return m[i].Name < m[j].Name })
	}
	sort.Strings(refs.tips)

	return refs, nil
}

func (r *HistoryReader) remoteNames() ([]string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	return names, nil
}

// matchRemoteName returns the longest configured remote name prefixing the ref.
func matchRemoteName(short string, remoteNames []string) string {
	best := ""
	for _, name := range remoteNames {
		if strings.HasPrefix(short, name+"/") && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		if idx := strings.IndexByte(short, '/'); idx != -1 {
			best = short[:idx]
		}
	}
	return best
}

// stashEntry is one stash with its reflog selector.
type stashEntry struct {
	commit   *object.Commit
	selector string
}

// readStashes returns every stash, newest first. Without a stash reflog only
// the commit refs/stash points at is returned, as stash@{0}.
func (r *HistoryReader) readStashes() ([]stashEntry, error) {
	ref, err := r.repo.Reference(stashRefName, true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve stash: %w", err)
	}

	hashes, err := r.stashReflog()
	if err != nil {
		return nil, err
	}
	if len(hashes) == 0 {
		hashes = []plumbing.Hash{ref.Hash()}
	}

	entries := make([]stashEntry, 0, len(hashes))
	for i, h := range hashes {
		c, err := r.repo.CommitObject(h)
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				continue
			}
			return nil, fmt.Errorf("load stash commit: %w", err)
		}
		if c.NumParents() == 0 {
			continue
		}
		entries = append(entries, stashEntry{commit: c, selector: fmt.Sprintf("stash@{%d}", i)})
	}
	return entries, nil
}

// stashReflog reads the reflog git keeps for refs/stash. Storages that are not
// backed by a .git directory have no reflog and yield nothing.
func (r *HistoryReader) stashReflog() ([]plumbing.Hash, error) {
	fsStorer, ok := r.repo.Storer.(interface{ Filesystem() billy.Filesystem })
	if !ok {
		return nil, nil
	}
	f, err := fsStorer.Filesystem().Open("logs/refs/stash")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open stash reflog: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read stash reflog: %w", err)
	}
	return parseStashReflog(data), nil
}

// parseStashReflog returns the new-value hashes of reflog lines, newest first,
// so that index i is stash@{i}.
func parseStashReflog(data []byte) []plumbing.Hash {
	var hashes []plumbing.Hash
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !plumbing.IsHash(fields[1]) {
			continue
		}
		hashes = append(hashes, plumbing.NewHash(fields[1]))
	}
	slices.Reverse(hashes)
	return hashes
}

// walk loads every commit reachable from tips and orders them so that no commit
// appears before any of its children; ties are broken by newest committer time.
func (r *HistoryReader) walk(ctx context.Context, tips []string, stashes []stashEntry) ([]*object.Commit, error) {
	commits := make(map[plumbing.Hash]*object.Commit)
	children := make(map[plumbing.Hash]int)

	queue := make([]plumbing.Hash, 0, len(tips)+1)
	for _, tip := range tips {
		queue = append(queue, plumbing.NewHash(tip))
	}
	stashed := make(map[plumbing.Hash]bool, len(stashes))
	for _, s := range stashes {
		if stashed[s.commit.Hash] {
			continue
		}
		stashed[s.commit.Hash] = true
		commits[s.commit.Hash] = s.commit
		queue = append(queue, s.commit.ParentHashes[0])
		children[s.commit.ParentHashes[0]]++
	}

	processed := 0
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h := queue[0]
		queue = queue[1:]
		if _, seen := commits[h]; seen {
			continue
		}
		c, err := r.repo.CommitObject(h)
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				// Shallow clones reference parents that are not stored.
				continue
			}
			return nil, fmt.Errorf("load commit %s: %w", h, err)
		}
		commits[h] = c
		for _, p := range c.ParentHashes {
			children[p]++
			queue = append(queue, p)
		}

		processed++
		if r.opts.OnProgress != nil {
			r.opts.OnProgress(processed)
		}
	}

	ready := binaryheap.NewWith(func(a, b interface{}) int {
		ca, cb := a.(*object.Commit), b.(*object.Commit)
		switch {
		case ca.Committer.When.After(cb.Committer.When):
			return -1
		case ca.Committer.When.Before(cb.Committer.When):
			return 1
		}
		return strings.Compare(ca.Hash.String(), cb.Hash.String())
	})
	for h, c := range commits {
		if children[h] == 0 {
			ready.Push(c)
		}
	}

	ordered := make([]*object.Commit, 0, len(commits))
	for !ready.Empty() {
		v, _ := ready.Pop()
		c := v.(*object.Commit)
		ordered = append(ordered, c)

		parents := c.ParentHashes
		if stashed[c.Hash] {
			parents = parents[:1]
		}
		for _, p := range parents {
			pc, ok := commits[p]
			if !ok {
				continue
			}
			children[p]--
			if children[p] == 0 {
				ready.Push(pc)
			}
		}
	}

	return ordered, nil
}

func (r *HistoryReader) worktreeDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return false, nil
		}
		return false, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("worktree status: %w", err)
	}
	return !status.IsClean(), nil
}

func recordFromCommit(c *object.Commit) CommitRecord {
	parents := make([]string, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = p.String()
	}

	message := c.Message
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}

	return CommitRecord{
		Hash:         c.Hash.String(),
		ParentHashes: parents,
		Author:       c.Author.Name,
		Email:        c.Author.Email,
		Date:         c.Committer.When,
		Message:      message,
	}
}

// stashRecord keeps only the base commit as parent; the index and untracked
// commits git stores alongside a stash are not part of the drawn history.
func stashRecord(c *object.Commit, selector string) CommitRecord {
	rec := recordFromCommit(c)
	info := &StashInfo{Selector: selector, BaseHash: rec.ParentHashes[0]}
	if len(rec.ParentHashes) > 2 {
		info.UntrackedFilesHash = rec.ParentHashes[2]
	}
	rec.ParentHashes = rec.ParentHashes[:1]
	rec.Stash = info
	return rec
}

func uncommittedRecord(head string) CommitRecord {
	return CommitRecord{
		Hash:         UncommittedHash,
		ParentHashes: []string{head},
		Message:      "Uncommitted Changes",
	}
}

// matchesFilters checks if a short ref name matches the include/exclude filters.
func (r *HistoryReader) matchesFilters(name string) (bool, error) {
	if v, ok := r.filterCache[name]; ok {
		return v, nil
	}

	// Check exclude patterns first
	for _, pattern := range r.opts.ExcludeRefs {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		if matched {
			r.filterCache[name] = false
			return false, nil
		}
	}

	// If no include patterns, accept all
	if len(r.opts.IncludeRefs) == 0 {
		r.filterCache[name] = true
		return true, nil
	}

	for _, pattern := range r.opts.IncludeRefs {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		if matched {
			r.filterCache[name] = true
			return true, nil
		}
	}

	r.filterCache[name] = false
	return false, nil
}
