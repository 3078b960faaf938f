package git

import (
	"strings"
	"time"
)

// UncommittedHash identifies the synthetic row standing for uncommitted working tree changes.
const UncommittedHash = "*"

// RemoteRef is a remote-tracking branch attached to a commit.
type RemoteRef struct {
	Name       string // e.g. "origin/main"
	RemoteName string // e.g. "origin"
}

// BranchName returns the name of the branch on the remote, with the remote
// prefix removed.
func (r RemoteRef) BranchName() string {
	if r.RemoteName != "" {
		if s, ok := strings.CutPrefix(r.Name, r.RemoteName+"/"); ok {
			return s
		}
	}
	if idx := strings.LastIndexByte(r.Name, '/'); idx != -1 {
		return r.Name[idx+1:]
	}
	return r.Name
}

// StashInfo describes a stash entry.
type StashInfo struct {
	Selector           string // e.g. "stash@{0}"
	BaseHash           string
	UntrackedFilesHash string
}

// CommitRecord is one commit as delivered to the graph layout, newest first.
type CommitRecord struct {
	Hash         string
	ParentHashes []string
	Heads        []string
	Remotes      []RemoteRef
	Tags         []string
	Stash        *StashInfo
	Author       string
	Email        string
	Date         time.Time
	Message      string
}

// IsUncommitted reports whether the record is the uncommitted changes row.
func (c CommitRecord) IsUncommitted() bool {
	return c.Hash == UncommittedHash
}

// IsMerge reports whether the commit has more than one parent.
func (c CommitRecord) IsMerge() bool {
	return len(c.ParentHashes) > 1
}

// ShortHash returns the first 8 characters of the hash.
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) <= 8 {
		return c.Hash
	}
	return c.Hash[:8]
}

// History is the ordered commit list plus the repository state it was read from.
type History struct {
	Commits []CommitRecord
	HEAD    string // hash HEAD points to, empty for an unborn branch
	HeadRef string // short branch name when HEAD is attached, empty when detached
	// MoreAvailable is set when MaxCommits truncated the list.
	MoreAvailable bool
}

// Backend selects the implementation used to read history.
type Backend string

const (
	BackendGoGit  Backend = "go-git"
	BackendGitCLI Backend = "git-cli"
)

// ReadOptions configures the history reader.
type ReadOptions struct {
	RepoPath               string
	MaxCommits             int // 0 means unlimited
	ShowRemoteBranches     bool
	ShowTags               bool
	ShowStashes            bool
	ShowUncommittedChanges bool
	IncludeRefs            []string // Glob patterns on short ref names
	ExcludeRefs            []string // Glob patterns on short ref names
	Backend                Backend
	OnProgress             func(processed int)
}
