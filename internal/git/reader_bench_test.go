package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// createBenchRepo builds an on-disk repository with a main line of commits
// and a feature branch forked every branchEvery commits.
func createBenchRepo(tb testing.TB, commits, branchEvery int) string {
	tb.Helper()

	repoDir := tb.TempDir()

	repo, err := gogit.PlainInit(repoDir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}

	base := time.Now().Add(-time.Duration(commits+10) * time.Hour)
	commit := func(i int, msg string) plumbing.Hash {
		tb.Helper()
		full := filepath.Join(repoDir, "file.txt")
		if err := os.WriteFile(full, []byte(msg), 0o644); err != nil {
			tb.Fatalf("WriteFile: %v", err)
		}
		if _, err := wt.Add("file.txt"); err != nil {
			tb.Fatalf("Add: %v", err)
		}
		sig := &object.Signature{
			Name:  "Bench",
			Email: "bench@example.com",
			When:  base.Add(time.Duration(i) * time.Hour),
		}
		h, err := wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
		if err != nil {
			tb.Fatalf("Commit: %v", err)
		}
		return h
	}

	for i := 0; i < commits; i++ {
		h := commit(i, fmt.Sprintf("commit %d", i))
		if branchEvery > 0 && i > 0 && i%branchEvery == 0 {
			name := plumbing.NewBranchReferenceName(fmt.Sprintf("feature/%03d", i))
			if err := repo.Storer.SetReference(plumbing.NewHashReference(name, h)); err != nil {
				tb.Fatalf("SetReference: %v", err)
			}
		}
	}

	return repoDir
}

func BenchmarkHistoryReader_ReadCommits(b *testing.B) {
	repoDir := createBenchRepo(b, 200, 10)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		reader, err := NewHistoryReader(ReadOptions{RepoPath: repoDir, ShowTags: true})
		if err != nil {
			b.Fatalf("NewHistoryReader: %v", err)
		}
		history, err := reader.ReadCommits(context.Background())
		if err != nil {
			b.Fatalf("ReadCommits: %v", err)
		}
		if len(history.Commits) != 200 {
			b.Fatalf("len(Commits) = %d, expected 200", len(history.Commits))
		}
	}
}

func BenchmarkHistoryReader_ReadCommits_MaxCommits(b *testing.B) {
	repoDir := createBenchRepo(b, 200, 10)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		reader, err := NewHistoryReader(ReadOptions{RepoPath: repoDir, MaxCommits: 50})
		if err != nil {
			b.Fatalf("NewHistoryReader: %v", err)
		}
		history, err := reader.ReadCommits(context.Background())
		if err != nil {
			b.Fatalf("ReadCommits: %v", err)
		}
		if !history.MoreAvailable {
			b.Fatalf("expected MoreAvailable")
		}
	}
}
