package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Each record is prefixed by 0x1e (record separator) with NUL-separated fields.
const gitLogFormat = "%x1e%H%x00%P%x00%an%x00%ae%x00%ct%x00%s"

func (r *HistoryReader) git(ctx context.Context, args ...string) ([]byte, error) {
	full := append([]string{"-C", r.opts.RepoPath}, args...)
	out, err := exec.CommandContext(ctx, "git", full...).Output()
	if err != nil {
		var stderr string
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(ee.Stderr))
		}
		return nil, fmt.Errorf("git %s failed: %w: %s", args[0], err, stderr)
	}
	return out, nil
}

func (r *HistoryReader) readCommitsGitCLI(ctx context.Context) (*History, error) {
	history := &History{}

	if out, err := r.git(ctx, "rev-parse", "--verify", "-q", "HEAD"); err == nil {
		history.HEAD = strings.TrimSpace(string(out))
	}
	if out, err := r.git(ctx, "symbolic-ref", "--short", "-q", "HEAD"); err == nil {
		history.HeadRef = strings.TrimSpace(string(out))
	}

	remotesOut, err := r.git(ctx, "remote")
	if err != nil {
		return nil, err
	}
	remoteNames := strings.Fields(string(remotesOut))

	refsOut, err := r.git(ctx, "for-each-ref", "--format=%(objectname)%00%(refname)%00%(*objectname)")
	if err != nil {
		return nil, err
	}
	refs, err := r.parseForEachRef(refsOut, remoteNames)
	if err != nil {
		return nil, err
	}
	if history.HEAD != "" {
		refs.addTip(history.HEAD)
	}

	var records []CommitRecord
	if len(refs.tips) > 0 {
		args := []string{"log", "--no-color", "--date-order", "--pretty=format:" + gitLogFormat}
		if r.opts.MaxCommits > 0 {
			args = append(args, "-n", strconv.Itoa(r.opts.MaxCommits+1))
		}
		args = append(args, refs.tips...)
		args = append(args, "--")

		out, err := r.git(ctx, args...)
		if err != nil {
			return nil, err
		}
		records, err = r.parseGitLog(out)
		if err != nil {
			return nil, err
		}
		if r.opts.MaxCommits > 0 && len(records) > r.opts.MaxCommits {
			records = records[:r.opts.MaxCommits]
			history.MoreAvailable = true
		}
	}

	if r.opts.ShowStashes {
		out, err := r.git(ctx, "stash", "list", "--no-color", "--pretty=format:%x1e%H%x00%P%x00%an%x00%ae%x00%ct%x00%gd")
		if err != nil {
			return nil, err
		}
		stashes, err := parseStashList(out)
		if err != nil {
			return nil, err
		}
		records = insertStashes(records, stashes)
	}

	for i := range records {
		refs.decorate(&records[i])
	}

	if r.opts.ShowUncommittedChanges && history.HEAD != "" {
		out, err := r.git(ctx, "status", "--porcelain", "--untracked-files=all")
		if err == nil && len(bytes.TrimSpace(out)) > 0 {
			records = append([]CommitRecord{uncommittedRecord(history.HEAD)}, records...)
		}
	}

	history.Commits = records
	return history, nil
}

func (r *HistoryReader) parseForEachRef(out []byte, remoteNames []string) (*refSet, error) {
	refs := newRefSet()
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\x00")
		if len(fields) < 3 {
			return nil, fmt.Errorf("unexpected for-each-ref line %q", line)
		}
		hash, name, peeled := fields[0], fields[1], fields[2]

		switch {
		case strings.HasPrefix(name, "refs/heads/"):
			short := strings.TrimPrefix(name, "refs/heads/")
			ok, err := r.matchesFilters(short)
			if err != nil {
				return nil, err
			}
			if ok {
				refs.heads[hash] = append(refs.heads[hash], short)
				refs.addTip(hash)
			}
		case strings.HasPrefix(name, "refs/remotes/"):
			short := strings.TrimPrefix(name, "refs/remotes/")
			if !r.opts.ShowRemoteBranches || strings.HasSuffix(short, "/HEAD") {
				continue
			}
			ok, err := r.matchesFilters(short)
			if err != nil {
				return nil, err
			}
			if ok {
				refs.remotes[hash] = append(refs.remotes[hash], RemoteRef{
					Name:       short,
					RemoteName: matchRemoteName(short, remoteNames),
				})
				refs.addTip(hash)
			}
		case strings.HasPrefix(name, "refs/tags/"):
			if !r.opts.ShowTags {
				continue
			}
			short := strings.TrimPrefix(name, "refs/tags/")
			ok, err := r.matchesFilters(short)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if peeled != "" {
				hash = peeled
			}
			refs.tags[hash] = append(refs.tags[hash], short)
			refs.addTip(hash)
		}
	}
	sort.Strings(refs.tips)
	return refs, nil
}

func (r *HistoryReader) parseGitLog(out []byte) ([]CommitRecord, error) {
	var results []CommitRecord
	for _, rec := range bytes.Split(out, []byte{0x1e}) {
		rec = bytes.TrimRight(rec, "\n")
		if len(rec) == 0 {
			continue
		}
		c, err := parseLogRecord(rec)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
		if r.opts.OnProgress != nil {
			r.opts.OnProgress(len(results))
		}
	}
	return results, nil
}

func parseLogRecord(rec []byte) (CommitRecord, error) {
	fields := bytes.SplitN(rec, []byte{0x00}, 6)
	if len(fields) < 6 {
		return CommitRecord{}, fmt.Errorf("unexpected git log record format")
	}
	secs, err := strconv.ParseInt(string(fields[4]), 10, 64)
	if err != nil {
		return CommitRecord{}, fmt.Errorf("parse committer date: %w", err)
	}
	return CommitRecord{
		Hash:         string(fields[0]),
		ParentHashes: strings.Fields(string(fields[1])),
		Author:       string(fields[2]),
		Email:        string(fields[3]),
		Date:         time.Unix(secs, 0),
		Message:      string(fields[5]),
	}, nil
}

func parseStashList(out []byte) ([]CommitRecord, error) {
	var stashes []CommitRecord
	for _, rec := range bytes.Split(out, []byte{0x1e}) {
		rec = bytes.TrimRight(rec, "\n")
		if len(rec) == 0 {
			continue
		}
		c, err := parseLogRecord(rec)
		if err != nil {
			return nil, err
		}
		if len(c.ParentHashes) == 0 {
			continue
		}
		info := &StashInfo{Selector: c.Message, BaseHash: c.ParentHashes[0]}
		if len(c.ParentHashes) > 2 {
			info.UntrackedFilesHash = c.ParentHashes[2]
		}
		c.ParentHashes = c.ParentHashes[:1]
		c.Stash = info
		c.Message = info.Selector
		stashes = append(stashes, c)
	}
	return stashes, nil
}

// insertStashes places each stash by date, but never below its base commit.
func insertStashes(commits []CommitRecord, stashes []CommitRecord) []CommitRecord {
	for _, s := range stashes {
		pos := len(commits)
		for i, c := range commits {
			if c.Hash == s.Stash.BaseHash || c.Date.Before(s.Date) {
				pos = i
				break
			}
		}
		commits = append(commits, CommitRecord{})
		copy(commits[pos+1:], commits[pos:])
		commits[pos] = s
	}
	return commits
}
