package output

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/masmgr/commitgraph/internal/git"
	"github.com/masmgr/commitgraph/internal/graph"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func limitRows[T any](items []T, limit int) []T {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

// relativeDate renders t relative to now, e.g. "3 days ago".
func relativeDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// refLabels lists the decorations of a commit the way git log does.
func refLabels(rec git.CommitRecord, headRef string) []string {
	var labels []string
	for _, h := range rec.Heads {
		if h == headRef {
			labels = append(labels, "HEAD -> "+h)
		} else {
			labels = append(labels, h)
		}
	}
	for _, r := range rec.Remotes {
		labels = append(labels, r.Name)
	}
	for _, t := range rec.Tags {
		labels = append(labels, "tag: "+t)
	}
	if rec.Stash != nil {
		labels = append(labels, rec.Stash.Selector)
	}
	return labels
}

func displayHash(rec git.CommitRecord) string {
	if rec.IsUncommitted() {
		return "worktree"
	}
	return rec.ShortHash()
}

func followsName(g *graph.Graph, br graph.Branch) string {
	if br.Follows == graph.NoBranch {
		return ""
	}
	owner, ok := g.Branch(br.Follows)
	if !ok {
		return ""
	}
	return branchLabel(owner)
}

func branchLabel(br graph.Branch) string {
	if br.Name == "" {
		return "(orphan)"
	}
	return br.Name
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
