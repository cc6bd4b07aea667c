// Package rewriter inserts comment blocks into a file's lines and writes the
// result back with a backup of the original.
package rewriter

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// DefaultBackupSuffix is appended to the original path for the backup copy.
const DefaultBackupSuffix = ".bak"

var (
	// ErrBackup indicates the original could not be moved to its backup path.
	ErrBackup = errors.New("failed to back up original file")

	// ErrWrite indicates the rewritten file could not be written.
	ErrWrite = errors.New("failed to write rewritten file")
)

// Rewriter collects comment blocks keyed by their 1-based anchor line.
type Rewriter struct {
	blocks map[int]string
}

// New returns an empty Rewriter.
func New() *Rewriter {
	return &Rewriter{blocks: make(map[int]string)}
}

// Add registers a block for line. The first block added for a line wins;
// Add reports whether block was kept.
func (r *Rewriter) Add(line int, block string) bool {
	if _, ok := r.blocks[line]; ok {
		return false
	}
	r.blocks[line] = block
	return true
}

// Lines returns the anchor lines in the order they will be applied.
func (r *Rewriter) Lines() []int {
	lines := make([]int, 0, len(r.blocks))
	for l := range r.blocks {
		lines = append(lines, l)
	}
	slices.Sort(lines)
	slices.Reverse(lines)
	return lines
}

// Summary counts what Apply changed.
type Summary struct {
	// Blocks is the number of comment bodies inserted.
	Blocks int
	// Lines is the total number of lines inserted, separators included.
	Lines int
	// Guarded lists anchors whose body was skipped because the next line
	// already closes a comment.
	Guarded []int
}

// Apply inserts every block into buf, highest anchor line first so earlier
// insertions never move a later anchor.
func (r *Rewriter) Apply(buf *LineBuffer) Summary {
	var sum Summary
	for _, line := range r.Lines() {
		idx := line - 1
		if idx < 0 || idx >= buf.Len() {
			continue
		}

		indent := indentOf(buf.lines[idx])
		if idx+1 < buf.Len() && strings.Contains(buf.lines[idx+1], "*/") {
			sum.Guarded = append(sum.Guarded, line)
		} else {
			body := blockLines(r.blocks[line], indent)
			buf.insertAt(idx, body...)
			sum.Blocks++
			sum.Lines += len(body)
		}

		buf.insertAt(idx, "")
		sum.Lines++
	}
	slices.Sort(sum.Guarded)
	return sum
}

// blockLines splits a block into lines and pads each with indent.
func blockLines(block, indent string) []string {
	raw := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = indent + l
	}
	return out
}

// Persist moves path to path+suffix and writes buf to path with the
// original file mode. If the write fails the backup is left in place and
// no rollback is attempted. It returns the backup path.
func Persist(path string, buf *LineBuffer, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}

	backup := path + suffix
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return backup, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return backup, nil
}
