package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// IncludePaths is an ordered list of include search directories.
type IncludePaths []string

// Add appends directories, skipping blanks and duplicates.
func (p *IncludePaths) Add(dirs ...string) {
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" || p.contains(dir) {
			continue
		}
		*p = append(*p, dir)
	}
}

func (p IncludePaths) contains(dir string) bool {
	for _, d := range p {
		if d == dir {
			return true
		}
	}
	return false
}

// Args renders the list as -isystem argument pairs.
func (p IncludePaths) Args() []string {
	args := make([]string, 0, 2*len(p))
	for _, dir := range p {
		args = append(args, "-isystem", dir)
	}
	return args
}

// LoadIncludes reads a newline-delimited list of include directories. A
// first line starting with '#' is a comment; blank lines are ignored.
func LoadIncludes(path string) (IncludePaths, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncludesFile, err)
	}
	defer f.Close()

	var paths IncludePaths
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			first = false
			if strings.HasPrefix(line, "#") {
				continue
			}
		}
		paths.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIncludesFile, err)
	}
	return paths, nil
}
