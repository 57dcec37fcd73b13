// internal/scandir/scandir.go
// Package scandir walks a directory of per-process coverage dumps: collect
// matching files, sort them by filename so runs are reproducible, and sniff
// gzip compression off the extension rather than the file's magic bytes.
package scandir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Voskan/covmerge/pkg/cov"
	"github.com/Voskan/covmerge/pkg/v8coverage"
)

// Entry is one matched coverage file.
type Entry struct {
	Path    string
	Gzipped bool
}

// Scan lists every *.json and *.json.gz file directly inside dir, sorted by
// filename ascending. It does not recurse into subdirectories.
func Scan(dir string) ([]Entry, error) {
	infos, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scandir: read %s: %w", dir, err)
	}

	var entries []Entry
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		name := info.Name()
		switch {
		case strings.HasSuffix(name, ".json.gz"):
			entries = append(entries, Entry{Path: filepath.Join(dir, name), Gzipped: true})
		case strings.HasSuffix(name, ".json"):
			entries = append(entries, Entry{Path: filepath.Join(dir, name), Gzipped: false})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// LoadAll scans dir and decodes every matched file into a ProcessCov, in
// filename order. A file that fails to parse aborts the whole load with a
// wrapped error naming the offending path.
func LoadAll(dir string) ([]cov.ProcessCov, error) {
	entries, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	out := make([]cov.ProcessCov, 0, len(entries))
	for _, e := range entries {
		p, err := LoadFile(e)
		if err != nil {
			return nil, fmt.Errorf("scandir: %s: %w", e.Path, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// LoadFile opens and decodes a single entry.
func LoadFile(e Entry) (cov.ProcessCov, error) {
	f, err := os.Open(e.Path)
	if err != nil {
		return cov.ProcessCov{}, err
	}
	defer f.Close()

	return v8coverage.Read(f, e.Gzipped)
}
