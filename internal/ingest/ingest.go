// Package ingest discovers the PDF files an extraction run will attempt. It
// filters by extension, optionally skips hidden entries, and gives duplicate
// base names distinct display names so every result row stays attributable.
package ingest

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfsift/pdfsift/constants"
)

// FileInfo is one discovered candidate file.
type FileInfo struct {
	Path        string
	DisplayName string
	SizeBytes   int64
}

// DirStats summarizes a discovery pass.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Deduplicated uint32
	Failed       uint32
}

// Discoverer walks the filesystem for candidate files.
type Discoverer struct {
	SkipHidden bool
	logger     *slog.Logger
}

func NewDiscoverer(skipHidden bool, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{SkipHidden: skipHidden, logger: logger}
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// DiscoverDirectory walks root and returns matching files in deterministic
// (sorted path) order.
func (d *Discoverer) DiscoverDirectory(root string) ([]FileInfo, DirStats, error) {
	var stats DirStats
	var paths []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if d.SkipHidden && path != root && IsHidden(path) {
				return filepath.SkipDir
			}
			return nil
		}
		stats.Scanned++
		if d.SkipHidden && IsHidden(path) {
			return nil
		}
		if !constants.IsAllowedExt(filepath.Ext(path)) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(paths)
	files := d.resolve(paths, &stats)
	d.logger.Info("ingest.discover.ok",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return files, stats, nil
}

// DiscoverPaths resolves explicitly listed files, keeping argument order.
func (d *Discoverer) DiscoverPaths(paths []string) ([]FileInfo, DirStats, error) {
	var stats DirStats
	for _, p := range paths {
		stats.Scanned++
		if !constants.IsAllowedExt(filepath.Ext(p)) {
			return nil, stats, fmt.Errorf("unsupported extension: %s", p)
		}
	}
	files := d.resolve(paths, &stats)
	return files, stats, nil
}

// resolve stats each path and assigns collision-free display names.
func (d *Discoverer) resolve(paths []string, stats *DirStats) []FileInfo {
	var files []FileInfo
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			stats.Failed++
			d.logger.Warn("ingest.stat.failed", "path", path, "error", err)
			continue
		}
		stats.Matched++
		name := UniqueName(filepath.Base(path), seen)
		if name != filepath.Base(path) {
			stats.Deduplicated++
		}
		seen[name] = struct{}{}
		files = append(files, FileInfo{Path: path, DisplayName: name, SizeBytes: info.Size()})
	}
	return files
}

// UniqueName disambiguates duplicate base names as "name#1.pdf", "name#2.pdf".
func UniqueName(name string, taken map[string]struct{}) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	base := name
	ext := ""
	if i := strings.LastIndex(name, "."); i > 0 {
		base, ext = name[:i], name[i:]
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s#%d%s", base, n, ext)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
