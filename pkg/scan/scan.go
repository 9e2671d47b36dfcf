// Package scan walks a takeout export and yields qualifying media files.
package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Options configures a walk over a takeout export.
type Options struct {
	// SubtreeMarker restricts the walk to files whose directory path
	// contains this literal substring. Empty disables the restriction.
	SubtreeMarker string

	// MediaExtensions is the case-insensitive allow-list of extensions
	// treated as media candidates.
	MediaExtensions []string

	// Limit caps the number of files handed to the callback; once reached
	// the walk stops without scanning further directories. Zero or
	// negative means unlimited.
	Limit int
}

// DefaultOptions returns the takeout defaults: the Google Photos subtree and
// the full photo/video extension allow-list.
func DefaultOptions() Options {
	return Options{
		SubtreeMarker: "Google Photos",
		MediaExtensions: []string{
			".jpg", ".jpeg", ".png", ".gif", ".heic", ".heif",
			".bmp", ".webp", ".tiff", ".tif",
			".mp4", ".mov", ".m4v", ".avi", ".wmv", ".flv", ".mkv", ".webm",
		},
	}
}

// Walk visits every qualifying media file under root, calling fn with its
// full path. Sidecar .json records never qualify, whatever their extension
// case. Symlinked directories are not followed, and unreadable entries are
// skipped rather than aborting the walk.
func Walk(root string, opts Options, fn func(path string) error) error {
	exts := normalizeExts(opts.MediaExtensions)

	seen := 0
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		// The cap aborts traversal outright, not just file processing,
		// so a capped run does not keep scanning directories.
		if opts.Limit > 0 && seen >= opts.Limit {
			return fs.SkipAll
		}

		if d.IsDir() {
			return nil
		}

		lower := strings.ToLower(d.Name())
		if strings.HasSuffix(lower, ".json") {
			return nil
		}
		if !exts[filepath.Ext(lower)] {
			return nil
		}
		if opts.SubtreeMarker != "" && !strings.Contains(filepath.Dir(path), opts.SubtreeMarker) {
			return nil
		}

		seen++
		return fn(path)
	})
}

// Scan collects the qualifying paths under root, in walk order.
func Scan(root string, opts Options) ([]string, error) {
	var matches []string
	err := Walk(root, opts, func(path string) error {
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}
