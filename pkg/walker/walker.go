// Package walker finds manifests under a root directory and groups their
// dependency URLs by the directory that declares them.
package walker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajxudir/zigdeps/pkg/constants"
	"github.com/ajxudir/zigdeps/pkg/errors"
	"github.com/ajxudir/zigdeps/pkg/manifest"
	"github.com/ajxudir/zigdeps/pkg/verbose"
	"github.com/bmatcuk/doublestar/v4"
)

// Options controls a Collect walk.
//
// Fields:
//   - Recursive: Descend into subdirectories
//   - ManifestName: Manifest filename to look for; defaults to build.zig.zon
//   - Exclude: doublestar patterns matched against slash-separated paths
//     relative to the root; matching directories are not entered and
//     matching manifests are skipped
type Options struct {
	Recursive    bool
	ManifestName string
	Exclude      []string
}

// Collect lists the immediate children of root and gathers the URLs of every
// manifest found, recursing into subdirectories when opts.Recursive is set.
//
// Each manifest's URLs go to the group of its own directory; groups are never
// merged upward. Children are visited in os.ReadDir order (sorted by name),
// so the result is stable for a given filesystem state. Symlinked directories
// are not followed.
//
// An empty result (no manifest, or manifests without URLs) is not an error.
//
// Returns:
//   - *Groups: Directory to URL groups in traversal order
//   - error: I/O errors reading directories or manifests, or a
//     *errors.FormatError from a malformed .url line
func Collect(root string, opts Options) (*Groups, error) {
	if opts.ManifestName == "" {
		opts.ManifestName = constants.ManifestName
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.NewConfigError("exclude", pattern, "is not a valid glob pattern")
		}
	}

	groups := NewGroups()
	w := &walk{root: root, opts: opts, groups: groups}
	if err := w.dir(root); err != nil {
		return nil, err
	}

	verbose.Debug("collect finished", "root", root, "directories", groups.Len(), "urls", groups.Count())
	return groups, nil
}

type walk struct {
	root   string
	opts   Options
	groups *Groups
}

func (w *walk) dir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if w.excluded(path) {
			verbose.Debug("excluded", "path", path)
			continue
		}

		if entry.IsDir() {
			if w.opts.Recursive {
				if err := w.dir(path); err != nil {
					return err
				}
			}
			continue
		}

		if entry.Name() != w.opts.ManifestName || !isFile(path, entry) {
			continue
		}

		urls, err := manifest.ExtractURLs(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		verbose.Debug("manifest found", "path", path, "urls", len(urls))
		w.groups.Append(dir, urls...)
	}

	return nil
}

// excluded reports whether path matches one of the exclude patterns.
func (w *walk) excluded(path string) bool {
	if len(w.opts.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// isFile reports whether the entry is a regular file, resolving symlinks.
func isFile(path string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		verbose.Warnf("skipping broken symlink %s: %v", path, err)
		return false
	}
	return info.Mode().IsRegular()
}
