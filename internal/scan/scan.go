// Package scan enumerates source files under a directory tree with
// extension-based filtering, feeding the analysis pipeline.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotFound reports a path that does not exist.
	ErrNotFound = errors.New("path does not exist")
	// ErrNotDirectory reports a root path that exists but is not a directory.
	ErrNotDirectory = errors.New("path is not a directory")
)

// normalizeExt makes an extension token comparable: leading dot, lower case.
// ".LOG", "log", "LOG" and ".log" all normalize to ".log".
func normalizeExt(ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.ToLower(ext)
}

func extSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		return nil
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[normalizeExt(ext)] = true
	}
	return set
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("directory %q: %w", root, ErrNotFound)
		}
		return fmt.Errorf("stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q: %w", root, ErrNotDirectory)
	}
	return nil
}

// walkFiles is the single walk routine behind both the eager and lazy entry
// points. It visits every regular file under root in depth-first directory
// order, skipping files whose extension is in the ignore set. Any error from
// the filesystem (permission denied mid-walk included) aborts the walk.
func walkFiles(root string, ignoreExts []string, visit func(path string) error) error {
	if err := checkRoot(root); err != nil {
		return err
	}
	skip := extSet(ignoreExts)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %q: %w", path, err)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if skip[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		return visit(path)
	})
}

// ListFiles returns every regular file under root, recursively. Files whose
// extension matches an entry of ignoreExts (case-insensitive, with or without
// a leading dot) are skipped. A root that does not exist or is not a
// directory fails with ErrNotFound / ErrNotDirectory before any traversal.
func ListFiles(root string, ignoreExts ...string) ([]string, error) {
	var files []string
	err := walkFiles(root, ignoreExts, func(path string) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// IterFiles is the lazy counterpart of ListFiles: it yields one path at a
// time without materializing the full list. The root is validated before the
// sequence is returned; a failure mid-walk is delivered as a final element
// with a non-nil error, after which no further paths follow. Drained fully,
// the sequence produces exactly the paths ListFiles would return.
func IterFiles(root string, ignoreExts ...string) (iter.Seq2[string, error], error) {
	if err := checkRoot(root); err != nil {
		return nil, err
	}
	seq := func(yield func(string, error) bool) {
		err := walkFiles(root, ignoreExts, func(path string) error {
			if !yield(path, nil) {
				return fs.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
	return seq, nil
}

// ListFilesByExtension returns the files under root whose extension is in
// keepExts (case-insensitive). The ignore filter runs first, so an extension
// present in both sets is excluded.
func ListFilesByExtension(root string, keepExts []string, ignoreExts ...string) ([]string, error) {
	files, err := ListFiles(root, ignoreExts...)
	if err != nil {
		return nil, err
	}
	keep := extSet(keepExts)
	var matched []string
	for _, path := range files {
		if keep[strings.ToLower(filepath.Ext(path))] {
			matched = append(matched, path)
		}
	}
	return matched, nil
}

// ReadTextFile reads path as UTF-8 text. A missing file is reported via
// ErrNotFound so callers can skip it and continue; any other failure
// (permission, bad encoding) is a distinct read error.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("file %q: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %q: not valid UTF-8", path)
	}
	return string(data), nil
}
