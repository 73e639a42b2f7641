// Package discovery collects the files of a repository that take part in
// a JDK upgrade and sorts them into source, build and CI files.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Category is the kind of file, which decides how it is analysed.
type Category int

const (
	// CategorySource is program source scanned block by block.
	CategorySource Category = iota

	// CategoryBuild is a build descriptor analysed as a whole.
	CategoryBuild

	// CategoryCI is a container or pipeline definition analysed as a whole.
	CategoryCI
)

func (c Category) String() string {
	switch c {
	case CategoryBuild:
		return "build"
	case CategoryCI:
		return "ci"
	default:
		return "source"
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// File is a discovered file.
type File struct {
	// Path is the absolute path.
	Path string

	// Rel is the slash-separated path relative to the working directory.
	Rel string

	Category Category
}

// Options controls discovery.
type Options struct {
	// Paths are the files or directories to search. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors the globs.
	// Defaults to the process working directory.
	WorkingDir string

	// Source, Build and CI are the include globs per category, matched
	// against slash-separated paths relative to WorkingDir.
	Source []string
	Build  []string
	CI     []string

	// Skip globs exclude files and prune directories.
	Skip []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool
}

// Discover returns the matching files sorted by path. Files named
// explicitly in Paths are always included; when no include glob matches
// them they count as source files.
func Discover(ctx context.Context, opts Options) ([]File, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]struct{})
	var files []File
	add := func(file File) {
		if _, ok := seen[file.Path]; ok {
			return
		}
		seen[file.Path] = struct{}{}
		files = append(files, file)
	}

	for _, inputPath := range paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			rel := relPath(workDir, absPath)
			category, ok := opts.classify(rel)
			if !ok {
				category = CategorySource
			}
			add(File{Path: absPath, Rel: rel, Category: category})
			continue
		}

		found, err := walk(ctx, absPath, workDir, opts)
		if err != nil {
			return nil, err
		}
		for _, file := range found {
			add(file)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// walk collects matching files below root.
func walk(ctx context.Context, root, workDir string, opts Options) ([]File, error) {
	var files []File

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := relPath(workDir, path)

		if entry.IsDir() {
			if path != root && opts.skipped(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !opts.FollowSymlinks || opts.skipped(rel) {
					return nil
				}
				sub, err := walk(ctx, realPath, workDir, opts)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if opts.skipped(rel) {
			return nil
		}
		if category, ok := opts.classify(rel); ok {
			files = append(files, File{Path: path, Rel: rel, Category: category})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// classify returns the first category whose globs match rel.
func (o Options) classify(rel string) (Category, bool) {
	switch {
	case matchAny(o.Source, rel):
		return CategorySource, true
	case matchAny(o.Build, rel):
		return CategoryBuild, true
	case matchAny(o.CI, rel):
		return CategoryCI, true
	default:
		return 0, false
	}
}

func (o Options) skipped(rel string) bool {
	return matchAny(o.Skip, rel)
}

// Match reports whether the slash-separated rel matches any pattern.
func Match(patterns []string, rel string) bool {
	return matchAny(patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func relPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}
