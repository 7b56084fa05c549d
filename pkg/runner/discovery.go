package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/seevg/pkg/langdetect"
)

// Discover returns the sorted, absolute paths of the files opts selects.
// Directories are walked for files whose extension marks them as SVG or
// (when Markdown formatting is on) Markdown; hidden entries, vendored
// directories and excluded globs are skipped. Files named explicitly are
// kept whatever their extension, unless excluded.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !excluded(rel(workDir, abs), opts.ExcludeGlobs) {
				add(abs)
			}
			continue
		}

		found, err := walk(ctx, abs, workDir, opts)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}

func walk(ctx context.Context, root, workDir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := rel(workDir, path)
		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || excluded(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			if path != root && !opts.IncludeVendored && langdetect.IsVendored(filepath.ToSlash(relPath)+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				sub, err := walk(ctx, target, workDir, opts)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if hidden || excluded(relPath, opts.ExcludeGlobs) || !wanted(path, opts) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// wanted classifies by extension only; content sniffing is left to ProcessFile.
func wanted(path string, opts Options) bool {
	switch langdetect.DetectFile(path, nil) {
	case langdetect.KindSVG:
		return true
	case langdetect.KindMarkdown:
		return opts.markdown()
	default:
		return false
	}
}

func rel(workDir, path string) string {
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

func excluded(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a slash-separated path against pattern. A pattern
// without a slash also matches any single path component, so "*.min.svg"
// and "build" work at any depth. "**" spans any number of components.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return false
	}

	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(pattern, "/"), strings.Split(path, "/"))
	}

	if ok, _ := filepath.Match(pattern, path); ok {
		return true
	}
	if strings.Contains(pattern, "/") {
		return strings.HasPrefix(path, pattern+"/")
	}
	for _, part := range strings.Split(path, "/") {
		if ok, _ := filepath.Match(pattern, part); ok {
			return true
		}
	}
	return false
}

func matchSegments(pattern, parts []string) bool {
	if len(pattern) == 0 {
		return len(parts) == 0
	}
	if pattern[0] == "**" {
		for skip := 0; skip <= len(parts); skip++ {
			if matchSegments(pattern[1:], parts[skip:]) {
				return true
			}
		}
		return false
	}
	if len(parts) == 0 {
		return false
	}
	if ok, _ := filepath.Match(pattern[0], parts[0]); !ok {
		return false
	}
	return matchSegments(pattern[1:], parts[1:])
}
