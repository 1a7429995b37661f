package hashengine

import (
	"os"
	"path/filepath"
	"sync"
)

// Discover expands paths into the flat file list HashFiles/Verify would
// hash, for CLI-level callers (e.g. a digest cache) that need to inspect
// the file set before handing it to the engine.
func Discover(paths []string) ([]string, error) {
	return discover(paths)
}

// discover expands each input path into an ordered file list. A path that
// is itself a regular file is taken as-is; a directory is expanded
// recursively with filepath.Walk. A symlink to a file is listed as a file
// and hashed through to its target's content. Symlinked directories are not
// descended into, including an input path that is itself a symlink to a
// directory: such an entry is listed as a single path, and hashing it fails
// with an I/O error. Order beyond "files within one root appear together"
// is not guaranteed.
func discover(paths []string) ([]string, error) {
	var mu sync.Mutex
	var files []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			mu.Lock()
			files = append(files, root)
			mu.Unlock()
			continue
		}

		err = filepath.Walk(root, func(path string, walkInfo os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if walkInfo.IsDir() {
				return nil
			}
			mu.Lock()
			files = append(files, path)
			mu.Unlock()
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// commonPrefixDir returns the deepest directory common to every path in
// paths, used to derive relative verification keys. The prefix is taken
// over each path's containing directory, not the path itself, so a
// single-file list keys to that file's basename rather than to the file
// itself (which would make it its own "directory" and key to "."). Returns
// "" for an empty input.
func commonPrefixDir(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	prefix := splitPath(filepath.Clean(filepath.Dir(paths[0])))
	for _, p := range paths[1:] {
		parts := splitPath(filepath.Clean(filepath.Dir(p)))

		n := len(prefix)
		if len(parts) < n {
			n = len(parts)
		}
		i := 0
		for i < n && prefix[i] == parts[i] {
			i++
		}
		prefix = prefix[:i]
	}

	if len(prefix) == 0 {
		return string(filepath.Separator)
	}
	joined := filepath.Join(prefix...)
	if filepath.IsAbs(paths[0]) && !filepath.IsAbs(joined) {
		joined = string(filepath.Separator) + joined
	}
	return joined
}

// splitPath breaks an absolute, cleaned path into its path elements.
func splitPath(p string) []string {
	var parts []string
	for {
		dir, file := filepath.Split(p)
		dir = filepath.Clean(dir)
		if file != "" {
			parts = append([]string{file}, parts...)
		}
		if dir == p {
			break
		}
		p = dir
	}
	return parts
}
