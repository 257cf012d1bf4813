package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeOutputPath validates and cleans an output file path.
// It resolves ".." components via filepath.Clean + filepath.Abs and
// rejects paths that resolve to symlinks. New files in existing
// directories are accepted. Returns the cleaned absolute path.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("pathutil: empty output path")
	}
	cleaned := filepath.Clean(path)

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
	case os.IsNotExist(err):
		// New file.
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	return abs, nil
}

// DerivedOutputPath returns dir/<base>.normalized.<ext> for a document read
// from source, where base is the source file name without its extension.
// An empty source or "-" (stdin) uses "stdin" as the base.
func DerivedOutputPath(dir, source, ext string) string {
	base := "stdin"
	if source != "" && source != "-" {
		base = filepath.Base(source)
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dir, base+".normalized."+ext)
}
