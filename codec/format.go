package codec

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFormat identifies the serialization of a document
type SourceFormat string

const (
	// SourceFormatUnknown means the format has not been determined
	SourceFormatUnknown SourceFormat = "unknown"
	// SourceFormatJSON is JSON
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatYAML is YAML
	SourceFormatYAML SourceFormat = "yaml"
)

// ParseSourceFormat maps a user-supplied name ("json", "yaml", "yml", "" or
// "auto") to a SourceFormat. The empty string and "auto" map to
// SourceFormatUnknown, which means detect.
func ParseSourceFormat(name string) (SourceFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return SourceFormatUnknown, nil
	case "json":
		return SourceFormatJSON, nil
	case "yaml", "yml":
		return SourceFormatYAML, nil
	default:
		return SourceFormatUnknown, fmt.Errorf("codec: unknown format %q: valid formats are json, yaml", name)
	}
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// detectFormatFromPath detects the source format from a file path.
// A trailing .gz or .zst extension is skipped.
func detectFormatFromPath(path string) SourceFormat {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" || ext == ".zst" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
	}
	switch ext {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// JSON documents handled here start with '{' or '[' after whitespace;
// everything else is read as YAML, which also accepts bare JSON scalars.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
