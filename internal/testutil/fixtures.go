// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/normjson/codec"
	"github.com/erraggy/normjson/value"
)

// ScenarioRecord is the null-padded record used across the pruning and
// deduplication tests.
const ScenarioRecord = `{"k1": null, "k2": "v", "k3": {}, "k4": [], "k5": [1,2,3,3]}`

// FeedRecords is a small feed in which the same indicator is reported
// twice with different sources, padded with nulls and empty containers.
const FeedRecords = `[
  {"indicator": "evil.example", "type": "domain", "source": "feed-a", "tags": ["C2"], "notes": null},
  {"indicator": "evil.example", "type": "domain", "source": "feed-b", "tags": ["c2"], "notes": null},
  {"indicator": "10.0.0.1", "type": "ipv4", "seen": [], "extra": {}}
]`

// MustParse decodes a JSON or YAML document or fails the test.
func MustParse(t testing.TB, doc string) *value.Value {
	t.Helper()
	v, err := codec.ParseString(doc)
	if err != nil {
		t.Fatalf("parse %q: %v", doc, err)
	}
	return v
}

// MustJSON encodes v as compact JSON or fails the test.
func MustJSON(t testing.TB, v *value.Value) string {
	t.Helper()
	out, err := codec.MarshalJSON(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(out)
}

// WriteTempFile writes content to name inside a fresh temporary directory
// and returns the file path.
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
