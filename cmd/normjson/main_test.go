package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/normjson/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "normjson v"))
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "", "sort")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "normjson: error:")
}

func TestRun_PruneStdin(t *testing.T) {
	code, stdout, stderr := runCLI(t, testutil.ScenarioRecord, "prune", "--empty", "--indent", "0")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"k2":"v","k5":[1,2,3,3]}`+"\n", stdout)
	assert.Contains(t, stderr, "Document: <stdin>")
}

func TestRun_DefaultIndent(t *testing.T) {
	code, stdout, _ := runCLI(t, `{"a": null, "b": 1}`, "prune", "-q", "-")
	require.Equal(t, 0, code)
	assert.Equal(t, "{\n  \"b\": 1\n}\n", stdout)
}

func TestRun_FormatYAML(t *testing.T) {
	code, stdout, _ := runCLI(t, `["a", "A"]`, "dedupe", "-q", "--format", "yaml")
	require.Equal(t, 0, code)
	assert.Equal(t, "- a\n", stdout)
}

func TestRun_InvalidFormat(t *testing.T) {
	code, _, stderr := runCLI(t, `{}`, "prune", "--format", "xml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error")
}

func TestRun_OutputFile(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", `{"tags": ["x", "X"], "notes": null}`)
	out := filepath.Join(t.TempDir(), "out.json")

	code, stdout, stderr := runCLI(t, "", "normalize", "-o", out, "--indent", "0", in)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `{"tags":["x"]}`+"\n", string(data))
}

func TestRun_OutputOverwritesInput(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", `{}`)
	code, _, stderr := runCLI(t, "", "prune", "-o", in, in)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "would overwrite input file")
}

func TestRun_StepsFromEnv(t *testing.T) {
	t.Setenv("NORMJSON_STEPS", "prune-nulls")
	code, stdout, stderr := runCLI(t, `{"a": null, "b": [], "c": ["x", "X"]}`, "normalize", "--indent", "0", "-")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"b":[],"c":["x","X"]}`+"\n", stdout)
	assert.Contains(t, stderr, "Steps: prune-nulls (1 removed)")
}

func TestRun_MergeObjects(t *testing.T) {
	left := testutil.WriteTempFile(t, "left.yaml", "id: a\nv: 1\n")
	right := testutil.WriteTempFile(t, "right.yaml", "id: a\nv: 2\n")
	code, stdout, stderr := runCLI(t, "", "merge-objects", "-q", left, right)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"id":"a","v":[1,2]}`, testutil.MustJSON(t, testutil.MustParse(t, stdout)))
}

func TestRun_MergeObjectsMismatch(t *testing.T) {
	left := testutil.WriteTempFile(t, "left.json", `{"a": 1}`)
	right := testutil.WriteTempFile(t, "right.json", `[1]`)
	code, _, stderr := runCLI(t, "", "merge-objects", left, right)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestRun_DebugLogging(t *testing.T) {
	code, _, stderr := runCLI(t, `{"a": null}`, "--debug", "prune", "-q")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "level=DEBUG")
}
