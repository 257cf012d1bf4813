package commands

import (
	"testing"

	"github.com/erraggy/normjson/internal/testutil"
	"github.com/erraggy/normjson/normerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeCmd(t *testing.T) {
	g, stdout, stderr := testGlobals(`[{"k1":"x","k2":"a1"},{"k1":"x","k2":"a2"},{"other":1}]`)
	cmd := &MergeCmd{File: StdinFilePath}
	require.NoError(t, cmd.Run(g))
	assert.Equal(t, `[{"k1":"x","k2":["a1","a2"]},{"other":1}]`+"\n", stdout.String())
	assert.Contains(t, stderr.String(), "merge-similar (1 removed)")
}

func TestMergeObjectsCmd(t *testing.T) {
	left := testutil.WriteTempFile(t, "left.json", `{"k1": "x", "k2": "a1"}`)
	g, stdout, stderr := testGlobals(`{"k1": "x", "k2": "a2"}`)
	cmd := &MergeObjectsCmd{Left: left, Right: StdinFilePath}
	require.NoError(t, cmd.Run(g))
	assert.Equal(t, `{"k1":"x","k2":["a1","a2"]}`+"\n", stdout.String())
	assert.Contains(t, stderr.String(), "Right: <stdin>")
	assert.Contains(t, stderr.String(), "Merged: 2 keys, 5 nodes")
}

func TestMergeObjectsCmd_ShapeMismatch(t *testing.T) {
	left := testutil.WriteTempFile(t, "left.json", `{"a": 1}`)
	right := testutil.WriteTempFile(t, "right.json", `{"b": 1}`)
	g, stdout, _ := testGlobals("")
	cmd := &MergeObjectsCmd{Left: left, Right: right}
	err := cmd.Run(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, normerrors.ErrShapeMismatch)
	assert.Empty(t, stdout.String())
}

func TestMergeObjectsCmd_BothStdin(t *testing.T) {
	g, _, _ := testGlobals(`{}`)
	cmd := &MergeObjectsCmd{Left: StdinFilePath, Right: StdinFilePath}
	err := cmd.Run(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one of left and right")
}

func TestMergeObjectsCmd_MissingFile(t *testing.T) {
	g, _, _ := testGlobals("")
	cmd := &MergeObjectsCmd{Left: "does-not-exist.json", Right: "also-missing.json"}
	err := cmd.Run(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left:")
}
