package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/erraggy/normjson/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDocumentInput_ResolveFile(t *testing.T) {
	docCache.reset()
	input := documentInput{File: writeDoc(t, "feed.yaml", "a: 1\nb: [x]\n")}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, codec.SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, `{"a":1,"b":["x"]}`, result.Value.String())
}

func TestDocumentInput_ResolveContent(t *testing.T) {
	docCache.reset()
	input := documentInput{Content: `{"b": 1, "a": null}`}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, codec.SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "content", result.SourcePath)
	assert.Equal(t, []string{"b", "a"}, result.Value.Object().Keys())
}

func TestDocumentInput_ResolveForcedFormat(t *testing.T) {
	docCache.reset()
	_, err := documentInput{Content: `a: 1`, Format: "json"}.resolve()
	assert.Error(t, err)

	_, err = documentInput{Content: `{}`, Format: "xml"}.resolve()
	assert.Error(t, err)
}

func TestDocumentInput_ResolveNoneProvided(t *testing.T) {
	_, err := documentInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestDocumentInput_ResolveMultipleProvided(t *testing.T) {
	_, err := documentInput{File: "foo.json", Content: "{}"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestDocumentInput_ResolveFileNotFound(t *testing.T) {
	docCache.reset()
	_, err := documentInput{File: "/nonexistent/path.json"}.resolve()
	assert.Error(t, err)
}

func TestDocumentInput_InlineSizeLimit(t *testing.T) {
	saved := cfg.MaxInlineSize
	cfg.MaxInlineSize = 8
	t.Cleanup(func() { cfg.MaxInlineSize = saved })

	_, err := documentInput{Content: `{"abcdefgh": 1}`}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NORMJSON_MAX_INLINE_SIZE")
}

func TestDocCache_ReturnsIndependentTrees(t *testing.T) {
	docCache.reset()
	input := documentInput{Content: `{"tags": ["a", "A"]}`}

	first, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, docCache.size())

	tags, _ := first.Value.Object().Get("tags")
	tags.SetItems(nil)

	second, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, `{"tags":["a","A"]}`, second.Value.String(), "cached tree must not see caller mutations")
	assert.Equal(t, 1, docCache.size())
}

func TestDocCache_FileModTimeInvalidates(t *testing.T) {
	docCache.reset()
	path := writeDoc(t, "doc.json", `{"v": 1}`)
	key1 := makeCacheKey(documentInput{File: path}, codec.SourceFormatUnknown)
	require.NotEmpty(t, key1)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
	key2 := makeCacheKey(documentInput{File: path}, codec.SourceFormatUnknown)
	assert.NotEqual(t, key1, key2)

	assert.Empty(t, makeCacheKey(documentInput{File: "/nonexistent/x.json"}, codec.SourceFormatUnknown))
	assert.True(t, strings.HasPrefix(makeCacheKey(documentInput{Content: "{}"}, codec.SourceFormatJSON), "content:json:"))
}

func TestDocCache_EvictsOldest(t *testing.T) {
	store := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	r := &codec.ParseResult{}
	store.putWithTTL("a", r, time.Minute)
	time.Sleep(time.Millisecond)
	store.putWithTTL("b", r, time.Minute)
	time.Sleep(time.Millisecond)
	store.putWithTTL("c", r, time.Minute)

	assert.Equal(t, 2, store.size())
	assert.Nil(t, store.get("a"))
	assert.NotNil(t, store.get("c"))
}

func TestDocCache_Expiry(t *testing.T) {
	store := &docCacheStore{entries: make(map[string]*cacheEntry), maxSize: 4}
	store.putWithTTL("gone", &codec.ParseResult{}, -time.Second)
	store.putWithTTL("kept", &codec.ParseResult{}, time.Minute)

	store.sweep()
	assert.Equal(t, 1, store.size())
	assert.Nil(t, store.get("gone"))
	assert.NotNil(t, store.get("kept"))
}
