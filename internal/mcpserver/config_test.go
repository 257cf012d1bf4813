package mcpserver

import (
	"testing"
	"time"

	"github.com/erraggy/normjson/normalizer"
	"github.com/stretchr/testify/assert"
)

// clearNormjsonEnv clears all NORMJSON_* env vars to isolate tests from the ambient environment.
func clearNormjsonEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NORMJSON_CACHE_ENABLED", "NORMJSON_CACHE_MAX_SIZE",
		"NORMJSON_CACHE_FILE_TTL", "NORMJSON_CACHE_CONTENT_TTL",
		"NORMJSON_CACHE_SWEEP_INTERVAL", "NORMJSON_MAX_DEPTH",
		"NORMJSON_MAX_INLINE_SIZE", "NORMJSON_MAX_INPUT_SIZE",
		"NORMJSON_DEFAULT_STEPS", "NORMJSON_EXACT_DEDUPE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearNormjsonEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 1000, c.MaxDepth)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, int64(100*1024*1024), c.MaxInputSize)
	assert.Equal(t, []normalizer.Step{normalizer.StepPruneEmpty, normalizer.StepDedupe}, c.DefaultSteps)
	assert.False(t, c.ExactDedupe)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearNormjsonEnv(t)
	t.Setenv("NORMJSON_CACHE_ENABLED", "false")
	t.Setenv("NORMJSON_CACHE_MAX_SIZE", "50")
	t.Setenv("NORMJSON_CACHE_FILE_TTL", "30m")
	t.Setenv("NORMJSON_CACHE_CONTENT_TTL", "10m")
	t.Setenv("NORMJSON_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("NORMJSON_MAX_DEPTH", "64")
	t.Setenv("NORMJSON_MAX_INLINE_SIZE", "5242880")
	t.Setenv("NORMJSON_MAX_INPUT_SIZE", "1048576")
	t.Setenv("NORMJSON_DEFAULT_STEPS", "prune-nulls,merge-similar")
	t.Setenv("NORMJSON_EXACT_DEDUPE", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 64, c.MaxDepth)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.Equal(t, int64(1048576), c.MaxInputSize)
	assert.Equal(t, []normalizer.Step{normalizer.StepPruneNulls, normalizer.StepMergeSimilar}, c.DefaultSteps)
	assert.True(t, c.ExactDedupe)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearNormjsonEnv(t)
	t.Setenv("NORMJSON_CACHE_MAX_SIZE", "banana")
	t.Setenv("NORMJSON_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("NORMJSON_CACHE_ENABLED", "maybe")
	t.Setenv("NORMJSON_MAX_DEPTH", "-5")
	t.Setenv("NORMJSON_MAX_INLINE_SIZE", "abc")
	t.Setenv("NORMJSON_DEFAULT_STEPS", "sort,dedupe")

	c := loadConfig()

	// Invalid values should fall back to defaults.
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 1000, c.MaxDepth)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, normalizer.DefaultSteps(), c.DefaultSteps)
}
