package normalizer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"testing"

	"github.com/erraggy/normjson/codec"
	"github.com/erraggy/normjson/equivalence"
	"github.com/erraggy/normjson/internal/testutil"
	"github.com/erraggy/normjson/normerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := ParseSteps(" Prune-Empty, dedupe,,merge-similar ")
	require.NoError(t, err)
	assert.Equal(t, []Step{StepPruneEmpty, StepDedupe, StepMergeSimilar}, steps)

	_, err = ParseSteps("prune-empty,sort")
	require.Error(t, err)
	assert.ErrorIs(t, err, normerrors.ErrConfig)
	assert.Contains(t, err.Error(), "valid steps are prune-nulls, prune-empty, dedupe, merge-similar")

	_, err = ParseSteps(" , ")
	assert.ErrorIs(t, err, normerrors.ErrConfig)
}

func TestStepValid(t *testing.T) {
	for _, s := range ValidSteps() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Step("sort").Valid())
	assert.Equal(t, []Step{StepPruneEmpty, StepDedupe}, DefaultSteps())
}

func TestNormalize_DefaultSteps(t *testing.T) {
	v := testutil.MustParse(t, testutil.ScenarioRecord)
	result, err := New().Normalize(v)
	require.NoError(t, err)

	assert.Equal(t, `{"k2":"v","k5":[1,2,3]}`, testutil.MustJSON(t, result.Value))
	require.Len(t, result.Applied, 2)
	assert.Equal(t, StepResult{Step: StepPruneEmpty, Removed: 3}, withoutDuration(result.Applied[0]))
	assert.Equal(t, StepResult{Step: StepDedupe, Removed: 1}, withoutDuration(result.Applied[1]))
	assert.Equal(t, 4, result.Removed())
	assert.True(t, result.Changed())
	assert.False(t, result.RootRemovable)
	assert.Equal(t, 10, result.Before.Nodes)
	assert.Equal(t, 6, result.After.Nodes)
}

func withoutDuration(s StepResult) StepResult {
	s.Duration = 0
	return s
}

func TestNormalize_StepsRunInOrder(t *testing.T) {
	doc := `[{"k1":"x","k2":null},{"k1":"x","k2":"y"}]`

	// merging first pairs the null with "y"; pruning first drops the key
	merged := testutil.MustParse(t, doc)
	n := &Normalizer{Steps: []Step{StepMergeSimilar, StepPruneNulls}}
	_, err := n.Normalize(merged)
	require.NoError(t, err)
	assert.Equal(t, `[{"k1":"x","k2":[null,"y"]}]`, testutil.MustJSON(t, merged))

	pruned := testutil.MustParse(t, doc)
	n.Steps = []Step{StepPruneNulls, StepMergeSimilar}
	_, err = n.Normalize(pruned)
	require.NoError(t, err)
	var got []string
	for _, item := range pruned.Items() {
		got = append(got, item.String())
	}
	assert.ElementsMatch(t, []string{`{"k1":"x"}`, `{"k1":"x","k2":"y"}`}, got)
}

func TestNormalize_ExactRelation(t *testing.T) {
	v := testutil.MustParse(t, `["C2", "c2"]`)
	n := &Normalizer{Steps: []Step{StepDedupe}, Relation: equivalence.Exact}
	result, err := n.Normalize(v)
	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Equal(t, 2, v.Len())
}

func TestNormalize_RootRemovable(t *testing.T) {
	v := testutil.MustParse(t, `{"a": null, "b": []}`)
	result, err := New().Normalize(v)
	require.NoError(t, err)
	assert.True(t, result.RootRemovable)
	assert.Equal(t, `{}`, testutil.MustJSON(t, result.Value))
}

func TestNormalize_Errors(t *testing.T) {
	n := &Normalizer{Steps: []Step{"sort"}}
	_, err := n.Normalize(testutil.MustParse(t, `{}`))
	assert.ErrorIs(t, err, normerrors.ErrConfig)

	_, err = New().Normalize(nil)
	assert.Error(t, err)

	_, err = New().NormalizeParsed(nil)
	assert.Error(t, err)
}

func TestNormalize_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := codec.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	n := New()
	n.Logger = logger
	_, err := n.Normalize(testutil.MustParse(t, testutil.ScenarioRecord))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "step=prune-empty")
	assert.Contains(t, buf.String(), "step=dedupe")
	assert.Contains(t, buf.String(), "normalized document")
}

func TestNormalizeWithOptions(t *testing.T) {
	result, err := NormalizeWithOptions(
		WithBytes([]byte(testutil.FeedRecords)),
		WithSteps(StepPruneNulls, StepMergeSimilar),
		WithSourceName("feed"),
	)
	require.NoError(t, err)
	assert.Equal(t, "feed", result.SourcePath)
	assert.Equal(t, codec.SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, 2, result.Value.Len())
	require.Len(t, result.Applied, 2)
	assert.Equal(t, StepMergeSimilar, result.Applied[1].Step)
	assert.Equal(t, 1, result.Applied[1].Removed)
}

func TestNormalizeWithOptions_FilePath(t *testing.T) {
	path := testutil.WriteTempFile(t, "record.yaml", "a: ~\nb: [x, X]\n")
	result, err := NormalizeWithOptions(WithFilePath(path))
	require.NoError(t, err)
	assert.Equal(t, path, result.SourcePath)
	assert.Equal(t, codec.SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, `{"b":["x"]}`, testutil.MustJSON(t, result.Value))
}

func TestNormalizeWithOptions_Value(t *testing.T) {
	v := testutil.MustParse(t, `["A", "a"]`)
	result, err := NormalizeWithOptions(WithValue(v), WithExactDedupe(true))
	require.NoError(t, err)
	assert.Same(t, v, result.Value)
	assert.Equal(t, 2, v.Len())
}

func TestNormalizeWithOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no input", nil},
		{"two inputs", []Option{WithBytes([]byte("{}")), WithValue(testutil.MustParse(t, "{}"))}},
		{"empty path", []Option{WithFilePath("")}},
		{"nil value", []Option{WithValue(nil)}},
		{"no steps", []Option{WithBytes([]byte("{}")), WithSteps()}},
		{"unknown step", []Option{WithBytes([]byte("{}")), WithSteps("sort")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeWithOptions(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, normerrors.ErrConfig)
		})
	}
}

func TestNormalizeWithOptions_ParseFailure(t *testing.T) {
	_, err := NormalizeWithOptions(WithBytes([]byte(`[[[1]]]`)), WithMaxDepth(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, normerrors.ErrResourceLimit)

	_, err = NormalizeWithOptions(WithBytes([]byte(`{"a": `)))
	assert.ErrorIs(t, err, normerrors.ErrParse)
}

func TestNormalizeAll(t *testing.T) {
	var inputs []Input
	for i := range 20 {
		inputs = append(inputs, Input{
			Path: fmt.Sprintf("doc-%02d.json", i),
			Data: fmt.Appendf(nil, `{"id": %d, "tags": ["a", "A", "b"], "gone": null}`, i),
		})
	}
	inputs = append(inputs, Input{Path: testutil.WriteTempFile(t, "extra.yaml", "id: 99\ntags: []\n")})

	results, err := New().NormalizeAll(context.Background(), inputs, 4)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, result := range results[:20] {
		require.NotNil(t, result)
		assert.Equal(t, inputs[i].Path, result.SourcePath)
		assert.Equal(t, fmt.Sprintf(`{"id":%d,"tags":["a","b"]}`, i), testutil.MustJSON(t, result.Value))
	}
	assert.Equal(t, `{"id":99}`, testutil.MustJSON(t, results[20].Value))
	assert.Equal(t, codec.SourceFormatYAML, results[20].SourceFormat)
}

func TestNormalizeAll_Error(t *testing.T) {
	inputs := []Input{
		{Path: "good.json", Data: []byte(`{"a": 1}`)},
		{Path: "bad.json", Data: []byte(`{"a": `)},
	}
	_, err := New().NormalizeAll(context.Background(), inputs, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, normerrors.ErrParse)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestNormalizeAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New().NormalizeAll(ctx, []Input{{Data: []byte(`{}`)}, {Data: []byte(`[]`)}}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, slices.Equal(results, []*Result{nil, nil}))
}

func TestNormalizeAll_MaxInputSize(t *testing.T) {
	n := New()
	n.MaxInputSize = 8
	_, err := n.NormalizeAll(context.Background(), []Input{{Data: []byte(`{"a": null, "b": 1}`)}, {Data: []byte(`{}`)}}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, normerrors.ErrResourceLimit)
}
