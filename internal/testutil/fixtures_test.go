package testutil

import (
	"os"
	"testing"

	"github.com/erraggy/normjson/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustParse(t *testing.T) {
	v := MustParse(t, ScenarioRecord)
	require.Equal(t, value.KindObject, v.Kind())
	assert.Equal(t, []string{"k1", "k2", "k3", "k4", "k5"}, v.Object().Keys())
}

func TestMustJSON(t *testing.T) {
	v := MustParse(t, `{"b": 1, "a": [true, null]}`)
	assert.Equal(t, `{"b":1,"a":[true,null]}`, MustJSON(t, v))
}

func TestFeedRecordsParse(t *testing.T) {
	v := MustParse(t, FeedRecords)
	require.Equal(t, value.KindArray, v.Kind())
	assert.Len(t, v.Items(), 3)
}

func TestWriteTempFile(t *testing.T) {
	path := WriteTempFile(t, "doc.json", ScenarioRecord)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ScenarioRecord, string(data))
}
