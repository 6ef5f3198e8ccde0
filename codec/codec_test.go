package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "yaml", "yml"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.NotNil(t, c)
	}

	_, ok := ByName("go-json")
	assert.False(t, ok)
}

func TestForPath(t *testing.T) {
	c, ok := ForPath("results/out.JSON")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ForPath("batch.yml")
	require.True(t, ok)
	assert.Equal(t, "yaml", c.Name())

	_, ok = ForPath("batch.nnsb")
	assert.False(t, ok)
}

func TestCodecs_Document(t *testing.T) {
	doc := ResultDocument{Results: []MatchRecord{
		{Index: 0, MostSimilar: 3, Similarity: 0.99376106},
		{Index: 1, MostSimilar: -1, Similarity: -1},
	}}

	for _, c := range []Codec{JSON{}, YAML{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(doc)
			require.NoError(t, err)

			var got ResultDocument
			require.NoError(t, c.Unmarshal(data, &got))
			assert.Equal(t, doc, got)
		})
	}
}

func TestYAML_FieldNames(t *testing.T) {
	var doc BatchDocument
	require.NoError(t, YAML{}.Unmarshal([]byte("dim: 2\nvectors:\n  - [1, 0]\n  - [0.5, 2]\n"), &doc))
	assert.Equal(t, BatchDocument{Dim: 2, Vectors: [][]float32{{1, 0}, {0.5, 2}}}, doc)
}

func TestMustMarshal(t *testing.T) {
	assert.JSONEq(t, `{"dim":1,"vectors":[[1]]}`, string(MustMarshal(nil, BatchDocument{Dim: 1, Vectors: [][]float32{{1}}})))
	assert.Panics(t, func() { MustMarshal(JSON{}, func() {}) })
}
