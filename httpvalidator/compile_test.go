package httpvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValue(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []string{"title"},
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"pages": map[string]any{"type": "integer"},
		},
	}

	t.Run("conforming", func(t *testing.T) {
		details, err := validateValue("t", schema, map[string]any{"title": "Dune", "pages": int64(412)})
		require.NoError(t, err)
		assert.Nil(t, details)
	})

	t.Run("details point at the failing keyword", func(t *testing.T) {
		details, err := validateValue("t", schema, map[string]any{"pages": "many"})
		require.NoError(t, err)
		require.Len(t, details, 2)

		byKeyword := map[string]string{}
		for _, d := range details {
			byKeyword[d.KeywordPath] = d.InstancePath
			assert.NotEmpty(t, d.Message)
		}
		assert.Equal(t, "", byKeyword["/required"])
		assert.Equal(t, "/pages", byKeyword["/properties/pages/type"])
	})

	t.Run("invalid schema", func(t *testing.T) {
		_, err := validateValue("t", map[string]any{"type": 12}, "x")
		assert.Error(t, err)
	})

	t.Run("unencodable instance", func(t *testing.T) {
		_, err := validateValue("t", map[string]any{}, make(chan int))
		assert.Error(t, err)
	})
}

func TestJSONPointer(t *testing.T) {
	assert.Equal(t, "", jsonPointer(nil))
	assert.Equal(t, "/a/0", jsonPointer([]string{"a", "0"}))
	assert.Equal(t, "/a~1b/c~0d", jsonPointer([]string{"a/b", "c~d"}))
}
