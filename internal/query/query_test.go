package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	data := map[string]any{
		"_object_type": "Slide",
		"properties": map[string]any{
			"shapes": []any{
				map[string]any{"_object_type": "AutoShape", "name": "Title 1"},
				map[string]any{"_object_type": "Picture", "name": "Logo"},
			},
		},
		"_llm_context": map[string]any{
			"common_operations": []string{"access shapes", "add shapes"},
		},
	}

	t.Run("select list of objects", func(t *testing.T) {
		matches, err := Select(data, "$.properties.shapes[*].name")
		require.NoError(t, err)
		assert.Equal(t, []any{"Title 1", "Logo"}, matches)
	})

	t.Run("typed slices are reachable", func(t *testing.T) {
		matches, err := Select(data, "$._llm_context.common_operations[1]")
		require.NoError(t, err)
		assert.Equal(t, []any{"add shapes"}, matches)
	})

	t.Run("select single object", func(t *testing.T) {
		v, ok, err := First(data, "$.properties.shapes[1]")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"_object_type": "Picture", "name": "Logo"}, v)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok, err := First(data, "$.relationships.parent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := Select(data, "$.properties[")
		assert.Error(t, err)
	})
}
