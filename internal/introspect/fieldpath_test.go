package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldPaths(t *testing.T) {
	t.Run("nested with wildcard", func(t *testing.T) {
		tree := ParseFieldPaths([]string{"_identity.shape_id", "properties.fill.*"})
		want := &FieldTree{Children: map[string]*FieldTree{
			"_identity": {Children: map[string]*FieldTree{
				"shape_id": {Include: true},
			}},
			"properties": {Children: map[string]*FieldTree{
				"fill": {Children: map[string]*FieldTree{
					"*": {Include: true},
				}},
			}},
		}}
		assert.Equal(t, want, tree)
	})

	t.Run("shared prefixes merge", func(t *testing.T) {
		tree := ParseFieldPaths([]string{"properties.fill.type", "properties.line.width"})
		assert.Equal(t, []string{"properties.fill.type", "properties.line.width"}, tree.Paths())
	})

	t.Run("broader path wins in either order", func(t *testing.T) {
		a := ParseFieldPaths([]string{"properties.fill.type", "properties.fill"})
		b := ParseFieldPaths([]string{"properties.fill", "properties.fill.type"})
		assert.Equal(t, []string{"properties.fill"}, a.Paths())
		assert.Equal(t, a, b)
	})

	t.Run("blank input", func(t *testing.T) {
		tree := ParseFieldPaths([]string{"", "..", " "})
		assert.Empty(t, tree.Children)
		assert.Empty(t, tree.Paths())
	})
}

func TestFilterByTree(t *testing.T) {
	full := Dict{
		"type": "solid",
		"fore_color": Dict{
			"type": "rgb",
			"rgb":  Dict{"hex": "FF0000"},
		},
		"stops": []any{
			Dict{"position": 0.0, "color": "red"},
			Dict{"position": 1.0, "color": "blue"},
			"opaque",
		},
	}

	tests := []struct {
		name  string
		paths []string
		want  any
	}{
		{"include all", []string{"*"}, full},
		{"single key", []string{"type"}, Dict{"type": "solid"}},
		{"nested key", []string{"fore_color.rgb.hex"}, Dict{
			"fore_color": Dict{"rgb": Dict{"hex": "FF0000"}},
		}},
		{"wildcard below key", []string{"fore_color.*"}, Dict{"fore_color": full["fore_color"]}},
		{"missing key", []string{"nope"}, Dict{}},
		{"partial path through scalar", []string{"type.inner"}, Dict{}},
		{"list element-wise", []string{"stops.position"}, Dict{
			"stops": []any{
				Dict{"position": 0.0},
				Dict{"position": 1.0},
				"opaque",
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterByTree(full, ParseFieldPaths(tt.paths)))
		})
	}

	t.Run("include sentinel returns input", func(t *testing.T) {
		assert.Equal(t, "x", FilterByTree("x", &FieldTree{Include: true}))
	})

	t.Run("never invents keys", func(t *testing.T) {
		got := FilterByTree(Dict{"a": 1}, ParseFieldPaths([]string{"a", "b", "c.d"}))
		require.IsType(t, Dict{}, got)
		assert.Equal(t, Dict{"a": 1}, got)
	})
}

func TestSelect(t *testing.T) {
	tree := ParseFieldPaths([]string{"properties.name"})
	_, ok := tree.Select("_identity")
	assert.False(t, ok)
	sub, ok := tree.Select("properties")
	require.True(t, ok)
	assert.False(t, sub.IncludesAll())

	all := ParseFieldPaths([]string{"*"})
	sub, ok = all.Select("relationships")
	require.True(t, ok)
	assert.True(t, sub.IncludesAll())
}
