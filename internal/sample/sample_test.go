package sample

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/slidescope/api"
	"github.com/agentic-research/slidescope/internal/deck"
	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/query"
	"github.com/agentic-research/slidescope/internal/render"
	"github.com/agentic-research/slidescope/internal/tree"
)

func TestDeckTree(t *testing.T) {
	prs := Deck()
	root := prs.GetTree(tree.DefaultMaxDepth)

	assert.Equal(t, "Presentation: 'Introspection Tour' (3 slides, 1 master)", root.ContentSummary)
	require.Len(t, root.Children, 3)

	content := root.Children[1]
	assert.Equal(t, "slides[1]", content.AccessPath)
	assert.Equal(t, "Slide 2: 'Shapes and Formatting' (4 shapes)", content.ContentSummary)
	require.Len(t, content.Children, 4)
	assert.Equal(t, "Group 'Diagram' (3 shapes)", content.Children[3].ContentSummary)
	assert.Nil(t, content.Children[3].Children)

	paths, err := query.Select(root.Map(), "$.children[1].children[*].access_path")
	require.NoError(t, err)
	assert.Equal(t, []any{"slides[1].shapes[0]", "slides[1].shapes[1]", "slides[1].shapes[2]", "slides[1].shapes[3]"}, paths)
}

func TestNestedGroupPaths(t *testing.T) {
	prs := Deck()
	outer := prs.Slides()[1].Shapes()[3].(*deck.GroupShape)

	node := outer.GetTree(3)
	assert.Equal(t, "slides[1].shapes[3]", node.AccessPath)
	require.Len(t, node.Children, 3)
	inner := node.Children[0]
	assert.Equal(t, "Group (1 shape)", inner.ContentSummary)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, "slides[1].shapes[3].shapes[0].shapes[0]", inner.Children[0].AccessPath)
	assert.Equal(t, "15.0°", inner.Children[0].Geometry.Rotation)

	obj, err := prs.Locate(inner.Children[0].AccessPath)
	require.NoError(t, err)
	assert.Equal(t, "Star", obj.(*deck.AutoShape).Name)
}

func TestEveryTreeNodeLocates(t *testing.T) {
	prs := Deck()
	var walk func(n *api.TreeNode)
	count := 0
	walk = func(n *api.TreeNode) {
		count++
		obj, err := prs.Locate(n.AccessPath)
		require.NoError(t, err, n.AccessPath)
		assert.Equal(t, n.ObjectType, introspect.TypeNameOf(obj), n.AccessPath)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(prs.GetTree(10))
	// 1 presentation, 3 slides, 2+4+2 top-level shapes, 3+1 group members.
	assert.Equal(t, 16, count)
}

func TestSparseDict(t *testing.T) {
	prs := Deck()
	box := prs.Slides()[1].Shapes()[1].(*deck.AutoShape)

	d := box.ToDict(introspect.WithFields([]string{
		"properties.fill.properties.fore_color.properties.rgb.hex",
		"properties.name",
	}...))
	assert.Equal(t, introspect.Dict{
		api.KeyObjectType: "AutoShape",
		api.KeyProperties: introspect.Dict{
			"name": "Callout",
			"fill": introspect.Dict{
				api.KeyProperties: introspect.Dict{
					"fore_color": introspect.Dict{
						api.KeyProperties: introspect.Dict{
							"rgb": introspect.Dict{"hex": "1F4E79"},
						},
					},
				},
			},
		},
	}, d)
}

func TestDeckDictIsStable(t *testing.T) {
	prs := Deck()
	first := prs.ToDict(introspect.WithMaxDepth(4))
	second := prs.ToDict(introspect.WithMaxDepth(4))
	assert.Equal(t, first, second)

	var a, b bytes.Buffer
	require.NoError(t, render.Write(&a, first, render.JSON))
	require.NoError(t, render.Write(&b, second, render.JSON))
	assert.Equal(t, a.String(), b.String())
	assert.True(t, json.Valid(a.Bytes()))
}

func TestDeckTreeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Write(&buf, Deck().GetTree(1), render.YAML))

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	kids, ok := back["children"].([]any)
	require.True(t, ok)
	require.Len(t, kids, 3)
	last := kids[2].(map[string]any)
	assert.Equal(t, "slides[2]", last["access_path"])
	assert.Equal(t, "Slide 3: 'Results' (2 shapes)", last["content_summary"])
	assert.NotContains(t, last, "children")
}
