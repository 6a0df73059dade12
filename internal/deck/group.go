package deck

import (
	"fmt"
	"strings"

	"github.com/agentic-research/slidescope/api"
	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/tree"
)

// GroupShape holds other shapes.
type GroupShape struct {
	BaseShape
	shapes []Shape
}

// NewGroupShape returns an empty group.
func NewGroupShape(id int, name string) *GroupShape {
	g := &GroupShape{}
	g.BaseShape = newBase(g, ShapeGroup, id, name)
	return g
}

func (g *GroupShape) TypeName() string { return "GroupShape" }

// AddShape appends sh to the group and returns it.
func (g *GroupShape) AddShape(sh Shape) Shape {
	sh.Base().parent = g
	g.shapes = append(g.shapes, sh)
	return sh
}

// Shapes returns the member shapes in z-order.
func (g *GroupShape) Shapes() []Shape { return g.shapes }

func (g *GroupShape) IntrospectProperties() []introspect.Property {
	return append(g.baseProperties(),
		introspect.Val("shapes", func() any { return g.shapes }),
	)
}

func (g *GroupShape) IntrospectContext(f *introspect.Frame) introspect.Dict {
	ctx := g.BaseShape.IntrospectContext(f)
	ops := ctx["common_operations"].([]string)
	ctx["common_operations"] = append(ops, "access member shapes (group.Shapes())", "add a member shape (group.AddShape(...))")
	return ctx
}

func (g *GroupShape) ContentSummary() string {
	parts := []string{"Group"}
	if g.Name != "" && !strings.HasPrefix(g.Name, "Group") {
		parts = append(parts, "'"+g.Name+"'")
	}
	switch n := len(g.shapes); n {
	case 0:
		parts = append(parts, "(empty)")
	case 1:
		parts = append(parts, "(1 shape)")
	default:
		parts = append(parts, fmt.Sprintf("(%d shapes)", n))
	}
	return strings.Join(parts, " ")
}

func (g *GroupShape) TreeChildren() ([]tree.Child, error) {
	kids := make([]tree.Child, len(g.shapes))
	for i, sh := range g.shapes {
		kids[i] = tree.Child{Accessor: "shapes", Index: i, Object: sh}
	}
	return kids, nil
}

// GetTree returns the group's wide-angle tree. The root path is the
// group's path from the presentation when it can be resolved, otherwise
// group_shape_<id>.
func (g *GroupShape) GetTree(maxDepth int) *api.TreeNode {
	p, ok := g.AccessPath()
	if !ok {
		p = fmt.Sprintf("group_shape_%d", g.ID)
	}
	return tree.Build(g, p, maxDepth)
}
