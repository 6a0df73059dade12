package tree

import (
	"errors"
	"fmt"
	"log"

	"github.com/agentic-research/slidescope/api"
	"github.com/agentic-research/slidescope/internal/introspect"
)

// DefaultMaxDepth is the depth used by GetTree entry points.
const DefaultMaxDepth = 2

// ErrNotFound is returned when an access path does not resolve.
var ErrNotFound = errors.New("no object at access path")

// Child is one entry produced by a container.
type Child struct {
	Accessor string
	Index    int
	Object   introspect.Object
}

// Container objects have tree children. Returning an error alongside a
// partial list keeps the partial list.
type Container interface {
	TreeChildren() ([]Child, error)
}

// IdentityHook overrides the node identity block.
type IdentityHook interface {
	TreeIdentity() introspect.Dict
}

// GeometryHook supplies a position block for spatial objects.
type GeometryHook interface {
	TreeGeometry() *api.Geometry
}

// Summarizer supplies the content summary.
type Summarizer interface {
	ContentSummary() string
}

// Build produces the tree rooted at obj.
func Build(obj introspect.Object, accessPath string, maxDepth int) *api.TreeNode {
	return BuildAt(obj, accessPath, maxDepth, 0)
}

// BuildAt is the generic node driver. Children are produced only while
// currentDepth < maxDepth, and each child is one level deeper.
func BuildAt(obj introspect.Object, accessPath string, maxDepth, currentDepth int) *api.TreeNode {
	typ := introspect.TypeNameOf(obj)
	n := &api.TreeNode{
		ObjectType:     typ,
		Identity:       identity(obj),
		AccessPath:     accessPath,
		Geometry:       geometry(obj),
		ContentSummary: summary(obj, typ),
	}

	c, ok := obj.(Container)
	if !ok || currentDepth >= maxDepth {
		return n
	}
	kids, err := children(c)
	if err != nil {
		log.Printf("tree: children of %s at %q: %v (kept %d)", typ, accessPath, err, len(kids))
	}
	n.Children = make([]*api.TreeNode, 0, len(kids))
	for _, k := range kids {
		if introspect.IsNil(k.Object) {
			continue
		}
		path := Join(accessPath, k.Accessor, k.Index)
		n.Children = append(n.Children, buildChild(k.Object, path, maxDepth, currentDepth+1))
	}
	return n
}

// buildChild falls back to a bare node if the child cannot describe itself.
func buildChild(obj introspect.Object, path string, maxDepth, depth int) (n *api.TreeNode) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("tree: node at %q: %v", path, r)
			typ := introspect.TypeNameOf(obj)
			n = &api.TreeNode{
				ObjectType:     typ,
				Identity:       introspect.BaseIdentity(obj),
				AccessPath:     path,
				ContentSummary: typ + " object",
			}
		}
	}()
	return BuildAt(obj, path, maxDepth, depth)
}

func children(c Container) (kids []Child, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enumerating children: %v", r)
		}
	}()
	return c.TreeChildren()
}

func identity(obj introspect.Object) (id introspect.Dict) {
	h, ok := obj.(IdentityHook)
	if !ok {
		return introspect.BaseIdentity(obj)
	}
	defer func() {
		if r := recover(); r != nil {
			id = introspect.BaseIdentity(obj)
		}
	}()
	if id = h.TreeIdentity(); id == nil {
		id = introspect.BaseIdentity(obj)
	}
	return id
}

func geometry(obj introspect.Object) (g *api.Geometry) {
	h, ok := obj.(GeometryHook)
	if !ok {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			g = nil
		}
	}()
	return h.TreeGeometry()
}

func summary(obj introspect.Object, typ string) (s string) {
	fallback := typ + " object"
	h, ok := obj.(Summarizer)
	if !ok {
		return fallback
	}
	defer func() {
		if r := recover(); r != nil {
			s = fallback
		}
	}()
	if s = h.ContentSummary(); s == "" {
		s = fallback
	}
	return s
}

// Resolve walks path from root through container children.
func Resolve(root introspect.Object, path string) (introspect.Object, error) {
	steps, err := ParseAccessPath(path)
	if err != nil {
		return nil, err
	}
	cur := root
	walked := ""
	for _, step := range steps {
		c, ok := cur.(Container)
		if !ok {
			return nil, fmt.Errorf("%w: %s at %q has no children", ErrNotFound, introspect.TypeNameOf(cur), walked)
		}
		kids, _ := children(c)
		var next introspect.Object
		for _, k := range kids {
			if k.Accessor == step.Accessor && k.Index == step.Index {
				next = k.Object
				break
			}
		}
		if introspect.IsNil(next) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, Join(walked, step.Accessor, step.Index))
		}
		cur = next
		walked = Join(walked, step.Accessor, step.Index)
	}
	return cur, nil
}
