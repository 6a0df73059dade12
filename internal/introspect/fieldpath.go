package introspect

import (
	"sort"
	"strings"
)

// Wildcard selects everything below the node it appears in.
const Wildcard = "*"

// FieldTree is the compiled form of a list of dotted field paths.
// Include marks a node whose whole subtree is requested.
type FieldTree struct {
	Include  bool
	Children map[string]*FieldTree
}

// ParseFieldPaths compiles dotted paths into a tree. Paths sharing a prefix
// merge; a shorter path absorbs any longer one under it, in either order.
// Empty paths and empty segments are ignored.
func ParseFieldPaths(paths []string) *FieldTree {
	root := &FieldTree{}
	for _, p := range paths {
		var segs []string
		for _, s := range strings.Split(p, ".") {
			if s = strings.TrimSpace(s); s != "" {
				segs = append(segs, s)
			}
		}
		if len(segs) == 0 {
			continue
		}
		node := root
		for i, seg := range segs {
			if node.Include {
				break
			}
			if node.Children == nil {
				node.Children = make(map[string]*FieldTree)
			}
			child, ok := node.Children[seg]
			if !ok {
				child = &FieldTree{}
				node.Children[seg] = child
			}
			if i == len(segs)-1 {
				child.Include = true
				child.Children = nil
			}
			node = child
		}
	}
	return root
}

// IncludesAll reports whether the node selects its whole subtree.
func (t *FieldTree) IncludesAll() bool {
	if t == nil {
		return false
	}
	if t.Include {
		return true
	}
	_, ok := t.Children[Wildcard]
	return ok
}

// Select returns the subtree for key. A node that includes everything
// selects every key.
func (t *FieldTree) Select(key string) (*FieldTree, bool) {
	if t == nil {
		return nil, false
	}
	if t.IncludesAll() {
		return &FieldTree{Include: true}, true
	}
	child, ok := t.Children[key]
	return child, ok
}

// Paths flattens the tree back into sorted dotted paths.
func (t *FieldTree) Paths() []string {
	var out []string
	var walk func(prefix string, n *FieldTree)
	walk = func(prefix string, n *FieldTree) {
		if n.Include {
			out = append(out, prefix)
			return
		}
		for k, c := range n.Children {
			p := k
			if prefix != "" {
				p = prefix + "." + k
			}
			walk(p, c)
		}
	}
	if t != nil {
		walk("", t)
	}
	sort.Strings(out)
	return out
}

// FilterByTree prunes an already formatted value to the keys t selects.
// It never adds keys and never reformats values. Lists under a partial
// path are filtered element by element; scalars under a partial path
// are dropped.
func FilterByTree(v any, t *FieldTree) any {
	if t == nil {
		return nil
	}
	if t.IncludesAll() {
		return v
	}
	switch val := v.(type) {
	case Dict:
		out := Dict{}
		for key, sub := range t.Children {
			item, ok := val[key]
			if !ok {
				continue
			}
			if sub.Include {
				out[key] = item
				continue
			}
			if filtered, keep := filterChild(item, sub); keep {
				out[key] = filtered
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			if d, ok := item.(Dict); ok {
				out[i] = FilterByTree(d, t)
			} else {
				out[i] = item
			}
		}
		return out
	}
	return nil
}

func filterChild(item any, sub *FieldTree) (any, bool) {
	switch item.(type) {
	case Dict, []any:
		return FilterByTree(item, sub), true
	}
	return nil, false
}
