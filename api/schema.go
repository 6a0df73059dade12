package api

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Result keys shared by every introspection dict.
const (
	KeyObjectType    = "_object_type"
	KeyIdentity      = "_identity"
	KeyProperties    = "properties"
	KeyRelationships = "relationships"
	KeyContext       = "_llm_context"
	KeyTruncated     = "_truncated"
	KeyReference     = "_reference"
	KeyError         = "_error"
	KeySummary       = "_collection_summary"
)

// Identity keys.
const (
	KeyClassName     = "class_name"
	KeyMemoryAddress = "memory_address"
	KeyObjectID      = "object_id"
	KeyDescription   = "description"
)

// Context keys.
const (
	KeyContextSummary   = "summary"
	KeyCommonOperations = "common_operations"
)

// TreeNode is one entry of a wide-angle tree.
type TreeNode struct {
	// ObjectType is the runtime type name.
	ObjectType string `json:"_object_type" yaml:"_object_type"`
	// Identity mirrors the introspection identity block.
	Identity map[string]any `json:"_identity" yaml:"_identity"`
	// AccessPath re-locates the object from the root. Empty only for the root.
	AccessPath string `json:"access_path" yaml:"access_path"`
	// Geometry is set for spatial objects only.
	Geometry *Geometry `json:"geometry" yaml:"geometry"`
	// ContentSummary is a short human-readable description.
	ContentSummary string `json:"content_summary" yaml:"content_summary"`
	// Children is nil when the node was not traversed or cannot have
	// children, and non-nil (possibly empty) when it was traversed.
	Children []*TreeNode `json:"-" yaml:"-"`
}

// Geometry is a human-readable position block.
type Geometry struct {
	Left     string `json:"left" yaml:"left"`
	Top      string `json:"top" yaml:"top"`
	Width    string `json:"width" yaml:"width"`
	Height   string `json:"height" yaml:"height"`
	Rotation string `json:"rotation" yaml:"rotation"`
}

// Traversed reports whether children were produced for this node.
func (n *TreeNode) Traversed() bool {
	return n.Children != nil
}

// Map converts the node to the generic dict form, omitting children when
// they were not traversed.
func (n *TreeNode) Map() map[string]any {
	m := map[string]any{
		KeyObjectType:     n.ObjectType,
		KeyIdentity:       n.Identity,
		"access_path":     n.AccessPath,
		"content_summary": n.ContentSummary,
	}
	if n.Geometry != nil {
		m["geometry"] = map[string]any{
			"left":     n.Geometry.Left,
			"top":      n.Geometry.Top,
			"width":    n.Geometry.Width,
			"height":   n.Geometry.Height,
			"rotation": n.Geometry.Rotation,
		}
	} else {
		m["geometry"] = nil
	}
	if n.Children != nil {
		children := make([]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.Map()
		}
		m["children"] = children
	}
	return m
}

// MarshalJSON keeps an empty, traversed child list as [] and drops the key
// for untraversed nodes.
func (n *TreeNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Map())
}

// MarshalYAML follows the same rule as MarshalJSON.
func (n *TreeNode) MarshalYAML() (any, error) {
	return n.Map(), nil
}

var (
	_ json.Marshaler = (*TreeNode)(nil)
	_ yaml.Marshaler = (*TreeNode)(nil)
)
