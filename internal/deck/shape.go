package deck

import (
	"fmt"
	"strings"

	"github.com/agentic-research/slidescope/api"
	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/tree"
)

// refDepth is the depth used when a relationship points back up the
// document: enough for identity and top-level properties.
const refDepth = 1

// Shape is an element of a slide or group shape tree.
type Shape interface {
	introspect.Object
	Base() *BaseShape
}

// shapeParent is a Slide or GroupShape.
type shapeParent interface {
	introspect.Object
	Shapes() []Shape
	AccessPath() (string, bool)
}

// textHolder is implemented by shapes that can carry text.
type textHolder interface {
	HasTextFrame() bool
	Text() string
}

// BaseShape holds what every shape has. It is embedded by each concrete
// shape; this points back to the embedding shape.
type BaseShape struct {
	ID          int
	Name        string
	Left        Length
	Top         Length
	Width       Length
	Height      Length
	Rotation    float64
	Placeholder *PlaceholderFormat

	kind   ShapeType
	this   Shape
	parent shapeParent
}

func newBase(this Shape, kind ShapeType, id int, name string) BaseShape {
	return BaseShape{ID: id, Name: name, kind: kind, this: this}
}

// Base returns the shared shape state.
func (s *BaseShape) Base() *BaseShape { return s }

// SetPosition places the shape.
func (s *BaseShape) SetPosition(left, top, width, height Length) {
	s.Left, s.Top, s.Width, s.Height = left, top, width, height
}

// ShapeType reports PLACEHOLDER for placeholders and the shape's own kind
// otherwise.
func (s *BaseShape) ShapeType() ShapeType {
	if s.Placeholder != nil {
		return ShapePlaceholder
	}
	return s.kind
}

func (s *BaseShape) IsPlaceholder() bool { return s.Placeholder != nil }

// Parent is the containing slide or group, nil for a detached shape.
func (s *BaseShape) Parent() introspect.Object {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

// AccessPath locates the shape from the presentation root.
func (s *BaseShape) AccessPath() (string, bool) {
	if s.parent == nil {
		return "", false
	}
	parentPath, ok := s.parent.AccessPath()
	if !ok {
		return "", false
	}
	for i, sh := range s.parent.Shapes() {
		if sh.Base() == s {
			return tree.Join(parentPath, "shapes", i), true
		}
	}
	return "", false
}

func (s *BaseShape) typeName() string {
	if s.this == nil {
		return "BaseShape"
	}
	return s.this.TypeName()
}

// ToDict serializes the concrete shape.
func (s *BaseShape) ToDict(opts ...introspect.Option) introspect.Dict {
	return introspect.ToDict(s.this, opts...)
}

func (s *BaseShape) IntrospectIdentity(f *introspect.Frame) introspect.Dict {
	id := f.BaseIdentity()
	id["shape_id"] = s.ID
	id["name"] = s.Name
	id["description"] = fmt.Sprintf("Represents a %s shape named '%s'.", f.TypeName(), s.Name)
	return id
}

// baseProperties are the properties every shape declares.
func (s *BaseShape) baseProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("shape_id", func() any { return s.ID }),
		introspect.Val("name", func() any { return s.Name }),
		introspect.Val("shape_type", func() any { return s.ShapeType() }),
		introspect.Val("left", func() any { return s.Left }),
		introspect.Val("top", func() any { return s.Top }),
		introspect.Val("width", func() any { return s.Width }),
		introspect.Val("height", func() any { return s.Height }),
		introspect.Val("rotation", func() any { return s.Rotation }),
		introspect.Val("is_placeholder", func() any { return s.IsPlaceholder() }),
		introspect.Prop("placeholder_format", func() (any, error) {
			if s.Placeholder == nil {
				return nil, introspect.ErrNotApplicable
			}
			return s.Placeholder, nil
		}),
		introspect.Val("has_text_frame", func() any {
			t, ok := s.this.(textHolder)
			return ok && t.HasTextFrame()
		}),
		introspect.PrivateField("_parent_type", func() any {
			if s.parent == nil {
				return nil
			}
			return s.parent.TypeName()
		}),
	}
}

func (s *BaseShape) IntrospectProperties() []introspect.Property { return s.baseProperties() }

func (s *BaseShape) IntrospectRelationships(f *introspect.Frame) introspect.Dict {
	rels := introspect.Dict{}
	if s.parent != nil {
		rels["parent"] = f.Related(s.parent, refDepth)
	}
	return rels
}

func (s *BaseShape) IntrospectContext(f *introspect.Frame) introspect.Dict {
	ops := []string{
		"access shape properties (position, size, rotation)",
		"modify shape name",
		"access shape type information",
	}
	if s.IsPlaceholder() {
		ops = append(ops, "access placeholder format details")
	}
	return llmContext(
		fmt.Sprintf("A %s shape named '%s' (id %d).", f.TypeName(), s.Name, s.ID),
		s.summary(),
		ops...,
	)
}

func (s *BaseShape) TreeIdentity() introspect.Dict {
	id := introspect.Dict{
		"shape_id":   s.ID,
		"name":       s.Name,
		"class_name": s.typeName(),
		"shape_type": s.ShapeType().String(),
	}
	if s.Placeholder != nil {
		id["placeholder_type"] = s.Placeholder.Type.String()
		id["placeholder_idx"] = s.Placeholder.Idx
	}
	return id
}

func (s *BaseShape) TreeGeometry() *api.Geometry {
	rot := "0°"
	if s.Rotation != 0 {
		rot = fmt.Sprintf("%.1f°", s.Rotation)
	}
	return &api.Geometry{
		Left:     s.Left.String(),
		Top:      s.Top.String(),
		Width:    s.Width.String(),
		Height:   s.Height.String(),
		Rotation: rot,
	}
}

// ContentSummary is the one-line description used by trees and contexts.
func (s *BaseShape) ContentSummary() string {
	parts := []string{s.ShapeType().String()}
	if s.Name != "" && !strings.HasPrefix(s.Name, s.typeName()) && !strings.HasPrefix(s.Name, "Shape") {
		parts = append(parts, "'"+s.Name+"'")
	}
	if s.Placeholder != nil {
		parts = append(parts, fmt.Sprintf("(%s placeholder)", s.Placeholder.Type))
	}
	if t, ok := s.this.(textHolder); ok && t.HasTextFrame() {
		if text := strings.TrimSpace(t.Text()); text != "" {
			parts = append(parts, fmt.Sprintf("Text: '%s'", truncate(text, 30)))
		} else {
			parts = append(parts, "(empty text)")
		}
	}
	if g, ok := s.this.(interface{ HasTable() bool }); ok && g.HasTable() {
		parts = append(parts, "(contains table)")
	}
	return strings.Join(parts, " ")
}

// summary prefers the concrete shape's ContentSummary.
func (s *BaseShape) summary() string {
	if sm, ok := s.this.(tree.Summarizer); ok {
		return sm.ContentSummary()
	}
	return s.ContentSummary()
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PlaceholderFormat describes a placeholder's role and index.
type PlaceholderFormat struct {
	Idx  int
	Type PlaceholderType
}

func (p *PlaceholderFormat) TypeName() string { return "PlaceholderFormat" }

func (p *PlaceholderFormat) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("idx", func() any { return p.Idx }),
		introspect.Val("type", func() any { return p.Type }),
	}
}

// AutoShape is a preset-geometry shape or text box.
type AutoShape struct {
	BaseShape
	AutoType    AutoShapeType
	Adjustments []float64

	fill *FillFormat
	line *LineFormat
	text *TextFrame
}

// NewAutoShape returns a preset-geometry shape.
func NewAutoShape(id int, name string, kind AutoShapeType) *AutoShape {
	s := &AutoShape{AutoType: kind}
	s.BaseShape = newBase(s, ShapeAuto, id, name)
	s.text = newTextFrame(s)
	return s
}

// NewTextBox returns a text box holding text.
func NewTextBox(id int, name, text string) *AutoShape {
	s := &AutoShape{}
	s.BaseShape = newBase(s, ShapeTextBox, id, name)
	s.text = newTextFrame(s)
	s.text.SetText(text)
	return s
}

// NewPlaceholder returns an auto shape acting as a placeholder.
func NewPlaceholder(id int, name string, typ PlaceholderType, idx int) *AutoShape {
	s := NewAutoShape(id, name, AutoRectangle)
	s.Placeholder = &PlaceholderFormat{Idx: idx, Type: typ}
	return s
}

func (s *AutoShape) TypeName() string { return "AutoShape" }

// Fill returns the shape fill, creating it on first use.
func (s *AutoShape) Fill() *FillFormat {
	if s.fill == nil {
		s.fill = &FillFormat{}
	}
	return s.fill
}

// Line returns the shape outline, creating it on first use.
func (s *AutoShape) Line() *LineFormat {
	if s.line == nil {
		s.line = &LineFormat{}
	}
	return s.line
}

func (s *AutoShape) TextFrame() *TextFrame { return s.text }
func (s *AutoShape) HasTextFrame() bool    { return s.text != nil }

func (s *AutoShape) Text() string {
	if s.text == nil {
		return ""
	}
	return s.text.Text()
}

func (s *AutoShape) IntrospectIdentity(f *introspect.Frame) introspect.Dict {
	id := s.BaseShape.IntrospectIdentity(f)
	if s.AutoType != 0 {
		id["auto_shape_type"] = s.AutoType.String()
	}
	return id
}

func (s *AutoShape) IntrospectProperties() []introspect.Property {
	return append(s.baseProperties(),
		introspect.Prop("auto_shape_type", func() (any, error) {
			if s.AutoType == 0 {
				return nil, introspect.ErrNotApplicable
			}
			return s.AutoType, nil
		}),
		introspect.Val("adjustments", func() any { return s.Adjustments }),
		introspect.Val("fill", func() any { return s.fill }),
		introspect.Val("line", func() any { return s.line }),
		introspect.Val("text_frame", func() any { return s.text }),
	)
}

func (s *AutoShape) IntrospectContext(f *introspect.Frame) introspect.Dict {
	ctx := s.BaseShape.IntrospectContext(f)
	ops := ctx["common_operations"].([]string)
	ctx["common_operations"] = append(ops,
		"set text (shape.TextFrame().SetText(...))",
		"change fill (shape.Fill().Solid().SetRGB(...))",
		"change outline (shape.Line().SetWidth(...))",
	)
	return ctx
}
