package deck

import (
	"fmt"
	"strings"

	"github.com/agentic-research/slidescope/api"
	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/tree"
)

// Slide is one slide of a presentation.
type Slide struct {
	ID                     int
	Name                   string
	HasNotesSlide          bool
	FollowMasterBackground bool

	layout *SlideLayout
	prs    *Presentation
	shapes []Shape
}

// AddShape appends sh to the slide's shape tree and returns it.
func (s *Slide) AddShape(sh Shape) Shape {
	sh.Base().parent = s
	s.shapes = append(s.shapes, sh)
	return sh
}

// Shapes returns the top-level shapes in z-order.
func (s *Slide) Shapes() []Shape { return s.shapes }

// Layout is the layout the slide inherits from.
func (s *Slide) Layout() *SlideLayout { return s.layout }

// NextShapeID is one past the largest shape id on the slide, groups
// included.
func (s *Slide) NextShapeID() int {
	top := 1
	var walk func([]Shape)
	walk = func(shapes []Shape) {
		for _, sh := range shapes {
			if id := sh.Base().ID; id > top {
				top = id
			}
			if g, ok := sh.(*GroupShape); ok {
				walk(g.shapes)
			}
		}
	}
	walk(s.shapes)
	return top + 1
}

// Placeholders returns the top-level placeholder shapes in z-order.
func (s *Slide) Placeholders() []Shape {
	var out []Shape
	for _, sh := range s.shapes {
		if sh.Base().IsPlaceholder() {
			out = append(out, sh)
		}
	}
	return out
}

// Title returns the title placeholder, if any.
func (s *Slide) Title() (*AutoShape, bool) {
	for _, sh := range s.shapes {
		as, ok := sh.(*AutoShape)
		if !ok || as.Placeholder == nil {
			continue
		}
		if t := as.Placeholder.Type; t == PlaceholderTitle || t == PlaceholderCenterTitle {
			return as, true
		}
	}
	return nil, false
}

func (s *Slide) titleText() string {
	t, ok := s.Title()
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.Text())
}

// index is the slide's position in its presentation.
func (s *Slide) index() (int, bool) {
	if s.prs == nil {
		return 0, false
	}
	for i, sl := range s.prs.slides {
		if sl == s {
			return i, true
		}
	}
	return 0, false
}

// AccessPath locates the slide from the presentation root.
func (s *Slide) AccessPath() (string, bool) {
	i, ok := s.index()
	if !ok {
		return "", false
	}
	return tree.Join("", "slides", i), true
}

// GetTree returns the slide's wide-angle tree, rooted at slides[i] or at
// slide_<id> for a detached slide.
func (s *Slide) GetTree(maxDepth int) *api.TreeNode {
	p, ok := s.AccessPath()
	if !ok {
		p = fmt.Sprintf("slide_%d", s.ID)
	}
	return tree.Build(s, p, maxDepth)
}

func (s *Slide) ToDict(opts ...introspect.Option) introspect.Dict {
	return introspect.ToDict(s, opts...)
}

func (s *Slide) TypeName() string { return "Slide" }

func (s *Slide) IntrospectIdentity(f *introspect.Frame) introspect.Dict {
	id := f.BaseIdentity()
	id["description"] = fmt.Sprintf("Represents slide ID %d.", s.ID)
	id["slide_id"] = s.ID
	if s.Name != "" {
		id["name"] = s.Name
	}
	return id
}

// IntrospectPropertyMap lists placeholders keyed by their idx, so the
// collection is built here rather than declared.
func (s *Slide) IntrospectPropertyMap(f *introspect.Frame) introspect.Dict {
	props := introspect.Dict{
		"has_notes_slide":          s.HasNotesSlide,
		"follow_master_background": s.FollowMasterBackground,
		"shapes":                   f.Format("shapes", s.shapes),
	}
	phs := s.Placeholders()
	if f.Options().ExpandCollections && f.Depth() > 0 {
		list := make([]any, 0, len(phs))
		for i, ph := range phs {
			list = append(list, introspect.Dict{
				"placeholder_idx":  ph.Base().Placeholder.Idx,
				"placeholder_data": f.Format(fmt.Sprintf("placeholders[%d]", i), ph),
			})
		}
		props["placeholders"] = list
	} else {
		props["placeholders"] = f.Summarize(phs)
	}
	if f.Options().IncludePrivate {
		if i, ok := s.index(); ok {
			props["_slide_index"] = i
		}
	}
	return props
}

func (s *Slide) IntrospectRelationships(f *introspect.Frame) introspect.Dict {
	rels := introspect.Dict{}
	if s.layout != nil {
		rels["slide_layout"] = f.Related(s.layout, refDepth)
	}
	if s.prs != nil {
		rels["parent_presentation"] = f.Related(s.prs, refDepth)
	}
	return rels
}

func (s *Slide) IntrospectContext(f *introspect.Frame) introspect.Dict {
	ident := fmt.Sprintf("Slide ID %d", s.ID)
	if s.Name != "" {
		ident += fmt.Sprintf(" named '%s'", s.Name)
	}
	if title := s.titleText(); title != "" {
		ident += fmt.Sprintf(" with title \"%s\"", truncate(strings.ReplaceAll(title, "\n", " "), 53))
	}
	layout := "a standard layout"
	if s.layout != nil && s.layout.Name != "" {
		layout = fmt.Sprintf("layout '%s'", s.layout.Name)
	}
	desc := []string{
		fmt.Sprintf("%s, based on %s.", ident, layout),
		fmt.Sprintf("Contains %d shape(s) including %d placeholder(s).", len(s.shapes), len(s.Placeholders())),
	}
	if s.HasNotesSlide {
		desc = append(desc, "Has speaker notes.")
	}
	text := strings.Join(desc, " ")
	return llmContext(text, text,
		"access shapes (slide.Shapes())",
		"access placeholders (slide.Placeholders(), slide.Title())",
		"add shapes (slide.AddShape(...))",
		"access slide layout (slide.Layout())",
		"get slide properties (slide.ID, slide.Name, slide.FollowMasterBackground)",
	)
}

func (s *Slide) TreeIdentity() introspect.Dict {
	id := introspect.Dict{
		"class_name": "Slide",
		"slide_id":   s.ID,
	}
	if s.Name != "" {
		id["name"] = s.Name
	}
	if s.layout != nil {
		id["layout_name"] = s.layout.Name
	}
	return id
}

func (s *Slide) ContentSummary() string {
	parts := []string{"Slide"}
	if i, ok := s.index(); ok {
		parts = append(parts, fmt.Sprintf("%d:", i+1))
	} else {
		parts = append(parts, fmt.Sprintf("%d:", s.ID))
	}
	if title := s.titleText(); title != "" {
		parts = append(parts, "'"+truncate(title, 40)+"'")
	} else {
		parts = append(parts, "(untitled)")
	}
	if n := len(s.shapes); n == 1 {
		parts = append(parts, "(1 shape)")
	} else {
		parts = append(parts, fmt.Sprintf("(%d shapes)", n))
	}
	return strings.Join(parts, " ")
}

func (s *Slide) TreeChildren() ([]tree.Child, error) {
	kids := make([]tree.Child, len(s.shapes))
	for i, sh := range s.shapes {
		kids[i] = tree.Child{Accessor: "shapes", Index: i, Object: sh}
	}
	return kids, nil
}

// SlideLayout is a template slides are created from.
type SlideLayout struct {
	Name string
	// PlaceholderTypes are cloned onto slides created from the layout.
	PlaceholderTypes []PlaceholderType

	master *SlideMaster
}

// Master is the slide master that owns the layout.
func (l *SlideLayout) Master() *SlideMaster { return l.master }

// UsedBySlides returns the slides based on this layout.
func (l *SlideLayout) UsedBySlides() []*Slide {
	if l.master == nil || l.master.prs == nil {
		return nil
	}
	var out []*Slide
	for _, s := range l.master.prs.slides {
		if s.layout == l {
			out = append(out, s)
		}
	}
	return out
}

func (l *SlideLayout) TypeName() string { return "SlideLayout" }

func (l *SlideLayout) IntrospectIdentity(f *introspect.Frame) introspect.Dict {
	id := f.BaseIdentity()
	id["name"] = l.Name
	return id
}

func (l *SlideLayout) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("name", func() any { return l.Name }),
		introspect.Val("placeholders", func() any { return l.PlaceholderTypes }),
	}
}

// maxUsedBy caps how many slides are expanded under used_by_slides.
const maxUsedBy = 5

func (l *SlideLayout) IntrospectRelationships(f *introspect.Frame) introspect.Dict {
	rels := introspect.Dict{}
	if l.master != nil {
		rels["slide_master"] = f.Related(l.master, refDepth)
	}
	used := l.UsedBySlides()
	if f.Depth() > 0 && f.Options().ExpandCollections && len(used) <= maxUsedBy {
		list := make([]any, len(used))
		for i, s := range used {
			list[i] = f.Related(s, refDepth)
		}
		rels["used_by_slides"] = list
	} else {
		rels["used_by_slides_summary"] = fmt.Sprintf("Used by %d slide(s)", len(used))
	}
	return rels
}

func (l *SlideLayout) IntrospectContext(f *introspect.Frame) introspect.Dict {
	name := l.Name
	if name == "" {
		name = "Unnamed Layout"
	}
	master := "Unknown Master"
	if l.master != nil {
		master = "a slide master"
		if l.master.Name != "" {
			master = l.master.Name
		}
	}
	desc := []string{
		fmt.Sprintf("Slide Layout '%s', based on slide master '%s'", name, master),
		fmt.Sprintf("Contains %d placeholders", len(l.PlaceholderTypes)),
	}
	switch n := len(l.UsedBySlides()); n {
	case 0:
		desc = append(desc, "Not currently used by any slides")
	case 1:
		desc = append(desc, "Used by 1 slide")
	default:
		desc = append(desc, fmt.Sprintf("Used by %d slides", n))
	}
	text := strings.Join(desc, ". ") + "."
	return llmContext(text, text,
		"access parent slide master (layout.Master())",
		"check which slides use this layout (layout.UsedBySlides())",
		"create a slide from this layout (prs.AddSlide(layout))",
	)
}

// SlideMaster owns a set of layouts.
type SlideMaster struct {
	Name string

	layouts []*SlideLayout
	prs     *Presentation
}

// AddLayout appends a layout to the master.
func (m *SlideMaster) AddLayout(name string, placeholders ...PlaceholderType) *SlideLayout {
	l := &SlideLayout{Name: name, PlaceholderTypes: placeholders, master: m}
	m.layouts = append(m.layouts, l)
	return l
}

func (m *SlideMaster) Layouts() []*SlideLayout { return m.layouts }

// Layout returns the layout called name.
func (m *SlideMaster) Layout(name string) (*SlideLayout, bool) {
	for _, l := range m.layouts {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

func (m *SlideMaster) TypeName() string { return "SlideMaster" }

func (m *SlideMaster) IntrospectIdentity(f *introspect.Frame) introspect.Dict {
	id := f.BaseIdentity()
	id["name"] = m.Name
	return id
}

func (m *SlideMaster) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("name", func() any { return m.Name }),
		introspect.Val("slide_layouts", func() any { return m.layouts }),
	}
}

func (m *SlideMaster) IntrospectContext(f *introspect.Frame) introspect.Dict {
	name := m.Name
	if name == "" {
		name = "Unnamed Master"
	}
	text := fmt.Sprintf("Slide Master '%s' with %d layout(s).", name, len(m.layouts))
	return llmContext(text, text,
		"access layouts (master.Layouts())",
		"find a layout by name (master.Layout(name))",
	)
}
