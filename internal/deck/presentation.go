package deck

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/agentic-research/slidescope/api"
	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/tree"
)

// ErrNotFound is returned by Locate when a path names no object.
var ErrNotFound = tree.ErrNotFound

const (
	defaultSlideWidth  = Length(9144000) // 10 in
	defaultSlideHeight = Length(6858000) // 7.5 in
	firstSlideID       = 256
)

// Presentation is the root of a deck.
type Presentation struct {
	// Source is where the deck was loaded from, empty for a new deck.
	Source         string
	HasNotesMaster bool

	slideWidth  Length
	slideHeight Length
	core        *CoreProperties
	masters     []*SlideMaster
	slides      []*Slide
	nextSlideID int
}

// New returns an empty 10x7.5 in deck with one master and the standard
// layouts.
func New() *Presentation {
	p := &Presentation{
		slideWidth:  defaultSlideWidth,
		slideHeight: defaultSlideHeight,
		core:        &CoreProperties{Revision: 1},
		nextSlideID: firstSlideID,
	}
	m := p.AddSlideMaster("Office Theme")
	m.AddLayout("Title Slide", PlaceholderCenterTitle, PlaceholderSubtitle)
	m.AddLayout("Title and Content", PlaceholderTitle, PlaceholderObject)
	m.AddLayout("Title Only", PlaceholderTitle)
	m.AddLayout("Blank")
	return p
}

// AddSlideMaster appends an empty master.
func (p *Presentation) AddSlideMaster(name string) *SlideMaster {
	m := &SlideMaster{Name: name, prs: p}
	p.masters = append(p.masters, m)
	return m
}

// AddSlide appends a slide based on layout and clones the layout's
// placeholders onto it.
func (p *Presentation) AddSlide(layout *SlideLayout) *Slide {
	s := &Slide{ID: p.nextSlideID, layout: layout, prs: p, FollowMasterBackground: true}
	p.nextSlideID++
	p.slides = append(p.slides, s)
	if layout == nil {
		return s
	}
	for i, typ := range layout.PlaceholderTypes {
		id := i + 2
		s.AddShape(NewPlaceholder(id, fmt.Sprintf("%s %d", placeholderBaseName(typ), id-1), typ, placeholderIdx(typ, i)))
	}
	return s
}

func placeholderBaseName(t PlaceholderType) string {
	switch t {
	case PlaceholderTitle, PlaceholderCenterTitle:
		return "Title"
	case PlaceholderSubtitle:
		return "Subtitle"
	case PlaceholderObject, PlaceholderBody:
		return "Content Placeholder"
	case PlaceholderPicture:
		return "Picture Placeholder"
	default:
		return "Placeholder"
	}
}

// placeholderIdx gives titles idx 0 and everything else its position.
func placeholderIdx(t PlaceholderType, pos int) int {
	if t == PlaceholderTitle || t == PlaceholderCenterTitle {
		return 0
	}
	return pos
}

func (p *Presentation) Slides() []*Slide                { return p.slides }
func (p *Presentation) SlideMasters() []*SlideMaster    { return p.masters }
func (p *Presentation) CoreProperties() *CoreProperties { return p.core }
func (p *Presentation) SlideWidth() Length              { return p.slideWidth }
func (p *Presentation) SlideHeight() Length             { return p.slideHeight }

// SetSlideSize changes the dimensions of every slide.
func (p *Presentation) SetSlideSize(width, height Length) {
	p.slideWidth, p.slideHeight = width, height
}

// SlideMaster returns the first master.
func (p *Presentation) SlideMaster() (*SlideMaster, bool) {
	if len(p.masters) == 0 {
		return nil, false
	}
	return p.masters[0], true
}

// Layout finds a layout by name across all masters.
func (p *Presentation) Layout(name string) (*SlideLayout, bool) {
	for _, m := range p.masters {
		if l, ok := m.Layout(name); ok {
			return l, true
		}
	}
	return nil, false
}

func (p *Presentation) title() string {
	if p.core != nil && p.core.Title != "" {
		return p.core.Title
	}
	return "Untitled Presentation"
}

// ToDict serializes the presentation.
func (p *Presentation) ToDict(opts ...introspect.Option) introspect.Dict {
	return introspect.ToDict(p, opts...)
}

// GetTree returns the wide-angle tree rooted at the presentation, whose
// access path is empty.
func (p *Presentation) GetTree(maxDepth int) *api.TreeNode {
	return tree.Build(p, "", maxDepth)
}

// Locate returns the object a tree node's access path names.
func (p *Presentation) Locate(path string) (introspect.Object, error) {
	return tree.Resolve(p, path)
}

func (p *Presentation) TypeName() string { return "Presentation" }

func (p *Presentation) IntrospectIdentity(f *introspect.Frame) introspect.Dict {
	src := "New presentation (default template)"
	if p.Source != "" {
		src = "Loaded from: " + p.Source
	}
	id := f.BaseIdentity()
	id["description"] = fmt.Sprintf("Root Presentation object. %s.", src)
	return id
}

func (p *Presentation) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("core_properties", func() any { return p.core }),
		introspect.Val("slide_width", func() any { return p.slideWidth }),
		introspect.Val("slide_height", func() any { return p.slideHeight }),
		introspect.Val("slides", func() any { return p.slides }),
		introspect.Val("slide_masters", func() any { return p.masters }),
		introspect.Val("has_notes_master", func() any { return p.HasNotesMaster }),
		introspect.PrivateField("_next_slide_id", func() any { return p.nextSlideID }),
	}
}

func (p *Presentation) IntrospectRelationships(f *introspect.Frame) introspect.Dict {
	return introspect.Dict{
		"main_document_part":   introspect.Dict{"partname": "/ppt/presentation.xml"},
		"core_properties_part": introspect.Dict{"partname": "/docProps/core.xml"},
	}
}

func (p *Presentation) IntrospectContext(f *introspect.Frame) introspect.Dict {
	desc := []string{
		fmt.Sprintf("Presentation: '%s'. Contains %d slide(s) and %d slide master(s)", p.title(), len(p.slides), len(p.masters)),
		fmt.Sprintf("Slide dimensions: %.2f\"W x %.2f\"H", p.slideWidth.Inches(), p.slideHeight.Inches()),
	}
	if p.HasNotesMaster {
		desc = append(desc, "Includes a notes master")
	}
	text := strings.Join(desc, ". ") + "."
	return llmContext(text, text,
		"access slides (prs.Slides())",
		"add a slide (prs.AddSlide(layout))",
		"access slide masters (prs.SlideMasters(), prs.SlideMaster())",
		"modify core properties (prs.CoreProperties().Title = ...)",
		"change slide dimensions (prs.SetSlideSize(...))",
		"locate an object from a tree node (prs.Locate(access_path))",
	)
}

func (p *Presentation) TreeIdentity() introspect.Dict {
	id := introspect.Dict{
		"class_name":   "Presentation",
		"slide_count":  len(p.slides),
		"master_count": len(p.masters),
		"slide_width":  p.slideWidth.String(),
		"slide_height": p.slideHeight.String(),
	}
	if p.core != nil && p.core.Title != "" {
		id["title"] = p.core.Title
	}
	return id
}

func (p *Presentation) ContentSummary() string {
	parts := []string{fmt.Sprintf("Presentation: '%s'", p.title())}
	var counts []string
	if n := len(p.slides); n > 0 {
		counts = append(counts, plural(n, "slide"))
	}
	if n := len(p.masters); n > 0 {
		counts = append(counts, plural(n, "master"))
	}
	if len(counts) > 0 {
		parts = append(parts, "("+strings.Join(counts, ", ")+")")
	}
	w, h := p.slideWidth.Inches(), p.slideHeight.Inches()
	if math.Abs(w-10) >= 0.1 || math.Abs(h-7.5) >= 0.1 {
		parts = append(parts, fmt.Sprintf("[%.1f\"×%.1f\"]", w, h))
	}
	return strings.Join(parts, " ")
}

func (p *Presentation) TreeChildren() ([]tree.Child, error) {
	kids := make([]tree.Child, len(p.slides))
	for i, s := range p.slides {
		kids[i] = tree.Child{Accessor: "slides", Index: i, Object: s}
	}
	return kids, nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// CoreProperties is the document metadata.
type CoreProperties struct {
	Title          string
	Author         string
	Subject        string
	Keywords       string
	Category       string
	Comments       string
	LastModifiedBy string
	Revision       int
	Created        time.Time
	Modified       time.Time
}

func (c *CoreProperties) TypeName() string { return "CoreProperties" }

func (c *CoreProperties) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("title", func() any { return c.Title }),
		introspect.Val("author", func() any { return c.Author }),
		introspect.Val("subject", func() any { return c.Subject }),
		introspect.Val("keywords", func() any { return c.Keywords }),
		introspect.Val("category", func() any { return c.Category }),
		introspect.Val("comments", func() any { return c.Comments }),
		introspect.Val("revision", func() any { return c.Revision }),
		introspect.Val("created", func() any { return c.Created }),
		introspect.Val("modified", func() any { return c.Modified }),
		introspect.Val("last_modified_by", func() any { return c.LastModifiedBy }),
	}
}
