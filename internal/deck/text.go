package deck

import (
	"fmt"
	"strings"

	"github.com/agentic-research/slidescope/internal/introspect"
)

// TextFrame is the text body of a shape or table cell.
type TextFrame struct {
	MarginLeft   Length
	MarginRight  Length
	MarginTop    Length
	MarginBottom Length
	WordWrap     *bool
	AutoSize     AutoSize
	Anchor       Anchor

	paragraphs []*Paragraph
	parent     Shape
}

// newTextFrame returns a frame with one empty paragraph. parent may be nil
// for frames owned by table cells.
func newTextFrame(parent Shape) *TextFrame {
	t := &TextFrame{
		MarginLeft:   Inches(0.1),
		MarginRight:  Inches(0.1),
		MarginTop:    Inches(0.05),
		MarginBottom: Inches(0.05),
		Anchor:       AnchorTop,
		parent:       parent,
	}
	t.paragraphs = []*Paragraph{{}}
	return t
}

// SetText replaces all text. Each line becomes a paragraph.
func (t *TextFrame) SetText(s string) {
	lines := strings.Split(s, "\n")
	t.paragraphs = make([]*Paragraph, len(lines))
	for i, line := range lines {
		p := &Paragraph{}
		if line != "" {
			p.AddRun(line)
		}
		t.paragraphs[i] = p
	}
}

// Text joins the paragraphs with newlines.
func (t *TextFrame) Text() string {
	lines := make([]string, len(t.paragraphs))
	for i, p := range t.paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// AddParagraph appends an empty paragraph.
func (t *TextFrame) AddParagraph() *Paragraph {
	p := &Paragraph{}
	t.paragraphs = append(t.paragraphs, p)
	return p
}

func (t *TextFrame) Paragraphs() []*Paragraph { return t.paragraphs }

func (t *TextFrame) TypeName() string { return "TextFrame" }

func (t *TextFrame) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("text", func() any { return t.Text() }),
		introspect.Val("paragraphs", func() any { return t.paragraphs }),
		introspect.Val("margin_left", func() any { return t.MarginLeft }),
		introspect.Val("margin_right", func() any { return t.MarginRight }),
		introspect.Val("margin_top", func() any { return t.MarginTop }),
		introspect.Val("margin_bottom", func() any { return t.MarginBottom }),
		introspect.Val("word_wrap", func() any { return t.WordWrap }),
		introspect.Val("auto_size", func() any { return t.AutoSize }),
		introspect.Val("vertical_anchor", func() any { return t.Anchor }),
	}
}

func (t *TextFrame) IntrospectRelationships(f *introspect.Frame) introspect.Dict {
	rels := introspect.Dict{}
	if t.parent != nil {
		rels["parent_shape"] = f.Related(t.parent, refDepth)
	}
	return rels
}

func (t *TextFrame) IntrospectContext(f *introspect.Frame) introspect.Dict {
	text := strings.TrimSpace(t.Text())
	summary := "Empty text frame."
	if text != "" {
		n := len(t.paragraphs)
		noun := "paragraphs"
		if n == 1 {
			noun = "paragraph"
		}
		summary = fmt.Sprintf("Text frame with %d %s: '%s'.", n, noun, truncate(strings.ReplaceAll(text, "\n", " / "), 50))
	}
	return llmContext("A text frame holding paragraphs of runs.", summary,
		"replace all text (text_frame.SetText(...))",
		"add a paragraph (text_frame.AddParagraph())",
		"change vertical anchor (text_frame.Anchor = ...)",
	)
}

// Paragraph is a run sequence sharing alignment and indent level.
type Paragraph struct {
	Alignment Alignment
	Level     int

	runs []*Run
	font *Font
}

// AddRun appends a run of text.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.runs = append(p.runs, r)
	return r
}

func (p *Paragraph) Runs() []*Run { return p.runs }

// Font is the paragraph-level default font, created on first use.
func (p *Paragraph) Font() *Font {
	if p.font == nil {
		p.font = &Font{}
	}
	return p.font
}

func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func (p *Paragraph) TypeName() string { return "Paragraph" }

func (p *Paragraph) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("text", func() any { return p.Text() }),
		introspect.Prop("alignment", func() (any, error) {
			if p.Alignment == 0 {
				return nil, introspect.ErrNotApplicable
			}
			return p.Alignment, nil
		}),
		introspect.Val("level", func() any { return p.Level }),
		introspect.Val("runs", func() any { return p.runs }),
		introspect.Val("font", func() any { return p.font }),
	}
}

// Run is a span of text with uniform formatting.
type Run struct {
	Text      string
	Hyperlink string

	font *Font
}

// Font is the run font, created on first use.
func (r *Run) Font() *Font {
	if r.font == nil {
		r.font = &Font{}
	}
	return r.font
}

func (r *Run) TypeName() string { return "Run" }

func (r *Run) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("text", func() any { return r.Text }),
		introspect.Val("font", func() any { return r.font }),
		introspect.Prop("hyperlink", func() (any, error) {
			if r.Hyperlink == "" {
				return nil, introspect.ErrNotApplicable
			}
			return introspect.Dict{"address": r.Hyperlink}, nil
		}),
	}
}

func (r *Run) IntrospectContext(f *introspect.Frame) introspect.Dict {
	summary := fmt.Sprintf("Run: '%s'", truncate(r.Text, 40))
	if r.font != nil {
		summary += " in " + r.font.summary()
	}
	return llmContext("A run of text with uniform character formatting.", summary+".",
		"change text (run.Text = ...)",
		"change font (run.Font())",
	)
}

// Font is character formatting. Nil fields inherit.
type Font struct {
	Name      string
	Size      *Length
	Bold      *bool
	Italic    *bool
	Underline *bool

	color *ColorFormat
}

// Color returns the font color, creating it on first use.
func (f *Font) Color() *ColorFormat {
	if f.color == nil {
		f.color = &ColorFormat{}
	}
	return f.color
}

// SetSize sets the font size in points.
func (f *Font) SetSize(pt float64) {
	l := Pt(pt)
	f.Size = &l
}

func (f *Font) TypeName() string { return "Font" }

func (f *Font) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("name", func() any {
			if f.Name == "" {
				return nil
			}
			return f.Name
		}),
		introspect.Val("size", func() any { return f.Size }),
		introspect.Val("bold", func() any { return f.Bold }),
		introspect.Val("italic", func() any { return f.Italic }),
		introspect.Val("underline", func() any { return f.Underline }),
		introspect.Val("color", func() any { return f.color }),
	}
}

func (f *Font) IntrospectContext(*introspect.Frame) introspect.Dict {
	return llmContext("Character formatting for text.", f.summary()+".",
		"set typeface (font.Name = ...)",
		"set size (font.SetSize(pt))",
		"set bold or italic (font.Bold = ...)",
	)
}

func (f *Font) summary() string {
	var parts []string
	if f.Name != "" {
		parts = append(parts, f.Name)
	}
	if f.Size != nil {
		parts = append(parts, fmt.Sprintf("%.0fpt", f.Size.Pt()))
	}
	for _, flag := range []struct {
		v    *bool
		name string
	}{{f.Bold, "bold"}, {f.Italic, "italic"}, {f.Underline, "underline"}} {
		if flag.v != nil && *flag.v {
			parts = append(parts, flag.name)
		}
	}
	if f.color != nil {
		if c, err := f.color.RGB(); err == nil {
			parts = append(parts, "#"+c.String())
		}
	}
	if len(parts) == 0 {
		return "inherited font"
	}
	return strings.Join(parts, " ")
}
