package deck

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/slidescope/api"
	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/tree"
)

// buildDeck returns a two-slide deck: a title slide and a content slide
// holding a textbox, a group with two members and a table.
func buildDeck(t *testing.T) *Presentation {
	t.Helper()
	prs := New()
	prs.CoreProperties().Title = "Quarterly Review"

	titleLayout, ok := prs.Layout("Title Slide")
	require.True(t, ok)
	s1 := prs.AddSlide(titleLayout)
	title, ok := s1.Title()
	require.True(t, ok)
	title.TextFrame().SetText("Q3 Results")

	blank, ok := prs.Layout("Blank")
	require.True(t, ok)
	s2 := prs.AddSlide(blank)
	tb := NewTextBox(s2.NextShapeID(), "Notes", "Revenue up")
	tb.SetPosition(Inches(1), Inches(1), Inches(4), Inches(1))
	s2.AddShape(tb)

	g := NewGroupShape(s2.NextShapeID(), "Group 3")
	s2.AddShape(g)
	g.AddShape(NewAutoShape(10, "Box", AutoRectangle))
	g.AddShape(NewAutoShape(11, "Circle", AutoOval))

	s2.AddShape(NewTableFrame(12, "Table 4", 2, 3))
	return prs
}

func props(t *testing.T, d introspect.Dict) introspect.Dict {
	t.Helper()
	p, ok := d[api.KeyProperties].(introspect.Dict)
	require.True(t, ok, "properties block missing: %v", d)
	return p
}

func llm(t *testing.T, d introspect.Dict) introspect.Dict {
	t.Helper()
	c, ok := d[api.KeyContext].(introspect.Dict)
	require.True(t, ok, "context block missing: %v", d)
	return c
}

func TestLength(t *testing.T) {
	assert.Equal(t, int64(914400), Inches(1).EMU())
	assert.Equal(t, int64(152400), Pt(12).EMU())
	assert.Equal(t, int64(360000), Cm(1).EMU())
	assert.InDelta(t, 2.54, Inches(1).Cm(), 1e-9)
	assert.Equal(t, "1.00 in", Inches(1).String())
	assert.Equal(t, "0.50 in", Emu(457200).String())
}

func TestRGB(t *testing.T) {
	c, err := ParseRGB("#1f2e3d")
	require.NoError(t, err)
	assert.Equal(t, RGB(0x1F, 0x2E, 0x3D), c)
	assert.Equal(t, "1F2E3D", c.String())

	_, err = ParseRGB("12345")
	assert.Error(t, err)
	_, err = ParseRGB("zzzzzz")
	assert.Error(t, err)
}

func TestLeafFormatters(t *testing.T) {
	tb := NewTextBox(2, "Box", "hi")
	tb.SetPosition(Inches(1), Inches(2), Inches(3), Inches(4))
	p := props(t, introspect.ToDict(tb))

	left, ok := p["left"].(introspect.Dict)
	require.True(t, ok)
	assert.Equal(t, "Length", left[api.KeyObjectType])
	assert.Equal(t, int64(914400), left["emu"])
	assert.InDelta(t, 72.0, left["pt"], 1e-9)

	st, ok := p["shape_type"].(introspect.Dict)
	require.True(t, ok)
	assert.Equal(t, "MSO_SHAPE_TYPE", st[api.KeyObjectType])
	assert.Equal(t, "TEXT_BOX", st["name"])
	assert.Equal(t, 17, st["value"])
}

func TestEnumInfo(t *testing.T) {
	info := AutoOval.EnumInfo()
	assert.Equal(t, "MSO_AUTO_SHAPE_TYPE", info.Type)
	assert.Equal(t, "OVAL", info.Name)
	assert.Equal(t, "ellipse", info.XMLValue)

	out, err := introspect.FormatEnum(ThemeAccent1)
	require.NoError(t, err)
	assert.Equal(t, "accent1", out.(introspect.Dict)["xml_value"])

	assert.Equal(t, "UNKNOWN_999", ShapeType(999).String())
	_, err = introspect.FormatEnum(AutoSizeNone)
	require.NoError(t, err)
}

func TestColorFormat(t *testing.T) {
	c := &ColorFormat{}
	assert.ErrorIs(t, c.SetBrightness(0.5), ErrNoColor)
	d := introspect.ToDict(c)
	assert.Equal(t, "No explicit color defined (color is inherited or not set).", llm(t, d)["summary"])
	p := props(t, d)
	assert.Nil(t, p["type"])
	assert.NotContains(t, p, "rgb")
	assert.NotContains(t, p, "theme_color")

	c.SetRGB(RGB(255, 0, 0))
	d = introspect.ToDict(c)
	assert.Equal(t, "Solid RGB color: #FF0000 (R:255, G:0, B:0).", llm(t, d)["summary"])
	rgb, ok := props(t, d)["rgb"].(introspect.Dict)
	require.True(t, ok)
	assert.Equal(t, "FF0000", rgb["hex"])
	assert.NotContains(t, props(t, d), "theme_color")

	c.SetTheme(ThemeAccent1)
	require.NoError(t, c.SetBrightness(0.25))
	d = introspect.ToDict(c)
	assert.Equal(t, "Theme color: ACCENT_1, 25% lighter.", llm(t, d)["summary"])
	assert.NotContains(t, props(t, d), "rgb")

	assert.Error(t, c.SetBrightness(2))

	ops, ok := llm(t, d)["common_operations"].([]string)
	require.True(t, ok)
	require.Len(t, ops, 3)
	for _, op := range ops {
		assert.Regexp(t, `^[a-z][a-zA-Z ]+ \(color\..+\)$`, op)
	}
}

func TestFillFormat(t *testing.T) {
	f := &FillFormat{}
	assert.Equal(t, "No explicit fill defined (fill is inherited).", llm(t, introspect.ToDict(f))["summary"])

	f.Solid().SetRGB(RGB(0, 128, 0))
	d := introspect.ToDict(f)
	assert.Equal(t, "Solid fill with Solid RGB color: #008000 (R:0, G:128, B:0).", llm(t, d)["summary"])
	p := props(t, d)
	assert.Contains(t, p, "fore_color")
	assert.NotContains(t, p, "pattern")
	assert.NotContains(t, p, "gradient_stops")

	angle := 90.0
	f.Gradient(&angle, NewGradientStop(0, RGB(0, 0, 0)), NewGradientStop(1, RGB(255, 255, 255)))
	d = introspect.ToDict(f)
	assert.Equal(t, "2-stop gradient at 90 degrees.", llm(t, d)["summary"])
	stops, ok := props(t, d)["gradient_stops"].([]any)
	require.True(t, ok)
	assert.Len(t, stops, 2)
	assert.NotContains(t, props(t, d), "fore_color")

	f.Picture("rId7")
	d = introspect.ToDict(f)
	assert.Equal(t, introspect.Dict{"rId": "rId7"}, d[api.KeyRelationships].(introspect.Dict)["image_part"])
	assert.Equal(t, "rId7", props(t, d)["image_rId"])
}

func TestLineFormat(t *testing.T) {
	l := &LineFormat{}
	assert.Equal(t, "Line formatting inherited from the theme.", l.summary())
	// Serializing must not create the lazy fill.
	_ = introspect.ToDict(l)
	assert.Nil(t, l.fill)

	l.Color().SetRGB(RGB(0, 0, 255))
	l.SetWidth(Pt(1.5))
	assert.Equal(t, "Solid line, 1.50pt, with Solid RGB color: #0000FF (R:0, G:0, B:255).", l.summary())

	l.Fill().Background()
	assert.Equal(t, "No line (transparent or zero width).", l.summary())
}

func TestShapeSummaryAndGeometry(t *testing.T) {
	tb := NewTextBox(5, "Callout", "A very long line of text that keeps going")
	tb.Rotation = 45
	tb.SetPosition(Inches(1), Inches(0.5), Inches(2), Inches(1))

	assert.Equal(t, "TEXT_BOX 'Callout' Text: 'A very long line of text th...'", tb.ContentSummary())
	g := tb.TreeGeometry()
	assert.Equal(t, &api.Geometry{Left: "1.00 in", Top: "0.50 in", Width: "2.00 in", Height: "1.00 in", Rotation: "45.0°"}, g)

	empty := NewAutoShape(6, "Shape 6", AutoOval)
	assert.Equal(t, "AUTO_SHAPE (empty text)", empty.ContentSummary())
	assert.Equal(t, "0°", empty.TreeGeometry().Rotation)

	ph := NewPlaceholder(7, "Title 1", PlaceholderTitle, 0)
	ph.TextFrame().SetText("Hello")
	assert.Equal(t, "PLACEHOLDER 'Title 1' (TITLE placeholder) Text: 'Hello'", ph.ContentSummary())
	assert.Equal(t, ShapePlaceholder, ph.ShapeType())
}

func TestShapeToDict(t *testing.T) {
	prs := buildDeck(t)
	tb := prs.Slides()[1].Shapes()[0].(*AutoShape)
	d := tb.ToDict()

	assert.Equal(t, "AutoShape", d[api.KeyObjectType])
	id := d[api.KeyIdentity].(introspect.Dict)
	assert.Equal(t, 2, id["shape_id"])
	assert.Equal(t, "Notes", id["name"])
	assert.NotContains(t, id, "auto_shape_type")

	p := props(t, d)
	assert.Equal(t, true, p["has_text_frame"])
	assert.Equal(t, false, p["is_placeholder"])
	assert.NotContains(t, p, "placeholder_format")
	assert.NotContains(t, p, "auto_shape_type")
	assert.NotContains(t, p, "_parent_type")
	assert.Nil(t, p["fill"])

	tf, ok := p["text_frame"].(introspect.Dict)
	require.True(t, ok)
	assert.Equal(t, "Revenue up", props(t, tf)["text"])

	parent := d[api.KeyRelationships].(introspect.Dict)["parent"].(introspect.Dict)
	assert.Equal(t, "Slide", parent[api.KeyObjectType])
	assert.NotContains(t, parent, api.KeyRelationships)

	priv := props(t, tb.ToDict(introspect.WithPrivate()))
	assert.Equal(t, "Slide", priv["_parent_type"])
}

func TestTextFrame(t *testing.T) {
	tf := newTextFrame(nil)
	assert.Equal(t, "", tf.Text())
	tf.SetText("one\ntwo")
	require.Len(t, tf.Paragraphs(), 2)
	assert.Equal(t, "one\ntwo", tf.Text())

	p := tf.AddParagraph()
	r := p.AddRun("three")
	bold := true
	r.Font().Bold = &bold
	r.Font().SetSize(18)
	r.Font().Color().SetRGB(RGB(0x11, 0x22, 0x33))
	assert.Equal(t, "one\ntwo\nthree", tf.Text())
	assert.Equal(t, "18pt bold #112233", r.Font().summary())
	assert.Equal(t, "inherited font", (&Font{}).summary())

	d := introspect.ToDict(tf)
	assert.Equal(t, "Text frame with 3 paragraphs: 'one / two / three'.", llm(t, d)["summary"])
	assert.Empty(t, d[api.KeyRelationships])
}

func TestPicture(t *testing.T) {
	img := &Image{Filename: "logo.png", ContentType: "image/png", Blob: []byte("png"), PixelWidth: 64, PixelHeight: 32, DPI: 72}
	pic := NewPicture(9, "Logo", img, "rId3")
	pic.CropLeft = 0.1
	pic.MaskType = AutoOval

	assert.Equal(t, "png", img.Ext())
	assert.Len(t, img.SHA1(), 40)

	d := pic.ToDict()
	p := props(t, d)
	details, ok := p["image_details"].(introspect.Dict)
	require.True(t, ok)
	assert.Equal(t, "logo.png", props(t, details)["filename"])
	assert.Equal(t, 0.1, p["crop_left"])

	part := d[api.KeyRelationships].(introspect.Dict)["image_part"].(introspect.Dict)
	assert.Equal(t, "rId3", part["rId"])
	assert.Equal(t, "/ppt/media/logo.png", part["partname"])

	summary := llm(t, d)["summary"].(string)
	assert.Contains(t, summary, "logo.png (64x32 px)")
	assert.Contains(t, summary, "masked to OVAL")
	assert.Contains(t, summary, "cropped")

	linked := NewPicture(10, "Linked", nil, "")
	p = props(t, linked.ToDict())
	assert.NotContains(t, p, "image_details")
}

func TestTable(t *testing.T) {
	gf := NewTableFrame(4, "Table 1", 2, 3)
	tbl, err := gf.Table()
	require.NoError(t, err)
	c, err := tbl.Cell(1, 2)
	require.NoError(t, err)
	c.SetText("x")
	_, err = tbl.Cell(2, 0)
	assert.Error(t, err)

	assert.Equal(t, "TABLE 'Table 1' (contains table)", gf.ContentSummary())

	d := introspect.ToDict(tbl)
	assert.Equal(t, "A 2x3 table with header row, banded rows.", llm(t, d)["summary"])
	parent := d[api.KeyRelationships].(introspect.Dict)["parent_graphic_frame"].(introspect.Dict)
	assert.Equal(t, "GraphicFrame", parent[api.KeyObjectType])

	rows, ok := props(t, d)["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	cell, ok := rows[1].([]any)[2].(introspect.Dict)
	require.True(t, ok)
	assert.Equal(t, "x", props(t, cell)["text"])

	shallow := introspect.ToDict(tbl, introspect.WithMaxDepth(1))
	summary := props(t, shallow)["rows"].(introspect.Dict)[api.KeySummary].(introspect.Dict)
	assert.Equal(t, 2, summary["count"])
	assert.Equal(t, "list", summary["collection_type"])
}

func TestGroup(t *testing.T) {
	g := NewGroupShape(3, "Group 3")
	assert.Equal(t, "Group (empty)", g.ContentSummary())

	detached := g.GetTree(1)
	assert.Equal(t, "group_shape_3", detached.AccessPath)
	assert.NotNil(t, detached.Children)
	assert.Empty(t, detached.Children)

	g.Name = "Icons"
	g.AddShape(NewAutoShape(4, "A", AutoStar5))
	assert.Equal(t, "Group 'Icons' (1 shape)", g.ContentSummary())

	prs := buildDeck(t)
	grp := prs.Slides()[1].Shapes()[1].(*GroupShape)
	assert.Equal(t, "Group (2 shapes)", grp.ContentSummary())

	node := grp.GetTree(tree.DefaultMaxDepth)
	assert.Equal(t, "slides[1].shapes[1]", node.AccessPath)
	require.Len(t, node.Children, 2)
	assert.Equal(t, "slides[1].shapes[1].shapes[1]", node.Children[1].AccessPath)

	p, ok := grp.Shapes()[0].Base().AccessPath()
	require.True(t, ok)
	assert.Equal(t, "slides[1].shapes[1].shapes[0]", p)
}

func TestPresentationTree(t *testing.T) {
	prs := buildDeck(t)

	root := prs.GetTree(0)
	assert.Equal(t, "", root.AccessPath)
	assert.Nil(t, root.Children)
	assert.Nil(t, root.Geometry)
	assert.Equal(t, "Presentation: 'Quarterly Review' (2 slides, 1 master)", root.ContentSummary)
	assert.Equal(t, 2, root.Identity["slide_count"])
	assert.Equal(t, "10.00 in", root.Identity["slide_width"])

	one := prs.GetTree(1)
	require.Len(t, one.Children, 2)
	assert.Equal(t, "slides[0]", one.Children[0].AccessPath)
	assert.Equal(t, "Slide 1: 'Q3 Results' (2 shapes)", one.Children[0].ContentSummary)
	assert.Nil(t, one.Children[0].Children)

	two := prs.GetTree(2)
	s2 := two.Children[1]
	require.Len(t, s2.Children, 3)
	assert.Equal(t, "slides[1].shapes[2]", s2.Children[2].AccessPath)
	assert.Equal(t, "TEXT_BOX 'Notes' Text: 'Revenue up'", s2.Children[0].ContentSummary)
	assert.Equal(t, "1.00 in", s2.Children[0].Geometry.Left)
	// The group is at the depth limit and is not expanded.
	assert.Nil(t, s2.Children[1].Children)

	raw, err := json.Marshal(one)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"access_path":"slides[0]"`)
	assert.Contains(t, string(raw), `"geometry":null`)

	prs.SetSlideSize(Inches(13.333), Inches(7.5))
	assert.Equal(t, "Presentation: 'Quarterly Review' (2 slides, 1 master) [13.3\"×7.5\"]", prs.GetTree(0).ContentSummary)
}

func TestLocateRoundTrip(t *testing.T) {
	prs := buildDeck(t)

	var walk func(n *api.TreeNode)
	walk = func(n *api.TreeNode) {
		obj, err := prs.Locate(n.AccessPath)
		require.NoError(t, err, n.AccessPath)
		assert.Equal(t, n.ObjectType, obj.TypeName(), n.AccessPath)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(prs.GetTree(3))

	obj, err := prs.Locate("slides[1].shapes[1].shapes[0]")
	require.NoError(t, err)
	assert.Equal(t, "Box", obj.(*AutoShape).Name)

	_, err = prs.Locate("slides[5]")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = prs.Locate("slides[0].shapes[0].shapes[0]")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = prs.Locate("slides[x]")
	assert.ErrorIs(t, err, tree.ErrInvalidAccessPath)
}

func TestSlideToDict(t *testing.T) {
	prs := buildDeck(t)
	s := prs.Slides()[0]
	d := s.ToDict()

	id := d[api.KeyIdentity].(introspect.Dict)
	assert.Equal(t, "Represents slide ID 256.", id["description"])
	assert.Equal(t, 256, id["slide_id"])

	p := props(t, d)
	shapes, ok := p["shapes"].([]any)
	require.True(t, ok)
	assert.Len(t, shapes, 2)
	phs, ok := p["placeholders"].([]any)
	require.True(t, ok)
	require.Len(t, phs, 2)
	assert.Equal(t, 0, phs[0].(introspect.Dict)["placeholder_idx"])
	assert.Equal(t, 1, phs[1].(introspect.Dict)["placeholder_idx"])

	rels := d[api.KeyRelationships].(introspect.Dict)
	layout := rels["slide_layout"].(introspect.Dict)
	assert.Equal(t, "SlideLayout", layout[api.KeyObjectType])
	assert.Equal(t, "Title Slide", layout[api.KeyIdentity].(introspect.Dict)["name"])
	parent := rels["parent_presentation"].(introspect.Dict)
	assert.Equal(t, "Presentation", parent[api.KeyObjectType])
	// Upward references stay shallow.
	assert.Contains(t, props(t, parent)["slides"], api.KeySummary)

	ctx := llm(t, d)
	assert.Equal(t, `Slide ID 256 with title "Q3 Results", based on layout 'Title Slide'. Contains 2 shape(s) including 2 placeholder(s).`, ctx["description"])

	collapsed := props(t, s.ToDict(introspect.WithCollapsedCollections()))
	assert.Equal(t, 2, collapsed["placeholders"].(introspect.Dict)[api.KeySummary].(introspect.Dict)["count"])
}

func TestLayoutUsedBy(t *testing.T) {
	prs := buildDeck(t)
	layout, _ := prs.Layout("Title Slide")
	require.Len(t, layout.UsedBySlides(), 1)

	rels := introspect.ToDict(layout)[api.KeyRelationships].(introspect.Dict)
	used, ok := rels["used_by_slides"].([]any)
	require.True(t, ok)
	assert.Len(t, used, 1)
	assert.Equal(t, "SlideMaster", rels["slide_master"].(introspect.Dict)[api.KeyObjectType])

	rels = introspect.ToDict(layout, introspect.WithCollapsedCollections())[api.KeyRelationships].(introspect.Dict)
	assert.Equal(t, "Used by 1 slide(s)", rels["used_by_slides_summary"])

	unused, _ := prs.Layout("Title Only")
	ctx := llm(t, introspect.ToDict(unused))
	assert.Contains(t, ctx["description"], "Not currently used by any slides")
}

func TestPresentationToDict(t *testing.T) {
	prs := buildDeck(t)
	d := prs.ToDict()
	assert.Equal(t, "Presentation", d[api.KeyObjectType])

	p := props(t, d)
	core := p["core_properties"].(introspect.Dict)
	assert.Equal(t, "Quarterly Review", props(t, core)["title"])
	assert.Nil(t, props(t, core)["created"])
	assert.Len(t, p["slides"], 2)
	assert.NotContains(t, p, "_next_slide_id")

	rels := d[api.KeyRelationships].(introspect.Dict)
	assert.Equal(t, introspect.Dict{"partname": "/ppt/presentation.xml"}, rels["main_document_part"])

	ctx := llm(t, d)
	assert.Equal(t, "Presentation: 'Quarterly Review'. Contains 2 slide(s) and 1 slide master(s). Slide dimensions: 10.00\"W x 7.50\"H.", ctx["description"])

	sparse := prs.ToDict(introspect.WithFields([]string{"properties.slide_width.inches", "_identity.description"}...))
	assert.Equal(t, introspect.Dict{
		api.KeyObjectType: "Presentation",
		api.KeyIdentity:   introspect.Dict{"description": "Root Presentation object. New presentation (default template)."},
		api.KeyProperties: introspect.Dict{"slide_width": introspect.Dict{"inches": 10.0}},
	}, sparse)
}

func TestSerializeWholeDeckIsCycleSafe(t *testing.T) {
	prs := buildDeck(t)
	for depth := 0; depth <= 6; depth++ {
		assert.NotPanics(t, func() {
			_ = prs.ToDict(introspect.WithMaxDepth(depth), introspect.WithPrivate())
		})
	}
	for _, s := range prs.Slides() {
		for _, sh := range s.Shapes() {
			assert.NotPanics(t, func() { _ = sh.Base().ToDict(introspect.WithMaxDepth(5)) })
		}
	}
}
