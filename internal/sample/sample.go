// Package sample builds the demonstration deck the CLI inspects.
package sample

import (
	"time"

	"github.com/agentic-research/slidescope/internal/deck"
)

// Deck returns a three-slide presentation touching every shape kind: a
// title slide, a content slide with a styled box, a picture and a nested
// group, and a slide holding a table.
func Deck() *deck.Presentation {
	prs := deck.New()
	core := prs.CoreProperties()
	core.Title = "Introspection Tour"
	core.Author = "slidescope"
	core.Subject = "Sample deck"
	core.Created = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)
	core.Modified = core.Created

	titleSlide(prs)
	contentSlide(prs)
	tableSlide(prs)
	return prs
}

func layout(prs *deck.Presentation, name string) *deck.SlideLayout {
	l, ok := prs.Layout(name)
	if !ok {
		panic("sample: missing layout " + name)
	}
	return l
}

func titleSlide(prs *deck.Presentation) {
	s := prs.AddSlide(layout(prs, "Title Slide"))
	s.Name = "Cover"
	if title, ok := s.Title(); ok {
		title.TextFrame().SetText("Welcome Slide")
	}
	for _, ph := range s.Placeholders() {
		if as, ok := ph.(*deck.AutoShape); ok && as.Placeholder.Type == deck.PlaceholderSubtitle {
			as.TextFrame().SetText("A walk through the object model")
		}
	}
	s.HasNotesSlide = true
}

func contentSlide(prs *deck.Presentation) {
	s := prs.AddSlide(layout(prs, "Title Only"))
	if title, ok := s.Title(); ok {
		title.TextFrame().SetText("Shapes and Formatting")
	}

	box := deck.NewAutoShape(s.NextShapeID(), "Callout", deck.AutoRoundedRectangle)
	box.SetPosition(deck.Inches(1), deck.Inches(1.5), deck.Inches(4), deck.Inches(1.5))
	box.Fill().Solid().SetRGB(deck.RGB(0x1F, 0x4E, 0x79))
	box.Line().Color().SetTheme(deck.ThemeAccent2)
	box.Line().SetWidth(deck.Pt(2))
	box.Adjustments = []float64{0.25}
	tf := box.TextFrame()
	tf.SetText("Key insight")
	tf.Anchor = deck.AnchorMiddle
	run := tf.Paragraphs()[0].Runs()[0]
	bold := true
	run.Font().Bold = &bold
	run.Font().SetSize(24)
	run.Font().Color().SetRGB(deck.RGB(0xFF, 0xFF, 0xFF))
	s.AddShape(box)

	pic := deck.NewPicture(s.NextShapeID(), "Logo", &deck.Image{
		Filename:    "image1.png",
		ContentType: "image/png",
		Blob:        []byte{0x89, 'P', 'N', 'G'},
		PixelWidth:  320,
		PixelHeight: 240,
		DPI:         96,
	}, "rId2")
	pic.SetPosition(deck.Inches(6), deck.Inches(1.5), deck.Inches(3), deck.Inches(2.25))
	pic.MaskType = deck.AutoOval
	s.AddShape(pic)

	outer := deck.NewGroupShape(s.NextShapeID(), "Diagram")
	outer.SetPosition(deck.Inches(1), deck.Inches(4), deck.Inches(8), deck.Inches(3))
	s.AddShape(outer)
	inner := deck.NewGroupShape(s.NextShapeID(), "Group 6")
	outer.AddShape(inner)
	star := deck.NewAutoShape(s.NextShapeID(), "Star", deck.AutoStar5)
	star.Rotation = 15
	inner.AddShape(star)
	arrow := deck.NewAutoShape(s.NextShapeID(), "Arrow", deck.AutoRightArrow)
	angle := 45.0
	arrow.Fill().Gradient(&angle,
		deck.NewGradientStop(0, deck.RGB(0, 0, 0)),
		deck.NewGradientStop(1, deck.RGB(0xFF, 0xFF, 0xFF)))
	outer.AddShape(arrow)
	outer.AddShape(deck.NewTextBox(s.NextShapeID(), "Caption", "Flow of data"))
}

func tableSlide(prs *deck.Presentation) {
	s := prs.AddSlide(layout(prs, "Title Only"))
	if title, ok := s.Title(); ok {
		title.TextFrame().SetText("Results")
	}
	gf := deck.NewTableFrame(s.NextShapeID(), "Table 3", 3, 2)
	gf.SetPosition(deck.Inches(1), deck.Inches(1.5), deck.Inches(8), deck.Inches(3))
	tbl, _ := gf.Table()
	rows := [][]string{{"Metric", "Value"}, {"Slides", "3"}, {"Shapes", "10"}}
	for r, row := range rows {
		for c, text := range row {
			cell, err := tbl.Cell(r, c)
			if err != nil {
				panic(err)
			}
			cell.SetText(text)
		}
	}
	s.AddShape(gf)
}
