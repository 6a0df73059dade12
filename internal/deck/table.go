package deck

import (
	"fmt"
	"strings"

	"github.com/agentic-research/slidescope/internal/introspect"
)

// GraphicFrame hosts a table.
type GraphicFrame struct {
	BaseShape
	table *Table
}

// NewTableFrame returns a graphic frame holding an empty rows x cols table.
func NewTableFrame(id int, name string, rows, cols int) *GraphicFrame {
	g := &GraphicFrame{}
	g.BaseShape = newBase(g, ShapeTable, id, name)
	g.table = newTable(g, rows, cols)
	return g
}

func (g *GraphicFrame) TypeName() string { return "GraphicFrame" }
func (g *GraphicFrame) HasTable() bool   { return g.table != nil }
func (g *GraphicFrame) HasChart() bool   { return false }

// Table returns the hosted table.
func (g *GraphicFrame) Table() (*Table, error) {
	if g.table == nil {
		return nil, introspect.ErrNotApplicable
	}
	return g.table, nil
}

func (g *GraphicFrame) IntrospectProperties() []introspect.Property {
	return append(g.baseProperties(),
		introspect.Val("has_table", func() any { return g.HasTable() }),
		introspect.Val("has_chart", func() any { return g.HasChart() }),
		introspect.Prop("table", get(g.Table)),
	)
}

// Table is a grid of cells.
type Table struct {
	FirstRow    bool
	FirstCol    bool
	LastRow     bool
	LastCol     bool
	HorzBanding bool
	VertBanding bool

	rows   [][]*Cell
	widths []Length
	frame  *GraphicFrame
}

func newTable(frame *GraphicFrame, rows, cols int) *Table {
	t := &Table{FirstRow: true, HorzBanding: true, frame: frame}
	t.rows = make([][]*Cell, rows)
	for r := range t.rows {
		t.rows[r] = make([]*Cell, cols)
		for c := range t.rows[r] {
			t.rows[r][c] = newCell()
		}
	}
	t.widths = make([]Length, cols)
	for c := range t.widths {
		t.widths[c] = Inches(1)
	}
	return t
}

// Cell returns the cell at row r, column c.
func (t *Table) Cell(r, c int) (*Cell, error) {
	if r < 0 || r >= len(t.rows) || c < 0 || c >= len(t.rows[r]) {
		return nil, fmt.Errorf("cell (%d, %d) out of range", r, c)
	}
	return t.rows[r][c], nil
}

func (t *Table) Rows() int { return len(t.rows) }

func (t *Table) Cols() int { return len(t.widths) }

func (t *Table) TypeName() string { return "Table" }

func (t *Table) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("first_row", func() any { return t.FirstRow }),
		introspect.Val("first_col", func() any { return t.FirstCol }),
		introspect.Val("last_row", func() any { return t.LastRow }),
		introspect.Val("last_col", func() any { return t.LastCol }),
		introspect.Val("horz_banding", func() any { return t.HorzBanding }),
		introspect.Val("vert_banding", func() any { return t.VertBanding }),
		introspect.Val("column_widths", func() any { return t.widths }),
		introspect.Val("rows", func() any { return t.rows }),
	}
}

func (t *Table) IntrospectRelationships(f *introspect.Frame) introspect.Dict {
	rels := introspect.Dict{}
	if t.frame != nil {
		rels["parent_graphic_frame"] = f.Related(t.frame, refDepth)
	}
	return rels
}

func (t *Table) IntrospectContext(f *introspect.Frame) introspect.Dict {
	var flags []string
	if t.FirstRow {
		flags = append(flags, "header row")
	}
	if t.FirstCol {
		flags = append(flags, "first column emphasis")
	}
	if t.HorzBanding {
		flags = append(flags, "banded rows")
	}
	summary := fmt.Sprintf("A %dx%d table", t.Rows(), t.Cols())
	if len(flags) > 0 {
		summary += " with " + strings.Join(flags, ", ")
	}
	return llmContext("A table of cells arranged in rows and columns.", summary+".",
		"access a cell (table.Cell(r, c))",
		"set cell text (cell.TextFrame().SetText(...))",
		"toggle header row (table.FirstRow = ...)",
	)
}

// Cell is one table cell.
type Cell struct {
	MarginLeft   Length
	MarginRight  Length
	MarginTop    Length
	MarginBottom Length
	SpanHeight   int
	SpanWidth    int

	text *TextFrame
	fill *FillFormat
}

func newCell() *Cell {
	c := &Cell{
		MarginLeft:   Inches(0.1),
		MarginRight:  Inches(0.1),
		MarginTop:    Inches(0.05),
		MarginBottom: Inches(0.05),
		SpanHeight:   1,
		SpanWidth:    1,
	}
	c.text = newTextFrame(nil)
	return c
}

func (c *Cell) TextFrame() *TextFrame { return c.text }
func (c *Cell) Text() string          { return c.text.Text() }
func (c *Cell) SetText(s string)      { c.text.SetText(s) }

// Fill returns the cell fill, creating it on first use.
func (c *Cell) Fill() *FillFormat {
	if c.fill == nil {
		c.fill = &FillFormat{}
	}
	return c.fill
}

func (c *Cell) IsMergeOrigin() bool { return c.SpanHeight > 1 || c.SpanWidth > 1 }

func (c *Cell) TypeName() string { return "Cell" }

func (c *Cell) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("text", func() any { return c.Text() }),
		introspect.Val("margin_left", func() any { return c.MarginLeft }),
		introspect.Val("margin_right", func() any { return c.MarginRight }),
		introspect.Val("margin_top", func() any { return c.MarginTop }),
		introspect.Val("margin_bottom", func() any { return c.MarginBottom }),
		introspect.Val("span_height", func() any { return c.SpanHeight }),
		introspect.Val("span_width", func() any { return c.SpanWidth }),
		introspect.Val("is_merge_origin", func() any { return c.IsMergeOrigin() }),
		introspect.Val("fill", func() any { return c.fill }),
		introspect.Val("text_frame", func() any { return c.text }),
	}
}
