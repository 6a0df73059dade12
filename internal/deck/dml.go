package deck

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/agentic-research/slidescope/internal/introspect"
)

// ErrNoColor is returned when a color operation needs a color to exist.
var ErrNoColor = errors.New("no color defined")

// get adapts a typed accessor to a property getter.
func get[T any](fn func() (T, error)) func() (any, error) {
	return func() (any, error) { return fn() }
}

func llmContext(description, summary string, ops ...string) introspect.Dict {
	ctx := introspect.Dict{"description": description}
	if summary != "" {
		ctx["summary"] = summary
	}
	if len(ops) > 0 {
		ctx["common_operations"] = ops
	}
	return ctx
}

// ColorFormat is a color setting that is either unset, an RGB value or a
// theme color, with an optional brightness adjustment.
type ColorFormat struct {
	kind       ColorType
	rgb        RGBColor
	theme      ThemeColor
	brightness float64
}

// SetRGB makes the color an explicit RGB value.
func (c *ColorFormat) SetRGB(rgb RGBColor) {
	c.kind, c.rgb, c.brightness = ColorRGB, rgb, 0
}

// SetTheme makes the color a theme color.
func (c *ColorFormat) SetTheme(t ThemeColor) {
	c.kind, c.theme, c.brightness = ColorScheme, t, 0
}

// SetBrightness lightens (positive) or darkens (negative) the color.
func (c *ColorFormat) SetBrightness(b float64) error {
	if c.kind == 0 {
		return ErrNoColor
	}
	if b < -1 || b > 1 {
		return fmt.Errorf("brightness %v out of range [-1, 1]", b)
	}
	c.brightness = b
	return nil
}

// Type returns the color kind, or false when no color is set.
func (c *ColorFormat) Type() (ColorType, bool) { return c.kind, c.kind != 0 }

// RGB returns the RGB value of an RGB color.
func (c *ColorFormat) RGB() (RGBColor, error) {
	if c.kind != ColorRGB {
		return RGBColor{}, introspect.ErrNotApplicable
	}
	return c.rgb, nil
}

// ThemeColor returns the theme slot of a scheme color.
func (c *ColorFormat) ThemeColor() (ThemeColor, error) {
	if c.kind != ColorScheme {
		return 0, introspect.ErrNotApplicable
	}
	return c.theme, nil
}

func (c *ColorFormat) Brightness() float64 { return c.brightness }

func (c *ColorFormat) TypeName() string { return "ColorFormat" }

func (c *ColorFormat) IntrospectIdentity(f *introspect.Frame) introspect.Dict {
	id := f.BaseIdentity()
	id["description"] = "Represents a color setting."
	return id
}

func (c *ColorFormat) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("type", func() any {
			if t, ok := c.Type(); ok {
				return t
			}
			return nil
		}),
		introspect.Prop("rgb", get(c.RGB)),
		introspect.Prop("theme_color", get(c.ThemeColor)),
		introspect.Val("brightness", func() any { return c.brightness }),
	}
}

func (c *ColorFormat) IntrospectContext(f *introspect.Frame) introspect.Dict {
	return llmContext("Represents a color setting.", c.summary(),
		"set an RGB color (color.SetRGB(RGB(r, g, b)))",
		"set a theme color (color.SetTheme(...))",
		"adjust brightness (color.SetBrightness(-1.0..1.0))",
	)
}

func (c *ColorFormat) summary() string {
	switch c.kind {
	case 0:
		return "No explicit color defined (color is inherited or not set)."
	case ColorRGB:
		return fmt.Sprintf("Solid RGB color: #%s (R:%d, G:%d, B:%d).", c.rgb, c.rgb.R, c.rgb.G, c.rgb.B)
	case ColorScheme:
		var shade string
		switch {
		case c.brightness > 0:
			shade = fmt.Sprintf(", %.0f%% lighter", c.brightness*100)
		case c.brightness < 0:
			shade = fmt.Sprintf(", %.0f%% darker", math.Abs(c.brightness)*100)
		}
		return fmt.Sprintf("Theme color: %s%s.", c.theme, shade)
	}
	return fmt.Sprintf("Color of type %s.", c.kind)
}

// GradientStop is one color position of a gradient.
type GradientStop struct {
	Position float64
	Color    *ColorFormat
}

// NewGradientStop returns a stop at position (0 to 1) with an RGB color.
func NewGradientStop(position float64, rgb RGBColor) *GradientStop {
	c := &ColorFormat{}
	c.SetRGB(rgb)
	return &GradientStop{Position: position, Color: c}
}

func (g *GradientStop) TypeName() string { return "GradientStop" }

func (g *GradientStop) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("position", func() any { return g.Position }),
		introspect.Val("color", func() any { return g.Color }),
	}
}

func (g *GradientStop) IntrospectContext(f *introspect.Frame) introspect.Dict {
	s := fmt.Sprintf("Gradient stop at position %.2f", g.Position)
	if g.Color != nil {
		s = fmt.Sprintf("Gradient stop at %.0f%% with %s", g.Position*100, strings.TrimSuffix(g.Color.summary(), "."))
	}
	return llmContext("A color stop within a gradient fill.", s+".",
		"change stop position", "change stop color (stop.color.rgb = ...)")
}

// FillFormat is the fill of a shape or line.
type FillFormat struct {
	kind    FillType
	fore    *ColorFormat
	back    *ColorFormat
	pattern PatternType
	stops   []*GradientStop
	angle   *float64
	rID     string
}

// Solid switches to a solid fill and returns its color.
func (f *FillFormat) Solid() *ColorFormat {
	f.reset(FillSolid)
	f.fore = &ColorFormat{}
	return f.fore
}

// Patterned switches to a pattern fill.
func (f *FillFormat) Patterned(p PatternType) {
	f.reset(FillPatterned)
	f.pattern = p
	f.fore, f.back = &ColorFormat{}, &ColorFormat{}
}

// Gradient switches to a linear gradient. A nil angle means a non-linear
// gradient.
func (f *FillFormat) Gradient(angle *float64, stops ...*GradientStop) {
	f.reset(FillGradient)
	f.angle = angle
	f.stops = stops
}

// Picture switches to a picture fill referencing an image relationship.
func (f *FillFormat) Picture(rID string) {
	f.reset(FillPicture)
	f.rID = rID
}

// Background makes the fill transparent.
func (f *FillFormat) Background() { f.reset(FillBackground) }

func (f *FillFormat) reset(kind FillType) {
	*f = FillFormat{kind: kind}
}

// Type returns the fill kind, or false when no fill is set.
func (f *FillFormat) Type() (FillType, bool) { return f.kind, f.kind != 0 }

// ForeColor is the color of solid and pattern fills.
func (f *FillFormat) ForeColor() (*ColorFormat, error) {
	if f.fore == nil {
		return nil, introspect.ErrNotApplicable
	}
	return f.fore, nil
}

// BackColor is the background color of pattern fills.
func (f *FillFormat) BackColor() (*ColorFormat, error) {
	if f.back == nil {
		return nil, introspect.ErrNotApplicable
	}
	return f.back, nil
}

func (f *FillFormat) Pattern() (PatternType, error) {
	if f.kind != FillPatterned {
		return 0, introspect.ErrNotApplicable
	}
	return f.pattern, nil
}

func (f *FillFormat) GradientStops() ([]*GradientStop, error) {
	if f.kind != FillGradient {
		return nil, introspect.ErrNotApplicable
	}
	return f.stops, nil
}

// GradientAngle returns nil for non-linear gradients.
func (f *FillFormat) GradientAngle() (*float64, error) {
	if f.kind != FillGradient {
		return nil, introspect.ErrNotApplicable
	}
	return f.angle, nil
}

func (f *FillFormat) RID() (string, error) {
	if f.kind != FillPicture {
		return "", introspect.ErrNotApplicable
	}
	return f.rID, nil
}

func (f *FillFormat) TypeName() string { return "FillFormat" }

func (f *FillFormat) IntrospectIdentity(fr *introspect.Frame) introspect.Dict {
	id := fr.BaseIdentity()
	id["description"] = "Describes the fill style of an element."
	return id
}

func (f *FillFormat) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("type", func() any {
			if t, ok := f.Type(); ok {
				return t
			}
			return nil
		}),
		introspect.Prop("fore_color", get(f.ForeColor)),
		introspect.Prop("back_color", get(f.BackColor)),
		introspect.Prop("pattern", get(f.Pattern)),
		introspect.Prop("gradient_stops", get(f.GradientStops)),
		introspect.Prop("gradient_angle", get(f.GradientAngle)),
		introspect.Prop("image_rId", get(f.RID)),
	}
}

func (f *FillFormat) IntrospectRelationships(fr *introspect.Frame) introspect.Dict {
	rels := introspect.Dict{}
	if f.kind == FillPicture && f.rID != "" {
		rels["image_part"] = introspect.Dict{"rId": f.rID}
	}
	return rels
}

func (f *FillFormat) IntrospectContext(fr *introspect.Frame) introspect.Dict {
	return llmContext("Describes the fill style of an element.", f.summary()+".",
		"set solid color (fill.Solid().SetRGB(...))",
		"set gradient (fill.Gradient(...))",
		"set pattern (fill.Patterned(...))",
		"set picture (fill.Picture(rId))",
		"set no fill (fill.Background())",
	)
}

func (f *FillFormat) summary() string {
	switch f.kind {
	case 0:
		return "No explicit fill defined (fill is inherited)"
	case FillSolid:
		if f.fore == nil {
			return "Solid fill (color details unavailable)"
		}
		return "Solid fill with " + strings.TrimSuffix(f.fore.summary(), ".")
	case FillPatterned:
		return "Patterned fill: " + f.pattern.String()
	case FillTextured:
		return "Textured fill"
	case FillGradient:
		angle := " (non-linear or angle unavailable)"
		if f.angle != nil {
			angle = fmt.Sprintf(" at %.0f degrees", *f.angle)
		}
		return fmt.Sprintf("%d-stop gradient%s", len(f.stops), angle)
	case FillPicture:
		if f.rID != "" {
			return fmt.Sprintf("Picture fill (rId: %s)", f.rID)
		}
		return "Picture fill"
	case FillBackground:
		return "Background fill (transparent)"
	case FillGroup:
		return "Group fill (inherits from group)"
	}
	return "Fill of type " + f.kind.String()
}

// LineFormat is the outline of a shape.
type LineFormat struct {
	fill  *FillFormat
	width Length
	dash  DashStyle
}

// Fill returns the line fill, creating it on first use.
func (l *LineFormat) Fill() *FillFormat {
	if l.fill == nil {
		l.fill = &FillFormat{}
	}
	return l.fill
}

// Color makes the line solid and returns its color.
func (l *LineFormat) Color() *ColorFormat {
	if l.fill == nil || l.fill.kind != FillSolid {
		return l.Fill().Solid()
	}
	return l.fill.fore
}

func (l *LineFormat) SetWidth(w Length)        { l.width = w }
func (l *LineFormat) Width() Length            { return l.width }
func (l *LineFormat) SetDashStyle(d DashStyle) { l.dash = d }

// DashStyle returns the dash style, or false when inherited.
func (l *LineFormat) DashStyle() (DashStyle, bool) { return l.dash, l.dash != 0 }

func (l *LineFormat) TypeName() string { return "LineFormat" }

func (l *LineFormat) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("fill", func() any { return l.fill }),
		introspect.Val("width", func() any { return l.width }),
		introspect.Val("dash_style", func() any {
			if d, ok := l.DashStyle(); ok {
				return d
			}
			return nil
		}),
	}
}

func (l *LineFormat) IntrospectContext(f *introspect.Frame) introspect.Dict {
	return llmContext("Describes the outline of a shape.", l.summary(),
		"set line color (line.Color().SetRGB(...))",
		"set line width (line.SetWidth(Pt(...)))",
		"set dash style (line.SetDashStyle(DashDash))",
		"remove line (line.Fill().Background())",
	)
}

func (l *LineFormat) summary() string {
	if l.fill == nil {
		return "Line formatting inherited from the theme."
	}
	kind, ok := l.fill.Type()
	if !ok {
		return "Line formatting inherited from the theme."
	}
	if kind == FillBackground || l.width == 0 {
		return "No line (transparent or zero width)."
	}
	dash := "Solid"
	if d, ok := l.DashStyle(); ok && d != DashSolid {
		dash = d.String()
	}
	switch kind {
	case FillSolid:
		return fmt.Sprintf("%s line, %.2fpt, with %s.", dash, l.width.Pt(), strings.TrimSuffix(l.fill.fore.summary(), "."))
	case FillPatterned:
		return fmt.Sprintf("%s %s patterned line, %.2fpt.", dash, l.fill.pattern, l.width.Pt())
	}
	return fmt.Sprintf("%s line of type %s, %.2fpt.", dash, kind, l.width.Pt())
}
