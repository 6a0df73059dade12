package deck

import (
	"fmt"

	"github.com/agentic-research/slidescope/internal/introspect"
)

type enumMember struct {
	name string
	desc string
	xml  string
}

type enumSpec struct {
	typ     string
	members map[int]enumMember
}

func (s enumSpec) info(v int) introspect.EnumInfo {
	m, ok := s.members[v]
	if !ok {
		return introspect.EnumInfo{Type: s.typ, Name: fmt.Sprintf("UNKNOWN_%d", v), Value: v}
	}
	return introspect.EnumInfo{Type: s.typ, Name: m.name, Value: v, Description: m.desc, XMLValue: m.xml}
}

func (s enumSpec) name(v int) string { return s.info(v).Name }

// ColorType is the kind of a color definition.
type ColorType int

const (
	ColorRGB    ColorType = 1
	ColorScheme ColorType = 2
	ColorHSL    ColorType = 101
	ColorPreset ColorType = 102
)

var colorTypes = enumSpec{typ: "MSO_COLOR_TYPE", members: map[int]enumMember{
	1:   {"RGB", "Color is specified by an RGBColor value.", ""},
	2:   {"SCHEME", "Color is one of the preset theme colors.", ""},
	101: {"HSL", "Color is specified using Hue, Saturation, and Luminosity values.", ""},
	102: {"PRESET", "Color is specified using a named built-in color.", ""},
}}

func (t ColorType) EnumInfo() introspect.EnumInfo { return colorTypes.info(int(t)) }
func (t ColorType) String() string                { return colorTypes.name(int(t)) }

// ThemeColor names a slot in the theme color scheme.
type ThemeColor int

const (
	ThemeDark1      ThemeColor = 1
	ThemeLight1     ThemeColor = 2
	ThemeDark2      ThemeColor = 3
	ThemeLight2     ThemeColor = 4
	ThemeAccent1    ThemeColor = 5
	ThemeAccent2    ThemeColor = 6
	ThemeAccent3    ThemeColor = 7
	ThemeAccent4    ThemeColor = 8
	ThemeAccent5    ThemeColor = 9
	ThemeAccent6    ThemeColor = 10
	ThemeHyperlink  ThemeColor = 11
	ThemeText1      ThemeColor = 13
	ThemeBackground ThemeColor = 14
)

var themeColors = enumSpec{typ: "MSO_THEME_COLOR", members: map[int]enumMember{
	1:  {"DARK_1", "Specifies the Dark 1 theme color.", "dk1"},
	2:  {"LIGHT_1", "Specifies the Light 1 theme color.", "lt1"},
	3:  {"DARK_2", "Specifies the Dark 2 theme color.", "dk2"},
	4:  {"LIGHT_2", "Specifies the Light 2 theme color.", "lt2"},
	5:  {"ACCENT_1", "Specifies the Accent 1 theme color.", "accent1"},
	6:  {"ACCENT_2", "Specifies the Accent 2 theme color.", "accent2"},
	7:  {"ACCENT_3", "Specifies the Accent 3 theme color.", "accent3"},
	8:  {"ACCENT_4", "Specifies the Accent 4 theme color.", "accent4"},
	9:  {"ACCENT_5", "Specifies the Accent 5 theme color.", "accent5"},
	10: {"ACCENT_6", "Specifies the Accent 6 theme color.", "accent6"},
	11: {"HYPERLINK", "Specifies the theme color for a hyperlink.", "hlink"},
	13: {"TEXT_1", "Specifies the Text 1 theme color.", "tx1"},
	14: {"BACKGROUND_1", "Specifies the Background 1 theme color.", "bg1"},
}}

func (c ThemeColor) EnumInfo() introspect.EnumInfo { return themeColors.info(int(c)) }
func (c ThemeColor) String() string                { return themeColors.name(int(c)) }

// FillType is the kind of fill applied to a shape or line.
type FillType int

const (
	FillSolid      FillType = 1
	FillPatterned  FillType = 2
	FillGradient   FillType = 3
	FillTextured   FillType = 4
	FillBackground FillType = 5
	FillPicture    FillType = 6
	FillGroup      FillType = 101
)

var fillTypes = enumSpec{typ: "MSO_FILL_TYPE", members: map[int]enumMember{
	1:   {"SOLID", "Solid fill.", ""},
	2:   {"PATTERNED", "Patterned fill.", ""},
	3:   {"GRADIENT", "Gradient fill.", ""},
	4:   {"TEXTURED", "Textured fill.", ""},
	5:   {"BACKGROUND", "Shape is transparent, background shows through.", ""},
	6:   {"PICTURE", "Shape is filled with a picture.", ""},
	101: {"GROUP", "Shape fill is inherited from its group.", ""},
}}

func (t FillType) EnumInfo() introspect.EnumInfo { return fillTypes.info(int(t)) }
func (t FillType) String() string                { return fillTypes.name(int(t)) }

// PatternType is a preset fill pattern.
type PatternType int

const (
	PatternPercent10       PatternType = 2
	PatternCross           PatternType = 5
	PatternPercent50       PatternType = 7
	PatternHorizontalBrick PatternType = 35
	PatternDiagonalBrick   PatternType = 40
	PatternWave            PatternType = 48
)

var patternTypes = enumSpec{typ: "MSO_PATTERN_TYPE", members: map[int]enumMember{
	2:  {"PERCENT_10", "10% of the foreground color.", "pct10"},
	5:  {"CROSS", "Cross.", "cross"},
	7:  {"PERCENT_50", "50% of the foreground color.", "pct50"},
	35: {"HORIZONTAL_BRICK", "Horizontal brick.", "horzBrick"},
	40: {"DIAGONAL_BRICK", "Diagonal brick.", "diagBrick"},
	48: {"WAVE", "Wave.", "wave"},
}}

func (p PatternType) EnumInfo() introspect.EnumInfo { return patternTypes.info(int(p)) }
func (p PatternType) String() string                { return patternTypes.name(int(p)) }

// DashStyle is a line dash pattern.
type DashStyle int

const (
	DashSolid     DashStyle = 1
	DashSquareDot DashStyle = 2
	DashRoundDot  DashStyle = 3
	DashDash      DashStyle = 4
	DashDashDot   DashStyle = 5
	DashLongDash  DashStyle = 7
)

var dashStyles = enumSpec{typ: "MSO_LINE_DASH_STYLE", members: map[int]enumMember{
	1: {"SOLID", "Solid line.", "solid"},
	2: {"SQUARE_DOT", "Square dots.", "sysDash"},
	3: {"ROUND_DOT", "Round dots.", "sysDot"},
	4: {"DASH", "Dashes.", "dash"},
	5: {"DASH_DOT", "Alternating dashes and dots.", "dashDot"},
	7: {"LONG_DASH", "Long dashes.", "lgDash"},
}}

func (d DashStyle) EnumInfo() introspect.EnumInfo { return dashStyles.info(int(d)) }
func (d DashStyle) String() string                { return dashStyles.name(int(d)) }

// ShapeType identifies the kind of a shape.
type ShapeType int

const (
	ShapeAuto        ShapeType = 1
	ShapeChart       ShapeType = 3
	ShapeGroup       ShapeType = 6
	ShapePicture     ShapeType = 13
	ShapePlaceholder ShapeType = 14
	ShapeTextBox     ShapeType = 17
	ShapeTable       ShapeType = 19
)

var shapeTypes = enumSpec{typ: "MSO_SHAPE_TYPE", members: map[int]enumMember{
	1:  {"AUTO_SHAPE", "AutoShape.", ""},
	3:  {"CHART", "Chart.", ""},
	6:  {"GROUP", "Group shape.", ""},
	13: {"PICTURE", "Picture.", ""},
	14: {"PLACEHOLDER", "Placeholder.", ""},
	17: {"TEXT_BOX", "Text box.", ""},
	19: {"TABLE", "Table.", ""},
}}

func (t ShapeType) EnumInfo() introspect.EnumInfo { return shapeTypes.info(int(t)) }
func (t ShapeType) String() string                { return shapeTypes.name(int(t)) }

// AutoShapeType is a preset geometry.
type AutoShapeType int

const (
	AutoRectangle        AutoShapeType = 1
	AutoRoundedRectangle AutoShapeType = 5
	AutoTriangle         AutoShapeType = 7
	AutoOval             AutoShapeType = 9
	AutoRightArrow       AutoShapeType = 33
	AutoStar5            AutoShapeType = 92
	AutoCloud            AutoShapeType = 179
)

var autoShapeTypes = enumSpec{typ: "MSO_AUTO_SHAPE_TYPE", members: map[int]enumMember{
	1:   {"RECTANGLE", "Rectangle", "rect"},
	5:   {"ROUNDED_RECTANGLE", "Rounded rectangle", "roundRect"},
	7:   {"ISOSCELES_TRIANGLE", "Isosceles triangle", "triangle"},
	9:   {"OVAL", "Oval", "ellipse"},
	33:  {"RIGHT_ARROW", "Block arrow that points right", "rightArrow"},
	92:  {"STAR_5_POINT", "5-point star", "star5"},
	179: {"CLOUD", "Cloud shape", "cloud"},
}}

func (t AutoShapeType) EnumInfo() introspect.EnumInfo { return autoShapeTypes.info(int(t)) }
func (t AutoShapeType) String() string                { return autoShapeTypes.name(int(t)) }

// PlaceholderType is the role of a placeholder shape.
type PlaceholderType int

const (
	PlaceholderTitle       PlaceholderType = 1
	PlaceholderBody        PlaceholderType = 2
	PlaceholderCenterTitle PlaceholderType = 3
	PlaceholderSubtitle    PlaceholderType = 4
	PlaceholderObject      PlaceholderType = 7
	PlaceholderSlideNumber PlaceholderType = 13
	PlaceholderFooter      PlaceholderType = 15
	PlaceholderDate        PlaceholderType = 16
	PlaceholderPicture     PlaceholderType = 18
)

var placeholderTypes = enumSpec{typ: "PP_PLACEHOLDER_TYPE", members: map[int]enumMember{
	1:  {"TITLE", "Title", "title"},
	2:  {"BODY", "Body", "body"},
	3:  {"CENTER_TITLE", "Center Title", "ctrTitle"},
	4:  {"SUBTITLE", "Subtitle", "subTitle"},
	7:  {"OBJECT", "Object", "obj"},
	13: {"SLIDE_NUMBER", "Slide Number", "sldNum"},
	15: {"FOOTER", "Footer", "ftr"},
	16: {"DATE", "Date", "dt"},
	18: {"PICTURE", "Picture", "pic"},
}}

func (t PlaceholderType) EnumInfo() introspect.EnumInfo { return placeholderTypes.info(int(t)) }
func (t PlaceholderType) String() string                { return placeholderTypes.name(int(t)) }

// Anchor is the vertical alignment of text in its frame.
type Anchor int

const (
	AnchorTop    Anchor = 1
	AnchorMiddle Anchor = 3
	AnchorBottom Anchor = 4
)

var anchors = enumSpec{typ: "MSO_VERTICAL_ANCHOR", members: map[int]enumMember{
	1: {"TOP", "Aligns text to top of text frame", "t"},
	3: {"MIDDLE", "Centers text vertically", "ctr"},
	4: {"BOTTOM", "Aligns text to bottom of text frame", "b"},
}}

func (a Anchor) EnumInfo() introspect.EnumInfo { return anchors.info(int(a)) }
func (a Anchor) String() string                { return anchors.name(int(a)) }

// AutoSize controls how a text frame and its shape fit each other.
type AutoSize int

const (
	AutoSizeNone           AutoSize = 0
	AutoSizeShapeToFitText AutoSize = 1
	AutoSizeTextToFitShape AutoSize = 2
)

var autoSizes = enumSpec{typ: "MSO_AUTO_SIZE", members: map[int]enumMember{
	0: {"NONE", "No automatic sizing of the shape or text will be done.", ""},
	1: {"SHAPE_TO_FIT_TEXT", "The shape height and possibly width are adjusted to fit the text.", ""},
	2: {"TEXT_TO_FIT_SHAPE", "The font size is reduced as necessary to fit the text within the shape.", ""},
}}

func (a AutoSize) EnumInfo() introspect.EnumInfo { return autoSizes.info(int(a)) }
func (a AutoSize) String() string                { return autoSizes.name(int(a)) }

// Alignment is horizontal paragraph alignment.
type Alignment int

const (
	AlignLeft    Alignment = 1
	AlignCenter  Alignment = 2
	AlignRight   Alignment = 3
	AlignJustify Alignment = 4
)

var alignments = enumSpec{typ: "PP_PARAGRAPH_ALIGNMENT", members: map[int]enumMember{
	1: {"LEFT", "Left aligned", "l"},
	2: {"CENTER", "Center align", "ctr"},
	3: {"RIGHT", "Right aligned", "r"},
	4: {"JUSTIFY", "Justified", "just"},
}}

func (a Alignment) EnumInfo() introspect.EnumInfo { return alignments.info(int(a)) }
func (a Alignment) String() string                { return alignments.name(int(a)) }
