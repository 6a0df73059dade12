package deck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/slidescope/internal/introspect"
)

// EMU conversion factors.
const (
	EMUPerInch = 914400
	EMUPerCm   = 360000
	EMUPerMm   = 36000
	EMUPerPt   = 12700
)

// Length is a distance in English Metric Units.
type Length int64

// Inches returns a Length of n inches.
func Inches(n float64) Length { return Length(n * EMUPerInch) }

// Cm returns a Length of n centimeters.
func Cm(n float64) Length { return Length(n * EMUPerCm) }

// Mm returns a Length of n millimeters.
func Mm(n float64) Length { return Length(n * EMUPerMm) }

// Pt returns a Length of n points.
func Pt(n float64) Length { return Length(n * EMUPerPt) }

// Emu returns a Length of n EMU.
func Emu(n int64) Length { return Length(n) }

func (l Length) EMU() int64      { return int64(l) }
func (l Length) Inches() float64 { return float64(l) / EMUPerInch }
func (l Length) Cm() float64     { return float64(l) / EMUPerCm }
func (l Length) Mm() float64     { return float64(l) / EMUPerMm }
func (l Length) Pt() float64     { return float64(l) / EMUPerPt }
func (l Length) String() string  { return fmt.Sprintf("%.2f in", l.Inches()) }

func formatLength(l Length) (any, error) {
	return introspect.Dict{
		"_object_type": "Length",
		"emu":          l.EMU(),
		"inches":       l.Inches(),
		"pt":           l.Pt(),
		"cm":           l.Cm(),
		"mm":           l.Mm(),
	}, nil
}

// RGBColor is an sRGB triplet.
type RGBColor struct {
	R, G, B uint8
}

// RGB builds an RGBColor.
func RGB(r, g, b uint8) RGBColor { return RGBColor{R: r, G: g, B: b} }

// ParseRGB reads a six digit hex string, with or without a leading '#'.
func ParseRGB(s string) (RGBColor, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGBColor{}, fmt.Errorf("rgb %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBColor{}, fmt.Errorf("rgb %q: %w", s, err)
	}
	return RGBColor{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// String returns the uppercase hex form, e.g. "0A141E".
func (c RGBColor) String() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func formatRGB(c RGBColor) (any, error) {
	return introspect.Dict{
		"_object_type": "RGBColor",
		"r":            int(c.R),
		"g":            int(c.G),
		"b":            int(c.B),
		"hex":          c.String(),
	}, nil
}

func init() {
	introspect.Register(introspect.DefaultRegistry, formatLength)
	introspect.Register(introspect.DefaultRegistry, formatRGB)
}
