package deck

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	"github.com/agentic-research/slidescope/internal/introspect"
)

// Image is the media behind a picture.
type Image struct {
	Filename    string
	ContentType string
	Blob        []byte
	PixelWidth  int
	PixelHeight int
	DPI         int
}

// Ext is the filename extension without the dot.
func (im *Image) Ext() string {
	return strings.TrimPrefix(path.Ext(im.Filename), ".")
}

// SHA1 is the hex digest of the image bytes.
func (im *Image) SHA1() string {
	sum := sha1.Sum(im.Blob)
	return hex.EncodeToString(sum[:])
}

func (im *Image) TypeName() string { return "Image" }

func (im *Image) IntrospectProperties() []introspect.Property {
	return []introspect.Property{
		introspect.Val("filename", func() any { return im.Filename }),
		introspect.Val("content_type", func() any { return im.ContentType }),
		introspect.Val("ext", func() any { return im.Ext() }),
		introspect.Val("size", func() any { return map[string]int{"width": im.PixelWidth, "height": im.PixelHeight} }),
		introspect.Val("dpi", func() any { return im.DPI }),
		introspect.Val("sha1", func() any { return im.SHA1() }),
		introspect.PrivateField("_blob_len", func() any { return len(im.Blob) }),
	}
}

// Picture is a shape displaying an image.
type Picture struct {
	BaseShape
	CropLeft, CropTop, CropRight, CropBottom float64
	// MaskType is the geometry the image is clipped to.
	MaskType AutoShapeType

	image *Image
	rID   string
	line  *LineFormat
}

// NewPicture returns a picture of img, related through rID.
func NewPicture(id int, name string, img *Image, rID string) *Picture {
	p := &Picture{image: img, rID: rID, MaskType: AutoRectangle}
	p.BaseShape = newBase(p, ShapePicture, id, name)
	return p
}

func (p *Picture) TypeName() string { return "Picture" }

// Image returns the picture's media, or ErrNotApplicable when it is linked
// rather than embedded.
func (p *Picture) Image() (*Image, error) {
	if p.image == nil {
		return nil, introspect.ErrNotApplicable
	}
	return p.image, nil
}

// Line returns the picture border, creating it on first use.
func (p *Picture) Line() *LineFormat {
	if p.line == nil {
		p.line = &LineFormat{}
	}
	return p.line
}

func (p *Picture) cropped() bool {
	return p.CropLeft != 0 || p.CropTop != 0 || p.CropRight != 0 || p.CropBottom != 0
}

func (p *Picture) IntrospectIdentity(f *introspect.Frame) introspect.Dict {
	id := p.BaseShape.IntrospectIdentity(f)
	if p.image != nil {
		id["description"] = fmt.Sprintf("Picture '%s' showing %s.", p.Name, p.image.Filename)
	}
	return id
}

func (p *Picture) IntrospectProperties() []introspect.Property {
	return append(p.baseProperties(),
		introspect.Prop("image_details", get(p.Image)),
		introspect.Val("crop_left", func() any { return p.CropLeft }),
		introspect.Val("crop_top", func() any { return p.CropTop }),
		introspect.Val("crop_right", func() any { return p.CropRight }),
		introspect.Val("crop_bottom", func() any { return p.CropBottom }),
		introspect.Val("auto_shape_mask_type", func() any { return p.MaskType }),
		introspect.Val("line", func() any { return p.line }),
		introspect.PrivateField("_rId", func() any { return p.rID }),
	)
}

func (p *Picture) IntrospectRelationships(f *introspect.Frame) introspect.Dict {
	rels := p.BaseShape.IntrospectRelationships(f)
	if p.rID != "" {
		part := introspect.Dict{"rId": p.rID}
		if p.image != nil {
			part["partname"] = "/ppt/media/" + p.image.Filename
			part["content_type"] = p.image.ContentType
		}
		rels["image_part"] = part
	}
	return rels
}

func (p *Picture) IntrospectContext(f *introspect.Frame) introspect.Dict {
	var parts []string
	if p.image != nil {
		parts = append(parts, fmt.Sprintf("Picture '%s' of %s (%dx%d px)", p.Name, p.image.Filename, p.image.PixelWidth, p.image.PixelHeight))
	} else {
		parts = append(parts, fmt.Sprintf("Picture '%s' (linked image)", p.Name))
	}
	if p.MaskType != 0 && p.MaskType != AutoRectangle {
		parts = append(parts, "masked to "+p.MaskType.String())
	}
	if p.cropped() {
		parts = append(parts, fmt.Sprintf("cropped (l=%.2f, t=%.2f, r=%.2f, b=%.2f)", p.CropLeft, p.CropTop, p.CropRight, p.CropBottom))
	}
	return llmContext(
		fmt.Sprintf("A picture shape named '%s' (id %d).", p.Name, p.ID),
		strings.Join(parts, ", ")+".",
		"access image bytes (picture.Image())",
		"crop the picture (picture.CropLeft = ...)",
		"change the mask shape (picture.MaskType = ...)",
		"add a border (picture.Line())",
	)
}
