// Package render turns planned pages into JPEG images carrying their
// progress overlay.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io/fs"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/itsmostafa/snapbook/internal/assemble"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// Renderer reads page images from FS and draws the page overlay on them.
type Renderer struct {
	FS       fs.FS       // rooted at the tree root; page paths resolve against it
	Face     font.Face   // overlay face, see NewFace
	Anchor   image.Point // top-left corner of the overlay
	Quality  int         // JPEG quality, 1-100
	MaxWidth int         // downscale wider images to this width; 0 keeps size
}

// New returns a renderer over fsys with the default face and quality.
func New(fsys fs.FS) (*Renderer, error) {
	face, err := NewFace(DefaultFontSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{FS: fsys, Face: face, Quality: DefaultQuality}, nil
}

// Render implements assemble.Renderer.
func (r *Renderer) Render(ctx context.Context, page assemble.Page) (assemble.Image, error) {
	if err := ctx.Err(); err != nil {
		return assemble.Image{}, err
	}

	data, err := fs.ReadFile(r.FS, page.Path)
	if err != nil {
		return assemble.Image{}, fmt.Errorf("read image: %w", err)
	}

	img, err := Decode(data)
	if err != nil {
		return assemble.Image{}, err
	}
	img = r.scale(img)

	DrawOverlay(img, r.Face, page.Overlay(), r.Anchor)

	quality := r.Quality
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return assemble.Image{}, fmt.Errorf("encode page: %w", err)
	}

	b := img.Bounds()
	return assemble.Image{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

func (r *Renderer) scale(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	if r.MaxWidth <= 0 || b.Dx() <= r.MaxWidth {
		return img
	}
	h := max(1, b.Dy()*r.MaxWidth/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, r.MaxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
