package render

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the overlay text size in points.
const DefaultFontSize = 20

// NewFace returns the bold face used for overlays at the given size.
func NewFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// TextBounds returns the box covered by text drawn with its top-left corner
// at anchor, one line per newline.
func TextBounds(face font.Face, text string, anchor image.Point) image.Rectangle {
	lines := splitLines(text)
	if len(lines) == 0 {
		return image.Rectangle{Min: anchor, Max: anchor}
	}

	lineHeight := face.Metrics().Height.Ceil()
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	return image.Rect(anchor.X, anchor.Y, anchor.X+width, anchor.Y+lineHeight*len(lines))
}

// DrawOverlay paints an opaque white box at anchor and writes text on it in
// black.
func DrawOverlay(dst draw.Image, face font.Face, text string, anchor image.Point) {
	box := TextBounds(face, text, anchor)
	draw.Draw(dst, box, image.White, image.Point{}, draw.Src)

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	d := font.Drawer{Dst: dst, Src: image.Black, Face: face}
	for i, line := range splitLines(text) {
		d.Dot = fixed.P(anchor.X, anchor.Y+ascent+i*lineHeight)
		d.DrawString(line)
	}
}

func splitLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
