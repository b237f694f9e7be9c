// Package pdfdoc writes image pages and a nested outline into a PDF, and
// reads the outline back from PDFs it produced.
package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/itsmostafa/snapbook/internal/assemble"
)

// outlineFont is registered as a UTF-8 font so gofpdf writes outline titles
// as UTF-16 text strings.
const outlineFont = "gobold"

// ErrNoPages is returned when an outline entry is added to an empty document.
var ErrNoPages = errors.New("document has no pages")

type outline struct {
	title string
	level int
	page  int
}

// Writer is an assemble.Document backed by gofpdf. Each page is sized to
// its image, one PDF point per pixel. Outline entries are buffered and
// bound to their pages when the document is written.
type Writer struct {
	pdf      *gofpdf.Fpdf
	heights  []float64 // page heights in points, by page index
	outlines []outline
	flushed  bool
}

// NewWriter returns an empty PDF document titled title.
func NewWriter(title string) *Writer {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("snapbook", true)
	if title != "" {
		pdf.SetTitle(title, true)
	}
	return &Writer{pdf: pdf}
}

// PageCount returns the number of pages added so far.
func (w *Writer) PageCount() int { return len(w.heights) }

// AddPage implements assemble.Document.
func (w *Writer) AddPage(img assemble.Image) error {
	if w.flushed {
		return errors.New("document already written")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid page size %dx%d", img.Width, img.Height)
	}

	opt := gofpdf.ImageOptions{ImageType: imageType(img.Format)}
	name := fmt.Sprintf("page-%d", len(w.heights)+1)
	width, height := float64(img.Width), float64(img.Height)

	w.pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(img.Data))
	w.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
	w.pdf.ImageOptions(name, 0, 0, width, height, false, opt, 0, "")
	if err := w.pdf.Error(); err != nil {
		return err
	}
	w.heights = append(w.heights, height)
	return nil
}

// AddOutline implements assemble.Document. Targets past the last page land
// on the last page.
func (w *Writer) AddOutline(title string, page int, parent assemble.OutlineID) (assemble.OutlineID, error) {
	if w.flushed {
		return assemble.NoOutline, errors.New("document already written")
	}
	if len(w.heights) == 0 {
		return assemble.NoOutline, ErrNoPages
	}

	level := 0
	if parent != assemble.NoOutline {
		if int(parent) < 0 || int(parent) >= len(w.outlines) {
			return assemble.NoOutline, fmt.Errorf("unknown parent outline %d", parent)
		}
		level = w.outlines[parent].level + 1
	}

	w.outlines = append(w.outlines, outline{title: title, level: level, page: max(page, 0)})
	return assemble.OutlineID(len(w.outlines) - 1), nil
}

// WriteTo implements assemble.Document. Pages and outline entries added
// after the first call are rejected.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	if err := w.flush(); err != nil {
		return 0, err
	}
	cw := &countingWriter{w: out}
	if err := w.pdf.Output(cw); err != nil {
		return cw.n, fmt.Errorf("write pdf: %w", err)
	}
	return cw.n, nil
}

// flush binds the buffered outline entries to their pages.
//
// gofpdf stores a bookmark's y against the page that is current when it is
// created but converts it with the height of the last page on output, so the
// stored y is shifted by the difference between the two heights to land on
// the top of the target page.
func (w *Writer) flush() error {
	if w.flushed {
		return nil
	}
	w.flushed = true
	if len(w.outlines) == 0 {
		return nil
	}

	w.pdf.AddUTF8FontFromBytes(outlineFont, "", gobold.TTF)
	w.pdf.SetFont(outlineFont, "", 12)

	count := len(w.heights)
	last := w.heights[count-1]
	for _, o := range w.outlines {
		target := min(o.page, count-1)
		y := last - w.heights[target]
		if y == -1 {
			// -1 asks gofpdf for the current position.
			y = -1.001
		}
		w.pdf.SetPage(target + 1)
		w.pdf.Bookmark(o.title, o.level, y)
	}
	w.pdf.SetPage(count)
	if err := w.pdf.Error(); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}

func imageType(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return "PNG"
	case "gif":
		return "GIF"
	default:
		return "JPG"
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
