// Package docxdoc writes image pages into a Word document. Outline entries
// become bold headings placed just before the page they point at.
package docxdoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/itsmostafa/snapbook/internal/assemble"
)

// maxWidthEMU is the printable width of a default page, 6 inches.
const maxWidthEMU = 6 * 914400

// ErrNoPages is returned when an outline entry is added to an empty document.
var ErrNoPages = errors.New("document has no pages")

type heading struct {
	title string
	page  int
}

// Writer is an assemble.Document producing DOCX. Pages and headings are
// buffered and laid out in page order by WriteTo.
type Writer struct {
	pages    []assemble.Image
	headings []heading
	titles   []string // breadcrumb by OutlineID
}

// NewWriter returns an empty document.
func NewWriter() *Writer {
	return &Writer{}
}

// AddPage implements assemble.Document.
func (w *Writer) AddPage(img assemble.Image) error {
	if len(img.Data) == 0 {
		return errors.New("empty page image")
	}
	w.pages = append(w.pages, img)
	return nil
}

// AddOutline implements assemble.Document. The heading text is the
// breadcrumb of titles from the top-level entry down to this one.
func (w *Writer) AddOutline(title string, page int, parent assemble.OutlineID) (assemble.OutlineID, error) {
	if len(w.pages) == 0 {
		return assemble.NoOutline, ErrNoPages
	}
	if parent != assemble.NoOutline {
		if int(parent) < 0 || int(parent) >= len(w.titles) {
			return assemble.NoOutline, fmt.Errorf("unknown parent outline %d", parent)
		}
		title = w.titles[parent] + " / " + title
	}

	w.headings = append(w.headings, heading{title: title, page: max(page, 0)})
	w.titles = append(w.titles, title)
	return assemble.OutlineID(len(w.titles) - 1), nil
}

// WriteTo implements assemble.Document.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	doc := docx.New().WithDefaultTheme()

	next := 0
	for i, img := range w.pages {
		for next < len(w.headings) && w.headings[next].page <= i {
			addHeading(doc, w.headings[next].title)
			next++
		}

		para := doc.AddParagraph()
		run, err := para.AddInlineDrawing(img.Data)
		if err != nil {
			return 0, fmt.Errorf("add page %d: %w", i+1, err)
		}
		fitWidth(run)
		if i < len(w.pages)-1 {
			para.AddPageBreaks()
		}
	}
	for ; next < len(w.headings); next++ {
		addHeading(doc, w.headings[next].title)
	}

	n, err := doc.WriteTo(out)
	if err != nil {
		return n, fmt.Errorf("write docx: %w", err)
	}
	return n, nil
}

func addHeading(doc *docx.Docx, title string) {
	level := strings.Count(title, " / ")
	size := max(24, 36-4*level)
	doc.AddParagraph().AddText(title).Bold().Size(fmt.Sprint(size))
}

// fitWidth scales an inline picture down to the printable width.
func fitWidth(run *docx.Run) {
	if len(run.Children) == 0 {
		return
	}
	drawing, ok := run.Children[0].(*docx.Drawing)
	if !ok || drawing.Inline == nil || drawing.Inline.Extent == nil {
		return
	}
	cx, cy := drawing.Inline.Extent.CX, drawing.Inline.Extent.CY
	if cx <= maxWidthEMU || cx == 0 {
		return
	}
	drawing.Inline.Size(maxWidthEMU, cy*maxWidthEMU/cx)
}
