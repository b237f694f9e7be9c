package pdfdoc

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Entry is one outline entry read back from a PDF.
type Entry struct {
	Title    string
	Page     int     // 0-based target page, -1 when the entry has no page destination
	Top      float64 // y of the destination in points from the page bottom
	Children []Entry
}

// Info summarizes a PDF: its page count and outline tree.
type Info struct {
	Pages   int
	Outline []Entry
}

// ReadInfo opens the PDF at path and reads its page count and outline.
func ReadInfo(path string) (Info, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return infoFrom(r), nil
}

// ReadInfoFrom is ReadInfo over an in-memory or already open PDF.
func ReadInfoFrom(ra io.ReaderAt, size int64) (Info, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return Info{}, fmt.Errorf("open pdf: %w", err)
	}
	return infoFrom(r), nil
}

func infoFrom(r *pdf.Reader) Info {
	n := r.NumPage()

	// Page dictionaries print their indirect references (contents, parent),
	// which makes the text form unique per page.
	pages := make(map[string]int, n)
	for i := 1; i <= n; i++ {
		pages[r.Page(i).V.String()] = i - 1
	}

	root := r.Trailer().Key("Root").Key("Outlines")
	return Info{
		Pages:   n,
		Outline: readOutline(root, pages),
	}
}

func readOutline(parent pdf.Value, pages map[string]int) []Entry {
	var out []Entry
	for item := parent.Key("First"); item.Kind() == pdf.Dict; item = item.Key("Next") {
		e := Entry{Title: item.Key("Title").Text(), Page: -1}
		if dest := item.Key("Dest"); dest.Kind() == pdf.Array && dest.Len() > 0 {
			if page, ok := pages[dest.Index(0).String()]; ok {
				e.Page = page
			}
			if dest.Len() > 3 {
				e.Top = dest.Index(3).Float64()
			}
		}
		e.Children = readOutline(item, pages)
		out = append(out, e)
	}
	return out
}
