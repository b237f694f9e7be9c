package assemble

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Image is a rendered page ready to be placed in a document.
type Image struct {
	Data   []byte // encoded image bytes
	Format string // "jpeg" or "png"
	Width  int    // pixels
	Height int    // pixels
}

// OutlineID identifies an outline entry created by a Document.
type OutlineID int

// NoOutline is the parent of top-level outline entries.
const NoOutline OutlineID = -1

// Renderer turns a planned page into an image with its overlay drawn on.
type Renderer interface {
	Render(ctx context.Context, page Page) (Image, error)
}

// Document accumulates pages in order and outline entries pointing at them.
type Document interface {
	// AddPage appends a page. Pages cannot be inserted out of order.
	AddPage(img Image) error

	// AddOutline creates an entry titled title that targets the 0-based page
	// index, nested under parent (NoOutline for a top-level entry).
	AddOutline(title string, page int, parent OutlineID) (OutlineID, error)

	// WriteTo serializes the document.
	WriteTo(w io.Writer) (int64, error)
}

// Assembler feeds a plan to a renderer and a document.
type Assembler struct {
	Renderer Renderer
	Document Document
	Logger   *slog.Logger

	// Progress, when set, is called after each page is appended.
	Progress func(done, total int, page Page)
}

// Run checks the plan, appends every page and then every outline entry.
func (a *Assembler) Run(ctx context.Context, plan *Plan) error {
	if err := plan.Check(); err != nil {
		return err
	}
	if err := a.WritePages(ctx, plan); err != nil {
		return err
	}
	return a.WriteOutline(plan)
}

// WritePages renders the plan's pages in order and appends them.
func (a *Assembler) WritePages(ctx context.Context, plan *Plan) error {
	log := a.logger()
	total := len(plan.Pages)

	for i, page := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("render cancelled after %d of %d pages: %w", i, total, err)
		}

		img, err := a.Renderer.Render(ctx, page)
		if err != nil {
			return fmt.Errorf("render %s: %w", page.Path, err)
		}
		if err := a.Document.AddPage(img); err != nil {
			return fmt.Errorf("append page %s: %w", page.Path, err)
		}

		log.Debug("page added", "index", page.Index, "path", page.Path, "width", img.Width, "height", img.Height)
		if a.Progress != nil {
			a.Progress(i+1, total, page)
		}
	}
	return nil
}

// WriteOutline adds one outline entry per bookmark, nested like the folders.
func (a *Assembler) WriteOutline(plan *Plan) error {
	log := a.logger()
	ids := make([]OutlineID, len(plan.Bookmarks))

	for i, b := range plan.Bookmarks {
		parent := NoOutline
		if b.Parent != NoParent {
			parent = ids[b.Parent]
		}

		id, err := a.Document.AddOutline(b.Title, b.Page, parent)
		if err != nil {
			return fmt.Errorf("add outline %q: %w", b.Title, err)
		}
		ids[i] = id
		log.Debug("outline added", "title", b.Title, "page", b.Page, "level", b.Level)
	}
	return nil
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}
