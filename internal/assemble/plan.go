// Package assemble turns a directory tree into an ordered list of annotated
// pages and a matching outline, then feeds both to a document writer.
//
// The tree is walked exactly once (NewPlan). Page rendering and outline
// creation both consume the resulting Plan, so the page an outline entry
// points at is always the page the renderer produced at that position.
package assemble

import (
	"errors"
	"fmt"
	"path"

	"github.com/itsmostafa/snapbook/internal/dirtree"
)

// ErrInconsistentPlan is returned when a plan's pages and bookmarks disagree.
var ErrInconsistentPlan = errors.New("inconsistent plan")

// NoParent marks a root bookmark.
const NoParent = -1

// Page is one document page, backed by one image file.
type Page struct {
	Index    int       // 0-based position in the document
	Path     string    // slash path relative to the tree root
	Name     string    // file name
	Folder   string    // slash path of the owning folder, "" for the root
	Counters []Counter // progress indicators, outermost first
}

// Overlay returns the text drawn on the page: one "count/total" line per
// counter, outermost first.
func (p Page) Overlay() string {
	return formatCounters(p.Counters)
}

// Bookmark is one outline entry, pointing at the first page of a folder.
type Bookmark struct {
	Title  string
	Folder string // slash path of the folder, "" for the root
	Page   int    // 0-based page index
	Parent int    // index into Plan.Bookmarks, NoParent for the root
	Level  int    // nesting depth, 0 for the root
}

// Plan is the result of a single walk over a tree.
type Plan struct {
	Pages     []Page
	Bookmarks []Bookmark
}

// NewPlan walks root in sorted pre-order, files before subfolders, and lays
// out one page per file matching suffixes and one bookmark per folder.
// A file root yields an empty plan.
func NewPlan(root *dirtree.Node, suffixes dirtree.Suffixes) *Plan {
	p := &planner{plan: &Plan{}, suffixes: suffixes}
	if root != nil && root.IsFolder() {
		p.visit(root, "", NoParent, 0)
	}
	return p.plan
}

type planner struct {
	plan     *Plan
	suffixes dirtree.Suffixes
	counters Counters
}

// visit lays out one folder and its subtree. The folder's bookmark takes the
// index of the next page to be laid out.
func (p *planner) visit(folder *dirtree.Node, dir string, parent, level int) {
	start := len(p.plan.Pages)

	bookmark := len(p.plan.Bookmarks)
	p.plan.Bookmarks = append(p.plan.Bookmarks, Bookmark{
		Title:  folder.Name(),
		Folder: dir,
		Page:   start,
		Parent: parent,
		Level:  level,
	})

	pop := p.counters.Push(folder.CountFiles(-1, p.suffixes))
	defer pop()

	p.visitFiles(folder, dir)

	for sub := range folder.Folders() {
		p.visit(sub, path.Join(dir, sub.Name()), bookmark, level+1)
	}
}

func (p *planner) visitFiles(folder *dirtree.Node, dir string) {
	pop := p.counters.Push(folder.CountFiles(0, p.suffixes))
	defer pop()

	for f := range folder.Files() {
		if !p.suffixes.Match(f.Name()) {
			continue
		}
		p.counters.Increment()
		p.plan.Pages = append(p.plan.Pages, Page{
			Index:    len(p.plan.Pages),
			Path:     path.Join(dir, f.Name()),
			Name:     f.Name(),
			Folder:   dir,
			Counters: p.counters.Snapshot(),
		})
	}
}

// Len returns the number of pages in the plan.
func (p *Plan) Len() int { return len(p.Pages) }

// Bookmark returns the bookmark of the folder at the given slash path.
func (p *Plan) Bookmark(folder string) (Bookmark, bool) {
	for _, b := range p.Bookmarks {
		if b.Folder == folder {
			return b, true
		}
	}
	return Bookmark{}, false
}

// Check verifies that pages and bookmarks agree: page indexes are dense,
// bookmarks appear in page order with parents before children, and every
// folder that owns pages is bookmarked at its first one.
func (p *Plan) Check() error {
	firstPage := make(map[string]int)
	for i, page := range p.Pages {
		if page.Index != i {
			return fmt.Errorf("%w: page %q has index %d at position %d", ErrInconsistentPlan, page.Path, page.Index, i)
		}
		if _, ok := firstPage[page.Folder]; !ok {
			firstPage[page.Folder] = i
		}
	}

	last := 0
	for i, b := range p.Bookmarks {
		if b.Page < last || b.Page > len(p.Pages) {
			return fmt.Errorf("%w: bookmark %q points at page %d", ErrInconsistentPlan, b.Title, b.Page)
		}
		last = b.Page
		if b.Parent != NoParent && (b.Parent < 0 || b.Parent >= i) {
			return fmt.Errorf("%w: bookmark %q has parent %d", ErrInconsistentPlan, b.Title, b.Parent)
		}
		if first, ok := firstPage[b.Folder]; ok && first != b.Page {
			return fmt.Errorf("%w: bookmark %q points at page %d, folder starts at %d", ErrInconsistentPlan, b.Title, b.Page, first)
		}
	}
	return nil
}
