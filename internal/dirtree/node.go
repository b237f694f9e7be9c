// Package dirtree builds an in-memory, read-only model of a directory
// subtree and answers counting queries over it.
//
// A tree is built once (see Build) and never mutated afterwards. Child
// folders and files are kept sorted by name, which fixes the order in which
// every consumer visits the tree.
package dirtree

import (
	"iter"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Kind distinguishes files from folders.
type Kind int

const (
	// File is a leaf entry. It never has children.
	File Kind = iota
	// Folder is a directory entry with sorted folder and file children.
	Folder
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Folder:
		return "folder"
	default:
		return "unknown"
	}
}

// Node is a single entry in the tree.
type Node struct {
	name    string
	kind    Kind
	folders []*Node
	files   []*Node
}

// NewFile returns a file node. Any directory part of name is stripped.
func NewFile(name string) *Node {
	return &Node{name: baseName(name), kind: File}
}

// NewFolder returns a folder node owning sorted copies of folders and files.
// Entries of the wrong kind are dropped.
func NewFolder(name string, folders, files []*Node) *Node {
	n := &Node{name: baseName(name), kind: Folder}
	n.folders = sortedOfKind(folders, Folder)
	n.files = sortedOfKind(files, File)
	return n
}

func sortedOfKind(nodes []*Node, kind Kind) []*Node {
	var out []*Node
	for _, c := range nodes {
		if c != nil && c.kind == kind {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, compareNodes)
	return out
}

func compareNodes(a, b *Node) int {
	return strings.Compare(a.name, b.name)
}

func baseName(name string) string {
	name = filepath.ToSlash(name)
	name = strings.TrimRight(name, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Name returns the base name of the entry.
func (n *Node) Name() string { return n.name }

// Kind returns whether the node is a file or a folder.
func (n *Node) Kind() Kind { return n.kind }

// IsFile reports whether the node is a file.
func (n *Node) IsFile() bool { return n.kind == File }

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool { return n.kind == Folder }

// Less orders nodes by a case-sensitive comparison of their names.
func (n *Node) Less(other *Node) bool {
	return compareNodes(n, other) < 0
}

// Folders yields the immediate child folders in sorted order.
func (n *Node) Folders() iter.Seq[*Node] {
	return slices.Values(n.folders)
}

// Files yields the immediate child files in sorted order.
func (n *Node) Files() iter.Seq[*Node] {
	return slices.Values(n.files)
}

// CountFiles counts file descendants whose name matches suffixes.
//
// A level of 0 counts only immediate files, a negative level counts the
// whole subtree and a positive level descends that many folders further.
// Called on a file, it reports whether the file itself matches.
func (n *Node) CountFiles(level int, suffixes Suffixes) int {
	if n.IsFile() {
		if suffixes.Match(n.name) {
			return 1
		}
		return 0
	}

	count := 0
	for _, f := range n.files {
		if suffixes.Match(f.name) {
			count++
		}
	}
	if level == 0 {
		return count
	}
	for _, sub := range n.folders {
		count += sub.CountFiles(level-1, suffixes)
	}
	return count
}

// CountFolders counts folder descendants using the same level rules as
// CountFiles. A file has no folders.
func (n *Node) CountFolders(level int) int {
	if n.IsFile() {
		return 0
	}
	count := len(n.folders)
	if level == 0 {
		return count
	}
	for _, sub := range n.folders {
		count += sub.CountFolders(level - 1)
	}
	return count
}

// Depth reports how many folder levels the tree spans. A folder without
// subfolders has depth 1; a file has depth 0.
func (n *Node) Depth() int {
	if n.IsFile() {
		return 0
	}
	deepest := 0
	for _, sub := range n.folders {
		deepest = max(deepest, sub.Depth())
	}
	return 1 + deepest
}

// Walk visits every folder in pre-order, files before subfolders, calling fn
// with the folder and its slash-separated path relative to n. The root is
// reported as "".
func (n *Node) Walk(fn func(dir string, folder *Node)) {
	n.walk("", fn)
}

func (n *Node) walk(dir string, fn func(string, *Node)) {
	if n.IsFile() {
		return
	}
	fn(dir, n)
	for _, sub := range n.folders {
		sub.walk(path.Join(dir, sub.name), fn)
	}
}

// String renders the tree with one entry per line, subfolders before files,
// nested entries indented by a tab.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(n.name)
	b.WriteByte('\n')
	n.writeChildren(&b, 0)
	return b.String()
}

func (n *Node) writeChildren(b *strings.Builder, indent int) {
	prefix := strings.Repeat("\t", indent)
	for _, sub := range n.folders {
		b.WriteString(prefix + sub.name + "/\n")
		sub.writeChildren(b, indent+1)
	}
	for _, f := range n.files {
		b.WriteString(prefix + f.name + "\n")
	}
}
