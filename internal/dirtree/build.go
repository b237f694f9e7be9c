package dirtree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ErrInvalidRoot is returned when the build root is missing or not a directory.
var ErrInvalidRoot = errors.New("root must be an existing directory")

// FolderFilter decides whether a subfolder of the build root is admitted
// into the tree. It only sees folder names; files are never filtered while
// building.
type FolderFilter func(name string) bool

// SkipHidden rejects folders whose name starts with a dot.
func SkipHidden(name string) bool {
	return !strings.HasPrefix(name, ".")
}

func admitAll(string) bool { return true }

// Build reads the directory at root into a tree.
//
// A level of 0 lists root without descending: subfolders appear as empty
// folder nodes. A negative level descends until the filesystem runs out and a
// positive level descends that many folders below root. filter applies to the
// immediate subfolders of root only; a nil filter admits every folder.
// Symlinked folders that lead back to one of their ancestors are left out.
func Build(root string, level int, filter FolderFilter) (*Node, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	tree, err := BuildFS(os.DirFS(root), ".", level, filter)
	if err != nil {
		return nil, err
	}
	return NewFolder(filepath.Base(abs), tree.folders, tree.files), nil
}

// BuildFS is Build over an fs.FS. dir is a slash-separated path valid for
// fsys; use "." for the root of fsys.
func BuildFS(fsys fs.FS, dir string, level int, filter FolderFilter) (*Node, error) {
	info, err := fs.Stat(fsys, dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, dir)
	}
	if filter == nil {
		filter = admitAll
	}
	b := &builder{fsys: fsys}
	return b.dir(dir, level, filter, []fs.FileInfo{info})
}

type builder struct {
	fsys fs.FS
}

// dir reads one directory. ancestors holds the stat of dir and of every
// directory above it.
func (b *builder) dir(dir string, level int, filter FolderFilter, ancestors []fs.FileInfo) (*Node, error) {
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var folders, files []*Node
	for _, entry := range entries {
		name := entry.Name()
		info, isDir := b.stat(dir, entry)
		if !isDir {
			files = append(files, NewFile(name))
			continue
		}
		if !filter(name) || loops(info, ancestors) {
			continue
		}
		if level == 0 {
			folders = append(folders, NewFolder(name, nil, nil))
			continue
		}
		sub, err := b.dir(path.Join(dir, name), level-1, admitAll, append(slices.Clip(ancestors), info))
		if err != nil {
			return nil, err
		}
		folders = append(folders, sub)
	}

	return NewFolder(path.Base(dir), folders, files), nil
}

// stat classifies an entry, following symlinks. A symlink whose target
// cannot be read is treated as a file.
func (b *builder) stat(dir string, entry fs.DirEntry) (fs.FileInfo, bool) {
	if entry.Type()&fs.ModeSymlink == 0 {
		if !entry.IsDir() {
			return nil, false
		}
		info, err := entry.Info()
		return info, err == nil
	}
	info, err := fs.Stat(b.fsys, path.Join(dir, entry.Name()))
	if err != nil {
		return nil, false
	}
	return info, info.IsDir()
}

// loops reports whether info is the same directory as one of ancestors.
// Only infos from the os package can be compared; others never loop.
func loops(info fs.FileInfo, ancestors []fs.FileInfo) bool {
	return slices.ContainsFunc(ancestors, func(a fs.FileInfo) bool {
		return os.SameFile(a, info)
	})
}
