package dirtree

import (
	"slices"
	"strings"
	"testing"
)

// sampleTree mirrors:
//
//	root/
//	  a.jpg b.png notes.txt
//	  sub/   c.jpg d.JPG
//	    deep/  e.png
//	  zz/    (empty)
func sampleTree() *Node {
	deep := NewFolder("deep", nil, []*Node{NewFile("e.png")})
	sub := NewFolder("sub", []*Node{deep}, []*Node{NewFile("d.JPG"), NewFile("c.jpg")})
	zz := NewFolder("zz", nil, nil)
	return NewFolder("root",
		[]*Node{zz, sub},
		[]*Node{NewFile("notes.txt"), NewFile("b.png"), NewFile("a.jpg")},
	)
}

func names(seq func(func(*Node) bool)) []string {
	var out []string
	for n := range seq {
		out = append(out, n.Name())
	}
	return out
}

func TestKindPredicates(t *testing.T) {
	f := NewFile("x.jpg")
	d := NewFolder("dir", nil, nil)

	if !f.IsFile() || f.IsFolder() {
		t.Errorf("file predicates wrong: IsFile=%v IsFolder=%v", f.IsFile(), f.IsFolder())
	}
	if d.IsFile() || !d.IsFolder() {
		t.Errorf("folder predicates wrong: IsFile=%v IsFolder=%v", d.IsFile(), d.IsFolder())
	}
	if f.Kind().String() != "file" || d.Kind().String() != "folder" {
		t.Errorf("unexpected kind strings %q %q", f.Kind(), d.Kind())
	}
}

func TestNewFolderSortsAndFiltersChildren(t *testing.T) {
	root := sampleTree()

	if got := names(root.Files()); !slices.Equal(got, []string{"a.jpg", "b.png", "notes.txt"}) {
		t.Errorf("files = %v", got)
	}
	if got := names(root.Folders()); !slices.Equal(got, []string{"sub", "zz"}) {
		t.Errorf("folders = %v", got)
	}

	t.Run("wrong kinds dropped", func(t *testing.T) {
		n := NewFolder("mixed", []*Node{NewFile("f")}, []*Node{NewFolder("d", nil, nil)})
		if n.CountFolders(0) != 0 || n.CountFiles(0, nil) != 0 {
			t.Error("expected children of the wrong kind to be dropped")
		}
	})

	t.Run("case sensitive order", func(t *testing.T) {
		n := NewFolder("c", nil, []*Node{NewFile("b"), NewFile("B"), NewFile("a")})
		if got := names(n.Files()); !slices.Equal(got, []string{"B", "a", "b"}) {
			t.Errorf("files = %v", got)
		}
	})

	t.Run("input order does not matter", func(t *testing.T) {
		a := NewFolder("x", nil, []*Node{NewFile("3"), NewFile("1"), NewFile("2")})
		b := NewFolder("x", nil, []*Node{NewFile("2"), NewFile("3"), NewFile("1")})
		if !slices.Equal(names(a.Files()), names(b.Files())) {
			t.Errorf("%v != %v", names(a.Files()), names(b.Files()))
		}
	})

	t.Run("caller slice not aliased", func(t *testing.T) {
		in := []*Node{NewFile("b"), NewFile("a")}
		NewFolder("x", nil, in)
		if in[0].Name() != "b" {
			t.Error("NewFolder reordered the caller's slice")
		}
	})
}

func TestNameStripsDirectories(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.jpg", "a.jpg"},
		{"dir/a.jpg", "a.jpg"},
		{"/abs/dir/", "dir"},
	}
	for _, tt := range tests {
		if got := NewFile(tt.in).Name(); got != tt.want {
			t.Errorf("NewFile(%q).Name() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCountFiles(t *testing.T) {
	root := sampleTree()
	jpg := ParseSuffixes(".jpg")
	images := ParseSuffixes(".jpg", ".png")

	tests := []struct {
		name     string
		level    int
		suffixes Suffixes
		want     int
	}{
		{"immediate all", 0, nil, 3},
		{"immediate jpg", 0, jpg, 1},
		{"one level all", 1, nil, 5},
		{"two levels all", 2, nil, 6},
		{"unbounded all", -1, nil, 6},
		{"unbounded jpg", -1, jpg, 3},
		{"unbounded images", -1, images, 5},
		{"one level images", 1, images, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := root.CountFiles(tt.level, tt.suffixes); got != tt.want {
				t.Errorf("CountFiles(%d, %v) = %d, want %d", tt.level, tt.suffixes, got, tt.want)
			}
			if again := root.CountFiles(tt.level, tt.suffixes); again != tt.want {
				t.Errorf("second call returned %d", again)
			}
		})
	}

	t.Run("narrowing never increases", func(t *testing.T) {
		all := root.CountFiles(-1, nil)
		wide := root.CountFiles(-1, images)
		narrow := root.CountFiles(-1, jpg)
		if !(all >= wide && wide >= narrow) {
			t.Errorf("expected %d >= %d >= %d", all, wide, narrow)
		}
	})

	t.Run("file counts itself", func(t *testing.T) {
		f := NewFile("pic.JPG")
		if f.CountFiles(-1, nil) != 1 {
			t.Error("expected 1 with empty suffixes")
		}
		if f.CountFiles(0, jpg) != 1 {
			t.Error("expected case-insensitive self match")
		}
		if f.CountFiles(0, ParseSuffixes(".png")) != 0 {
			t.Error("expected 0 for non-matching file")
		}
	})
}

func TestCountFolders(t *testing.T) {
	root := sampleTree()

	if got := root.CountFolders(0); got != 2 {
		t.Errorf("CountFolders(0) = %d, want 2", got)
	}
	if got := root.CountFolders(-1); got != 3 {
		t.Errorf("CountFolders(-1) = %d, want 3", got)
	}
	if got := NewFile("x").CountFolders(-1); got != 0 {
		t.Errorf("file CountFolders = %d, want 0", got)
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want int
	}{
		{"empty folder", NewFolder("e", nil, nil), 1},
		{"folder with files only", NewFolder("f", nil, []*Node{NewFile("a")}), 1},
		{"sample", sampleTree(), 3},
		{"file", NewFile("a"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Depth(); got != tt.want {
				t.Errorf("Depth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEmptyFolder(t *testing.T) {
	n := NewFolder("empty", nil, nil)
	if n.CountFiles(-1, nil) != 0 {
		t.Error("expected no files")
	}
	if n.CountFolders(-1) != 0 {
		t.Error("expected no folders")
	}
}

func TestIteratorsRestartable(t *testing.T) {
	root := sampleTree()
	first := names(root.Files())
	second := names(root.Files())
	if !slices.Equal(first, second) {
		t.Errorf("iterating twice gave %v then %v", first, second)
	}

	// Early break must not disturb later iterations.
	for range root.Folders() {
		break
	}
	if got := names(root.Folders()); len(got) != 2 {
		t.Errorf("expected 2 folders after early break, got %v", got)
	}
}

func TestLess(t *testing.T) {
	if !NewFile("a").Less(NewFolder("b", nil, nil)) {
		t.Error("expected a < b")
	}
	if NewFile("b").Less(NewFile("B")) {
		t.Error("expected B < b (byte order)")
	}
}

func TestWalk(t *testing.T) {
	var visited []string
	sampleTree().Walk(func(dir string, n *Node) {
		visited = append(visited, dir+"="+n.Name())
	})
	want := []string{"=root", "sub=sub", "sub/deep=deep", "zz=zz"}
	if !slices.Equal(visited, want) {
		t.Errorf("Walk visited %v, want %v", visited, want)
	}
}

func TestString(t *testing.T) {
	out := sampleTree().String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	want := []string{
		"root",
		"sub/",
		"\tdeep/",
		"\t\te.png",
		"\tc.jpg",
		"\td.JPG",
		"zz/",
		"a.jpg",
		"b.png",
		"notes.txt",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("String() =\n%s", out)
	}
}

func TestParseSuffixes(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want Suffixes
	}{
		{"nil", nil, nil},
		{"single", []string{".JPG"}, Suffixes{".jpg"}},
		{"comma list", []string{".jpg, .PNG"}, Suffixes{".jpg", ".png"}},
		{"dedupe", []string{".jpg", ".JPG", ""}, Suffixes{".jpg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSuffixes(tt.in...)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseSuffixes(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if !(Suffixes{".JPG"}).Match("a.jpg") {
		t.Error("expected unnormalized suffix to still match case-insensitively")
	}
}
