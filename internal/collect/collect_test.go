package collect

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func setup(t *testing.T) (work, shots string) {
	t.Helper()
	root := t.TempDir()
	work = filepath.Join(root, "videos")
	shots = filepath.Join(root, "Pictures")
	os.MkdirAll(work, 0755)
	os.MkdirAll(shots, 0755)

	os.WriteFile(filepath.Join(work, "b-talk.mp4"), []byte("b"), 0644)
	os.WriteFile(filepath.Join(work, "a-talk.mp4"), []byte("a"), 0644)
	os.WriteFile(filepath.Join(shots, "vlcsnap-002.jpg"), []byte("2"), 0644)
	os.WriteFile(filepath.Join(shots, "vlcsnap-001.jpg"), []byte("1"), 0644)
	os.WriteFile(filepath.Join(shots, "vlcsnap-003.png"), []byte("3"), 0644)
	os.WriteFile(filepath.Join(shots, "holiday.jpg"), []byte("h"), 0644)
	return work, shots
}

func options(work, shots string) Options {
	return Options{
		WorkDir:       work,
		ScreenshotDir: shots,
		Prefix:        "vlcsnap",
		ScreenshotExt: ".jpg",
		VideoExt:      ".mp4",
		DoneDir:       "Done",
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRunMovesVideoAndScreenshots(t *testing.T) {
	work, shots := setup(t)

	res, err := Run(options(work, shots), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	folder := filepath.Join(work, "Done", "a-talk")
	if res.Video != "a-talk.mp4" || res.Folder != folder {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(res.Moves))
	}

	for _, name := range []string{"a-talk.mp4", "vlcsnap-001.jpg", "vlcsnap-002.jpg"} {
		if !exists(filepath.Join(folder, name)) {
			t.Errorf("expected %s in %s", name, folder)
		}
	}
	if exists(filepath.Join(work, "a-talk.mp4")) {
		t.Error("video should have left the work dir")
	}
	if !exists(filepath.Join(work, "b-talk.mp4")) {
		t.Error("only the first video should move")
	}
	if !exists(filepath.Join(shots, "vlcsnap-003.png")) || !exists(filepath.Join(shots, "holiday.jpg")) {
		t.Error("non-matching screenshots should stay")
	}
}

func TestRunDryRun(t *testing.T) {
	work, shots := setup(t)
	opts := options(work, shots)
	opts.DryRun = true

	res, err := Run(opts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Moves) != 3 {
		t.Errorf("expected 3 planned moves, got %d", len(res.Moves))
	}
	if exists(res.Folder) {
		t.Error("dry run must not create the folder")
	}
	if !exists(filepath.Join(work, "a-talk.mp4")) {
		t.Error("dry run must not move files")
	}
}

func TestRunNoVideo(t *testing.T) {
	work := t.TempDir()
	_, err := Run(options(work, work), nil)
	if !errors.Is(err, ErrNoVideo) {
		t.Errorf("expected ErrNoVideo, got %v", err)
	}
}

func TestRunRefusesToOverwrite(t *testing.T) {
	work, shots := setup(t)
	folder := filepath.Join(work, "Done", "a-talk")
	os.MkdirAll(folder, 0755)
	os.WriteFile(filepath.Join(folder, "vlcsnap-001.jpg"), []byte("old"), 0644)

	if _, err := Run(options(work, shots), nil); err == nil {
		t.Fatal("expected error for existing destination")
	}
	if !exists(filepath.Join(work, "a-talk.mp4")) {
		t.Error("nothing should move when a destination exists")
	}
}

func TestMove(t *testing.T) {
	crossDevice := func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EXDEV}
	}

	tests := []struct {
		name     string
		rename   func(string, string) error
		wantErr  bool
		wantMove bool
	}{
		{"same device", os.Rename, false, true},
		{"cross device copies", crossDevice, false, true},
		{"other errors are returned", func(string, string) error { return os.ErrPermission }, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := rename
			rename = tt.rename
			t.Cleanup(func() { rename = orig })

			dir := t.TempDir()
			src := filepath.Join(dir, "src.jpg")
			dst := filepath.Join(dir, "dst.jpg")
			os.WriteFile(src, []byte("data"), 0644)

			err := move(src, dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("move() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, os.ErrPermission) {
				t.Errorf("expected the rename error, got %v", err)
			}

			data, readErr := os.ReadFile(dst)
			if tt.wantMove && (readErr != nil || string(data) != "data") {
				t.Errorf("expected moved data, got %q, %v", data, readErr)
			}
			if exists(src) == tt.wantMove {
				t.Errorf("source exists = %v after move", exists(src))
			}
		})
	}
}

func TestMoveMissingParentFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	os.WriteFile(src, []byte("data"), 0644)

	if err := move(src, filepath.Join(dir, "missing", "dst.jpg")); err == nil {
		t.Fatal("expected error when the destination folder is missing")
	}
	if !exists(src) {
		t.Error("source must stay when the move fails")
	}
}
