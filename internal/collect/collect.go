// Package collect files video screenshots next to their video, one folder
// per video, so the result can be fed to the page builder.
package collect

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/otiai10/copy"
)

// ErrNoVideo is returned when the work directory holds no video to file.
var ErrNoVideo = errors.New("no video found")

// Options configures a collection run.
type Options struct {
	WorkDir       string // directory holding the videos
	ScreenshotDir string // directory the player saves screenshots to
	Prefix        string // screenshot name prefix, e.g. "vlcsnap"
	ScreenshotExt string // e.g. ".jpg"
	VideoExt      string // e.g. ".mp4"
	DoneDir       string // destination root, relative to WorkDir unless absolute
	DryRun        bool
}

// Move is one planned or completed relocation.
type Move struct {
	From string
	To   string
}

// Result describes what a run did, or would do in dry-run mode.
type Result struct {
	Video  string // video file name
	Folder string // destination folder
	Moves  []Move
}

// Run moves the first video (by name) in WorkDir and every matching
// screenshot into DoneDir/<video name without extension>/.
func Run(opts Options, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	video, err := firstVideo(opts.WorkDir, opts.VideoExt)
	if err != nil {
		return nil, err
	}

	doneDir := opts.DoneDir
	if !filepath.IsAbs(doneDir) {
		doneDir = filepath.Join(opts.WorkDir, doneDir)
	}
	name := filepath.Base(video)
	folder := filepath.Join(doneDir, strings.TrimSuffix(name, filepath.Ext(name)))

	shots, err := filepath.Glob(filepath.Join(opts.ScreenshotDir, opts.Prefix+"*"+opts.ScreenshotExt))
	if err != nil {
		return nil, fmt.Errorf("find screenshots: %w", err)
	}
	sort.Strings(shots)

	res := &Result{Video: name, Folder: folder}
	for _, src := range append([]string{video}, shots...) {
		res.Moves = append(res.Moves, Move{From: src, To: filepath.Join(folder, filepath.Base(src))})
	}

	for _, m := range res.Moves {
		if _, err := os.Lstat(m.To); err == nil {
			return nil, fmt.Errorf("destination already exists: %s", m.To)
		}
	}

	if opts.DryRun {
		log.Info("dry run", "video", name, "folder", folder, "moves", len(res.Moves))
		return res, nil
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, fmt.Errorf("create folder %s: %w", folder, err)
	}
	for _, m := range res.Moves {
		if err := move(m.From, m.To); err != nil {
			return nil, fmt.Errorf("move %s: %w", m.From, err)
		}
		log.Debug("moved", "from", m.From, "to", m.To)
	}
	return res, nil
}

func firstVideo(dir, ext string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return "", fmt.Errorf("find videos: %w", err)
	}
	var videos []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			videos = append(videos, m)
		}
	}
	if len(videos) == 0 {
		return "", fmt.Errorf("%w with extension %s in %s", ErrNoVideo, ext, dir)
	}
	sort.Strings(videos)
	return videos[0], nil
}

// rename is os.Rename, replaceable in tests.
var rename = os.Rename

// move renames src to dst, falling back to copy and delete when the two
// live on different devices. Other rename errors are returned as is.
func move(src, dst string) error {
	err := rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copy.Copy(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}
