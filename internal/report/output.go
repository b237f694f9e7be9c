// Package report renders command results for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/snapbook/internal/collect"
	"github.com/itsmostafa/snapbook/internal/dirtree"
	"github.com/itsmostafa/snapbook/internal/pdfdoc"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for non-fatal notices
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// headerBoxStyle for the header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("160")).
			Padding(0, 1)

	// folderStyle for folder names in trees
	folderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)
)

// BuildHeader describes a build before it starts.
type BuildHeader struct {
	Root     string
	Output   string
	Format   string
	Suffixes dirtree.Suffixes
	Depth    int
}

// FormatBuildHeader renders the build header with configuration info
func FormatBuildHeader(w io.Writer, h BuildHeader) {
	depth := "unlimited"
	if h.Depth >= 0 {
		depth = fmt.Sprint(h.Depth)
	}
	ext := h.Suffixes.String()
	if ext == "" {
		ext = "any"
	}

	content := fmt.Sprintf("%s %s  %s %s\n%s %s\n%s %s  %s %s",
		dimStyle.Render("Root:"), titleStyle.Render(h.Root),
		dimStyle.Render("Format:"), titleStyle.Render(h.Format),
		dimStyle.Render("Output:"), h.Output,
		dimStyle.Render("Extensions:"), ext,
		dimStyle.Render("Depth:"), depth,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// BuildSummary describes a finished build.
type BuildSummary struct {
	Output    string
	Pages     int
	Bookmarks int
	Bytes     int64
	Duration  time.Duration
}

// FormatBuildSummary renders the build summary box
func FormatBuildSummary(w io.Writer, s BuildSummary) {
	line1 := fmt.Sprintf("%s %s  %s %s",
		dimStyle.Render("Pages:"), formatNumber(s.Pages),
		dimStyle.Render("Bookmarks:"), formatNumber(s.Bookmarks),
	)
	line2 := fmt.Sprintf("%s %s  %s %.1fs  %s",
		dimStyle.Render("Size:"), formatBytes(s.Bytes),
		dimStyle.Render("Duration:"), s.Duration.Seconds(),
		successStyle.Render("OK"),
	)

	content := titleStyle.Render("Saved "+s.Output) + "\n" + line1 + "\n" + line2
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatProgress writes a single page progress line
func FormatProgress(w io.Writer, done, total int, path string) {
	counter := dimStyle.Render(fmt.Sprintf("[%d/%d]", done, total))
	fmt.Fprintf(w, "%s %s\n", counter, path)
}

// FormatNoImages renders the notice for a tree without matching images
func FormatNoImages(w io.Writer, root string) {
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("No images found in %s", root)))
}

// FormatTree renders the folder tree followed by its totals
func FormatTree(w io.Writer, root *dirtree.Node, suffixes dirtree.Suffixes) {
	var b strings.Builder
	writeTree(&b, root, suffixes, 0)
	fmt.Fprint(w, b.String())

	content := fmt.Sprintf("%s %s  %s %s  %s %s  %s %d",
		dimStyle.Render("Files:"), formatNumber(root.CountFiles(-1, nil)),
		dimStyle.Render("Matching:"), formatNumber(root.CountFiles(-1, suffixes)),
		dimStyle.Render("Folders:"), formatNumber(root.CountFolders(-1)),
		dimStyle.Render("Depth:"), root.Depth(),
	)
	fmt.Fprintln(w, boxStyle.Render(content))
}

func writeTree(b *strings.Builder, folder *dirtree.Node, suffixes dirtree.Suffixes, indent int) {
	pad := strings.Repeat("  ", indent)
	count := folder.CountFiles(-1, suffixes)
	fmt.Fprintf(b, "%s%s %s\n", pad, folderStyle.Render(folder.Name()+"/"), dimStyle.Render(fmt.Sprintf("(%d)", count)))

	for sub := range folder.Folders() {
		writeTree(b, sub, suffixes, indent+1)
	}
	for f := range folder.Files() {
		name := f.Name()
		if !suffixes.Match(name) {
			name = dimStyle.Render(name)
		}
		fmt.Fprintf(b, "%s  %s\n", pad, name)
	}
}

// FormatOutline renders a document's page count and bookmark tree
func FormatOutline(w io.Writer, path string, info pdfdoc.Info) {
	fmt.Fprintf(w, "%s %s  %s %s\n",
		dimStyle.Render("File:"), titleStyle.Render(path),
		dimStyle.Render("Pages:"), formatNumber(info.Pages),
	)
	if len(info.Outline) == 0 {
		fmt.Fprintln(w, dimStyle.Render("(no outline)"))
		return
	}
	var b strings.Builder
	writeOutline(&b, info.Outline, 0)
	fmt.Fprint(w, b.String())
}

func writeOutline(b *strings.Builder, entries []pdfdoc.Entry, indent int) {
	for _, e := range entries {
		fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", indent), e.Title)
		writeOutline(b, e.Children, indent+1)
	}
}

// FormatCollect renders the moves made, or planned in dry-run mode
func FormatCollect(w io.Writer, res *collect.Result, dryRun bool) {
	verb := successStyle.Render("moved")
	if dryRun {
		verb = warnStyle.Render("would move")
	}
	for _, m := range res.Moves {
		fmt.Fprintf(w, "%s %s %s %s\n", verb, m.From, dimStyle.Render("->"), m.To)
	}

	content := fmt.Sprintf("%s %s\n%s %s  %s %d",
		dimStyle.Render("Video:"), titleStyle.Render(res.Video),
		dimStyle.Render("Folder:"), res.Folder,
		dimStyle.Render("Files:"), len(res.Moves),
	)
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatNoVideo renders the notice for a work dir without videos
func FormatNoVideo(w io.Writer, ext string) {
	fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("No video found with extension %s", ext)))
}

// formatNumber adds commas to large numbers for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
