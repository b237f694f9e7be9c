package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/itsmostafa/snapbook/internal/assemble"
	"github.com/itsmostafa/snapbook/internal/config"
	"github.com/itsmostafa/snapbook/internal/dirtree"
	"github.com/itsmostafa/snapbook/internal/docxdoc"
	"github.com/itsmostafa/snapbook/internal/pdfdoc"
	"github.com/itsmostafa/snapbook/internal/render"
	"github.com/itsmostafa/snapbook/internal/report"
	"github.com/spf13/cobra"
)

var buildExt string
var buildDepth int
var buildQuality int
var buildFontSize float64
var buildMaxWidth int
var buildFormat string
var buildOutput string
var buildSkipHidden bool
var buildQuiet bool

var buildCmd = &cobra.Command{
	Use:   "build [root]",
	Short: "Build a document with one page per image",
	Long: `Build walks root (default: $SNAPBOOK_ROOT or ./Done) and writes a PDF or DOCX
with one page per matching image, stamped with its folder progress, and an
outline that mirrors the folder tree.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if len(args) == 1 {
			c.Root = args[0]
		}
		c.Extensions = buildExt
		c.Depth = buildDepth
		c.JPEGQuality = buildQuality
		c.FontSize = buildFontSize
		c.MaxWidth = buildMaxWidth
		c.Format = buildFormat
		c.Output = buildOutput
		c.SkipHidden = buildSkipHidden
		if err := c.Validate(); err != nil {
			return err
		}

		var progress io.Writer
		if !buildQuiet {
			progress = cmd.ErrOrStderr()
		}
		_, err := buildBook(cmd.Context(), c, cmd.OutOrStdout(), progress, slog.Default())
		return err
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildExt, "ext", "e", cfg.Extensions, "Comma-separated image extensions to include (empty = all files)")
	buildCmd.Flags().IntVarP(&buildDepth, "depth", "d", cfg.Depth, "Folder levels to descend (-1 = unlimited)")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", cfg.JPEGQuality, "JPEG quality of rendered pages (1-100)")
	buildCmd.Flags().Float64Var(&buildFontSize, "font-size", cfg.FontSize, "Overlay font size in points")
	buildCmd.Flags().IntVar(&buildMaxWidth, "max-width", cfg.MaxWidth, "Downscale wider images to this width (0 = keep size)")
	buildCmd.Flags().StringVarP(&buildFormat, "format", "f", cfg.Format, "Output format (pdf, docx); inferred from --output when empty")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", cfg.Output, "Output file (default output-<timestamp>.<format>)")
	buildCmd.Flags().BoolVar(&buildSkipHidden, "skip-hidden", cfg.SkipHidden, "Leave out subfolders of root whose name starts with a dot")
	buildCmd.Flags().BoolVar(&buildQuiet, "quiet", false, "Do not print per-page progress")

	rootCmd.AddCommand(buildCmd)
}

// buildBook runs a full build for c and returns the written path, or "" when
// the tree holds no matching image.
func buildBook(ctx context.Context, c config.Config, out, progress io.Writer, log *slog.Logger) (string, error) {
	start := time.Now()
	suffixes := dirtree.ParseSuffixes(c.Extensions)

	var filter dirtree.FolderFilter
	if c.SkipHidden {
		filter = dirtree.SkipHidden
	}
	tree, err := dirtree.Build(c.Root, c.Depth, filter)
	if err != nil {
		return "", err
	}

	plan := assemble.NewPlan(tree, suffixes)
	if plan.Len() == 0 {
		report.FormatNoImages(out, c.Root)
		return "", nil
	}

	output := c.Output
	format := c.OutputFormat(output)
	if output == "" {
		output = fmt.Sprintf("output-%s.%s", start.Format("20060102150405"), format)
	}

	report.FormatBuildHeader(out, report.BuildHeader{
		Root:     c.Root,
		Output:   output,
		Format:   format,
		Suffixes: suffixes,
		Depth:    c.Depth,
	})
	log.Info("plan ready", "root", c.Root, "pages", plan.Len(), "bookmarks", len(plan.Bookmarks))

	renderer, err := render.New(os.DirFS(c.Root))
	if err != nil {
		return "", err
	}
	renderer.Quality = c.JPEGQuality
	renderer.MaxWidth = c.MaxWidth
	if c.FontSize != render.DefaultFontSize {
		if renderer.Face, err = render.NewFace(c.FontSize); err != nil {
			return "", err
		}
	}

	var doc assemble.Document
	switch format {
	case config.FormatDOCX:
		doc = docxdoc.NewWriter()
	default:
		doc = pdfdoc.NewWriter(tree.Name())
	}

	asm := &assemble.Assembler{
		Renderer: renderer,
		Document: doc,
		Logger:   log,
	}
	if progress != nil {
		asm.Progress = func(done, total int, page assemble.Page) {
			report.FormatProgress(progress, done, total, page.Path)
		}
	}
	if err := asm.Run(ctx, plan); err != nil {
		return "", err
	}

	n, err := writeFile(output, doc)
	if err != nil {
		return "", err
	}

	report.FormatBuildSummary(out, report.BuildSummary{
		Output:    output,
		Pages:     plan.Len(),
		Bookmarks: len(plan.Bookmarks),
		Bytes:     n,
		Duration:  time.Since(start),
	})
	return output, nil
}

// writeFile writes doc to a temp file next to path and renames it into place.
func writeFile(path string, doc io.WriterTo) (int64, error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".snapbook-*")
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	tmp := f.Name()

	n, err := doc.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return n, nil
}
