package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Output formats.
const (
	FormatAuto = ""
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

type Config struct {
	// Page builder
	Root       string
	Extensions string
	Depth      int
	Output     string
	Format     string
	SkipHidden bool

	// Rendering
	JPEGQuality int
	FontSize    float64
	MaxWidth    int

	// Screenshot collection
	WorkDir          string
	ScreenshotDir    string
	ScreenshotPrefix string
	ScreenshotExt    string
	VideoExt         string
	DoneDir          string
}

func Load() Config {
	cfg := Config{
		Root:       envOr("SNAPBOOK_ROOT", "Done"),
		Extensions: envOr("SNAPBOOK_EXTENSIONS", ".jpg,.png"),
		Depth:      envInt("SNAPBOOK_DEPTH", -1),
		Output:     os.Getenv("SNAPBOOK_OUTPUT"),
		Format:     strings.ToLower(os.Getenv("SNAPBOOK_FORMAT")),
		SkipHidden: envBool("SNAPBOOK_SKIP_HIDDEN", false),

		JPEGQuality: envInt("SNAPBOOK_JPEG_QUALITY", 90),
		FontSize:    envFloat("SNAPBOOK_FONT_SIZE", 20),
		MaxWidth:    envInt("SNAPBOOK_MAX_WIDTH", 0),

		WorkDir:          envOr("SNAPBOOK_WORK_DIR", "."),
		ScreenshotDir:    envOr("SNAPBOOK_SCREENSHOT_DIR", defaultScreenshotDir()),
		ScreenshotPrefix: envOr("SNAPBOOK_SCREENSHOT_PREFIX", "vlcsnap"),
		ScreenshotExt:    envOr("SNAPBOOK_SCREENSHOT_EXT", ".jpg"),
		VideoExt:         envOr("SNAPBOOK_VIDEO_EXT", ".mp4"),
		DoneDir:          envOr("SNAPBOOK_DONE_DIR", "Done"),
	}

	if cfg.JPEGQuality <= 0 || cfg.JPEGQuality > 100 {
		cfg.JPEGQuality = 90
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 20
	}
	if cfg.MaxWidth < 0 {
		cfg.MaxWidth = 0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("SNAPBOOK_ROOT must not be empty")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %g", c.FontSize)
	}
	switch c.Format {
	case FormatAuto, FormatPDF, FormatDOCX:
	default:
		return fmt.Errorf("unknown output format %q (want pdf or docx)", c.Format)
	}
	return nil
}

// OutputFormat resolves the document format from Format or, when that is
// empty, the extension of output.
func (c Config) OutputFormat(output string) string {
	if c.Format != FormatAuto {
		return c.Format
	}
	if strings.EqualFold(filepath.Ext(output), ".docx") {
		return FormatDOCX
	}
	return FormatPDF
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Pictures"
	}
	return filepath.Join(home, "Pictures")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
