package cmd

import (
	"errors"
	"log/slog"

	"github.com/itsmostafa/snapbook/internal/collect"
	"github.com/itsmostafa/snapbook/internal/report"
	"github.com/spf13/cobra"
)

var collectOpts collect.Options

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Move a video and its screenshots into their own folder",
	Long: `Collect takes the first video (by name) in the work directory and moves it,
together with every screenshot matching <prefix>*<ext> in the screenshot
directory, into <done>/<video name>/.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := collect.Run(collectOpts, slog.Default())
		if errors.Is(err, collect.ErrNoVideo) {
			report.FormatNoVideo(cmd.OutOrStdout(), collectOpts.VideoExt)
			return nil
		}
		if err != nil {
			return err
		}
		report.FormatCollect(cmd.OutOrStdout(), res, collectOpts.DryRun)
		return nil
	},
}

func init() {
	collectCmd.Flags().StringVarP(&collectOpts.WorkDir, "dir", "C", cfg.WorkDir, "Directory holding the videos")
	collectCmd.Flags().StringVarP(&collectOpts.ScreenshotDir, "screenshots", "s", cfg.ScreenshotDir, "Directory the player saves screenshots to")
	collectCmd.Flags().StringVar(&collectOpts.Prefix, "prefix", cfg.ScreenshotPrefix, "Screenshot name prefix")
	collectCmd.Flags().StringVar(&collectOpts.ScreenshotExt, "screenshot-ext", cfg.ScreenshotExt, "Screenshot extension")
	collectCmd.Flags().StringVar(&collectOpts.VideoExt, "video-ext", cfg.VideoExt, "Video extension")
	collectCmd.Flags().StringVar(&collectOpts.DoneDir, "done", cfg.DoneDir, "Destination root, relative to --dir")
	collectCmd.Flags().BoolVarP(&collectOpts.DryRun, "dry-run", "n", false, "Report the moves without making them")

	rootCmd.AddCommand(collectCmd)
}
