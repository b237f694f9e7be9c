package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/itsmostafa/snapbook/internal/config"
	"github.com/itsmostafa/snapbook/internal/version"
	"github.com/spf13/cobra"
)

// cfg holds the env-derived defaults for every command's flags.
var cfg = config.Load()

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "snapbook",
	Short: "Turn folders of screenshots into a bookmarked document",
	Long: `snapbook walks a directory of nested image folders and builds one document
with a page per image. Each page is stamped with its position in its folder and
in every enclosing folder, and the document outline mirrors the folder tree.

The collect command files video screenshots into one folder per video so they
can be fed back into build.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("snapbook %s\n", version.String()))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
