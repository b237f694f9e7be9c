package cmd

import (
	"github.com/itsmostafa/snapbook/internal/pdfdoc"
	"github.com/itsmostafa/snapbook/internal/report"
	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file.pdf>",
	Short: "Print the page count and bookmarks of a PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := pdfdoc.ReadInfo(args[0])
		if err != nil {
			return err
		}
		report.FormatOutline(cmd.OutOrStdout(), args[0], info)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
