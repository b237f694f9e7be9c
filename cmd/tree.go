package cmd

import (
	"github.com/itsmostafa/snapbook/internal/dirtree"
	"github.com/itsmostafa/snapbook/internal/report"
	"github.com/spf13/cobra"
)

var treeExt string
var treeDepth int
var treeSkipHidden bool

var treeCmd = &cobra.Command{
	Use:   "tree [root]",
	Short: "Print the folder tree and image totals",
	Long:  `Print the folders and files under root with per-folder counts of matching images.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cfg.Root
		if len(args) == 1 {
			root = args[0]
		}

		var filter dirtree.FolderFilter
		if treeSkipHidden {
			filter = dirtree.SkipHidden
		}
		tree, err := dirtree.Build(root, treeDepth, filter)
		if err != nil {
			return err
		}

		report.FormatTree(cmd.OutOrStdout(), tree, dirtree.ParseSuffixes(treeExt))
		return nil
	},
}

func init() {
	treeCmd.Flags().StringVarP(&treeExt, "ext", "e", cfg.Extensions, "Comma-separated image extensions to count (empty = all files)")
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", cfg.Depth, "Folder levels to descend (-1 = unlimited)")
	treeCmd.Flags().BoolVar(&treeSkipHidden, "skip-hidden", cfg.SkipHidden, "Leave out subfolders of root whose name starts with a dot")

	rootCmd.AddCommand(treeCmd)
}
