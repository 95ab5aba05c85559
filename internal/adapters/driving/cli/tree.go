package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

var treeFlat bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the category tree derived from the catalog",
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().BoolVar(&treeFlat, "flat", false, "print the flattened pre-order listing")
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, _ []string) error {
	if err := catalogService.Load(context.Background()); err != nil {
		return err
	}

	roots := navigationService.BuildTree(catalogService.Documents())

	if treeFlat {
		for _, node := range navigationService.Flatten(roots) {
			cmd.Printf("%s%s [%s]\n", strings.Repeat("  ", node.Level), node.Label, node.Type)
		}
		return nil
	}

	var print func(node *domain.TreeNode)
	print = func(node *domain.TreeNode) {
		marker := "+"
		if node.Type == domain.NodeFile {
			marker = "-"
		}
		cmd.Printf("%s%s %s\n", strings.Repeat("  ", node.Level), marker, node.Label)
		for _, child := range node.Children {
			print(child)
		}
	}
	for _, root := range roots {
		print(root)
	}
	return nil
}
