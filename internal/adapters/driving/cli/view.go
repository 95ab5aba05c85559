package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [doc-id]",
	Short: "Print a document with its breadcrumbs and record the view",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

var tocCmd = &cobra.Command{
	Use:   "toc [doc-id]",
	Short: "Print a document's table of contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runTOC,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(tocCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := catalogService.Load(ctx); err != nil {
		return err
	}

	doc, err := catalogService.Get(args[0])
	if err != nil {
		return err
	}

	crumbs := navigationService.Breadcrumbs(doc.FilePath)
	labels := make([]string, len(crumbs))
	for i, c := range crumbs {
		labels[i] = c.Label
	}
	cmd.Println(strings.Join(labels, " > "))
	cmd.Println()
	cmd.Println(contentService.Load(ctx, doc.FilePath))

	if analyticsService != nil {
		if err := analyticsService.TrackView(doc.ID); err != nil {
			return fmt.Errorf("recording view: %w", err)
		}
	}
	return nil
}

func runTOC(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	if err := catalogService.Load(ctx); err != nil {
		return err
	}

	doc, err := catalogService.Get(args[0])
	if err != nil {
		return err
	}

	content := contentService.Load(ctx, doc.FilePath)
	for _, entry := range navigationService.TableOfContents(content) {
		cmd.Printf("%s%s (#%s)\n", strings.Repeat("  ", entry.Level-1), entry.Title, entry.ID)
	}
	return nil
}
