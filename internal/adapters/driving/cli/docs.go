package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docdeck/docdeck-cli/internal/core/ports/driving"
)

var (
	docsQuery      string
	docsCategories []string
	docsTags       []string
	docsLimit      int
	docsJSON       bool
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List and filter the document catalog",
	RunE:  runDocs,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List all categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := catalogService.Load(context.Background()); err != nil {
			return err
		}
		for _, c := range catalogService.UniqueCategories() {
			cmd.Println(c)
		}
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := catalogService.Load(context.Background()); err != nil {
			return err
		}
		for _, t := range catalogService.UniqueTags() {
			cmd.Println(t)
		}
		return nil
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsQuery, "query", "q", "", "substring filter across title, description, category and tags")
	docsCmd.Flags().StringSliceVar(&docsCategories, "category", nil, "only documents in one of these categories")
	docsCmd.Flags().StringSliceVar(&docsTags, "tag", nil, "only documents with one of these tags")
	docsCmd.Flags().IntVarP(&docsLimit, "limit", "n", 0, "maximum number of documents")
	docsCmd.Flags().BoolVar(&docsJSON, "json", false, "output as JSON")
	docsCmd.AddCommand(categoriesCmd)
	docsCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, _ []string) error {
	if err := catalogService.Load(context.Background()); err != nil {
		return err
	}

	docs := catalogService.Filter(driving.FilterOptions{
		Query:      docsQuery,
		Categories: docsCategories,
		Tags:       docsTags,
		Limit:      docsLimit,
	})

	if docsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for _, doc := range docs {
		cmd.Printf("%-30s %-25s %s\n", doc.ID, doc.Category, doc.Title)
	}
	cmd.Printf("\n%d document(s)\n", len(docs))
	return nil
}
