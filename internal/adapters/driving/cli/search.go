package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/docdeck/docdeck-cli/internal/adapters/driven/config/file"
	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy-search the indexed documents",
	Long: `Builds the search index from the manifest and runs a fuzzy
full-text query over the content chunks. Results are ranked best
first; a score of 0 is an exact match.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	if err := buildIndex(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	limit := searchLimit
	if limit <= 0 && configStore != nil {
		limit = configStore.GetInt(configfile.KeySearchLimit)
	}

	results, err := searchService.Search(ctx, query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if analyticsService != nil {
		if err := analyticsService.AddSearch(query); err != nil {
			return fmt.Errorf("recording search: %w", err)
		}
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results.")
		return nil
	}

	width := terminalWidth()
	for i, r := range results {
		cmd.Printf("%2d. %s (chunk %d, score %.3f)\n", i+1, r.DocumentTitle, r.ChunkIndex, r.Score)
		cmd.Printf("    %s\n", snippet(r, width-4))
	}
	return nil
}

// terminalWidth reports the current terminal width, defaulting to 80
// when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// snippet renders a one-line excerpt around the first match.
func snippet(r domain.SearchResult, width int) string {
	if width < 20 {
		width = 20
	}

	content := r.Content
	start := 0
	if len(r.Matches) > 0 {
		start = r.Matches[0].Start - width/4
		if start < 0 {
			start = 0
		}
	}
	end := start + width
	if end > len(content) {
		end = len(content)
	}

	s := strings.ReplaceAll(content[start:end], "\n", " ")
	if start > 0 {
		s = "..." + s
	}
	if end < len(content) {
		s += "..."
	}
	return s
}
