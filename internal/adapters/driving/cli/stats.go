package cli

import (
	"github.com/spf13/cobra"
)

var (
	statsRecent bool
	statsLimit  int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show reading analytics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsRecent, "recent", false, "sort by last viewed instead of view count")
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 10, "maximum number of documents")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ranked := analyticsService.GetMostViewed(statsLimit)
	if statsRecent {
		ranked = analyticsService.GetRecentlyViewed(statsLimit)
	}

	if len(ranked) == 0 {
		cmd.Println("No documents viewed yet.")
		return nil
	}

	for _, r := range ranked {
		completed := " "
		if r.Record.Completed {
			completed = "x"
		}
		cmd.Printf("[%s] %-30s views=%-4d time=%-6ds last=%s\n",
			completed, r.DocumentID, r.Record.ViewCount, r.Record.TimeSpent,
			r.Record.LastViewed.Format("2006-01-02 15:04"))
	}
	return nil
}
