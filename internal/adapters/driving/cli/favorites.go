package cli

import (
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites [doc-id]",
	Short: "List favorites, or toggle one document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFavorites,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent search queries",
	RunE:  runHistory,
}

var historyClear bool

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "clear the search history")
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(historyCmd)
}

func runFavorites(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		favorite, err := analyticsService.ToggleFavorite(args[0])
		if err != nil {
			return err
		}
		if favorite {
			cmd.Printf("Added %s to favorites\n", args[0])
		} else {
			cmd.Printf("Removed %s from favorites\n", args[0])
		}
		return nil
	}

	favorites := analyticsService.Favorites()
	if len(favorites) == 0 {
		cmd.Println("No favorites.")
		return nil
	}
	for _, id := range favorites {
		cmd.Println(id)
	}
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyClear {
		if err := analyticsService.ClearHistory(); err != nil {
			return err
		}
		cmd.Println("Search history cleared.")
		return nil
	}

	history := analyticsService.SearchHistory()
	if len(history) == 0 {
		cmd.Println("No searches yet.")
		return nil
	}
	for _, q := range history {
		cmd.Println(q)
	}
	return nil
}
