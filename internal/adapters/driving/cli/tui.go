package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	configfile "github.com/docdeck/docdeck-cli/internal/adapters/driven/config/file"
	manifestfile "github.com/docdeck/docdeck-cli/internal/adapters/driven/manifest/file"
	"github.com/docdeck/docdeck-cli/internal/adapters/driving/tui"
)

var tuiWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive search browser",
	Long: `Opens the interactive browser. Queries are debounced while you
type; with --watch the index is rebuilt whenever the manifest file
changes on disk.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&tuiWatch, "watch", false, "rebuild the index when the manifest changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := buildIndex(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	var opts []tui.Option
	opts = append(opts, tui.WithRebuild(func() error {
		return buildIndex(context.Background())
	}))
	if configStore != nil {
		if ms := configStore.GetInt(configfile.KeyDebounceMS); ms > 0 {
			opts = append(opts, tui.WithDebounce(time.Duration(ms)*time.Millisecond))
		}
	}

	model := tui.New(searchService, analyticsService, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if tuiWatch && manifestSource != nil {
		watcher, err := manifestfile.NewWatcher(manifestSource.Path(), func() {
			program.Send(tui.ManifestChanged{})
		})
		if err != nil {
			return fmt.Errorf("watching manifest: %w", err)
		}
		defer watcher.Close()
	}

	_, err := program.Run()
	return err
}
