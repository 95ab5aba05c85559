// Package cli implements the cobra command-line interface. Commands
// are thin: they wire adapters into core services and format output.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/docdeck/docdeck-cli/internal/adapters/driven/config/file"
	"github.com/docdeck/docdeck-cli/internal/adapters/driven/content/httpfetch"
	"github.com/docdeck/docdeck-cli/internal/adapters/driven/content/local"
	manifestfile "github.com/docdeck/docdeck-cli/internal/adapters/driven/manifest/file"
	"github.com/docdeck/docdeck-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docdeck/docdeck-cli/internal/chunker"
	"github.com/docdeck/docdeck-cli/internal/core/domain"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driving"
	"github.com/docdeck/docdeck-cli/internal/core/services"
	"github.com/docdeck/docdeck-cli/internal/logger"
)

// Services wired by initServices and consumed by the commands.
// Tests inject fakes directly instead of calling initServices.
var (
	catalogService    driving.CatalogService
	contentService    driving.ContentService
	searchService     driving.SearchService
	navigationService driving.NavigationService
	analyticsService  driving.AnalyticsService
	configStore       driven.ConfigStore
	stateStore        driven.StateStore

	manifestSource *manifestfile.Source
)

var version = "dev"

// Persistent flags.
var (
	flagVerbose   bool
	flagConfigDir string
	flagDataDir   string
	flagManifest  string
	flagDocsDir   string
	flagBaseURL   string
)

var rootCmd = &cobra.Command{
	Use:   "docdeck",
	Short: "Browse, search and track a local markdown documentation set",
	Long: `Docdeck indexes a manifest of markdown documents, answers fuzzy
full-text queries over them, derives a category tree for navigation,
and keeps per-profile reading analytics across sessions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if stateStore != nil {
			stateStore.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.docdeck)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "state database directory (default ~/.docdeck/data)")
	rootCmd.PersistentFlags().StringVar(&flagManifest, "manifest", "", "path to the document manifest JSON")
	rootCmd.PersistentFlags().StringVar(&flagDocsDir, "docs-dir", "", "directory holding the markdown files")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "fetch content over HTTP from this base URL")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// initServices builds the full adapter and service graph. Flags win
// over config file values, which win over defaults.
func initServices() error {
	if catalogService != nil {
		// Already wired (tests).
		return nil
	}

	cfg, err := configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg

	manifestPath := firstNonEmpty(flagManifest, cfg.GetString(configfile.KeyManifestPath), "docs/manifest.json")
	docsDir := firstNonEmpty(flagDocsDir, cfg.GetString(configfile.KeyDocsDir), filepath.Dir(manifestPath))
	baseURL := firstNonEmpty(flagBaseURL, cfg.GetString(configfile.KeyBaseURL))

	manifestSource = manifestfile.NewSource(manifestPath)
	catalog := services.NewCatalogService(manifestSource)
	catalogService = catalog

	var fetcher driven.ContentFetcher
	if baseURL != "" {
		fetcher = httpfetch.New(baseURL)
	} else {
		fetcher = local.New(docsDir)
	}
	contentService = services.NewContentService(fetcher)

	searchService = services.NewSearchService(catalog)
	navigationService = services.NewNavigationService()

	store, err := sqlite.NewStore(firstNonEmpty(flagDataDir, cfg.GetString(configfile.KeyDataDir)))
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	stateStore = store

	analytics, err := services.NewAnalyticsService(store)
	if err != nil {
		return fmt.Errorf("loading analytics: %w", err)
	}
	analyticsService = analytics

	return nil
}

// buildIndex loads the catalog, fetches every document body and
// rebuilds the search index wholesale.
func buildIndex(ctx context.Context) error {
	if err := catalogService.Load(ctx); err != nil {
		return err
	}

	size := 0
	if configStore != nil {
		size = configStore.GetInt(configfile.KeyChunkSize)
	}
	split := chunker.New(chunker.WithChunkSize(size))

	var chunks []domain.ContentChunk
	for _, doc := range catalogService.Documents() {
		content := contentService.Load(ctx, doc.FilePath)
		chunks = append(chunks, split.Split(doc.ID, content)...)
	}

	searchService.Build(chunks)
	return nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
