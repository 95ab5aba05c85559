package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	manifestfile "github.com/docdeck/docdeck-cli/internal/adapters/driven/manifest/file"
)

var flagPathsFile string

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show learning paths and their progress",
	RunE:  runPaths,
}

var pathsCompleteCmd = &cobra.Command{
	Use:   "complete [path-id] [doc-id]",
	Short: "Mark a path document as completed",
	Args:  cobra.ExactArgs(2),
	RunE:  runPathsComplete,
}

func init() {
	pathsCmd.PersistentFlags().StringVar(&flagPathsFile, "paths-file", "", "learning paths JSON (default next to the manifest)")
	pathsCmd.AddCommand(pathsCompleteCmd)
	rootCmd.AddCommand(pathsCmd)
}

// installPaths loads path definitions and merges persisted completion
// state into them.
func installPaths() error {
	pathsFile := flagPathsFile
	if pathsFile == "" && manifestSource != nil {
		pathsFile = filepath.Join(filepath.Dir(manifestSource.Path()), "learning-paths.json")
	}
	if pathsFile == "" {
		return nil
	}

	defs, err := manifestfile.LoadPaths(pathsFile)
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return nil
	}
	return analyticsService.SetLearningPaths(defs)
}

func runPaths(cmd *cobra.Command, _ []string) error {
	if err := installPaths(); err != nil {
		return err
	}

	paths := analyticsService.LearningPaths()
	if len(paths) == 0 {
		cmd.Println("No learning paths configured.")
		return nil
	}

	for _, p := range paths {
		done, total := p.Progress()
		cmd.Printf("%-20s %-30s [%s] %d/%d done, ~%d min\n",
			p.ID, p.Name, p.Difficulty, done, total, p.EstimatedTime)
		for _, docID := range p.Documents {
			mark := " "
			if _, ok := p.CompletedDocuments[docID]; ok {
				mark = "x"
			}
			cmd.Printf("  [%s] %s\n", mark, docID)
		}
	}
	return nil
}

func runPathsComplete(cmd *cobra.Command, args []string) error {
	if err := installPaths(); err != nil {
		return err
	}
	if err := analyticsService.CompletePathDocument(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Marked %s complete in %s\n", args[1], args[0])
	return nil
}
