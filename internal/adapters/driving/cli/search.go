package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/core/services"
	"github.com/wwdckit/wwdc-cli/internal/logger"
)

var (
	searchLimit int
	searchJSON  bool
	searchDemo  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search session transcripts",
	Long: `Searches titles, excerpts and decrypted transcripts for the query.
Results are scored by title match, occurrence count, recency and topic
framing, then sorted by score.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchDemo, "demo", false, "fall back to placeholder results when real data fails")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	opts := RenderOptions{Mode: ModeUser, JSON: searchJSON, Limit: defaultLimit(searchLimit)}

	results, err := searchService.Search(cmd.Context(), query, domain.SearchOptions{Limit: opts.Limit})
	if err == nil && len(results) == 0 {
		err = fmt.Errorf("no sessions matched %q: %w", query, domain.ErrRealDataFailed)
	}
	if err != nil {
		// Placeholder output is an explicit opt-in, never a silent default.
		if !searchDemo {
			return err
		}
		logger.Warn("Real search failed (%v); rendering demo placeholders", err)
		return RenderResults(cmd.OutOrStdout(), query, services.DemoResults(query), opts)
	}

	return RenderResults(cmd.OutOrStdout(), query, results, opts)
}
