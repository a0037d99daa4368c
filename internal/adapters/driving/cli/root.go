package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wwdckit/wwdc-cli/internal/adapters/driven/config/file"
	"github.com/wwdckit/wwdc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/wwdckit/wwdc-cli/internal/bundle"
	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driven"
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driving"
	"github.com/wwdckit/wwdc-cli/internal/core/services"
	"github.com/wwdckit/wwdc-cli/internal/logger"
)

var version = "1.2.0"

var (
	verbose        bool
	quickLimit     int
	quickVerbosity string
	quickJSON      bool
)

// Services and infrastructure shared by the commands. Populated lazily by
// ensureServices, after the locator check passed.
var (
	locator        = bundle.NewLocator()
	configStore    *file.ConfigStore
	searchService  driving.SearchService
	sessionService driving.SessionService
	statsService   driving.StatsService
)

var rootCmd = &cobra.Command{
	Use:   "wwdc [query]",
	Short: "Offline full-text search over WWDC session transcripts",
	Long: `wwdc searches a locally installed, encrypted archive of WWDC session
transcripts. With a query argument it runs a search directly:

  wwdc shareplay --limit 5 --verbosity detailed

Everything happens offline against the bundled archive; no network access
is performed.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runQuickSearch,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging to stderr")
	rootCmd.Flags().IntVarP(&quickLimit, "limit", "n", 0, "maximum number of results")
	rootCmd.Flags().StringVar(&quickVerbosity, "verbosity", "compact", "output verbosity: compact, detailed or full")
	rootCmd.Flags().BoolVar(&quickJSON, "json", false, "output results as JSON")
}

// Execute runs the CLI and exits the process with the mapped status code.
func Execute() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// ensureServices locates the archive and wires the services over it.
// The locator check runs before any other work: when nothing is found the
// process prints remediation guidance and exits with the reserved status,
// producing no partial output.
func ensureServices(ctx context.Context) error {
	if searchService != nil {
		return nil
	}

	cand, ok := locator.Locate()
	if !ok {
		fmt.Fprint(os.Stderr, locator.MissingMessage())
		os.Exit(bundle.ExitMissingBundle)
	}

	var (
		archive   *domain.Archive
		decrypter driven.ContentDecrypter
		err       error
	)

	if cand.Plain {
		store, err := sqlite.Open(cand.Path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", cand.Path, err)
		}
		defer store.Close()

		archive, err = store.LoadArchive(ctx)
		if err != nil {
			return err
		}
		decrypter = bundle.PlainDecrypter{}
		logger.Info("Using plaintext development database at %s", cand.Path)
	} else {
		archive, err = bundle.NewLoader().Load(cand.Path)
		if err != nil {
			return err
		}

		key, err := bundle.ResolveKey()
		if err != nil {
			return err
		}
		if key == nil {
			logger.Warn("No bundle key configured; content-based matching is unavailable")
			decrypter = bundle.NoKeyDecrypter{}
		} else {
			decrypter, err = bundle.NewGCMDecrypter(key)
			if err != nil {
				return err
			}
		}
	}

	var synonyms driven.SynonymProvider
	if cs, cerr := file.NewConfigStore(""); cerr == nil {
		configStore = cs
		synonyms = file.LoadSynonymTable(cs)
	} else {
		logger.Warn("Config unavailable (%v); using built-in synonyms", cerr)
		synonyms = file.NewSynonymTable()
	}

	searchService = services.NewSearchService(archive, decrypter, synonyms)
	sessionService = services.NewSessionService(archive, decrypter)
	statsService = services.NewStatsService(archive)
	return nil
}

// defaultLimit resolves the result limit from the flag, then config,
// then the built-in default.
func defaultLimit(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if configStore != nil {
		if v := configStore.GetInt("search.limit"); v > 0 {
			return v
		}
	}
	return 10
}

func runQuickSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	query := strings.Join(args, " ")

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	verbosity := quickVerbosity
	if !cmd.Flags().Changed("verbosity") && configStore != nil {
		if v := configStore.GetString("search.verbosity"); v != "" {
			verbosity = v
		}
	}

	opts, err := renderOptions(verbosity, quickJSON)
	if err != nil {
		return err
	}
	opts.Limit = defaultLimit(quickLimit)

	results, err := searchService.Search(cmd.Context(), query, domain.SearchOptions{Limit: opts.Limit})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no sessions matched %q: %w", query, domain.ErrRealDataFailed)
	}

	return RenderResults(cmd.OutOrStdout(), query, results, opts)
}

// renderOptions maps a verbosity name onto renderer options.
func renderOptions(verbosity string, asJSON bool) (RenderOptions, error) {
	opts := RenderOptions{JSON: asJSON}
	switch verbosity {
	case "compact":
		opts.Mode = ModeUser
	case "detailed":
		opts.Mode = ModeUser
		opts.WithSegments = true
	case "full":
		opts.Mode = ModeAgent
	default:
		return opts, fmt.Errorf("unknown verbosity %q (want compact, detailed or full): %w",
			verbosity, domain.ErrInvalidInput)
	}
	return opts, nil
}
