package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wwdckit/wwdc-cli/internal/adapters/driven/storage/sqlite"
	"github.com/wwdckit/wwdc-cli/internal/bundle"
	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

var (
	buildInput  string
	buildDB     string
	buildOutput string
	buildKeyHex string
)

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Build and inspect session bundles",
}

var bundleBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an encrypted bundle from plaintext sessions",
	Long: `Runs the offline build pipeline: obfuscates titles, encrypts
transcripts under the shared key, computes checksums, builds the inverted
index, and writes the compressed archive.

Input is either a JSON file of sessions or a plaintext database:

  wwdc bundle build --input sessions.json --output wwdc_bundle.encrypted
  wwdc bundle build --db wwdc.db --output wwdc_bundle.encrypted

The key comes from --key, $` + bundle.KeyEnvVar + `, or the build-time
embedded value, and must be 64 hex characters (32 bytes).`,
	RunE: runBundleBuild,
}

var bundleInfoCmd = &cobra.Command{
	Use:   "info [path]",
	Short: "Show a bundle's metadata without decrypting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runBundleInfo,
}

func init() {
	bundleBuildCmd.Flags().StringVar(&buildInput, "input", "", "JSON file of plaintext sessions")
	bundleBuildCmd.Flags().StringVar(&buildDB, "db", "", "plaintext SQLite database of sessions")
	bundleBuildCmd.Flags().StringVar(&buildOutput, "output", bundle.BundleFileName, "output archive path")
	bundleBuildCmd.Flags().StringVar(&buildKeyHex, "key", "", "bundle key as 64 hex characters")
	bundleCmd.AddCommand(bundleBuildCmd)
	bundleCmd.AddCommand(bundleInfoCmd)
	rootCmd.AddCommand(bundleCmd)
}

func runBundleBuild(cmd *cobra.Command, _ []string) error {
	sessions, err := readBuildSessions(cmd)
	if err != nil {
		return err
	}

	key, err := buildKey()
	if err != nil {
		return err
	}

	archive, err := bundle.Build(sessions, bundle.BuildIndex(sessions), key)
	if err != nil {
		return err
	}

	data, err := bundle.Encode(archive)
	if err != nil {
		return err
	}

	if err := os.WriteFile(buildOutput, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", buildOutput, err)
	}

	cmd.Printf("Wrote %s: %d records, %d bytes\n", buildOutput, len(archive.Records), len(data))
	return nil
}

// buildKey resolves the key for a build. Building without a key is a hard
// failure: a bundle must never be emitted under a placeholder.
func buildKey() ([]byte, error) {
	if buildKeyHex != "" {
		return bundle.ParseKey(buildKeyHex)
	}
	key, err := bundle.ResolveKey()
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, fmt.Errorf("no bundle key: pass --key or set $%s: %w",
			bundle.KeyEnvVar, domain.ErrInvalidInput)
	}
	return key, nil
}

func readBuildSessions(cmd *cobra.Command) ([]domain.Session, error) {
	switch {
	case buildInput != "" && buildDB != "":
		return nil, fmt.Errorf("--input and --db are mutually exclusive: %w", domain.ErrInvalidInput)

	case buildInput != "":
		data, err := os.ReadFile(buildInput)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", buildInput, err)
		}
		var sessions []domain.Session
		if err := json.Unmarshal(data, &sessions); err != nil {
			return nil, fmt.Errorf("parsing %s: %v: %w", buildInput, err, domain.ErrInvalidDataFormat)
		}
		return sessions, nil

	case buildDB != "":
		store, err := sqlite.Open(buildDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Sessions(cmd.Context())

	default:
		return nil, fmt.Errorf("one of --input or --db is required: %w", domain.ErrInvalidInput)
	}
}

func runBundleInfo(cmd *cobra.Command, args []string) error {
	archive, err := bundle.NewLoader().Load(args[0])
	if err != nil {
		return err
	}

	m := archive.Metadata
	cmd.Printf("Format version: %d\n", archive.FormatVersion)
	cmd.Printf("Records:        %d\n", len(archive.Records))
	cmd.Printf("Years:          %d-%d\n", m.YearMin, m.YearMax)
	cmd.Printf("Index terms:    %d\n", len(archive.SearchIndex))
	if !m.BuiltAt.IsZero() {
		cmd.Printf("Built:          %s\n", m.BuiltAt.Format("2006-01-02 15:04 MST"))
	}
	return nil
}
