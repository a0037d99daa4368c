package cli

import (
	"github.com/spf13/cobra"
)

var sessionJSON bool

var sessionCmd = &cobra.Command{
	Use:   "session [id]",
	Short: "Show one session's full transcript",
	Long: `Retrieves a single session by identifier and prints its decrypted
transcript. Unlike search, a session that cannot be decrypted is a hard
error here.`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().BoolVar(&sessionJSON, "json", false, "output the session as JSON")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	detail, err := sessionService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return RenderSession(cmd.OutOrStdout(), detail, sessionJSON)
}
