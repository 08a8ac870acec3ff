package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goXRPLGateway/internal/journal"
)

// journalCmd represents the journal command group
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the submission journal",
	Long: `Read the journal configured in the [journal] section. A pebble journal
is locked by a running gateway; stop it first.`,
}

var journalGetCmd = &cobra.Command{
	Use:   "get <tx-id>",
	Short: "Show a recorded submission and its outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := journal.Open(cfg.Journal.Store())
		if err != nil {
			return err
		}
		defer store.Close()

		sub, err := store.Get(cmd.Context(), args[0])
		if errors.Is(err, journal.ErrNotFound) {
			return fmt.Errorf("no submission recorded for %s", args[0])
		}
		if err != nil {
			return err
		}
		return printJSON(cmd, sub)
	},
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalGetCmd)
}
