package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bliss/internal/cli"
	"github.com/theirongolddev/bliss/internal/store"
)

var (
	flagJournalSession  string
	flagJournalSessions bool
)

var journalCmd = &cobra.Command{
	Use:   "journal [FILE]",
	Short: "List entries of an exported journal",
	Long: "Reads a journal file written with --journal. Without FILE the --journal\n" +
		"flag or the journal.path config value is used.",
	Args: cobra.MaximumNArgs(1),
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().StringVar(&flagJournalSession, "session", "", "Only show entries of this session ID")
	journalCmd.Flags().BoolVar(&flagJournalSessions, "sessions", false, "List session IDs instead of entries")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.close()

	path := rt.exportPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no journal file: pass FILE or --journal")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}

	j, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer func() { _ = j.Close() }()

	if flagJournalSessions {
		ids, err := j.Sessions(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	entries, err := j.Entries(cmd.Context(), flagJournalSession)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(cli.RenderJournal(entries))
	fmt.Println()
	return nil
}
