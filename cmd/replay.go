package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/log"
	"github.com/theirongolddev/bliss/internal/replay"
)

var flagReplayStrict bool

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Dispatch a JSONL action script and print the result",
	Long: "Each line of FILE is one action, for example:\n\n" +
		`  {"action":"set_budget","amount":"1000"}` + "\n" +
		`  {"action":"add_category","category":"Food"}` + "\n" +
		`  {"action":"expense","category":"Food","amount":"300"}` + "\n\n" +
		"Blank lines and lines starting with # are skipped. The session starts from\n" +
		"--budget and --categories (or the config defaults).",
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayStrict, "strict", false, "Exit non-zero if any line is malformed or rejected")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.close()

	logger := rt.logger.WithComponent(log.ComponentReplay)

	parsed, err := replay.ParseFile(args[0])
	if err != nil {
		return err
	}
	for _, le := range parsed.Errors {
		logger.Warn("skipping line", log.FieldPath, args[0], log.FieldLine, le.Line, log.FieldError, le.Err.Error())
	}

	sess, err := rt.newSession()
	if err != nil {
		return err
	}

	report, err := replay.Run(cmd.Context(), sess, parsed.Steps)
	if err != nil {
		return err
	}

	printReport(sess, "")

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d applied, %d rejected, %d malformed lines\n",
			report.Applied, len(report.Rejected), parsed.ParseErrors)
		for _, r := range report.Rejected {
			cat, amt := budget.Describe(r.Step.Action)
			fmt.Fprintf(os.Stderr, "  line %d: %s %s %s: %v\n",
				r.Step.Line, r.Step.Action.Kind(), cat, amt, r.Err)
		}
		if report.HasStatus {
			fmt.Fprintf(os.Stderr, "  Status after the last expense: %s\n", report.LastStatus)
		}
	}

	if err := rt.exportJournal(cmd.Context()); err != nil {
		return err
	}

	if flagReplayStrict && (parsed.ParseErrors > 0 || len(report.Rejected) > 0) {
		return fmt.Errorf("replay: %d malformed lines, %d rejected actions", parsed.ParseErrors, len(report.Rejected))
	}
	return nil
}
