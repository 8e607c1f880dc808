// Package cmd implements the bliss CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/config"
	"github.com/theirongolddev/bliss/internal/log"
	"github.com/theirongolddev/bliss/internal/session"
	"github.com/theirongolddev/bliss/internal/store"
)

var (
	flagBudget     string
	flagCategories []string
	flagJournal    string
	flagLogFile    string
	flagQuiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "bliss",
	Short: "Budget Bliss: a terminal budget tracker",
	Long: "Set a budget, split it across categories, log expenses and watch the balance.\n" +
		"Everything lives in memory for one session; --journal keeps an audit trail.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.RunE = runTUI
	rootCmd.PersistentFlags().StringVarP(&flagBudget, "budget", "b", "", "Starting budget (default from config)")
	rootCmd.PersistentFlags().StringSliceVarP(&flagCategories, "categories", "c", nil, "Starting categories, comma separated (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagJournal, "journal", "j", "", "Export the audit journal to this SQLite file on exit")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors and skip informational output")
}

// runtime bundles what every command needs: config, logger and journal.
type runtime struct {
	cfg        config.Config
	logger     *log.Logger
	journal    *store.Journal
	exportPath string
	closers    []io.Closer
}

// newRuntime loads config and opens the logger and in-memory journal.
// Interactive commands keep logs off the terminal unless a log file is set.
func newRuntime(interactive bool) (*runtime, error) {
	if err := config.LoadDotenv(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		if !errors.Is(err, config.ErrInvalid) {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "  Using defaults for invalid config values: %v\n", err)
	}

	rt := &runtime{cfg: cfg, exportPath: cfg.Journal.Path}
	if flagJournal != "" {
		rt.exportPath = flagJournal
	}

	logger, err := rt.openLogger(interactive)
	if err != nil {
		return nil, err
	}
	rt.logger = logger

	j, err := store.Open(store.Memory)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	rt.journal = j
	rt.closers = append(rt.closers, j)
	return rt, nil
}

func (rt *runtime) openLogger(interactive bool) (*log.Logger, error) {
	lc := log.DefaultConfig()
	if rt.cfg.Log.Level != "" {
		level, err := log.ParseLevel(rt.cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		lc.Level = level
	}
	if flagQuiet {
		lc.Level = slog.LevelError
	}

	path := rt.cfg.Log.File
	if flagLogFile != "" {
		path = flagLogFile
	}
	switch {
	case path != "":
		logger, closer, err := log.OpenFile(path, lc)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, closer)
		return logger, nil
	case interactive:
		return log.Discard(), nil
	default:
		return log.New(lc), nil
	}
}

// newSession builds the starting state from flags, falling back to config.
func (rt *runtime) newSession() (*session.Session, error) {
	raw := rt.cfg.General.DefaultBudget
	if flagBudget != "" {
		raw = flagBudget
	}
	total, err := budget.ParseAmount("budget", raw)
	if err != nil {
		return nil, err
	}

	cats := rt.cfg.General.DefaultCategories
	if rootCmd.PersistentFlags().Changed("categories") {
		cats = nil
		for _, c := range flagCategories {
			if c = strings.TrimSpace(c); c != "" {
				cats = append(cats, c)
			}
		}
	}

	state, err := budget.New(total, cats...)
	if err != nil {
		return nil, err
	}
	var rec session.Recorder
	if rt.journal != nil {
		rec = rt.journal
	}
	sess := session.New(state, rec, rt.logger)
	rt.logger.Debug("session started",
		log.FieldSession, sess.ID(),
		log.FieldBalance, state.Balance().String(),
		"categories", len(cats))
	return sess, nil
}

// exportJournal copies the in-memory journal to the export path, if any.
func (rt *runtime) exportJournal(ctx context.Context) error {
	if rt.exportPath == "" {
		return nil
	}
	n, err := rt.journal.Export(ctx, rt.exportPath)
	if err != nil {
		return fmt.Errorf("exporting journal: %w", err)
	}
	rt.reportExport(n)
	return nil
}

func (rt *runtime) reportExport(n int) {
	rt.logger.Info("journal exported", log.FieldPath, rt.exportPath, "entries", n)
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Journal: %d entries saved to %s\n", n, rt.exportPath)
	}
}

func (rt *runtime) close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		_ = rt.closers[i].Close()
	}
	rt.closers = nil
}
