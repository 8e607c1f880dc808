// Package session owns the current budget state and routes every action
// through the reducer, logging and journaling each dispatch.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/log"
	"github.com/theirongolddev/bliss/internal/model"
)

// Recorder persists journal entries.
type Recorder interface {
	Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error)
}

// Session holds the single source of truth for one budgeting session.
// It is not safe for concurrent use; the TUI event loop and the CLI both
// dispatch from one goroutine.
type Session struct {
	id      string
	state   budget.State
	journal Recorder
	logger  *log.Logger
	seq     int
	lastCat string
}

// New starts a session from an initial state. journal and logger may be nil.
func New(state budget.State, journal Recorder, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Discard()
	}
	cats := state.Categories()
	s := &Session{
		id:      uuid.NewString(),
		state:   state,
		journal: journal,
		logger:  logger.WithComponent(log.ComponentSession),
	}
	if len(cats) > 0 {
		s.lastCat = cats[len(cats)-1]
	}
	return s
}

// ID identifies the session in the journal.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() budget.State { return s.state }

// Dispatched returns how many actions have been dispatched, rejected ones included.
func (s *Session) Dispatched() int { return s.seq }

// LastAddedCategory returns the most recently added active category, used
// as the default for new expenses. Empty when there are no categories.
func (s *Session) LastAddedCategory() string {
	if s.lastCat != "" && s.state.HasCategory(s.lastCat) {
		return s.lastCat
	}
	cats := s.state.Categories()
	if len(cats) == 0 {
		return ""
	}
	return cats[len(cats)-1]
}

// Dispatch applies a to the current state. A rejected action leaves the
// state untouched and returns the domain error. Journal failures are
// returned wrapped, after the state change has been kept.
func (s *Session) Dispatch(ctx context.Context, a budget.Action) (budget.Outcome, error) {
	next, out, applyErr := budget.Apply(s.state, a)
	if applyErr == nil {
		s.state = next
		if add, ok := a.(budget.AddCategory); ok {
			s.lastCat, _ = budget.NormalizeCategory(add.Name)
		}
	}
	s.seq++

	category, amount := budget.Describe(a)
	fields := log.NewFields().
		WithAction(a.Kind(), category, amount).
		WithError(applyErr).
		With(log.FieldSeq, s.seq).
		With(log.FieldBalance, s.state.Balance().String())
	if out.HasStatus {
		fields.With(log.FieldStatus, out.Status.String())
	}
	if applyErr != nil {
		s.logger.WarnContext(ctx, "action rejected", fields.ToSlice()...)
	} else {
		s.logger.InfoContext(ctx, "action applied", fields.ToSlice()...)
	}

	if s.journal != nil {
		entry := model.JournalEntry{
			SessionID: s.id,
			Seq:       s.seq,
			Action:    a.Kind(),
			Category:  category,
			Amount:    amount,
			Accepted:  applyErr == nil,
			Balance:   s.state.Balance(),
		}
		if applyErr != nil {
			entry.Error = applyErr.Error()
		}
		if _, err := s.journal.Append(ctx, entry); err != nil {
			s.logger.ErrorContext(ctx, "journal append failed", log.FieldError, err.Error())
			if applyErr == nil {
				return out, fmt.Errorf("recording %s: %w", a.Kind(), err)
			}
		}
	}

	return out, applyErr
}

// DispatchAll applies actions in order, stopping at the first error. It
// returns the outcome of the last applied action.
func (s *Session) DispatchAll(ctx context.Context, actions ...budget.Action) (budget.Outcome, error) {
	var out budget.Outcome
	for _, a := range actions {
		var err error
		out, err = s.Dispatch(ctx, a)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
