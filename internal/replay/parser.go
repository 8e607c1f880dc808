// Package replay reads JSONL action scripts and dispatches them through a session.
package replay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/session"
)

// ErrUnknownAction is returned for a script line naming an unsupported action.
var ErrUnknownAction = errors.New("unknown action")

var commentPrefix = []byte("#")

// ParseFile reads the replay script at path.
func ParseFile(path string) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("opening replay script: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads one action per line. Blank lines and lines starting with #
// are skipped. Malformed lines are counted in ParseErrors and skipped.
func Parse(r io.Reader) (ParseResult, error) {
	var result ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || bytes.HasPrefix(line, commentPrefix) {
			continue
		}

		var raw RawAction
		if err := json.Unmarshal(line, &raw); err != nil {
			result.addError(lineNo, fmt.Errorf("decoding line: %w", err))
			continue
		}
		action, err := raw.ToAction()
		if err != nil {
			result.addError(lineNo, err)
			continue
		}
		result.Steps = append(result.Steps, Step{Line: lineNo, Action: action})
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("reading replay script: %w", err)
	}
	return result, nil
}

func (r *ParseResult) addError(line int, err error) {
	r.ParseErrors++
	r.Errors = append(r.Errors, LineError{Line: line, Err: err})
}

// ToAction converts a raw line into a budget action, parsing its amount.
func (r RawAction) ToAction() (budget.Action, error) {
	switch r.Action {
	case budget.KindSetBudget:
		d, err := budget.ParseAmount("budget", string(r.Amount))
		if err != nil {
			return nil, err
		}
		return budget.SetBudget{Amount: d}, nil
	case budget.KindIncreaseBudget:
		d, err := budget.ParseAmount("additional budget", string(r.Amount))
		if err != nil {
			return nil, err
		}
		return budget.IncreaseBudget{Amount: d}, nil
	case budget.KindAddCategory:
		return budget.AddCategory{Name: r.Category}, nil
	case budget.KindDeleteCategory:
		return budget.DeleteCategory{Name: r.Category}, nil
	case budget.KindExpense:
		d, err := budget.ParseAmount("amount", string(r.Amount))
		if err != nil {
			return nil, err
		}
		return budget.RecordExpense{Category: r.Category, Amount: d}, nil
	case budget.KindSetOverride:
		d, err := budget.ParseAmount("category budget", string(r.Amount))
		if err != nil {
			return nil, err
		}
		return budget.SetOverride{Category: r.Category, Amount: d}, nil
	case budget.KindClearOverride:
		return budget.ClearOverride{Category: r.Category}, nil
	case budget.KindResetOverrides:
		return budget.ResetOverrides{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, r.Action)
}

// Run dispatches every step through sess. Rejected steps are collected
// and the run continues. It stops early only when ctx is cancelled or the
// journal fails.
func Run(ctx context.Context, sess *session.Session, steps []Step) (Report, error) {
	var report Report
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		out, err := sess.Dispatch(ctx, step.Action)
		if err != nil {
			if !isDomainError(err) {
				return report, fmt.Errorf("line %d: %w", step.Line, err)
			}
			report.Rejected = append(report.Rejected, Rejection{Step: step, Err: err})
			continue
		}
		report.Applied++
		if out.HasStatus {
			report.LastStatus = out.Status
			report.HasStatus = true
		}
	}
	return report, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, budget.ErrValidation) ||
		errors.Is(err, budget.ErrDuplicateCategory) ||
		errors.Is(err, budget.ErrUnknownCategory)
}
