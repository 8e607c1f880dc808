package replay

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/model"
	"github.com/theirongolddev/bliss/internal/session"
)

func writeScript(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile_SkipsCommentsAndCountsErrors(t *testing.T) {
	path := writeScript(t,
		`# monthly budget`,
		``,
		`{"action":"set_budget","amount":"1000"}`,
		`{"action":"add_category","category":"Food"}`,
		`not json`,
		`{"action":"expense","category":"Food","amount":300}`,
		`{"action":"expense","category":"Food","amount":"NaN"}`,
		`{"action":"teleport"}`,
		`   # indented comment`,
		`{"action":"reset_overrides"}`,
	)

	result, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(result.Steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(result.Steps))
	}
	if result.ParseErrors != 3 {
		t.Errorf("ParseErrors = %d, want 3", result.ParseErrors)
	}

	wantLines := []int{5, 7, 8}
	for i, le := range result.Errors {
		if le.Line != wantLines[i] {
			t.Errorf("error %d on line %d, want %d", i, le.Line, wantLines[i])
		}
	}
	if !errors.Is(result.Errors[1].Err, budget.ErrValidation) {
		t.Errorf("NaN amount error = %v", result.Errors[1].Err)
	}
	if !errors.Is(result.Errors[2].Err, ErrUnknownAction) {
		t.Errorf("unknown action error = %v", result.Errors[2].Err)
	}

	exp, ok := result.Steps[2].Action.(budget.RecordExpense)
	if !ok || !exp.Amount.Equal(decimal.NewFromInt(300)) || result.Steps[2].Line != 6 {
		t.Errorf("step 2 = %+v", result.Steps[2])
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatal("expected error")
	}
}

func TestToAction_AllKinds(t *testing.T) {
	cases := []struct {
		raw  RawAction
		kind string
	}{
		{RawAction{Action: "set_budget", Amount: "10"}, budget.KindSetBudget},
		{RawAction{Action: "increase_budget", Amount: "5"}, budget.KindIncreaseBudget},
		{RawAction{Action: "add_category", Category: "A"}, budget.KindAddCategory},
		{RawAction{Action: "delete_category", Category: "A"}, budget.KindDeleteCategory},
		{RawAction{Action: "expense", Category: "A", Amount: "1"}, budget.KindExpense},
		{RawAction{Action: "set_override", Category: "A", Amount: "2"}, budget.KindSetOverride},
		{RawAction{Action: "clear_override", Category: "A"}, budget.KindClearOverride},
		{RawAction{Action: "reset_overrides"}, budget.KindResetOverrides},
	}
	for _, tc := range cases {
		a, err := tc.raw.ToAction()
		if err != nil {
			t.Errorf("%s: %v", tc.kind, err)
			continue
		}
		if a.Kind() != tc.kind {
			t.Errorf("Kind = %s, want %s", a.Kind(), tc.kind)
		}
	}

	if _, err := (RawAction{Action: "expense", Category: "A"}).ToAction(); !errors.Is(err, budget.ErrValidation) {
		t.Errorf("missing amount: err = %v", err)
	}
}

func TestRun_CollectsRejections(t *testing.T) {
	result, err := Parse(strings.NewReader(strings.Join([]string{
		`{"action":"set_budget","amount":"1000"}`,
		`{"action":"add_category","category":"Food"}`,
		`{"action":"add_category","category":"Transport"}`,
		`{"action":"add_category","category":"Food"}`,
		`{"action":"expense","category":"Food","amount":"300"}`,
		`{"action":"expense","category":"Rent","amount":"1"}`,
		`{"action":"expense","category":"Food","amount":"400"}`,
	}, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	st, _ := budget.New(decimal.Zero)
	sess := session.New(st, nil, nil)

	report, err := Run(context.Background(), sess, result.Steps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Applied != 5 || len(report.Rejected) != 2 {
		t.Errorf("applied=%d rejected=%d, want 5/2", report.Applied, len(report.Rejected))
	}
	if report.Rejected[0].Step.Line != 4 || !errors.Is(report.Rejected[0].Err, budget.ErrDuplicateCategory) {
		t.Errorf("first rejection = %+v", report.Rejected[0])
	}
	if !report.HasStatus || report.LastStatus != model.UnderBudget {
		t.Errorf("status = %v/%v", report.HasStatus, report.LastStatus)
	}

	final := sess.State()
	if !final.Ledger()["Food"].Equal(decimal.NewFromInt(700)) {
		t.Errorf("Food spent = %s", final.Ledger()["Food"])
	}
	history := final.History()
	want := []int64{1000, 700, 300}
	for i, w := range want {
		if !history[i].Equal(decimal.NewFromInt(w)) {
			t.Errorf("history[%d] = %s, want %d", i, history[i], w)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, _ := budget.New(decimal.Zero)
	steps := []Step{{Line: 1, Action: budget.ResetOverrides{}}}
	if _, err := Run(ctx, session.New(st, nil, nil), steps); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
