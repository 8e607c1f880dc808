package budget

import (
	"errors"
	"reflect"
	"testing"

	"github.com/theirongolddev/bliss/internal/model"
)

func TestApply_Sequence(t *testing.T) {
	s := mustState(t, "0")

	actions := []Action{
		SetBudget{Amount: dec("1000")},
		AddCategory{Name: "Food"},
		AddCategory{Name: "Transport"},
		RecordExpense{Category: "Food", Amount: dec("300")},
		RecordExpense{Category: "Food", Amount: dec("400")},
	}

	var last Outcome
	for _, a := range actions {
		var err error
		s, last, err = Apply(s, a)
		if err != nil {
			t.Fatalf("Apply(%s): %v", a.Kind(), err)
		}
	}

	if !last.HasStatus || last.Status != model.UnderBudget {
		t.Errorf("outcome = %+v, want under budget status", last)
	}
	if !s.Plan()["Transport"].Equal(dec("500")) {
		t.Errorf("Transport = %s", s.Plan()["Transport"])
	}
	if got := len(s.History()); got != 3 {
		t.Errorf("history length = %d, want 3", got)
	}
}

func TestApply_RejectedLeavesStateUnchanged(t *testing.T) {
	s := mustState(t, "1000", "Food")
	s, _, _ = Apply(s, RecordExpense{Category: "Food", Amount: dec("10")})

	rejected := []Action{
		AddCategory{Name: "Food"},
		DeleteCategory{Name: "Rent"},
		RecordExpense{Category: "Rent", Amount: dec("1")},
		RecordExpense{Category: "Food", Amount: dec("-1")},
		SetBudget{Amount: dec("-5")},
		IncreaseBudget{Amount: dec("-5")},
		SetOverride{Category: "Rent", Amount: dec("1")},
		ClearOverride{Category: "Rent"},
	}
	for _, a := range rejected {
		next, out, err := Apply(s, a)
		if err == nil {
			t.Errorf("Apply(%s) succeeded, want error", a.Kind())
			continue
		}
		if out.HasStatus {
			t.Errorf("Apply(%s) reported a status on failure", a.Kind())
		}
		if !reflect.DeepEqual(next, s) {
			t.Errorf("Apply(%s) changed state on failure", a.Kind())
		}
	}
}

type bogusAction struct{}

func (bogusAction) Kind() string { return "bogus" }

func TestApply_Unsupported(t *testing.T) {
	s := mustState(t, "1")
	if _, _, err := Apply(s, bogusAction{}); err == nil {
		t.Fatal("expected error for unsupported action")
	}
}

func TestDescribe(t *testing.T) {
	cat, amt := Describe(RecordExpense{Category: "Food", Amount: dec("12.5")})
	if cat != "Food" || amt != "12.5" {
		t.Errorf("Describe = %q, %q", cat, amt)
	}
	cat, amt = Describe(ResetOverrides{})
	if cat != "" || amt != "" {
		t.Errorf("Describe(reset) = %q, %q", cat, amt)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := ParseAmount("amount", "abc")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %T, want *ValidationError", err)
	}
	if ve.Field != "amount" || ve.Value != "abc" {
		t.Errorf("ValidationError = %+v", ve)
	}
	if err.Error() != `amount "abc": not a number` {
		t.Errorf("Error() = %q", err.Error())
	}
}
