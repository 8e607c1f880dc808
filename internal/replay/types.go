package replay

import (
	"bytes"
	"encoding/json"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/model"
)

// RawAction is one line of a replay script.
type RawAction struct {
	Action   string    `json:"action"`
	Category string    `json:"category,omitempty"`
	Amount   rawAmount `json:"amount,omitempty"`
}

// rawAmount accepts both "12.50" and 12.50 and keeps the literal text.
type rawAmount string

func (a *rawAmount) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = rawAmount(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = rawAmount(n.String())
	return nil
}

// Step is a parsed action with the script line it came from.
type Step struct {
	Line   int
	Action budget.Action
}

// LineError describes a script line that could not be turned into an action.
type LineError struct {
	Line int
	Err  error
}

// ParseResult holds the output of parsing a replay script.
type ParseResult struct {
	Steps       []Step
	ParseErrors int
	Errors      []LineError
}

// Rejection is a step the budget refused.
type Rejection struct {
	Step Step
	Err  error
}

// Report summarizes a replay run.
type Report struct {
	Applied    int
	Rejected   []Rejection
	LastStatus model.Status
	HasStatus  bool
}
