package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one dispatched action as recorded in the audit journal.
// Rejected actions are recorded too, with Accepted false and Error set.
type JournalEntry struct {
	ID        string
	SessionID string
	Seq       int
	At        time.Time
	Action    string
	Category  string
	Amount    string
	Accepted  bool
	Error     string
	Balance   decimal.Decimal // balance after the action
}
