package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/model"
)

func openMemory(t *testing.T) *Journal {
	t.Helper()
	j, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestJournal_AppendAndEntries(t *testing.T) {
	ctx := context.Background()
	j := openMemory(t)
	if j.Path() != Memory {
		t.Errorf("Path = %q, want %q", j.Path(), Memory)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := []model.JournalEntry{
		{SessionID: "s1", Seq: 1, At: base, Action: "set_budget", Amount: "1000", Accepted: true, Balance: decimal.NewFromInt(1000)},
		{SessionID: "s1", Seq: 2, At: base.Add(time.Second), Action: "expense", Category: "Rent", Amount: "5", Error: `unknown category: "Rent"`, Balance: decimal.NewFromInt(1000)},
		{SessionID: "s1", Seq: 3, At: base.Add(2 * time.Second), Action: "expense", Category: "Food", Amount: "12.50", Accepted: true, Balance: decimal.RequireFromString("987.5")},
	}
	for _, e := range in {
		stored, err := j.Append(ctx, e)
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		if stored.ID == "" {
			t.Error("Append did not assign an ID")
		}
	}

	got, err := j.Entries(ctx, "")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %d entries, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i].Seq != in[i].Seq || got[i].Action != in[i].Action || got[i].Accepted != in[i].Accepted {
			t.Errorf("entry %d = %+v", i, got[i])
		}
		if got[i].Category != in[i].Category || got[i].Amount != in[i].Amount || got[i].Error != in[i].Error {
			t.Errorf("entry %d fields = %+v", i, got[i])
		}
		if !got[i].Balance.Equal(in[i].Balance) {
			t.Errorf("entry %d balance = %s, want %s", i, got[i].Balance, in[i].Balance)
		}
		if !got[i].At.Equal(in[i].At) {
			t.Errorf("entry %d at = %v, want %v", i, got[i].At, in[i].At)
		}
	}

	n, err := j.Count(ctx)
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

func TestJournal_FilterBySession(t *testing.T) {
	ctx := context.Background()
	j := openMemory(t)

	base := time.Now()
	for i, sid := range []string{"a", "b", "a"} {
		_, err := j.Append(ctx, model.JournalEntry{SessionID: sid, Seq: i + 1, At: base.Add(time.Duration(i) * time.Second), Action: "add_category"})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := j.Entries(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("session a has %d entries, want 2", len(got))
	}

	ids, err := j.Sessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("Sessions = %v, want [a b]", ids)
	}
}

func TestJournal_Export(t *testing.T) {
	ctx := context.Background()
	j := openMemory(t)
	for i := 1; i <= 2; i++ {
		if _, err := j.Append(ctx, model.JournalEntry{SessionID: "s", Seq: i, Action: "reset_overrides", Accepted: true}); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	n, err := j.Export(ctx, path)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 2 {
		t.Errorf("exported %d, want 2", n)
	}

	// A second export of the same entries adds nothing.
	if _, err := j.Export(ctx, path); err != nil {
		t.Fatalf("second Export: %v", err)
	}

	file, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = file.Close() }()

	count, err := file.Count(ctx)
	if err != nil || count != 2 {
		t.Errorf("file journal Count = %d, %v; want 2", count, err)
	}
}
