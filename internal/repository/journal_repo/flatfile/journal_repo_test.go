package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bank/internal/domain"
)

func entry(id string, account int, txType domain.TransactionType, amount int64) *domain.Transaction {
	return &domain.Transaction{
		ID:            id,
		AccountNumber: account,
		Type:          txType,
		Amount:        decimal.New(amount, -2),
		BalanceAfter:  decimal.New(amount, -2),
		Timestamp:     time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Description:   "test entry",
	}
}

func TestAppendAndQueryByAccount(t *testing.T) {
	r := NewJournalRepository(filepath.Join(t.TempDir(), "journal.log"))
	ctx := context.Background()

	entries := []*domain.Transaction{
		entry("a", 100001, domain.TxAccountCreated, 0),
		entry("b", 100001, domain.TxDeposit, 5000),
		entry("c", 200002, domain.TxAccountCreated, 0),
		entry("d", 100001, domain.TxWithdrawal, 1000),
	}
	for _, e := range entries {
		if err := r.Append(ctx, e); err != nil {
			t.Fatalf("Append err=%v", err)
		}
	}

	var got []*domain.Transaction
	err := r.QueryByAccount(ctx, 100001, func(tx *domain.Transaction) error {
		got = append(got, tx)
		return nil
	})
	if err != nil {
		t.Fatalf("QueryByAccount err=%v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}

	// Entries come back in append order with fields intact.
	wantTypes := []domain.TransactionType{domain.TxAccountCreated, domain.TxDeposit, domain.TxWithdrawal}
	for i, tx := range got {
		if tx.Type != wantTypes[i] {
			t.Fatalf("entry %d type=%s want=%s", i, tx.Type, wantTypes[i])
		}
		if tx.AccountNumber != 100001 {
			t.Fatalf("entry %d account=%d", i, tx.AccountNumber)
		}
	}
	if !got[1].Amount.Equal(decimal.New(5000, -2)) {
		t.Fatalf("deposit amount=%s want=50.00", got[1].Amount)
	}
	if got[0].Description != "test entry" {
		t.Fatalf("description=%q", got[0].Description)
	}
}

func TestRelatedAccountRoundTrip(t *testing.T) {
	r := NewJournalRepository(filepath.Join(t.TempDir(), "journal.log"))
	ctx := context.Background()

	out := entry("x", 100001, domain.TxTransferOut, 2500)
	out.RelatedAccount = 200002
	if err := r.Append(ctx, out); err != nil {
		t.Fatal(err)
	}

	var got *domain.Transaction
	if err := r.ScanAll(ctx, func(tx *domain.Transaction) error { got = tx; return nil }); err != nil {
		t.Fatal(err)
	}
	if got == nil || got.RelatedAccount != 200002 {
		t.Fatalf("related account lost: %+v", got)
	}
}

func TestDescriptionSeparatorSanitized(t *testing.T) {
	r := NewJournalRepository(filepath.Join(t.TempDir(), "journal.log"))
	ctx := context.Background()

	e := entry("s", 100001, domain.TxDeposit, 100)
	e.Description = "pipes | and\nnewlines"
	if err := r.Append(ctx, e); err != nil {
		t.Fatal(err)
	}

	count := 0
	err := r.ScanAll(ctx, func(tx *domain.Transaction) error {
		count++
		if tx.AccountNumber != 100001 {
			t.Fatalf("parse skewed by description: %+v", tx)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("entry count=%d want=1", count)
	}
}

func TestTornTrailingLineSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	r := NewJournalRepository(path)
	ctx := context.Background()

	if err := r.Append(ctx, entry("a", 100001, domain.TxDeposit, 100)); err != nil {
		t.Fatal(err)
	}
	// Simulate a crash mid-append: a partial line at the end of the file.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("2024-05-01T09:00:00Z|b|1000"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	count := 0
	if err := r.ScanAll(ctx, func(*domain.Transaction) error { count++; return nil }); err != nil {
		t.Fatalf("ScanAll err=%v", err)
	}
	if count != 1 {
		t.Fatalf("count=%d want=1 (torn line must be skipped)", count)
	}
}

func TestQueryOnMissingFile(t *testing.T) {
	r := NewJournalRepository(filepath.Join(t.TempDir(), "journal.log"))
	err := r.QueryByAccount(context.Background(), 100001, func(*domain.Transaction) error {
		t.Fatal("no entries expected")
		return nil
	})
	if err != nil {
		t.Fatalf("missing journal err=%v", err)
	}
}
