package accounts_repo

import (
	"context"

	"bank/internal/domain"
)

// AccountRepository is the durable store of account records, keyed by
// account number. Find/ReadAt/WriteAt expose the positional record model:
// an offset obtained from Find stays valid because records are never
// deleted, compacted or moved.
type AccountRepository interface {
	// Append writes a new record at end of file. Uniqueness of the
	// account number is the caller's responsibility (pre-check via Find).
	Append(ctx context.Context, account *domain.Account) error
	// Find scans records in file order and returns the byte offset of the
	// first record with the given number, or domain.ErrAccountNotFound.
	// Lookup cost is linear in the number of accounts.
	Find(ctx context.Context, number int) (int64, error)
	// ReadAt reads exactly one record at the given offset.
	ReadAt(ctx context.Context, offset int64) (*domain.Account, error)
	// WriteAt overwrites exactly one record in place; the record's length
	// and position never change.
	WriteAt(ctx context.Context, offset int64, account *domain.Account) error
	// ScanAll visits every record in file order. Calling it again starts
	// a fresh scan. A non-nil error from fn aborts the scan.
	ScanAll(ctx context.Context, fn func(*domain.Account) error) error
}
