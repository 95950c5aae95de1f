package journal_repo

import (
	"context"

	"bank/internal/domain"
)

// JournalRepository is the append-only transaction history. Entries are
// never rewritten or reordered; queries are linear scans of the whole log.
type JournalRepository interface {
	Append(ctx context.Context, tx *domain.Transaction) error
	// QueryByAccount calls fn for every entry of the given account, in
	// append order.
	QueryByAccount(ctx context.Context, number int, fn func(*domain.Transaction) error) error
	// ScanAll calls fn for every entry in the log, in append order.
	ScanAll(ctx context.Context, fn func(*domain.Transaction) error) error
}
