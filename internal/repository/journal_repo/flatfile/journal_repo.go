package flatfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bank/internal/domain"
)

type journalRepository struct {
	path string
}

// NewJournalRepository keeps the transaction journal as an append-only text
// file, one pipe-separated line per entry:
//
//	<RFC3339 timestamp>|<entry id>|<account>|<type>|<amount>|<balance after>|<related account or ->|<description>
//
// Lines are never rewritten. The file is opened and closed per call.
func NewJournalRepository(path string) *journalRepository {
	return &journalRepository{path: path}
}

func (r *journalRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to open journal: %v", domain.ErrStoreUnavailable, err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(tx)); err != nil {
		return fmt.Errorf("%w: failed to append journal entry: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *journalRepository) QueryByAccount(ctx context.Context, number int, fn func(*domain.Transaction) error) error {
	return r.ScanAll(ctx, func(tx *domain.Transaction) error {
		if tx.AccountNumber != number {
			return nil
		}
		return fn(tx)
	})
}

func (r *journalRepository) ScanAll(ctx context.Context, fn func(*domain.Transaction) error) error {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: failed to open journal: %v", domain.ErrStoreUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		tx, ok := parseLine(scanner.Text())
		if !ok {
			// A torn final line after a crash is legitimate in an
			// append-only file; skip anything unparseable.
			continue
		}
		if err := fn(tx); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: failed to read journal: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func formatLine(tx *domain.Transaction) string {
	related := "-"
	if tx.RelatedAccount != 0 {
		related = strconv.Itoa(tx.RelatedAccount)
	}
	desc := strings.NewReplacer("|", "/", "\n", " ", "\r", " ").Replace(tx.Description)
	return fmt.Sprintf("%s|%s|%d|%s|%s|%s|%s|%s\n",
		tx.Timestamp.UTC().Format(time.RFC3339),
		tx.ID,
		tx.AccountNumber,
		tx.Type,
		tx.Amount.StringFixed(2),
		tx.BalanceAfter.StringFixed(2),
		related,
		desc,
	)
}

func parseLine(line string) (*domain.Transaction, bool) {
	parts := strings.SplitN(line, "|", 8)
	if len(parts) != 8 {
		return nil, false
	}

	ts, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return nil, false
	}
	number, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, false
	}
	amount, err := decimal.NewFromString(parts[4])
	if err != nil {
		return nil, false
	}
	balanceAfter, err := decimal.NewFromString(parts[5])
	if err != nil {
		return nil, false
	}
	related := 0
	if parts[6] != "-" {
		related, err = strconv.Atoi(parts[6])
		if err != nil {
			return nil, false
		}
	}

	return &domain.Transaction{
		ID:             parts[1],
		AccountNumber:  number,
		Type:           domain.TransactionType(parts[3]),
		Amount:         amount,
		BalanceAfter:   balanceAfter,
		RelatedAccount: related,
		Timestamp:      ts.UTC(),
		Description:    parts[7],
	}, true
}
