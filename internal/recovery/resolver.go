// Package recovery resolves transfers that were interrupted between their
// two balance writes. A transfer journals an intent before touching either
// record; the transfer-out and transfer-in entries share the intent's id and
// mark how far the transfer got. On startup the resolver pairs these entries
// and either completes the credit side or abandons the intent.
package recovery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bank/internal/domain"
	"bank/internal/repository/accounts_repo"
	"bank/internal/repository/journal_repo"
)

type Resolver struct {
	accounts accounts_repo.AccountRepository
	journal  journal_repo.JournalRepository
	logger   *zap.Logger
}

func NewResolver(accounts accounts_repo.AccountRepository, journal journal_repo.JournalRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		accounts: accounts,
		journal:  journal,
		logger:   logger,
	}
}

type intentState struct {
	intent    *domain.Transaction
	debited   bool
	credited  bool
	cancelled bool
}

// Run scans the whole journal, collects unresolved transfer intents and
// resolves each one. Running it again on an already-consistent journal is a
// no-op, so repeated startups are safe.
func (r *Resolver) Run(ctx context.Context) error {
	states := make(map[string]*intentState)
	var order []string

	err := r.journal.ScanAll(ctx, func(tx *domain.Transaction) error {
		switch tx.Type {
		case domain.TxTransferIntent:
			if _, ok := states[tx.ID]; !ok {
				states[tx.ID] = &intentState{intent: tx}
				order = append(order, tx.ID)
			}
		case domain.TxTransferOut:
			if s, ok := states[tx.ID]; ok {
				s.debited = true
			}
		case domain.TxTransferIn:
			if s, ok := states[tx.ID]; ok {
				s.credited = true
			}
		case domain.TxTransferCancelled:
			if s, ok := states[tx.ID]; ok {
				s.cancelled = true
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan journal for unresolved transfers: %w", err)
	}

	for _, id := range order {
		s := states[id]
		if s.credited || s.cancelled {
			continue
		}
		if !s.debited {
			if err := r.abandon(ctx, s.intent); err != nil {
				return err
			}
			continue
		}
		if err := r.completeCredit(ctx, s.intent); err != nil {
			return err
		}
	}
	return nil
}

// abandon marks an intent that never debited its source as cancelled. No
// balance was touched, so a marker entry is all that is needed.
func (r *Resolver) abandon(ctx context.Context, intent *domain.Transaction) error {
	r.logger.Warn("abandoning transfer intent that never debited",
		zap.String("intent_id", intent.ID),
		zap.Int("source", intent.AccountNumber),
		zap.Int("destination", intent.RelatedAccount))

	err := r.journal.Append(ctx, &domain.Transaction{
		ID:             intent.ID,
		AccountNumber:  intent.AccountNumber,
		Type:           domain.TxTransferCancelled,
		Amount:         intent.Amount,
		BalanceAfter:   intent.BalanceAfter,
		RelatedAccount: intent.RelatedAccount,
		Timestamp:      time.Now().UTC(),
		Description:    "transfer abandoned on startup",
	})
	if err != nil {
		return fmt.Errorf("failed to cancel transfer intent %s: %w", intent.ID, err)
	}
	return nil
}

// completeCredit finishes a transfer whose source was debited but whose
// destination was never credited.
func (r *Resolver) completeCredit(ctx context.Context, intent *domain.Transaction) error {
	r.logger.Warn("completing interrupted transfer",
		zap.String("intent_id", intent.ID),
		zap.Int("source", intent.AccountNumber),
		zap.Int("destination", intent.RelatedAccount),
		zap.String("amount", intent.Amount.StringFixed(2)))

	offset, err := r.accounts.Find(ctx, intent.RelatedAccount)
	if err != nil {
		return fmt.Errorf("failed to locate destination %d of intent %s: %w", intent.RelatedAccount, intent.ID, err)
	}
	dest, err := r.accounts.ReadAt(ctx, offset)
	if err != nil {
		return fmt.Errorf("failed to read destination %d of intent %s: %w", intent.RelatedAccount, intent.ID, err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	dest.Balance = dest.Balance.Add(intent.Amount)
	dest.LastAccessed = now
	if err := r.accounts.WriteAt(ctx, offset, dest); err != nil {
		return fmt.Errorf("failed to credit destination %d of intent %s: %w", intent.RelatedAccount, intent.ID, err)
	}

	err = r.journal.Append(ctx, &domain.Transaction{
		ID:             intent.ID,
		AccountNumber:  dest.Number,
		Type:           domain.TxTransferIn,
		Amount:         intent.Amount,
		BalanceAfter:   dest.Balance,
		RelatedAccount: intent.AccountNumber,
		Timestamp:      now,
		Description:    fmt.Sprintf("transfer from account %d (recovered on startup)", intent.AccountNumber),
	})
	if err != nil {
		return fmt.Errorf("failed to journal recovered credit for intent %s: %w", intent.ID, err)
	}

	r.logger.Info("interrupted transfer completed",
		zap.String("intent_id", intent.ID),
		zap.Int("destination", dest.Number))
	return nil
}
