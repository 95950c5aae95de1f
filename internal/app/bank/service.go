package bank

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bank/internal/auth"
	"bank/internal/domain"
	"bank/internal/repository/accounts_repo"
	"bank/internal/repository/journal_repo"
	"bank/internal/statement"
	"bank/internal/util"
)

// CreateAccountInput carries the profile fields collected by the input
// collaborator. Email and phone arrive already format-validated.
type CreateAccountInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	PasswordConfirm string
}

// ConfirmFunc is the external confirmation collaborator for transfers. A
// false return aborts the transfer before any state changes.
type ConfirmFunc func(from, to int, amount decimal.Decimal) bool

type BankService interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	Deposit(ctx context.Context, number int, amount decimal.Decimal, read auth.PasswordReader) (*domain.Account, error)
	Withdraw(ctx context.Context, number int, amount decimal.Decimal, read auth.PasswordReader) (*domain.Account, error)
	Transfer(ctx context.Context, from, to int, amount decimal.Decimal, read auth.PasswordReader, confirm ConfirmFunc) error
	CheckBalance(ctx context.Context, number int, read auth.PasswordReader) (*domain.Account, error)
	ListAccounts(ctx context.Context, fn func(*domain.Account) error) error
	GenerateStatement(ctx context.Context, number int, read auth.PasswordReader) (string, error)
}

type bankService struct {
	accounts          accounts_repo.AccountRepository
	journal           journal_repo.JournalRepository
	guard             *auth.Guard
	hasher            auth.PasswordHasher
	minPasswordLength int
	statementDir      string
	logger            *zap.Logger
}

func NewBankService(
	accounts accounts_repo.AccountRepository,
	journal journal_repo.JournalRepository,
	guard *auth.Guard,
	hasher auth.PasswordHasher,
	minPasswordLength int,
	statementDir string,
	logger *zap.Logger,
) BankService {
	return &bankService{
		accounts:          accounts,
		journal:           journal,
		guard:             guard,
		hasher:            hasher,
		minPasswordLength: minPasswordLength,
		statementDir:      statementDir,
		logger:            logger,
	}
}

func (s *bankService) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if len(input.Password) < s.minPasswordLength {
		return nil, fmt.Errorf("%w: need at least %d characters", domain.ErrWeakPassword, s.minPasswordLength)
	}
	if input.Password != input.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	number, err := s.unusedAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	account := &domain.Account{
		Number:       number,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Balance:      decimal.Zero,
		PasswordHash: hash,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		LastAccessed: now,
	}

	if err := s.accounts.Append(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to store new account: %w", err)
	}

	err = s.journal.Append(ctx, &domain.Transaction{
		ID:            util.GenerateUUID(),
		AccountNumber: account.Number,
		Type:          domain.TxAccountCreated,
		Amount:        decimal.Zero,
		BalanceAfter:  decimal.Zero,
		Timestamp:     now,
		Description:   "account created",
	})
	if err != nil {
		return nil, fmt.Errorf("account %d stored but journaling failed: %w", account.Number, err)
	}

	s.logger.Info("account created",
		zap.Int("account", account.Number),
		zap.String("name", account.Name))
	return account, nil
}

// unusedAccountNumber rejection-samples the six-digit range until Find
// reports the candidate free.
func (s *bankService) unusedAccountNumber(ctx context.Context) (int, error) {
	for {
		candidate := domain.MinAccountNumber + rand.Intn(domain.MaxAccountNumber-domain.MinAccountNumber+1)
		_, err := s.accounts.Find(ctx, candidate)
		if errors.Is(err, domain.ErrAccountNotFound) {
			return candidate, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to check account number %d: %w", candidate, err)
		}
	}
}

func (s *bankService) Deposit(ctx context.Context, number int, amount decimal.Decimal, read auth.PasswordReader) (*domain.Account, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	account, offset, err := s.guard.Authenticate(ctx, number, read)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Truncate(time.Second)
	account.Balance = account.Balance.Add(amount)
	account.LastAccessed = now
	if err := s.accounts.WriteAt(ctx, offset, account); err != nil {
		return nil, fmt.Errorf("failed to persist deposit for account %d: %w", number, err)
	}

	err = s.journal.Append(ctx, &domain.Transaction{
		ID:            util.GenerateUUID(),
		AccountNumber: number,
		Type:          domain.TxDeposit,
		Amount:        amount,
		BalanceAfter:  account.Balance,
		Timestamp:     now,
		Description:   "cash deposit",
	})
	if err != nil {
		return nil, fmt.Errorf("deposit for account %d persisted but journaling failed: %w", number, err)
	}

	s.logger.Info("deposit",
		zap.Int("account", number),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance", account.Balance.StringFixed(2)))
	return account, nil
}

func (s *bankService) Withdraw(ctx context.Context, number int, amount decimal.Decimal, read auth.PasswordReader) (*domain.Account, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	account, offset, err := s.guard.Authenticate(ctx, number, read)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance is %s", domain.ErrInsufficientFunds, account.Balance.StringFixed(2))
	}

	now := time.Now().UTC().Truncate(time.Second)
	account.Balance = account.Balance.Sub(amount)
	account.LastAccessed = now
	if err := s.accounts.WriteAt(ctx, offset, account); err != nil {
		return nil, fmt.Errorf("failed to persist withdrawal for account %d: %w", number, err)
	}

	err = s.journal.Append(ctx, &domain.Transaction{
		ID:            util.GenerateUUID(),
		AccountNumber: number,
		Type:          domain.TxWithdrawal,
		Amount:        amount,
		BalanceAfter:  account.Balance,
		Timestamp:     now,
		Description:   "cash withdrawal",
	})
	if err != nil {
		return nil, fmt.Errorf("withdrawal for account %d persisted but journaling failed: %w", number, err)
	}

	s.logger.Info("withdrawal",
		zap.Int("account", number),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance", account.Balance.StringFixed(2)))
	return account, nil
}

// Transfer moves amount between two accounts. The two record writes are not
// atomic; a journaled intent entry written before either write lets the
// startup resolver finish or abandon a transfer interrupted between them.
func (s *bankService) Transfer(ctx context.Context, from, to int, amount decimal.Decimal, read auth.PasswordReader, confirm ConfirmFunc) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	source, sourceOffset, err := s.guard.Authenticate(ctx, from, read)
	if err != nil {
		return err
	}

	destOffset, err := s.accounts.Find(ctx, to)
	if err != nil {
		return fmt.Errorf("destination account %d: %w", to, err)
	}
	if from == to {
		return domain.ErrSelfTransfer
	}
	if source.Balance.LessThan(amount) {
		return fmt.Errorf("%w: balance is %s", domain.ErrInsufficientFunds, source.Balance.StringFixed(2))
	}

	if !confirm(from, to, amount) {
		s.logger.Info("transfer declined by user",
			zap.Int("from", from),
			zap.Int("to", to),
			zap.String("amount", amount.StringFixed(2)))
		return nil
	}

	now := time.Now().UTC().Truncate(time.Second)
	intentID := util.GenerateUUID()

	err = s.journal.Append(ctx, &domain.Transaction{
		ID:             intentID,
		AccountNumber:  from,
		Type:           domain.TxTransferIntent,
		Amount:         amount,
		BalanceAfter:   source.Balance,
		RelatedAccount: to,
		Timestamp:      now,
		Description:    fmt.Sprintf("transfer to account %d", to),
	})
	if err != nil {
		return fmt.Errorf("failed to journal transfer intent: %w", err)
	}

	source.Balance = source.Balance.Sub(amount)
	source.LastAccessed = now
	if err := s.accounts.WriteAt(ctx, sourceOffset, source); err != nil {
		return fmt.Errorf("failed to debit account %d: %w", from, err)
	}

	err = s.journal.Append(ctx, &domain.Transaction{
		ID:             intentID,
		AccountNumber:  from,
		Type:           domain.TxTransferOut,
		Amount:         amount,
		BalanceAfter:   source.Balance,
		RelatedAccount: to,
		Timestamp:      now,
		Description:    fmt.Sprintf("transfer to account %d", to),
	})
	if err != nil {
		return fmt.Errorf("debit of account %d persisted but journaling failed: %w", from, err)
	}

	dest, err := s.accounts.ReadAt(ctx, destOffset)
	if err != nil {
		return fmt.Errorf("failed to read destination account %d: %w", to, err)
	}
	dest.Balance = dest.Balance.Add(amount)
	dest.LastAccessed = now
	if err := s.accounts.WriteAt(ctx, destOffset, dest); err != nil {
		return fmt.Errorf("failed to credit account %d: %w", to, err)
	}

	err = s.journal.Append(ctx, &domain.Transaction{
		ID:             intentID,
		AccountNumber:  to,
		Type:           domain.TxTransferIn,
		Amount:         amount,
		BalanceAfter:   dest.Balance,
		RelatedAccount: from,
		Timestamp:      now,
		Description:    fmt.Sprintf("transfer from account %d", from),
	})
	if err != nil {
		return fmt.Errorf("credit of account %d persisted but journaling failed: %w", to, err)
	}

	s.logger.Info("transfer completed",
		zap.String("intent_id", intentID),
		zap.Int("from", from),
		zap.Int("to", to),
		zap.String("amount", amount.StringFixed(2)))
	return nil
}

func (s *bankService) CheckBalance(ctx context.Context, number int, read auth.PasswordReader) (*domain.Account, error) {
	account, offset, err := s.guard.Authenticate(ctx, number, read)
	if err != nil {
		return nil, err
	}

	// Balance reads refresh last_accessed on the stored record.
	account.LastAccessed = time.Now().UTC().Truncate(time.Second)
	if err := s.accounts.WriteAt(ctx, offset, account); err != nil {
		return nil, fmt.Errorf("failed to refresh account %d: %w", number, err)
	}
	return account, nil
}

func (s *bankService) ListAccounts(ctx context.Context, fn func(*domain.Account) error) error {
	return s.accounts.ScanAll(ctx, fn)
}

func (s *bankService) GenerateStatement(ctx context.Context, number int, read auth.PasswordReader) (string, error) {
	account, _, err := s.guard.Authenticate(ctx, number, read)
	if err != nil {
		return "", err
	}

	var entries []domain.Transaction
	err = s.journal.QueryByAccount(ctx, number, func(tx *domain.Transaction) error {
		if tx.Type.BalanceAffecting() {
			entries = append(entries, *tx)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to collect journal entries for account %d: %w", number, err)
	}

	text := statement.Render(account, entries, time.Now().UTC())

	if err := os.MkdirAll(s.statementDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create statement directory: %v", domain.ErrStoreUnavailable, err)
	}
	path := filepath.Join(s.statementDir, fmt.Sprintf("statement_%d.txt", number))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("%w: failed to write statement: %v", domain.ErrStoreUnavailable, err)
	}

	s.logger.Info("statement generated",
		zap.Int("account", number),
		zap.String("path", path),
		zap.Int("entries", len(entries)))
	return path, nil
}

// validateAmount accepts positive amounts with at most two decimal places,
// the precision of the record layout.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	if !amount.Mul(decimal.NewFromInt(100)).IsInteger() {
		return fmt.Errorf("%w: got %s", domain.ErrInvalidAmount, amount)
	}
	return nil
}
