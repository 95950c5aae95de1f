package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bank/internal/domain"
	"bank/internal/repository/accounts_repo"
)

// PasswordReader is the external input collaborator that prompts for a
// password. It blocks until a value is available.
type PasswordReader func(prompt string) (string, error)

// Guard gates balance-reading and balance-mutating operations behind a
// password check. The failed-attempt counter lives only for the duration of
// one Authenticate call; no lockout survives it.
type Guard struct {
	accounts    accounts_repo.AccountRepository
	hasher      PasswordHasher
	maxAttempts int
	logger      *zap.Logger
}

func NewGuard(accounts accounts_repo.AccountRepository, hasher PasswordHasher, maxAttempts int, logger *zap.Logger) *Guard {
	return &Guard{
		accounts:    accounts,
		hasher:      hasher,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Authenticate locates the account and checks up to maxAttempts passwords
// obtained through read. On success it returns the account snapshot together
// with its file offset so the caller can act at the same position. After
// maxAttempts consecutive mismatches it returns domain.ErrAccountLocked
// without having mutated the stored record.
func (g *Guard) Authenticate(ctx context.Context, number int, read PasswordReader) (*domain.Account, int64, error) {
	offset, err := g.accounts.Find(ctx, number)
	if err != nil {
		return nil, 0, err
	}
	account, err := g.accounts.ReadAt(ctx, offset)
	if err != nil {
		return nil, 0, err
	}

	for account.FailedLoginAttempts < g.maxAttempts {
		password, err := read("Enter password: ")
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrAuthenticationFailed, err)
		}
		if g.hasher.Verify(password, account.PasswordHash) {
			return account, offset, nil
		}
		account.FailedLoginAttempts++
		g.logger.Warn("password mismatch",
			zap.Int("account", number),
			zap.Int("attempt", account.FailedLoginAttempts),
			zap.Int("max_attempts", g.maxAttempts))
	}

	g.logger.Warn("account locked for this attempt", zap.Int("account", number))
	return nil, 0, domain.ErrAccountLocked
}
