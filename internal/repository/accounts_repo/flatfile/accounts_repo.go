package flatfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"bank/internal/codec"
	"bank/internal/domain"
)

type accountRepository struct {
	path string
}

// NewAccountRepository stores accounts as fixed-size binary records in the
// file at path. Every method opens the file, acts and closes it again, so no
// handle is held between operations.
func NewAccountRepository(path string) *accountRepository {
	return &accountRepository{path: path}
}

func (r *accountRepository) Append(ctx context.Context, account *domain.Account) error {
	buf, err := codec.EncodeAccount(account)
	if err != nil {
		return fmt.Errorf("failed to encode account %d: %w", account.Number, err)
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to open account file: %v", domain.ErrStoreUnavailable, err)
	}
	defer f.Close()

	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("%w: failed to append account %d: %v", domain.ErrStoreUnavailable, account.Number, err)
	}
	return nil
}

func (r *accountRepository) Find(ctx context.Context, number int) (int64, error) {
	var offset int64 = -1
	err := r.scan(ctx, func(off int64, account *domain.Account) error {
		if account.Number == number {
			offset = off
			return errStopScan
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if offset < 0 {
		return 0, domain.ErrAccountNotFound
	}
	return offset, nil
}

func (r *accountRepository) ReadAt(ctx context.Context, offset int64) (*domain.Account, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open account file: %v", domain.ErrStoreUnavailable, err)
	}
	defer f.Close()

	buf := make([]byte, codec.RecordSize)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("%w: failed to read record at offset %d: %v", domain.ErrStoreUnavailable, offset, err)
	}

	account, err := codec.DecodeAccount(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode record at offset %d: %w", offset, err)
	}
	return account, nil
}

func (r *accountRepository) WriteAt(ctx context.Context, offset int64, account *domain.Account) error {
	buf, err := codec.EncodeAccount(account)
	if err != nil {
		return fmt.Errorf("failed to encode account %d: %w", account.Number, err)
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to open account file: %v", domain.ErrStoreUnavailable, err)
	}
	defer f.Close()

	if _, err := f.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("%w: failed to write record at offset %d: %v", domain.ErrStoreUnavailable, offset, err)
	}
	return nil
}

func (r *accountRepository) ScanAll(ctx context.Context, fn func(*domain.Account) error) error {
	return r.scan(ctx, func(_ int64, account *domain.Account) error {
		return fn(account)
	})
}

// errStopScan terminates a scan early without reporting failure upward.
var errStopScan = errors.New("stop scan")

func (r *accountRepository) scan(ctx context.Context, fn func(int64, *domain.Account) error) error {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No file yet means an empty store, not a failure.
			return nil
		}
		return fmt.Errorf("%w: failed to open account file: %v", domain.ErrStoreUnavailable, err)
	}
	defer f.Close()

	buf := make([]byte, codec.RecordSize)
	for offset := int64(0); ; offset += codec.RecordSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.ReadFull(f, buf); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("%w: failed to read record at offset %d: %v", domain.ErrStoreUnavailable, offset, err)
		}
		account, err := codec.DecodeAccount(buf)
		if err != nil {
			return fmt.Errorf("failed to decode record at offset %d: %w", offset, err)
		}
		if err := fn(offset, account); err != nil {
			if err == errStopScan {
				return nil
			}
			return err
		}
	}
}
