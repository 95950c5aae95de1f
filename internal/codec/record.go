// Package codec translates Account records to and from the fixed 235-byte
// on-disk layout of the account file. All integers are big-endian so the file
// is portable across architectures. Text fields are NUL-padded to a fixed
// capacity; values longer than the capacity are rejected, never truncated.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bank/internal/domain"
)

const (
	NameCapacity  = 50
	EmailCapacity = 64
	PhoneCapacity = 20
	HashCapacity  = 72

	// RecordSize is the byte length of every encoded account record:
	// number(4) + name + email + phone + balance(8) + hash + status(1) +
	// created(8) + last accessed(8).
	RecordSize = 4 + NameCapacity + EmailCapacity + PhoneCapacity + 8 + HashCapacity + 1 + 8 + 8
)

var hundred = decimal.NewFromInt(100)

// EncodeAccount serializes an account into exactly RecordSize bytes.
// FailedLoginAttempts is deliberately not part of the layout; it is an
// in-memory counter only.
func EncodeAccount(a *domain.Account) ([]byte, error) {
	cents := a.Balance.Mul(hundred)
	if !cents.IsInteger() {
		return nil, fmt.Errorf("%w: balance %s", domain.ErrInvalidAmount, a.Balance)
	}

	buf := make([]byte, RecordSize)
	off := 0

	binary.BigEndian.PutUint32(buf[off:], uint32(a.Number))
	off += 4

	for _, f := range []struct {
		name string
		val  string
		cap  int
	}{
		{"name", a.Name, NameCapacity},
		{"email", a.Email, EmailCapacity},
		{"phone", a.Phone, PhoneCapacity},
	} {
		if err := putString(buf[off:off+f.cap], f.val, f.name); err != nil {
			return nil, err
		}
		off += f.cap
	}

	binary.BigEndian.PutUint64(buf[off:], uint64(cents.IntPart()))
	off += 8

	if err := putString(buf[off:off+HashCapacity], a.PasswordHash, "password hash"); err != nil {
		return nil, err
	}
	off += HashCapacity

	buf[off] = byte(a.Status)
	off++

	binary.BigEndian.PutUint64(buf[off:], uint64(a.CreatedAt.Unix()))
	off += 8
	binary.BigEndian.PutUint64(buf[off:], uint64(a.LastAccessed.Unix()))

	return buf, nil
}

// DecodeAccount parses exactly one encoded record.
func DecodeAccount(buf []byte) (*domain.Account, error) {
	if len(buf) != RecordSize {
		return nil, fmt.Errorf("%w: record is %d bytes, want %d", domain.ErrStoreUnavailable, len(buf), RecordSize)
	}

	a := &domain.Account{}
	off := 0

	a.Number = int(binary.BigEndian.Uint32(buf[off:]))
	off += 4

	a.Name = getString(buf[off : off+NameCapacity])
	off += NameCapacity
	a.Email = getString(buf[off : off+EmailCapacity])
	off += EmailCapacity
	a.Phone = getString(buf[off : off+PhoneCapacity])
	off += PhoneCapacity

	a.Balance = decimal.New(int64(binary.BigEndian.Uint64(buf[off:])), -2)
	off += 8

	a.PasswordHash = getString(buf[off : off+HashCapacity])
	off += HashCapacity

	a.Status = domain.AccountStatus(buf[off])
	off++

	a.CreatedAt = time.Unix(int64(binary.BigEndian.Uint64(buf[off:])), 0).UTC()
	off += 8
	a.LastAccessed = time.Unix(int64(binary.BigEndian.Uint64(buf[off:])), 0).UTC()

	return a, nil
}

func putString(dst []byte, s, field string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("%w: %s is %d bytes, capacity %d", domain.ErrFieldTooLong, field, len(s), len(dst))
	}
	copy(dst, s)
	return nil
}

func getString(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	return string(src)
}
