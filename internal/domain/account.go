package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrAuthenticationFailed = errors.New("authentication failed")
var ErrAccountLocked = errors.New("account locked after too many failed attempts")
var ErrInvalidAmount = errors.New("amount must be positive with at most two decimal places")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrSelfTransfer = errors.New("cannot transfer to the same account")
var ErrWeakPassword = errors.New("password is too short")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrFieldTooLong = errors.New("field exceeds maximum length")
var ErrStoreUnavailable = errors.New("store unavailable")

// Account numbers are six digits, drawn uniformly from this range at
// creation time and re-rolled on collision.
const (
	MinAccountNumber = 100000
	MaxAccountNumber = 999999
)

type AccountStatus byte

const (
	StatusActive    AccountStatus = 'A'
	StatusSuspended AccountStatus = 'S'
	StatusClosed    AccountStatus = 'C'
)

// Account is one bank customer record. Number is assigned at creation and
// never changes; Balance never goes below zero.
type Account struct {
	Number       int
	Name         string
	Email        string
	Phone        string
	Balance      decimal.Decimal
	PasswordHash string
	Status       AccountStatus
	CreatedAt    time.Time
	LastAccessed time.Time

	// FailedLoginAttempts is tracked per authentication call only; it is
	// never written to the account file and always reads back as zero.
	FailedLoginAttempts int
}
