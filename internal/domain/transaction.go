package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxAccountCreated TransactionType = "account-created"
	TxDeposit        TransactionType = "deposit"
	TxWithdrawal     TransactionType = "withdrawal"
	TxTransferOut    TransactionType = "transfer-out"
	TxTransferIn     TransactionType = "transfer-in"

	// Intent markers for the two-sided transfer write. A transfer's
	// transfer-out and transfer-in entries reuse the intent id from
	// Transaction.ID, so they double as the debit/credit progress markers
	// the startup resolver pairs against the intent.
	TxTransferIntent    TransactionType = "transfer-intent"
	TxTransferCancelled TransactionType = "transfer-cancelled"
)

// BalanceAffecting reports whether entries of this type change a balance and
// therefore belong on account statements.
func (t TransactionType) BalanceAffecting() bool {
	switch t {
	case TxAccountCreated, TxDeposit, TxWithdrawal, TxTransferOut, TxTransferIn:
		return true
	}
	return false
}

// Transaction is one journal entry. Entries are append-only: once written
// they are never modified or removed.
type Transaction struct {
	ID             string
	AccountNumber  int
	Type           TransactionType
	Amount         decimal.Decimal
	BalanceAfter   decimal.Decimal
	RelatedAccount int // counterparty account for transfers, 0 otherwise
	Timestamp      time.Time
	Description    string
}
