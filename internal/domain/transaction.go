package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// Transaction is one immutable ledger entry. Records are only ever inserted;
// the transaction log is the sole source of truth for balance history.
type Transaction struct {
	ID          string
	AccountID   string
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

// PixTransferPosting describes one alias-transfer atomic unit: debit the
// sender's account, credit the recipient's, and optionally consume a
// single-use transfer key, all inside the same database transaction.
type PixTransferPosting struct {
	SenderAccountID    string
	SenderUserID       string
	RecipientAccountID string
	Amount             decimal.Decimal
	DebitDescription   string
	CreditDescription  string
	// TransferKey is empty when the transfer is not tied to a payment request.
	TransferKey string
}
