package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferKey is a single-use, time-bounded payment request: "pay me exactly
// this amount". The key string itself is the identity.
type TransferKey struct {
	Key       string
	UserID    string
	Amount    decimal.Decimal
	IsUsed    bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TransferKeyDetails is the lookup view of an unexpired transfer key. IsUsed
// is reported but not filtered on; callers deciding whether a key is payable
// must check it themselves.
type TransferKeyDetails struct {
	Amount        decimal.Decimal
	IsUsed        bool
	RecipientID   string
	RecipientName string
}
