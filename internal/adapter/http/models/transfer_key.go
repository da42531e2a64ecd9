package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateTransferKeyRequest struct {
	Amount decimal.Decimal `json:"amount"`
	// ExpiresIn is a relative descriptor such as "30m", "12h", "7d", "2w",
	// "1mo" or "permanent". Unrecognized values default to one day.
	ExpiresIn string `json:"expires_in,omitempty"`
}

func (r CreateTransferKeyRequest) Validate() error {
	var errs []string

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CreateTransferKeyResponse struct {
	Key       string `json:"key"`
	ExpiresAt string `json:"expires_at"`
}

type TransferKeyDetailsResponse struct {
	Amount        string `json:"amount"`
	IsUsed        bool   `json:"is_used"`
	RecipientID   string `json:"recipient_id"`
	RecipientName string `json:"recipient_name"`
}
