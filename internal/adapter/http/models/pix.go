package models

import (
	"errors"
	"strings"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/shopspring/decimal"
)

type CreatePixKeyRequest struct {
	KeyType string `json:"key_type"`
	// KeyValue is ignored for random keys; the server generates the value.
	KeyValue string `json:"key_value,omitempty"`
}

func (r CreatePixKeyRequest) Validate() error {
	var errs []string

	keyType := domain.PixKeyType(strings.TrimSpace(r.KeyType))
	if !keyType.Valid() {
		errs = append(errs, "key_type must be one of cpf, cnpj, email, phone, random")
	}
	if keyType != domain.PixKeyTypeRandom && keyType.Valid() && strings.TrimSpace(r.KeyValue) == "" {
		errs = append(errs, "key_value is required for the given key_type")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type PixKeyResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	KeyType   string `json:"key_type"`
	KeyValue  string `json:"key_value"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func NewPixKeyResponse(key domain.PixKey) PixKeyResponse {
	return PixKeyResponse{
		ID:        key.ID,
		UserID:    key.UserID,
		KeyType:   string(key.KeyType),
		KeyValue:  key.KeyValue,
		Status:    string(key.Status),
		CreatedAt: key.CreatedAt.Format(time.RFC3339),
	}
}

type UpdatePixKeyStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdatePixKeyStatusRequest) Validate() error {
	if !domain.PixKeyStatus(strings.TrimSpace(r.Status)).Valid() {
		return errors.New("status must be active or inactive")
	}
	return nil
}

type PixKeyDetailsResponse struct {
	RecipientName  string `json:"recipient_name"`
	KeyType        string `json:"key_type"`
	KeyValueMasked string `json:"key_value_masked"`
}

type PixTransferRequest struct {
	PixKey      string          `json:"pix_key"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	// TransferKey ties the transfer to a payment request when present.
	TransferKey string `json:"transfer_key,omitempty"`
}

func (r PixTransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.PixKey) == "" {
		errs = append(errs, "pix_key is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
