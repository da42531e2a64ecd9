package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

type Account struct {
	ID          string
	UserID      string
	AccountType AccountType
	Balance     decimal.Decimal
	CreatedAt   time.Time
}
