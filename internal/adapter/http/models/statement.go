package models

import (
	"errors"
	"strings"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/domain"
)

const maxStatementPageSize = 100

type StatementQuery struct {
	AccountID string
	// StartDate is inclusive, EndDate exclusive.
	StartDate time.Time
	EndDate   time.Time
	// Type filters to credit or debit entries only when non-nil.
	Type     *domain.TransactionType
	Page     int
	PageSize int
}

func (q StatementQuery) Validate() error {
	var errs []string

	if strings.TrimSpace(q.AccountID) == "" {
		errs = append(errs, "account id is required")
	}
	if q.StartDate.IsZero() || q.EndDate.IsZero() {
		errs = append(errs, "startDate and endDate are required")
	} else if !q.StartDate.Before(q.EndDate) {
		errs = append(errs, "startDate must be before endDate")
	}
	if q.Type != nil && !q.Type.Valid() {
		errs = append(errs, "type must be credit or debit")
	}
	if q.Page < 1 {
		errs = append(errs, "page must be at least 1")
	}
	if q.PageSize < 1 || q.PageSize > maxStatementPageSize {
		errs = append(errs, "pageSize must be between 1 and 100")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// DailyStatement is one calendar-day bucket of the reconstructed statement.
type DailyStatement struct {
	Date           string                `json:"date"`
	Transactions   []TransactionResponse `json:"transactions"`
	InitialBalance string                `json:"initial_balance"`
	FinalBalance   string                `json:"final_balance"`
}

type StatementResponse struct {
	Days       []DailyStatement `json:"days"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}
