package services

import (
	"context"
	"errors"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/repo_interfaces"
	"github.com/mockqv/Lumina-Bank/internal/commons"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// StatementService rebuilds historical account statements from the ledger.
// Balances are never stored per entry; they are derived by walking the
// immutable transaction log backwards from the current balance.
type StatementService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
}

func NewStatementService(accountRepo repo_interfaces.AccountRepository, transactionRepo repo_interfaces.TransactionRepository) *StatementService {
	return &StatementService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *StatementService) GetStatement(ctx context.Context, userID string, query models.StatementQuery) (commons.Response[models.StatementResponse], error) {
	logger.Info("statement service request", logger.Fields{
		"accountId": query.AccountID,
		"page":      query.Page,
	})

	if err := query.Validate(); err != nil {
		logger.Error("statement service validation failed", err, nil)
		return commons.ErrorResponse[models.StatementResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, query.AccountID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.StatementResponse]("Account not found or access denied"), err
		}
		logger.Error("statement service account lookup failed", err, logger.Fields{
			"accountId": query.AccountID,
		})
		return commons.ErrorResponse[models.StatementResponse]("failed to load statement", "Unable to load statement right now"), err
	}

	balanceAtStart, err := s.balanceAt(ctx, account, query.StartDate)
	if err != nil {
		logger.Error("statement service balance reconstruction failed", err, logger.Fields{
			"accountId": query.AccountID,
		})
		return commons.ErrorResponse[models.StatementResponse]("failed to load statement", "Unable to load statement right now"), err
	}

	offset := (query.Page - 1) * query.PageSize

	var (
		total       int64
		pageEntries []domain.Transaction
		prePage     []domain.Transaction
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var countErr error
		total, countErr = s.transactionRepo.CountInRange(groupCtx, query.AccountID, query.StartDate, query.EndDate, query.Type)
		return countErr
	})
	group.Go(func() error {
		var listErr error
		pageEntries, listErr = s.transactionRepo.ListInRange(groupCtx, query.AccountID, query.StartDate, query.EndDate, query.Type, query.PageSize, offset)
		return listErr
	})
	if offset > 0 {
		group.Go(func() error {
			var listErr error
			prePage, listErr = s.transactionRepo.ListInRange(groupCtx, query.AccountID, query.StartDate, query.EndDate, query.Type, offset, 0)
			return listErr
		})
	}
	if err := group.Wait(); err != nil {
		logger.Error("statement service range queries failed", err, logger.Fields{
			"accountId": query.AccountID,
		})
		return commons.ErrorResponse[models.StatementResponse]("failed to load statement", "Unable to load statement right now"), err
	}

	// Roll the reconstructed range-start balance forward over the entries on
	// the pages before this one.
	pageStartBalance := balanceAtStart
	for _, entry := range prePage {
		pageStartBalance = applyEntry(pageStartBalance, entry)
	}

	response := models.StatementResponse{
		Days:       bucketByDay(pageEntries, pageStartBalance),
		Page:       query.Page,
		TotalPages: int((total + int64(query.PageSize) - 1) / int64(query.PageSize)),
	}

	return commons.SuccessResponse("statement loaded", response), nil
}

// balanceAt derives the account balance at the given instant by undoing, from
// the current balance, every entry posted at or after it.
func (s *StatementService) balanceAt(ctx context.Context, account domain.Account, at time.Time) (decimal.Decimal, error) {
	entries, err := s.transactionRepo.ListFrom(ctx, account.ID, at)
	if err != nil {
		return decimal.Decimal{}, err
	}

	balance := account.Balance
	for _, entry := range entries {
		if entry.Type == domain.TransactionTypeCredit {
			balance = balance.Sub(entry.Amount)
		} else {
			balance = balance.Add(entry.Amount)
		}
	}
	return balance, nil
}

func applyEntry(balance decimal.Decimal, entry domain.Transaction) decimal.Decimal {
	if entry.Type == domain.TransactionTypeCredit {
		return balance.Add(entry.Amount)
	}
	return balance.Sub(entry.Amount)
}

// bucketByDay groups the page's entries into calendar-day buckets, carrying a
// running balance so every bucket reports the balance before its first entry
// and after its last.
func bucketByDay(entries []domain.Transaction, startBalance decimal.Decimal) []models.DailyStatement {
	days := make([]models.DailyStatement, 0)
	balance := startBalance

	for _, entry := range entries {
		date := entry.CreatedAt.Format("2006-01-02")
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, models.DailyStatement{
				Date:           date,
				Transactions:   []models.TransactionResponse{},
				InitialBalance: balance.StringFixed(2),
			})
		}
		balance = applyEntry(balance, entry)

		day := &days[len(days)-1]
		day.Transactions = append(day.Transactions, models.NewTransactionResponse(entry))
		day.FinalBalance = balance.StringFixed(2)
	}

	return days
}
