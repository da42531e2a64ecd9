package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/repo_interfaces"
	"github.com/mockqv/Lumina-Bank/internal/commons"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
)

const defaultRecentLimit = 10
const maxRecentLimit = 50

type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
	accountRepo     repo_interfaces.AccountRepository
}

func NewTransactionService(
	transactionRepo repo_interfaces.TransactionRepository,
	accountRepo repo_interfaces.AccountRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
	}
}

// CreateTransaction applies one deposit or withdrawal to an account the
// caller owns. Validation happens before any lock is taken; the posting
// itself is atomic in the repository.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service create transaction request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service create transaction validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	record, err := s.transactionRepo.PostTransaction(
		ctx,
		strings.TrimSpace(req.AccountID),
		userID,
		domain.TransactionType(strings.TrimSpace(req.Type)),
		req.Amount,
		strings.TrimSpace(req.Description),
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.TransactionResponse]("Account not found or access denied"), err
		case errors.Is(err, domain.ErrInsufficientBalance):
			return commons.ErrorResponse[models.TransactionResponse]("Insufficient funds", err.Error()), err
		}
		logger.Error("transaction service create transaction failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to create transaction", "Unable to process transaction right now"), err
	}

	logger.Info("transaction service create transaction success", logger.Fields{
		"transactionId": record.ID,
		"accountId":     record.AccountID,
	})
	return commons.SuccessResponse("transaction created", models.NewTransactionResponse(record)), nil
}

func (s *TransactionService) ListTransactions(ctx context.Context, accountID string, userID string) (commons.Response[[]models.TransactionResponse], error) {
	logger.Info("transaction service list transactions request", logger.Fields{
		"accountId": accountID,
		"userId":    userID,
	})

	// Ownership check before exposing any ledger entries.
	if _, err := s.accountRepo.GetByID(ctx, accountID, userID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("Account not found or access denied"), err
		}
		logger.Error("transaction service list transactions ownership check failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	records, err := s.transactionRepo.ListByAccountID(ctx, accountID, false)
	if err != nil {
		logger.Error("transaction service list transactions failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	return commons.SuccessResponse("transactions loaded", models.NewTransactionResponses(records)), nil
}

func (s *TransactionService) GetRecent(ctx context.Context, userID string, limit int) (commons.Response[[]models.TransactionResponse], error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	records, err := s.transactionRepo.ListRecentByUserID(ctx, userID, limit)
	if err != nil {
		logger.Error("transaction service get recent failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list recent transactions", "Unable to list transactions right now"), err
	}

	return commons.SuccessResponse("recent transactions loaded", models.NewTransactionResponses(records)), nil
}
