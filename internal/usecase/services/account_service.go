package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/repo_interfaces"
	"github.com/mockqv/Lumina-Bank/internal/commons"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewAccountService(accountRepo repo_interfaces.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) ListAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error) {
	logger.Info("account service list accounts request", logger.Fields{
		"userId": userID,
	})

	accounts, err := s.accountRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Error("account service list accounts failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, models.NewAccountResponse(account))
	}

	return commons.SuccessResponse("accounts loaded", responses), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string, userID string) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service get account request", logger.Fields{
		"accountId": accountID,
		"userId":    userID,
	})

	if strings.TrimSpace(accountID) == "" {
		err := fmt.Errorf("account id is required")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found or access denied"), err
		}
		logger.Error("account service get account failed", err, logger.Fields{
			"accountId": accountID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to load account", "Unable to load account right now"), err
	}

	return commons.SuccessResponse("account loaded", models.NewAccountResponse(account)), nil
}

func (s *AccountService) GetBalance(ctx context.Context, userID string) (commons.Response[models.BalanceResponse], error) {
	logger.Info("account service get balance request", logger.Fields{
		"userId": userID,
	})

	account, err := s.accountRepo.GetPrimaryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.BalanceResponse]("No account found for this user"), err
		}
		logger.Error("account service get balance failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.BalanceResponse]("failed to load balance", "Unable to load balance right now"), err
	}

	return commons.SuccessResponse("balance loaded", models.BalanceResponse{
		Balance: account.Balance.StringFixed(2),
	}), nil
}
