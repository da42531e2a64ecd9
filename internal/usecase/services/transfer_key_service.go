package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/repo_interfaces"
	"github.com/mockqv/Lumina-Bank/internal/commons"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
)

const transferKeyBytes = 16
const maxKeyGenerationAttempts = 5

type TransferKeyService struct {
	transferKeyRepo repo_interfaces.TransferKeyRepository
}

func NewTransferKeyService(transferKeyRepo repo_interfaces.TransferKeyRepository) *TransferKeyService {
	return &TransferKeyService{transferKeyRepo: transferKeyRepo}
}

func (s *TransferKeyService) Create(ctx context.Context, userID string, req models.CreateTransferKeyRequest) (commons.Response[models.CreateTransferKeyResponse], error) {
	logger.Info("transfer key service create request", logger.Fields{
		"userId":    userID,
		"amount":    req.Amount,
		"expiresIn": req.ExpiresIn,
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer key service create validation failed", err, nil)
		return commons.ErrorResponse[models.CreateTransferKeyResponse]("validation failed", err.Error()), err
	}

	expiresAt := domain.ParseExpiry(req.ExpiresIn, time.Now().UTC())

	var created domain.TransferKey
	var err error
	for attempt := 0; attempt < maxKeyGenerationAttempts; attempt++ {
		var token string
		token, err = generateTransferKeyToken()
		if err != nil {
			break
		}

		created, err = s.transferKeyRepo.Create(ctx, domain.TransferKey{
			Key:       token,
			UserID:    userID,
			Amount:    req.Amount,
			ExpiresAt: expiresAt,
		})
		if err == nil {
			break
		}
	}
	if err != nil {
		logger.Error("transfer key service create failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.CreateTransferKeyResponse]("failed to create transfer key", "Unable to create transfer key right now"), err
	}

	logger.Info("transfer key service create success", logger.Fields{
		"userId":    userID,
		"expiresAt": created.ExpiresAt,
	})
	return commons.SuccessResponse("transfer key created", models.CreateTransferKeyResponse{
		Key:       created.Key,
		ExpiresAt: created.ExpiresAt.Format(time.RFC3339),
	}), nil
}

func (s *TransferKeyService) Get(ctx context.Context, key string) (commons.Response[models.TransferKeyDetailsResponse], error) {
	if key == "" {
		err := fmt.Errorf("key is required")
		return commons.ErrorResponse[models.TransferKeyDetailsResponse]("validation failed", err.Error()), err
	}

	details, err := s.transferKeyRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransferKeyDetailsResponse]("Transfer key not found or expired"), err
		}
		logger.Error("transfer key service get failed", err, nil)
		return commons.ErrorResponse[models.TransferKeyDetailsResponse]("failed to load transfer key", "Unable to load transfer key right now"), err
	}

	return commons.SuccessResponse("transfer key loaded", models.TransferKeyDetailsResponse{
		Amount:        details.Amount.StringFixed(2),
		IsUsed:        details.IsUsed,
		RecipientID:   details.RecipientID,
		RecipientName: details.RecipientName,
	}), nil
}

func generateTransferKeyToken() (string, error) {
	buf := make([]byte, transferKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate transfer key token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
