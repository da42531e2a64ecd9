package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mockqv/Lumina-Bank/internal/adapter/cache"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/repo_interfaces"
	"github.com/mockqv/Lumina-Bank/internal/commons"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
)

type PixService struct {
	pixKeyRepo      repo_interfaces.PixKeyRepository
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	transferKeyRepo repo_interfaces.TransferKeyRepository
	userRepo        repo_interfaces.UserRepository
	// detailsCache may be nil; it only memoizes the recipient-name view.
	detailsCache *cache.ViewCache[models.PixKeyDetailsResponse]
}

func NewPixService(
	pixKeyRepo repo_interfaces.PixKeyRepository,
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	transferKeyRepo repo_interfaces.TransferKeyRepository,
	userRepo repo_interfaces.UserRepository,
	detailsCache *cache.ViewCache[models.PixKeyDetailsResponse],
) *PixService {
	return &PixService{
		pixKeyRepo:      pixKeyRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		transferKeyRepo: transferKeyRepo,
		userRepo:        userRepo,
		detailsCache:    detailsCache,
	}
}

func (s *PixService) CreateKey(ctx context.Context, userID string, req models.CreatePixKeyRequest) (commons.Response[models.PixKeyResponse], error) {
	logger.Info("pix service create key request", logger.Fields{
		"userId":  userID,
		"keyType": req.KeyType,
	})

	if err := req.Validate(); err != nil {
		logger.Error("pix service create key validation failed", err, nil)
		return commons.ErrorResponse[models.PixKeyResponse]("validation failed", err.Error()), err
	}

	keyType := domain.PixKeyType(strings.TrimSpace(req.KeyType))
	keyValue := strings.TrimSpace(req.KeyValue)
	if keyType == domain.PixKeyTypeRandom {
		keyValue = uuid.NewString()
	}

	created, err := s.pixKeyRepo.Create(ctx, domain.PixKey{
		UserID:   userID,
		KeyType:  keyType,
		KeyValue: keyValue,
		Status:   domain.PixKeyStatusActive,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPixKeyTaken) {
			return commons.ErrorResponse[models.PixKeyResponse](domain.ErrPixKeyTaken.Error()), err
		}
		logger.Error("pix service create key failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.PixKeyResponse]("failed to create pix key", "Unable to create pix key right now"), err
	}

	s.detailsCache.Delete(ctx, detailsCacheKey(created.KeyValue))

	logger.Info("pix service create key success", logger.Fields{
		"keyId": created.ID,
	})
	return commons.SuccessResponse("pix key created", models.NewPixKeyResponse(created)), nil
}

func (s *PixService) ListKeys(ctx context.Context, userID string) (commons.Response[[]models.PixKeyResponse], error) {
	keys, err := s.pixKeyRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Error("pix service list keys failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.PixKeyResponse]("failed to list pix keys", "Unable to list pix keys right now"), err
	}

	responses := make([]models.PixKeyResponse, 0, len(keys))
	for _, key := range keys {
		responses = append(responses, models.NewPixKeyResponse(key))
	}

	return commons.SuccessResponse("pix keys loaded", responses), nil
}

func (s *PixService) UpdateKeyStatus(ctx context.Context, keyID string, userID string, req models.UpdatePixKeyStatusRequest) (commons.Response[models.PixKeyResponse], error) {
	logger.Info("pix service update key status request", logger.Fields{
		"keyId":  keyID,
		"status": req.Status,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.PixKeyResponse]("validation failed", err.Error()), err
	}

	updated, err := s.pixKeyRepo.UpdateStatus(ctx, keyID, userID, domain.PixKeyStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.PixKeyResponse]("Pix key not found or access denied"), err
		case errors.Is(err, domain.ErrPixKeyTaken):
			return commons.ErrorResponse[models.PixKeyResponse](domain.ErrPixKeyTaken.Error()), err
		}
		logger.Error("pix service update key status failed", err, logger.Fields{
			"keyId": keyID,
		})
		return commons.ErrorResponse[models.PixKeyResponse]("failed to update pix key", "Unable to update pix key right now"), err
	}

	s.detailsCache.Delete(ctx, detailsCacheKey(updated.KeyValue))

	return commons.SuccessResponse("pix key updated", models.NewPixKeyResponse(updated)), nil
}

func (s *PixService) DeleteKey(ctx context.Context, keyID string, userID string) (commons.Response[struct{}], error) {
	logger.Info("pix service delete key request", logger.Fields{
		"keyId": keyID,
	})

	// Look the key up first so the cached details view can be invalidated.
	var keyValue string
	if keys, err := s.pixKeyRepo.ListByUserID(ctx, userID); err == nil {
		for _, key := range keys {
			if key.ID == keyID {
				keyValue = key.KeyValue
				break
			}
		}
	}

	if err := s.pixKeyRepo.Delete(ctx, keyID, userID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("Pix key not found or access denied"), err
		}
		logger.Error("pix service delete key failed", err, logger.Fields{
			"keyId": keyID,
		})
		return commons.ErrorResponse[struct{}]("failed to delete pix key", "Unable to delete pix key right now"), err
	}

	if keyValue != "" {
		s.detailsCache.Delete(ctx, detailsCacheKey(keyValue))
	}

	return commons.SuccessResponse("pix key deleted", struct{}{}), nil
}

func (s *PixService) GetKeyDetails(ctx context.Context, keyValue string) (commons.Response[models.PixKeyDetailsResponse], error) {
	keyValue = strings.TrimSpace(keyValue)
	if keyValue == "" {
		err := fmt.Errorf("key value is required")
		return commons.ErrorResponse[models.PixKeyDetailsResponse]("validation failed", err.Error()), err
	}

	if cached, ok := s.detailsCache.Get(ctx, detailsCacheKey(keyValue)); ok {
		return commons.SuccessResponse("pix key details loaded", *cached), nil
	}

	key, err := s.pixKeyRepo.GetActiveByValue(ctx, keyValue)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PixKeyDetailsResponse]("Pix key not found"), err
		}
		logger.Error("pix service get key details failed", err, nil)
		return commons.ErrorResponse[models.PixKeyDetailsResponse]("failed to load pix key details", "Unable to load pix key details right now"), err
	}

	owner, err := s.userRepo.GetByID(ctx, key.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PixKeyDetailsResponse]("Pix key not found"), err
		}
		logger.Error("pix service get key owner failed", err, logger.Fields{
			"keyId": key.ID,
		})
		return commons.ErrorResponse[models.PixKeyDetailsResponse]("failed to load pix key details", "Unable to load pix key details right now"), err
	}

	details := models.PixKeyDetailsResponse{
		RecipientName:  owner.FullName,
		KeyType:        string(key.KeyType),
		KeyValueMasked: maskKeyValue(key.KeyValue),
	}
	s.detailsCache.Set(ctx, detailsCacheKey(keyValue), &details)

	return commons.SuccessResponse("pix key details loaded", details), nil
}

func (s *PixService) GetPrimaryKey(ctx context.Context, userID string) (commons.Response[models.PixKeyResponse], error) {
	key, err := s.pixKeyRepo.GetPrimaryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PixKeyResponse]("No active pix key for this user"), err
		}
		logger.Error("pix service get primary key failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.PixKeyResponse]("failed to load pix key", "Unable to load pix key right now"), err
	}

	return commons.SuccessResponse("pix key loaded", models.NewPixKeyResponse(key)), nil
}

// CreatePixTransfer moves money from the caller's primary account to the
// primary account of whoever owns the alias. Every check that can fail
// without touching balances runs before the posting; the posting itself, and
// the consumption of an attached transfer key, are one atomic unit.
func (s *PixService) CreatePixTransfer(ctx context.Context, userID string, req models.PixTransferRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("pix service create transfer request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("pix service create transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	transferKey := strings.TrimSpace(req.TransferKey)
	if transferKey != "" {
		details, err := s.transferKeyRepo.GetByKey(ctx, transferKey)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				err = domain.ErrTransferKeyInvalid
				return commons.ErrorResponse[models.TransactionResponse](domain.ErrTransferKeyInvalid.Error()), err
			}
			logger.Error("pix service create transfer key lookup failed", err, nil)
			return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
		}
		if details.IsUsed {
			err = domain.ErrTransferKeyInvalid
			return commons.ErrorResponse[models.TransactionResponse](domain.ErrTransferKeyInvalid.Error()), err
		}
		if !details.Amount.Equal(req.Amount) {
			err = fmt.Errorf("amount does not match the transfer key request")
			return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
		}
	}

	recipientKey, err := s.pixKeyRepo.GetActiveByValue(ctx, strings.TrimSpace(req.PixKey))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Recipient not found"), err
		}
		logger.Error("pix service create transfer resolve key failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if recipientKey.UserID == userID {
		err = domain.ErrSelfTransferNotAllowed
		return commons.ErrorResponse[models.TransactionResponse](domain.ErrSelfTransferNotAllowed.Error()), err
	}

	senderAccount, err := s.accountRepo.GetPrimaryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("No account found for this user"), err
		}
		logger.Error("pix service create transfer sender account failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	recipientAccount, err := s.accountRepo.GetPrimaryByUserID(ctx, recipientKey.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Recipient has no account"), err
		}
		logger.Error("pix service create transfer recipient account failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	description := strings.TrimSpace(req.Description)
	posting := domain.PixTransferPosting{
		SenderAccountID:    senderAccount.ID,
		SenderUserID:       userID,
		RecipientAccountID: recipientAccount.ID,
		Amount:             req.Amount,
		DebitDescription:   annotateDescription("PIX sent to account "+recipientAccount.ID, description),
		CreditDescription:  annotateDescription("PIX received from account "+senderAccount.ID, description),
		TransferKey:        transferKey,
	}

	creditRecord, err := s.transactionRepo.PostPixTransfer(ctx, posting)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientBalance):
			return commons.ErrorResponse[models.TransactionResponse]("Insufficient funds", err.Error()), err
		case errors.Is(err, domain.ErrTransferKeyInvalid):
			return commons.ErrorResponse[models.TransactionResponse](domain.ErrTransferKeyInvalid.Error()), err
		case errors.Is(err, domain.ErrRecordNotFound):
			return commons.ErrorResponse[models.TransactionResponse]("Account not found or access denied"), err
		}
		logger.Error("pix service create transfer posting failed", err, logger.Fields{
			"senderAccountId":    posting.SenderAccountID,
			"recipientAccountId": posting.RecipientAccountID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	logger.Info("pix service create transfer success", logger.Fields{
		"creditTransaction": creditRecord.ID,
	})
	return commons.SuccessResponse("transfer completed", models.NewTransactionResponse(creditRecord)), nil
}

func annotateDescription(prefix, description string) string {
	if description == "" {
		return prefix
	}
	return prefix + " - " + description
}

func detailsCacheKey(keyValue string) string {
	return "pix:details:" + keyValue
}

func maskKeyValue(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
