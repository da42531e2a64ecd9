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
)

type UserService struct {
	userRepo      repo_interfaces.UserRepository
	cryptoService *CryptoService
}

func NewUserService(userRepo repo_interfaces.UserRepository, cryptoService *CryptoService) *UserService {
	return &UserService{
		userRepo:      userRepo,
		cryptoService: cryptoService,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (commons.Response[models.ProfileResponse], error) {
	logger.Info("user service get profile request", logger.Fields{
		"userId": userID,
	})

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("User not found"), err
		}
		logger.Error("user service get profile failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to load profile", "Unable to load profile right now"), err
	}

	response, err := s.toProfileResponse(user)
	if err != nil {
		return commons.ErrorResponse[models.ProfileResponse]("failed to load profile", "Unable to load profile right now"), err
	}

	return commons.SuccessResponse("profile loaded", response), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (commons.Response[models.ProfileResponse], error) {
	logger.Info("user service update profile request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.ProfileResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, req.FullName, req.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ProfileResponse]("User not found"), err
		}
		logger.Error("user service update profile failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.ProfileResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	response, err := s.toProfileResponse(user)
	if err != nil {
		return commons.ErrorResponse[models.ProfileResponse]("failed to update profile", "Unable to update profile right now"), err
	}

	return commons.SuccessResponse("profile updated", response), nil
}

func (s *UserService) toProfileResponse(user domain.User) (models.ProfileResponse, error) {
	response := models.ProfileResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.Phone != nil {
		response.Phone = *user.Phone
	}
	if user.DocumentEncrypted != nil {
		document, err := s.cryptoService.Decrypt(*user.DocumentEncrypted)
		if err != nil {
			logger.Error("user service decrypt document failed", err, logger.Fields{
				"userId": user.ID,
			})
			return models.ProfileResponse{}, err
		}
		response.DocumentNumber = document
	}

	return response, nil
}
