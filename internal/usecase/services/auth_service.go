package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/repo_interfaces"
	"github.com/mockqv/Lumina-Bank/internal/commons"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the JWT payload shared with the auth middleware.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo      repo_interfaces.UserRepository
	cryptoService *CryptoService
	jwtSecret     []byte
	tokenLifetime time.Duration
}

func NewAuthService(
	userRepo repo_interfaces.UserRepository,
	cryptoService *CryptoService,
	jwtSecret string,
	tokenLifetime time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		cryptoService: cryptoService,
		jwtSecret:     []byte(jwtSecret),
		tokenLifetime: tokenLifetime,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.RegisterResponse], error) {
	logger.Info("auth service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service register validation failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("validation failed", err.Error()), err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("auth service register hash password failed", err, nil)
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	var documentEncrypted *string
	if document := strings.TrimSpace(req.DocumentNumber); document != "" {
		encrypted, err := s.cryptoService.Encrypt(document)
		if err != nil {
			logger.Error("auth service register encrypt document failed", err, nil)
			return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
		}
		documentEncrypted = &encrypted
	}

	user := domain.User{
		FullName:          strings.TrimSpace(req.FullName),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:      string(passwordHash),
		DocumentEncrypted: documentEncrypted,
	}
	// Every new user gets a checking account opened at zero.
	account := domain.Account{
		AccountType: domain.AccountTypeChecking,
		Balance:     decimal.Zero,
	}

	created, err := s.userRepo.CreateWithAccount(ctx, user, account)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return commons.ErrorResponse[models.RegisterResponse](domain.ErrEmailTaken.Error()), err
		}
		logger.Error("auth service register repository failed", err, logger.Fields{
			"email": user.Email,
		})
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	response := models.RegisterResponse{
		ID:        created.ID,
		FullName:  created.FullName,
		Email:     created.Email,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("auth service register success", logger.Fields{
		"userId": response.ID,
	})
	return commons.SuccessResponse("user created successfully", response), nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("auth service login request", logger.Fields{
		"email": req.Email,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			err = fmt.Errorf("invalid credentials")
			return commons.ErrorResponse[models.LoginResponse]("Invalid credentials"), err
		}
		logger.Error("auth service login lookup failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		err = fmt.Errorf("invalid credentials")
		return commons.ErrorResponse[models.LoginResponse]("Invalid credentials"), err
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		logger.Error("auth service login sign token failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	logger.Info("auth service login success", logger.Fields{
		"userId": user.ID,
	})
	return commons.SuccessResponse("logged in successfully", models.LoginResponse{Token: token}), nil
}
