package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/memory"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/usecase/services"
)

const testCryptoKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newAuthService(t *testing.T, store *memory.Store) *services.AuthService {
	t.Helper()

	cryptoService, err := services.NewCryptoService(testCryptoKey)
	if err != nil {
		t.Fatalf("init crypto service: %v", err)
	}
	return services.NewAuthService(memory.NewUserRepository(store), cryptoService, "test-secret", time.Hour)
}

func TestAuthServiceRegisterValidationError(t *testing.T) {
	svc := newAuthService(t, memory.NewStore())

	_, err := svc.Register(context.Background(), models.RegisterRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty register request")
	}
}

func TestAuthServiceRegisterOpensCheckingAccount(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)

	response, err := svc.Register(context.Background(), models.RegisterRequest{
		FullName: "Ana Souza",
		Email:    "ana@example.com",
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if response.Data.ID == "" {
		t.Fatal("expected a user id in the register response")
	}

	accounts, err := memory.NewAccountRepository(store).ListByUserID(context.Background(), response.Data.ID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("expected one provisioned account, got %d", len(accounts))
	}
	if accounts[0].AccountType != domain.AccountTypeChecking {
		t.Fatalf("expected checking account, got %s", accounts[0].AccountType)
	}
	if !accounts[0].Balance.IsZero() {
		t.Fatalf("expected zero opening balance, got %s", accounts[0].Balance)
	}
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)

	req := models.RegisterRequest{
		FullName: "Ana Souza",
		Email:    "ana@example.com",
		Password: "super-secret",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthServiceLoginRoundTrip(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)

	if _, err := svc.Register(context.Background(), models.RegisterRequest{
		FullName: "Ana Souza",
		Email:    "ana@example.com",
		Password: "super-secret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	response, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ana@example.com",
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if response.Data.Token == "" {
		t.Fatal("expected a signed token")
	}
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(t, store)

	if _, err := svc.Register(context.Background(), models.RegisterRequest{
		FullName: "Ana Souza",
		Email:    "ana@example.com",
		Password: "super-secret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	response, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ana@example.com",
		Password: "not-the-password",
	})
	if err == nil {
		t.Fatal("expected login to fail with wrong password")
	}
	if response.Message != "Invalid credentials" {
		t.Fatalf("expected invalid credentials message, got %q", response.Message)
	}
}
