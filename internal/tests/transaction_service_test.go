package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/memory"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newTransactionService(store *memory.Store) *services.TransactionService {
	return services.NewTransactionService(memory.NewTransactionRepository(store), memory.NewAccountRepository(store))
}

func TestTransactionServiceCreateValidationError(t *testing.T) {
	svc := newTransactionService(memory.NewStore())

	_, err := svc.CreateTransaction(context.Background(), "usr-1", models.CreateTransactionRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty transaction request")
	}
}

func TestTransactionServiceDepositsAccumulate(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount(domain.Account{UserID: "usr-1", AccountType: domain.AccountTypeChecking, Balance: decimal.Zero})
	svc := newTransactionService(store)

	for _, amount := range []string{"1000", "200"} {
		response, err := svc.CreateTransaction(context.Background(), "usr-1", models.CreateTransactionRequest{
			AccountID: account.ID,
			Type:      "credit",
			Amount:    decimal.RequireFromString(amount),
		})
		if err != nil {
			t.Fatalf("deposit %s: %v", amount, err)
		}
		if response.Data.Type != "credit" {
			t.Fatalf("expected a credit record, got %s", response.Data.Type)
		}
	}

	stored, _ := store.Account(account.ID)
	if !stored.Balance.Equal(decimal.RequireFromString("1200")) {
		t.Fatalf("expected balance 1200, got %s", stored.Balance)
	}
}

func TestTransactionServiceDebitInsufficientFunds(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount(domain.Account{UserID: "usr-1", AccountType: domain.AccountTypeChecking, Balance: decimal.RequireFromString("100")})
	svc := newTransactionService(store)

	response, err := svc.CreateTransaction(context.Background(), "usr-1", models.CreateTransactionRequest{
		AccountID: account.ID,
		Type:      "debit",
		Amount:    decimal.RequireFromString("200"),
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if response.Message != "Insufficient funds" {
		t.Fatalf("expected insufficient funds message, got %q", response.Message)
	}

	stored, _ := store.Account(account.ID)
	if !stored.Balance.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("rejected debit must not move the balance, got %s", stored.Balance)
	}

	records, err := memory.NewTransactionRepository(store).ListByAccountID(context.Background(), account.ID, true)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("rejected debit must not append a ledger entry, got %d", len(records))
	}
}

func TestTransactionServiceCreateForeignAccountDenied(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount(domain.Account{UserID: "usr-1", AccountType: domain.AccountTypeChecking, Balance: decimal.Zero})
	svc := newTransactionService(store)

	_, err := svc.CreateTransaction(context.Background(), "usr-2", models.CreateTransactionRequest{
		AccountID: account.ID,
		Type:      "credit",
		Amount:    decimal.RequireFromString("10"),
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for foreign account, got %v", err)
	}
}

func TestTransactionServiceGetRecentClampsLimit(t *testing.T) {
	store := memory.NewStore()
	account := store.SeedAccount(domain.Account{UserID: "usr-1", AccountType: domain.AccountTypeChecking, Balance: decimal.Zero})
	svc := newTransactionService(store)

	for i := 0; i < 15; i++ {
		if _, err := svc.CreateTransaction(context.Background(), "usr-1", models.CreateTransactionRequest{
			AccountID: account.ID,
			Type:      "credit",
			Amount:    decimal.RequireFromString("1"),
		}); err != nil {
			t.Fatalf("seed deposit: %v", err)
		}
	}

	response, err := svc.GetRecent(context.Background(), "usr-1", 0)
	if err != nil {
		t.Fatalf("get recent: %v", err)
	}
	if len(*response.Data) != 10 {
		t.Fatalf("expected default limit of 10 records, got %d", len(*response.Data))
	}
}
