package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/memory"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newPixService(store *memory.Store) *services.PixService {
	return services.NewPixService(
		memory.NewPixKeyRepository(store),
		memory.NewAccountRepository(store),
		memory.NewTransactionRepository(store),
		memory.NewTransferKeyRepository(store),
		memory.NewUserRepository(store),
		nil,
	)
}

type transferFixture struct {
	store            *memory.Store
	svc              *services.PixService
	senderAccount    domain.Account
	recipientAccount domain.Account
}

func newTransferFixture(senderBalance, recipientBalance string) transferFixture {
	store := memory.NewStore()
	store.SeedUser(domain.User{ID: "usr-sender", FullName: "Ana Souza", Email: "ana@example.com"})
	store.SeedUser(domain.User{ID: "usr-recipient", FullName: "Bruno Lima", Email: "bruno@example.com"})

	sender := store.SeedAccount(domain.Account{UserID: "usr-sender", AccountType: domain.AccountTypeChecking, Balance: decimal.RequireFromString(senderBalance)})
	recipient := store.SeedAccount(domain.Account{UserID: "usr-recipient", AccountType: domain.AccountTypeChecking, Balance: decimal.RequireFromString(recipientBalance)})

	store.SeedPixKey(domain.PixKey{UserID: "usr-recipient", KeyType: domain.PixKeyTypeEmail, KeyValue: "bruno@example.com", Status: domain.PixKeyStatusActive})

	return transferFixture{store: store, svc: newPixService(store), senderAccount: sender, recipientAccount: recipient}
}

func TestPixServiceCreateRandomKeyGeneratesUUID(t *testing.T) {
	svc := newPixService(memory.NewStore())

	response, err := svc.CreateKey(context.Background(), "usr-1", models.CreatePixKeyRequest{KeyType: "random"})
	if err != nil {
		t.Fatalf("create random key: %v", err)
	}
	if _, parseErr := uuid.Parse(response.Data.KeyValue); parseErr != nil {
		t.Fatalf("expected a uuid value for a random key, got %q", response.Data.KeyValue)
	}
}

func TestPixServiceCreateKeyValueTaken(t *testing.T) {
	store := memory.NewStore()
	store.SeedPixKey(domain.PixKey{UserID: "usr-1", KeyType: domain.PixKeyTypeEmail, KeyValue: "ana@example.com", Status: domain.PixKeyStatusActive})
	svc := newPixService(store)

	_, err := svc.CreateKey(context.Background(), "usr-2", models.CreatePixKeyRequest{KeyType: "email", KeyValue: "ana@example.com"})
	if !errors.Is(err, domain.ErrPixKeyTaken) {
		t.Fatalf("expected ErrPixKeyTaken, got %v", err)
	}
}

func TestPixServiceReactivationBlockedWhileValueHeld(t *testing.T) {
	store := memory.NewStore()
	mine := store.SeedPixKey(domain.PixKey{UserID: "usr-1", KeyType: domain.PixKeyTypeEmail, KeyValue: "shared@example.com", Status: domain.PixKeyStatusInactive})
	store.SeedPixKey(domain.PixKey{UserID: "usr-2", KeyType: domain.PixKeyTypeEmail, KeyValue: "shared@example.com", Status: domain.PixKeyStatusActive})
	svc := newPixService(store)

	_, err := svc.UpdateKeyStatus(context.Background(), mine.ID, "usr-1", models.UpdatePixKeyStatusRequest{Status: "active"})
	if !errors.Is(err, domain.ErrPixKeyTaken) {
		t.Fatalf("expected ErrPixKeyTaken on reactivation, got %v", err)
	}
}

func TestPixServiceTransferMovesBothBalances(t *testing.T) {
	fixture := newTransferFixture("500", "300")

	response, err := fixture.svc.CreatePixTransfer(context.Background(), "usr-sender", models.PixTransferRequest{
		PixKey: "bruno@example.com",
		Amount: decimal.RequireFromString("50.00"),
	})
	if err != nil {
		t.Fatalf("pix transfer: %v", err)
	}
	if response.Data.Type != "credit" {
		t.Fatalf("expected the credit-side record, got %s", response.Data.Type)
	}
	if response.Data.AccountID != fixture.recipientAccount.ID {
		t.Fatalf("credit record must belong to the recipient account")
	}

	sender, _ := fixture.store.Account(fixture.senderAccount.ID)
	recipient, _ := fixture.store.Account(fixture.recipientAccount.ID)
	if !sender.Balance.Equal(decimal.RequireFromString("450")) {
		t.Fatalf("expected sender balance 450, got %s", sender.Balance)
	}
	if !recipient.Balance.Equal(decimal.RequireFromString("350")) {
		t.Fatalf("expected recipient balance 350, got %s", recipient.Balance)
	}

	records, err := memory.NewTransactionRepository(fixture.store).ListByAccountID(context.Background(), fixture.senderAccount.ID, true)
	if err != nil {
		t.Fatalf("list sender transactions: %v", err)
	}
	if len(records) != 1 || records[0].Type != domain.TransactionTypeDebit {
		t.Fatalf("expected exactly one debit record on the sender side")
	}
}

func TestPixServiceTransferToOwnKeyRejected(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser(domain.User{ID: "usr-1", FullName: "Ana Souza", Email: "ana@example.com"})
	store.SeedAccount(domain.Account{UserID: "usr-1", AccountType: domain.AccountTypeChecking, Balance: decimal.RequireFromString("100")})
	store.SeedPixKey(domain.PixKey{UserID: "usr-1", KeyType: domain.PixKeyTypeEmail, KeyValue: "ana@example.com", Status: domain.PixKeyStatusActive})
	svc := newPixService(store)

	_, err := svc.CreatePixTransfer(context.Background(), "usr-1", models.PixTransferRequest{
		PixKey: "ana@example.com",
		Amount: decimal.RequireFromString("10"),
	})
	if !errors.Is(err, domain.ErrSelfTransferNotAllowed) {
		t.Fatalf("expected ErrSelfTransferNotAllowed, got %v", err)
	}
}

func TestPixServiceTransferUnknownAlias(t *testing.T) {
	fixture := newTransferFixture("500", "300")

	response, err := fixture.svc.CreatePixTransfer(context.Background(), "usr-sender", models.PixTransferRequest{
		PixKey: "nobody@example.com",
		Amount: decimal.RequireFromString("10"),
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown alias, got %v", err)
	}
	if response.Message != "Recipient not found" {
		t.Fatalf("expected recipient not found message, got %q", response.Message)
	}
}

func TestPixServiceTransferInsufficientFundsLeavesBalances(t *testing.T) {
	fixture := newTransferFixture("30", "300")

	_, err := fixture.svc.CreatePixTransfer(context.Background(), "usr-sender", models.PixTransferRequest{
		PixKey: "bruno@example.com",
		Amount: decimal.RequireFromString("50"),
	})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	sender, _ := fixture.store.Account(fixture.senderAccount.ID)
	recipient, _ := fixture.store.Account(fixture.recipientAccount.ID)
	if !sender.Balance.Equal(decimal.RequireFromString("30")) || !recipient.Balance.Equal(decimal.RequireFromString("300")) {
		t.Fatal("failed transfer must not move either balance")
	}
}

func TestPixServiceTransferConsumesTransferKeyOnce(t *testing.T) {
	fixture := newTransferFixture("500", "300")
	fixture.store.SeedTransferKey(domain.TransferKey{
		Key:       "tok-abc",
		UserID:    "usr-recipient",
		Amount:    decimal.RequireFromString("50"),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})

	request := models.PixTransferRequest{
		PixKey:      "bruno@example.com",
		Amount:      decimal.RequireFromString("50"),
		TransferKey: "tok-abc",
	}

	if _, err := fixture.svc.CreatePixTransfer(context.Background(), "usr-sender", request); err != nil {
		t.Fatalf("first keyed transfer: %v", err)
	}
	stored, _ := fixture.store.TransferKey("tok-abc")
	if !stored.IsUsed {
		t.Fatal("transfer key must be consumed by the transfer")
	}

	_, err := fixture.svc.CreatePixTransfer(context.Background(), "usr-sender", request)
	if !errors.Is(err, domain.ErrTransferKeyInvalid) {
		t.Fatalf("expected ErrTransferKeyInvalid on reuse, got %v", err)
	}

	sender, _ := fixture.store.Account(fixture.senderAccount.ID)
	if !sender.Balance.Equal(decimal.RequireFromString("450")) {
		t.Fatalf("second attempt must not move the balance, got %s", sender.Balance)
	}
}

func TestPixServiceTransferExpiredTransferKey(t *testing.T) {
	fixture := newTransferFixture("500", "300")
	fixture.store.SeedTransferKey(domain.TransferKey{
		Key:       "tok-old",
		UserID:    "usr-recipient",
		Amount:    decimal.RequireFromString("50"),
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	})

	_, err := fixture.svc.CreatePixTransfer(context.Background(), "usr-sender", models.PixTransferRequest{
		PixKey:      "bruno@example.com",
		Amount:      decimal.RequireFromString("50"),
		TransferKey: "tok-old",
	})
	if !errors.Is(err, domain.ErrTransferKeyInvalid) {
		t.Fatalf("expected ErrTransferKeyInvalid for expired key, got %v", err)
	}

	sender, _ := fixture.store.Account(fixture.senderAccount.ID)
	if !sender.Balance.Equal(decimal.RequireFromString("500")) {
		t.Fatal("expired key must not move the balance")
	}
}

func TestPixServiceTransferAmountMustMatchTransferKey(t *testing.T) {
	fixture := newTransferFixture("500", "300")
	fixture.store.SeedTransferKey(domain.TransferKey{
		Key:       "tok-fixed",
		UserID:    "usr-recipient",
		Amount:    decimal.RequireFromString("75"),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})

	_, err := fixture.svc.CreatePixTransfer(context.Background(), "usr-sender", models.PixTransferRequest{
		PixKey:      "bruno@example.com",
		Amount:      decimal.RequireFromString("50"),
		TransferKey: "tok-fixed",
	})
	if err == nil {
		t.Fatal("expected a mismatch between request amount and key amount to fail")
	}
}

func TestPixServiceGetKeyDetailsMasksValue(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser(domain.User{ID: "usr-1", FullName: "Ana Souza", Email: "ana@example.com"})
	store.SeedPixKey(domain.PixKey{UserID: "usr-1", KeyType: domain.PixKeyTypeEmail, KeyValue: "ana@example.com", Status: domain.PixKeyStatusActive})
	svc := newPixService(store)

	response, err := svc.GetKeyDetails(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("get key details: %v", err)
	}
	if response.Data.RecipientName != "Ana Souza" {
		t.Fatalf("expected recipient name, got %q", response.Data.RecipientName)
	}
	if response.Data.KeyValueMasked == "ana@example.com" {
		t.Fatal("key value must be masked in the details view")
	}
}

func TestPixServiceGetPrimaryKeyPrefersCPF(t *testing.T) {
	store := memory.NewStore()
	store.SeedPixKey(domain.PixKey{UserID: "usr-1", KeyType: domain.PixKeyTypeEmail, KeyValue: "ana@example.com", Status: domain.PixKeyStatusActive})
	store.SeedPixKey(domain.PixKey{UserID: "usr-1", KeyType: domain.PixKeyTypeCPF, KeyValue: "52998224725", Status: domain.PixKeyStatusActive})
	svc := newPixService(store)

	response, err := svc.GetPrimaryKey(context.Background(), "usr-1")
	if err != nil {
		t.Fatalf("get primary key: %v", err)
	}
	if response.Data.KeyType != "cpf" {
		t.Fatalf("expected the cpf key to win, got %s", response.Data.KeyType)
	}
}
