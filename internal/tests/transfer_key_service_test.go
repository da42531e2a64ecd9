package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/memory"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/usecase/services"
	"github.com/shopspring/decimal"
)

var transferKeyTokenPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestTransferKeyServiceCreateValidationError(t *testing.T) {
	svc := services.NewTransferKeyService(memory.NewTransferKeyRepository(memory.NewStore()))

	_, err := svc.Create(context.Background(), "usr-1", models.CreateTransferKeyRequest{Amount: decimal.Zero})
	if err == nil {
		t.Fatal("expected validation error for non-positive amount")
	}
}

func TestTransferKeyServiceCreateGeneratesOpaqueToken(t *testing.T) {
	store := memory.NewStore()
	svc := services.NewTransferKeyService(memory.NewTransferKeyRepository(store))

	response, err := svc.Create(context.Background(), "usr-1", models.CreateTransferKeyRequest{
		Amount:    decimal.RequireFromString("75.50"),
		ExpiresIn: "12h",
	})
	if err != nil {
		t.Fatalf("create transfer key: %v", err)
	}
	if !transferKeyTokenPattern.MatchString(response.Data.Key) {
		t.Fatalf("expected a 32-char hex token, got %q", response.Data.Key)
	}

	stored, ok := store.TransferKey(response.Data.Key)
	if !ok {
		t.Fatal("token must be persisted under its own value")
	}
	if stored.IsUsed {
		t.Fatal("new transfer keys start unused")
	}
	if remaining := time.Until(stored.ExpiresAt); remaining < 11*time.Hour || remaining > 13*time.Hour {
		t.Fatalf("expected roughly 12h of lifetime, got %s", remaining)
	}
}

func TestTransferKeyServiceGetUnknownKey(t *testing.T) {
	svc := services.NewTransferKeyService(memory.NewTransferKeyRepository(memory.NewStore()))

	response, err := svc.Get(context.Background(), "tok-missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if response.Message != "Transfer key not found or expired" {
		t.Fatalf("unexpected message %q", response.Message)
	}
}

func TestTransferKeyServiceGetReportsUsedFlag(t *testing.T) {
	store := memory.NewStore()
	store.SeedUser(domain.User{ID: "usr-1", FullName: "Ana Souza", Email: "ana@example.com"})
	store.SeedTransferKey(domain.TransferKey{
		Key:       "tok-used",
		UserID:    "usr-1",
		Amount:    decimal.RequireFromString("20"),
		IsUsed:    true,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})
	svc := services.NewTransferKeyService(memory.NewTransferKeyRepository(store))

	response, err := svc.Get(context.Background(), "tok-used")
	if err != nil {
		t.Fatalf("get used key: %v", err)
	}
	if !response.Data.IsUsed {
		t.Fatal("lookup must report the used flag instead of hiding the key")
	}
	if response.Data.RecipientName != "Ana Souza" {
		t.Fatalf("expected recipient name, got %q", response.Data.RecipientName)
	}
}

func TestTransferKeyServiceGetExpiredKey(t *testing.T) {
	store := memory.NewStore()
	store.SeedTransferKey(domain.TransferKey{
		Key:       "tok-old",
		UserID:    "usr-1",
		Amount:    decimal.RequireFromString("20"),
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	})
	svc := services.NewTransferKeyService(memory.NewTransferKeyRepository(store))

	_, err := svc.Get(context.Background(), "tok-old")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected expired keys to report not found, got %v", err)
	}
}

func TestTransferKeyRepositoryMarkUsedIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	store.SeedTransferKey(domain.TransferKey{
		Key:       "tok-mark",
		UserID:    "usr-1",
		Amount:    decimal.RequireFromString("10"),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	})
	repo := memory.NewTransferKeyRepository(store)

	if err := repo.MarkUsed(context.Background(), "tok-mark"); err != nil {
		t.Fatalf("first mark: %v", err)
	}
	if err := repo.MarkUsed(context.Background(), "tok-mark"); err != nil {
		t.Fatalf("second mark must not fail: %v", err)
	}

	details, err := repo.GetByKey(context.Background(), "tok-mark")
	if err != nil {
		t.Fatalf("get marked key: %v", err)
	}
	if !details.IsUsed {
		t.Fatal("key should report used after MarkUsed")
	}

	if err := repo.MarkUsed(context.Background(), "tok-missing"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found for unknown key, got %v", err)
	}
}
