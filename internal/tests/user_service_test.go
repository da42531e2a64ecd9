package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/memory"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/usecase/services"
)

func newUserService(t *testing.T, store *memory.Store) *services.UserService {
	t.Helper()

	cryptoService, err := services.NewCryptoService(testCryptoKey)
	if err != nil {
		t.Fatalf("init crypto service: %v", err)
	}
	return services.NewUserService(memory.NewUserRepository(store), cryptoService)
}

func TestUserServiceProfileDecryptsDocument(t *testing.T) {
	store := memory.NewStore()
	authSvc := services.NewAuthService(memory.NewUserRepository(store), mustCrypto(t), "test-secret", time.Hour)

	registered, err := authSvc.Register(context.Background(), models.RegisterRequest{
		FullName:       "Ana Souza",
		Email:          "ana@example.com",
		Password:       "super-secret",
		DocumentNumber: "52998224725",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, err := memory.NewUserRepository(store).GetByID(context.Background(), registered.Data.ID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.DocumentEncrypted == nil || *stored.DocumentEncrypted == "52998224725" {
		t.Fatal("document must be stored encrypted")
	}

	profile, err := newUserService(t, store).GetProfile(context.Background(), registered.Data.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Data.DocumentNumber != "52998224725" {
		t.Fatalf("profile must expose the decrypted document, got %q", profile.Data.DocumentNumber)
	}
}

func TestUserServiceUpdateProfilePartial(t *testing.T) {
	store := memory.NewStore()
	user := store.SeedUser(domain.User{FullName: "Ana Souza", Email: "ana@example.com"})
	svc := newUserService(t, store)

	phone := "+5511999990000"
	response, err := svc.UpdateProfile(context.Background(), user.ID, models.UpdateProfileRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if response.Data.Phone != phone {
		t.Fatalf("expected updated phone, got %q", response.Data.Phone)
	}
	if response.Data.FullName != "Ana Souza" {
		t.Fatal("fields not supplied must keep their value")
	}
}

func TestUserServiceUpdateProfileValidationError(t *testing.T) {
	svc := newUserService(t, memory.NewStore())

	_, err := svc.UpdateProfile(context.Background(), "usr-1", models.UpdateProfileRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty update request")
	}
}

func mustCrypto(t *testing.T) *services.CryptoService {
	t.Helper()

	cryptoService, err := services.NewCryptoService(testCryptoKey)
	if err != nil {
		t.Fatalf("init crypto service: %v", err)
	}
	return cryptoService
}
