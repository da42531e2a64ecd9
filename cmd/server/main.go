package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mockqv/Lumina-Bank/internal/adapter/cache"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/controller"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/middleware"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/router"
	"github.com/mockqv/Lumina-Bank/internal/adapter/repository/postgres"
	"github.com/mockqv/Lumina-Bank/internal/config"
	"github.com/mockqv/Lumina-Bank/internal/logger"
	"github.com/mockqv/Lumina-Bank/internal/usecase/services"
)

const pixDetailsCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrationCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgres.RunMigrations(migrationCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	cryptoService, err := services.NewCryptoService(cfg.CryptoKey)
	if err != nil {
		log.Fatalf("init crypto service: %v", err)
	}

	var detailsCache *cache.ViewCache[models.PixKeyDetailsResponse]
	if cfg.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = redisClient.Close() }()
		detailsCache = cache.NewViewCache[models.PixKeyDetailsResponse](redisClient, pixDetailsCacheTTL)
	}

	userRepo := postgres.NewUserRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	pixKeyRepo := postgres.NewPixKeyRepository(db)
	transferKeyRepo := postgres.NewTransferKeyRepository(db)

	authService := services.NewAuthService(userRepo, cryptoService, cfg.JWTSecret, cfg.TokenLifetime)
	userService := services.NewUserService(userRepo, cryptoService)
	accountService := services.NewAccountService(accountRepo)
	transactionService := services.NewTransactionService(transactionRepo, accountRepo)
	statementService := services.NewStatementService(accountRepo, transactionRepo)
	transferKeyService := services.NewTransferKeyService(transferKeyRepo)
	pixService := services.NewPixService(pixKeyRepo, accountRepo, transactionRepo, transferKeyRepo, userRepo, detailsCache)

	mux := router.New(
		middleware.JWTAuth(cfg.JWTSecret),
		controller.NewAuthController(authService),
		controller.NewUserController(userService),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transactionService, statementService),
		controller.NewPixController(pixService),
		controller.NewTransferKeyController(transferKeyService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", err, nil)
		}
	}()

	logger.Info("server listening", logger.Fields{"addr": cfg.HTTPAddr})
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}
