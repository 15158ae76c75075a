package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/fitstride/fitstride-api/internal/api"
	"github.com/fitstride/fitstride-api/internal/config"
	"github.com/fitstride/fitstride-api/internal/mail"
	"github.com/fitstride/fitstride-api/internal/platform/awsx"
	"github.com/fitstride/fitstride-api/internal/platform/logger"
	"github.com/fitstride/fitstride-api/internal/platform/postgres"
	"github.com/fitstride/fitstride-api/internal/service/account"
	"github.com/fitstride/fitstride-api/internal/service/auth"
	"github.com/fitstride/fitstride-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	accountStore store.AccountStore

	tokenService     auth.TokenService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier

	mailDispatcher *mail.Dispatcher
	accountService *account.Service
	imageStore     api.ImageStore
}

// newApplication wires every dependency from configuration. Construction is
// strictly bottom-up: platform clients first, then stores and services, so a
// failure surfaces before anything starts running.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Email.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	gateway := awsx.NewSESGateway(ses.NewFromConfig(awsCfg), cfg.Email.Sender)
	dispatcher := mail.NewDispatcher(gateway, mail.DispatcherConfig{
		WorkerCount: cfg.Email.WorkerCount,
		QueueSize:   cfg.Email.QueueSize,
		SendTimeout: time.Duration(cfg.Email.SendTimeoutSeconds) * time.Second,
	}, log)
	notifier := mail.NewVerificationNotifier(dispatcher, cfg.Email.VerifyBaseURL)

	storageCfg := awsCfg
	if cfg.Storage.Region != cfg.Email.Region {
		storageCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Storage.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS storage configuration: %w", err)
		}
	}
	imageStore := awsx.NewS3ImageStore(
		s3.NewFromConfig(storageCfg),
		cfg.Storage.Bucket,
		cfg.Storage.KeyPrefix,
	)

	accountStore := postgres.NewPostgresAccountStore(db, log)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	accountService := account.NewService(
		accountStore,
		hasher,
		verifier,
		tokenService,
		notifier,
		log,
	)

	return &application{
		config:           cfg,
		logger:           log,
		db:               db,
		accountStore:     accountStore,
		tokenService:     tokenService,
		passwordHasher:   hasher,
		passwordVerifier: verifier,
		mailDispatcher:   dispatcher,
		accountService:   accountService,
		imageStore:       imageStore,
	}, nil
}

// start launches the background components owned by the application.
func (app *application) start() {
	app.mailDispatcher.Start()
}

// cleanup releases the application's resources in reverse construction
// order. The dispatcher drains its queue before the database closes.
func (app *application) cleanup() {
	app.mailDispatcher.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
}

// initializeApp loads configuration, sets up logging, and builds the
// application dependency graph.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return newApplication(ctx, cfg, log)
}
