package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fitstride/fitstride-api/internal/domain"
	"github.com/fitstride/fitstride-api/internal/platform/logger"
	"github.com/fitstride/fitstride-api/internal/redact"
	"github.com/fitstride/fitstride-api/internal/store"
	"github.com/google/uuid"
)

// PostgresAccountStore implements the store.AccountStore interface using a
// PostgreSQL database as the storage backend.
type PostgresAccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAccountStore creates a new PostgreSQL implementation of the
// AccountStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresAccountStore(db store.DBTX, log *slog.Logger) *PostgresAccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &PostgresAccountStore{
		db:     db,
		logger: log.With(slog.String("component", "account_store")),
	}
}

// Ensure PostgresAccountStore implements store.AccountStore
var _ store.AccountStore = (*PostgresAccountStore)(nil)

// Create implements store.AccountStore.Create.
// Email uniqueness is enforced by the idx_accounts_email unique index; a
// violation is mapped to store.ErrEmailExists. There is intentionally no
// SELECT-before-INSERT: the constraint is the only guard, so two concurrent
// registrations racing on one email resolve to exactly one winner.
func (s *PostgresAccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during create",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO accounts (
			id, name, email, hashed_password, is_verified, verification_token,
			profile_image_path, height_cm, weight_kg, age, gender,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.Name,
		account.Email,
		account.HashedPassword,
		account.IsVerified,
		account.VerificationToken,
		account.ProfileImagePath,
		account.HeightCm,
		account.WeightKg,
		account.Age,
		account.Gender,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate email during account creation",
				slog.String("account_id", account.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}

		log.Error("failed to create account",
			slog.String("error", redact.Error(err)),
			slog.String("account_id", account.ID.String()))
		return MapError(err)
	}

	log.Info("account created",
		slog.String("account_id", account.ID.String()))
	return nil
}

// GetByID implements store.AccountStore.GetByID.
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *PostgresAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := selectAccountQuery + ` WHERE id = $1`

	account, err := s.scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.String("account_id", id.String()))
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by ID",
			slog.String("error", redact.Error(err)),
			slog.String("account_id", id.String()))
		return nil, MapError(err)
	}

	return account, nil
}

// GetByEmail implements store.AccountStore.GetByEmail.
// The lookup uses the normalized form of the email, matching what Create
// stored. Returns store.ErrAccountNotFound if the account does not exist.
func (s *PostgresAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := selectAccountQuery + ` WHERE email = $1`

	account, err := s.scanAccount(s.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found by email")
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by email",
			slog.String("error", redact.Error(err)))
		return nil, MapError(err)
	}

	return account, nil
}

// Update implements store.AccountStore.Update.
// The full record is written back; a concurrent update to the same account
// resolves to last-write-wins at the row level.
func (s *PostgresAccountStore) Update(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during update",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE accounts
		SET name = $2,
		    email = $3,
		    hashed_password = $4,
		    is_verified = $5,
		    verification_token = $6,
		    profile_image_path = $7,
		    height_cm = $8,
		    weight_kg = $9,
		    age = $10,
		    gender = $11,
		    updated_at = $12
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.Name,
		account.Email,
		account.HashedPassword,
		account.IsVerified,
		account.VerificationToken,
		account.ProfileImagePath,
		account.HeightCm,
		account.WeightKg,
		account.Age,
		account.Gender,
		account.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		log.Error("failed to update account",
			slog.String("error", redact.Error(err)),
			slog.String("account_id", account.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "account"); err != nil {
		return store.ErrAccountNotFound
	}

	log.Debug("account updated",
		slog.String("account_id", account.ID.String()))
	return nil
}

const selectAccountQuery = `
	SELECT id, name, email, hashed_password, is_verified, verification_token,
	       profile_image_path, height_cm, weight_kg, age, gender,
	       created_at, updated_at
	FROM accounts
`

// rowScanner matches *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresAccountStore) scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var gender sql.NullString

	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.HashedPassword,
		&account.IsVerified,
		&account.VerificationToken,
		&account.ProfileImagePath,
		&account.HeightCm,
		&account.WeightKg,
		&account.Age,
		&gender,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gender.Valid {
		g := domain.Gender(gender.String)
		account.Gender = &g
	}

	return &account, nil
}
