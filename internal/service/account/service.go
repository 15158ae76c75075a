// Package account implements the account lifecycle service: the state
// machine coordinating registration, login, email verification, and profile
// updates over the store, hasher, token service, and notification gateway.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fitstride/fitstride-api/internal/domain"
	"github.com/fitstride/fitstride-api/internal/platform/logger"
	"github.com/fitstride/fitstride-api/internal/redact"
	"github.com/fitstride/fitstride-api/internal/service/auth"
	"github.com/fitstride/fitstride-api/internal/store"
	"github.com/google/uuid"
)

// dummyBcryptHash is compared against when login hits an unknown email, so
// the unknown-email and wrong-password paths cost the same. Its plaintext is
// random and unused.
const dummyBcryptHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Notifier is the outbound-notification collaborator consumed by the
// service. Implementations must be fire-and-forget: a delivery failure never
// surfaces here.
type Notifier interface {
	// SendVerification asks for a verification email carrying the token to
	// be delivered to the given address, off the request path.
	SendVerification(to, token string)
}

// Service orchestrates the account lifecycle. The store and token issuer
// know nothing of each other; this service is the only coordinator.
type Service struct {
	accounts store.AccountStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	tokens   auth.TokenService
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates the account lifecycle service with its collaborators.
// All dependencies are constructed once at process start and injected.
func NewService(
	accounts store.AccountStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	tokens auth.TokenService,
	notifier Notifier,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		accounts: accounts,
		hasher:   hasher,
		verifier: verifier,
		tokens:   tokens,
		notifier: notifier,
		logger:   log.With(slog.String("component", "account_service")),
	}
}

// Register creates a new, unverified account and kicks off the verification
// email. Returns a ValidationError naming exactly the missing fields,
// store.ErrEmailExists on a duplicate email, or the public view on success.
// The welcome email is enqueued after the account is durably created; a mail
// failure never rolls registration back.
func (s *Service) Register(ctx context.Context, name, email, password string) (domain.AccountView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "Name is required"
	}
	if email == "" {
		fields["email"] = "Email is required"
	}
	if password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return domain.AccountView{}, NewValidationError(fields)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", redact.Error(err))
		return domain.AccountView{}, fmt.Errorf("failed to hash password: %w", err)
	}

	acct, err := domain.NewAccount(name, email, hashed)
	if err != nil {
		return domain.AccountView{}, NewValidationError(map[string]string{
			"email": "Email is invalid",
		})
	}

	verificationToken, err := s.tokens.GenerateVerificationToken(ctx, acct.ID, acct.Email)
	if err != nil {
		log.Error("failed to generate verification token",
			"error", redact.Error(err),
			"account_id", acct.ID)
		return domain.AccountView{}, fmt.Errorf("failed to generate verification token: %w", err)
	}
	acct.VerificationToken = &verificationToken

	if err := s.accounts.Create(ctx, acct); err != nil {
		if store.IsDuplicateError(err) {
			return domain.AccountView{}, store.ErrEmailExists
		}
		log.Error("failed to create account", "error", redact.Error(err))
		return domain.AccountView{}, fmt.Errorf("failed to create account: %w", err)
	}

	// The account is the durable source of truth; email delivery is
	// best-effort and decoupled from this request.
	s.notifier.SendVerification(acct.Email, verificationToken)

	log.Info("account registered", "account_id", acct.ID)
	return acct.View(), nil
}

// Login verifies the credentials and issues a session token. Both an unknown
// email and a wrong password yield the same ErrInvalidCredentials, and the
// unknown-email path performs a dummy hash comparison so the two are
// indistinguishable by timing as well as by message.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Equalize timing with the wrong-password path.
			_ = s.verifier.Compare(dummyBcryptHash, password)
			return "", ErrInvalidCredentials
		}
		log.Error("failed to look up account for login", "error", redact.Error(err))
		return "", fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.verifier.Compare(acct.HashedPassword, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(ctx, acct.ID)
	if err != nil {
		log.Error("failed to issue session token",
			"error", redact.Error(err),
			"account_id", acct.ID)
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	log.Info("login succeeded", "account_id", acct.ID)
	return token, nil
}

// VerifyEmail consumes a verification token: the account whose stored token
// matches transitions to Verified and the token is cleared. Every failure
// mode, including replay of an already-consumed token, surfaces as
// ErrInvalidVerificationLink — a cleared token can no longer match, which
// is what makes the operation replay-safe.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.tokens.ValidateVerificationToken(ctx, token)
	if err != nil {
		return ErrInvalidVerificationLink
	}

	acct, err := s.accounts.GetByEmail(ctx, claims.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrInvalidVerificationLink
		}
		log.Error("failed to look up account for verification", "error", redact.Error(err))
		return fmt.Errorf("failed to look up account: %w", err)
	}

	if acct.VerificationToken == nil || *acct.VerificationToken != token {
		return ErrInvalidVerificationLink
	}

	acct.IsVerified = true
	acct.VerificationToken = nil

	if err := s.accounts.Update(ctx, acct); err != nil {
		log.Error("failed to persist verification",
			"error", redact.Error(err),
			"account_id", acct.ID)
		return fmt.Errorf("failed to persist verification: %w", err)
	}

	log.Info("email verified", "account_id", acct.ID)
	return nil
}

// GetAccount returns the public view of the account with the given ID, or
// store.ErrAccountNotFound.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (domain.AccountView, error) {
	acct, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.AccountView{}, store.ErrAccountNotFound
		}
		return domain.AccountView{}, fmt.Errorf("failed to get account: %w", err)
	}

	return acct.View(), nil
}

// UpdateProfile applies a partial update to the account with the given
// email. Only fields actually supplied in the patch are written: a nil field
// preserves the current value, while an explicit zero (height 0) is applied.
// A supplied password is re-hashed before it touches the record.
func (s *Service) UpdateProfile(ctx context.Context, email string, patch domain.ProfilePatch) (domain.AccountView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return domain.AccountView{}, NewValidationError(map[string]string{
			"patch": err.Error(),
		})
	}

	acct, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.AccountView{}, store.ErrAccountNotFound
		}
		log.Error("failed to look up account for update", "error", redact.Error(err))
		return domain.AccountView{}, fmt.Errorf("failed to look up account: %w", err)
	}

	if patch.Password != nil && *patch.Password != "" {
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			log.Error("failed to hash new password",
				"error", redact.Error(err),
				"account_id", acct.ID)
			return domain.AccountView{}, fmt.Errorf("failed to hash password: %w", err)
		}
		acct.HashedPassword = hashed
	}

	patch.Apply(acct)

	if err := s.accounts.Update(ctx, acct); err != nil {
		log.Error("failed to persist profile update",
			"error", redact.Error(err),
			"account_id", acct.ID)
		return domain.AccountView{}, fmt.Errorf("failed to persist profile update: %w", err)
	}

	log.Info("profile updated", "account_id", acct.ID)
	return acct.View(), nil
}
