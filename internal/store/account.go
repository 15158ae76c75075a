package store

import (
	"context"

	"github.com/fitstride/fitstride-api/internal/domain"
	"github.com/google/uuid"
)

// AccountStore defines the interface for account persistence.
// It is the single shared resource of the account subsystem; implementations
// must be safe for concurrent use and must enforce email uniqueness
// atomically (a unique constraint, not a read-then-write check).
type AccountStore interface {
	// Create saves a new account to the store.
	// Returns ErrEmailExists if the email is already taken. The uniqueness
	// check and the insert are a single atomic operation: under concurrent
	// registrations racing on the same email, exactly one Create succeeds.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByEmail retrieves an account by its normalized email address.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// Update persists the full account record, preserving no prior state:
	// callers load the account, mutate it, and pass the complete record back.
	// Returns ErrAccountNotFound if the account does not exist.
	Update(ctx context.Context, account *domain.Account) error
}
