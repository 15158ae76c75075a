package mocks

import (
	"context"
	"sync"

	"github.com/fitstride/fitstride-api/internal/domain"
	"github.com/fitstride/fitstride-api/internal/store"
	"github.com/google/uuid"
)

// MockAccountStore is an in-memory, mutex-guarded implementation of
// store.AccountStore. The email-uniqueness check happens under the same lock
// as the insert, mirroring the atomicity the real unique index provides, so
// concurrent-registration tests behave like production.
type MockAccountStore struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*domain.Account
	byEmail  map[string]uuid.UUID
	ErrOnGet error // When set, GetByID/GetByEmail return this error
	ErrOnPut error // When set, Create/Update return this error
}

// NewMockAccountStore creates an empty MockAccountStore.
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		byID:    make(map[uuid.UUID]*domain.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Ensure MockAccountStore implements store.AccountStore
var _ store.AccountStore = (*MockAccountStore)(nil)

// Create implements store.AccountStore.Create.
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if m.ErrOnPut != nil {
		return m.ErrOnPut
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[account.Email]; exists {
		return store.ErrEmailExists
	}

	cp := *account
	m.byID[account.ID] = &cp
	m.byEmail[account.Email] = account.ID
	return nil
}

// GetByID implements store.AccountStore.GetByID.
func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.ErrOnGet != nil {
		return nil, m.ErrOnGet
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.byID[id]
	if !ok {
		return nil, store.ErrAccountNotFound
	}

	cp := *acct
	return &cp, nil
}

// GetByEmail implements store.AccountStore.GetByEmail.
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.ErrOnGet != nil {
		return nil, m.ErrOnGet
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, store.ErrAccountNotFound
	}

	cp := *m.byID[id]
	return &cp, nil
}

// Update implements store.AccountStore.Update.
func (m *MockAccountStore) Update(ctx context.Context, account *domain.Account) error {
	if m.ErrOnPut != nil {
		return m.ErrOnPut
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[account.ID]
	if !ok {
		return store.ErrAccountNotFound
	}

	if existing.Email != account.Email {
		if _, taken := m.byEmail[account.Email]; taken {
			return store.ErrEmailExists
		}
		delete(m.byEmail, existing.Email)
		m.byEmail[account.Email] = account.ID
	}

	cp := *account
	m.byID[account.ID] = &cp
	return nil
}

// Count returns the number of stored accounts.
func (m *MockAccountStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}
