package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/admission-service/internal/domain"
	"github.com/spec-kit/admission-service/internal/repository"
)

// memoryAccounts mimics the accounts table including its unique email index.
type memoryAccounts struct {
	mu       sync.Mutex
	byID     map[string]*domain.Account
	err      error
	creates  int
	skipScan bool
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{byID: map[string]*domain.Account{}}
}

func (m *memoryAccounts) Create(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.creates++
	for _, existing := range m.byID {
		if existing.Email == domain.NormalizeEmail(account.Email) {
			return repository.ErrEmailTaken
		}
	}
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	stored := *account
	m.byID[account.ID] = &stored
	return nil
}

func (m *memoryAccounts) GetByID(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	account, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *memoryAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.skipScan {
		return nil, repository.ErrNotFound
	}
	for _, account := range m.byID {
		if account.Email == domain.NormalizeEmail(email) {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryAccounts) UpdateRole(_ context.Context, email string, role domain.Role) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.byID {
		if account.Email == domain.NormalizeEmail(email) {
			account.Role = role
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryAccounts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

type memoryApplicants struct {
	items     []domain.Applicant
	lastLimit int
	err       error
}

func (m *memoryApplicants) Create(_ context.Context, applicant *domain.Applicant) error {
	if m.err != nil {
		return m.err
	}
	applicant.ID = uuid.NewString()
	applicant.CreatedAt = time.Now().UTC()
	applicant.UpdatedAt = applicant.CreatedAt
	m.items = append(m.items, *applicant)
	return nil
}

func (m *memoryApplicants) List(_ context.Context, limit int) ([]domain.Applicant, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastLimit = limit
	if limit > len(m.items) {
		limit = len(m.items)
	}
	return append([]domain.Applicant{}, m.items[:limit]...), nil
}

type memoryAttempts struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *memoryAttempts) Increment(_ context.Context, key string, _ time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryAttempts) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.counts, key)
	return nil
}
