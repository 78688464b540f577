package http_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/admission-service/internal/domain"
	"github.com/spec-kit/admission-service/internal/repository"
)

type memoryAccounts struct {
	mu   sync.Mutex
	byID map[string]*domain.Account
}

func (m *memoryAccounts) Create(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == account.Email {
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
	if account, ok := m.byID[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *memoryAccounts) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, account := range m.byID {
		if account.Email == email {
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
		if account.Email == email {
			account.Role = role
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memoryApplicants struct {
	mu        sync.Mutex
	items     []domain.Applicant
	lastLimit int
}

func (m *memoryApplicants) Create(_ context.Context, applicant *domain.Applicant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	applicant.ID = uuid.NewString()
	applicant.CreatedAt = time.Now().UTC()
	applicant.UpdatedAt = applicant.CreatedAt
	m.items = append([]domain.Applicant{*applicant}, m.items...)
	return nil
}

func (m *memoryApplicants) List(_ context.Context, limit int) ([]domain.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

var errPingFailed = errors.New("connection refused")
