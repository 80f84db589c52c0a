package repository

import (
	"context"
	"log"
	"sync"

	"kaspalytics/internal/domain"
)

// MemoryUserRepository is the fallback account store used when Postgres is
// not configured. It ships the same demo accounts the product always seeded,
// so the gated endpoints stay explorable in a bare environment.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMemoryUserRepository builds the store with the demo accounts. Hashing
// three demo passwords at startup is a one-time cost.
func NewMemoryUserRepository() *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]*domain.User)}
	if err := SeedDemoAccounts(context.Background(), r); err != nil {
		log.Printf("failed to seed demo users: %v", err)
	}
	return r
}

func (r *MemoryUserRepository) GetUser(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *MemoryUserRepository) UpdateTier(ctx context.Context, username string, tier domain.Tier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return ErrUserNotFound
	}
	u.Tier = tier
	return nil
}

func (r *MemoryUserRepository) RecordLoginAttempt(ctx context.Context, username string, success bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return ErrUserNotFound
	}
	if success {
		u.FailedLoginAttempts = 0
	} else {
		u.FailedLoginAttempts++
	}
	return nil
}

func (r *MemoryUserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		users = append(users, &copied)
	}
	return users, nil
}
