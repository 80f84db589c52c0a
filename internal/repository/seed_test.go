package repository

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"kaspalytics/internal/domain"
)

// mapUserStore is a bare store with none of the memory repository's
// constructor seeding, standing in for a fresh database.
type mapUserStore struct {
	users   map[string]*domain.User
	creates int
}

func newMapUserStore() *mapUserStore {
	return &mapUserStore{users: make(map[string]*domain.User)}
}

func (s *mapUserStore) GetUser(ctx context.Context, username string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *mapUserStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.users[user.Username] = user
	s.creates++
	return nil
}

func TestSeedDemoAccountsPopulatesEmptyStore(t *testing.T) {
	t.Parallel()

	store := newMapUserStore()
	if err := SeedDemoAccounts(context.Background(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.creates != 3 {
		t.Fatalf("expected 3 accounts created, got %d", store.creates)
	}

	// The seeded admin credentials must verify the way Login does.
	admin := store.users["admin"]
	if admin == nil {
		t.Fatal("admin account not seeded")
	}
	if admin.Tier != domain.TierPro {
		t.Errorf("expected admin on pro tier, got %s", admin.Tier)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")); err != nil {
		t.Error("seeded admin password hash does not verify")
	}

	if u := store.users["premium_user"]; u == nil || u.Tier != domain.TierPremium {
		t.Errorf("premium_user seeded wrong: %+v", u)
	}
	if u := store.users["free_user"]; u == nil || u.Tier != domain.TierFree {
		t.Errorf("free_user seeded wrong: %+v", u)
	}
}

func TestSeedDemoAccountsIdempotent(t *testing.T) {
	t.Parallel()

	store := newMapUserStore()
	if err := SeedDemoAccounts(context.Background(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	adminHash := store.users["admin"].PasswordHash

	if err := SeedDemoAccounts(context.Background(), store); err != nil {
		t.Fatalf("unexpected error on second run: %v", err)
	}
	if store.creates != 3 {
		t.Fatalf("expected no additional creates, got %d total", store.creates)
	}
	if store.users["admin"].PasswordHash != adminHash {
		t.Fatal("existing account was overwritten")
	}
}
