package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kaspalytics/internal/domain"
)

type demoAccount struct {
	username, email, firstName, lastName, password string
	tier                                           domain.Tier
}

var demoAccounts = []demoAccount{
	{"admin", "admin@kaspalytics.com", "Admin", "User", "admin123", domain.TierPro},
	{"premium_user", "premium@example.com", "Premium", "User", "premium123", domain.TierPremium},
	{"free_user", "free@example.com", "Free", "User", "free123", domain.TierFree},
}

type userSeedStore interface {
	GetUser(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
}

// SeedDemoAccounts inserts the demo accounts the product has always shipped
// with, hashing their passwords with bcrypt. Existing accounts are left
// untouched, so repeated startups are safe. Called for the Postgres store
// after migrations; the in-memory store seeds itself through it.
func SeedDemoAccounts(ctx context.Context, store userSeedStore) error {
	now := time.Now().UTC()
	for _, acc := range demoAccounts {
		_, err := store.GetUser(ctx, acc.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrUserNotFound) {
			return fmt.Errorf("check demo user %s: %w", acc.username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash demo password for %s: %w", acc.username, err)
		}
		user := &domain.User{
			Username:     acc.username,
			Email:        acc.email,
			FirstName:    acc.firstName,
			LastName:     acc.lastName,
			PasswordHash: string(hash),
			Tier:         acc.tier,
			CreatedAt:    now,
		}
		if err := store.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create demo user %s: %w", acc.username, err)
		}
	}
	return nil
}
