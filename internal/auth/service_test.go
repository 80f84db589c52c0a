package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"

	"kaspalytics/internal/domain"
	"kaspalytics/internal/repository"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

func newTestService() *Service {
	return NewService(testTracer, repository.NewMemoryUserRepository(), "test-secret", time.Hour)
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	token, user, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if user.Tier != domain.TierPro {
		t.Fatalf("expected pro tier for admin, got %s", user.Tier)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("token should verify: %v", err)
	}
	if claims.Subject != "admin" || claims.Tier != string(domain.TierPro) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	if _, _, err := svc.Login(context.Background(), "free_user", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	user, err := svc.GetUser(context.Background(), "free_user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.FailedLoginAttempts != 1 {
		t.Fatalf("expected 1 failed attempt, got %d", user.FailedLoginAttempts)
	}

	if _, _, err := svc.Login(context.Background(), "free_user", "free123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user, _ = svc.GetUser(context.Background(), "free_user")
	if user.FailedLoginAttempts != 0 {
		t.Fatalf("successful login should reset attempts, got %d", user.FailedLoginAttempts)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	user, err := svc.Register(context.Background(), "newbie", "newbie@example.com", "New", "Bie", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Tier != domain.TierFree {
		t.Fatalf("new accounts start on the free tier, got %s", user.Tier)
	}

	if _, _, err := svc.Login(context.Background(), "newbie", "hunter22"); err != nil {
		t.Fatalf("freshly registered user should log in: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	if _, err := svc.Register(context.Background(), "x", "not-an-email", "", "", "hunter22"); err == nil {
		t.Fatal("expected email validation error")
	}
	if _, err := svc.Register(context.Background(), "x", "x@example.com", "", "", "abc"); err == nil {
		t.Fatal("expected short password error")
	}
	if _, err := svc.Register(context.Background(), "admin", "other@example.com", "", "", "hunter22"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestVerifyTokenExpiry(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	token, _, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.VerifyToken(token); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	token, _, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewService(testTracer, repository.NewMemoryUserRepository(), "different-secret", time.Hour)
	if _, err := other.VerifyToken(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestUpdateTier(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	if err := svc.UpdateTier(context.Background(), "free_user", domain.TierPremium); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user, _ := svc.GetUser(context.Background(), "free_user")
	if user.Tier != domain.TierPremium {
		t.Fatalf("expected premium tier, got %s", user.Tier)
	}

	if err := svc.UpdateTier(context.Background(), "ghost", domain.TierPro); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
