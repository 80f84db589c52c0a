// Package auth implements account login, registration, and stateless JWT
// sessions. Identity travels with each request instead of living in global
// session storage; handlers read it from the request context.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"kaspalytics/internal/domain"
	"kaspalytics/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username already exists")
)

// UserStore is the persistence seam for accounts. The pgx repository and the
// in-memory demo store both satisfy it.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateTier(ctx context.Context, username string, tier domain.Tier) error
	RecordLoginAttempt(ctx context.Context, username string, success bool) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// Claims are the JWT payload: the username plus the tier captured at login.
type Claims struct {
	Tier string `json:"tier"`
	jwt.RegisteredClaims
}

type Service struct {
	tracer trace.Tracer
	store  UserStore
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewService(tracer trace.Tracer, store UserStore, secret string, expiry time.Duration) *Service {
	return &Service{
		tracer: tracer,
		store:  store,
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Login verifies the password, maintains the failed-attempt counter, and
// returns a signed token with the user record.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "auth.login")
	defer span.End()

	user, err := s.store.GetUser(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		_ = s.store.RecordLoginAttempt(ctx, username, false)
		return "", nil, ErrInvalidCredentials
	}
	_ = s.store.RecordLoginAttempt(ctx, username, true)

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Register creates a demo account on the free tier.
func (s *Service) Register(ctx context.Context, username, email, firstName, lastName, password string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "auth.register")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email format")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	if _, err := s.store.GetUser(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hash),
		Tier:         domain.TierFree,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateTier changes a user's subscription level.
func (s *Service) UpdateTier(ctx context.Context, username string, tier domain.Tier) error {
	ctx, span := s.tracer.Start(ctx, "auth.update-tier")
	defer span.End()

	return s.store.UpdateTier(ctx, username, tier)
}

// GetUser looks up an account.
func (s *Service) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return s.store.GetUser(ctx, username)
}

// ListUsers returns all accounts, for the admin panel.
func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *Service) issueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		Tier: string(user.Tier),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses and validates a bearer token, returning its claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if _, err := domain.ParseTier(claims.Tier); err != nil {
		return nil, err
	}
	return claims, nil
}
