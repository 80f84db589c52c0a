package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"

	"kaspalytics/internal/domain"
)

// ErrUserNotFound is returned when a username has no account row.
var ErrUserNotFound = errors.New("user not found")

// Must stay in sync with cmd/migrate/migrations/001_create_users.up.sql;
// RunMigrations applies it directly so the server can bootstrap without a
// separate migrate invocation.
const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    username               TEXT        PRIMARY KEY,
    email                  TEXT        NOT NULL,
    first_name             TEXT        NOT NULL DEFAULT '',
    last_name              TEXT        NOT NULL DEFAULT '',
    password_hash          TEXT        NOT NULL,
    tier                   TEXT        NOT NULL DEFAULT 'free',
    failed_login_attempts  INT         NOT NULL DEFAULT 0,
    created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewUserRepository(pool PgxPool, tracer trace.Tracer) *UserRepository {
	return &UserRepository{pool: pool, tracer: tracer}
}

func (r *UserRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "user-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createUsersTable)
	return err
}

func (r *UserRepository) GetUser(ctx context.Context, username string) (*domain.User, error) {
	_, span := r.tracer.Start(ctx, "user-repo.get-user")
	defer span.End()

	row := r.pool.QueryRow(ctx,
		`SELECT username, email, first_name, last_name, password_hash, tier, failed_login_attempts, created_at
		 FROM users
		 WHERE username = $1`,
		username,
	)

	u := &domain.User{}
	var tier string
	err := row.Scan(&u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &tier, &u.FailedLoginAttempts, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Tier, err = domain.ParseTier(tier)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", username, err)
	}
	return u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	_, span := r.tracer.Start(ctx, "user-repo.create-user")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (username, email, first_name, last_name, password_hash, tier)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, string(user.Tier),
	)
	return err
}

func (r *UserRepository) UpdateTier(ctx context.Context, username string, tier domain.Tier) error {
	_, span := r.tracer.Start(ctx, "user-repo.update-tier")
	defer span.End()

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET tier = $2 WHERE username = $1`,
		username, string(tier),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RecordLoginAttempt bumps the failed-attempt counter on failure and resets
// it on success.
func (r *UserRepository) RecordLoginAttempt(ctx context.Context, username string, success bool) error {
	_, span := r.tracer.Start(ctx, "user-repo.record-login-attempt")
	defer span.End()

	var err error
	if success {
		_, err = r.pool.Exec(ctx,
			`UPDATE users SET failed_login_attempts = 0 WHERE username = $1`, username)
	} else {
		_, err = r.pool.Exec(ctx,
			`UPDATE users SET failed_login_attempts = failed_login_attempts + 1 WHERE username = $1`, username)
	}
	return err
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	_, span := r.tracer.Start(ctx, "user-repo.list-users")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT username, email, first_name, last_name, password_hash, tier, failed_login_attempts, created_at
		 FROM users
		 ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u := &domain.User{}
		var tier string
		if err := rows.Scan(&u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &tier, &u.FailedLoginAttempts, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Tier, err = domain.ParseTier(tier)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", u.Username, err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
