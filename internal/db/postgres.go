package db

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

var Pool *pgxpool.Pool

var (
	newPool = pgxpool.New
	pingDB  = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pool.Ping(ctx)
	}
)

// InitPostgres connects the package-level pool. When DATABASE_URL is unset
// the pool stays nil and repository-backed features are disabled; the
// analytics endpoints keep working without a database.
func InitPostgres(ctx context.Context) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set, running without Postgres")
		return
	}

	pool, err := newPool(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to create Postgres pool: %v", err)
	}
	if err := pingDB(ctx, pool); err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}

	Pool = pool
	log.Println("Connected to Postgres")
}
