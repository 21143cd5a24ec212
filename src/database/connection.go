package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"user-auth-service/src/config"
	"user-auth-service/src/logger"

	_ "github.com/lib/pq" // PostgreSQL driver
)

//go:embed sql/init_users_table.sql
var initUsersTableSQL string

const (
	connectAttempts = 10
	retryDelay      = 5 * time.Second
)

// ConnectToDB opens the pool, waits for the database to answer and applies the schema.
func ConnectToDB(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := waitForDB(ctx, db, connectAttempts, retryDelay, log); err != nil {
		db.Close()
		log.Error(fmt.Sprintf("❌ DATABASE ERROR: Failed to connect to database after retries: %v", err))
		return nil, err
	}
	log.Info("✅ DATABASE connection success!")

	if err := runInitSQLScript(ctx, db, log); err != nil {
		db.Close()
		log.Error(fmt.Sprintf("❌ DATABASE ERROR: Failed to run initialization SQL script: %v", err))
		return nil, err
	}

	log.Info("✅ DATABASE connection completed successfully")
	return db, nil
}

func waitForDB(ctx context.Context, db *sql.DB, attempts int, delay time.Duration, log *logger.Logger) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		log.Info(fmt.Sprintf("⏳ Attempt %d: Waiting for database to be ready...", i))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("ping database: %w", err)
}

// runInitSQLScript creates the user_role type and users table when they are missing.
func runInitSQLScript(ctx context.Context, db *sql.DB, log *logger.Logger) error {
	if _, err := db.ExecContext(ctx, initUsersTableSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info("✅ Successfully initialized the database with the users table")
	return nil
}
