package pg

import (
	"context"
	"fmt"
)

// migrations применяются по порядку; каждая идемпотентна.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		name          VARCHAR(150) NOT NULL,
		email         VARCHAR(254) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS operations (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		expression VARCHAR(500) NOT NULL,
		result     TEXT NOT NULL,
		kind       VARCHAR(10) NOT NULL DEFAULT 'mixed',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS operations_user_created_idx ON operations (user_id, created_at DESC)`,
	// результат бывает длиннее 255 символов (1e300 — это 301 цифра)
	`ALTER TABLE operations ALTER COLUMN result TYPE TEXT`,
}

// Migrate создаёт таблицы users и operations, если их ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
