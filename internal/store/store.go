// Package store is the PostgreSQL persistence layer: accounts, prediction
// history, feedback and the activity audit trail.
package store

import (
	"context"
	"database/sql"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
)

type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "store"}),
	}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) DEFAULT 'user',
		is_verified BOOLEAN DEFAULT FALSE,
		otp VARCHAR(10),
		created_at TIMESTAMPTZ DEFAULT NOW(),
		last_login TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) NOT NULL,
		prediction_value VARCHAR(255),
		role_predicted VARCHAR(255),
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255),
		action VARCHAR(255),
		details TEXT,
		timestamp TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255),
		job_role VARCHAR(255),
		predicted_salary VARCHAR(255),
		actual_salary VARCHAR(255),
		accuracy_rating VARCHAR(50),
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,
}

// CreateTables applies the schema. Statements are idempotent.
func (s *Store) CreateTables(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.NewQueryExecutionFailedError("schema setup", err)
		}
	}
	s.logger.Info("database schema verified", nil)
	return nil
}
