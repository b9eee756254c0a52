package store

import (
	"context"
	"fmt"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/models"
)

// LogActivity appends one audit row.
func (s *Store) LogActivity(ctx context.Context, username, action, details string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_logs (username, action, details)
		VALUES ($1, $2, $3)`,
		username, action, details)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// LogLogin records a successful login and stamps last_login.
func (s *Store) LogLogin(ctx context.Context, username, email string) error {
	if err := s.LogActivity(ctx, username, "Login", fmt.Sprintf("Email: %s", email)); err != nil {
		return err
	}
	return s.TouchLastLogin(ctx, email)
}

// LogJobApplication records a click on a job listing.
func (s *Store) LogJobApplication(ctx context.Context, username, role, source, status string) error {
	return s.LogActivity(ctx, username, "Job Click", fmt.Sprintf("%s via %s (%s)", role, source, status))
}

// RecentLogs returns the newest audit rows, capped at limit.
func (s *Store) RecentLogs(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, action, details, timestamp
		FROM activity_logs
		ORDER BY timestamp DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("recent logs", err)
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.Username, &l.Action, &l.Details, &l.Timestamp); err != nil {
			return nil, errors.NewQueryExecutionFailedError("scan log", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("recent logs", err)
	}
	return logs, nil
}
