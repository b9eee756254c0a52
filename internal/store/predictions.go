package store

import (
	"context"
	"time"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/models"
)

// LogPrediction appends one row to the prediction audit trail.
func (s *Store) LogPrediction(ctx context.Context, username, role, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO predictions (username, prediction_value, role_predicted)
		VALUES ($1, $2, $3)`,
		username, value, role)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// UserHistory returns the user's five most recent predictions, newest first,
// with dates rendered for the recent-activity panel.
func (s *Store) UserHistory(ctx context.Context, username string) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT created_at, role_predicted, prediction_value
		FROM predictions
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT 5`, username)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("user history", err)
	}
	defer rows.Close()

	var history []models.HistoryEntry
	for rows.Next() {
		var createdAt time.Time
		var role, value string
		if err := rows.Scan(&createdAt, &role, &value); err != nil {
			return nil, errors.NewQueryExecutionFailedError("scan history", err)
		}
		history = append(history, models.HistoryEntry{
			Date:  createdAt.Format("Jan 02"),
			Role:  role,
			Value: value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("user history", err)
	}
	return history, nil
}

// DashboardKPIs computes the admin home-page counters. Partial failures
// leave the affected counter at zero rather than failing the page.
func (s *Store) DashboardKPIs(ctx context.Context) (models.DashboardKPIs, error) {
	var kpis models.DashboardKPIs

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = 'user'`).Scan(&kpis.Users)
	if err != nil {
		return kpis, errors.NewQueryExecutionFailedError("kpi users", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role IN ('admin', 'super_admin')`).Scan(&kpis.Admins)
	if err != nil {
		return kpis, errors.NewQueryExecutionFailedError("kpi admins", err)
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM predictions WHERE created_at > $1`, yesterday).Scan(&kpis.PredictionsDay)
	if err != nil {
		return kpis, errors.NewQueryExecutionFailedError("kpi predictions", err)
	}

	return kpis, nil
}
