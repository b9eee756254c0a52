package store

import (
	"context"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/models"
)

// LogFeedback stores a user's accuracy report for a past prediction.
func (s *Store) LogFeedback(ctx context.Context, fb models.Feedback) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (username, job_role, predicted_salary, actual_salary, accuracy_rating)
		VALUES ($1, $2, $3, $4, $5)`,
		fb.Username, fb.JobRole, fb.PredictedSalary, fb.ActualSalary, fb.AccuracyRating)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}
