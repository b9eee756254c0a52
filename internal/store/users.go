package store

import (
	"context"
	"database/sql"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/models"
)

// UserByEmail returns the account for an email address, or nil when no such
// account exists.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password, role, is_verified, COALESCE(otp, ''), created_at, last_login
		FROM users
		WHERE email = $1`, email)

	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsVerified, &u.OTP, &u.CreatedAt, &u.LastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("user lookup", err)
	}
	return &u, nil
}

// CreateUser inserts a verified account. Used for admin seeding; signup goes
// through CreatePendingUser.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash, role string, verified bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password, role, is_verified)
		VALUES ($1, $2, $3, $4, $5)`,
		username, email, passwordHash, role, verified)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// CreatePendingUser inserts an unverified account carrying its signup OTP.
func (s *Store) CreatePendingUser(ctx context.Context, username, email, passwordHash, otp string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password, role, is_verified, otp)
		VALUES ($1, $2, $3, 'user', FALSE, $4)`,
		username, email, passwordHash, otp)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// MarkVerified flips the account to verified and clears the OTP.
func (s *Store) MarkVerified(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_verified = TRUE, otp = NULL WHERE email = $1`, email)
	if err != nil {
		return errors.NewQueryExecutionFailedError("verify user", err)
	}
	return nil
}

// SetOTP stores a fresh OTP for password reset.
func (s *Store) SetOTP(ctx context.Context, email, otp string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET otp = $1 WHERE email = $2`, otp, email)
	if err != nil {
		return errors.NewQueryExecutionFailedError("set otp", err)
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any pending OTP.
func (s *Store) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET password = $1, otp = NULL WHERE email = $2`, passwordHash, email)
	if err != nil {
		return errors.NewQueryExecutionFailedError("update password", err)
	}
	return nil
}

// UpdateRole changes an account's role by username.
func (s *Store) UpdateRole(ctx context.Context, username, role string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET role = $1 WHERE username = $2`, role, username)
	if err != nil {
		return errors.NewQueryExecutionFailedError("update role", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewResourceNotFoundError("user", username)
	}
	return nil
}

// DeleteUser removes an account by username.
func (s *Store) DeleteUser(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return errors.NewQueryExecutionFailedError("delete user", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewResourceNotFoundError("user", username)
	}
	return nil
}

// TouchLastLogin stamps the account's last successful login.
func (s *Store) TouchLastLogin(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET last_login = NOW() WHERE email = $1`, email)
	if err != nil {
		return errors.NewQueryExecutionFailedError("touch last login", err)
	}
	return nil
}

// AllUsers lists every account for the admin user table.
func (s *Store) AllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, email, role, created_at, last_login
		FROM users
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list users", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.LastLogin); err != nil {
			return nil, errors.NewQueryExecutionFailedError("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list users", err)
	}
	return users, nil
}

// EnsureAdmin creates the seed administrator account if it is missing.
func (s *Store) EnsureAdmin(ctx context.Context, username, email, passwordHash string) error {
	existing, err := s.UserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if err := s.CreateUser(ctx, username, email, passwordHash, models.RoleSuperAdmin, true); err != nil {
		return err
	}
	s.logger.Info("seed admin account created", map[string]interface{}{"email": email})
	return nil
}
