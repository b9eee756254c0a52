// Package admin backs the dashboard: KPIs, the user table, activity logs,
// and account management.
package admin

import (
	"context"
	"fmt"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
	"bcasprint-backend/internal/session"
	"bcasprint-backend/internal/store"
)

const recentLogLimit = 50

type Service struct {
	store  *store.Store
	logger logger.Logger
}

func NewService(st *store.Store, log logger.Logger) *Service {
	return &Service{
		store:  st,
		logger: log.WithFields(map[string]interface{}{"component": "admin"}),
	}
}

// KPIs returns the dashboard counters.
func (s *Service) KPIs(ctx context.Context) (models.DashboardKPIs, error) {
	return s.store.DashboardKPIs(ctx)
}

// Users lists every account.
func (s *Service) Users(ctx context.Context) ([]models.User, error) {
	return s.store.AllUsers(ctx)
}

// RecentLogs returns the latest activity rows.
func (s *Service) RecentLogs(ctx context.Context) ([]models.ActivityLog, error) {
	return s.store.RecentLogs(ctx, recentLogLimit)
}

// SetRole changes an account's role. Only a super_admin may manage roles,
// and nobody can change their own.
func (s *Service) SetRole(ctx context.Context, actor *session.Session, username, role string) error {
	if actor.Role != models.RoleSuperAdmin {
		return errors.NewForbiddenError("role management requires super_admin")
	}
	if actor.Username == username {
		return errors.NewForbiddenError("cannot change your own role")
	}
	switch role {
	case models.RoleUser, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return errors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	if err := s.store.UpdateRole(ctx, username, role); err != nil {
		return err
	}
	s.audit(ctx, actor.Username, "Role Change", fmt.Sprintf("%s -> %s", username, role))
	return nil
}

// DeleteUser removes an account. Only a super_admin may delete, and never
// their own account.
func (s *Service) DeleteUser(ctx context.Context, actor *session.Session, username string) error {
	if actor.Role != models.RoleSuperAdmin {
		return errors.NewForbiddenError("user deletion requires super_admin")
	}
	if actor.Username == username {
		return errors.NewForbiddenError("cannot delete your own account")
	}

	if err := s.store.DeleteUser(ctx, username); err != nil {
		return err
	}
	s.audit(ctx, actor.Username, "User Deleted", username)
	return nil
}

func (s *Service) audit(ctx context.Context, actor, action, details string) {
	if err := s.store.LogActivity(ctx, actor, action, details); err != nil {
		s.logger.Warn("failed to write admin audit row", map[string]interface{}{"error": err.Error()})
	}
}
