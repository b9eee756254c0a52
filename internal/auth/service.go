// Package auth implements account lifecycle: signup with email OTP
// verification, login against SHA-256 password hashes, and OTP-guarded
// password reset.
package auth

import (
	"context"
	"strings"
	"time"

	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/email"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/common/metrics"
	"bcasprint-backend/internal/models"
	"bcasprint-backend/internal/session"
	"bcasprint-backend/internal/store"
)

type Service struct {
	store    *store.Store
	sessions *session.Manager
	mailer   email.Mailer
	cfg      config.AuthConfig
	logger   logger.Logger
}

func NewService(st *store.Store, sessions *session.Manager, mailer email.Mailer, cfg config.AuthConfig, log logger.Logger) *Service {
	return &Service{
		store:    st,
		sessions: sessions,
		mailer:   mailer,
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// Signup creates an unverified account and emails its verification code.
// The account exists immediately; login stays blocked until verification.
func (s *Service) Signup(ctx context.Context, username, emailAddr, password, confirm string) error {
	username = strings.TrimSpace(username)
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))

	if username == "" || emailAddr == "" || password == "" {
		return errors.NewValidationError("username, email and password are required")
	}
	if password != confirm {
		return errors.NewValidationError("passwords do not match")
	}
	if issues := PasswordIssues(password); len(issues) > 0 {
		return errors.NewWeakPasswordError(issues)
	}
	if err := email.ValidateAddress(emailAddr); err != nil {
		return errors.NewValidationError(err.Error())
	}

	existing, err := s.store.UserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.NewAccountExistsError(emailAddr)
	}

	otp := GenerateOTP()
	if err := s.store.CreatePendingUser(ctx, username, emailAddr, HashPassword(password), otp); err != nil {
		return err
	}

	s.sendOTP(ctx, emailAddr, otp, purposeVerification)
	s.logActivity(username, "Signup", "Pending verification: "+emailAddr)
	return nil
}

// VerifySignup checks the emailed code and activates the account.
func (s *Service) VerifySignup(ctx context.Context, emailAddr, otp string) error {
	return s.verifyOTP(ctx, strings.TrimSpace(strings.ToLower(emailAddr)), strings.TrimSpace(otp))
}

// ResendOTP issues a fresh code for an unfinished signup or reset. Throttled
// per address.
func (s *Service) ResendOTP(ctx context.Context, emailAddr, purpose string) error {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if purpose != purposePasswordReset {
		purpose = purposeVerification
	}

	user, err := s.store.UserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.NewResourceNotFoundError("account", emailAddr)
	}

	wait := time.Duration(s.cfg.OTPResendWait) * time.Second
	if err := s.sessions.ThrottleOTPResend(ctx, emailAddr, wait); err != nil {
		return err
	}

	otp := GenerateOTP()
	if err := s.store.SetOTP(ctx, emailAddr, otp); err != nil {
		return err
	}
	s.sendOTP(ctx, emailAddr, otp, purpose)
	return nil
}

// Login checks credentials and opens a session.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*session.Session, error) {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if emailAddr == "" || password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	user, err := s.store.UserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NewAuthenticationError("no account found for this email")
	}
	if HashPassword(password) != user.PasswordHash {
		return nil, errors.NewAuthenticationError("incorrect password")
	}
	if !user.IsVerified {
		return nil, errors.NewAccountNotVerifiedError(emailAddr)
	}

	sess, err := s.sessions.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.store.LogLogin(ctx, user.Username, emailAddr); err != nil {
		// The login itself succeeded; the audit row is best-effort.
		s.logger.Warn("failed to log login", map[string]interface{}{"error": err.Error()})
	}
	return sess, nil
}

// Logout destroys the session.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// ForgotPassword sends a reset code to a registered address.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if emailAddr == "" {
		return errors.NewValidationError("email is required")
	}

	user, err := s.store.UserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.NewResourceNotFoundError("account", emailAddr)
	}

	otp := GenerateOTP()
	if err := s.store.SetOTP(ctx, emailAddr, otp); err != nil {
		return err
	}
	s.sendOTP(ctx, emailAddr, otp, purposePasswordReset)
	return nil
}

// ResetPassword verifies the reset code and installs the new password in a
// single step, so the code can never be bypassed.
func (s *Service) ResetPassword(ctx context.Context, emailAddr, otp, newPassword, confirm string) error {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if newPassword != confirm {
		return errors.NewValidationError("passwords do not match")
	}
	if issues := PasswordIssues(newPassword); len(issues) > 0 {
		return errors.NewWeakPasswordError(issues)
	}

	if err := s.verifyOTP(ctx, emailAddr, strings.TrimSpace(otp)); err != nil {
		return err
	}
	if err := s.store.UpdatePassword(ctx, emailAddr, HashPassword(newPassword)); err != nil {
		return err
	}
	s.logActivity(emailAddr, "Password Reset", "Email: "+emailAddr)
	return nil
}

// verifyOTP compares the stored code and, on match, marks the account
// verified and clears the code.
func (s *Service) verifyOTP(ctx context.Context, emailAddr, otp string) error {
	user, err := s.store.UserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.NewResourceNotFoundError("account", emailAddr)
	}
	if otp == "" || user.OTP == "" || user.OTP != otp {
		return errors.NewOTPMismatchError()
	}
	return s.store.MarkVerified(ctx, emailAddr)
}

// EnsureSeedAdmin creates the configured super_admin account if missing.
func (s *Service) EnsureSeedAdmin(ctx context.Context) error {
	seed := s.cfg.SeedAdmin
	if seed.Email == "" || seed.Password == "" {
		s.logger.Warn("seed admin not configured, skipping bootstrap", nil)
		return nil
	}
	return s.store.EnsureAdmin(ctx, seed.Name, seed.Email, HashPassword(seed.Password))
}

func (s *Service) sendOTP(ctx context.Context, to, otp, purpose string) {
	msg := &email.Message{
		To:      to,
		Subject: otpSubject(purpose),
		Body:    otpEmailBody(purpose, otp, s.cfg.OTPTTL),
		IsHTML:  true,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		// Account creation proceeds; the user can request a resend.
		s.logger.Error("failed to send OTP email", map[string]interface{}{
			"to":    to,
			"error": err.Error(),
		})
		metrics.EmailsSent.WithLabelValues(purpose, "error").Inc()
		return
	}
	metrics.EmailsSent.WithLabelValues(purpose, "ok").Inc()
}

func (s *Service) logActivity(username, action, details string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.LogActivity(ctx, username, action, details); err != nil {
		s.logger.Warn("failed to log activity", map[string]interface{}{"error": err.Error()})
	}
}

// CurrentUser resolves the full account row behind a session.
func (s *Service) CurrentUser(ctx context.Context, sess *session.Session) (*models.User, error) {
	user, err := s.store.UserByEmail(ctx, sess.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NewResourceNotFoundError("account", sess.Email)
	}
	return user, nil
}
