// Package session keeps login state in Redis: token-addressed hashes with a
// sliding TTL and a per-session prediction counter.
package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

const keyPrefix = "session:"

// Session is the authenticated state attached to a request.
type Session struct {
	Token       string `json:"token"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Predictions int    `json:"predictions"`
}

// IsAdmin mirrors the account-level check for the cached role.
func (s *Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin || s.Role == models.RoleSuperAdmin
}

// Manager creates, resolves and expires sessions.
type Manager struct {
	client          *redis.Client
	ttl             time.Duration
	predictionLimit int
	logger          logger.Logger
}

func NewManager(client *redis.Client, ttl time.Duration, predictionLimit int, log logger.Logger) *Manager {
	return &Manager{
		client:          client,
		ttl:             ttl,
		predictionLimit: predictionLimit,
		logger:          log.WithFields(map[string]interface{}{"component": "session"}),
	}
}

// Create opens a session for a verified account and returns its token.
func (m *Manager) Create(ctx context.Context, user *models.User) (*Session, error) {
	sess := &Session{
		Token:    uuid.NewString(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}

	key := keyPrefix + sess.Token
	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"username":    sess.Username,
		"email":       sess.Email,
		"role":        sess.Role,
		"predictions": 0,
	})
	pipe.Expire(ctx, key, m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	m.logger.Info("session created", map[string]interface{}{"username": sess.Username})
	return sess, nil
}

// Get resolves a token and refreshes its TTL.
func (m *Manager) Get(ctx context.Context, token string) (*Session, error) {
	key := keyPrefix + token
	fields, err := m.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if len(fields) == 0 {
		return nil, errors.NewSessionNotFoundError(token)
	}

	predictions, _ := strconv.Atoi(fields["predictions"])
	sess := &Session{
		Token:       token,
		Username:    fields["username"],
		Email:       fields["email"],
		Role:        fields["role"],
		Predictions: predictions,
	}

	// Sliding expiry: activity keeps the session alive.
	m.client.Expire(ctx, key, m.ttl)
	return sess, nil
}

// Destroy removes a session. Unknown tokens are not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if err := m.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// CheckPredictionQuota reports whether the session still has a free slot
// without consuming one. Administrators are exempt.
func (m *Manager) CheckPredictionQuota(sess *Session) error {
	if sess.IsAdmin() {
		return nil
	}
	if sess.Predictions >= m.predictionLimit {
		return errors.NewPredictionLimitError(m.predictionLimit)
	}
	return nil
}

// ConsumePrediction enforces the per-session quota and increments the
// counter. Administrators are exempt.
func (m *Manager) ConsumePrediction(ctx context.Context, sess *Session) error {
	if sess.IsAdmin() {
		return nil
	}
	if err := m.CheckPredictionQuota(sess); err != nil {
		return err
	}

	count, err := m.client.HIncrBy(ctx, keyPrefix+sess.Token, "predictions", 1).Result()
	if err != nil {
		return fmt.Errorf("failed to increment prediction counter: %w", err)
	}
	sess.Predictions = int(count)

	// A concurrent request may have consumed the last slot between the
	// read and the increment.
	if sess.Predictions > m.predictionLimit {
		return errors.NewPredictionLimitError(m.predictionLimit)
	}
	return nil
}
