package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewManager(client, 30*time.Minute, 5, logger.NewNoOpLogger()), mr
}

func testUser() *models.User {
	return &models.User{
		Username: "asha",
		Email:    "asha@example.com",
		Role:     models.RoleUser,
	}
}

func TestSessionLifecycle(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	sess, err := m.Create(ctx, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	got, err := m.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "asha", got.Username)
	assert.Equal(t, "asha@example.com", got.Email)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, 0, got.Predictions)

	require.NoError(t, m.Destroy(ctx, sess.Token))

	_, err = m.Get(ctx, sess.Token)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionNotFound, errors.CodeOf(err))

	_ = mr
}

func TestGetUnknownToken(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Get(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionNotFound, errors.CodeOf(err))
}

func TestSessionExpiry(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	sess, err := m.Create(ctx, testUser())
	require.NoError(t, err)

	mr.FastForward(31 * time.Minute)

	_, err = m.Get(ctx, sess.Token)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSessionNotFound, errors.CodeOf(err))
}

func TestConsumePrediction(t *testing.T) {
	t.Run("limit enforced for users", func(t *testing.T) {
		m, _ := newTestManager(t)
		ctx := context.Background()

		sess, err := m.Create(ctx, testUser())
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, m.ConsumePrediction(ctx, sess))
		}
		assert.Equal(t, 5, sess.Predictions)

		err = m.ConsumePrediction(ctx, sess)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodePredictionLimit, errors.CodeOf(err))
	})

	t.Run("admins exempt", func(t *testing.T) {
		m, _ := newTestManager(t)
		ctx := context.Background()

		admin := testUser()
		admin.Role = models.RoleSuperAdmin
		sess, err := m.Create(ctx, admin)
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			require.NoError(t, m.ConsumePrediction(ctx, sess))
		}
	})

	t.Run("counter survives re-resolution", func(t *testing.T) {
		m, _ := newTestManager(t)
		ctx := context.Background()

		sess, err := m.Create(ctx, testUser())
		require.NoError(t, err)
		require.NoError(t, m.ConsumePrediction(ctx, sess))
		require.NoError(t, m.ConsumePrediction(ctx, sess))

		got, err := m.Get(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Predictions)
	})
}

func TestThrottleOTPResend(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.ThrottleOTPResend(ctx, "asha@example.com", time.Minute))

	err := m.ThrottleOTPResend(ctx, "asha@example.com", time.Minute)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeOTPResendThrottled, errors.CodeOf(err))

	// A different address is unaffected.
	require.NoError(t, m.ThrottleOTPResend(ctx, "ravi@example.com", time.Minute))

	mr.FastForward(61 * time.Second)
	require.NoError(t, m.ThrottleOTPResend(ctx, "asha@example.com", time.Minute))
}

func TestCheckPredictionQuota(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	sess, err := m.Create(ctx, testUser())
	require.NoError(t, err)

	// checking never consumes a slot
	for i := 0; i < 10; i++ {
		require.NoError(t, m.CheckPredictionQuota(sess))
	}
	got, err := m.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Predictions)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.ConsumePrediction(ctx, sess))
	}
	err = m.CheckPredictionQuota(sess)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePredictionLimit, errors.CodeOf(err))

	admin := &Session{Token: sess.Token, Username: "root", Role: models.RoleSuperAdmin, Predictions: 99}
	assert.NoError(t, m.CheckPredictionQuota(admin))
}
