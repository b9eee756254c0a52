package session

import (
	"context"
	"fmt"
	"time"

	"bcasprint-backend/internal/common/errors"
)

const resendPrefix = "otp_resend:"

// ThrottleOTPResend reserves the resend slot for an email address. The
// first call within the window succeeds; later calls fail with the seconds
// remaining until the next allowed send.
func (m *Manager) ThrottleOTPResend(ctx context.Context, email string, wait time.Duration) error {
	key := resendPrefix + email
	ok, err := m.client.SetNX(ctx, key, 1, wait).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ok {
		return nil
	}

	remaining, err := m.client.TTL(ctx, key).Result()
	if err != nil || remaining < 0 {
		remaining = wait
	}
	return errors.NewOTPResendThrottledError(int(remaining.Seconds()))
}
