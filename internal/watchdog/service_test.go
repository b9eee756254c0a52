package watchdog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bcasprint-backend/internal/common/email"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/models"
)

type fakeMailer struct {
	mu       sync.Mutex
	messages []*email.Message
}

func (f *fakeMailer) Send(_ context.Context, msg *email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMailer) sent() []*email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*email.Message(nil), f.messages...)
}

type fakeClicks struct {
	entries []string
}

func (f *fakeClicks) LogJobApplication(_ context.Context, username, role, source, status string) error {
	f.entries = append(f.entries, username+"|"+role+"|"+source+"|"+status)
	return nil
}

func newTestService() (*Service, *fakeMailer, *fakeClicks) {
	mailer := &fakeMailer{}
	clicks := &fakeClicks{}
	svc := NewService(mailer, nil, clicks, "http://localhost:8080", logger.NewNoOpLogger())
	return svc, mailer, clicks
}

func TestSendReport(t *testing.T) {
	svc, mailer, _ := newTestService()

	err := svc.SendReport(context.Background(), "asha@example.com", "asha", "", "Python Developer jobs in Pune", SourceResume)
	require.NoError(t, err)

	sent := mailer.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "asha@example.com", sent[0].To)
	assert.Equal(t, "Watchdog Report: Python Developer jobs in Pune", sent[0].Subject)
	assert.True(t, sent[0].IsHTML)
	assert.Contains(t, sent[0].Body, "Search on LinkedIn")
	assert.Contains(t, sent[0].Body, "https://www.naukri.com/Python-Developer-jobs-in-Pune")
	assert.Contains(t, sent[0].Body, "/api/watchdog/track?")
	assert.Contains(t, sent[0].Body, "status=Applied")
	assert.Contains(t, sent[0].Body, "status=Helpful")
}

func TestSendReportEmptyQuery(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.SendReport(context.Background(), "asha@example.com", "asha", "", "", SourceManual)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))
}

func TestTrackClick(t *testing.T) {
	svc, _, clicks := newTestService()

	err := svc.TrackClick(context.Background(), "asha", "Python Developer jobs in Pune", "", "Applied")
	require.NoError(t, err)
	require.Len(t, clicks.entries, 1)
	assert.Equal(t, "asha|Python Developer jobs in Pune|Email|Applied", clicks.entries[0])
}

func TestSubscriptions(t *testing.T) {
	svc, mailer, _ := newTestService()

	id, err := svc.Subscribe(models.WatchdogSubscription{
		Username: "asha",
		Email:    "asha@example.com",
		Query:    "SQL Developer jobs in Thane",
		Source:   SourceManual,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	svc.RunPass(context.Background())
	assert.Len(t, mailer.sent(), 1)

	require.NoError(t, svc.Unsubscribe(id))
	svc.RunPass(context.Background())
	assert.Len(t, mailer.sent(), 1)

	err = svc.Unsubscribe(999)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeResourceNotFound, errors.CodeOf(err))
}

func TestSubscribeValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Subscribe(models.WatchdogSubscription{Email: "", Query: "x"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))
}
