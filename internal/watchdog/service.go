package watchdog

import (
	"context"
	"fmt"
	"sync"

	"bcasprint-backend/internal/common/email"
	"bcasprint-backend/internal/common/errors"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/common/metrics"
	"bcasprint-backend/internal/models"
)

// ClickLogger records tracked report clicks. Satisfied by store.Store.
type ClickLogger interface {
	LogJobApplication(ctx context.Context, username, role, source, status string) error
}

type Service struct {
	mailer  email.Mailer
	sms     *email.SMSSender // nil when SMS is disabled
	clicks  ClickLogger
	baseURL string
	logger  logger.Logger

	mu            sync.Mutex
	nextID        int64
	subscriptions map[int64]*models.WatchdogSubscription
}

func NewService(mailer email.Mailer, sms *email.SMSSender, clicks ClickLogger, baseURL string, log logger.Logger) *Service {
	return &Service{
		mailer:        mailer,
		sms:           sms,
		clicks:        clicks,
		baseURL:       baseURL,
		logger:        log.WithFields(map[string]interface{}{"component": "watchdog"}),
		subscriptions: make(map[int64]*models.WatchdogSubscription),
	}
}

// SendReport mails the search digest and optionally pings the phone.
func (s *Service) SendReport(ctx context.Context, userEmail, userName, phone, query, source string) error {
	if query == "" {
		return errors.NewValidationError("search query is required")
	}

	links := SearchLinks(query)
	msg := &email.Message{
		To:      userEmail,
		Subject: "Watchdog Report: " + query,
		Body:    buildReportBody(s.baseURL, userName, query, source, links),
		IsHTML:  true,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.EmailsSent.WithLabelValues("watchdog", "error").Inc()
		return err
	}
	metrics.EmailsSent.WithLabelValues("watchdog", "ok").Inc()

	if s.sms != nil && phone != "" {
		text := fmt.Sprintf("BCAsprint Watchdog: new job-search report for %q sent to %s", query, userEmail)
		if err := s.sms.Send(ctx, phone, text); err != nil {
			// Email already went out; the SMS ping is best-effort.
			s.logger.Warn("failed to send SMS ping", map[string]interface{}{
				"phone": phone,
				"error": err.Error(),
			})
		}
	}

	s.logger.Info("watchdog report sent", map[string]interface{}{
		"to":     userEmail,
		"query":  query,
		"source": source,
	})
	return nil
}

// TrackClick records a tracked report click in the activity log.
func (s *Service) TrackClick(ctx context.Context, username, role, source, status string) error {
	if username == "" || role == "" {
		return errors.NewValidationError("user and role are required")
	}
	if source == "" {
		source = "Email"
	}
	return s.clicks.LogJobApplication(ctx, username, role, source, status)
}

// Subscribe registers a user for periodic reports and returns the
// subscription id.
func (s *Service) Subscribe(sub models.WatchdogSubscription) (int64, error) {
	if sub.Email == "" || sub.Query == "" {
		return 0, errors.NewValidationError("email and query are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sub.ID = s.nextID
	sub.Active = true
	s.subscriptions[sub.ID] = &sub
	s.logger.Info("watchdog subscription added", map[string]interface{}{
		"id":    sub.ID,
		"email": sub.Email,
		"query": sub.Query,
	})
	return sub.ID, nil
}

// Unsubscribe deactivates a subscription.
func (s *Service) Unsubscribe(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return errors.NewResourceNotFoundError("subscription", fmt.Sprintf("%d", id))
	}
	sub.Active = false
	return nil
}

// ActiveSubscriptions snapshots the live subscriptions for a scheduler pass.
func (s *Service) ActiveSubscriptions() []models.WatchdogSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WatchdogSubscription, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		if sub.Active {
			out = append(out, *sub)
		}
	}
	return out
}

// RunPass sends a report for every active subscription. Failures are logged
// and do not stop the pass.
func (s *Service) RunPass(ctx context.Context) {
	subs := s.ActiveSubscriptions()
	for _, sub := range subs {
		if err := s.SendReport(ctx, sub.Email, sub.Username, sub.Phone, sub.Query, sub.Source); err != nil {
			s.logger.Error("scheduled report failed", map[string]interface{}{
				"email": sub.Email,
				"error": err.Error(),
			})
		}
	}
	if len(subs) > 0 {
		s.logger.Info("watchdog pass completed", map[string]interface{}{"subscriptions": len(subs)})
	}
}
