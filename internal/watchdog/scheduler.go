package watchdog

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/logger"
)

// Scheduler re-runs the report pass on the configured interval. The first
// pass fires immediately at Start so fresh subscribers never wait a full
// interval.
type Scheduler struct {
	service *Service
	cron    *cron.Cron
	cfg     config.WatchdogConfig
	logger  logger.Logger
}

func NewScheduler(service *Service, cfg config.WatchdogConfig, log logger.Logger) *Scheduler {
	return &Scheduler{
		service: service,
		cron:    cron.New(),
		cfg:     cfg,
		logger:  log.WithFields(map[string]interface{}{"component": "watchdog-scheduler"}),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("watchdog scheduler disabled", nil)
		return nil
	}

	interval := s.cfg.IntervalHours
	if interval <= 0 {
		interval = 24
	}

	spec := fmt.Sprintf("@every %dh", interval)
	if _, err := s.cron.AddFunc(spec, func() {
		s.service.RunPass(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule watchdog pass: %w", err)
	}

	go s.service.RunPass(ctx)
	s.cron.Start()
	s.logger.Info("watchdog scheduler started", map[string]interface{}{"interval_hours": interval})
	return nil
}

// Stop halts scheduling and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}
