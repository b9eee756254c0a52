// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bcasprint-backend/internal/admin"
	"bcasprint-backend/internal/auth"
	"bcasprint-backend/internal/catalog"
	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/database"
	"bcasprint-backend/internal/common/email"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/common/observability"
	"bcasprint-backend/internal/httpapi"
	"bcasprint-backend/internal/materials"
	"bcasprint-backend/internal/prediction"
	"bcasprint-backend/internal/recommend"
	"bcasprint-backend/internal/salarymodel"
	"bcasprint-backend/internal/session"
	"bcasprint-backend/internal/store"
	"bcasprint-backend/internal/watchdog"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting bcasprint backend...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional, study-materials search degrades without it) ---
	var searcher materials.Searcher
	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Warn("elasticsearch unavailable, materials search uses the in-memory catalog", zap.Error(err))
		} else {
			es := materials.NewElasticSearcher(esClient.Client, log)
			if err := es.IndexCatalog(ctx); err != nil {
				zapLog.Warn("indexing company catalog failed", zap.Error(err))
			}
			searcher = es
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Outbound channels ---
	mailer, err := email.NewMailer(ctx, cfg.Email, log)
	if err != nil {
		zapLog.Fatal("mailer init failed", zap.Error(err))
	}

	var sms *email.SMSSender
	if cfg.Watchdog.SMSEnabled {
		sms, err = email.NewSMSSender(ctx, cfg.Email, log)
		if err != nil {
			zapLog.Warn("sms sender unavailable, watchdog stays email-only", zap.Error(err))
			sms = nil
		}
	}

	// --- Storage and accounts ---
	st := store.New(pg.DB, log)
	if err := st.CreateTables(ctx); err != nil {
		zapLog.Fatal("schema setup failed", zap.Error(err))
	}

	sessions := session.NewManager(
		rdb.Client,
		time.Duration(cfg.Auth.SessionTTL)*time.Minute,
		cfg.Prediction.SessionLimit,
		log,
	)

	authSvc := auth.NewService(st, sessions, mailer, cfg.Auth, log)
	if err := authSvc.EnsureSeedAdmin(ctx); err != nil {
		zapLog.Warn("seed admin setup failed", zap.Error(err))
	}

	// --- Prediction pipeline ---
	cat := catalog.New(cfg.Artifacts.DatasetPath, log)
	model := salarymodel.Load(cfg.Artifacts.ModelPath, log)
	recommender := recommend.NewClient(cfg.APIs, log)
	orchestrator := prediction.New(model, cat, recommender, st, obs, log)

	// --- Watchdog ---
	watchdogSvc := watchdog.NewService(mailer, sms, st, cfg.App.BaseURL, log)
	scheduler := watchdog.NewScheduler(watchdogSvc, cfg.Watchdog, log)
	if err := scheduler.Start(ctx); err != nil {
		zapLog.Fatal("watchdog scheduler failed", zap.Error(err))
	}
	defer scheduler.Stop()

	// --- HTTP surface ---
	server := httpapi.NewServer(httpapi.Deps{
		Config:       cfg.HTTP,
		Logger:       log,
		Sessions:     sessions,
		Auth:         authSvc,
		Orchestrator: orchestrator,
		Catalog:      cat,
		Store:        st,
		Watchdog:     watchdogSvc,
		Materials:    materials.NewService(searcher, log),
		Admin:        admin.NewService(st, log),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zapLog.Fatal("http server failed", zap.Error(err))
	case sig := <-stop:
		zapLog.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("server stopped")
}
