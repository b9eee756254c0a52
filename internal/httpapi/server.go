// Package httpapi is the HTTP surface: gin routes over the auth, prediction,
// watchdog, materials and admin services.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bcasprint-backend/internal/admin"
	"bcasprint-backend/internal/auth"
	"bcasprint-backend/internal/catalog"
	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/materials"
	"bcasprint-backend/internal/prediction"
	"bcasprint-backend/internal/session"
	"bcasprint-backend/internal/store"
	"bcasprint-backend/internal/watchdog"
)

type Server struct {
	engine       *gin.Engine
	httpServer   *http.Server
	cfg          config.HTTPConfig
	logger       logger.Logger
	sessions     *session.Manager
	authSvc      *auth.Service
	orchestrator *prediction.Orchestrator
	catalog      *catalog.Catalog
	store        *store.Store
	watchdogSvc  *watchdog.Service
	materialsSvc *materials.Service
	adminSvc     *admin.Service
}

type Deps struct {
	Config       config.HTTPConfig
	Logger       logger.Logger
	Sessions     *session.Manager
	Auth         *auth.Service
	Orchestrator *prediction.Orchestrator
	Catalog      *catalog.Catalog
	Store        *store.Store
	Watchdog     *watchdog.Service
	Materials    *materials.Service
	Admin        *admin.Service
}

func NewServer(deps Deps) *Server {
	s := &Server{
		cfg:          deps.Config,
		logger:       deps.Logger.WithFields(map[string]interface{}{"component": "http"}),
		sessions:     deps.Sessions,
		authSvc:      deps.Auth,
		orchestrator: deps.Orchestrator,
		catalog:      deps.Catalog,
		store:        deps.Store,
		watchdogSvc:  deps.Watchdog,
		materialsSvc: deps.Materials,
		adminSvc:     deps.Admin,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	if len(deps.Config.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
			s.logger.Warn("invalid trusted proxy list, keeping gin defaults", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(cors.Default())

	s.engine = engine
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", s.handleSignup)
		authGroup.POST("/verify", s.handleVerify)
		authGroup.POST("/resend-otp", s.handleResendOTP)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/forgot-password", s.handleForgotPassword)
		authGroup.POST("/reset-password", s.handleResetPassword)
		authGroup.POST("/logout", s.requireSession(), s.handleLogout)
	}

	api.GET("/options", s.handleOptions)

	// Tracking links arrive from email clients without a session.
	api.GET("/watchdog/track", s.handleWatchdogTrack)

	authed := api.Group("", s.requireSession())
	{
		authed.POST("/predict", s.handlePredict)
		authed.GET("/history", s.handleHistory)
		authed.POST("/feedback", s.handleFeedback)

		authed.POST("/watchdog/analyze", s.handleWatchdogAnalyze)
		authed.POST("/watchdog/send", s.handleWatchdogSend)
		authed.POST("/watchdog/subscribe", s.handleWatchdogSubscribe)
		authed.DELETE("/watchdog/subscribe/:id", s.handleWatchdogUnsubscribe)

		authed.GET("/materials", s.handleMaterials)
		authed.GET("/materials/:name", s.handleMaterialByName)
	}

	adminGroup := api.Group("/admin", s.requireSession(), s.requireAdmin())
	{
		adminGroup.GET("/kpis", s.handleAdminKPIs)
		adminGroup.GET("/users", s.handleAdminUsers)
		adminGroup.GET("/logs", s.handleAdminLogs)
		adminGroup.PUT("/users/:username/role", s.handleAdminSetRole)
		adminGroup.DELETE("/users/:username", s.handleAdminDeleteUser)
	}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Address,
		Handler:      s.engine,
		ReadTimeout:  config.GetDuration(s.cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(s.cfg.WriteTimeout),
	}
	s.logger.Info("http server listening", map[string]interface{}{"address": s.cfg.Address})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
