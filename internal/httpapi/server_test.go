package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bcasprint-backend/internal/admin"
	"bcasprint-backend/internal/auth"
	"bcasprint-backend/internal/catalog"
	"bcasprint-backend/internal/common/config"
	"bcasprint-backend/internal/common/email"
	"bcasprint-backend/internal/common/logger"
	"bcasprint-backend/internal/materials"
	"bcasprint-backend/internal/models"
	"bcasprint-backend/internal/prediction"
	"bcasprint-backend/internal/session"
	"bcasprint-backend/internal/store"
	"bcasprint-backend/internal/watchdog"
)

type fakeMailer struct{}

func (f *fakeMailer) Send(context.Context, *email.Message) error { return nil }

type fakePredictor struct {
	salary float64
}

func (f *fakePredictor) Predict(models.Profile) (float64, error) { return f.salary, nil }

type fakeRecommender struct{}

func (f *fakeRecommender) Recommend(context.Context, float64, float64, string, string) []models.Recommendation {
	return []models.Recommendation{
		{Name: "SQL Practice", Reason: "Asked in every interview", Link: "https://example.com/sql", Priority: "High"},
	}
}

func (f *fakeRecommender) PseudoPredict(context.Context, models.Profile, string) (float64, bool) {
	return 800000, true
}

type fakeRecorder struct{}

func (f *fakeRecorder) LogPrediction(context.Context, string, string, string) error { return nil }

type testServer struct {
	server   *Server
	mock     sqlmock.Sqlmock
	sessions *session.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logger.NewNoOpLogger()
	st := store.New(db, log)
	sessions := session.NewManager(client, 30*time.Minute, 5, log)

	authCfg := config.AuthConfig{SessionTTL: 30, OTPTTL: 5, OTPResendWait: 60}
	mailer := &fakeMailer{}
	authSvc := auth.NewService(st, sessions, mailer, authCfg, log)

	cat := catalog.NewWithDataset(catalog.DummyDataset(), log)
	orch := prediction.New(&fakePredictor{salary: 500000}, cat, &fakeRecommender{}, &fakeRecorder{}, nil, log)

	watchdogSvc := watchdog.NewService(mailer, nil, st, "http://localhost:8080", log)
	materialsSvc := materials.NewService(nil, log)
	adminSvc := admin.NewService(st, log)

	server := NewServer(Deps{
		Config:       config.HTTPConfig{Address: ":0"},
		Logger:       log,
		Sessions:     sessions,
		Auth:         authSvc,
		Orchestrator: orch,
		Catalog:      cat,
		Store:        st,
		Watchdog:     watchdogSvc,
		Materials:    materialsSvc,
		Admin:        adminSvc,
	})
	return &testServer{server: server, mock: mock, sessions: sessions}
}

func (ts *testServer) newSession(t *testing.T, username, role string) *session.Session {
	t.Helper()
	sess, err := ts.sessions.Create(context.Background(), &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	})
	require.NoError(t, err)
	return sess
}

func (ts *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.server.Engine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/history", "/api/materials"} {
		w := ts.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := ts.do(http.MethodGet, "/api/history", "no-such-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupRejectsIncompleteBody(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/auth/signup", "", `{"username": "asha"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOptionsIsPublic(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/options", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body, models.FieldDistrict)
	assert.Contains(t, body, models.FieldJobRoleLevel)

	roles, ok := body[models.FieldJobRoleLevel].([]interface{})
	require.True(t, ok)
	assert.Contains(t, roles, models.NotListedRole)
}

func predictBody() string {
	return `{
		"profile": {
			"district": "Pune",
			"company_type": "Startup",
			"job_role_level": "Software Developer - GET",
			"internship_exp": "6-12 months",
			"cgpa": "8.0-8.9",
			"college_tier": "Tier-2"
		}
	}`
}

func TestPredict(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "asha", models.RoleUser)

	w := ts.do(http.MethodPost, "/api/predict", sess.Token, predictBody())

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "₹ 405,000 - 495,000 (Center: 450,000)", body["range"])
	assert.Equal(t, float64(450000), body["center"])
	assert.Equal(t, float64(405000), body["min"])
	assert.Equal(t, float64(495000), body["max"])

	recs, ok := body["recommendations"].([]interface{})
	require.True(t, ok)
	require.Len(t, recs, 1)
	first := recs[0].(map[string]interface{})
	assert.Equal(t, "SQL Practice", first["name"])
}

func TestPredictLimit(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "asha", models.RoleUser)

	for i := 0; i < 5; i++ {
		w := ts.do(http.MethodPost, "/api/predict", sess.Token, predictBody())
		require.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("prediction %d", i+1))
	}

	w := ts.do(http.MethodPost, "/api/predict", sess.Token, predictBody())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

// A submission rejected before prediction must not spend a quota slot.
func TestPredictValidationErrorKeepsQuota(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "asha", models.RoleUser)

	body := `{
		"profile": {
			"district": "Pune",
			"company_type": "Startup",
			"job_role_level": "Not Listed",
			"internship_exp": "6-12 months",
			"cgpa": "8.0-8.9",
			"college_tier": "Tier-2"
		},
		"custom_role": ""
	}`
	w := ts.do(http.MethodPost, "/api/predict", sess.Token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	got, err := ts.sessions.Get(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Predictions)

	// all five slots are still available
	for i := 0; i < 5; i++ {
		w := ts.do(http.MethodPost, "/api/predict", sess.Token, predictBody())
		require.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("prediction %d", i+1))
	}
}

func TestPredictRejectsUnknownOption(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "asha", models.RoleUser)

	body := `{
		"profile": {
			"district": "Atlantis",
			"company_type": "Startup",
			"job_role_level": "Software Developer - GET",
			"internship_exp": "6-12 months",
			"cgpa": "8.0-8.9",
			"college_tier": "Tier-2"
		}
	}`
	w := ts.do(http.MethodPost, "/api/predict", sess.Token, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "asha", models.RoleUser)

	rows := sqlmock.NewRows([]string{"created_at", "role_predicted", "prediction_value"}).
		AddRow(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), "Software Developer - GET", "₹ 405,000 - 495,000 (Center: 450,000)")
	ts.mock.ExpectQuery("SELECT created_at, role_predicted, prediction_value").
		WithArgs("asha").
		WillReturnRows(rows)

	w := ts.do(http.MethodGet, "/api/history", sess.Token, "")

	require.Equal(t, http.StatusOK, w.Code)
	history := decodeBody(t, w)["history"].([]interface{})
	require.Len(t, history, 1)
	entry := history[0].(map[string]interface{})
	assert.Equal(t, "Mar 14", entry["date"])
}

func TestFeedback(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "asha", models.RoleUser)

	ts.mock.ExpectExec("INSERT INTO feedback").
		WithArgs("asha", "Software Developer - GET", "₹ 405,000 - 495,000", "420000", "Accurate").
		WillReturnResult(sqlmock.NewResult(1, 1))

	body := `{
		"job_role": "Software Developer - GET",
		"predicted_salary": "₹ 405,000 - 495,000",
		"actual_salary": "420000",
		"accuracy_rating": "Accurate"
	}`
	w := ts.do(http.MethodPost, "/api/feedback", sess.Token, body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, ts.mock.ExpectationsWereMet())
}

func TestWatchdogAnalyze(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "asha", models.RoleUser)

	t.Run("manual input", func(t *testing.T) {
		body := `{"manual_role": "Python Developer", "manual_location": "Pune"}`
		w := ts.do(http.MethodPost, "/api/watchdog/analyze", sess.Token, body)

		require.Equal(t, http.StatusOK, w.Code)
		out := decodeBody(t, w)
		assert.Equal(t, "Python Developer jobs in Pune", out["query"])
		assert.Equal(t, watchdog.SourceManual, out["source"])
		links := out["links"].([]interface{})
		assert.Len(t, links, 4)
	})

	t.Run("nothing to analyze", func(t *testing.T) {
		w := ts.do(http.MethodPost, "/api/watchdog/analyze", sess.Token, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWatchdogTrack(t *testing.T) {
	ts := newTestServer(t)

	ts.mock.ExpectExec("INSERT INTO activity_logs").
		WithArgs("asha", "Job Click", "Python Developer via Email (Applied)").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := ts.do(http.MethodGet, "/api/watchdog/track?status=Applied&role=Python+Developer&user=asha", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "recorded")
	assert.NoError(t, ts.mock.ExpectationsWereMet())
}

func TestMaterials(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "asha", models.RoleUser)

	t.Run("full catalog", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/materials", sess.Token, "")

		require.Equal(t, http.StatusOK, w.Code)
		companies := decodeBody(t, w)["companies"].([]interface{})
		assert.Len(t, companies, 14)
	})

	t.Run("by name, case insensitive", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/materials/tcs", sess.Token, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "TCS", decodeBody(t, w)["name"])
	})

	t.Run("unknown company", func(t *testing.T) {
		w := ts.do(http.MethodGet, "/api/materials/NoSuchCo", sess.Token, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminAccess(t *testing.T) {
	ts := newTestServer(t)

	t.Run("regular user is rejected", func(t *testing.T) {
		sess := ts.newSession(t, "asha", models.RoleUser)
		w := ts.do(http.MethodGet, "/api/admin/kpis", sess.Token, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin sees kpis", func(t *testing.T) {
		sess := ts.newSession(t, "root", models.RoleSuperAdmin)

		ts.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE role = 'user'`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		ts.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE role IN`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		ts.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM predictions`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		w := ts.do(http.MethodGet, "/api/admin/kpis", sess.Token, "")

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(12), body["users"])
		assert.Equal(t, float64(2), body["admins"])
		assert.Equal(t, float64(7), body["predictions"])
	})
}

func TestAdminSetRole(t *testing.T) {
	ts := newTestServer(t)
	sess := ts.newSession(t, "root", models.RoleSuperAdmin)

	ts.mock.ExpectExec("UPDATE users SET role").
		WithArgs("admin", "ravi").
		WillReturnResult(sqlmock.NewResult(0, 1))
	ts.mock.ExpectExec("INSERT INTO activity_logs").
		WithArgs("root", "Role Change", "ravi -> admin").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := ts.do(http.MethodPut, "/api/admin/users/ravi/role", sess.Token, `{"role": "admin"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, ts.mock.ExpectationsWereMet())
}

func TestTrustedProxies(t *testing.T) {
	newEngine := func(proxies []string) *gin.Engine {
		srv := NewServer(Deps{
			Config: config.HTTPConfig{Address: ":0", TrustedProxies: proxies},
			Logger: logger.NewNoOpLogger(),
		})
		engine := srv.Engine()
		engine.GET("/clientip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })
		return engine
	}

	clientIP := func(engine *gin.Engine, remoteAddr string) string {
		req := httptest.NewRequest(http.MethodGet, "/clientip", nil)
		req.RemoteAddr = remoteAddr
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w.Body.String()
	}

	engine := newEngine([]string{"192.0.2.0/24"})

	// forwarded header honored only for requests arriving via the proxy
	assert.Equal(t, "203.0.113.7", clientIP(engine, "192.0.2.10:4711"))
	assert.Equal(t, "198.51.100.9", clientIP(engine, "198.51.100.9:4711"))
}
