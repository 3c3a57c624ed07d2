package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vss-session/internal/api/apitest"
	"vss-session/internal/config"
	"vss-session/internal/dto"
	apperrors "vss-session/internal/errors"
	"vss-session/internal/logging"
	"vss-session/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

const password = "Passw0rd!"

type AppTestSuite struct {
	suite.Suite
	backend *apitest.Backend
	ctx     context.Context
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.backend = apitest.NewBackend()
	s.ctx = context.Background()
}

func (s *AppTestSuite) TearDownTest() {
	s.backend.Close()
}

func (s *AppTestSuite) config(store config.StoreConfig) *config.Config {
	return &config.Config{
		Environment: "test",
		API: config.APIConfig{
			BaseURL:             s.backend.URL(),
			Timeout:             2 * time.Second,
			RefreshSingleFlight: true,
			BreakerMaxFailures:  5,
			BreakerResetTimeout: time.Second,
			BreakerHalfOpenSucc: 1,
		},
		Store: store,
		Policy: config.PolicyConfig{
			PasswordMinLength:      8,
			PasswordMaxLength:      72,
			LoginPasswordMinLength: 6,
			NameMinLength:          2,
			NameMaxLength:          50,
			EmailMaxLength:         254,
		},
		Session: config.SessionConfig{InitTimeout: time.Second},
		Bridge: config.BridgeConfig{
			Host:               "127.0.0.1",
			Port:               "0",
			RateLimitPerSecond: 1000,
			RateLimitBurst:     1000,
		},
	}
}

func (s *AppTestSuite) newApp(store config.StoreConfig) *App {
	a, err := New(s.config(store), logging.Discard(), "test")
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = a.Close() })
	a.Initialize(s.ctx)
	return a
}

func memoryStore() config.StoreConfig {
	return config.StoreConfig{Driver: config.StoreDriverMemory}
}

func (s *AppTestSuite) do(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func (s *AppTestSuite) login(e *echo.Echo, email string) dto.SessionResponse {
	rec := s.do(e, http.MethodPost, "/session/login", models.Credentials{Email: email, Password: password})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var session dto.SessionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &session))
	return session
}

func (s *AppTestSuite) TestNew_UnknownDriver() {
	_, err := New(s.config(config.StoreConfig{Driver: "etcd"}), logging.Discard(), "test")
	s.ErrorIs(err, config.ErrInvalidStoreDriver)
}

func (s *AppTestSuite) TestNew_BadEncryptionKey() {
	store := memoryStore()
	store.EncryptionKey = []byte("short")

	_, err := New(s.config(store), logging.Discard(), "test")
	s.Error(err)
}

func (s *AppTestSuite) TestInitialize_SignedOutWithEmptyStore() {
	a := s.newApp(memoryStore())

	state := a.Controller.State()
	s.False(state.IsLoading)
	s.False(state.IsAuthenticated)
}

func (s *AppTestSuite) TestBridge_LoginAndSession() {
	s.backend.AddUser("ana@example.com", password, "Ana Lopez", models.RoleColab)
	e := s.newApp(memoryStore()).Router()

	session := s.login(e, "ana@example.com")
	s.True(session.IsAuthenticated)
	s.Require().NotNil(session.User)
	s.Equal(models.RoleColab, session.User.Role)

	rec := s.do(e, http.MethodGet, "/session", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"isAuthenticated":true`)
	s.NotEmpty(rec.Header().Get(echo.HeaderXRequestID))
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func (s *AppTestSuite) TestBridge_RouteDecisions() {
	s.backend.AddUser("ana@example.com", password, "Ana Lopez", models.RoleColab)
	e := s.newApp(memoryStore()).Router()

	rec := s.do(e, http.MethodGet, "/session/route?target=/dashboard", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"decision":"redirect_to_login"`)

	s.login(e, "ana@example.com")

	rec = s.do(e, http.MethodGet, "/session/route?target=/dashboard", nil)
	s.Contains(rec.Body.String(), `"decision":"render_target"`)

	rec = s.do(e, http.MethodGet, "/session/route?target=/admin&required_role=admin", nil)
	s.Contains(rec.Body.String(), `"decision":"redirect_to_default"`)
}

func (s *AppTestSuite) TestBridge_UsersRequireAdmin() {
	s.backend.AddUser("ana@example.com", password, "Ana Lopez", models.RoleColab)
	s.backend.AddUser("root@example.com", password, "Root Admin", models.RoleAdmin)

	s.Run("signed out", func() {
		e := s.newApp(memoryStore()).Router()
		rec := s.do(e, http.MethodGet, "/users", nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("colab", func() {
		e := s.newApp(memoryStore()).Router()
		s.login(e, "ana@example.com")

		rec := s.do(e, http.MethodGet, "/users", nil)
		s.Equal(http.StatusForbidden, rec.Code)

		var response apperrors.ErrorResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Equal("AUTH_005", response.Error.Code)
	})

	s.Run("admin", func() {
		e := s.newApp(memoryStore()).Router()
		s.login(e, "root@example.com")

		rec := s.do(e, http.MethodGet, "/users?limit=10", nil)
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())
		s.Contains(rec.Body.String(), "ana@example.com")
	})
}

func (s *AppTestSuite) TestBridge_LogoutClearsStore() {
	s.backend.AddUser("ana@example.com", password, "Ana Lopez", models.RoleColab)
	a := s.newApp(memoryStore())
	e := a.Router()
	s.login(e, "ana@example.com")
	s.True(a.Store.IsAuthenticated())

	rec := s.do(e, http.MethodPost, "/session/logout", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.False(a.Store.IsAuthenticated())
	s.Nil(a.Store.GetUser())
	s.False(a.Controller.State().IsAuthenticated)
}

func (s *AppTestSuite) TestBridge_HealthAndMetrics() {
	e := s.newApp(memoryStore()).Router()

	rec := s.do(e, http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	var health dto.HealthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &health))
	s.Equal("healthy", health.Status)
	s.Equal(config.StoreDriverMemory, health.Store)
	s.Equal("test", health.Version)

	s.do(e, http.MethodGet, "/nowhere", nil)

	rec = s.do(e, http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.True(strings.Contains(rec.Body.String(), "bridge_errors_total"))
}

func (s *AppTestSuite) TestSQLiteSessionSurvivesRestart() {
	s.backend.AddUser("ana@example.com", password, "Ana Lopez", models.RoleColab)
	store := config.StoreConfig{
		Driver:         config.StoreDriverSQLite,
		Path:           filepath.Join(s.T().TempDir(), "session.db"),
		MaxConnections: 1,
		MaxIdleConns:   1,
		AutoMigrate:    true,
	}

	first, err := New(s.config(store), logging.Discard(), "test")
	s.Require().NoError(err)
	first.Initialize(s.ctx)
	s.login(first.Router(), "ana@example.com")
	s.Require().NoError(first.Close())

	second := s.newApp(store)

	state := second.Controller.State()
	s.True(state.IsAuthenticated)
	s.Require().NotNil(state.User)
	s.Equal("ana@example.com", state.User.Email)
	s.Equal(1, s.backend.Calls(apitest.RouteMe))
}

func (s *AppTestSuite) TestEncryptedStore() {
	s.backend.AddUser("ana@example.com", password, "Ana Lopez", models.RoleColab)
	store := memoryStore()
	store.EncryptionKey = bytes.Repeat([]byte{7}, 32)
	a := s.newApp(store)

	s.login(a.Router(), "ana@example.com")

	s.True(a.Store.IsAuthenticated())
	s.Equal("ana@example.com", a.Store.GetUser().Email)
}

func (s *AppTestSuite) TestServe_StopsOnCancel() {
	a := s.newApp(memoryStore())
	ctx, cancel := context.WithCancel(s.ctx)

	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.FailNow("serve did not stop")
	}
}
