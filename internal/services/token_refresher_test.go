package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"vss-session/internal/api"
	apperrors "vss-session/internal/errors"
	"vss-session/internal/logging"
	"vss-session/internal/models"
	"vss-session/internal/repositories"
	"vss-session/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

// cannedSender answers every request with the same response or error
type cannedSender struct {
	resp  *api.Response
	err   error
	paths []string
}

func (c *cannedSender) Send(_ context.Context, req *api.Request, _ string) (*api.Response, error) {
	c.paths = append(c.paths, req.Path)
	return c.resp, c.err
}

type TokenRefresherTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	metrics *service_mocks.MockMetricsRecorderInterface
	store   *repositories.TokenStore
}

func TestTokenRefresherSuite(t *testing.T) {
	suite.Run(t, new(TokenRefresherTestSuite))
}

func (s *TokenRefresherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.store = repositories.NewTokenStore(repositories.NewMemoryStore(), NewTokenService(), logging.Discard())
	user := &models.User{ID: models.NewUserID("7"), Email: "a@b.com", Role: models.RoleColab}
	s.Require().NoError(s.store.SetSession(models.TokenPair{AccessToken: "T1", RefreshToken: "R1"}, user))
}

func (s *TokenRefresherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TokenRefresherTestSuite) refresher(sender api.Sender) *TokenRefresher {
	return NewTokenRefresher(sender, s.store, s.metrics, logging.Discard())
}

func (s *TokenRefresherTestSuite) TestRefresh_KeepsRefreshTokenWhenNoneReturned() {
	sender := &cannedSender{resp: &api.Response{Status: http.StatusOK, Body: []byte(`{"accessToken":"T2"}`)}}
	s.metrics.EXPECT().IncrementCounter("token.refresh.success", gomock.Any()).Times(1)
	s.metrics.EXPECT().RecordProcessingTime("token.refresh", gomock.Any()).Times(1)

	pair, err := s.refresher(sender).Refresh(context.Background(), "R1")

	s.Require().NoError(err)
	s.Equal(models.TokenPair{AccessToken: "T2", RefreshToken: "R1"}, *pair)
	s.Equal("T2", s.store.GetAccessToken())
	s.Equal("R1", s.store.GetRefreshToken())
	s.NotNil(s.store.GetUser())
	s.Equal([]string{"/auth/refresh"}, sender.paths)
}

func (s *TokenRefresherTestSuite) TestRefresh_AcceptsNestedTokens() {
	sender := &cannedSender{resp: &api.Response{
		Status: http.StatusOK,
		Body:   []byte(`{"tokens":{"accessToken":"T9","refreshToken":"R9"}}`),
	}}
	s.metrics.EXPECT().IncrementCounter("token.refresh.success", gomock.Any())
	s.metrics.EXPECT().RecordProcessingTime("token.refresh", gomock.Any())

	pair, err := s.refresher(sender).Refresh(context.Background(), "R1")

	s.Require().NoError(err)
	s.Equal("T9", pair.AccessToken)
	s.Equal("R9", s.store.GetRefreshToken())
}

func (s *TokenRefresherTestSuite) TestRefresh_FailuresClearSession() {
	testCases := []struct {
		name   string
		sender *cannedSender
	}{
		{name: "rejected", sender: &cannedSender{err: &api.StatusError{Method: http.MethodPost, Path: "/auth/refresh", Status: http.StatusUnauthorized}}},
		{name: "unreachable", sender: &cannedSender{err: apperrors.NewNetworkError(apperrors.NetworkUnreachable, errors.New("connection refused"))}},
		{name: "empty body", sender: &cannedSender{resp: &api.Response{Status: http.StatusOK}}},
		{name: "no access token", sender: &cannedSender{resp: &api.Response{Status: http.StatusOK, Body: []byte(`{"refreshToken":"R2"}`)}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Require().NoError(s.store.SetSession(models.TokenPair{AccessToken: "T1", RefreshToken: "R1"}, &models.User{ID: models.NewUserID("7"), Email: "a@b.com"}))
			s.metrics.EXPECT().IncrementCounter("token.refresh.failed", gomock.Any())
			s.metrics.EXPECT().RecordProcessingTime("token.refresh", gomock.Any())

			_, err := s.refresher(tc.sender).Refresh(context.Background(), "R1")

			s.Require().Error(err)
			s.True(apperrors.IsSessionExpired(err))
			s.True(s.store.GetTokens().IsZero())
			s.Nil(s.store.GetUser())
		})
	}
}

func (s *TokenRefresherTestSuite) TestRefresh_EmptyTokenSkipsNetwork() {
	sender := &cannedSender{}
	s.metrics.EXPECT().IncrementCounter("token.refresh.failed", gomock.Any())
	s.metrics.EXPECT().RecordProcessingTime("token.refresh", gomock.Any())

	_, err := s.refresher(sender).Refresh(context.Background(), "")

	s.ErrorIs(err, ErrNoRefreshToken)
	s.Empty(sender.paths)
	s.False(s.store.IsAuthenticated())
}

func (s *TokenRefresherTestSuite) TestRefresh_CancelledCallerKeepsSession() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sender := &cannedSender{err: apperrors.NewNetworkError(apperrors.NetworkTimeout, context.Canceled)}
	s.metrics.EXPECT().IncrementCounter("token.refresh.abandoned", gomock.Any())
	s.metrics.EXPECT().RecordProcessingTime("token.refresh", gomock.Any())

	_, err := s.refresher(sender).Refresh(ctx, "R1")

	s.Require().Error(err)
	s.ErrorIs(err, context.Canceled)
	s.False(apperrors.IsSessionExpired(err))
	s.Equal("T1", s.store.GetAccessToken())
	s.Equal("R1", s.store.GetRefreshToken())
	s.NotNil(s.store.GetUser())
}
