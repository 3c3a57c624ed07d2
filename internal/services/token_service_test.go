package services

import (
	"encoding/base64"
	"testing"
	"time"

	"vss-session/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

// TokenServiceTestSuite defines the test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	now     time.Time
	service *TokenService
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.now = time.Unix(1_700_000_000, 0)
	s.service = NewTokenServiceWithClock(func() time.Time { return s.now })
}

func (s *TokenServiceTestSuite) mint(claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	s.Require().NoError(err)
	return token
}

func (s *TokenServiceTestSuite) TestDecodeToken_WellFormed() {
	token := s.mint(jwt.MapClaims{
		"sub":   "42",
		"email": "ana@example.com",
		"role":  "admin",
		"iat":   s.now.Unix(),
		"exp":   s.now.Add(time.Hour).Unix(),
	})

	decoded, err := s.service.DecodeToken(token)

	s.Require().NoError(err)
	s.Equal("42", decoded.SubjectID)
	s.Equal("ana@example.com", decoded.Email)
	s.Equal(models.RoleAdmin, decoded.Role)
	s.Equal(s.now.Unix(), decoded.IssuedAt)
	s.Equal(s.now.Add(time.Hour).Unix(), decoded.ExpiresAt)
}

func (s *TokenServiceTestSuite) TestDecodeToken_AlternateSubjectClaims() {
	numeric := s.mint(jwt.MapClaims{"user_id": 7, "role": 2, "exp": s.now.Unix()})
	decoded, err := s.service.DecodeToken(numeric)
	s.Require().NoError(err)
	s.Equal("7", decoded.SubjectID)
	s.Equal(models.RoleColab, decoded.Role)

	camel := s.mint(jwt.MapClaims{"userId": "u-9"})
	decoded, err = s.service.DecodeToken(camel)
	s.Require().NoError(err)
	s.Equal("u-9", decoded.SubjectID)
	s.False(decoded.HasExpiry())
}

func (s *TokenServiceTestSuite) TestDecodeToken_PaddedPayload() {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"1","exp":1700003600}`))
	decoded, err := s.service.DecodeToken("eyJhbGciOiJIUzI1NiJ9." + payload + ".sig")

	s.Require().NoError(err)
	s.Equal(int64(1700003600), decoded.ExpiresAt)
}

func (s *TokenServiceTestSuite) TestDecodeToken_Malformed() {
	validPayload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"1"}`))

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "one segment", token: "abc"},
		{name: "two segments", token: "a." + validPayload},
		{name: "four segments", token: "a." + validPayload + ".c.d"},
		{name: "invalid encoding", token: "a.!!!.c"},
		{name: "invalid json", token: "a." + base64.RawURLEncoding.EncodeToString([]byte("{not json")) + ".c"},
		{name: "json array", token: "a." + base64.RawURLEncoding.EncodeToString([]byte(`[1,2]`)) + ".c"},
		{name: "string exp", token: "a." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":"soon"}`)) + ".c"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var decoded *models.DecodedToken
			var err error
			s.NotPanics(func() {
				decoded, err = s.service.DecodeToken(tt.token)
			})
			s.ErrorIs(err, ErrMalformedToken)
			s.Nil(decoded)
		})
	}
}

func (s *TokenServiceTestSuite) TestIsTokenExpired() {
	s.True(s.service.IsTokenExpired(s.mint(jwt.MapClaims{"sub": "1", "exp": s.now.Unix() - 1})))
	s.False(s.service.IsTokenExpired(s.mint(jwt.MapClaims{"sub": "1", "exp": s.now.Unix() + 3600})))
	s.False(s.service.IsTokenExpired(s.mint(jwt.MapClaims{"sub": "1", "exp": s.now.Unix()})))
	s.True(s.service.IsTokenExpired(s.mint(jwt.MapClaims{"sub": "1"})))
	s.True(s.service.IsTokenExpired("not-a-token"))
}

func (s *TokenServiceTestSuite) TestGetTokenExpiry() {
	expiry, err := s.service.GetTokenExpiry(s.mint(jwt.MapClaims{"exp": s.now.Unix() + 60}))
	s.Require().NoError(err)
	s.Equal(s.now.Add(time.Minute).Unix(), expiry.Unix())

	_, err = s.service.GetTokenExpiry(s.mint(jwt.MapClaims{"sub": "1"}))
	s.ErrorIs(err, ErrMalformedToken)
}
