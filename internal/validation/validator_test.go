package validation

import (
	"strings"
	"testing"

	"vss-session/internal/config"
	"vss-session/internal/errors"
	"vss-session/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
)

type AuthValidatorsTestSuite struct {
	suite.Suite
	validators *AuthValidators
}

func defaultPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		PasswordMinLength:      8,
		PasswordMaxLength:      72,
		LoginPasswordMinLength: 6,
		NameMinLength:          2,
		NameMaxLength:          50,
		EmailMaxLength:         254,
	}
}

func (s *AuthValidatorsTestSuite) SetupTest() {
	s.validators = NewAuthValidators(defaultPolicy())
}

func TestAuthValidatorsSuite(t *testing.T) {
	suite.Run(t, new(AuthValidatorsTestSuite))
}

func (s *AuthValidatorsTestSuite) TestEmailChain_Order() {
	testCases := []struct {
		name    string
		input   string
		message string
	}{
		{name: "empty reports required, not format", input: "", message: MsgEmailRequired},
		{name: "whitespace only is required", input: "   ", message: MsgEmailRequired},
		{name: "missing domain dot", input: "user@localhost", message: MsgEmailInvalid},
		{name: "missing at", input: "user.example.com", message: MsgEmailInvalid},
		{name: "inner space", input: "us er@example.com", message: MsgEmailInvalid},
		{name: "too long", input: strings.Repeat("a", 250) + "@b.com", message: "Email must be at most 254 characters"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result := s.validators.Email.Validate(tc.input)
			s.False(result.IsValid)
			s.Equal(tc.message, result.Error)
		})
	}

	s.True(s.validators.Email.Validate("a@b.com").IsValid)
	s.True(s.validators.Email.Validate(gofakeit.Email()).IsValid)
}

func (s *AuthValidatorsTestSuite) TestEmailChain_DomainAllowList() {
	policy := defaultPolicy()
	policy.AllowedEmailDomains = []string{"vss.io", "example.com"}
	validators := NewAuthValidators(policy)

	s.True(validators.Email.Validate("ana@vss.io").IsValid)
	s.True(validators.Email.Validate("ana@Example.com").IsValid)

	result := validators.Email.Validate("ana@gmail.com")
	s.False(result.IsValid)
	s.Equal(MsgEmailDomain, result.Error)
	s.Equal(errors.ValidationEmailDomain, result.Code)

	result = validators.Email.Validate("not-an-email")
	s.Equal(MsgEmailInvalid, result.Error)
}

func (s *AuthValidatorsTestSuite) TestLoginPassword_IsLooserThanRegistration() {
	s.True(s.validators.LoginPassword.Validate("abcdef").IsValid)
	s.False(s.validators.RegisterPassword.Validate("abcdef").IsValid)

	result := s.validators.LoginPassword.Validate("")
	s.Equal(MsgPasswordMissing, result.Error)

	result = s.validators.LoginPassword.Validate("abc")
	s.Equal("Password must be at least 6 characters", result.Error)
}

func (s *AuthValidatorsTestSuite) TestRegisterPassword_Order() {
	testCases := []struct {
		input   string
		message string
	}{
		{input: "", message: MsgPasswordMissing},
		{input: "x", message: "Password must be at least 8 characters"},
		{input: "password1", message: MsgPasswordUpper},
		{input: "PASSWORD1", message: MsgPasswordLower},
		{input: "Passwords", message: MsgPasswordDigit},
		{input: "Pa1" + strings.Repeat("x", 70), message: "Password must be at most 72 characters"},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			result := s.validators.RegisterPassword.Validate(tc.input)
			s.False(result.IsValid)
			s.Equal(tc.message, result.Error)
		})
	}

	s.True(s.validators.RegisterPassword.Validate("Passw0rd1").IsValid)
}

func (s *AuthValidatorsTestSuite) TestRegisterPassword_SpecialWhenRequired() {
	policy := defaultPolicy()
	policy.RequireSpecialChars = true
	validators := NewAuthValidators(policy)

	s.Equal(MsgPasswordSpecial, validators.RegisterPassword.Validate("Passw0rd1").Error)
	s.True(validators.RegisterPassword.Validate("Passw0rd!").IsValid)
}

func (s *AuthValidatorsTestSuite) TestNameChain() {
	testCases := []struct {
		input   string
		message string
	}{
		{input: "", message: MsgNameRequired},
		{input: " A ", message: "Name must be at least 2 characters"},
		{input: strings.Repeat("a", 51), message: "Name must be at most 50 characters"},
		{input: "R2D2", message: MsgNameInvalid},
	}

	for _, tc := range testCases {
		s.Run(tc.input, func() {
			result := s.validators.Name.Validate(tc.input)
			s.False(result.IsValid)
			s.Equal(tc.message, result.Error)
		})
	}

	s.True(s.validators.Name.Validate("José Núñez").IsValid)
	s.True(s.validators.Name.Validate("  " + strings.Repeat("a", 50) + "  ").IsValid)
}

func (s *AuthValidatorsTestSuite) TestPasswordMatch() {
	s.True(s.validators.PasswordMatch.Validate(models.PasswordPair{Password: "Secret1A", Confirmation: "Secret1A"}).IsValid)

	result := s.validators.PasswordMatch.Validate(models.PasswordPair{Password: "Secret1A", Confirmation: "Secret1B"})
	s.False(result.IsValid)
	s.Equal(MsgPasswordMatch, result.Error)
}

func (s *AuthValidatorsTestSuite) TestValidateRegistration_FirstFailureWins() {
	err := s.validators.ValidateRegistration(models.RegistrationData{Email: "", Password: "x", Name: "Name"})

	s.Require().Error(err)
	s.True(errors.IsValidation(err))
	s.Equal(MsgEmailRequired, errors.UserMessage(err))

	var sessionErr *errors.Error
	s.Require().ErrorAs(err, &sessionErr)
	s.Equal(FieldEmail, sessionErr.Field)
	s.Equal(errors.ValidationRequiredField, sessionErr.Code)
}

func (s *AuthValidatorsTestSuite) TestValidateRegistration_Mismatch() {
	err := s.validators.ValidateRegistration(models.RegistrationData{
		Email:           "ana@vss.io",
		Password:        "Passw0rd1",
		ConfirmPassword: "Passw0rd2",
		Name:            "Ana",
	})

	s.Equal(MsgPasswordMatch, errors.UserMessage(err))
}

func (s *AuthValidatorsTestSuite) TestValidateRegistration_Valid() {
	err := s.validators.ValidateRegistration(models.RegistrationData{
		Email:    gofakeit.Email(),
		Password: "Passw0rd1",
		Name:     "Ana María",
	})

	s.NoError(err)
}

func (s *AuthValidatorsTestSuite) TestValidateCredentials() {
	s.NoError(s.validators.ValidateCredentials(models.Credentials{Email: "a@b.com", Password: "Passw0rd1"}))

	err := s.validators.ValidateCredentials(models.Credentials{Email: "a@b.com"})
	s.Equal(MsgPasswordMissing, errors.UserMessage(err))
}

func (s *AuthValidatorsTestSuite) TestValidatePasswordReset() {
	s.Equal(MsgCodeInvalid, errors.UserMessage(s.validators.ValidatePasswordReset("a@b.com", "12ab56", "Passw0rd1", "")))
	s.Equal(MsgCodeRequired, errors.UserMessage(s.validators.ValidatePasswordReset("a@b.com", "", "Passw0rd1", "")))
	s.Equal(MsgPasswordMatch, errors.UserMessage(s.validators.ValidatePasswordReset("a@b.com", "123456", "Passw0rd1", "nope")))
	s.NoError(s.validators.ValidatePasswordReset("a@b.com", "123456", "Passw0rd1", "Passw0rd1"))
}

func (s *AuthValidatorsTestSuite) TestValidatePasswordReset_RequiresConfirmation() {
	err := s.validators.ValidatePasswordReset("a@b.com", "123456", "N3wPassword", "")

	var sessionErr *errors.Error
	s.Require().ErrorAs(err, &sessionErr)
	s.Equal(FieldConfirmPassword, sessionErr.Field)
	s.Equal(MsgPasswordMatch, errors.UserMessage(err))
}
