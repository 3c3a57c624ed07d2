package validation

import (
	"vss-session/internal/config"
	"vss-session/internal/errors"
	"vss-session/internal/models"
)

// Field names reported on validation errors.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldName            = "name"
	FieldCode            = "code"
)

// AuthValidators holds one chain per input purpose. Built once and shared.
type AuthValidators struct {
	Email            *Chain[string]
	LoginPassword    *Chain[string]
	RegisterPassword *Chain[string]
	Name             *Chain[string]
	PasswordMatch    *Chain[models.PasswordPair]
	ResetCode        *Chain[string]
}

// NewAuthValidators assembles the chains from the configured policy.
func NewAuthValidators(policy config.PolicyConfig) *AuthValidators {
	email := NewBuilder[string]().
		AddRule(Required(MsgEmailRequired)).
		AddRule(DomainAllowList(policy.AllowedEmailDomains, MsgEmailDomain)).
		AddRule(Format("email_format", errors.ValidationInvalidEmail, MsgEmailInvalid)).
		AddRule(MaxLength(policy.EmailMaxLength, msgEmailTooLong(policy.EmailMaxLength))).
		Build()

	loginPassword := NewBuilder[string]().
		AddRule(Required(MsgPasswordMissing)).
		AddRule(MinLength(policy.LoginPasswordMinLength, msgPasswordTooShort(policy.LoginPasswordMinLength))).
		Build()

	registerPassword := NewBuilder[string]().
		AddRule(Required(MsgPasswordMissing)).
		AddRule(MinLength(policy.PasswordMinLength, msgPasswordTooShort(policy.PasswordMinLength))).
		AddRule(RequireCharClass(Uppercase, MsgPasswordUpper)).
		AddRule(RequireCharClass(Lowercase, MsgPasswordLower)).
		AddRule(RequireCharClass(Digit, MsgPasswordDigit))
	if policy.RequireSpecialChars {
		registerPassword.AddRule(RequireCharClass(Special, MsgPasswordSpecial))
	}
	if policy.PasswordMaxLength > 0 {
		registerPassword.AddRule(MaxLength(policy.PasswordMaxLength, msgPasswordTooLong(policy.PasswordMaxLength)))
	}

	name := NewBuilder[string]().
		AddRule(Required(MsgNameRequired)).
		AddRule(Trimmed(MinLength(policy.NameMinLength, msgNameTooShort(policy.NameMinLength)))).
		AddRule(Trimmed(MaxLength(policy.NameMaxLength, msgNameTooLong(policy.NameMaxLength)))).
		AddRule(Format("person_name", errors.ValidationInvalidName, MsgNameInvalid)).
		Build()

	match := NewBuilder[models.PasswordPair]().
		AddRule(Match(MsgPasswordMatch)).
		Build()

	resetCode := NewBuilder[string]().
		AddRule(Required(MsgCodeRequired)).
		AddRule(Format("reset_code", errors.ValidationInvalidCode, MsgCodeInvalid)).
		Build()

	return &AuthValidators{
		Email:            email,
		LoginPassword:    loginPassword,
		RegisterPassword: registerPassword.Build(),
		Name:             name,
		PasswordMatch:    match,
		ResetCode:        resetCode,
	}
}

// ValidateCredentials runs the login chains: email, then login password.
func (v *AuthValidators) ValidateCredentials(c models.Credentials) error {
	if err := check(FieldEmail, v.Email.Validate(c.Email)); err != nil {
		return err
	}
	return check(FieldPassword, v.LoginPassword.Validate(c.Password))
}

// ValidateRegistration runs email, registration password, confirmation and name, in that order.
func (v *AuthValidators) ValidateRegistration(d models.RegistrationData) error {
	if err := check(FieldEmail, v.Email.Validate(d.Email)); err != nil {
		return err
	}
	if err := check(FieldPassword, v.RegisterPassword.Validate(d.Password)); err != nil {
		return err
	}
	pair := models.PasswordPair{Password: d.Password, Confirmation: d.Confirmation()}
	if err := check(FieldConfirmPassword, v.PasswordMatch.Validate(pair)); err != nil {
		return err
	}
	return check(FieldName, v.Name.Validate(d.Name))
}

func (v *AuthValidators) ValidateEmail(email string) error {
	return check(FieldEmail, v.Email.Validate(email))
}

func (v *AuthValidators) ValidateResetCode(email, code string) error {
	if err := v.ValidateEmail(email); err != nil {
		return err
	}
	return check(FieldCode, v.ResetCode.Validate(code))
}

// ValidatePasswordReset checks a reset submission: email, code, new password, confirmation.
// Unlike registration, an empty confirmation is a mismatch.
func (v *AuthValidators) ValidatePasswordReset(email, code, password, confirmation string) error {
	if err := v.ValidateResetCode(email, code); err != nil {
		return err
	}
	if err := check(FieldPassword, v.RegisterPassword.Validate(password)); err != nil {
		return err
	}
	pair := models.PasswordPair{Password: password, Confirmation: confirmation}
	return check(FieldConfirmPassword, v.PasswordMatch.Validate(pair))
}

func check(field string, result Result) error {
	if result.IsValid {
		return nil
	}
	return errors.NewValidationError(field, result.Code, result.Error)
}
