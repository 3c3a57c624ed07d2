package models

// Credentials are the login form input. Never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationData is the sign-up form input. An empty ConfirmPassword is
// treated as equal to Password.
type RegistrationData struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	Name            string `json:"name"`
	Role            *Role  `json:"role,omitempty"`
}

func (r RegistrationData) Confirmation() string {
	if r.ConfirmPassword == "" {
		return r.Password
	}
	return r.ConfirmPassword
}

func (r RegistrationData) Credentials() Credentials {
	return Credentials{Email: r.Email, Password: r.Password}
}

// PasswordPair is the input of the password-confirmation rule.
type PasswordPair struct {
	Password     string
	Confirmation string
}
