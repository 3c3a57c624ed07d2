package validation

import "fmt"

const (
	MsgEmailRequired   = "Email is required"
	MsgEmailDomain     = "Email domain is not allowed"
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgPasswordMissing = "Password is required"
	MsgPasswordUpper   = "Password must contain at least one uppercase letter"
	MsgPasswordLower   = "Password must contain at least one lowercase letter"
	MsgPasswordDigit   = "Password must contain at least one number"
	MsgPasswordSpecial = "Password must contain at least one special character"
	MsgPasswordMatch   = "Passwords do not match"
	MsgNameRequired    = "Name is required"
	MsgNameInvalid     = "Name may only contain letters and spaces"
	MsgCodeRequired    = "Verification code is required"
	MsgCodeInvalid     = "Verification code must be 6 digits"
)

func msgEmailTooLong(n int) string {
	return fmt.Sprintf("Email must be at most %d characters", n)
}

func msgPasswordTooShort(n int) string {
	return fmt.Sprintf("Password must be at least %d characters", n)
}

func msgPasswordTooLong(n int) string {
	return fmt.Sprintf("Password must be at most %d characters", n)
}

func msgNameTooShort(n int) string {
	return fmt.Sprintf("Name must be at least %d characters", n)
}

func msgNameTooLong(n int) string {
	return fmt.Sprintf("Name must be at most %d characters", n)
}
