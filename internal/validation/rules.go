package validation

import (
	"strconv"
	"strings"

	"vss-session/internal/errors"
	"vss-session/internal/models"
)

// Result is the outcome of one rule or a whole chain.
type Result struct {
	IsValid bool
	Error   string
	Code    errors.ErrorCode
}

func Valid() Result {
	return Result{IsValid: true}
}

func Invalid(code errors.ErrorCode, message string) Result {
	return Result{IsValid: false, Error: message, Code: code}
}

// Rule checks one property of an input.
type Rule[T any] interface {
	Validate(value T) Result
}

// RuleFunc adapts a function to Rule.
type RuleFunc[T any] func(value T) Result

func (f RuleFunc[T]) Validate(value T) Result {
	return f(value)
}

// tagRule evaluates a validator tag against a string input.
type tagRule struct {
	tag     string
	code    errors.ErrorCode
	message string
	trim    bool
}

func (r tagRule) Validate(value string) Result {
	if r.trim {
		value = strings.TrimSpace(value)
	}
	if GetValidator().Var(value, r.tag) {
		return Valid()
	}
	return Invalid(r.code, r.message)
}

// Required fails on empty or whitespace-only input.
func Required(message string) Rule[string] {
	return tagRule{tag: "required", code: errors.ValidationRequiredField, message: message, trim: true}
}

// MinLength fails when the input has fewer than n characters.
func MinLength(n int, message string) Rule[string] {
	return tagRule{tag: "min=" + strconv.Itoa(n), code: errors.ValidationOutOfRange, message: message}
}

// MaxLength fails when the input has more than n characters.
func MaxLength(n int, message string) Rule[string] {
	return tagRule{tag: "max=" + strconv.Itoa(n), code: errors.ValidationOutOfRange, message: message}
}

// Format fails when the input does not satisfy a registered pattern tag
// such as email_format, person_name or reset_code.
func Format(tag string, code errors.ErrorCode, message string) Rule[string] {
	return tagRule{tag: tag, code: code, message: message}
}

type CharClass string

const (
	Uppercase CharClass = "has_upper"
	Lowercase CharClass = "has_lower"
	Digit     CharClass = "has_digit"
	Special   CharClass = "has_special"
)

// RequireCharClass fails when no character of the class is present.
func RequireCharClass(class CharClass, message string) Rule[string] {
	return tagRule{tag: string(class), code: errors.ValidationPasswordPolicy, message: message}
}

// Trimmed applies rule to the input with surrounding whitespace removed.
func Trimmed(rule Rule[string]) Rule[string] {
	return RuleFunc[string](func(value string) Result {
		return rule.Validate(strings.TrimSpace(value))
	})
}

// DomainAllowList fails when the email's domain is not listed. An empty list
// allows every domain, and input without "@" is left to the format rule.
func DomainAllowList(domains []string, message string) Rule[string] {
	if len(domains) == 0 {
		return RuleFunc[string](func(string) Result { return Valid() })
	}

	tag := "oneof=" + strings.Join(domains, " ")
	return RuleFunc[string](func(value string) Result {
		at := strings.LastIndex(value, "@")
		if at < 0 {
			return Valid()
		}
		domain := strings.ToLower(strings.TrimSpace(value[at+1:]))
		if GetValidator().Var(domain, tag) {
			return Valid()
		}
		return Invalid(errors.ValidationEmailDomain, message)
	})
}

// Match fails when the confirmation differs from the password.
func Match(message string) Rule[models.PasswordPair] {
	return RuleFunc[models.PasswordPair](func(pair models.PasswordPair) Result {
		if GetValidator().VarWithValue(pair.Confirmation, pair.Password, "eqfield") {
			return Valid()
		}
		return Invalid(errors.ValidationPasswordMismatch, message)
	})
}
