package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	emailFormatRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	personNameRegex  = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]+$`)
	resetCodeRegex   = regexp.MustCompile(`^\d{6}$`)
)

// Validator wraps the go-playground validator with the session's custom tags
type Validator struct {
	validate *validator.Validate
}

var (
	instance     *Validator
	instanceOnce sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	instanceOnce.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a validator with the custom tags registered
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("email_format", validateEmailFormat)
	_ = v.RegisterValidation("person_name", validatePersonName)
	_ = v.RegisterValidation("reset_code", validateResetCode)
	_ = v.RegisterValidation("has_upper", hasRune(unicode.IsUpper))
	_ = v.RegisterValidation("has_lower", hasRune(unicode.IsLower))
	_ = v.RegisterValidation("has_digit", hasRune(unicode.IsDigit))
	_ = v.RegisterValidation("has_special", hasRune(isSpecial))

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// Var reports whether value satisfies tag.
func (v *Validator) Var(value any, tag string) bool {
	return v.validate.Var(value, tag) == nil
}

// VarWithValue reports whether value satisfies a cross-field tag against other.
func (v *Validator) VarWithValue(value, other any, tag string) bool {
	return v.validate.VarWithValue(value, other, tag) == nil
}

// Struct validates a tagged struct, as used by the bridge request binding
func (v *Validator) Struct(i any) error {
	return v.validate.Struct(i)
}

// FieldErrors flattens a validator error into "field: tag" detail strings.
func FieldErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		details = append(details, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
	}
	return details
}

func validateEmailFormat(fl validator.FieldLevel) bool {
	return emailFormatRegex.MatchString(fl.Field().String())
}

// validatePersonName accepts letters (including Spanish accented letters) and spaces
func validatePersonName(fl validator.FieldLevel) bool {
	return personNameRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateResetCode(fl validator.FieldLevel) bool {
	return resetCodeRegex.MatchString(fl.Field().String())
}

func hasRune(match func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), match) >= 0
	}
}

func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}
