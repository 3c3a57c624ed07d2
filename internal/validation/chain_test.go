package validation

import (
	"testing"

	"vss-session/internal/errors"

	"github.com/stretchr/testify/assert"
)

func countingRule(calls *int, result Result) Rule[string] {
	return RuleFunc[string](func(string) Result {
		*calls++
		return result
	})
}

func TestChain_StopsAtFirstFailure(t *testing.T) {
	var first, second, third int
	chain := NewBuilder[string]().
		AddRule(countingRule(&first, Valid())).
		AddRule(countingRule(&second, Invalid(errors.ValidationGeneral, "second"))).
		AddRule(countingRule(&third, Invalid(errors.ValidationGeneral, "third"))).
		Build()

	result := chain.Validate("input")

	assert.False(t, result.IsValid)
	assert.Equal(t, "second", result.Error)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Zero(t, third)
}

func TestChain_AllPass(t *testing.T) {
	chain := NewBuilder[string]().
		AddRule(Required("required")).
		AddRule(MinLength(2, "short")).
		Build()

	assert.Equal(t, Valid(), chain.Validate("ok"))
	assert.True(t, NewBuilder[int]().Build().Validate(0).IsValid)
}

func TestChain_ImmutableAfterBuild(t *testing.T) {
	builder := NewBuilder[string]().AddRule(Required("required"))
	chain := builder.Build()

	builder.AddRule(MinLength(10, "short"))

	assert.Equal(t, 1, chain.Len())
	assert.True(t, chain.Validate("abc").IsValid)
}

func TestMinLength_CountsCharacters(t *testing.T) {
	rule := MinLength(4, "short")

	assert.True(t, rule.Validate("ñáéí").IsValid)
	assert.False(t, rule.Validate("ñáé").IsValid)
}

func TestDomainAllowList_EmptyListAllowsAll(t *testing.T) {
	rule := DomainAllowList(nil, "blocked")

	assert.True(t, rule.Validate("x@anything.org").IsValid)
}

func TestFieldErrors(t *testing.T) {
	type request struct {
		Email string `json:"email" validate:"required,email_format"`
		Code  string `json:"code" validate:"reset_code"`
	}

	err := GetValidator().Struct(request{Email: "", Code: "12"})

	details := FieldErrors(err)
	assert.Contains(t, details, "email: failed required")
	assert.Contains(t, details, "code: failed reset_code")
}
