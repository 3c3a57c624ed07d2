package validation

// Chain is an ordered, immutable list of rules evaluated fail-fast.
type Chain[T any] struct {
	rules []Rule[T]
}

// Validate returns the first failing rule's result, or a valid result when all pass.
func (c *Chain[T]) Validate(value T) Result {
	for _, rule := range c.rules {
		if result := rule.Validate(value); !result.IsValid {
			return result
		}
	}
	return Valid()
}

func (c *Chain[T]) Len() int {
	return len(c.rules)
}

// Builder assembles a Chain. It is not used after Build.
type Builder[T any] struct {
	rules []Rule[T]
}

func NewBuilder[T any]() *Builder[T] {
	return &Builder[T]{}
}

func (b *Builder[T]) AddRule(rule Rule[T]) *Builder[T] {
	b.rules = append(b.rules, rule)
	return b
}

// Build returns a chain holding its own copy of the rules.
func (b *Builder[T]) Build() *Chain[T] {
	rules := make([]Rule[T], len(b.rules))
	copy(rules, b.rules)
	return &Chain[T]{rules: rules}
}
