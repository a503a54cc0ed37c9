// Package validation evaluates declarative rule sets over the boundary view
// models. Each entity has an ordered list of (predicate, message) rules; every
// rule is evaluated independently and all violations are collected, never
// short-circuited. Services run validation before any persistence mutation.
package validation

// Rule is a single labeled validation rule. Check returns true when the
// submitted value satisfies the rule.
type Rule[T any] struct {
	Check   func(T) bool
	Message string
}

// Evaluate runs every rule against v and returns the messages of the rules
// that failed, in rule order. An empty slice means v is valid.
func Evaluate[T any](v T, rules []Rule[T]) []string {
	var violations []string
	for _, rule := range rules {
		if !rule.Check(v) {
			violations = append(violations, rule.Message)
		}
	}
	return violations
}
