package domain

// rule pairs a violation predicate with the reason reported when it holds.
type rule struct {
	violated func() bool
	reason   func() string
}

// firstViolation evaluates rules in order and returns the reason of the first
// one that is violated. The remaining rules are not evaluated.
func firstViolation(rules []rule) (string, bool) {
	for _, r := range rules {
		if r.violated() {
			return r.reason(), true
		}
	}
	return "", false
}

// fixed adapts a constant reason to a rule.
func fixed(reason string) func() string {
	return func() string { return reason }
}
