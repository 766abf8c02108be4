package auth

import (
	"net/http"
	"strings"
)

// Decision is the outcome of evaluating a request against the AccessPolicy.
type Decision int

const (
	// DecisionPublic lets the request through without an identity.
	DecisionPublic Decision = iota
	// DecisionPermitPreflight lets a cross-origin OPTIONS probe through.
	DecisionPermitPreflight
	// DecisionRequireIdentity demands a non-empty identity in context.
	DecisionRequireIdentity
)

// AccessPolicy is the static table mapping request path/method to whether an
// authenticated identity is required. Evaluation order: public set first,
// CORS preflight second, default-deny otherwise.
type AccessPolicy struct {
	exact    map[string]struct{}
	prefixes []string
}

// NewAccessPolicy builds a policy from public path patterns. A pattern
// ending in "/*" matches the prefix before the wildcard; anything else
// must match exactly.
func NewAccessPolicy(public ...string) *AccessPolicy {
	p := &AccessPolicy{
		exact: make(map[string]struct{}, len(public)),
	}

	for _, pattern := range public {
		if pattern == "" {
			continue
		}
		if strings.HasSuffix(pattern, "/*") {
			p.prefixes = append(p.prefixes, strings.TrimSuffix(pattern, "*"))
			continue
		}
		p.exact[pattern] = struct{}{}
	}

	return p
}

// Decide evaluates method and path against the table.
func (p *AccessPolicy) Decide(method, path string) Decision {
	if p.IsPublic(path) {
		return DecisionPublic
	}

	if strings.EqualFold(method, http.MethodOptions) {
		return DecisionPermitPreflight
	}

	return DecisionRequireIdentity
}

// IsPublic reports whether path is in the enumerated public set.
func (p *AccessPolicy) IsPublic(path string) bool {
	if _, ok := p.exact[path]; ok {
		return true
	}

	for _, prefix := range p.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}
