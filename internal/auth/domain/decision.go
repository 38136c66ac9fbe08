// Package domain defines the core domain models for request authorization.
// An inbound request carries a bearer credential; verification collapses into
// an allow/deny decision shaped as the policy the API gateway enforces.
package domain

// Effect is the outcome of an authorization decision.
type Effect string

const (
	// EffectAllow permits the request to reach the protected resource.
	EffectAllow Effect = "Allow"
	// EffectDeny rejects the request.
	EffectDeny Effect = "Deny"
)

// PolicyVersion is the fixed version string of gateway policy documents.
const PolicyVersion = "2012-10-17"

// InvokeAction is the gateway action a decision grants or denies.
const InvokeAction = "execute-api:Invoke"

// PolicyStatement grants or denies a single action on a resource.
type PolicyStatement struct {
	Action   string `json:"Action"`
	Effect   Effect `json:"Effect"`
	Resource string `json:"Resource"`
}

// PolicyDocument is the gateway-enforceable policy carried by a decision.
type PolicyDocument struct {
	Version   string            `json:"Version"`
	Statement []PolicyStatement `json:"Statement"`
}

// AuthorizationDecision is produced fresh per request and never persisted.
// The policy document is present whenever both effect and resource are known.
type AuthorizationDecision struct {
	PrincipalID    string          `json:"principalId"`
	PolicyDocument *PolicyDocument `json:"policyDocument,omitempty"`
	Context        map[string]any  `json:"context"`
}

// NewDecision builds a decision for the given principal, effect and resource.
// When effect and resource are both non-empty the decision carries a policy
// document with a single invoke statement.
func NewDecision(principalID string, effect Effect, resource string) *AuthorizationDecision {
	decision := &AuthorizationDecision{
		PrincipalID: principalID,
		Context: map[string]any{
			"stringKey":  "stringval",
			"numberKey":  123,
			"booleanKey": true,
		},
	}

	if effect != "" && resource != "" {
		decision.PolicyDocument = &PolicyDocument{
			Version: PolicyVersion,
			Statement: []PolicyStatement{
				{
					Action:   InvokeAction,
					Effect:   effect,
					Resource: resource,
				},
			},
		}
	}

	return decision
}

// Allowed reports whether the decision permits the request.
func (d *AuthorizationDecision) Allowed() bool {
	if d == nil || d.PolicyDocument == nil {
		return false
	}
	for _, stmt := range d.PolicyDocument.Statement {
		if stmt.Effect != EffectAllow {
			return false
		}
	}
	return len(d.PolicyDocument.Statement) > 0
}
