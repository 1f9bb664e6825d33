package metadata

import "net/http"

// Action is a remote action a record type may be permitted to perform.
type Action string

const (
	ActionGet    Action = "get"
	ActionPost   Action = "post"
	ActionPatch  Action = "patch"
	ActionPut    Action = "put"
	ActionDelete Action = "delete"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionGet, ActionPost, ActionPatch, ActionPut, ActionDelete:
		return true
	default:
		return false
	}
}

// HTTPMethod maps the action onto its HTTP method.
func (a Action) HTTPMethod() string {
	switch a {
	case ActionGet:
		return http.MethodGet
	case ActionPost:
		return http.MethodPost
	case ActionPatch:
		return http.MethodPatch
	case ActionPut:
		return http.MethodPut
	case ActionDelete:
		return http.MethodDelete
	default:
		return ""
	}
}

// RecordMetadata is the static per-record-type declaration: where the
// collection lives remotely, which actions are permitted, how responses are
// unwrapped, and what the outgoing payload must satisfy.
type RecordMetadata struct {
	PrimaryKey     string          `json:"primaryKey,omitempty" yaml:"primary-key,omitempty"`
	CollectionPath string          `json:"collectionPath,omitempty" yaml:"collection-path,omitempty"`
	EnvelopeField  string          `json:"envelopeField,omitempty" yaml:"envelope-field,omitempty"`
	EnvelopeJQ     string          `json:"envelopeJQ,omitempty" yaml:"envelope-jq,omitempty"`
	Actions        []Action        `json:"actions,omitempty" yaml:"actions,omitempty"`
	Create         Action          `json:"create,omitempty" yaml:"create,omitempty"`
	Update         Action          `json:"update,omitempty" yaml:"update,omitempty"`
	Validate       *ValidationSpec `json:"validate,omitempty" yaml:"validate,omitempty"`
}

// ValidationSpec declares the outgoing-payload rules consumed by the
// validation gate.
type ValidationSpec struct {
	RequiredAttributes []string              `json:"requiredAttributes,omitempty" yaml:"required-attributes,omitempty"`
	Assertions         []ValidationAssertion `json:"assertions,omitempty" yaml:"assertions,omitempty"`
	Rules              map[string]string     `json:"rules,omitempty" yaml:"rules,omitempty"`
}

type ValidationAssertion struct {
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	JQ      string `json:"jq,omitempty" yaml:"jq,omitempty"`
}
