package validate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/metadata"
)

// Rules validates payloads against a declarative spec: required attributes
// plus jq assertions evaluated over the payload.
type Rules struct {
	required   []string
	assertions []compiledAssertion
}

type compiledAssertion struct {
	message string
	code    *gojq.Code
}

var _ Validator = (*Rules)(nil)

// NewRules compiles the declared assertions up front so a malformed
// declaration fails at construction, not mid-save.
func NewRules(spec metadata.ValidationSpec) (*Rules, error) {
	rules := &Rules{}

	for _, name := range spec.RequiredAttributes {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		rules.required = append(rules.required, trimmed)
	}

	for idx, assertion := range spec.Assertions {
		expression := strings.TrimSpace(assertion.JQ)
		if expression == "" {
			continue
		}
		query, err := gojq.Parse(expression)
		if err != nil {
			return nil, faults.NewTypedError(
				faults.ConfigError,
				fmt.Sprintf("invalid validation assertion[%d] jq expression", idx),
				err,
			)
		}
		code, err := gojq.Compile(query)
		if err != nil {
			return nil, faults.NewTypedError(
				faults.ConfigError,
				fmt.Sprintf("invalid validation assertion[%d] jq expression", idx),
				err,
			)
		}
		message := strings.TrimSpace(assertion.Message)
		if message == "" {
			message = fmt.Sprintf("payload assertion[%d] failed", idx)
		}
		rules.assertions = append(rules.assertions, compiledAssertion{message: message, code: code})
	}

	return rules, nil
}

func (r *Rules) Validate(ctx context.Context, payload map[string]any) error {
	var fields []faults.FieldError

	missing := make([]string, 0)
	for _, name := range r.required {
		value, exists := payload[name]
		if !exists || value == nil {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		fields = append(fields, faults.FieldError{Field: name, Message: "is required"})
	}

	for _, assertion := range r.assertions {
		satisfied, err := evaluateAssertion(ctx, assertion.code, payload)
		if err != nil {
			return faults.NewTypedError(faults.ValidationError, "failed to evaluate payload assertion", err)
		}
		if !satisfied {
			fields = append(fields, faults.FieldError{Field: "$", Message: assertion.message})
		}
	}

	if len(fields) > 0 {
		return faults.NewValidationError("payload validation failed", fields)
	}
	return nil
}

func evaluateAssertion(ctx context.Context, code *gojq.Code, payload map[string]any) (bool, error) {
	runCtx := ctx
	if runCtx == nil {
		runCtx = context.Background()
	}

	iterator := code.RunWithContext(runCtx, map[string]any(payload))
	hasResult := false
	satisfied := false
	for {
		value, ok := iterator.Next()
		if !ok {
			break
		}
		if valueErr, isErr := value.(error); isErr {
			return false, valueErr
		}
		hasResult = true
		if assertionValueTruthy(value) {
			satisfied = true
		}
	}

	if !hasResult {
		return false, nil
	}
	return satisfied, nil
}

func assertionValueTruthy(value any) bool {
	if value == nil {
		return false
	}
	if typed, ok := value.(bool); ok {
		return typed
	}
	return true
}
