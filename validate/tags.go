package validate

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/crmarques/apirecord/faults"
)

// Tags validates payloads with go-playground/validator tag rules declared
// per field, e.g. {"email": "required,email", "age": "gte=0"}.
type Tags struct {
	engine *validator.Validate
	rules  map[string]any
}

var _ Validator = (*Tags)(nil)

func NewTags(rules map[string]string) *Tags {
	mapped := make(map[string]any, len(rules))
	for field, rule := range rules {
		mapped[field] = rule
	}
	return &Tags{
		engine: validator.New(validator.WithRequiredStructEnabled()),
		rules:  mapped,
	}
}

func (t *Tags) Validate(ctx context.Context, payload map[string]any) error {
	if len(t.rules) == 0 {
		return nil
	}

	results := t.engine.ValidateMapCtx(ctx, payload, t.rules)
	if len(results) == 0 {
		return nil
	}

	fieldNames := make([]string, 0, len(results))
	for field := range results {
		fieldNames = append(fieldNames, field)
	}
	sort.Strings(fieldNames)

	fields := make([]faults.FieldError, 0, len(results))
	for _, field := range fieldNames {
		message := "is invalid"
		if validationErrors, ok := results[field].(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			message = "failed rule " + validationErrors[0].Tag()
		}
		fields = append(fields, faults.FieldError{Field: field, Message: message})
	}

	return faults.NewValidationError("payload validation failed", fields)
}
