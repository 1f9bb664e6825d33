package resource

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/itchyny/gojq"

	"github.com/crmarques/apirecord/faults"
)

// DefaultEnvelopeField is the top-level key most remote APIs nest a single
// resource payload under.
const DefaultEnvelopeField = "data"

var envelopeJQCodeCache sync.Map

// UnwrapEnvelope extracts the relevant resource payload out of a raw
// response body. A jq expression takes precedence over the envelope field
// name; when the named field is absent the body is returned as-is, since
// some APIs answer with the bare resource.
func UnwrapEnvelope(ctx context.Context, body Value, envelopeField string, jqExpression string) (Value, error) {
	if expression := strings.TrimSpace(jqExpression); expression != "" {
		return applyEnvelopeJQ(ctx, body, expression)
	}

	field := strings.TrimSpace(envelopeField)
	if field == "" {
		field = DefaultEnvelopeField
	}

	object, ok := body.(map[string]any)
	if !ok {
		return body, nil
	}
	nested, found := object[field]
	if !found {
		return body, nil
	}
	return nested, nil
}

func applyEnvelopeJQ(ctx context.Context, body Value, expression string) (Value, error) {
	code, err := cachedEnvelopeJQCode(expression)
	if err != nil {
		return nil, faults.NewTypedError(faults.ConfigError, "invalid envelope jq expression", err)
	}

	runCtx := ctx
	if runCtx == nil {
		runCtx = context.Background()
	}
	iterator := code.RunWithContext(runCtx, body)
	results := make([]any, 0, 1)
	for {
		value, ok := iterator.Next()
		if !ok {
			break
		}
		if valueErr, isErr := value.(error); isErr {
			return nil, faults.NewTypedError(faults.ValidationError, "failed to evaluate envelope jq expression", valueErr)
		}
		results = append(results, value)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return nil, faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("envelope jq expression produced %d values, expected one", len(results)),
			nil,
		)
	}
}

func cachedEnvelopeJQCode(expression string) (*gojq.Code, error) {
	if cached, ok := envelopeJQCodeCache.Load(expression); ok {
		if typed, ok := cached.(*gojq.Code); ok && typed != nil {
			return typed, nil
		}
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, err
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, err
	}

	actual, _ := envelopeJQCodeCache.LoadOrStore(expression, code)
	typed, _ := actual.(*gojq.Code)
	return typed, nil
}
