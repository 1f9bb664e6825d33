package validate

import "context"

// Validator is the gate every outgoing create/update payload passes through
// immediately before the network call. A nil return means the payload may
// be transmitted; a failure carries structured per-field errors and stops
// the lifecycle operation before any transport call.
type Validator interface {
	Validate(ctx context.Context, payload map[string]any) error
}

// Func adapts a plain function to the Validator interface.
type Func func(ctx context.Context, payload map[string]any) error

func (f Func) Validate(ctx context.Context, payload map[string]any) error {
	return f(ctx, payload)
}
