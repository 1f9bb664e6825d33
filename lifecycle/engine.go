package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/record"
	"github.com/crmarques/apirecord/transport"
	"github.com/crmarques/apirecord/validate"
)

// Engine orchestrates the persistence lifecycle of records against the
// transport collaborator. It is synchronous and request-scoped: every call
// blocks until the transport answers, and a single record instance must not
// be driven from two goroutines at once.
type Engine struct {
	transport transport.Transport
	logger    *slog.Logger

	gatesMu    sync.Mutex
	gates      map[string]validate.Validator
	overridden map[string]validate.Validator
}

type Option func(*Engine)

// WithLogger attaches a structured logger for debug-level lifecycle
// transitions. Logging is never required for correctness.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if e == nil || logger == nil {
			return
		}
		e.logger = logger
	}
}

// WithValidator injects a validation gate for one record type, replacing
// any gate declared in the type's metadata.
func WithValidator(typeName string, validator validate.Validator) Option {
	return func(e *Engine) {
		if e == nil || typeName == "" {
			return
		}
		e.overridden[typeName] = validator
	}
}

func New(t transport.Transport, opts ...Option) *Engine {
	engine := &Engine{
		transport:  t,
		logger:     slog.New(slog.DiscardHandler),
		gates:      map[string]validate.Validator{},
		overridden: map[string]validate.Validator{},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(engine)
	}
	return engine
}

// gateFor resolves the validation gate for a record's type: an injected
// validator wins, otherwise the gate is built once from the metadata
// declaration and cached.
func (e *Engine) gateFor(rec *record.Record) (validate.Validator, error) {
	typeName := rec.TypeName()
	if validator, ok := e.overridden[typeName]; ok {
		return validator, nil
	}

	e.gatesMu.Lock()
	defer e.gatesMu.Unlock()

	if validator, ok := e.gates[typeName]; ok {
		return validator, nil
	}
	validator, err := validate.FromSpec(rec.Metadata().Validate)
	if err != nil {
		return nil, err
	}
	e.gates[typeName] = validator
	return validator, nil
}

func (e *Engine) checkReady(rec *record.Record) error {
	if e == nil || e.transport == nil {
		return faults.NewTypedError(faults.ConfigError, "lifecycle engine has no transport", nil)
	}
	if rec == nil {
		return faults.NewTypedError(faults.ConfigError, "record must not be nil", nil)
	}
	return nil
}

func runHook(ctx context.Context, hook record.Hook, rec *record.Record) error {
	if hook == nil {
		return nil
	}
	return hook(ctx, rec)
}
