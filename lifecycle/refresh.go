package lifecycle

import (
	"context"

	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/record"
	"github.com/crmarques/apirecord/resource"
)

// Refresh re-reads the record from the remote API and replaces its
// in-memory state with the returned payload, resetting the dirty baseline.
// It requires an identity: refreshing a never-persisted record is a
// missing-identity failure.
func (e *Engine) Refresh(ctx context.Context, rec *record.Record) error {
	if err := e.checkReady(rec); err != nil {
		return err
	}

	meta := rec.Metadata()
	path, err := metadata.ResolveResourceEndpoint(rec.TypeName(), meta, metadata.ActionGet, rec.Key())
	if err != nil {
		return err
	}

	response, err := e.transport.Invoke(ctx, metadata.ActionGet, path, nil)
	if err != nil {
		return err
	}

	e.logger.DebugContext(ctx, "record refreshed",
		"type", rec.TypeName(), "key", rec.Key(), "path", path)

	return e.reconcile(ctx, rec, response)
}

// HasAPIError reports whether a returned payload carries a recognized
// error marker: a non-empty top-level "error" or "errors" field.
func (e *Engine) HasAPIError(value resource.Value) bool {
	object, ok := resource.AsObject(value)
	if !ok {
		return false
	}

	for _, field := range []string{"error", "errors"} {
		marker, found := object[field]
		if !found || marker == nil {
			continue
		}
		switch typed := marker.(type) {
		case []any:
			if len(typed) > 0 {
				return true
			}
		case map[string]any:
			if len(typed) > 0 {
				return true
			}
		case string:
			if typed != "" {
				return true
			}
		default:
			return true
		}
	}
	return false
}
