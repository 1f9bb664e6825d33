package transport

import (
	"context"

	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/resource"
)

// Transport is the collaborator that issues one remote operation and
// returns the structured response body. Retry, caching, and authentication
// policy live behind this interface, never in the lifecycle engine; the
// engine treats any returned error as an immediate, non-retried failure.
type Transport interface {
	Invoke(ctx context.Context, action metadata.Action, path string, payload resource.Value) (resource.Value, error)
}
