package lifecycle

import (
	"context"
	"strings"

	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/record"
)

// Delete removes the record remotely. Deleting a record that was never
// persisted is a harmless no-op (false, nil). After a successful delete the
// identity attribute is cleared, so Exists reports false.
func (e *Engine) Delete(ctx context.Context, rec *record.Record) (bool, error) {
	if err := e.checkReady(rec); err != nil {
		return false, err
	}

	meta := rec.Metadata()
	if strings.TrimSpace(meta.PrimaryKey) == "" {
		return false, faults.NewTypedError(
			faults.ConfigError,
			"record type declares no primary key, delete is not possible",
			nil,
		)
	}

	if !rec.Exists() {
		return false, nil
	}

	if err := runHook(ctx, rec.Type().BeforeDelete, rec); err != nil {
		return false, err
	}

	path, err := metadata.ResolveEndpoint(rec.TypeName(), meta, metadata.ActionDelete, rec.Key())
	if err != nil {
		return false, err
	}

	key := rec.Key()
	if _, err := e.transport.Invoke(ctx, metadata.ActionDelete, path, nil); err != nil {
		return false, err
	}

	rec.ClearKey()
	rec.SyncOriginal()

	e.logger.DebugContext(ctx, "record deleted",
		"type", rec.TypeName(), "key", key, "path", path)

	if err := runHook(ctx, rec.Type().AfterDelete, rec); err != nil {
		return false, err
	}
	return true, nil
}
