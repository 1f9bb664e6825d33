package lifecycle

import (
	"context"

	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/record"
	"github.com/crmarques/apirecord/resource"
)

// Save persists the record, choosing the insert, update, or skip path from
// its identity and dirty set. The record's attributes are only committed as
// the new baseline after a successful transport response; on any failure
// the in-memory state is left untouched.
func (e *Engine) Save(ctx context.Context, rec *record.Record) error {
	if err := e.checkReady(rec); err != nil {
		return err
	}

	if err := runHook(ctx, rec.Type().BeforeSave, rec); err != nil {
		return err
	}

	if rec.Exists() {
		dirty, err := rec.Dirty()
		if err != nil {
			return err
		}
		if len(dirty) == 0 {
			// Nothing to send: repeated saves of untouched records stay
			// off the network entirely.
			e.logger.DebugContext(ctx, "save skipped, record is clean",
				"type", rec.TypeName(), "key", rec.Key())
			return nil
		}
		return e.saveExisting(ctx, rec, dirty)
	}

	return e.saveNew(ctx, rec)
}

func (e *Engine) saveNew(ctx context.Context, rec *record.Record) error {
	meta := rec.Metadata()

	action, err := meta.CreateAction()
	if err != nil {
		return err
	}

	// Inserts carry the entire attribute package: there is no baseline yet
	// to diff against.
	payload := rec.Attributes()
	if err := e.runGate(ctx, rec, payload); err != nil {
		return err
	}

	path, err := metadata.ResolveEndpoint(rec.TypeName(), meta, action, nil)
	if err != nil {
		return err
	}

	response, err := e.transport.Invoke(ctx, action, path, payload)
	if err != nil {
		return err
	}

	if err := e.reconcile(ctx, rec, response); err != nil {
		return err
	}
	rec.MarkRecentlyCreated()

	e.logger.DebugContext(ctx, "record inserted",
		"type", rec.TypeName(), "key", rec.Key(), "path", path)

	return runHook(ctx, rec.Type().AfterSave, rec)
}

func (e *Engine) saveExisting(ctx context.Context, rec *record.Record, dirty map[string]any) error {
	meta := rec.Metadata()

	action, err := meta.UpdateAction()
	if err != nil {
		return err
	}

	if err := e.runGate(ctx, rec, dirty); err != nil {
		return err
	}

	path, err := metadata.ResolveEndpoint(rec.TypeName(), meta, action, rec.Key())
	if err != nil {
		return err
	}

	response, err := e.transport.Invoke(ctx, action, path, dirty)
	if err != nil {
		return err
	}

	if err := e.reconcile(ctx, rec, response); err != nil {
		return err
	}

	e.logger.DebugContext(ctx, "record updated",
		"type", rec.TypeName(), "key", rec.Key(), "path", path, "fields", len(dirty))

	return runHook(ctx, rec.Type().AfterSave, rec)
}

// Create merges the given attributes and saves, but only for records that
// have no identity yet. It reports false, with no transport call, when the
// record already exists.
func (e *Engine) Create(ctx context.Context, rec *record.Record, attrs map[string]any) (bool, error) {
	if err := e.checkReady(rec); err != nil {
		return false, err
	}
	if rec.Exists() {
		return false, nil
	}
	if err := rec.Fill(attrs); err != nil {
		return false, err
	}
	if err := e.Save(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

// Update merges the given attributes and saves, but only for records that
// already have an identity. It reports false, with no transport call, when
// the record does not exist.
func (e *Engine) Update(ctx context.Context, rec *record.Record, attrs map[string]any) (bool, error) {
	if err := e.checkReady(rec); err != nil {
		return false, err
	}
	if !rec.Exists() {
		return false, nil
	}
	if err := rec.Fill(attrs); err != nil {
		return false, err
	}
	if err := e.Save(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) runGate(ctx context.Context, rec *record.Record, payload map[string]any) error {
	gate, err := e.gateFor(rec)
	if err != nil {
		return err
	}
	if gate == nil {
		return nil
	}
	return gate.Validate(ctx, payload)
}

// reconcile folds a transport response into the record and commits the
// baseline.
func (e *Engine) reconcile(ctx context.Context, rec *record.Record, response resource.Value) error {
	meta := rec.Metadata()
	payload, err := resource.UnwrapEnvelope(ctx, response, meta.EnvelopeField, meta.EnvelopeJQ)
	if err != nil {
		return err
	}
	return rec.ApplyRemote(payload)
}
