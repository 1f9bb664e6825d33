package record

import (
	"github.com/r3labs/diff/v3"

	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/resource"
)

// Dirty computes the attributes changed since the last successful sync,
// keyed by top-level field name. Fields removed since the baseline surface
// as explicit nulls so the update payload clears them remotely.
func (r *Record) Dirty() (map[string]any, error) {
	changes, err := diff.Diff(r.original, r.attributes)
	if err != nil {
		return nil, faults.NewTypedError(faults.InternalError, "failed to diff record attributes", err)
	}
	if len(changes) == 0 {
		return map[string]any{}, nil
	}

	dirty := make(map[string]any, len(changes))
	for _, change := range changes {
		if len(change.Path) == 0 {
			continue
		}
		field := change.Path[0]
		if current, ok := r.attributes[field]; ok {
			dirty[field] = current
		} else {
			dirty[field] = nil
		}
	}
	return dirty, nil
}

// IsDirty reports whether any attribute changed since the last sync.
func (r *Record) IsDirty() (bool, error) {
	dirty, err := r.Dirty()
	if err != nil {
		return false, err
	}
	return len(dirty) > 0, nil
}

// SyncOriginal commits the current attribute set as the clean baseline.
// The snapshot is a deep copy so in-place mutation of nested values still
// shows up in the dirty set.
func (r *Record) SyncOriginal() {
	cloned, err := resource.Normalize(r.attributes)
	if err == nil {
		if object, ok := resource.AsObject(cloned); ok {
			r.original = object
			return
		}
	}
	r.original = resource.CloneMapStringAny(r.attributes)
}

// Original returns a copy of the baseline snapshot.
func (r *Record) Original() map[string]any {
	return resource.CloneMapStringAny(r.original)
}
