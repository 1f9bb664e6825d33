package record

import (
	"fmt"

	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/resource"
)

// Record is the in-memory representation of one remote resource instance.
// It owns its attribute map and baseline snapshot exclusively; collaborators
// operate on copies.
type Record struct {
	typ             Type
	attributes      map[string]any
	original        map[string]any
	recentlyCreated bool
	relations       []Relation
}

// New returns an empty, not-yet-persisted record of the given type. The
// type's metadata defaults (primary key, envelope field, update action) are
// resolved here, once.
func New(typ Type) *Record {
	typ.Metadata = metadata.WithDefaults(typ.Metadata)
	return &Record{
		typ:        typ,
		attributes: map[string]any{},
		original:   map[string]any{},
	}
}

// NewFromRemote builds a record from attributes already persisted remotely.
// The baseline is the given attribute set, so the record starts clean.
func NewFromRemote(typ Type, attrs map[string]any) (*Record, error) {
	rec := New(typ)
	if err := rec.Fill(attrs); err != nil {
		return nil, err
	}
	rec.SyncOriginal()
	return rec, nil
}

func (r *Record) Type() Type {
	return r.typ
}

func (r *Record) TypeName() string {
	return r.typ.Name
}

func (r *Record) Metadata() metadata.RecordMetadata {
	return r.typ.Metadata
}

// Set assigns one attribute, normalizing the value so dirty comparison and
// wire encoding agree on its shape.
func (r *Record) Set(name string, value any) error {
	normalized, err := resource.Normalize(value)
	if err != nil {
		return fmt.Errorf("setting attribute %q: %w", name, err)
	}
	r.attributes[name] = normalized
	return nil
}

// Fill merges the given attributes into the record.
func (r *Record) Fill(attrs map[string]any) error {
	for name, value := range attrs {
		if err := r.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Record) Get(name string) (any, bool) {
	value, ok := r.attributes[name]
	return value, ok
}

// Attributes returns a copy of the current attribute set.
func (r *Record) Attributes() map[string]any {
	return resource.CloneMapStringAny(r.attributes)
}

// ToMap serializes the record to a plain mapping form.
func (r *Record) ToMap() map[string]any {
	return r.Attributes()
}

// Unset removes an attribute; the removal surfaces in the dirty set as an
// explicit null.
func (r *Record) Unset(name string) {
	delete(r.attributes, name)
}

// ApplyRemote reconciles a transport response payload into the record and
// commits the result as the new baseline. A nil payload (for example a
// 204 response) commits the attributes that were sent.
func (r *Record) ApplyRemote(payload resource.Value) error {
	if payload != nil {
		object, ok := resource.AsObject(payload)
		if !ok {
			return faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("remote payload for record type %q is not an object", r.typ.Name),
				nil,
			)
		}
		if err := r.Fill(object); err != nil {
			return err
		}
	}
	r.SyncOriginal()
	return nil
}

func (r *Record) WasRecentlyCreated() bool {
	return r.recentlyCreated
}

// MarkRecentlyCreated flags the record as the product of a successful
// insert. Called by the lifecycle engine only.
func (r *Record) MarkRecentlyCreated() {
	r.recentlyCreated = true
}
