package record

// Key returns the record's primary-key attribute value, or nil when the
// record has no identity yet.
func (r *Record) Key() any {
	value, ok := r.attributes[r.typ.Metadata.PrimaryKey]
	if !ok {
		return nil
	}
	return value
}

// Exists reports whether the record has been persisted remotely. Existence
// is derived from the primary-key attribute being non-nil, never stored
// separately, so it cannot desync from the key value.
func (r *Record) Exists() bool {
	return r.Key() != nil
}

// ClearKey removes the record's identity, after which Exists reports false.
func (r *Record) ClearKey() {
	delete(r.attributes, r.typ.Metadata.PrimaryKey)
}

// Is reports whether the other record refers to the same remote resource:
// same type, same non-nil key.
func (r *Record) Is(other *Record) bool {
	if other == nil {
		return false
	}
	if r.typ.Name != other.typ.Name {
		return false
	}
	key := r.Key()
	return key != nil && key == other.Key()
}
