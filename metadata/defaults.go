package metadata

import "strings"

const (
	// DefaultPrimaryKey is the attribute most remote APIs key resources by.
	DefaultPrimaryKey = "id"
	// DefaultEnvelopeField is the top-level response key payloads nest under.
	DefaultEnvelopeField = "data"
)

// WithDefaults returns a copy of the metadata with the canonical primary
// key, envelope field, and update action filled in where the declaration
// left them empty. Absent actions are left absent: an empty permitted list
// is a valid always-deny declaration.
func WithDefaults(meta RecordMetadata) RecordMetadata {
	resolved := meta

	if strings.TrimSpace(resolved.PrimaryKey) == "" {
		resolved.PrimaryKey = DefaultPrimaryKey
	}
	if strings.TrimSpace(resolved.EnvelopeField) == "" {
		resolved.EnvelopeField = DefaultEnvelopeField
	}
	if resolved.Create == "" {
		resolved.Create = ActionPost
	}
	if resolved.Update == "" {
		resolved.Update = ActionPatch
	}

	return resolved
}
