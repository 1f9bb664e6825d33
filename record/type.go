package record

import (
	"context"

	"github.com/crmarques/apirecord/metadata"
)

// Hook is a no-op extension point invoked around lifecycle operations.
// Hooks are never required for correctness; a nil hook is skipped.
type Hook func(ctx context.Context, rec *Record) error

// Type is the static per-record-type declaration resolved at construction
// time: metadata plus optional lifecycle hooks.
type Type struct {
	Name     string
	Metadata metadata.RecordMetadata

	BeforeSave   Hook
	AfterSave    Hook
	BeforeDelete Hook
	AfterDelete  Hook
}
