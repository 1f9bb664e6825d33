package lifecycle

import (
	"context"
	"testing"

	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/record"
)

func TestDeleteNonPersistedRecordIsNoOp(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{}
	engine := New(fake)

	rec := record.New(userType())
	deleted, err := engine.Delete(context.Background(), rec)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted {
		t.Fatalf("deleting a non-persisted record must report false")
	}
	if len(fake.calls) != 0 {
		t.Fatalf("no-op delete must issue zero transport calls, got %d", len(fake.calls))
	}
}

func TestDeleteExistingRecord(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{}
	engine := New(fake)
	rec := existingUser(t, map[string]any{"id": 7, "name": "A"})

	deleted, err := engine.Delete(context.Background(), rec)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Fatalf("expected delete to report true")
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected exactly one transport call, got %d", len(fake.calls))
	}
	call := fake.calls[0]
	if call.action != metadata.ActionDelete || call.path != "/users/7" || call.payload != nil {
		t.Fatalf("expected bare delete to /users/7, got %+v", call)
	}

	// Identity is cleared after a successful delete, so existence flips.
	if rec.Exists() {
		t.Fatalf("record must not exist after a successful delete")
	}
}

func TestDeleteNotPermitted(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{}
	engine := New(fake)

	typ := userType()
	typ.Metadata.Actions = []metadata.Action{metadata.ActionGet, metadata.ActionPost, metadata.ActionPatch}
	rec, err := record.NewFromRemote(typ, map[string]any{"id": 7})
	if err != nil {
		t.Fatalf("NewFromRemote returned error: %v", err)
	}

	_, err = engine.Delete(context.Background(), rec)
	if !faults.IsCategory(err, faults.ActionNotPermittedError) {
		t.Fatalf("expected action-not-permitted, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("disallowed delete must issue zero transport calls, got %d", len(fake.calls))
	}
}

func TestDeleteWithoutPrimaryKeyConfiguration(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{}
	engine := New(fake)

	// A zero-value record never went through type construction and has no
	// primary-key declaration.
	_, err := engine.Delete(context.Background(), &record.Record{})
	if !faults.IsCategory(err, faults.ConfigError) {
		t.Fatalf("expected config error, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("configuration failure must issue zero transport calls, got %d", len(fake.calls))
	}
}

func TestDeleteHooks(t *testing.T) {
	t.Parallel()

	var events []string
	typ := userType()
	typ.BeforeDelete = func(_ context.Context, _ *record.Record) error {
		events = append(events, "before")
		return nil
	}
	typ.AfterDelete = func(_ context.Context, _ *record.Record) error {
		events = append(events, "after")
		return nil
	}

	fake := &fakeTransport{}
	engine := New(fake)
	rec, err := record.NewFromRemote(typ, map[string]any{"id": 7})
	if err != nil {
		t.Fatalf("NewFromRemote returned error: %v", err)
	}

	if _, err := engine.Delete(context.Background(), rec); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(events) != 2 || events[0] != "before" || events[1] != "after" {
		t.Fatalf("expected before/after delete hooks, got %v", events)
	}
}
