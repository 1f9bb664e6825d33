package metadata

import (
	"testing"

	"github.com/crmarques/apirecord/faults"
)

func TestAllows(t *testing.T) {
	t.Parallel()

	meta := RecordMetadata{Actions: []Action{ActionGet, ActionPost, ActionPatch}}

	if !meta.Allows(ActionGet) || !meta.Allows(ActionPost) || !meta.Allows(ActionPatch) {
		t.Fatalf("expected declared actions to be allowed")
	}
	if meta.Allows(ActionDelete) || meta.Allows(ActionPut) {
		t.Fatalf("expected undeclared actions to be denied")
	}

	empty := RecordMetadata{}
	for _, action := range []Action{ActionGet, ActionPost, ActionPatch, ActionPut, ActionDelete} {
		if empty.Allows(action) {
			t.Fatalf("empty declaration must deny %q", action)
		}
	}
}

func TestCreateAction(t *testing.T) {
	t.Parallel()

	action, err := RecordMetadata{}.CreateAction()
	if err != nil {
		t.Fatalf("CreateAction returned error: %v", err)
	}
	if action != ActionPost {
		t.Fatalf("expected post default, got %q", action)
	}

	_, err = RecordMetadata{Create: ActionPatch}.CreateAction()
	if !faults.IsCategory(err, faults.ConfigError) {
		t.Fatalf("expected config error for non-post create action, got %v", err)
	}
}

func TestUpdateAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		declared  Action
		want      Action
		wantError bool
	}{
		{name: "defaults_to_patch", declared: "", want: ActionPatch},
		{name: "patch_allowed", declared: ActionPatch, want: ActionPatch},
		{name: "put_allowed", declared: ActionPut, want: ActionPut},
		{name: "post_rejected", declared: ActionPost, wantError: true},
		{name: "delete_rejected", declared: ActionDelete, wantError: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			action, err := RecordMetadata{Update: test.declared}.UpdateAction()
			if test.wantError {
				if !faults.IsCategory(err, faults.ConfigError) {
					t.Fatalf("expected config error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateAction returned error: %v", err)
			}
			if action != test.want {
				t.Fatalf("expected %q, got %q", test.want, action)
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	t.Parallel()

	resolved := WithDefaults(RecordMetadata{CollectionPath: "/users"})
	if resolved.PrimaryKey != DefaultPrimaryKey {
		t.Fatalf("expected default primary key, got %q", resolved.PrimaryKey)
	}
	if resolved.EnvelopeField != DefaultEnvelopeField {
		t.Fatalf("expected default envelope field, got %q", resolved.EnvelopeField)
	}
	if resolved.Create != ActionPost || resolved.Update != ActionPatch {
		t.Fatalf("expected post/patch method defaults, got %q/%q", resolved.Create, resolved.Update)
	}
	if len(resolved.Actions) != 0 {
		t.Fatalf("defaults must not grant actions, got %v", resolved.Actions)
	}

	declared := WithDefaults(RecordMetadata{PrimaryKey: "uuid", EnvelopeField: "result", Update: ActionPut})
	if declared.PrimaryKey != "uuid" || declared.EnvelopeField != "result" || declared.Update != ActionPut {
		t.Fatalf("explicit declarations must be preserved: %+v", declared)
	}
}
