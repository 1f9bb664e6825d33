package lifecycle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/metadata"
	"github.com/crmarques/apirecord/record"
	"github.com/crmarques/apirecord/resource"
)

func TestDestroyMany(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{}
	engine := New(fake)

	find := func(_ context.Context, id any) (*record.Record, error) {
		if id == int64(13) {
			return nil, faults.NewTypedError(faults.NotFoundError, "no such record", nil)
		}
		return record.NewFromRemote(userType(), map[string]any{"id": id})
	}

	destroyed := engine.DestroyMany(context.Background(), find, int64(1), int64(13), int64(3))
	if destroyed != 2 {
		t.Fatalf("expected 2 successful deletions, got %d", destroyed)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("expected 2 transport calls, got %d", len(fake.calls))
	}
	if fake.calls[0].path != "/users/1" || fake.calls[1].path != "/users/3" {
		t.Fatalf("unexpected delete paths %v", fake.calls)
	}
}

func TestDestroyManyFlattensSliceArguments(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{}
	engine := New(fake)

	find := func(_ context.Context, id any) (*record.Record, error) {
		return record.NewFromRemote(userType(), map[string]any{"id": id})
	}

	destroyed := engine.DestroyMany(context.Background(), find, []any{int64(1), int64(2)}, int64(3))
	if destroyed != 3 {
		t.Fatalf("expected 3 successful deletions, got %d", destroyed)
	}

	destroyed = engine.DestroyMany(context.Background(), find, []int{4, 5})
	if destroyed != 2 {
		t.Fatalf("expected 2 successful deletions from int slice, got %d", destroyed)
	}
}

func TestDestroyManyRunsDeleteHooks(t *testing.T) {
	t.Parallel()

	var hooked int
	typ := userType()
	typ.AfterDelete = func(_ context.Context, _ *record.Record) error {
		hooked++
		return nil
	}

	fake := &fakeTransport{}
	engine := New(fake)

	find := func(_ context.Context, id any) (*record.Record, error) {
		return record.NewFromRemote(typ, map[string]any{"id": id})
	}

	if destroyed := engine.DestroyMany(context.Background(), find, int64(1), int64(2)); destroyed != 2 {
		t.Fatalf("expected 2 deletions, got %d", destroyed)
	}
	if hooked != 2 {
		t.Fatalf("per-record hooks must fire during bulk destroy, got %d", hooked)
	}
}

func TestPushCascadesDepthFirst(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{
		respond: func(call transportCall) (resource.Value, error) {
			return nil, nil
		},
	}
	engine := New(fake)

	parent := record.New(userType())
	if err := parent.Set("name", "parent"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	child := record.New(userType())
	if err := child.Set("name", "child"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	grandchild := record.New(userType())
	if err := grandchild.Set("name", "grandchild"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	sibling := record.New(userType())
	if err := sibling.Set("name", "sibling"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	child.Relate("children", grandchild)
	parent.Relate("children", child)
	parent.Relate("siblings", sibling)

	if err := engine.Push(context.Background(), parent); err != nil {
		t.Fatalf("Push returned error: %v", err)
	}

	var order []string
	for _, call := range fake.calls {
		payload, _ := resource.AsObject(call.payload)
		order = append(order, payload["name"].(string))
	}
	want := []string{"parent", "child", "grandchild", "sibling"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Fatalf("expected depth-first order %v, got %v", want, order)
	}
}

func TestPushShortCircuitsOnFirstFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{
		respond: func(call transportCall) (resource.Value, error) {
			payload, _ := resource.AsObject(call.payload)
			if payload["name"] == "bad" {
				return nil, faults.NewTypedError(faults.TransportError, "remote request failed", errors.New("boom"))
			}
			return nil, nil
		},
	}
	engine := New(fake)

	parent := record.New(userType())
	if err := parent.Set("name", "parent"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	bad := record.New(userType())
	if err := bad.Set("name", "bad"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	never := record.New(userType())
	if err := never.Set("name", "never"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	parent.Relate("children", bad, never)

	err := engine.Push(context.Background(), parent)
	if !faults.IsCategory(err, faults.TransportError) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "children[0]") {
		t.Fatalf("expected failing relation in error, got %v", err)
	}
	// parent save + failed child save; the sibling after the failure is
	// never attempted and nothing is rolled back.
	if len(fake.calls) != 2 {
		t.Fatalf("expected cascade to stop after the failure, got %d calls", len(fake.calls))
	}
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{
		respond: func(call transportCall) (resource.Value, error) {
			return map[string]any{"data": map[string]any{"id": 7, "name": "remote", "role": "admin"}}, nil
		},
	}
	engine := New(fake)
	rec := existingUser(t, map[string]any{"id": 7, "name": "local"})

	if err := rec.Set("name", "draft"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := engine.Refresh(context.Background(), rec); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected one transport call, got %d", len(fake.calls))
	}
	if fake.calls[0].action != metadata.ActionGet || fake.calls[0].path != "/users/7" {
		t.Fatalf("expected get /users/7, got %+v", fake.calls[0])
	}

	if name, _ := rec.Get("name"); name != "remote" {
		t.Fatalf("expected refreshed attribute, got %v", name)
	}
	if isDirty, err := rec.IsDirty(); err != nil || isDirty {
		t.Fatalf("refresh must reset the baseline, dirty=%v err=%v", isDirty, err)
	}
}

func TestRefreshWithoutIdentity(t *testing.T) {
	t.Parallel()

	fake := &fakeTransport{}
	engine := New(fake)

	err := engine.Refresh(context.Background(), record.New(userType()))
	if !faults.IsCategory(err, faults.MissingIdentityError) {
		t.Fatalf("expected missing-identity error, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected zero transport calls, got %d", len(fake.calls))
	}
}

func TestHasAPIError(t *testing.T) {
	t.Parallel()

	engine := New(&fakeTransport{})

	tests := []struct {
		name  string
		value resource.Value
		want  bool
	}{
		{name: "nil_value", value: nil, want: false},
		{name: "plain_payload", value: map[string]any{"id": int64(7)}, want: false},
		{name: "error_string", value: map[string]any{"error": "bad things"}, want: true},
		{name: "empty_error_string", value: map[string]any{"error": ""}, want: false},
		{name: "errors_list", value: map[string]any{"errors": []any{"nope"}}, want: true},
		{name: "empty_errors_list", value: map[string]any{"errors": []any{}}, want: false},
		{name: "error_object", value: map[string]any{"error": map[string]any{"code": int64(9)}}, want: true},
		{name: "null_error", value: map[string]any{"error": nil}, want: false},
		{name: "non_object_value", value: []any{"error"}, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := engine.HasAPIError(test.value); got != test.want {
				t.Fatalf("expected %v, got %v", test.want, got)
			}
		})
	}
}
