package faults

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsCategory(t *testing.T) {
	t.Parallel()

	err := NewTypedError(ValidationError, "invalid payload", nil)
	if !IsCategory(err, ValidationError) {
		t.Fatalf("expected validation category match")
	}
	if IsCategory(err, ActionNotPermittedError) {
		t.Fatalf("expected action-not-permitted category mismatch")
	}

	wrapped := errors.New("wrap: " + err.Error())
	if IsCategory(wrapped, ValidationError) {
		t.Fatalf("plain wrapped string error must not match typed category")
	}

	joined := errors.Join(err, errors.New("other"))
	if !IsCategory(joined, ValidationError) {
		t.Fatalf("expected category match through errors.Join")
	}

	reWrapped := fmt.Errorf("saving record: %w", err)
	if !IsCategory(reWrapped, ValidationError) {
		t.Fatalf("expected category match through fmt wrapping")
	}
}

func TestTypedErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *TypedError
		want string
	}{
		{
			name: "category_only",
			err:  NewTypedError(TransportError, "", nil),
			want: "TransportError",
		},
		{
			name: "message_and_cause",
			err:  NewTypedError(TransportError, "remote request failed", errors.New("dial refused")),
			want: "remote request failed: dial refused",
		},
		{
			name: "field_errors_included",
			err: NewValidationError("payload rejected", []FieldError{
				{Field: "name", Message: "is required"},
				{Field: "email", Message: "is not an email"},
			}),
			want: "payload rejected [name: is required; email: is not an email]",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := test.err.Error(); got != test.want {
				t.Fatalf("expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	t.Parallel()

	err := NewValidationError("payload rejected", []FieldError{{Field: "name", Message: "is required"}})
	fields := FieldErrors(fmt.Errorf("create: %w", err))
	if len(fields) != 1 || fields[0].Field != "name" {
		t.Fatalf("expected field errors to survive wrapping, got %v", fields)
	}

	if FieldErrors(errors.New("plain")) != nil {
		t.Fatalf("plain errors must not report field errors")
	}

	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected field name in message, got %q", err.Error())
	}
}
