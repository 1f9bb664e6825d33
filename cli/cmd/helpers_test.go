package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crmarques/apirecord/config"
	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/metadata"
)

func TestParsePayload(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		payload, err := parsePayload("  ")
		if err != nil || payload != nil {
			t.Fatalf("expected nil payload, got %v, %v", payload, err)
		}
	})

	t.Run("inline json", func(t *testing.T) {
		t.Parallel()

		payload, err := parsePayload(`{"name": "ada", "age": 37}`)
		if err != nil {
			t.Fatalf("parsePayload returned error: %v", err)
		}
		if payload["name"] != "ada" {
			t.Fatalf("unexpected payload %v", payload)
		}
	})

	t.Run("inline yaml", func(t *testing.T) {
		t.Parallel()

		payload, err := parsePayload("name: ada\nage: 37\n")
		if err != nil {
			t.Fatalf("parsePayload returned error: %v", err)
		}
		if payload["name"] != "ada" {
			t.Fatalf("unexpected payload %v", payload)
		}
	})

	t.Run("file reference", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "payload.json")
		if err := os.WriteFile(path, []byte(`{"name": "ada"}`), 0o600); err != nil {
			t.Fatalf("writing payload file: %v", err)
		}
		payload, err := parsePayload("@" + path)
		if err != nil {
			t.Fatalf("parsePayload returned error: %v", err)
		}
		if payload["name"] != "ada" {
			t.Fatalf("unexpected payload %v", payload)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := parsePayload("@" + filepath.Join(t.TempDir(), "absent.json"))
		if !faults.IsCategory(err, faults.ConfigError) {
			t.Fatalf("expected config error, got %v", err)
		}
	})

	t.Run("malformed document", func(t *testing.T) {
		t.Parallel()

		_, err := parsePayload(`{"name":`)
		if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestRecordTypeFor(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Records: map[string]metadata.RecordMetadata{
			"user": {CollectionPath: "/users"},
		},
	}

	typ, err := recordTypeFor(cfg, "user")
	if err != nil {
		t.Fatalf("recordTypeFor returned error: %v", err)
	}
	if typ.Name != "user" || typ.Metadata.CollectionPath != "/users" {
		t.Fatalf("unexpected type %+v", typ)
	}

	_, err = recordTypeFor(cfg, "ghost")
	if !faults.IsCategory(err, faults.ConfigError) {
		t.Fatalf("expected config error, got %v", err)
	}
	if !strings.Contains(err.Error(), "user") {
		t.Fatalf("expected known types in the message, got %v", err)
	}
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain", err: errors.New("boom"), want: 1},
		{name: "validation", err: faults.NewTypedError(faults.ValidationError, "bad", nil), want: 2},
		{name: "not_found", err: faults.NewTypedError(faults.NotFoundError, "missing", nil), want: 3},
		{name: "auth", err: faults.NewTypedError(faults.AuthError, "denied", nil), want: 4},
		{name: "conflict", err: faults.NewTypedError(faults.ConflictError, "clash", nil), want: 5},
		{name: "transport", err: faults.NewTypedError(faults.TransportError, "down", nil), want: 6},
		{name: "not_permitted", err: faults.NewTypedError(faults.ActionNotPermittedError, "no", nil), want: 7},
		{name: "missing_identity", err: faults.NewTypedError(faults.MissingIdentityError, "anon", nil), want: 8},
		{name: "config", err: faults.NewTypedError(faults.ConfigError, "broken", nil), want: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := ExitCodeForError(test.err); got != test.want {
				t.Fatalf("ExitCodeForError = %d, want %d", got, test.want)
			}
		})
	}
}

func TestMaskCredentials(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Server: config.HTTPServer{
			BaseURL: "https://api.example.com",
			Auth: &config.HTTPAuth{
				BasicAuth: &config.BasicAuth{Username: "admin", Password: "hunter2"},
			},
		},
	}

	maskCredentials(&cfg)

	if cfg.Server.Auth.BasicAuth.Username != "admin" {
		t.Fatal("usernames are not secret and must survive masking")
	}
	if cfg.Server.Auth.BasicAuth.Password == "hunter2" {
		t.Fatal("password must be masked")
	}
}

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	if !strings.HasPrefix(formatVersion(), "apirecord dev (none, unknown)") {
		t.Fatalf("unexpected version string %q", formatVersion())
	}
}
