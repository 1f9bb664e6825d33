package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crmarques/apirecord/config"
	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/lifecycle"
	httpgateway "github.com/crmarques/apirecord/internal/providers/transport/http"
	"github.com/crmarques/apirecord/record"
	"github.com/crmarques/apirecord/resource"

	"go.yaml.in/yaml/v3"
)

func stringFlag(flags *pflag.FlagSet, name string) string {
	value, _ := flags.GetString(name)
	return value
}

func boolFlag(flags *pflag.FlagSet, name string) bool {
	value, _ := flags.GetBool(name)
	return value
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(stringFlag(cmd.Flags(), "config"))
}

func newEngine(cmd *cobra.Command) (*lifecycle.Engine, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}

	gateway, err := httpgateway.NewGateway(cfg.Server)
	if err != nil {
		return nil, config.Config{}, err
	}

	opts := []lifecycle.Option{}
	if boolFlag(cmd.Flags(), "verbose") {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, lifecycle.WithLogger(logger))
	}

	return lifecycle.New(gateway, opts...), cfg, nil
}

func recordTypeFor(cfg config.Config, name string) (record.Type, error) {
	name = strings.TrimSpace(name)
	meta, ok := cfg.Records[name]
	if !ok {
		known := make([]string, 0, len(cfg.Records))
		for typeName := range cfg.Records {
			known = append(known, typeName)
		}
		return record.Type{}, faults.NewTypedError(
			faults.ConfigError,
			fmt.Sprintf("record type %q is not configured (known types: %s)", name, strings.Join(known, ", ")),
			nil,
		)
	}
	return record.Type{Name: name, Metadata: meta}, nil
}

// persistedRecord builds an in-memory record that already carries the
// given identity, so the update, delete, and refresh paths treat it as
// existing without an extra fetch.
func persistedRecord(typ record.Type, id string) (*record.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, faults.NewTypedError(faults.MissingIdentityError, "a record identity is required", nil)
	}
	return record.NewFromRemote(typ, map[string]any{typ.Metadata.PrimaryKey: id})
}

// parsePayload accepts an inline document or an @file reference. YAML is a
// superset of JSON here, so both notations work.
func parsePayload(value string) (map[string]any, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	data := []byte(value)
	if strings.HasPrefix(value, "@") {
		path := strings.TrimSpace(strings.TrimPrefix(value, "@"))
		loaded, err := os.ReadFile(path)
		if err != nil {
			return nil, faults.NewTypedError(faults.ConfigError,
				fmt.Sprintf("reading payload file %q: %v", path, err), err)
		}
		data = loaded
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, faults.NewTypedError(faults.ValidationError,
			fmt.Sprintf("payload is not a valid document: %v", err), err)
	}
	return decoded, nil
}

// applySetFlags merges repeated field=value flags over a base payload.
// Values parse as YAML scalars, so numbers and booleans keep their type.
func applySetFlags(attrs map[string]any, sets []string) (map[string]any, error) {
	if len(sets) == 0 {
		return attrs, nil
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	for _, assignment := range sets {
		name, rawValue, found := strings.Cut(assignment, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, faults.NewTypedError(faults.ValidationError,
				fmt.Sprintf("invalid --set %q, expected field=value", assignment), nil)
		}
		var value any
		if err := yaml.Unmarshal([]byte(rawValue), &value); err != nil {
			value = rawValue
		}
		attrs[name] = value
	}
	return attrs, nil
}

func printValue(cmd *cobra.Command, value resource.Value) error {
	if value == nil {
		return nil
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func ExitCodeForError(err error) int {
	if err == nil {
		return 0
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		return 1
	}

	switch typedErr.Category {
	case faults.ValidationError:
		return 2
	case faults.NotFoundError:
		return 3
	case faults.AuthError:
		return 4
	case faults.ConflictError:
		return 5
	case faults.TransportError:
		return 6
	case faults.ActionNotPermittedError:
		return 7
	case faults.MissingIdentityError:
		return 8
	default:
		return 1
	}
}
