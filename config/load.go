package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/crmarques/apirecord/faults"
	"github.com/crmarques/apirecord/metadata"
)

// Load reads, validates, and defaults a configuration file. An empty
// explicit path falls back to the env var, then the default location.
func Load(explicitPath string) (Config, error) {
	path, err := ResolvePath(explicitPath)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, faults.NewTypedError(faults.ConfigError, fmt.Sprintf("failed to read config file %q", path), err)
	}

	return Decode(data)
}

// Decode parses configuration yaml, rejecting unknown fields.
func Decode(data []byte) (Config, error) {
	var cfg Config

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, faults.NewTypedError(faults.ConfigError, "invalid config yaml", err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	for name, meta := range cfg.Records {
		cfg.Records[name] = metadata.WithDefaults(meta)
	}
	return cfg, nil
}

// ResolvePath expands the configuration path, honoring the env var and
// `~` home expansion.
func ResolvePath(explicitPath string) (string, error) {
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		path = os.Getenv(ConfigFileEnvVar)
	}
	if path == "" {
		path = DefaultConfigPath
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", faults.NewTypedError(faults.InternalError, "failed to resolve user home directory", err)
		}
		if path == "~" {
			path = homeDir
		} else {
			path = filepath.Join(homeDir, strings.TrimPrefix(path, "~/"))
		}
	}

	cleanPath := filepath.Clean(path)
	if cleanPath == "." {
		return "", faults.NewTypedError(faults.ConfigError, "config path is invalid", nil)
	}
	return cleanPath, nil
}

func validate(cfg Config) error {
	baseURL := strings.TrimSpace(cfg.Server.BaseURL)
	if baseURL == "" {
		return faults.NewTypedError(faults.ConfigError, "server.base-url is required", nil)
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return faults.NewTypedError(faults.ConfigError, "server.base-url must be an absolute URL", err)
	}

	if auth := cfg.Server.Auth; auth != nil {
		setCount := 0
		if auth.BasicAuth != nil {
			setCount++
		}
		if auth.BearerToken != nil {
			setCount++
		}
		if auth.CustomHeader != nil {
			setCount++
		}
		if setCount != 1 {
			return faults.NewTypedError(faults.ConfigError, "server.auth must define exactly one auth mode", nil)
		}
	}

	for name, meta := range cfg.Records {
		if strings.TrimSpace(name) == "" {
			return faults.NewTypedError(faults.ConfigError, "record type name must not be empty", nil)
		}
		if strings.TrimSpace(meta.CollectionPath) == "" {
			return faults.NewTypedError(
				faults.ConfigError,
				fmt.Sprintf("records.%s.collection-path is required", name),
				nil,
			)
		}
		for _, action := range meta.Actions {
			if !action.IsValid() {
				return faults.NewTypedError(
					faults.ConfigError,
					fmt.Sprintf("records.%s declares unknown action %q", name, action),
					nil,
				)
			}
		}
	}

	return nil
}
