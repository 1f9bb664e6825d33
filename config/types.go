package config

import "github.com/crmarques/apirecord/metadata"

const (
	// ConfigFileEnvVar overrides the default configuration path.
	ConfigFileEnvVar = "APIRECORD_CONFIG_FILE"
	// DefaultConfigPath is where the CLI looks for configuration.
	DefaultConfigPath = "~/.apirecord/config.yaml"
)

// Config describes one remote API server and the record types persisted
// against it.
type Config struct {
	Server  HTTPServer                         `yaml:"server"`
	Records map[string]metadata.RecordMetadata `yaml:"records,omitempty"`
}

type HTTPServer struct {
	BaseURL        string            `yaml:"base-url"`
	DefaultHeaders map[string]string `yaml:"default-headers,omitempty"`
	Auth           *HTTPAuth         `yaml:"auth,omitempty"`
}

// HTTPAuth declares exactly one auth mode when set.
type HTTPAuth struct {
	BasicAuth    *BasicAuth       `yaml:"basic-auth,omitempty"`
	BearerToken  *BearerTokenAuth `yaml:"bearer-token,omitempty"`
	CustomHeader *HeaderTokenAuth `yaml:"custom-header,omitempty"`
}

type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type BearerTokenAuth struct {
	Token string `yaml:"token"`
}

type HeaderTokenAuth struct {
	Header string `yaml:"header"`
	Token  string `yaml:"token"`
}
