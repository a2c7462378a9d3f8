package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Service config types, one YAML file per service within a context.

// Vapi is the voice transport configuration (vapi.yaml).
type Vapi struct {
	// PublicKey authenticates against the Vapi realtime API.
	PublicKey string `yaml:"public_key"`

	// AssistantID selects a pre-built assistant. When empty, an inline
	// assistant is configured from the Studio settings.
	AssistantID string `yaml:"assistant_id,omitempty"`

	// WebSocketURL overrides the default realtime endpoint.
	WebSocketURL string `yaml:"websocket_url,omitempty"`
}

// Studio is the backend configuration (studio.yaml).
type Studio struct {
	// BaseURL is the Studio backend address.
	BaseURL string `yaml:"base_url"`

	// UserID scopes settings and memory.
	UserID string `yaml:"user_id"`
}

// Vision is the image analyzer configuration (vision.yaml).
type Vision struct {
	// Provider is one of "studio", "openai", "gemini".
	Provider string `yaml:"provider"`

	// APIKey is required for the openai and gemini providers.
	APIKey string `yaml:"api_key,omitempty"`

	// Model overrides the provider default.
	Model string `yaml:"model,omitempty"`
}

// Archive is the artifact store configuration (archive.yaml).
type Archive struct {
	// Backend is "local" or "s3".
	Backend string `yaml:"backend"`

	// Dir is the local archive root (local backend).
	Dir string `yaml:"dir,omitempty"`

	// Bucket and Prefix locate objects (s3 backend).
	Bucket string `yaml:"bucket,omitempty"`
	Prefix string `yaml:"prefix,omitempty"`

	// Region and Endpoint configure the S3 client. Endpoint allows
	// S3-compatible stores such as MinIO or R2.
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`

	// Static credentials for the s3 backend.
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
}

// ServicePath returns the YAML file path for a service within a context.
func (c *Config) ServicePath(context, service string) string {
	return filepath.Join(c.ContextDir(context), service+".yaml")
}

// LoadService loads a service configuration from the given context
// directory. The service name maps to "{contextDir}/{service}.yaml".
func LoadService[T any](contextDir, service string) (*T, error) {
	path := filepath.Join(contextDir, service+".yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("service config %q not found in context (expected: %s)", service, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &v, nil
}

// SaveService writes a service configuration to the given context
// directory.
func SaveService[T any](contextDir, service string, v *T) error {
	if err := os.MkdirAll(contextDir, 0755); err != nil {
		return fmt.Errorf("create context dir: %w", err)
	}

	path := filepath.Join(contextDir, service+".yaml")

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s config: %w", service, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ListServices returns the service names configured in a context
// directory. Each .yaml file corresponds to one service.
func ListServices(contextDir string) ([]string, error) {
	entries, err := os.ReadDir(contextDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list services: %w", err)
	}

	var services []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext == ".yaml" || ext == ".yml" {
			services = append(services, name[:len(name)-len(ext)])
		}
	}
	return services, nil
}
