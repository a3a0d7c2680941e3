package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variables before they are merged
// into the config tree. Double underscores separate nesting levels so keys
// with underscores survive, e.g. PIXELPHRASER_COMMERCETOOLS__PROJECT_KEY
// -> commercetools.project_key.
const envPrefix = "PIXELPHRASER_"

type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Commercetools CommercetoolsConfig `koanf:"commercetools"`
	Vision        VisionConfig        `koanf:"vision"`
	GenAI         GenAIConfig         `koanf:"genai"`
	Storage       StorageConfig       `koanf:"storage"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// CommercetoolsConfig holds the project coordinates and client credentials
// for the commercetools HTTP API.
type CommercetoolsConfig struct {
	ProjectKey   string   `koanf:"project_key"`
	ClientID     string   `koanf:"client_id"`
	ClientSecret string   `koanf:"client_secret"`
	AuthURL      string   `koanf:"auth_url"`
	APIURL       string   `koanf:"api_url"`
	Scopes       []string `koanf:"scopes"`
}

type VisionConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
}

type GenAIConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // sqlite, none
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// Load reads configuration from an optional YAML file layered under
// environment variables. Environment variables win.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("genai.model") {
		k.Set("genai.model", "gemini-1.5-flash")
	}
	if !k.Exists("storage.type") {
		k.Set("storage.type", "none")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the credentials required to reach the external
// collaborators are present.
func (c *Config) Validate() error {
	var missing []string
	if c.Commercetools.ProjectKey == "" {
		missing = append(missing, "commercetools.project_key")
	}
	if c.Commercetools.ClientID == "" {
		missing = append(missing, "commercetools.client_id")
	}
	if c.Commercetools.ClientSecret == "" {
		missing = append(missing, "commercetools.client_secret")
	}
	if c.Vision.APIKey == "" {
		missing = append(missing, "vision.api_key")
	}
	if c.GenAI.APIKey == "" {
		missing = append(missing, "genai.api_key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
