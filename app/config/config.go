package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default config file name.
const ConfigFileName = "config.yaml"

// Backend names for the project store.
const (
	BackendFile  = "file"
	BackendNeo4j = "neo4j"
)

// Neo4jConfig holds connection settings for the graph-backed store.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// AssistantConfig holds settings for the external assistant API. An
// empty APIKey disables the remote call and uses local responses only.
type AssistantConfig struct {
	APIKey   string        `yaml:"api_key"`
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Config represents the application configuration.
type Config struct {
	Addr         string          `yaml:"addr"`
	DataFile     string          `yaml:"data_file"`
	UsersFile    string          `yaml:"users_file"`
	StoreBackend string          `yaml:"store_backend"`
	Neo4j        Neo4jConfig     `yaml:"neo4j"`
	Assistant    AssistantConfig `yaml:"assistant"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Addr:         "0.0.0.0:8080",
		DataFile:     "projects.json",
		UsersFile:    "users.json",
		StoreBackend: BackendFile,
		Neo4j: Neo4jConfig{
			URI:      "neo4j://localhost:7687",
			Username: "neo4j",
			Password: "password",
		},
		Assistant: AssistantConfig{
			Endpoint: "https://api.mistral.ai/v1/chat/completions",
			Model:    "mistral-small-latest",
			Timeout:  30 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, an optional config.yaml
// at path, and environment variables, in that precedence order. A local
// .env file is read first if present.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = ConfigFileName
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if cfg.StoreBackend != BackendFile && cfg.StoreBackend != BackendNeo4j {
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Addr, "SYNCHRONY_ADDR")
	setString(&c.DataFile, "SYNCHRONY_DATA_FILE")
	setString(&c.UsersFile, "SYNCHRONY_USERS_FILE")
	setString(&c.StoreBackend, "SYNCHRONY_STORE_BACKEND")
	setString(&c.Neo4j.URI, "NEO4J_URI")
	setString(&c.Neo4j.Username, "NEO4J_USERNAME")
	setString(&c.Neo4j.Password, "NEO4J_PASSWORD")
	setString(&c.Assistant.APIKey, "MISTRAL_API_KEY")
	setString(&c.Assistant.Endpoint, "MISTRAL_ENDPOINT")
	setString(&c.Assistant.Model, "MISTRAL_MODEL")
	if v := os.Getenv("SYNCHRONY_ASSISTANT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Assistant.Timeout = d
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
