package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Load builds the effective config: environment first, then non-zero
// fields from an optional config file override it.
func Load(filePath string) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return cfg, err
	}
	if filePath == "" {
		return cfg, nil
	}
	file, err := LoadFile(filePath)
	if err != nil {
		return cfg, err
	}
	cfg.merge(file)
	return cfg, nil
}

// merge copies non-zero fields from o over c.
func (c *Config) merge(o Config) {
	if o.OpenAIBaseURL != "" {
		c.OpenAIBaseURL = o.OpenAIBaseURL
	}
	if o.OpenAIAPIKey != "" {
		c.OpenAIAPIKey = o.OpenAIAPIKey
	}
	if o.LMStudioBaseURL != "" {
		c.LMStudioBaseURL = o.LMStudioBaseURL
	}
	if o.Host != "" {
		c.Host = o.Host
	}
	if o.Port != 0 {
		c.Port = o.Port
	}
	if o.CORSOrigins != "" {
		c.CORSOrigins = o.CORSOrigins
	}
	if o.DefaultRegularModel != "" {
		c.DefaultRegularModel = o.DefaultRegularModel
	}
	if o.DefaultVisionModel != "" {
		c.DefaultVisionModel = o.DefaultVisionModel
	}
	if o.LLMTimeout != time.Duration(0) {
		c.LLMTimeout = o.LLMTimeout
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}
